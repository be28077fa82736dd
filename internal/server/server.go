package server

import (
	"Kaleidoscope/internal/ast"
	"Kaleidoscope/internal/interpreter"
	l "Kaleidoscope/internal/logger"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const maxSourceBytes = 1 << 20

type ParseRequest struct {
	Source string `json:"source"`
}

type ConstructResponse struct {
	Kind string    `json:"kind"`
	Text string    `json:"text"`
	Tree *ast.Node `json:"tree"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

type ParseResponse struct {
	Success     bool                `json:"success"`
	RequestID   string              `json:"request_id"`
	Constructs  []ConstructResponse `json:"constructs"`
	Errors      []ErrorResponse     `json:"errors"`
	Diagnostics []string            `json:"diagnostics"`
}

// NewHandler returns the service mux. The operator tables in grammar apply
// to every request.
func NewHandler(grammar interpreter.Options) http.Handler {
	h := &parseHandler{
		logger:  l.Get("server"),
		grammar: interpreter.Options{Precedences: grammar.Precedences, UnaryOperators: grammar.UnaryOperators},
	}

	mux := http.NewServeMux()

	// GET /health -> liveness
	mux.HandleFunc("/health", health)

	// POST /parse -> parse a whole source text
	mux.Handle("/parse", h)

	return mux
}

func StartServer(addr string, grammar interpreter.Options) error {
	logger := l.Get("server")
	server := &http.Server{Addr: addr, Handler: NewHandler(grammar)}
	logger.Info("listening on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server stopped: %v", err)
		return fmt.Errorf("serve %s: %w", addr, err)
	}
	return nil
}

// health returns 200 OK for liveness checks
func health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type parseHandler struct {
	logger  *l.Logger
	grammar interpreter.Options
}

func (h *parseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.logger

	if r.Method != http.MethodPost {
		logger.Error("Invalid method used: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ParseRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSourceBytes)).Decode(&req); err != nil {
		logger.Error("Failed to decode request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	requestID := uuid.NewString()
	logger.Debug("request %s: parsing %d bytes", requestID, len(req.Source))

	var diagnostics bytes.Buffer
	opts := h.grammar
	opts.Diagnostics = &diagnostics
	result := interpreter.ParseAll(strings.NewReader(req.Source), opts)

	response := ParseResponse{
		Success:     len(result.Errors) == 0,
		RequestID:   requestID,
		Constructs:  []ConstructResponse{},
		Errors:      []ErrorResponse{},
		Diagnostics: splitLines(diagnostics.String()),
	}
	for _, c := range result.Constructs {
		response.Constructs = append(response.Constructs, constructResponse(c))
	}
	for _, e := range result.Errors {
		response.Errors = append(response.Errors, ErrorResponse{
			Message: e.Msg,
			Line:    e.Token.Line,
			Column:  e.Token.Column,
		})
	}

	responseBytes, err := json.Marshal(response)
	if err != nil {
		logger.Error("Failed to marshal response: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-Id", requestID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(responseBytes)
}

func constructResponse(c *interpreter.Construct) ConstructResponse {
	resp := ConstructResponse{Kind: c.Kind.String(), Text: c.String()}
	if c.Kind == interpreter.Extern {
		resp.Tree = ast.PrototypeNode(c.Proto)
	} else {
		resp.Tree = ast.FunctionNode(c.Function)
	}
	return resp
}

func splitLines(s string) []string {
	lines := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
