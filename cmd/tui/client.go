package main

import (
	"Kaleidoscope/internal/server"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// parseSource posts src to the server's /parse endpoint and decodes the
// reply.
func parseSource(addr, src string) (*server.ParseResponse, error) {
	reqBody, err := json.Marshal(server.ParseRequest{Source: src})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := strings.TrimRight(addr, "/") + "/parse"
	resp, err := httpClient.Post(url, "application/json", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// The server returns error text in the body; surface it.
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("server error (%d): %s", resp.StatusCode, msg)
	}

	var pr server.ParseResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &pr, nil
}

// formatResponse renders the constructs and errors of a parse response as
// plain text, one entry per line.
func formatResponse(pr *server.ParseResponse) string {
	var sb strings.Builder
	for _, c := range pr.Constructs {
		fmt.Fprintf(&sb, "%-10s %s\n", c.Kind, c.Text)
	}
	for _, e := range pr.Errors {
		fmt.Fprintf(&sb, "error      %d:%d: %s\n", e.Line, e.Column, e.Message)
	}
	if sb.Len() == 0 {
		return "Nothing to parse"
	}
	fmt.Fprintf(&sb, "\n%d construct(s), %d error(s)\n", len(pr.Constructs), len(pr.Errors))
	return sb.String()
}
