package main

import (
	"Kaleidoscope/helpers"
	"Kaleidoscope/internal/config"
	"Kaleidoscope/internal/interpreter"
	"Kaleidoscope/internal/logger"
	"Kaleidoscope/internal/server"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// parseMsg carries the outcome of one /parse round trip.
type parseMsg struct {
	output string
	errors int
	err    error
}

func parseCmd(addr, src string) tea.Cmd {
	return func() tea.Msg {
		pr, err := parseSource(addr, src)
		if err != nil {
			logger.Get("tui").Error("parse request failed: %v", err)
			return parseMsg{err: err}
		}
		return parseMsg{output: formatResponse(pr), errors: len(pr.Errors)}
	}
}

type keyMap struct {
	Quit  key.Binding
	Run   key.Binding
	Clear key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Run: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "parse"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear input"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Clear, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Run, k.Clear},
		{k.Quit},
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	subtle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("44")).Bold(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

type model struct {
	addr     string
	input    textarea.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	status   string
	loading  bool
	err      error
	width    int
	height   int
}

func newModel(addr string) model {
	ta := textarea.New()
	ta.Placeholder = "def fib(x) if x < 3 then 1 else fib(x-1)+fib(x-2);"
	ta.Focus()
	ta.Prompt = "┃ "
	ta.CharLimit = 0
	ta.FocusedStyle.CursorLine = ta.FocusedStyle.CursorLine.Background(lipgloss.Color("236"))
	ta.ShowLineNumbers = true

	vp := viewport.New(80, 20)
	vp.SetContent(subtle.Render("Parsed trees will appear here."))

	h := help.New()

	return model{
		addr:     addr,
		input:    ta,
		viewport: vp,
		help:     h,
		keys:     newKeyMap(),
		status:   "Connected to " + addr,
	}
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

		// Fixed lines: title, address, labels, blanks, status and help.
		// The rest is split between the input box and the results.
		const chromeLines = 10
		const minInputHeight = 3
		const minResultsHeight = 3

		available := m.height - chromeLines
		if available < 1 {
			available = 1
		}

		var inputHeight, resultsHeight int
		if available <= minInputHeight+minResultsHeight {
			inputHeight = max(available/2, 1)
			resultsHeight = max(available-inputHeight, 1)
		} else {
			inputHeight = max(available/2, minInputHeight)
			resultsHeight = max(available-inputHeight, minResultsHeight)
		}

		m.input.SetWidth(m.width - 6)
		m.input.SetHeight(inputHeight)
		m.viewport.Width = m.width - 6
		m.viewport.Height = resultsHeight
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Clear):
			m.input.Reset()
			return m, nil
		case key.Matches(msg, m.keys.Run):
			src := strings.TrimSpace(m.input.Value())
			if src == "" {
				return m, nil
			}

			m.loading = true
			m.status = "Parsing..."
			m.err = nil
			return m, parseCmd(m.addr, src)
		}
	case parseMsg:
		m.loading = false
		switch {
		case msg.err != nil:
			m.err = msg.err
			m.status = "Request failed"
			m.viewport.SetContent(errorStyle.Render(msg.err.Error()))
		case msg.errors > 0:
			m.err = nil
			m.status = fmt.Sprintf("Parsed with %d syntax error(s)", msg.errors)
			m.viewport.SetContent(msg.output)
		default:
			m.err = nil
			m.status = "Parsed"
			m.viewport.SetContent(msg.output)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	title := titleStyle.Render("Kaleidoscope") + " " + subtle.Render("parser client")
	addr := subtle.Render("Server: " + m.addr)

	inputBox := boxStyle.Render(m.input.View())
	resultBox := boxStyle.Render(m.viewport.View())

	status := m.status
	if m.loading {
		status += " (working...)"
	}
	statusLine := statusStyle.Render(status)
	if m.err != nil {
		statusLine += "  " + errorStyle.Render(m.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		addr,
		"",
		"Source:",
		inputBox,
		"",
		"Parsed:",
		resultBox,
		"",
		statusLine,
		m.help.View(m.keys),
	)
}

func main() {
	addr := flag.String("addr", "http://localhost:8080", "parse server address")
	serve := flag.Bool("serve", false, "start an in-process parse server on -addr")
	flag.Parse()

	if !strings.HasPrefix(*addr, "http://") && !strings.HasPrefix(*addr, "https://") {
		*addr = "http://" + *addr
	}

	loggers := []string{"tui"}
	if *serve {
		loggers = append(loggers, "server", "parser", "lexer")
	}
	if err := config.Default().SetupLoggers(loggers...); err != nil {
		fmt.Println("Error setting up logging:", err)
		os.Exit(1)
	}

	if *serve {
		listen := strings.TrimPrefix(strings.TrimPrefix(*addr, "http://"), "https://")
		go func() {
			if err := server.StartServer(listen, interpreter.Options{}); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}()
		if err := helpers.WaitForServer(*addr); err != nil {
			fmt.Println("Error starting server:", err)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(newModel(*addr), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error running TUI:", err)
		os.Exit(1)
	}
}
