package config

import (
	. "Kaleidoscope/internal/common"
	"Kaleidoscope/internal/interpreter"
	"Kaleidoscope/internal/logger"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log       LogConfig      `toml:"log" yaml:"log"`
	Repl      ReplConfig     `toml:"repl" yaml:"repl"`
	Server    ServerConfig   `toml:"server" yaml:"server"`
	Operators map[string]int `toml:"operators" yaml:"operators"`
	Unary     []string       `toml:"unary_operators" yaml:"unary_operators"`
}

type LogConfig struct {
	// Dir holds the daily log files. Empty means log to stderr.
	Dir   string `toml:"dir" yaml:"dir"`
	Level string `toml:"level" yaml:"level"`
}

type ReplConfig struct {
	Prompt string `toml:"prompt" yaml:"prompt"`
	Dump   bool   `toml:"dump" yaml:"dump"`
}

type ServerConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

func Default() *Config {
	return &Config{
		Log:       LogConfig{Dir: "logs", Level: "error"},
		Repl:      ReplConfig{Prompt: "ready> "},
		Server:    ServerConfig{Addr: ":8080"},
		Operators: map[string]int{},
	}
}

// Load reads a TOML or YAML file, picked by extension, over the defaults.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	_, err := c.Grammar()
	return err
}

func (c *Config) LogLevel() logger.LogLevel {
	level, _ := logger.ParseLevel(c.Log.Level)
	return level
}

// Precedences converts the operators table into parser form. Each key must
// be one ASCII punctuation character and each precedence within 1..100.
func (c *Config) Precedences() (map[rune]int, error) {
	precedences := make(map[rune]int, len(c.Operators))
	for op, prec := range c.Operators {
		if utf8.RuneCountInString(op) != 1 {
			return nil, fmt.Errorf("operator %q must be a single character", op)
		}
		r, _ := utf8.DecodeRuneInString(op)
		if !isOperatorChar(r) {
			return nil, fmt.Errorf("operator %q cannot be used as a binary operator", op)
		}
		if prec < MinOperatorPrecedence || prec > MaxOperatorPrecedence {
			return nil, fmt.Errorf("operator %q: precedence %d outside %d..%d", op, prec, MinOperatorPrecedence, MaxOperatorPrecedence)
		}
		precedences[r] = prec
	}
	return precedences, nil
}

// UnaryOperators converts the unary_operators list into parser form.
func (c *Config) UnaryOperators() ([]rune, error) {
	ops := make([]rune, 0, len(c.Unary))
	for _, op := range c.Unary {
		if utf8.RuneCountInString(op) != 1 {
			return nil, fmt.Errorf("unary operator %q must be a single character", op)
		}
		r, _ := utf8.DecodeRuneInString(op)
		if !isOperatorChar(r) {
			return nil, fmt.Errorf("unary operator %q cannot be used as an operator", op)
		}
		ops = append(ops, r)
	}
	return ops, nil
}

// Grammar returns the driver options carrying both operator tables.
func (c *Config) Grammar() (interpreter.Options, error) {
	precedences, err := c.Precedences()
	if err != nil {
		return interpreter.Options{}, err
	}
	unary, err := c.UnaryOperators()
	if err != nil {
		return interpreter.Options{}, err
	}
	return interpreter.Options{Precedences: precedences, UnaryOperators: unary}, nil
}

func isOperatorChar(r rune) bool {
	if r >= 0x80 || r <= ' ' {
		return false
	}
	if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
		return false
	}
	switch r {
	case '(', ')', ',', ';', '.', '#', 0x7f:
		return false
	}
	return true
}

// SetupLoggers registers the named loggers the packages look up.
func (c *Config) SetupLoggers(names ...string) error {
	for _, name := range names {
		if c.Log.Dir == "" {
			logger.NewWithWriter(name, os.Stderr, c.LogLevel())
			continue
		}
		if _, err := logger.New(name, c.Log.Dir, c.LogLevel()); err != nil {
			return fmt.Errorf("failed to set up %s logger: %w", name, err)
		}
	}
	return nil
}
