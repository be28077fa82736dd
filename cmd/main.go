package main

import (
	"Kaleidoscope/internal/config"
	"Kaleidoscope/internal/interpreter"
	"Kaleidoscope/internal/server"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	dump    bool
)

var rootCmd = &cobra.Command{
	Use:   "kaleidoscope",
	Short: "Kaleidoscope front end: lexer and parser",
	Long: `kaleidoscope reads Kaleidoscope source, parses each top-level
definition, extern and expression, and reports what it parsed.

Commands:
  parse  - parse a file or stdin and print status lines
  repl   - interactive shell
  serve  - HTTP parse service`,
	SilenceUsage: true,
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a source file (or stdin)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		grammar, err := cfg.Grammar()
		if err != nil {
			return err
		}

		var input io.Reader = os.Stdin
		if len(args) == 1 {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer file.Close()
			input = file
		}

		opts := grammar
		opts.Diagnostics = os.Stderr
		opts.Output = os.Stdout
		opts.Dump = dump || cfg.Repl.Dump
		summary, err := interpreter.NewDriver(input, opts).Run()
		if err != nil {
			return err
		}
		if summary.Errors > 0 {
			return fmt.Errorf("%d syntax error(s)", summary.Errors)
		}
		return nil
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive shell",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		opts, err := cfg.Grammar()
		if err != nil {
			return err
		}
		opts.Prompt = cfg.Repl.Prompt
		opts.Dump = dump || cfg.Repl.Dump
		return interpreter.Repl(opts)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve POST /parse over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		grammar, err := cfg.Grammar()
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		return server.StartServer(cfg.Server.Addr, grammar)
	},
}

// setup loads the config file, if any, and registers the loggers.
func setup() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if verbose {
		cfg.Log.Level = "debug"
		cfg.Log.Dir = ""
	}
	if err := cfg.SetupLoggers("lexer", "parser", "driver", "repl", "server"); err != nil {
		return nil, err
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (.toml or .yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
	rootCmd.PersistentFlags().BoolVar(&dump, "dump", false, "print each parsed tree")
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")

	rootCmd.AddCommand(parseCmd, replCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
