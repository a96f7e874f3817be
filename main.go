package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mcncl/eqdata/internal/config"
	"github.com/mcncl/eqdata/internal/errors"
	"github.com/mcncl/eqdata/internal/formatter"
	"github.com/mcncl/eqdata/internal/lexer"
	"github.com/mcncl/eqdata/internal/logs"
	"github.com/mcncl/eqdata/internal/models"
	"github.com/mcncl/eqdata/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Path        string  `arg:"" optional:"" help:"Path to the input file. If not specified, reads from stdin." type:"path"`
	Output      string  `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Format      *string `help:"Output format: text, json, yaml or data." short:"f"`
	Indent      *int    `help:"Indentation width for json, yaml and data output."`
	JSONNumbers bool    `help:"Emit numbers as JSON numbers instead of strings." name:"json-numbers"`
	KeyCase     *string `help:"Rewrite names in json and yaml output: preserve, snake, camel, lower_camel or kebab." name:"key-case"`
	Tokens      bool    `help:"Print the token stream instead of parsing." short:"t"`
	Config      string  `help:"Path to a config file. Defaults to the nearest .eqdata.yml." short:"c" type:"path"`
	LogFile     string  `help:"Also write logs to this file." name:"log-file" type:"path"`
	Debug       bool    `help:"Enable debug logging." short:"d"`
	Version     bool    `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("eqdata"),
		kong.Description("Parse {name=value} / [value] data and print it as text, JSON or YAML"),
		kong.UsageOnError(),
	)

	_, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if CLI.Version {
		fmt.Printf("eqdata version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	logger, closeLog, err := logs.New(os.Stderr, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	err = run(&Context{
		Config: cfg,
		Logger: logger,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	})
	if cerr := closeLog(); cerr != nil {
		fmt.Fprintf(os.Stderr, "Error closing log file: %v\n", cerr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: eqdata --help\n")
		os.Exit(1)
	}
}

// loadConfig merges the config file, if any, under the command-line flags
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	overrides := config.Overrides{
		Format:  CLI.Format,
		Indent:  CLI.Indent,
		KeyCase: CLI.KeyCase,
		Debug:   CLI.Debug,
		LogFile: CLI.LogFile,
	}
	// A false flag means "not given" so the file can still turn numbers on.
	if CLI.JSONNumbers {
		overrides.JSONNumbers = &CLI.JSONNumbers
	}
	return config.LoadConfigWithCLI(path, overrides)
}

// run executes the main program logic
func run(ctx *Context) error {
	if ctx.Logger == nil {
		ctx.Logger = logs.Discard()
	}

	if CLI.Tokens {
		return dumpTokens(ctx)
	}

	// 1. Parse input
	value, err := parseInput(ctx)
	if err != nil {
		return err
	}
	ctx.Logger.Debug("parsed input", "kind", value.Kind())

	// 2. Render
	ctx.Logger.Debug("rendering", "format", ctx.Config.Output.Format)
	out, err := formatter.NewFormatter(ctx.Config.Output).Format(value)
	if err != nil {
		return err
	}

	// 3. Output the result
	return writeOutput(ctx, out)
}

// parseInput reads one value from the input file or stdin
func parseInput(ctx *Context) (models.Value, error) {
	if CLI.Path != "" {
		ctx.Logger.Debug("reading input", "path", CLI.Path)
		return parser.ParseFile(CLI.Path)
	}
	ctx.Logger.Debug("reading input", "path", "<stdin>")
	return parser.Parse(ctx.Stdin)
}

// dumpTokens prints one token per line with its position
func dumpTokens(ctx *Context) error {
	var in io.Reader = ctx.Stdin
	if CLI.Path != "" {
		file, err := parser.OpenFile(CLI.Path)
		if err != nil {
			return err
		}
		defer func() { _ = file.Close() }()
		in = file
	}

	tokens, err := lexer.Tokenize(lexer.NewLineReader(in))
	if err != nil {
		return err
	}
	ctx.Logger.Debug("tokenized input", "tokens", len(tokens))

	var out []byte
	for _, tok := range tokens {
		out = fmt.Appendf(out, "%s\t%s\n", tok.Pos, tok)
	}
	return writeOutput(ctx, string(out)+"EOF")
}

// writeOutput writes the result to a file or stdout
func writeOutput(ctx *Context, out string) error {
	if CLI.Output != "" {
		if err := os.WriteFile(CLI.Output, []byte(out+"\n"), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		ctx.Logger.Info("output written", "path", CLI.Output)
		return nil
	}

	if _, err := fmt.Fprintln(ctx.Stdout, out); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
