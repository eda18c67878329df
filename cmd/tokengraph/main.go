package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dusk-indust/tokengraph/internal/astgraph"
	"github.com/dusk-indust/tokengraph/internal/config"
	"github.com/dusk-indust/tokengraph/internal/mcptools"
)

// CLI flags parsed from command line.
type cliFlags struct {
	Format    string
	ConfigDir string
	Tokenizer string
	Verbose   bool
	ServeMCP  bool
	HTTPAddr  string
	Version   bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var flags cliFlags

	fs := flag.NewFlagSet("tokengraph", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&flags.Format, "format", "tree", "output format: tree, json, edges, matrix or mermaid")
	fs.StringVar(&flags.ConfigDir, "config", ".", "directory containing tokengraph.yml")
	fs.StringVar(&flags.Tokenizer, "tokenizer", "", "token splitter: none, whole, subword or subword-lower (overrides config)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable debug logging")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as an MCP server on stdio")
	fs.StringVar(&flags.HTTPAddr, "http", "", "run as an MCP server on this HTTP address")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Fprintln(stdout, version)
		return nil
	}

	cfg, err := config.Load(flags.ConfigDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flags.Tokenizer != "" {
		cfg.Tokenizer = flags.Tokenizer
	}

	level := slog.LevelInfo
	if flags.Verbose || cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts = append(opts, astgraph.WithLogger(logger))

	if flags.ServeMCP || flags.HTTPAddr != "" {
		return serve(ctx, flags, cfg, logger, opts)
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: tokengraph [flags] <file|->")
	}
	source, err := readSource(fs.Arg(0), stdin)
	if err != nil {
		return err
	}

	w, err := astgraph.New(ctx, source, opts...)
	if err != nil {
		return err
	}
	logger.Debug("parsed source", "input", fs.Arg(0), "bytes", len(source), "tokenizer", cfg.Tokenizer)
	return render(stdout, w, flags.Format, fs.Arg(0))
}

// serve runs the MCP server until ctx is cancelled or stdin closes.
func serve(ctx context.Context, flags cliFlags, cfg *config.ProjectConfig, logger *slog.Logger, opts []astgraph.Option) error {
	store, err := openStore(cfg.StorePath)
	if err != nil {
		return err
	}
	defer store.Close()

	svc := mcptools.NewTokenGraphService(store, logger, opts...)
	if flags.HTTPAddr != "" {
		logger.Info("serving MCP over HTTP", "addr", flags.HTTPAddr)
		return mcptools.RunMCPServer(ctx, svc, flags.HTTPAddr)
	}
	return mcptools.RunMCPServerStdio(ctx, svc)
}

// readSource reads the named file, or stdin for "-".
func readSource(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return data, nil
}
