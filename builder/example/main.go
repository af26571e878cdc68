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

	"github.com/viant/afs"
	"github.com/viant/entrysplit/builder"
	"github.com/viant/entrysplit/ctxlog"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(outW io.Writer, args []string) error {
	flags := flag.NewFlagSet("entrysplit", flag.ContinueOnError)
	flags.SetOutput(outW)
	configURL := flags.String("config", "build.yaml", "build config location")
	if err := flags.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	config, err := builder.LoadConfig(ctx, afs.New(), *configURL)
	if err != nil {
		return err
	}
	ctx = ctxlog.WithLogger(ctx, builder.NewLogger(config.Log, os.Stderr))
	report, err := builder.Build(ctx, config)
	if err != nil {
		return err
	}
	for _, module := range report.Modules {
		fmt.Fprintf(outW, "%v -> %v\n", module.Source, module.URL)
	}
	for _, asset := range report.Assets {
		fmt.Fprintf(outW, "%v -> %v\n", asset.Output, asset.URL)
	}
	return nil
}
