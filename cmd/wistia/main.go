package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/five82/wistia/internal/app"
	"github.com/five82/wistia/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override wistia config path (optional)")
	envFiles := flag.String("env", "", "comma-separated .env files to load (optional, defaults to ./.env)")
	logLevel := flag.String("log-level", "", "override the configured log level (trace, debug, info, warn, error, off)")
	flag.Usage = func() {
		app.Usage(flag.CommandLine.Output())
		_, _ = fmt.Fprintln(flag.CommandLine.Output(), "\nGlobal flags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		LogLevel:   *logLevel,
		Args:       flag.Args(),
	}
	if files := strings.TrimSpace(*envFiles); files != "" {
		opts.EnvFiles = strings.Split(files, ",")
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.ErrorPrefix(os.Stderr, "wistia:"), err)
		if errors.Is(err, app.ErrUsage) {
			flag.Usage()
		}
		return 1
	}
	return 0
}
