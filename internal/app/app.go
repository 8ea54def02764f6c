package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/five82/wistia/internal/config"
	"github.com/five82/wistia/internal/logging"
	"github.com/five82/wistia/internal/ui"
	"github.com/five82/wistia/wistia"
)

// Options configure a single CLI invocation.
type Options struct {
	ConfigPath string
	EnvFiles   []string // .env files loaded before the config; empty tries ./.env
	LogLevel   string   // overrides log_level from the config when set
	Args       []string // command name followed by its arguments
	Stdout     io.Writer
	Stderr     io.Writer
}

// ErrUsage is returned when no command, or an unknown one, is given.
var ErrUsage = errors.New("usage")

// Run loads configuration and runs the command named by opts.Args.
func Run(ctx context.Context, opts Options) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if len(opts.Args) == 0 {
		return fmt.Errorf("%w: missing command", ErrUsage)
	}
	cmd, ok := commands[opts.Args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", ErrUsage, opts.Args[0])
	}

	if err := config.LoadDotenv(opts.EnvFiles...); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load wistia config: %w", err)
	}

	level := cfg.LogLevel
	if strings.TrimSpace(opts.LogLevel) != "" {
		level = opts.LogLevel
	}
	logging.Init(logging.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Timestamp: true,
		Output:    opts.Stderr,
	})

	token, err := cfg.Token()
	if err != nil {
		return err
	}

	r := &runner{cfg: cfg, token: token, stdout: opts.Stdout, stderr: opts.Stderr}
	logging.Debug().Str("command", cmd.name).Strs("args", opts.Args[1:]).Msg("running command")

	if err := cmd.run(ctx, r, opts.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	return nil
}

// Usage writes the list of commands to w.
func Usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	_, _ = fmt.Fprintln(w, "Usage: wistia [global flags] <command> [flags] [args]")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Commands:")
	for _, name := range names {
		cmd := commands[name]
		_, _ = fmt.Fprintf(w, "  %-14s %s\n", cmd.name, cmd.summary)
	}
}

// runner carries what every command needs.
type runner struct {
	cfg    config.Config
	token  string
	stdout io.Writer
	stderr io.Writer
}

func (r *runner) clientOptions() []wistia.Option {
	return append(r.cfg.ClientOptions(), wistia.WithLogger(logging.Logger()))
}

func (r *runner) dataClient() *wistia.Client {
	return wistia.NewClient(r.token, r.clientOptions()...)
}

func (r *runner) uploadClient() *wistia.UploadClient {
	return wistia.NewUploadClient(r.token, r.clientOptions()...)
}

// step starts a progress indicator on stderr so stdout stays parseable.
func (r *runner) step(ctx context.Context, format string, args ...any) *ui.Progress {
	return ui.Start(ctx, r.stderr, fmt.Sprintf(format, args...))
}
