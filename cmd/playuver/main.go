// Command playuver inspects, converts and measures raw video files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/yyyoichi/playuver/internal/config"
	"github.com/yyyoichi/playuver/stream"

	_ "github.com/yyyoichi/playuver/module/builtin"
)

var errUsage = errors.New("usage")

type command struct {
	usage string
	run   func(ctx context.Context, e *env, args []string) error
}

var commands = map[string]command{
	"info":    {"info [flags] <file>...", runInfo},
	"frame":   {"frame [flags] <file>", runFrame},
	"convert": {"convert [flags] <in> <out>", runConvert},
	"view":    {"view [flags] <file>", runView},
	"play":    {"play [flags] <file>", runPlay},
	"watch":   {"watch [flags] <file>", runWatch},
	"module":  {"module [flags] <name> <file> [file...]", runModule},
	"modules": {"modules", runModules},
	"stats":   {"stats [flags] <file>", runStats},
	"quality": {"quality [flags] <reference> <file>", runQuality},
	"report":  {"report [flags]", runReport},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, pflag.ErrHelp) {
			logrus.WithError(err).Error("playuver failed")
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	fs := pflag.NewFlagSet("playuver", pflag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.SetInterspersed(false)
	configPath := fs.String("config", "", "config file, playuver.yaml is searched when empty")
	fs.Usage = func() { usage(errOut, fs) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}
	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fs.Usage()
		return fmt.Errorf("%w: unknown command %q", errUsage, fs.Arg(0))
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	e := &env{cfg: cfg, out: out, errOut: errOut, usage: cmd.usage}
	return cmd.run(ctx, e, fs.Args()[1:])
}

func usage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "usage: playuver [--config file] <command> [flags] [args]")
	fmt.Fprintln(w, "\ncommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(w, "\nglobal flags:")
	fs.PrintDefaults()
}

// env is the state shared by the commands.
type env struct {
	cfg    *config.Config
	out    io.Writer
	errOut io.Writer
	usage  string
}

// flags returns a flag set carrying the config flags.
func (e *env) flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(e.errOut)
	e.cfg.WithFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(e.errOut, "usage: playuver %s\n", e.usage)
		fs.PrintDefaults()
	}
	return fs
}

// parse parses args and applies the logging settings. It fails when
// fewer than minArgs positional arguments remain.
func (e *env) parse(fs *pflag.FlagSet, args []string, minArgs int) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := e.cfg.SetupLogging(e.errOut); err != nil {
		return err
	}
	if fs.NArg() < minArgs {
		fs.Usage()
		return errUsage
	}
	return nil
}

func (e *env) open(path string) (*stream.Stream, error) {
	opts, err := e.cfg.StreamOptions()
	if err != nil {
		return nil, err
	}
	return stream.Open(path, opts...)
}
