// Package cli implements the dentallab command line client.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Apurer/dentallab-tracker/internal/app/api"
	"github.com/Apurer/dentallab-tracker/internal/platform/i18n"
	platformobservability "github.com/Apurer/dentallab-tracker/internal/platform/observability"
)

// Option customises the root command.
type Option func(*app)

// WithIO replaces the standard streams.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(a *app) {
		a.in, a.out, a.errOut = in, out, errOut
	}
}

// WithConfigLoader replaces api.LoadConfig.
func WithConfigLoader(load func() (api.Config, error)) Option {
	return func(a *app) { a.loadConfig = load }
}

// WithComponents makes every command use components instead of building
// its own from configuration. The caller keeps ownership.
func WithComponents(components *api.Components) Option {
	return func(a *app) { a.shared = components }
}

// WithServer replaces api.Run for the serve command.
func WithServer(serve func(context.Context, api.Config) error) Option {
	return func(a *app) { a.serve = serve }
}

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	loadConfig func() (api.Config, error)
	serve      func(context.Context, api.Config) error
	shared     *api.Components

	yes     bool
	verbose bool

	loc    *i18n.Localizer
	reader *bufio.Reader
}

// NewRootCommand assembles the dentallab command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{
		in:         os.Stdin,
		out:        os.Stdout,
		errOut:     os.Stderr,
		loadConfig: api.LoadConfig,
		serve:      api.Run,
		loc:        i18n.New(i18n.English),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	root := &cobra.Command{
		Use:   "dentallab",
		Short: "DentalLab order tracker",
		Long: `dentallab keeps track of dental lab work orders: which clinic sent
them, what is being made, when it is due and where it stands.

Orders are stored in the slot backend selected by DENTALLAB_SLOT_DRIVER
(a local SQLite file by default). The serve command exposes the same data
over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.PersistentFlags().BoolVarP(&a.yes, "yes", "y", false, "Skip confirmation prompts")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log storage activity to stderr")

	root.AddCommand(
		a.listCommand(),
		a.addCommand(),
		a.editCommand(),
		a.statusCommand(),
		a.deleteCommand(),
		a.clearCommand(),
		a.sampleCommand(),
		a.summaryCommand(),
		a.clinicsCommand(),
		a.exportCommand(),
		a.importCommand(),
		a.langCommand(),
		a.serveCommand(),
	)
	return root
}

// Execute runs the root command against the process arguments.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// withComponents opens storage, resolves the interface language and runs fn.
func (a *app) withComponents(cmd *cobra.Command, fn func(ctx context.Context, c *api.Components) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	components := a.shared
	if components == nil {
		cfg, err := a.loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		level := slog.LevelWarn
		if a.verbose {
			level = slog.LevelInfo
		}
		logger := platformobservability.NewLogger(a.errOut, level, false)
		components, err = api.Build(ctx, cfg, logger, nil)
		if err != nil {
			return err
		}
		defer components.Close()
	}
	lang, err := components.Preferences.Language(ctx)
	if err != nil {
		return err
	}
	a.loc = i18n.New(lang)
	return fn(ctx, components)
}

func (a *app) println(key string, args ...any) {
	fmt.Fprintln(a.out, a.loc.T(key, args...))
}

// confirm asks prompt on stdout and reads a yes/no answer from stdin.
func (a *app) confirm(prompt string) (bool, error) {
	if a.yes {
		return true, nil
	}
	fmt.Fprintf(a.out, "%s [y/N]: ", prompt)
	if a.reader == nil {
		a.reader = bufio.NewReader(a.in)
	}
	line, err := a.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "نعم":
		return true, nil
	default:
		return false, nil
	}
}

// localizedError shows a catalog message while keeping the cause for
// errors.Is.
type localizedError struct {
	msg string
	err error
}

func (e *localizedError) Error() string { return e.msg }
func (e *localizedError) Unwrap() error { return e.err }
