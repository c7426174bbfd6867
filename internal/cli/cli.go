package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/amirbrooks/things-cli/internal/config"
	"github.com/amirbrooks/things-cli/internal/dispatch"
	"github.com/amirbrooks/things-cli/internal/jxa"
	"github.com/amirbrooks/things-cli/internal/log"
	"github.com/amirbrooks/things-cli/internal/ui"
)

// Exit codes
const (
	ExitOK    = 0
	ExitError = 1
)

type GlobalFlags struct {
	Config  string
	Verbose bool
	NoColor bool
	Quiet   bool
}

// App holds one invocation's collaborators. Opener and Runner may be set
// before Run to replace the OS open handler and the script interpreter.
type App struct {
	Out    io.Writer
	Err    io.Writer
	Opener dispatch.Opener
	Runner jxa.Runner

	flags    GlobalFlags
	cfg      *config.Config
	printer  *ui.Printer
	logger   log.Logger
	dispatch *dispatch.Dispatcher
	bridge   *jxa.Bridge
}

func NewApp(out, errOut io.Writer) *App {
	return &App{Out: out, Err: errOut}
}

func Run(args []string) int {
	return NewApp(os.Stdout, os.Stderr).Run(context.Background(), args)
}

func (a *App) Run(ctx context.Context, args []string) int {
	ctx = log.WithRunID(ctx, log.NewRunID())
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(a.Out)
	root.SetErr(a.Err)
	if err := root.ExecuteContext(ctx); err != nil {
		if a.logger != nil {
			a.logger.Debugf(ctx, "command failed: %v", err)
		}
		a.output().Errorf("%v", err)
		return ExitError
	}
	return ExitOK
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "things",
		Short: "Command-line interface for Things 3",
		Long: `things drives Things 3 through its things:/// URL scheme and reads
lists back through JavaScript for Automation (macOS only).

Write commands accept --dry-run to print the URL instead of opening it.
Commands that change existing items need THINGS_TOKEN (Things > Settings >
General > Enable Things URLs > Manage).`,
		Example: `  things add --title "Buy milk" --when today --tags errand
  things update --id 4fK2 --deadline "" --dry-run
  things list today
  things list --tag work --format table
  things export batch.json --type batch && things import batch.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.Config, "config", "", "Config file (default: $THINGS_CONFIG or "+config.DefaultPath()+")")
	pf.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "Debug logging on stderr")
	pf.BoolVar(&a.flags.NoColor, "no-color", false, "Disable colored output")
	pf.BoolVarP(&a.flags.Quiet, "quiet", "q", false, "Suppress informational output")

	root.AddCommand(
		a.addCommand(),
		a.addProjectCommand(),
		a.updateCommand(),
		a.updateProjectCommand(),
		a.showCommand(),
		a.searchCommand(),
		a.versionCommand(),
		a.jsonCommand(),
		a.importCommand(),
		a.exportCommand(),
		a.listCommand(),
		a.configCommand(),
	)
	return root
}

func (a *App) setup(ctx context.Context) error {
	a.printer = ui.New(a.Out, a.Err, a.flags.NoColor || os.Getenv("NO_COLOR") != "")
	a.printer.Quiet = a.flags.Quiet

	cfg, err := config.Load(a.flags.Config)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Logger.Level
	if a.flags.Verbose {
		level = "debug"
	}
	a.logger = log.Init(log.ZapConfig{Level: level, Encoding: cfg.Logger.Encoding, Output: a.Err})
	a.logger.Debugf(ctx, "config file: %q", cfg.File)

	opener := a.Opener
	if opener == nil {
		opener = dispatch.ExecOpener{Command: cfg.OpenCommand}
	}
	a.dispatch = dispatch.New(opener, a.printer, a.logger)
	return nil
}

// readBridge is created on first use so write commands never look up the
// interpreter.
func (a *App) readBridge() *jxa.Bridge {
	if a.bridge != nil {
		return a.bridge
	}
	opts := jxa.Options{
		App:         a.cfg.AppName,
		Interpreter: a.cfg.Bridge.Interpreter,
		Timeout:     a.cfg.Bridge.Timeout,
		Locale:      a.cfg.Locale,
		Logger:      a.logger,
		Warner:      a.printer,
	}
	if a.Runner != nil {
		a.bridge = jxa.New(a.Runner, opts)
	} else {
		a.bridge = jxa.Open(opts)
	}
	return a.bridge
}

// output is the printer, or a plain one when setup never ran.
func (a *App) output() *ui.Printer {
	if a.printer != nil {
		return a.printer
	}
	return ui.New(a.Out, a.Err, true)
}
