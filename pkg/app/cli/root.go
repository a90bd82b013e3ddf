// Package cli implements the btx-ops command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glipgg/btx-ops/pkg/config"
)

// App implements app.Runner for the operator CLI
type App struct {
	args   []string
	stdout io.Writer
	stderr io.Writer
}

// New creates the CLI application for the given arguments (without the program name)
func New(args []string) *App {
	return &App{args: args, stdout: os.Stdout, stderr: os.Stderr}
}

// Run executes the selected command until it finishes or an interrupt arrives
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, rt := newRootCommand()
	defer rt.close()
	root.SetArgs(a.args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	return root.ExecuteContext(ctx)
}

type rootFlags struct {
	configPath string
	envFiles   []string
	estimate   bool
	logLevel   string
}

// NewRootCommand builds the full command tree
func NewRootCommand() *cobra.Command {
	root, _ := newRootCommand()
	return root
}

func newRootCommand() (*cobra.Command, *runtime) {
	flags := &rootFlags{}
	rt := &runtime{flags: flags}

	root := &cobra.Command{
		Use:           "btx-ops",
		Short:         "Deploy, administer and exercise the BTX token contracts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "config.yaml", "path to configuration file")
	pf.StringSliceVar(&flags.envFiles, "env-file", []string{".env"}, "env files loaded before the configuration")
	pf.BoolVar(&flags.estimate, "estimate", false, "estimate gas instead of sending transactions")
	pf.StringVar(&flags.logLevel, "log-level", "", "override logging.level")

	root.AddCommand(
		newDeployCommand(rt),
		newUpgradeCommand(rt),
		newTokenCommand(rt),
		newAirdropCommand(rt),
		newTxCommand(rt),
		newSwapCommand(rt),
	)
	return root, rt
}

// runtime carries what PersistentPreRunE resolved to the subcommands
type runtime struct {
	flags   *rootFlags
	cfg     *config.Config
	logger  *zap.Logger
	closers []func()
}

func (rt *runtime) init(cmd *cobra.Command) error {
	if err := config.LoadEnvFiles(rt.flags.envFiles...); err != nil {
		return err
	}

	cfg, err := config.Load(rt.flags.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if rt.flags.logLevel != "" {
		cfg.Logging.Level = rt.flags.logLevel
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	rt.cfg = cfg
	rt.logger = logger.With(zap.String("command", cmd.CommandPath()))
	return nil
}

func (rt *runtime) onClose(fn func()) {
	rt.closers = append(rt.closers, fn)
}

func (rt *runtime) close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
	rt.closers = nil
	if rt.logger != nil {
		_ = rt.logger.Sync()
	}
}

func (rt *runtime) estimate() bool {
	return rt.flags.estimate
}
