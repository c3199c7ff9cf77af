package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envRenderer = "SCENARIO_RENDERER"
	envFormat   = "SCENARIO_FORMAT"
)

// app carries the state shared by every subcommand.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string

	verbose bool
	logger  *zap.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "scenario",
		Short: "Render and validate server-driven scenario pages",
		Long: `scenario renders page payloads (ordered text, image, button and field
stages) as JSON render descriptions, standalone HTML or an interactive
terminal session, and validates answers against each field's rules.

Payloads are read from a file argument or stdin ("-").`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			config := zap.NewProductionConfig()
			config.OutputPaths = []string{"stderr"}
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newValidateCmd(a))
	root.AddCommand(newPromptCmd(a))
	root.AddCommand(newFromOpenAPICmd(a))
	return root
}

// envDefault returns the environment value for key, or fallback.
func (a *app) envDefault(key, fallback string) string {
	if a.getenv == nil {
		return fallback
	}
	if value := strings.TrimSpace(a.getenv(key)); value != "" {
		return value
	}
	return fallback
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr, getenv: os.Getenv}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
