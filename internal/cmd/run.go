package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/buttongroup/internal/app"
	"github.com/dshills/buttongroup/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive terminal host",
	Long: `Mount the layout and draw it in the terminal.

Keys:
  tab / shift-tab   select group
  left / right      move between buttons
  enter / space     press the highlighted button
  d                 toggle the group's disabled state
  q / esc           quit`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var (
	errLayoutRequired = errors.New("--layout is required")
	errNotTerminal    = errors.New("run needs a terminal; use show for non-interactive output")
)

var (
	runWatch   bool
	runLogFile string
)

func init() {
	runCmd.Flags().BoolVarP(&runWatch, "watch", "w", false, "reload the layout when the file changes")
	runCmd.Flags().StringVar(&runLogFile, "log-file", "", "write logs to this file (logs are discarded otherwise)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	// The terminal belongs to the host; logs go to a file or nowhere.
	var logOutput io.Writer = io.Discard
	if runLogFile != "" {
		f, err := os.OpenFile(runLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOutput = f
	}

	application, err := newApplication(logOutput, runWatch)
	if err != nil {
		return err
	}

	host, err := tui.NewTerminal(application)
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return host.Run(ctx)
}

// newApplication builds an application from the global flags and mounts
// its layout.
func newApplication(logOutput io.Writer, watch bool) (*app.Application, error) {
	if layoutPath == "" {
		return nil, errLayoutRequired
	}

	application, err := app.New(app.Options{
		ConfigPath: configPath,
		LayoutPath: layoutPath,
		Watch:      watch,
		LogLevel:   logLevel,
		LogOutput:  logOutput,
	})
	if err != nil {
		return nil, err
	}
	if err := application.Load(); err != nil {
		return nil, err
	}
	return application, nil
}
