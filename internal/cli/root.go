package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/usbsim/internal/domain"
	"github.com/aalvaropc/usbsim/internal/infra/logger"
)

// Exit codes.
const (
	exitOK       = 0
	exitFailure  = 1
	exitMismatch = 2
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case domain.IsKind(err, domain.KindIntegrity), errors.Is(err, domain.ErrIntegrityMismatch):
		return exitMismatch
	default:
		return exitFailure
	}
}

// logPath is the active log file, or "" when logging fell back to discard.
func logPath() string {
	if logger.IsReady() != nil {
		return ""
	}
	return logger.Path()
}

type rootFlags struct {
	workspace string

	source string
	dest   string
	format string
	delay  time.Duration

	faultAt int

	interactive bool
	debug       bool
}

func newRootCmd() *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:          "usbsim [content]",
		Short:        "usbsim — narrated simulation of a USB file transfer",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd, f, args)
			if err != nil {
				return err
			}

			cleanup, _ := logger.Setup(logger.Config{
				Root:   s.root,
				Debug:  f.debug,
				Stderr: cmd.ErrOrStderr(),
			})
			if cleanup != nil {
				defer func() { _ = cleanup() }()
			}
			s.logPath = logPath()
			if f.debug && s.logPath != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "logging to %s\n", s.logPath)
			}

			return runTransfer(cmd, s, f.interactive)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.workspace, "workspace", "w", "", "Workspace root (optional; autodetected from usbsim.yaml)")
	fl.StringVar(&f.source, "source", "", "Source file path (default archivo_a.txt)")
	fl.StringVar(&f.dest, "dest", "", "Destination file path (default archivo_recibido.txt)")
	fl.StringVar(&f.format, "format", "", "Output format: pretty|plain|json (default pretty)")
	fl.DurationVar(&f.delay, "delay", 0, "Pause after each narrated step (default 250ms)")
	fl.IntVar(&f.faultAt, "fault-at", domain.NoFault, "Make the channel fail on this record index (-1 disables)")
	fl.BoolVarP(&f.interactive, "interactive", "i", false, "Run the interactive simulator")

	cmd.PersistentFlags().BoolVar(&f.debug, "debug", false, "enable verbose logging to .usbsim/logs/usbsim.log and stderr")

	cmd.AddCommand(encodeCmd())
	cmd.AddCommand(initCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}
