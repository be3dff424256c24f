package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/usbsim/internal/domain"
	"github.com/aalvaropc/usbsim/internal/infra/logger"
	"github.com/aalvaropc/usbsim/internal/infra/textfile"
	"github.com/aalvaropc/usbsim/internal/ports"
	"github.com/aalvaropc/usbsim/internal/ui/console"
	"github.com/aalvaropc/usbsim/internal/ui/tui"
	"github.com/aalvaropc/usbsim/internal/usecase"
)

func runTransfer(cmd *cobra.Command, s settings, interactive bool) error {
	log := logger.L()
	store := textfile.New(textfile.WithMkdirs(true))
	fault := usecase.FailAt(s.cfg.Channel.FaultAt)

	req := domain.TransferRequest{
		Content:         s.cfg.Content,
		SourcePath:      s.cfg.Paths.Source,
		DestinationPath: s.cfg.Paths.Destination,
	}

	newTransfer := func(r ports.Reporter) *usecase.RunTransfer {
		return usecase.NewRunTransfer(store,
			usecase.WithReporter(r),
			usecase.WithFaultInjector(fault),
			usecase.WithLogger(log),
		)
	}

	if interactive {
		res, err := tui.Run(tui.Deps{
			Transfer: func(ctx context.Context, r ports.Reporter) (domain.TransferResult, error) {
				return newTransfer(r).Execute(ctx, req)
			},
			Content: s.cfg.Content,
			Delay:   s.cfg.Presentation.Delay,
			Logger:  log,
			LogPath: s.logPath,
		})
		if errors.Is(err, tui.ErrAborted) {
			return nil
		}
		return transferError(res, err)
	}

	reporter, err := console.New(cmd.OutOrStdout(), s.cfg.Presentation.Format, s.cfg.Presentation.Delay)
	if err != nil {
		return err
	}

	res, err := newTransfer(reporter).Execute(cmd.Context(), req)
	if jr, ok := reporter.(*console.JSONReporter); ok && err == nil {
		err = jr.Err()
	}
	return transferError(res, err)
}

// transferError turns a finished transfer into the command's error.
// A mismatch is a result of the pipeline, but a failure of the command.
func transferError(res domain.TransferResult, err error) error {
	if err != nil {
		return err
	}
	if !res.Outcome {
		return &domain.OpError{
			Op:   "cli.transfer",
			Kind: domain.KindIntegrity,
			Path: res.DestinationPath,
			Err:  domain.ErrIntegrityMismatch,
		}
	}
	return nil
}
