package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/aalvaropc/usbsim/internal/domain"
	"github.com/aalvaropc/usbsim/internal/ports"
	"github.com/aalvaropc/usbsim/internal/ui/console"
)

// TransferFunc runs one transfer, reporting every event to r.
type TransferFunc func(ctx context.Context, r ports.Reporter) (domain.TransferResult, error)

type Deps struct {
	Transfer TransferFunc
	Renderer *console.Renderer

	Content string
	Delay   time.Duration

	Logger  *slog.Logger
	LogPath string
}
