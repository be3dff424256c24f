package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/usbsim/internal/domain"
	"github.com/aalvaropc/usbsim/internal/ports"
)

// channelReporter forwards events to the UI loop and paces them.
type channelReporter struct {
	ctx   context.Context
	ch    chan<- tea.Msg
	delay time.Duration
}

var _ ports.Reporter = channelReporter{}

func (r channelReporter) Report(ev domain.Event) {
	select {
	case r.ch <- eventMsg{ev: ev}:
	case <-r.ctx.Done():
		return
	}

	if r.delay <= 0 {
		return
	}
	t := time.NewTimer(r.delay)
	select {
	case <-t.C:
	case <-r.ctx.Done():
		t.Stop()
	}
}

func listenRunner(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			// Closed without a done message: sendDone gave up after cancellation.
			return transferDoneMsg{err: context.Canceled}
		}
		return msg
	}
}

// sendDone delivers the final message. It only blocks while nobody cancelled:
// after a forced quit the buffer may be full with no reader left.
func sendDone(ctx context.Context, ch chan<- tea.Msg, msg transferDoneMsg) bool {
	select {
	case ch <- msg:
		return true
	default:
	}
	select {
	case ch <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}

func startTransferAsync(ctx context.Context, deps Deps) (chan tea.Msg, tea.Cmd) {
	ch := make(chan tea.Msg, 16)

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer close(ch)

		if deps.Transfer == nil {
			ch <- transferDoneMsg{err: errors.New("Transfer is nil")}
			return
		}

		log.Info("tui.transfer.start", "delay_ms", deps.Delay.Milliseconds())

		res, err := deps.Transfer(ctx, channelReporter{ctx: ctx, ch: ch, delay: deps.Delay})
		if err != nil {
			log.Error("tui.transfer.failed", "err", err)
		} else {
			log.Info("tui.transfer.done", "id", res.ID, "outcome", res.Outcome)
		}

		sendDone(ctx, ch, transferDoneMsg{result: res, err: err})
	}()

	return ch, listenRunner(ch)
}
