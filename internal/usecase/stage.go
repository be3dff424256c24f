package usecase

import (
	"io"
	"log/slog"
	"time"

	"github.com/aalvaropc/usbsim/internal/domain"
	"github.com/aalvaropc/usbsim/internal/ports"
)

type nopReporter struct{}

func (nopReporter) Report(domain.Event) {}

// stageDeps carries what every stage needs besides its own collaborators.
type stageDeps struct {
	reporter   ports.Reporter
	log        *slog.Logger
	now        func() time.Time
	transferID string
}

type StageOption func(*stageDeps)

func WithStageReporter(r ports.Reporter) StageOption {
	return func(d *stageDeps) {
		if r != nil {
			d.reporter = r
		}
	}
}

func WithStageLogger(l *slog.Logger) StageOption {
	return func(d *stageDeps) {
		if l != nil {
			d.log = l
		}
	}
}

// WithTransferID stamps every emitted event with id.
func WithTransferID(id string) StageOption {
	return func(d *stageDeps) { d.transferID = id }
}

func withStageClock(now func() time.Time) StageOption {
	return func(d *stageDeps) { d.now = now }
}

func newStageDeps(opts []StageOption) stageDeps {
	d := stageDeps{
		reporter: nopReporter{},
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func (d stageDeps) emit(ev domain.Event) {
	ev.TransferID = d.transferID
	if ev.At.IsZero() {
		ev.At = d.now()
	}
	d.reporter.Report(ev)
}

func recordEvent(kind domain.EventKind, phase domain.Phase, i, total int, rec domain.ByteRecord) domain.Event {
	r := rec
	return domain.Event{
		Kind:   kind,
		Phase:  phase,
		Index:  i,
		Total:  total,
		Record: &r,
	}
}
