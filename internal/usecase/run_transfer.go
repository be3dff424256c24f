package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aalvaropc/usbsim/internal/domain"
	"github.com/aalvaropc/usbsim/internal/ports"
)

// RunTransfer drives one sequential pass: source -> channel -> destination.
type RunTransfer struct {
	store    ports.TextStore
	reporter ports.Reporter
	fault    ports.FaultInjector
	log      *slog.Logger
	newID    func() string
	now      func() time.Time
}

type Option func(*RunTransfer)

func WithReporter(r ports.Reporter) Option {
	return func(uc *RunTransfer) {
		if r != nil {
			uc.reporter = r
		}
	}
}

func WithFaultInjector(f ports.FaultInjector) Option {
	return func(uc *RunTransfer) { uc.fault = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(uc *RunTransfer) {
		if l != nil {
			uc.log = l
		}
	}
}

// WithIDGenerator is useful for tests.
func WithIDGenerator(gen func() string) Option {
	return func(uc *RunTransfer) { uc.newID = gen }
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) Option {
	return func(uc *RunTransfer) { uc.now = now }
}

func NewRunTransfer(store ports.TextStore, opts ...Option) *RunTransfer {
	uc := &RunTransfer{
		store:    store,
		reporter: nopReporter{},
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute runs the pipeline once. I/O, encoding and channel failures abort the
// run and are returned; a content mismatch is reported through
// TransferResult.Outcome. The context is only consulted between stages.
func (uc *RunTransfer) Execute(ctx context.Context, req domain.TransferRequest) (domain.TransferResult, error) {
	id := uc.newID()
	log := uc.log.With("transfer_id", id)

	res := domain.TransferResult{
		ID:              id,
		SourcePath:      req.SourcePath,
		DestinationPath: req.DestinationPath,
		Content:         req.Content,
		StartedAt:       uc.now(),
	}

	stageOpts := []StageOption{
		WithStageReporter(uc.reporter),
		WithStageLogger(log),
		WithTransferID(id),
		withStageClock(uc.now),
	}
	deps := newStageDeps(stageOpts)

	source := NewSourceStage(uc.store, req.SourcePath, stageOpts...)
	channel := NewChannel(uc.fault, stageOpts...)
	dest := NewDestinationStage(uc.store, req.DestinationPath, stageOpts...)

	fail := func(err error) (domain.TransferResult, error) {
		res.EndedAt = uc.now()
		log.Error("transfer.failed", "err", err)
		return res, err
	}

	log.Info("transfer.start",
		"source", req.SourcePath,
		"destination", req.DestinationPath,
		"chars", len([]rune(req.Content)),
	)
	deps.emit(domain.Event{
		Kind:    domain.EventTransferStarted,
		Path:    req.SourcePath,
		Dest:    req.DestinationPath,
		Content: req.Content,
	})

	// Sender.
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	deps.emit(domain.Event{Kind: domain.EventPhaseStarted, Phase: domain.PhaseSender})

	if err := source.Create(req.Content); err != nil {
		return fail(err)
	}
	content, err := source.Read()
	if err != nil {
		return fail(err)
	}
	payload, err := source.ToByteRecords(content)
	if err != nil {
		return fail(err)
	}
	res.Payload = payload
	sent := source.Transmit(payload)

	// Channel.
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	deps.emit(domain.Event{Kind: domain.EventPhaseStarted, Phase: domain.PhaseChannel, Total: len(sent)})

	relayed, err := channel.Relay(sent)
	if err != nil {
		return fail(err)
	}

	// Receiver.
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	deps.emit(domain.Event{Kind: domain.EventPhaseStarted, Phase: domain.PhaseReceiver, Total: len(relayed)})

	if err := dest.Receive(relayed); err != nil {
		return fail(err)
	}
	if err := dest.Write(); err != nil {
		return fail(err)
	}
	ok, err := dest.VerifyIntegrity(req.Content)
	if err != nil {
		return fail(err)
	}

	res.Received = dest.ReadBack()
	res.Outcome = ok
	res.EndedAt = uc.now()

	log.Info("transfer.done", "outcome", ok, "bytes", len(payload), "duration", res.EndedAt.Sub(res.StartedAt))
	deps.emit(domain.Event{
		Kind:     domain.EventTransferFinished,
		Total:    len(payload),
		Path:     req.SourcePath,
		Dest:     req.DestinationPath,
		Content:  res.Received,
		Expected: req.Content,
		Outcome:  ok,
	})
	return res, nil
}
