package usecase

import (
	"github.com/aalvaropc/usbsim/internal/domain"
	"github.com/aalvaropc/usbsim/internal/ports"
)

// SourceStage owns the source payload: it writes the source file, reads it
// back and turns its text into byte records.
type SourceStage struct {
	stageDeps
	store   ports.TextStore
	path    string
	written string
	life    *domain.Lifecycle
}

func NewSourceStage(store ports.TextStore, path string, opts ...StageOption) *SourceStage {
	return &SourceStage{
		stageDeps: newStageDeps(opts),
		store:     store,
		path:      path,
		life:      domain.NewLifecycle("source"),
	}
}

func (s *SourceStage) Path() string { return s.path }

func (s *SourceStage) State() domain.StageState { return s.life.State() }

// Create persists content to the source path.
func (s *SourceStage) Create(content string) error {
	if err := s.life.Advance(domain.StateLoaded); err != nil {
		return err
	}
	s.written = content

	if err := s.life.Check(domain.StatePersisted); err != nil {
		return err
	}
	if err := s.store.WriteText(s.path, content); err != nil {
		s.life.Fail()
		s.log.Error("source.write.failed", "path", s.path, "err", err)
		return err
	}
	_ = s.life.Advance(domain.StatePersisted)

	s.log.Info("source.written", "path", s.path, "bytes", len(content))
	s.emit(domain.Event{
		Kind:    domain.EventSourceWritten,
		Phase:   domain.PhaseSender,
		Path:    s.path,
		Content: content,
	})
	return nil
}

// Read returns the persisted source content.
func (s *SourceStage) Read() (string, error) {
	if err := s.life.Check(domain.StateVerified); err != nil {
		return "", err
	}

	got, err := s.store.ReadText(s.path)
	if err != nil {
		s.life.Fail()
		s.log.Error("source.read.failed", "path", s.path, "err", err)
		return "", err
	}
	_ = s.life.Advance(domain.StateVerified)

	if got != s.written {
		s.log.Warn("source.read.changed", "path", s.path, "written", s.written, "read", got)
	}

	s.emit(domain.Event{
		Kind:    domain.EventSourceRead,
		Phase:   domain.PhaseSender,
		Path:    s.path,
		Content: got,
	})
	return got, nil
}

// ToByteRecords maps content to its payload, one record per character.
func (s *SourceStage) ToByteRecords(content string) (domain.Payload, error) {
	payload, err := domain.EncodePayload(content)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "source.to_byte_records",
			Kind: domain.KindEncoding,
			Path: s.path,
			Err:  err,
		}
	}

	for i, rec := range payload {
		s.emit(recordEvent(domain.EventRecordLoaded, domain.PhaseSender, i, len(payload), rec))
	}
	return payload, nil
}

// Transmit hands the payload to the USB controller. It only narrates: the
// returned payload is a copy of the input.
func (s *SourceStage) Transmit(payload domain.Payload) domain.Payload {
	s.emit(domain.Event{
		Kind:  domain.EventChannelReady,
		Phase: domain.PhaseSender,
		Total: len(payload),
	})
	for i, rec := range payload {
		s.emit(recordEvent(domain.EventRecordSent, domain.PhaseSender, i, len(payload), rec))
	}
	return payload.Clone()
}
