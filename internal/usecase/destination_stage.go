package usecase

import (
	"github.com/aalvaropc/usbsim/internal/domain"
	"github.com/aalvaropc/usbsim/internal/ports"
)

// DestinationStage accumulates received records, writes them out as text and
// verifies the written file against the original content.
type DestinationStage struct {
	stageDeps
	store    ports.TextStore
	path     string
	records  domain.Payload
	readBack string
	life     *domain.Lifecycle
}

func NewDestinationStage(store ports.TextStore, path string, opts ...StageOption) *DestinationStage {
	return &DestinationStage{
		stageDeps: newStageDeps(opts),
		store:     store,
		path:      path,
		records:   domain.Payload{},
		life:      domain.NewAccumulatingLifecycle("destination"),
	}
}

func (d *DestinationStage) Path() string { return d.path }

func (d *DestinationStage) State() domain.StageState { return d.life.State() }

// Records returns a copy of what has been received so far.
func (d *DestinationStage) Records() domain.Payload { return d.records.Clone() }

// ReadBack is the destination content seen by the last VerifyIntegrity.
func (d *DestinationStage) ReadBack() string { return d.readBack }

// Receive appends payload to the stored records, preserving order.
func (d *DestinationStage) Receive(payload domain.Payload) error {
	if err := d.life.Advance(domain.StateLoaded); err != nil {
		return err
	}

	start := len(d.records)
	d.records = append(d.records, payload...)
	total := len(d.records)

	for i := start; i < total; i++ {
		d.emit(recordEvent(domain.EventRecordReceived, domain.PhaseReceiver, i, total, d.records[i]))
	}
	for i := start; i < total; i++ {
		d.emit(recordEvent(domain.EventRecordStored, domain.PhaseReceiver, i, total, d.records[i]))
	}
	return nil
}

// Reconstruct concatenates the stored characters in stored order.
func (d *DestinationStage) Reconstruct() string {
	return d.records.Text()
}

// Write persists the reconstructed text, overwriting any existing file.
func (d *DestinationStage) Write() error {
	if err := d.life.Check(domain.StatePersisted); err != nil {
		return err
	}

	text := d.Reconstruct()
	if err := d.store.WriteText(d.path, text); err != nil {
		d.life.Fail()
		d.log.Error("destination.write.failed", "path", d.path, "err", err)
		return err
	}
	_ = d.life.Advance(domain.StatePersisted)

	d.log.Info("destination.written", "path", d.path, "bytes", len(text))
	d.emit(domain.Event{
		Kind:    domain.EventDestinationWritten,
		Phase:   domain.PhaseReceiver,
		Path:    d.path,
		Content: text,
		Total:   len(d.records),
	})
	return nil
}

// VerifyIntegrity reads the destination file back and reports whether it is
// exactly equal to original. A mismatch is a result, not an error.
func (d *DestinationStage) VerifyIntegrity(original string) (bool, error) {
	if err := d.life.Check(domain.StateVerified); err != nil {
		return false, err
	}

	got, err := d.store.ReadText(d.path)
	if err != nil {
		d.life.Fail()
		d.log.Error("destination.read.failed", "path", d.path, "err", err)
		return false, err
	}
	_ = d.life.Advance(domain.StateVerified)
	d.readBack = got

	ok := got == original
	if ok {
		d.log.Info("destination.verify.ok", "path", d.path)
	} else {
		d.log.Warn("destination.verify.mismatch", "path", d.path, "expected", original, "got", got)
	}

	d.emit(domain.Event{
		Kind:     domain.EventVerified,
		Phase:    domain.PhaseReceiver,
		Path:     d.path,
		Content:  got,
		Expected: original,
		Outcome:  ok,
	})
	return ok, nil
}
