package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/aalvaropc/usbsim/internal/domain"
	"github.com/aalvaropc/usbsim/internal/infra/textfile"
)

func fixedID() string { return "t-1" }

func fixedClock() func() time.Time {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func TestRunTransfer_ReferenceCase(t *testing.T) {
	dir := t.TempDir()
	req := domain.TransferRequest{
		Content:         "a",
		SourcePath:      filepath.Join(dir, "archivo_a.txt"),
		DestinationPath: filepath.Join(dir, "archivo_recibido.txt"),
	}

	uc := NewRunTransfer(textfile.New(), WithIDGenerator(fixedID))
	res, err := uc.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.Payload{{Character: 'a', CodePoint: 97, Hex: "61", Binary: "01100001"}}
	if diff := cmp.Diff(want, res.Payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if !res.Outcome {
		t.Fatal("expected outcome=true")
	}
	if res.ID != "t-1" || res.Received != "a" {
		t.Fatalf("unexpected result %+v", res)
	}

	for _, p := range []string{req.SourcePath, req.DestinationPath} {
		b, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		if string(b) != "a" {
			t.Fatalf("expected %s to contain a, got %q", p, b)
		}
	}
}

func TestRunTransfer_MultiCharacterKeepsOrder(t *testing.T) {
	store := newMemStore()
	uc := NewRunTransfer(store)

	res, err := uc.Execute(context.Background(), domain.TransferRequest{
		Content:         "abc",
		SourcePath:      "src.txt",
		DestinationPath: "dst.txt",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Outcome || store.files["dst.txt"] != "abc" {
		t.Fatalf("expected abc to round trip, got outcome=%v dst=%q", res.Outcome, store.files["dst.txt"])
	}
	for i, want := range "abc" {
		if res.Payload[i].Character != want {
			t.Fatalf("record %d: got %q want %q", i, res.Payload[i].Character, want)
		}
	}
}

func TestRunTransfer_EmptyContent(t *testing.T) {
	store := newMemStore()
	uc := NewRunTransfer(store)

	res, err := uc.Execute(context.Background(), domain.TransferRequest{
		SourcePath:      "src.txt",
		DestinationPath: "dst.txt",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Outcome {
		t.Fatal("expected empty transfer to verify")
	}
	if len(res.Payload) != 0 {
		t.Fatalf("expected empty payload, got %v", res.Payload)
	}
	if !store.has("dst.txt") {
		t.Fatal("expected destination file to be written")
	}
}

func TestRunTransfer_EventSequence(t *testing.T) {
	rep := &recordingReporter{}
	uc := NewRunTransfer(newMemStore(),
		WithReporter(rep),
		WithIDGenerator(fixedID),
		WithClock(fixedClock()),
	)

	if _, err := uc.Execute(context.Background(), domain.TransferRequest{
		Content: "ab", SourcePath: "src.txt", DestinationPath: "dst.txt",
	}); err != nil {
		t.Fatal(err)
	}

	want := []domain.EventKind{
		domain.EventTransferStarted,
		domain.EventPhaseStarted,
		domain.EventSourceWritten,
		domain.EventSourceRead,
		domain.EventRecordLoaded, domain.EventRecordLoaded,
		domain.EventChannelReady,
		domain.EventRecordSent, domain.EventRecordSent,
		domain.EventPhaseStarted,
		domain.EventRecordRelayed, domain.EventRecordRelayed,
		domain.EventPhaseStarted,
		domain.EventRecordReceived, domain.EventRecordReceived,
		domain.EventRecordStored, domain.EventRecordStored,
		domain.EventDestinationWritten,
		domain.EventVerified,
		domain.EventTransferFinished,
	}
	if diff := cmp.Diff(want, rep.kinds()); diff != "" {
		t.Fatalf("event sequence mismatch (-want +got):\n%s", diff)
	}

	for _, ev := range rep.events {
		if ev.TransferID != "t-1" {
			t.Fatalf("event %s missing transfer id", ev.Kind)
		}
		if ev.At.IsZero() {
			t.Fatalf("event %s missing timestamp", ev.Kind)
		}
	}

	phases := rep.ofKind(domain.EventPhaseStarted)
	gotPhases := []domain.Phase{phases[0].Phase, phases[1].Phase, phases[2].Phase}
	wantPhases := []domain.Phase{domain.PhaseSender, domain.PhaseChannel, domain.PhaseReceiver}
	if diff := cmp.Diff(wantPhases, gotPhases); diff != "" {
		t.Fatalf("phase mismatch (-want +got):\n%s", diff)
	}

	last := rep.events[len(rep.events)-1]
	if !last.Outcome || last.Total != 2 || last.Dest != "dst.txt" {
		t.Fatalf("unexpected finished event %+v", last)
	}
}

func TestRunTransfer_SourceUnwritable(t *testing.T) {
	store := newMemStore()
	store.writeErr["src.txt"] = errDiskFull
	rep := &recordingReporter{}
	uc := NewRunTransfer(store, WithReporter(rep))

	res, err := uc.Execute(context.Background(), domain.TransferRequest{
		Content: "a", SourcePath: "src.txt", DestinationPath: "dst.txt",
	})
	if !domain.IsKind(err, domain.KindIO) || !errors.Is(err, errDiskFull) {
		t.Fatalf("expected io error, got %v", err)
	}
	if res.Outcome {
		t.Fatal("expected outcome=false on failure")
	}
	if res.EndedAt.IsZero() {
		t.Fatal("expected EndedAt to be set on failure")
	}
	if store.has("dst.txt") {
		t.Fatal("destination must not be written after a source failure")
	}
	if n := len(rep.ofKind(domain.EventTransferFinished)); n != 0 {
		t.Fatalf("expected no finished event, got %d", n)
	}
}

func TestRunTransfer_DestinationUnwritable(t *testing.T) {
	store := newMemStore()
	store.writeErr["dst.txt"] = errDiskFull
	uc := NewRunTransfer(store)

	_, err := uc.Execute(context.Background(), domain.TransferRequest{
		Content: "a", SourcePath: "src.txt", DestinationPath: "dst.txt",
	})
	if !domain.IsKind(err, domain.KindIO) {
		t.Fatalf("expected io error, got %v", err)
	}
}

func TestRunTransfer_EncodingError(t *testing.T) {
	store := newMemStore()
	uc := NewRunTransfer(store)

	_, err := uc.Execute(context.Background(), domain.TransferRequest{
		Content: "a€", SourcePath: "src.txt", DestinationPath: "dst.txt",
	})
	if !domain.IsKind(err, domain.KindEncoding) {
		t.Fatalf("expected encoding error, got %v", err)
	}
	if store.has("dst.txt") {
		t.Fatal("destination must not be written after an encoding failure")
	}
}

func TestRunTransfer_ChannelFault(t *testing.T) {
	store := newMemStore()
	uc := NewRunTransfer(store, WithFaultInjector(FailAt(1)))

	_, err := uc.Execute(context.Background(), domain.TransferRequest{
		Content: "abc", SourcePath: "src.txt", DestinationPath: "dst.txt",
	})
	if !errors.Is(err, domain.ErrChannelFault) {
		t.Fatalf("expected channel fault, got %v", err)
	}
	if store.has("dst.txt") {
		t.Fatal("destination must not be written after a channel fault")
	}
}

func TestRunTransfer_MismatchIsAResult(t *testing.T) {
	store := newMemStore()
	store.onWrite = func(path, content string) string {
		if path == "dst.txt" {
			return "b"
		}
		return content
	}
	uc := NewRunTransfer(store)

	res, err := uc.Execute(context.Background(), domain.TransferRequest{
		Content: "a", SourcePath: "src.txt", DestinationPath: "dst.txt",
	})
	if err != nil {
		t.Fatalf("mismatch must not be an error, got %v", err)
	}
	if res.Outcome {
		t.Fatal("expected outcome=false")
	}
	if res.Received != "b" {
		t.Fatalf("expected received b, got %q", res.Received)
	}
}

func TestRunTransfer_ContextCancelledBeforeStart(t *testing.T) {
	store := newMemStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunTransfer(store).Execute(ctx, domain.TransferRequest{
		Content: "a", SourcePath: "src.txt", DestinationPath: "dst.txt",
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if store.has("src.txt") {
		t.Fatal("nothing should be written after cancellation")
	}
}

// cancelOnReporter cancels the run as soon as it sees kind.
type cancelOnReporter struct {
	kind   domain.EventKind
	cancel context.CancelFunc
}

func (r cancelOnReporter) Report(ev domain.Event) {
	if ev.Kind == r.kind {
		r.cancel()
	}
}

func TestRunTransfer_ContextCancelledBetweenStages(t *testing.T) {
	store := newMemStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	uc := NewRunTransfer(store, WithReporter(cancelOnReporter{kind: domain.EventChannelReady, cancel: cancel}))
	_, err := uc.Execute(ctx, domain.TransferRequest{
		Content: "a", SourcePath: "src.txt", DestinationPath: "dst.txt",
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !store.has("src.txt") {
		t.Fatal("expected the sender stage to have completed")
	}
	if store.has("dst.txt") {
		t.Fatal("receiver stage must not run after cancellation")
	}
}

func TestRunTransfer_DefaultIDIsUUID(t *testing.T) {
	res, err := NewRunTransfer(newMemStore()).Execute(context.Background(), domain.TransferRequest{
		Content: "a", SourcePath: "src.txt", DestinationPath: "dst.txt",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.ID) != 36 {
		t.Fatalf("expected uuid, got %q", res.ID)
	}
}
