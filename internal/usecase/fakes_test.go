package usecase

import (
	"errors"
	"io/fs"
	"sync"

	"github.com/aalvaropc/usbsim/internal/domain"
)

// memStore is an in-memory TextStore.
type memStore struct {
	mu       sync.Mutex
	files    map[string]string
	writeErr map[string]error
	readErr  map[string]error
	// onWrite lets a test alter what actually lands on "disk".
	onWrite func(path, content string) string
}

func newMemStore() *memStore {
	return &memStore{
		files:    map[string]string{},
		writeErr: map[string]error{},
		readErr:  map[string]error{},
	}
}

func (m *memStore) WriteText(path, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.writeErr[path]; err != nil {
		return &domain.OpError{Op: "mem.write", Kind: domain.KindIO, Path: path, Err: err}
	}
	if m.onWrite != nil {
		content = m.onWrite(path, content)
	}
	m.files[path] = content
	return nil
}

func (m *memStore) ReadText(path string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.readErr[path]; err != nil {
		return "", &domain.OpError{Op: "mem.read", Kind: domain.KindIO, Path: path, Err: err}
	}
	s, ok := m.files[path]
	if !ok {
		return "", &domain.OpError{Op: "mem.read", Kind: domain.KindIO, Path: path, Err: fs.ErrNotExist}
	}
	return s, nil
}

func (m *memStore) has(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok
}

var errDiskFull = errors.New("disk full")

// recordingReporter keeps every event it receives.
type recordingReporter struct {
	events []domain.Event
}

func (r *recordingReporter) Report(ev domain.Event) {
	r.events = append(r.events, ev)
}

func (r *recordingReporter) kinds() []domain.EventKind {
	out := make([]domain.EventKind, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Kind)
	}
	return out
}

func (r *recordingReporter) ofKind(kind domain.EventKind) []domain.Event {
	var out []domain.Event
	for _, ev := range r.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}
