package domain

import "fmt"

// StageState is the position of a file stage in its single forward pass.
type StageState int

const (
	StateEmpty StageState = iota
	StateLoaded
	StatePersisted
	StateVerified
	// StateFailed is terminal: a stage whose operation failed is not retried.
	StateFailed
)

func (s StageState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	case StatePersisted:
		return "persisted"
	case StateVerified:
		return "verified"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Lifecycle enforces Empty -> Loaded -> Persisted -> Verified, one step at a
// time and once per run. Any failure moves it to StateFailed for good.
type Lifecycle struct {
	Stage      string
	state      StageState
	accumulate bool
}

func NewLifecycle(stage string) *Lifecycle {
	return &Lifecycle{Stage: stage}
}

// NewAccumulatingLifecycle also allows Loaded -> Loaded, for a stage that
// receives its input in several parts.
func NewAccumulatingLifecycle(stage string) *Lifecycle {
	return &Lifecycle{Stage: stage, accumulate: true}
}

func (l *Lifecycle) State() StageState {
	return l.state
}

// Check reports whether moving to the given state is allowed, without moving.
func (l *Lifecycle) Check(to StageState) error {
	switch {
	case l.state == StateFailed || to > StateVerified:
	case to == l.state+1:
		return nil
	case l.accumulate && to == StateLoaded && l.state == StateLoaded:
		return nil
	}
	return &OpError{
		Op:   l.Stage + ".advance",
		Kind: KindInvalidState,
		Err:  fmt.Errorf("%s -> %s: %w", l.state, to, ErrInvalidTransition),
	}
}

func (l *Lifecycle) Advance(to StageState) error {
	if err := l.Check(to); err != nil {
		return err
	}
	l.state = to
	return nil
}

// Fail marks the stage as consumed after a failed operation.
func (l *Lifecycle) Fail() {
	l.state = StateFailed
}
