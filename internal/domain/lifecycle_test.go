package domain

import (
	"errors"
	"testing"
)

func TestLifecycle_ForwardPass(t *testing.T) {
	l := NewAccumulatingLifecycle("destination")
	for _, to := range []StageState{StateLoaded, StateLoaded, StatePersisted, StateVerified} {
		if err := l.Advance(to); err != nil {
			t.Fatalf("advance to %s: %v", to, err)
		}
	}
	if l.State() != StateVerified {
		t.Fatalf("expected verified, got %s", l.State())
	}
}

func TestLifecycle_RejectsSkipsAndLoops(t *testing.T) {
	cases := []struct {
		name  string
		steps []StageState
	}{
		{"skip loaded", []StageState{StatePersisted}},
		{"skip persisted", []StageState{StateLoaded, StateVerified}},
		{"back to loaded", []StageState{StateLoaded, StatePersisted, StateLoaded}},
		{"verify twice", []StageState{StateLoaded, StatePersisted, StateVerified, StateVerified}},
		{"persist twice", []StageState{StateLoaded, StatePersisted, StatePersisted}},
		{"load twice", []StageState{StateLoaded, StateLoaded}},
		{"past verified", []StageState{StateLoaded, StatePersisted, StateVerified, StateFailed}},
	}

	for _, c := range cases {
		l := NewLifecycle("source")
		var err error
		for _, to := range c.steps {
			if err = l.Advance(to); err != nil {
				break
			}
		}
		if err == nil {
			t.Errorf("%s: expected error", c.name)
			continue
		}
		if !IsKind(err, KindInvalidState) || !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
	}
}

func TestLifecycle_FailIsTerminal(t *testing.T) {
	for _, l := range []*Lifecycle{NewLifecycle("source"), NewAccumulatingLifecycle("destination")} {
		if err := l.Advance(StateLoaded); err != nil {
			t.Fatal(err)
		}
		l.Fail()
		if l.State() != StateFailed {
			t.Fatalf("%s: expected failed, got %s", l.Stage, l.State())
		}
		for _, to := range []StageState{StateEmpty, StateLoaded, StatePersisted, StateVerified} {
			err := l.Advance(to)
			if !IsKind(err, KindInvalidState) || !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("%s: failed -> %s: expected invalid state, got %v", l.Stage, to, err)
			}
		}
	}
}

func TestStageStateString(t *testing.T) {
	if StatePersisted.String() != "persisted" {
		t.Fatalf("got %q", StatePersisted.String())
	}
	if StateFailed.String() != "failed" {
		t.Fatalf("got %q", StateFailed.String())
	}
	if StageState(9).String() != "state(9)" {
		t.Fatalf("got %q", StageState(9).String())
	}
}

func TestLifecycle_CheckDoesNotMove(t *testing.T) {
	l := NewLifecycle("destination")
	if err := l.Check(StateLoaded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.State() != StateEmpty {
		t.Fatalf("Check moved the state to %s", l.State())
	}
}
