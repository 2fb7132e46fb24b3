package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionJump) {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionLeft)
	f.Set(ActionJump)
	if !f.Has(ActionLeft) || !f.Has(ActionJump) || f.Has(ActionRight) {
		t.Errorf("unexpected actions: %v", f.Actions)
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionLeft) {
		t.Error("Clear should remove all actions")
	}
	if !clone.Has(ActionLeft) {
		t.Error("Clone should not share storage with the original")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionPause) {
		t.Error("zero frame should report no actions")
	}
	f.Set(ActionPause)
	if !f.Has(ActionPause) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionLeft:  "Left",
		ActionRight: "Right",
		ActionJump:  "Jump",
		Action(99):  "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", int(a), got, want)
		}
	}
}

func TestFrameInterval(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.FrameInterval(); got.Milliseconds() != 16 {
		t.Errorf("FrameInterval() = %v, expected ~16ms", got)
	}
	cfg.TickRate = 0
	if got := cfg.FrameInterval(); got <= 0 {
		t.Errorf("FrameInterval() with zero rate = %v, expected a positive fallback", got)
	}
}
