package core

import "testing"

func TestActionNames(t *testing.T) {
	if ActionForward.String() != "Forward" || ActionPause.String() != "Pause" {
		t.Errorf("unexpected names %q, %q", ActionForward.String(), ActionPause.String())
	}
	if Action(99).String() != "Unknown" {
		t.Error("out of range action should stringify as Unknown")
	}
}

func TestActionIsMovement(t *testing.T) {
	tests := []struct {
		a        Action
		expected bool
	}{
		{ActionForward, true},
		{ActionBackward, true},
		{ActionLeft, true},
		{ActionRight, true},
		{ActionPause, false},
		{ActionNone, false},
		{ActionRestart, false},
	}
	for _, tc := range tests {
		if got := tc.a.IsMovement(); got != tc.expected {
			t.Errorf("%v.IsMovement() = %v, expected %v", tc.a, got, tc.expected)
		}
	}
}

func TestInputFrame(t *testing.T) {
	f := InputFrameOf(ActionRight, ActionForward)

	if !f.Has(ActionForward) || !f.Has(ActionRight) {
		t.Fatal("InputFrameOf should set all given actions")
	}
	if f.Has(ActionLeft) {
		t.Error("unset action reported as present")
	}

	list := f.List()
	if len(list) != 2 || list[0] != ActionForward || list[1] != ActionRight {
		t.Errorf("List() = %v, expected [Forward Right]", list)
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}

	var zero InputFrame
	if zero.Has(ActionForward) || !zero.Empty() {
		t.Error("zero frame should be empty")
	}
}
