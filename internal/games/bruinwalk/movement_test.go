package bruinwalk

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/bruin-walk/internal/core"
)

const testCell = 2.5

func isCellMultiple(v float64) bool {
	k := v / testCell
	return k == math.Trunc(k)
}

func TestHopHeight(t *testing.T) {
	tests := []struct {
		c    float64
		want float64
	}{
		{0, 0},
		{1.25, 3.125},
		{2.5, 0},
		{0.5, 2},
		{2, 2},
		{-1, 0},
		{3, 0},
	}
	for _, tt := range tests {
		if got := HopHeight(testCell, tt.c); got != tt.want {
			t.Errorf("HopHeight(%v) = %v, want %v", tt.c, got, tt.want)
		}
	}

	// Peak sits at the middle of the cell and the arc never dips below ground.
	peak := HopHeight(testCell, testCell/2)
	for c := 0.0; c <= testCell; c += 0.01 {
		h := HopHeight(testCell, c)
		if h < 0 || h > peak {
			t.Fatalf("HopHeight(%v) = %v outside [0, %v]", c, h, peak)
		}
	}
}

func TestMoverForwardHop(t *testing.T) {
	m := NewMover(testCell, 1)
	if !m.Begin(IntentForward, 0) {
		t.Fatal("Begin rejected on idle mover")
	}

	if m.Advance(1.25) {
		t.Fatal("move finished halfway")
	}
	if got := m.Grid().Y(); got != 1.25 {
		t.Errorf("y at t=1.25 = %v, want 1.25", got)
	}
	if got := m.Hop(); got != 3.125 {
		t.Errorf("hop at t=1.25 = %v, want 3.125", got)
	}
	if got := m.Progress(); got != 0.5 {
		t.Errorf("progress at t=1.25 = %v, want 0.5", got)
	}

	if !m.Advance(2.5) {
		t.Fatal("move not finished at t=2.5")
	}
	if got := m.Grid(); got != (mgl64.Vec2{0, 2.5}) {
		t.Errorf("position = %v, want [0 2.5]", got)
	}
	if m.Hop() != 0 || m.State() != MoveIdle || m.Intent() != IntentNone {
		t.Errorf("mover not idle after move: hop=%v state=%v intent=%v", m.Hop(), m.State(), m.Intent())
	}
}

func TestMoverDirections(t *testing.T) {
	tests := []struct {
		in   Intent
		want mgl64.Vec2
	}{
		{IntentForward, mgl64.Vec2{0, 2.5}},
		{IntentBackward, mgl64.Vec2{0, -2.5}},
		{IntentLeft, mgl64.Vec2{-2.5, 0}},
		{IntentRight, mgl64.Vec2{2.5, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			m := NewMover(testCell, 1)
			m.Begin(tt.in, 10)
			m.Advance(10.3)
			if m.Grid() == tt.want {
				t.Fatal("move finished too early")
			}
			m.Advance(13)
			if got := m.Grid(); got != tt.want {
				t.Errorf("position = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMoverRejectsSecondMove(t *testing.T) {
	m := NewMover(testCell, 1)
	m.Begin(IntentForward, 0)
	if m.Begin(IntentLeft, 0.1) {
		t.Error("Begin accepted while moving")
	}
	if m.Begin(IntentNone, 0.1) {
		t.Error("Begin accepted IntentNone")
	}
	m.Advance(2.5)
	if !m.Begin(IntentLeft, 2.5) {
		t.Error("Begin rejected after move finished")
	}
}

func TestMoverIdleAdvanceIsNoop(t *testing.T) {
	m := NewMover(testCell, 1)
	if m.Advance(100) {
		t.Error("idle Advance reported a finished move")
	}
	if m.Position() != (mgl64.Vec3{}) {
		t.Errorf("idle mover moved to %v", m.Position())
	}
}

func TestMoverNoDrift(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	intents := []Intent{IntentForward, IntentBackward, IntentLeft, IntentRight}
	m := NewMover(testCell, 1)

	const dt = 1.0 / 60
	now := 0.0
	var cx, cy int
	for i := 0; i < 300; i++ {
		in := intents[rng.Intn(len(intents))]
		m.Begin(in, now)
		for m.State() == MoveMoving {
			now += dt
			m.Advance(now)
		}

		step := in.step()
		cx += int(step.X())
		cy += int(step.Y())

		p := m.Grid()
		if !isCellMultiple(p.X()) || !isCellMultiple(p.Y()) {
			t.Fatalf("move %d left position %v off the grid", i, p)
		}
		if x, y := m.Cell(); x != cx || y != cy {
			t.Fatalf("move %d cell = (%d, %d), want (%d, %d)", i, x, y, cx, cy)
		}
	}
}

func TestIntentNames(t *testing.T) {
	for _, in := range []Intent{IntentForward, IntentBackward, IntentLeft, IntentRight} {
		got, ok := ParseIntent(in.String())
		if !ok || got != in {
			t.Errorf("ParseIntent(%q) = %v, %v", in.String(), got, ok)
		}
		if IntentFromAction(in.Action()) != in {
			t.Errorf("action round trip lost %v", in)
		}
	}
	if _, ok := ParseIntent("none"); ok {
		t.Error("ParseIntent accepted none")
	}
	if _, ok := ParseIntent("jump"); ok {
		t.Error("ParseIntent accepted jump")
	}
	if IntentFromAction(core.ActionPause) != IntentNone {
		t.Error("pause mapped to a move")
	}
}
