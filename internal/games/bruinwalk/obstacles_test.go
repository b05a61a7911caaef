package bruinwalk

import (
	"math"
	"testing"
)

var bruinTrack = Track{Cycle: 52, Span: 25, SpeedScale: 10, Offset: -10, Scale: 1.4}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTrackSawtooth(t *testing.T) {
	lane := Lane{Index: 3, Direction: 1, Speed: 0.5}

	if p := bruinTrack.Period(lane.Speed); !approx(p, 10.4) {
		t.Fatalf("Period = %v, want 10.4", p)
	}

	tests := []struct {
		now  float64
		want float64
	}{
		{0, 25},
		{5.2, -11.4},
		{10.4, 25},
		{15.6, -11.4},
	}
	for _, tt := range tests {
		if got := bruinTrack.X(lane, tt.now); !approx(got, tt.want) {
			t.Errorf("X(t=%v) = %v, want %v", tt.now, got, tt.want)
		}
	}
}

func TestTrackDirectionMirrors(t *testing.T) {
	classic := Track{Cycle: 52, Span: 25, SpeedScale: 10, Offset: 0, Scale: 1}
	right := Lane{Direction: 1, Speed: 1}
	left := Lane{Direction: -1, Speed: 1}

	for _, now := range []float64{0, 0.7, 2.3, 4.9} {
		r, l := classic.X(right, now), classic.X(left, now)
		if !approx(r, -l) {
			t.Errorf("t=%v: x=%v and %v are not mirrored", now, r, l)
		}
	}
	if got := classic.X(left, 0); got != -25 {
		t.Errorf("left lane start = %v, want -25", got)
	}
}

func TestTrackStaysInExtent(t *testing.T) {
	lo, hi := bruinTrack.Extent()
	for _, lane := range []Lane{{Direction: 1, Speed: 0.4}, {Direction: -1, Speed: 1.39}} {
		for now := 0.0; now < 30; now += 0.05 {
			x := bruinTrack.X(lane, now)
			if x < lo-1e-9 || x > hi+1e-9 {
				t.Fatalf("X(%+v, %v) = %v outside [%v, %v]", lane, now, x, lo, hi)
			}
		}
	}
}

func TestObstaclesSkipSafeLanes(t *testing.T) {
	lanes := []Lane{
		{Index: 0, Direction: 1, Speed: 1},
		{Index: 1, Direction: -1, Speed: 1, Safe: true},
		{Index: 2, Direction: -1, Speed: 0.5},
	}
	got := bruinTrack.Obstacles(lanes, 1, testCell, nil)
	if len(got) != 2 {
		t.Fatalf("got %d obstacles, want 2", len(got))
	}
	if got[0].Lane != 0 || got[0].Pos.Y() != 2.5 {
		t.Errorf("first obstacle = %+v, want lane 0 at y=2.5", got[0])
	}
	if got[1].Lane != 2 || got[1].Pos.Y() != 7.5 || got[1].Direction != -1 {
		t.Errorf("second obstacle = %+v, want lane 2 at y=7.5", got[1])
	}
}
