package bruinwalk

import "testing"

func newTestRegistry(seed int64, margin int) *LaneRegistry {
	return NewLaneRegistry(seed, LaneParams{
		SafeProbability: 0.125,
		SpeedMin:        0.4,
		SpeedMax:        1.4,
	}, margin)
}

func TestGenerateIsIdempotent(t *testing.T) {
	r := newTestRegistry(1, 32)
	r.Generate(5)

	before := r.MustLane(3)
	r.Generate(3)
	r.Generate(5)

	if got := r.MustLane(3); got != before {
		t.Errorf("lane 3 changed from %+v to %+v", before, got)
	}
	lo, hi := r.Retained()
	if lo != 0 || hi != 5 {
		t.Errorf("Retained() = [%d, %d], want [0, 5]", lo, hi)
	}
}

func TestGeneratedLaneFields(t *testing.T) {
	r := newTestRegistry(7, 1<<20)
	r.Generate(999)

	var left, right int
	for i := 0; i < 1000; i++ {
		l := r.MustLane(i)
		if l.Index != i {
			t.Fatalf("lane %d has index %d", i, l.Index)
		}
		switch l.Direction {
		case 1:
			right++
		case -1:
			left++
		default:
			t.Fatalf("lane %d direction = %d", i, l.Direction)
		}
		if l.Speed < 0.4 || l.Speed >= 1.4 {
			t.Fatalf("lane %d speed = %v, want [0.4, 1.4)", i, l.Speed)
		}
	}
	if left == 0 || right == 0 {
		t.Errorf("directions not mixed: left=%d right=%d", left, right)
	}
}

func TestSafeLaneRate(t *testing.T) {
	const n = 20000
	r := newTestRegistry(42, n)
	r.Generate(n - 1)

	safe := 0
	for i := 0; i < n; i++ {
		if r.MustLane(i).Safe {
			safe++
		}
	}
	rate := float64(safe) / n
	if rate < 0.11 || rate > 0.14 {
		t.Errorf("safe rate = %.4f, want about 0.125", rate)
	}
}

func TestSpeedFactorScalesNewLanesOnly(t *testing.T) {
	r := newTestRegistry(3, 32)
	r.Generate(0)
	first := r.MustLane(0)

	r.SetParams(LaneParams{SpeedMin: 1, SpeedMax: 1, SpeedFactor: 2})
	r.Generate(1)

	if got := r.MustLane(0); got != first {
		t.Errorf("existing lane changed: %+v -> %+v", first, got)
	}
	if got := r.MustLane(1).Speed; got != 2 {
		t.Errorf("scaled speed = %v, want 2", got)
	}
}

func TestSameSeedSameLanes(t *testing.T) {
	a := newTestRegistry(99, 32)
	b := newTestRegistry(99, 32)
	a.ExtendWindow(50)
	b.Generate(20)
	b.ExtendWindow(50)

	for i := 0; i <= 50; i++ {
		if a.MustLane(i) != b.MustLane(i) {
			t.Fatalf("lane %d differs: %+v vs %+v", i, a.MustLane(i), b.MustLane(i))
		}
	}
}

func TestWindowEdges(t *testing.T) {
	r := newTestRegistry(1, 32)
	if start, end := r.Window(); start != 0 || end != -1 {
		t.Fatalf("empty window = [%d, %d]", start, end)
	}
	if got := len(r.Visible(nil)); got != 0 {
		t.Fatalf("empty window has %d lanes", got)
	}

	r.ExtendWindow(19)
	if start, end := r.Window(); start != 0 || end != 19 {
		t.Errorf("window = [%d, %d], want [0, 19]", start, end)
	}
	if got := len(r.Visible(nil)); got != 20 {
		t.Errorf("visible lanes = %d, want 20", got)
	}

	r.ExtendWindow(10)
	if _, end := r.Window(); end != 19 {
		t.Errorf("ExtendWindow moved end back to %d", end)
	}

	r.ShrinkFront(4)
	r.ShrinkFront(2)
	if start, _ := r.Window(); start != 4 {
		t.Errorf("ShrinkFront moved start back to %d", start)
	}

	r.RetreatEnd()
	r.RetreatFront()
	if start, end := r.Window(); start != 3 || end != 18 {
		t.Errorf("after retreat window = [%d, %d], want [3, 18]", start, end)
	}
	if _, hi := r.Retained(); hi != 19 {
		t.Errorf("retreat dropped generated lanes, hi = %d", hi)
	}
}

func TestRetreatFrontStopsAtZero(t *testing.T) {
	r := newTestRegistry(1, 32)
	r.ExtendWindow(5)
	r.RetreatFront()
	if start, _ := r.Window(); start != 0 {
		t.Errorf("start = %d, want 0", start)
	}
}

func TestEviction(t *testing.T) {
	r := newTestRegistry(5, 2)
	r.ExtendWindow(40)
	kept := r.MustLane(10)

	r.ShrinkFront(12)

	lo, hi := r.Retained()
	if lo != 10 || hi != 40 {
		t.Fatalf("Retained() = [%d, %d], want [10, 40]", lo, hi)
	}
	if _, ok := r.Lane(9); ok {
		t.Error("evicted lane 9 still reachable")
	}
	if got := r.MustLane(10); got != kept {
		t.Errorf("retained lane changed: %+v -> %+v", kept, got)
	}

}

func TestRetreatRestoresEvictedLanes(t *testing.T) {
	fresh := newTestRegistry(5, 1<<20)
	fresh.Generate(40)

	r := newTestRegistry(5, 2)
	r.ExtendWindow(40)
	r.ShrinkFront(30)
	if lo, _ := r.Retained(); lo != 28 {
		t.Fatalf("oldest retained lane = %d, want 28", lo)
	}

	for i := 0; i < 35; i++ {
		r.RetreatFront()
	}
	if start, _ := r.Window(); start != 0 {
		t.Fatalf("start = %d, want 0", start)
	}
	for i := 0; i <= 40; i++ {
		if got, want := r.MustLane(i), fresh.MustLane(i); got != want {
			t.Fatalf("restored lane %d = %+v, want %+v", i, got, want)
		}
	}
	if got := len(r.Visible(nil)); got != 41 {
		t.Errorf("visible lanes = %d, want 41", got)
	}
}

func TestRestoredLanesKeepTheirSpeedFactor(t *testing.T) {
	r := newTestRegistry(8, 0)
	r.ExtendWindow(4)
	r.SetParams(LaneParams{SpeedMin: 1, SpeedMax: 1, SpeedFactor: 3})
	r.ExtendWindow(9)
	before := r.MustLane(5)

	r.ShrinkFront(9)
	if _, ok := r.Lane(5); ok {
		t.Fatal("lane 5 not evicted")
	}
	r.SetParams(LaneParams{SpeedMin: 1, SpeedMax: 1, SpeedFactor: 7})
	for i := 0; i < 4; i++ {
		r.RetreatFront()
	}

	if got := r.MustLane(5); got != before {
		t.Errorf("restored lane 5 = %+v, want %+v", got, before)
	}
	if got := r.MustLane(5).Speed; got != 3 {
		t.Errorf("restored speed = %v, want 3", got)
	}
}

func TestMustLanePanicsOutsideArena(t *testing.T) {
	r := newTestRegistry(1, 0)
	r.ExtendWindow(10)
	r.ShrinkFront(5)

	for _, index := range []int{4, 11, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("MustLane(%d) did not panic", index)
				}
			}()
			r.MustLane(index)
		}()
	}
}
