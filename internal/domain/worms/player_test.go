package worms

import "testing"

func testPlayer(healths ...int) *Player {
	p := NewPlayer(1)
	cfg := testConfig()
	for i, h := range healths {
		w := NewWorm(i+1, p.ID, cfg, Point{X: i, Y: 0})
		w.Health = h
		p.Worms = append(p.Worms, w)
	}
	return p
}

func TestCurrentWorm_NilWhenSelectedDead(t *testing.T) {
	p := testPlayer(0, 100)
	if w := p.CurrentWorm(); w != nil {
		t.Fatalf("expected nil for dead selected worm, got worm %d", w.ID)
	}
	p.SelectNextWorm()
	if w := p.CurrentWorm(); w == nil || w.ID != 2 {
		t.Fatalf("expected worm 2 after reselect, got %+v", w)
	}
}

func TestSelectNextWorm_SkipsDead(t *testing.T) {
	p := testPlayer(100, 0, 100)

	p.SelectNextWorm()
	if p.CurrentWormIndex != 2 {
		t.Fatalf("selector did not skip the dead worm: %d", p.CurrentWormIndex)
	}
	p.SelectNextWorm()
	if p.CurrentWormIndex != 0 {
		t.Fatalf("selector did not wrap around: %d", p.CurrentWormIndex)
	}
}

func TestSelectNextWorm_AllDeadStaysPut(t *testing.T) {
	p := testPlayer(0, 0)
	p.CurrentWormIndex = 1
	p.SelectNextWorm()
	if p.CurrentWormIndex != 1 {
		t.Fatalf("selector moved with no living worms: %d", p.CurrentWormIndex)
	}
	if p.CurrentWorm() != nil {
		t.Fatalf("expected nil current worm")
	}
}

func TestHealth_SumsLivingWormsOnly(t *testing.T) {
	p := testPlayer(40, 0, 25)
	if got := p.Health(); got != 65 {
		t.Fatalf("health = %d, want 65", got)
	}
	if got := p.LivingWorms(); got != 2 {
		t.Fatalf("living worms = %d, want 2", got)
	}
}

func TestDoNothingCounter(t *testing.T) {
	p := testPlayer(100)
	p.RecordDoNothing()
	p.RecordDoNothing()
	if p.ConsecutiveDoNothing != 2 {
		t.Fatalf("counter = %d, want 2", p.ConsecutiveDoNothing)
	}
	p.ResetDoNothing()
	if p.ConsecutiveDoNothing != 0 {
		t.Fatalf("counter not reset: %d", p.ConsecutiveDoNothing)
	}
}

func TestMoveDistance_Chebyshev(t *testing.T) {
	cases := []struct {
		a, b Point
		want int
	}{
		{Point{X: 0, Y: 0}, Point{X: 0, Y: 0}, 0},
		{Point{X: 0, Y: 0}, Point{X: 1, Y: 1}, 1},
		{Point{X: 2, Y: 3}, Point{X: 5, Y: 4}, 3},
		{Point{X: 4, Y: 1}, Point{X: 1, Y: 7}, 6},
	}
	for _, tc := range cases {
		if got := tc.a.MoveDistance(tc.b); got != tc.want {
			t.Fatalf("MoveDistance(%+v, %+v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
