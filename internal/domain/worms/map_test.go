package worms

import (
	"errors"
	"testing"
)

func TestIndex_RowMajor(t *testing.T) {
	m := NewMap("match-1", testConfig(), nil)

	cases := []struct {
		p    Point
		want int
	}{
		{Point{X: 0, Y: 0}, 0},
		{Point{X: 4, Y: 0}, 4},
		{Point{X: 0, Y: 1}, 5},
		{Point{X: 3, Y: 2}, 13},
		{Point{X: 4, Y: 4}, 24},
	}
	for _, tc := range cases {
		got, err := m.Index(tc.p)
		if err != nil {
			t.Fatalf("Index(%+v): %v", tc.p, err)
		}
		if got != tc.want {
			t.Fatalf("Index(%+v) = %d, want %d", tc.p, got, tc.want)
		}
	}
}

func TestIndex_OutOfBounds(t *testing.T) {
	m := NewMap("match-1", testConfig(), nil)

	for _, p := range []Point{
		{X: -1, Y: 0},
		{X: 0, Y: -1},
		{X: 5, Y: 0},
		{X: 0, Y: 5},
	} {
		if _, err := m.Index(p); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Index(%+v): expected ErrOutOfBounds, got %v", p, err)
		}
	}
}

func TestNewMap_CellsCarryTheirCoordinates(t *testing.T) {
	m := NewMap("match-1", testConfig(), nil)

	if len(m.Cells) != 25 {
		t.Fatalf("cell count: %d", len(m.Cells))
	}
	if m.CurrentRound != 1 {
		t.Fatalf("starting round: %d", m.CurrentRound)
	}
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			c := m.Cells[y*m.Size+x]
			if c.X != x || c.Y != y || c.Type != CellAir {
				t.Fatalf("cell (%d,%d): %+v", x, y, c)
			}
		}
	}
}

func TestPlaceWorm_RejectsOccupiedCell(t *testing.T) {
	m, placed := testMap(t, Point{X: 2, Y: 2})

	intruder := NewWorm(9, 2, testConfig(), Point{X: 2, Y: 2})
	if err := m.PlaceWorm(intruder); err != ErrCellOccupied {
		t.Fatalf("expected ErrCellOccupied, got %v", err)
	}
	cell, _ := m.CellAt(Point{X: 2, Y: 2})
	if cell.Occupier == nil || *cell.Occupier != placed[0].Ref() {
		t.Fatalf("occupier overwritten: %+v", cell.Occupier)
	}
}

func TestClearOccupier_KeepsWormPosition(t *testing.T) {
	m, placed := testMap(t, Point{X: 1, Y: 3})
	w := placed[0]

	m.ClearOccupier(w)

	cell, _ := m.CellAt(Point{X: 1, Y: 3})
	if cell.Occupied() {
		t.Fatalf("cell still occupied after clear")
	}
	if w.Position != (Point{X: 1, Y: 3}) {
		t.Fatalf("worm position changed: %+v", w.Position)
	}
}

func TestClearOccupier_IgnoresForeignOccupier(t *testing.T) {
	m, placed := testMap(t, Point{X: 1, Y: 1}, Point{X: 2, Y: 2})

	// Point the first worm at the second worm's cell without moving it
	// through the occupancy table.
	ghost := *placed[0]
	ghost.Position = Point{X: 2, Y: 2}
	m.ClearOccupier(&ghost)

	cell, _ := m.CellAt(Point{X: 2, Y: 2})
	if cell.Occupier == nil || *cell.Occupier != placed[1].Ref() {
		t.Fatalf("cleared a cell owned by another worm")
	}
}

func TestWormByRef(t *testing.T) {
	m, placed := testMap(t, Point{X: 0, Y: 0}, Point{X: 4, Y: 4})

	w, err := m.WormByRef(placed[1].Ref())
	if err != nil {
		t.Fatalf("WormByRef: %v", err)
	}
	if w != placed[1] {
		t.Fatalf("wrong worm resolved")
	}

	if _, err := m.WormByRef(Ref{PlayerID: 1, WormID: 99}); !errors.Is(err, ErrUnknownWorm) {
		t.Fatalf("expected ErrUnknownWorm, got %v", err)
	}
	if _, err := m.WormByRef(Ref{PlayerID: 9, WormID: 1}); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("expected ErrUnknownPlayer, got %v", err)
	}
}

func TestFinished(t *testing.T) {
	m, placed := testMap(t, Point{X: 0, Y: 0}, Point{X: 4, Y: 4})

	if m.Finished() {
		t.Fatalf("fresh match already finished")
	}

	m.CurrentRound = m.Config.MaxRounds + 1
	if !m.Finished() {
		t.Fatalf("match not finished past the round cutoff")
	}

	m.CurrentRound = 5
	placed[1].TakeDamage(placed[1].Health, 5)
	if !m.Finished() {
		t.Fatalf("match not finished with one team wiped out")
	}
}

func TestClone_IsIndependent(t *testing.T) {
	m, placed := testMap(t, Point{X: 0, Y: 0}, Point{X: 4, Y: 4})
	cell, _ := m.CellAt(Point{X: 2, Y: 2})
	cell.Powerup = &Powerup{Type: PowerupHealthPack, Value: 10}

	clone := m.Clone()

	cw, err := clone.WormByRef(placed[0].Ref())
	if err != nil {
		t.Fatalf("WormByRef on clone: %v", err)
	}
	cw.TakeDamage(50, 2)
	clonedCell, _ := clone.CellAt(Point{X: 2, Y: 2})
	clonedCell.Powerup.Value = 99
	clone.Players[0].Score = 1000
	clone.AdvanceRound()

	if placed[0].Health != 100 {
		t.Fatalf("clone damage leaked into original: %d", placed[0].Health)
	}
	if cell.Powerup.Value != 10 {
		t.Fatalf("clone powerup write leaked into original: %d", cell.Powerup.Value)
	}
	if m.Players[0].Score != 0 {
		t.Fatalf("clone score leaked into original: %d", m.Players[0].Score)
	}
	if m.CurrentRound != 1 {
		t.Fatalf("clone round leaked into original: %d", m.CurrentRound)
	}
}

// Every worm occupies exactly the cell it reports, and no cell holds a
// worm that is not standing on it.
func TestOccupancyInvariantAfterMoves(t *testing.T) {
	m, placed := testMap(t, Point{X: 0, Y: 0}, Point{X: 4, Y: 4}, Point{X: 2, Y: 2})

	moves := []struct {
		w  *Worm
		to Point
	}{
		{placed[0], Point{X: 1, Y: 1}},
		{placed[1], Point{X: 3, Y: 3}},
		{placed[2], Point{X: 2, Y: 3}},
		{placed[0], Point{X: 2, Y: 2}},
	}
	for _, mv := range moves {
		if err := mv.w.MoveTo(m, mv.to); err != nil {
			t.Fatalf("MoveTo(%+v): %v", mv.to, err)
		}
		assertOccupancyConsistent(t, m)
	}
}

func assertOccupancyConsistent(t *testing.T, m *Map) {
	t.Helper()
	occupied := make(map[Ref]Point)
	for _, c := range m.Cells {
		if c.Occupier != nil {
			occupied[*c.Occupier] = Point{X: c.X, Y: c.Y}
		}
	}
	living := 0
	for _, p := range m.Players {
		for _, w := range p.Worms {
			if w.Dead() {
				continue
			}
			living++
			pos, ok := occupied[w.Ref()]
			if !ok {
				t.Fatalf("worm %+v missing from the occupancy table", w.Ref())
			}
			if pos != w.Position {
				t.Fatalf("worm %+v occupies %+v but reports %+v", w.Ref(), pos, w.Position)
			}
		}
	}
	if len(occupied) != living {
		t.Fatalf("%d occupied cells for %d living worms", len(occupied), living)
	}
}
