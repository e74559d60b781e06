package worms

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds   = errors.New("point outside the map")
	ErrUnknownPlayer = errors.New("player not in match")
	ErrUnknownWorm   = errors.New("worm not in match")
)

// Map is the single source of truth for a match: the flat row-major
// cell grid, the player list and the canonical round counter. It is
// mutated only by the round loop and read by snapshot builders.
type Map struct {
	MatchID      string    `json:"matchId"`
	Size         int       `json:"size"`
	Config       Config    `json:"config"`
	Cells        []Cell    `json:"cells"`
	Players      []*Player `json:"players"`
	CurrentRound int       `json:"currentRound"`
	Version      int64     `json:"version"`
}

func NewMap(matchID string, cfg Config, players []*Player) *Map {
	cells := make([]Cell, cfg.MapSize*cfg.MapSize)
	for y := 0; y < cfg.MapSize; y++ {
		for x := 0; x < cfg.MapSize; x++ {
			cells[y*cfg.MapSize+x] = Cell{X: x, Y: y, Type: CellAir}
		}
	}
	return &Map{
		MatchID:      matchID,
		Size:         cfg.MapSize,
		Config:       cfg,
		Cells:        cells,
		Players:      players,
		CurrentRound: 1,
	}
}

func (m *Map) Index(p Point) (int, error) {
	if p.X < 0 || p.X >= m.Size || p.Y < 0 || p.Y >= m.Size {
		return 0, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, p.X, p.Y)
	}
	return p.Y*m.Size + p.X, nil
}

func (m *Map) CellAt(p Point) (*Cell, error) {
	idx, err := m.Index(p)
	if err != nil {
		return nil, err
	}
	return &m.Cells[idx], nil
}

// PlaceWorm writes the worm into the occupancy table at its current
// position. Part of map construction, not of MoveTo.
func (m *Map) PlaceWorm(w *Worm) error {
	cell, err := m.CellAt(w.Position)
	if err != nil {
		return err
	}
	if cell.Occupied() {
		return ErrCellOccupied
	}
	ref := w.Ref()
	cell.Occupier = &ref
	return nil
}

// ClearOccupier removes the worm from the occupancy table, leaving its
// recorded position untouched. Called when a worm dies.
func (m *Map) ClearOccupier(w *Worm) {
	cell, err := m.CellAt(w.Position)
	if err != nil {
		return
	}
	if cell.Occupier != nil && *cell.Occupier == w.Ref() {
		cell.Occupier = nil
	}
}

func (m *Map) PlayerByID(id int) (*Player, error) {
	for _, p := range m.Players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
}

func (m *Map) WormByRef(ref Ref) (*Worm, error) {
	p, err := m.PlayerByID(ref.PlayerID)
	if err != nil {
		return nil, err
	}
	if w := p.WormByID(ref.WormID); w != nil {
		return w, nil
	}
	return nil, fmt.Errorf("%w: player %d worm %d", ErrUnknownWorm, ref.PlayerID, ref.WormID)
}

func (m *Map) AdvanceRound() {
	m.CurrentRound++
}

func (m *Map) Finished() bool {
	if m.CurrentRound > m.Config.MaxRounds {
		return true
	}
	alive := 0
	for _, p := range m.Players {
		if p.LivingWorms() > 0 {
			alive++
		}
	}
	return alive <= 1
}

// Clone deep-copies the whole match graph. Used by stores that must not
// leak canonical state to callers.
func (m *Map) Clone() *Map {
	out := &Map{
		MatchID:      m.MatchID,
		Size:         m.Size,
		Config:       m.Config,
		Cells:        make([]Cell, len(m.Cells)),
		Players:      make([]*Player, len(m.Players)),
		CurrentRound: m.CurrentRound,
		Version:      m.Version,
	}
	for i, c := range m.Cells {
		cc := c
		if c.Occupier != nil {
			ref := *c.Occupier
			cc.Occupier = &ref
		}
		if c.Powerup != nil {
			pu := *c.Powerup
			cc.Powerup = &pu
		}
		out.Cells[i] = cc
	}
	for i, p := range m.Players {
		pp := *p
		pp.Worms = make([]*Worm, len(p.Worms))
		for j, w := range p.Worms {
			ww := *w
			pp.Worms[j] = &ww
		}
		out.Players[i] = &pp
	}
	return out
}
