package worms

import "errors"

var (
	ErrCellOccupied = errors.New("target cell already occupied")
	ErrNotDiggable  = errors.New("target cell is not dirt")
	ErrWormDead     = errors.New("worm is dead")
)

type Weapon struct {
	Damage int `json:"damage"`
	Range  int `json:"range"`
}

// Worm is the mutable state machine of a single unit. Position and
// PreviousPosition are set together at construction and on every move,
// so an unplaced worm cannot be observed.
type Worm struct {
	ID               int    `json:"id"`
	PlayerID         int    `json:"playerId"`
	Health           int    `json:"health"`
	Weapon           Weapon `json:"weapon"`
	DiggingRange     int    `json:"diggingRange"`
	MovementRange    int    `json:"movementRange"`
	Position         Point  `json:"position"`
	PreviousPosition Point  `json:"previousPosition"`
	RoundMoved       int    `json:"roundMoved"`
	RoundHit         int    `json:"roundHit"`
}

// NewWorm creates a worm already placed at spawn. Putting the worm into
// the map's occupancy table is a separate step, see Map.PlaceWorm.
func NewWorm(id, playerID int, cfg Config, spawn Point) *Worm {
	return &Worm{
		ID:               id,
		PlayerID:         playerID,
		Health:           cfg.StartingHealth,
		Weapon:           Weapon{Damage: cfg.WeaponDamage, Range: cfg.WeaponRange},
		DiggingRange:     cfg.DiggingRange,
		MovementRange:    cfg.MovementRange,
		Position:         spawn,
		PreviousPosition: spawn,
	}
}

func (w *Worm) Dead() bool {
	return w.Health <= 0
}

func (w *Worm) Ref() Ref {
	return Ref{PlayerID: w.PlayerID, WormID: w.ID}
}

// MoveTo vacates the worm's current cell, records the move and occupies
// the target cell, consuming any powerup found there. Game-rule
// validation (range, terrain, turn order) happens before this call; the
// occupancy invariant is still enforced here. On error nothing changes.
func (w *Worm) MoveTo(m *Map, target Point) error {
	targetCell, err := m.CellAt(target)
	if err != nil {
		return err
	}
	currentCell, err := m.CellAt(w.Position)
	if err != nil {
		return err
	}
	if targetCell.Occupied() {
		return ErrCellOccupied
	}

	if currentCell.Occupier != nil && *currentCell.Occupier == w.Ref() {
		currentCell.Occupier = nil
	}
	w.PreviousPosition = w.Position
	w.RoundMoved = m.CurrentRound
	w.Position = target
	ref := w.Ref()
	targetCell.Occupier = &ref
	if p := targetCell.Powerup; p != nil && p.Type == PowerupHealthPack {
		w.Health += p.Value
		targetCell.Powerup = nil
	}
	return nil
}

// Dig turns a dirt cell into air. No position change.
func (w *Worm) Dig(m *Map, target Point) error {
	cell, err := m.CellAt(target)
	if err != nil {
		return err
	}
	if cell.Type != CellDirt {
		return ErrNotDiggable
	}
	cell.Type = CellAir
	return nil
}

// TakeDamage is unconditional. Health is not clamped at zero so overkill
// stays visible for scoring; Dead derives from health.
func (w *Worm) TakeDamage(amount, round int) {
	w.Health -= amount
	w.RoundHit = round
}
