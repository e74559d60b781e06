package observe

import (
	"wormsarena/internal/domain/worms"
)

// BuildState renders the match for one viewer. It is a pure function of
// (map, viewer, policy): canonical state is never touched, and two
// calls against unchanged state yield structurally identical output.
// Opponents are told apart from the viewer by pointer identity, not by
// field equality.
func BuildState(m *worms.Map, viewer *worms.Player, vis Visibility) State {
	cfg := m.Config
	state := State{
		CurrentRound:              m.CurrentRound,
		MaxRounds:                 cfg.MaxRounds,
		MapSize:                   m.Size,
		PushbackDamage:            cfg.PushbackDamage,
		ConsecutiveDoNothingCount: viewer.ConsecutiveDoNothing,
		MyPlayer:                  buildSelfView(viewer),
		Opponents:                 []OpponentView{},
	}
	if w := viewer.CurrentWorm(); w != nil {
		state.CurrentWormID = w.ID
	}
	for _, p := range m.Players {
		if p == viewer {
			continue
		}
		state.Opponents = append(state.Opponents, buildOpponentView(p, vis))
	}
	state.Map = buildGrid(m, viewer, vis)
	return state
}

func buildSelfView(p *worms.Player) PlayerView {
	view := PlayerView{
		ID:     p.ID,
		Score:  p.Score,
		Health: p.Health(),
		Worms:  make([]WormView, 0, len(p.Worms)),
	}
	for _, w := range p.Worms {
		view.Worms = append(view.Worms, buildWormView(w, true))
	}
	return view
}

func buildOpponentView(p *worms.Player, vis Visibility) OpponentView {
	view := OpponentView{
		ID:    p.ID,
		Worms: make([]WormView, 0, len(p.Worms)),
	}
	if vis.OpponentScore {
		score := p.Score
		view.Score = &score
	}
	for _, w := range p.Worms {
		view.Worms = append(view.Worms, buildWormView(w, vis.OpponentWeapon))
	}
	return view
}

func buildWormView(w *worms.Worm, showWeapon bool) WormView {
	view := WormView{
		ID:            w.ID,
		Health:        w.Health,
		Alive:         !w.Dead(),
		Position:      w.Position,
		DiggingRange:  w.DiggingRange,
		MovementRange: w.MovementRange,
	}
	if showWeapon {
		view.Weapon = &WeaponView{Damage: w.Weapon.Damage, Range: w.Weapon.Range}
	}
	return view
}

// buildGrid maps every canonical cell, in canonical row-major order,
// through the same per-viewer filter. The output is always Size rows of
// Size cells.
func buildGrid(m *worms.Map, viewer *worms.Player, vis Visibility) [][]CellView {
	grid := make([][]CellView, m.Size)
	for y := 0; y < m.Size; y++ {
		row := make([]CellView, m.Size)
		for x := 0; x < m.Size; x++ {
			row[x] = buildCellView(m, &m.Cells[y*m.Size+x], viewer, vis)
		}
		grid[y] = row
	}
	return grid
}

func buildCellView(m *worms.Map, cell *worms.Cell, viewer *worms.Player, vis Visibility) CellView {
	view := CellView{X: cell.X, Y: cell.Y, Type: string(cell.Type)}
	if cell.Powerup != nil {
		view.Powerup = &PowerupView{Type: string(cell.Powerup.Type), Value: cell.Powerup.Value}
	}
	if cell.Occupier != nil {
		if w, err := m.WormByRef(*cell.Occupier); err == nil {
			showWeapon := w.PlayerID == viewer.ID || vis.OpponentWeapon
			view.Occupier = &CellWormView{
				WormView: buildWormView(w, showWeapon),
				PlayerID: w.PlayerID,
			}
		}
	}
	return view
}
