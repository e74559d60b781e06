package mapgen

import (
	"errors"
	"math"
	"math/rand"

	"wormsarena/internal/domain/worms"
)

var ErrMapTooSmall = errors.New("map size too small to place worms")

const (
	dirtChance       = 0.25
	spawnRingInset   = 3
	healthPackOffset = 1
)

// Generate builds a deterministic match map for two players: an air
// disc speckled with dirt, deep space outside, point-mirrored worm
// spawns on an inner ring and health packs beside the center. The same
// seed always yields the same map.
func Generate(matchID string, cfg worms.Config, seed int64) (*worms.Map, error) {
	if cfg.MapSize < 2*spawnRingInset+3 {
		return nil, ErrMapTooSmall
	}
	rng := rand.New(rand.NewSource(seed))

	players := []*worms.Player{worms.NewPlayer(1), worms.NewPlayer(2)}
	m := worms.NewMap(matchID, cfg, players)

	center := cfg.MapSize / 2
	radius := float64(cfg.MapSize) / 2.0
	for i := range m.Cells {
		cell := &m.Cells[i]
		dx := float64(cell.X - center)
		dy := float64(cell.Y - center)
		switch {
		case math.Sqrt(dx*dx+dy*dy) > radius:
			cell.Type = worms.CellDeepSpace
		case rng.Float64() < dirtChance:
			cell.Type = worms.CellDirt
		default:
			cell.Type = worms.CellAir
		}
	}

	if err := placeWorms(m, cfg, center); err != nil {
		return nil, err
	}
	placeHealthPacks(m, cfg, center)
	return m, nil
}

// placeWorms spawns player 1 on an inner ring and mirrors every spawn
// through the center for player 2, so neither side starts with a
// positional advantage.
func placeWorms(m *worms.Map, cfg worms.Config, center int) error {
	ring := float64(center - spawnRingInset)
	for i := 0; i < cfg.WormsPerPlayer; i++ {
		angle := 2 * math.Pi * float64(i) / float64(cfg.WormsPerPlayer)
		spawn1 := worms.Point{
			X: center + int(math.Round(ring*math.Cos(angle))),
			Y: center + int(math.Round(ring*math.Sin(angle))),
		}
		spawn2 := worms.Point{X: 2*center - spawn1.X, Y: 2*center - spawn1.Y}

		if err := spawnWorm(m, m.Players[0], i+1, cfg, spawn1); err != nil {
			return err
		}
		if err := spawnWorm(m, m.Players[1], i+1, cfg, spawn2); err != nil {
			return err
		}
	}
	return nil
}

func spawnWorm(m *worms.Map, p *worms.Player, id int, cfg worms.Config, spawn worms.Point) error {
	cell, err := m.CellAt(spawn)
	if err != nil {
		return err
	}
	cell.Type = worms.CellAir
	w := worms.NewWorm(id, p.ID, cfg, spawn)
	if err := m.PlaceWorm(w); err != nil {
		return err
	}
	p.Worms = append(p.Worms, w)
	return nil
}

func placeHealthPacks(m *worms.Map, cfg worms.Config, center int) {
	for _, p := range []worms.Point{
		{X: center - healthPackOffset, Y: center},
		{X: center + healthPackOffset, Y: center},
	} {
		cell, err := m.CellAt(p)
		if err != nil || cell.Occupied() {
			continue
		}
		cell.Type = worms.CellAir
		cell.Powerup = &worms.Powerup{Type: worms.PowerupHealthPack, Value: cfg.HealthPackValue}
	}
}
