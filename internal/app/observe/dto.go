package observe

import "wormsarena/internal/domain/worms"

type Request struct {
	MatchID  string
	PlayerID int
}

// State is the per-player view of a round, the wire contract consumed
// by the starter bots. Field names follow the published JSON shape.
type State struct {
	CurrentRound              int            `json:"currentRound"`
	MaxRounds                 int            `json:"maxRounds"`
	MapSize                   int            `json:"mapSize"`
	PushbackDamage            int            `json:"pushbackDamage"`
	CurrentWormID             int            `json:"currentWormId"`
	ConsecutiveDoNothingCount int            `json:"consecutiveDoNothingCount"`
	MyPlayer                  PlayerView     `json:"myPlayer"`
	Opponents                 []OpponentView `json:"opponents"`
	Map                       [][]CellView   `json:"map"`
}

type PlayerView struct {
	ID     int        `json:"id"`
	Score  int        `json:"score"`
	Health int        `json:"health"`
	Worms  []WormView `json:"worms"`
}

// OpponentView carries only what the visibility policy allows. Score is
// a pointer so a visible zero still serializes; the starter bots treat
// score as a required field.
type OpponentView struct {
	ID    int        `json:"id"`
	Score *int       `json:"score,omitempty"`
	Worms []WormView `json:"worms"`
}

type WormView struct {
	ID            int         `json:"id"`
	Health        int         `json:"health"`
	Alive         bool        `json:"alive"`
	Position      worms.Point `json:"position"`
	DiggingRange  int         `json:"diggingRange"`
	MovementRange int         `json:"movementRange"`
	Weapon        *WeaponView `json:"weapon,omitempty"`
}

type WeaponView struct {
	Damage int `json:"damage"`
	Range  int `json:"range"`
}

type CellView struct {
	X        int           `json:"x"`
	Y        int           `json:"y"`
	Type     string        `json:"type"`
	Occupier *CellWormView `json:"occupier,omitempty"`
	Powerup  *PowerupView  `json:"powerup,omitempty"`
}

type CellWormView struct {
	WormView
	PlayerID int `json:"playerId"`
}

type PowerupView struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}
