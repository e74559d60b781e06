package worms

type CellType string

const (
	CellAir       CellType = "AIR"
	CellDirt      CellType = "DIRT"
	CellDeepSpace CellType = "DEEP_SPACE"
)

type PowerupType string

const (
	PowerupHealthPack PowerupType = "HEALTH_PACK"
)

type Powerup struct {
	Type  PowerupType `json:"type"`
	Value int         `json:"value"`
}

// Ref identifies a worm by its owning player and worm id. Cells hold a
// Ref instead of a pointer so the map never owns a worm.
type Ref struct {
	PlayerID int `json:"playerId"`
	WormID   int `json:"wormId"`
}

type Cell struct {
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Type     CellType `json:"type"`
	Occupier *Ref     `json:"occupier,omitempty"`
	Powerup  *Powerup `json:"powerup,omitempty"`
}

func (c *Cell) Occupied() bool {
	return c.Occupier != nil
}
