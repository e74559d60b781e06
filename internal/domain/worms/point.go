package worms

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Translate(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// MoveDistance is the Chebyshev distance, matching the 8-direction
// movement rule of the arena.
func (p Point) MoveDistance(other Point) int {
	dx := abs(p.X - other.X)
	dy := abs(p.Y - other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
