package worms

// Player owns an ordered set of worms, the current-worm selector and
// the consecutive do-nothing counter used to forfeit disengaged agents.
type Player struct {
	ID                   int     `json:"id"`
	Score                int     `json:"score"`
	Worms                []*Worm `json:"worms"`
	CurrentWormIndex     int     `json:"currentWormIndex"`
	ConsecutiveDoNothing int     `json:"consecutiveDoNothing"`
}

func NewPlayer(id int) *Player {
	return &Player{ID: id}
}

// CurrentWorm returns the selected worm, or nil when every worm is dead.
func (p *Player) CurrentWorm() *Worm {
	if len(p.Worms) == 0 {
		return nil
	}
	w := p.Worms[p.CurrentWormIndex%len(p.Worms)]
	if w.Dead() {
		return nil
	}
	return w
}

// SelectNextWorm advances the selector to the next living worm. With no
// living worms the selector stays put.
func (p *Player) SelectNextWorm() {
	n := len(p.Worms)
	if n == 0 {
		return
	}
	for i := 1; i <= n; i++ {
		idx := (p.CurrentWormIndex + i) % n
		if !p.Worms[idx].Dead() {
			p.CurrentWormIndex = idx
			return
		}
	}
}

func (p *Player) RecordDoNothing() {
	p.ConsecutiveDoNothing++
}

func (p *Player) ResetDoNothing() {
	p.ConsecutiveDoNothing = 0
}

// Health sums the health of living worms.
func (p *Player) Health() int {
	total := 0
	for _, w := range p.Worms {
		if !w.Dead() {
			total += w.Health
		}
	}
	return total
}

func (p *Player) LivingWorms() int {
	count := 0
	for _, w := range p.Worms {
		if !w.Dead() {
			count++
		}
	}
	return count
}

func (p *Player) WormByID(id int) *Worm {
	for _, w := range p.Worms {
		if w.ID == id {
			return w
		}
	}
	return nil
}
