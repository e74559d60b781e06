package replay

import "wormsarena/internal/domain/worms"

type Request struct {
	MatchID   string
	Limit     int
	RoundFrom int
	RoundTo   int
}

type Response struct {
	Events []worms.DomainEvent `json:"events"`
}
