package status

import (
	"context"
	"errors"
	"strings"

	"wormsarena/internal/app/ports"
	"wormsarena/internal/domain/worms"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	Matches ports.MatchRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.MatchID) == "" {
		return Response{}, ErrInvalidRequest
	}
	m, err := u.Matches.GetByMatchID(ctx, req.MatchID)
	if err != nil {
		return Response{}, err
	}

	resp := Response{
		MatchID:      m.MatchID,
		CurrentRound: m.CurrentRound,
		MaxRounds:    m.Config.MaxRounds,
		Finished:     m.Finished(),
		Players:      make([]PlayerStatus, 0, len(m.Players)),
	}
	for _, p := range m.Players {
		resp.Players = append(resp.Players, PlayerStatus{
			ID:          p.ID,
			Score:       p.Score,
			Health:      p.Health(),
			WormsAlive:  p.LivingWorms(),
			WormsInTeam: len(p.Worms),
		})
	}
	if resp.Finished {
		resp.WinnerID = winner(m)
	}
	return resp, nil
}

// winner is the last player with living worms, falling back to score
// when the match ends on the round limit. Zero means a draw.
func winner(m *worms.Map) int {
	var alive []*worms.Player
	for _, p := range m.Players {
		if p.LivingWorms() > 0 {
			alive = append(alive, p)
		}
	}
	if len(alive) == 1 {
		return alive[0].ID
	}

	best := 0
	bestScore := -1
	tied := false
	for _, p := range m.Players {
		switch {
		case p.Score > bestScore:
			best = p.ID
			bestScore = p.Score
			tied = false
		case p.Score == bestScore:
			tied = true
		}
	}
	if tied {
		return 0
	}
	return best
}
