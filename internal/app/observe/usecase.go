package observe

import (
	"context"
	"errors"
	"strings"

	"wormsarena/internal/app/ports"
)

var (
	ErrInvalidRequest = errors.New("invalid observe request")
	ErrUnknownPlayer  = errors.New("requesting player not in match")
)

// UseCase renders the per-player view. Policy is taken as configured:
// the zero value hides everything, callers wanting the starter-bot
// contract pass DefaultVisibility.
type UseCase struct {
	Matches ports.MatchRepository
	Policy  Visibility
}

func (u UseCase) Execute(ctx context.Context, req Request) (State, error) {
	if strings.TrimSpace(req.MatchID) == "" || req.PlayerID <= 0 {
		return State{}, ErrInvalidRequest
	}
	m, err := u.Matches.GetByMatchID(ctx, req.MatchID)
	if err != nil {
		return State{}, err
	}
	viewer, err := m.PlayerByID(req.PlayerID)
	if err != nil {
		return State{}, ErrUnknownPlayer
	}
	return BuildState(m, viewer, u.Policy), nil
}
