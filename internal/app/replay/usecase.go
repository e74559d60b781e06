package replay

import (
	"context"
	"errors"
	"strings"

	"wormsarena/internal/app/ports"
	"wormsarena/internal/domain/worms"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.MatchID) == "" {
		return Response{}, ErrInvalidRequest
	}
	events, err := u.Events.ListByMatchID(ctx, req.MatchID, req.Limit)
	if err != nil {
		return Response{}, err
	}
	return Response{Events: filterByRoundWindow(events, req.RoundFrom, req.RoundTo)}, nil
}

func filterByRoundWindow(events []worms.DomainEvent, from, to int) []worms.DomainEvent {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]worms.DomainEvent, 0, len(events))
	for _, evt := range events {
		if from > 0 && evt.Round < from {
			continue
		}
		if to > 0 && evt.Round > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}
