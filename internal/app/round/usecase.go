package round

import (
	"context"
	"errors"
	"strings"
	"time"

	"wormsarena/internal/app/ports"
	"wormsarena/internal/domain/worms"
)

var (
	ErrInvalidRequest = errors.New("invalid round request")
	ErrInvalidCommand = errors.New("invalid command params")
	ErrMatchFinished  = errors.New("match already finished")
	ErrNoActiveWorm   = errors.New("player has no living worm")
)

const (
	ResultOK       = "OK"
	ResultFinished = "FINISHED"
)

const (
	moveScore     = 5
	digScore      = 7
	damageScoreX2 = 2
)

// UseCase applies one player's resolved command to the canonical match
// state inside a transaction: idempotency replay, mutation through the
// core operations, optimistic version save, event append. A rejected
// command leaves the match exactly as it was.
type UseCase struct {
	TxManager   ports.TxManager
	Matches     ports.MatchRepository
	Commands    ports.CommandExecutionRepository
	Events      ports.EventRepository
	Metrics     ports.RoundMetrics
	Broadcaster ports.MatchBroadcaster
	Now         func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.MatchID = strings.TrimSpace(req.MatchID)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	if req.MatchID == "" || req.PlayerID <= 0 || req.IdempotencyKey == "" {
		return Response{}, ErrInvalidRequest
	}
	if !hasValidCommandParams(req.Command) {
		return Response{}, ErrInvalidCommand
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	var updated *worms.Map
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		exec, err := u.Commands.GetByIdempotencyKey(txCtx, req.MatchID, req.PlayerID, req.IdempotencyKey)
		if err == nil && exec != nil {
			out = Response{
				MatchID:       req.MatchID,
				Round:         exec.Result.Round,
				CurrentWormID: exec.Result.CurrentWormID,
				ResultCode:    exec.Result.ResultCode,
				Events:        exec.Result.Events,
			}
			return nil
		}
		if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return err
		}

		m, err := u.Matches.GetByMatchID(txCtx, req.MatchID)
		if err != nil {
			return err
		}
		if m.Finished() {
			return ErrMatchFinished
		}
		player, err := m.PlayerByID(req.PlayerID)
		if err != nil {
			return err
		}

		events, err := applyCommand(m, player, req.Command, nowFn())
		if err != nil {
			return err
		}

		player.SelectNextWorm()
		if player == m.Players[len(m.Players)-1] {
			m.AdvanceRound()
			events = append(events, worms.NewEvent(worms.EventRoundAdvanced, m.CurrentRound, nowFn(), nil))
		}

		expected := m.Version
		m.Version++
		if err := u.Matches.SaveWithVersion(txCtx, m, expected); err != nil {
			return err
		}

		resultCode := ResultOK
		if m.Finished() {
			resultCode = ResultFinished
		}
		currentWormID := 0
		if w := player.CurrentWorm(); w != nil {
			currentWormID = w.ID
		}
		out = Response{
			MatchID:       req.MatchID,
			Round:         m.CurrentRound,
			CurrentWormID: currentWormID,
			ResultCode:    resultCode,
			Events:        events,
		}

		execution := ports.CommandExecutionRecord{
			MatchID:        req.MatchID,
			PlayerID:       req.PlayerID,
			IdempotencyKey: req.IdempotencyKey,
			CommandType:    string(req.Command.Type),
			Round:          m.CurrentRound,
			Result: ports.RoundResult{
				ResultCode:    resultCode,
				Round:         m.CurrentRound,
				CurrentWormID: currentWormID,
				Events:        events,
			},
			AppliedAt: nowFn(),
		}
		if err := u.Commands.SaveExecution(txCtx, execution); err != nil {
			return err
		}
		if err := u.Events.Append(txCtx, req.MatchID, events); err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		if u.Metrics != nil {
			if errors.Is(err, ports.ErrConflict) {
				u.Metrics.RecordConflict()
			} else {
				u.Metrics.RecordFailure()
			}
		}
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess(out.ResultCode)
	}
	if u.Broadcaster != nil && updated != nil {
		u.Broadcaster.BroadcastMatch(req.MatchID, updated.Clone())
	}
	return out, nil
}

// applyCommand mutates the match through the core operations. The core
// re-checks only its own invariants (bounds, occupancy); anything it
// rejects is surfaced unchanged.
func applyCommand(m *worms.Map, player *worms.Player, cmd Command, at time.Time) ([]worms.DomainEvent, error) {
	if cmd.Type == CommandNothing {
		player.RecordDoNothing()
		return []worms.DomainEvent{
			worms.NewEvent(worms.EventDidNothing, m.CurrentRound, at, map[string]any{
				"player_id": player.ID,
			}),
		}, nil
	}

	worm := player.CurrentWorm()
	if worm == nil {
		return nil, ErrNoActiveWorm
	}
	player.ResetDoNothing()

	switch cmd.Type {
	case CommandMove:
		from := worm.Position
		healthBefore := worm.Health
		if err := worm.MoveTo(m, *cmd.Target); err != nil {
			return nil, err
		}
		player.Score += moveScore
		events := []worms.DomainEvent{
			worms.NewEvent(worms.EventWormMoved, m.CurrentRound, at, map[string]any{
				"player_id": player.ID,
				"worm_id":   worm.ID,
				"from":      map[string]int{"x": from.X, "y": from.Y},
				"to":        map[string]int{"x": worm.Position.X, "y": worm.Position.Y},
			}),
		}
		if worm.Health > healthBefore {
			events = append(events, worms.NewEvent(worms.EventPowerupConsumed, m.CurrentRound, at, map[string]any{
				"player_id": player.ID,
				"worm_id":   worm.ID,
				"healed":    worm.Health - healthBefore,
			}))
		}
		return events, nil

	case CommandDig:
		if err := worm.Dig(m, *cmd.Target); err != nil {
			return nil, err
		}
		player.Score += digScore
		return []worms.DomainEvent{
			worms.NewEvent(worms.EventCellDug, m.CurrentRound, at, map[string]any{
				"player_id": player.ID,
				"worm_id":   worm.ID,
				"target":    map[string]int{"x": cmd.Target.X, "y": cmd.Target.Y},
			}),
		}, nil

	case CommandShoot:
		target, err := m.WormByRef(*cmd.TargetWorm)
		if err != nil {
			return nil, err
		}
		if target.Dead() {
			return nil, worms.ErrWormDead
		}
		damage := worm.Weapon.Damage
		target.TakeDamage(damage, m.CurrentRound)
		player.Score += damage * damageScoreX2
		events := []worms.DomainEvent{
			worms.NewEvent(worms.EventWormDamaged, m.CurrentRound, at, map[string]any{
				"player_id":        player.ID,
				"worm_id":          worm.ID,
				"target_player_id": target.PlayerID,
				"target_worm_id":   target.ID,
				"damage":           damage,
			}),
		}
		if target.Dead() {
			m.ClearOccupier(target)
			events = append(events, worms.NewEvent(worms.EventWormDied, m.CurrentRound, at, map[string]any{
				"player_id": target.PlayerID,
				"worm_id":   target.ID,
			}))
		}
		return events, nil

	default:
		return nil, ErrInvalidCommand
	}
}

func hasValidCommandParams(cmd Command) bool {
	switch cmd.Type {
	case CommandMove, CommandDig:
		return cmd.Target != nil
	case CommandShoot:
		return cmd.TargetWorm != nil
	case CommandNothing:
		return true
	default:
		return false
	}
}
