package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"wormsarena/internal/app/observe"
	"wormsarena/internal/app/ports"
	"wormsarena/internal/app/replay"
	"wormsarena/internal/app/round"
	"wormsarena/internal/app/status"
	"wormsarena/internal/domain/worms"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const matchIDHeader = "X-Match-ID"
const playerIDHeader = "X-Player-ID"

var (
	ErrMissingMatchIDHeader  = errors.New("missing x-match-id header")
	ErrMissingPlayerIDHeader = errors.New("missing or invalid x-player-id header")
)

type Handler struct {
	ObserveUC observe.UseCase
	RoundUC   round.UseCase
	StatusUC  status.UseCase
	ReplayUC  replay.UseCase
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	agent := s.Group("/api/agent")
	agent.POST("/observe", h.observe)
	agent.POST("/action", h.action)

	match := s.Group("/api/match")
	match.GET("/status", h.status)
	match.GET("/replay", h.replay)

	s.GET("/ops/kpi", h.kpi)
}

type actionRequest struct {
	IdempotencyKey string        `json:"idempotency_key"`
	Command        actionCommand `json:"command"`
}

type actionCommand struct {
	Type       string       `json:"type"`
	Target     *worms.Point `json:"target,omitempty"`
	TargetWorm *worms.Ref   `json:"target_worm,omitempty"`
}

func (h Handler) observe(c context.Context, ctx *app.RequestContext) {
	matchID, playerID, err := requireAgentIdentity(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.ObserveUC.Execute(c, observe.Request{MatchID: matchID, PlayerID: playerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) action(c context.Context, ctx *app.RequestContext) {
	matchID, playerID, err := requireAgentIdentity(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body actionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.RoundUC.Execute(c, round.Request{
		MatchID:        matchID,
		PlayerID:       playerID,
		IdempotencyKey: body.IdempotencyKey,
		Command: round.Command{
			Type:       round.CommandType(body.Command.Type),
			Target:     body.Command.Target,
			TargetWorm: body.Command.TargetWorm,
		},
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	matchID := string(ctx.Query("match_id"))
	resp, err := h.StatusUC.Execute(c, status.Request{MatchID: matchID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	matchID := string(ctx.Query("match_id"))
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	roundFrom, _ := strconv.Atoi(string(ctx.Query("round_from")))
	roundTo, _ := strconv.Atoi(string(ctx.Query("round_to")))

	resp, err := h.ReplayUC.Execute(c, replay.Request{
		MatchID:   matchID,
		Limit:     limit,
		RoundFrom: roundFrom,
		RoundTo:   roundTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func requireAgentIdentity(ctx *app.RequestContext) (string, int, error) {
	matchID := strings.TrimSpace(string(ctx.GetHeader(matchIDHeader)))
	if matchID == "" {
		return "", 0, ErrMissingMatchIDHeader
	}
	playerID, err := strconv.Atoi(strings.TrimSpace(string(ctx.GetHeader(playerIDHeader))))
	if err != nil || playerID <= 0 {
		return "", 0, ErrMissingPlayerIDHeader
	}
	return matchID, playerID, nil
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingMatchIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_match_id", err.Error())
	case errors.Is(err, ErrMissingPlayerIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_player_id", err.Error())
	case errors.Is(err, worms.ErrCellOccupied):
		writeErrorBody(ctx, consts.StatusConflict, "cell_occupied", err.Error())
	case errors.Is(err, worms.ErrNotDiggable):
		writeErrorBody(ctx, consts.StatusConflict, "cell_not_diggable", err.Error())
	case errors.Is(err, worms.ErrWormDead):
		writeErrorBody(ctx, consts.StatusConflict, "worm_dead", err.Error())
	case errors.Is(err, worms.ErrOutOfBounds):
		writeErrorBody(ctx, consts.StatusBadRequest, "out_of_bounds", err.Error())
	case errors.Is(err, round.ErrMatchFinished):
		writeErrorBody(ctx, consts.StatusConflict, "match_finished", err.Error())
	case errors.Is(err, round.ErrNoActiveWorm):
		writeErrorBody(ctx, consts.StatusConflict, "no_active_worm", err.Error())
	case errors.Is(err, observe.ErrUnknownPlayer),
		errors.Is(err, worms.ErrUnknownPlayer),
		errors.Is(err, worms.ErrUnknownWorm):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_player", err.Error())
	case errors.Is(err, round.ErrInvalidRequest),
		errors.Is(err, round.ErrInvalidCommand),
		errors.Is(err, observe.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
