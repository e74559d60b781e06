package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"wormsarena/internal/app/ports"
	"wormsarena/internal/domain/worms"
)

var (
	_ ports.MatchRepository            = MatchRepo{}
	_ ports.CommandExecutionRepository = CommandExecutionRepo{}
	_ ports.EventRepository            = EventRepo{}
	_ ports.TxManager                  = TxManager{}
)

func fixtureMatch(t *testing.T) *worms.Map {
	t.Helper()
	cfg := worms.DefaultConfig()
	cfg.MapSize = 5

	p1 := worms.NewPlayer(1)
	m := worms.NewMap("match-1", cfg, []*worms.Player{p1})
	w := worms.NewWorm(1, p1.ID, cfg, worms.Point{X: 0, Y: 0})
	p1.Worms = append(p1.Worms, w)
	if err := m.PlaceWorm(w); err != nil {
		t.Fatalf("place worm: %v", err)
	}
	return m
}

func TestMatchRepo_GetReturnsIsolatedCopy(t *testing.T) {
	store := NewStore()
	store.SeedMatch(fixtureMatch(t))
	repo := NewMatchRepo(store)

	first, err := repo.GetByMatchID(context.Background(), "match-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	first.Players[0].Score = 99
	first.Players[0].Worms[0].Health = 1

	second, err := repo.GetByMatchID(context.Background(), "match-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if second.Players[0].Score != 0 || second.Players[0].Worms[0].Health == 1 {
		t.Fatalf("caller writes leaked into the store: %+v", second.Players[0])
	}
}

func TestMatchRepo_GetUnknownMatch(t *testing.T) {
	repo := NewMatchRepo(NewStore())
	if _, err := repo.GetByMatchID(context.Background(), "nope"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatchRepo_SaveWithVersion(t *testing.T) {
	store := NewStore()
	repo := NewMatchRepo(store)
	m := fixtureMatch(t)

	// First save creates.
	if err := repo.SaveWithVersion(context.Background(), m, 0); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Creating again with a stale expectation conflicts.
	if err := repo.SaveWithVersion(context.Background(), m, 2); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	loaded, _ := repo.GetByMatchID(context.Background(), "match-1")
	loaded.Version++
	if err := repo.SaveWithVersion(context.Background(), loaded, loaded.Version-1); err != nil {
		t.Fatalf("update: %v", err)
	}

	// A writer holding the old version loses.
	stale := m.Clone()
	stale.Version++
	if err := repo.SaveWithVersion(context.Background(), stale, stale.Version-1); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict for stale writer, got %v", err)
	}
}

func TestCommandExecutionRepo_RoundTrip(t *testing.T) {
	repo := NewCommandExecutionRepo(NewStore())
	rec := ports.CommandExecutionRecord{
		MatchID:        "match-1",
		PlayerID:       1,
		IdempotencyKey: "k-1",
		CommandType:    "move",
		Round:          1,
		Result:         ports.RoundResult{ResultCode: "OK", Round: 1, CurrentWormID: 2},
		AppliedAt:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	if _, err := repo.GetByIdempotencyKey(context.Background(), "match-1", 1, "k-1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.SaveExecution(context.Background(), rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.GetByIdempotencyKey(context.Background(), "match-1", 1, "k-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Result.ResultCode != "OK" || got.Result.CurrentWormID != 2 {
		t.Fatalf("record mismatch: %+v", got)
	}

	// Same key twice is a conflict, not a silent overwrite.
	if err := repo.SaveExecution(context.Background(), rec); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	// Same key under another player is a distinct record.
	other := rec
	other.PlayerID = 2
	if err := repo.SaveExecution(context.Background(), other); err != nil {
		t.Fatalf("save other player: %v", err)
	}
}

// Reads come from the observe path while the round loop writes inside
// the tx lock; both must be safe to interleave.
func TestStore_ConcurrentReadsDuringTx(t *testing.T) {
	store := NewStore()
	store.SeedMatch(fixtureMatch(t))
	matches := NewMatchRepo(store)
	txm := NewTxManager(store)

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				if _, err := matches.GetByMatchID(context.Background(), "match-1"); err != nil {
					t.Errorf("get: %v", err)
					return
				}
			}
		}()
	}

	for i := 0; i < 200; i++ {
		err := txm.RunInTx(context.Background(), func(txCtx context.Context) error {
			m, err := matches.GetByMatchID(txCtx, "match-1")
			if err != nil {
				return err
			}
			expected := m.Version
			m.Version++
			m.AdvanceRound()
			return matches.SaveWithVersion(txCtx, m, expected)
		})
		if err != nil {
			t.Fatalf("tx %d: %v", i, err)
		}
	}
	close(done)
	wg.Wait()

	final, err := matches.GetByMatchID(context.Background(), "match-1")
	if err != nil {
		t.Fatalf("final get: %v", err)
	}
	if final.Version != 200 || final.CurrentRound != 201 {
		t.Fatalf("lost writes: version=%d round=%d", final.Version, final.CurrentRound)
	}
}

func TestEventRepo_NewestFirstWithLimit(t *testing.T) {
	repo := NewEventRepo(NewStore())
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	if _, err := repo.ListByMatchID(context.Background(), "match-1", 0); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty log, got %v", err)
	}

	batch := []worms.DomainEvent{
		worms.NewEvent(worms.EventWormMoved, 1, at, nil),
		worms.NewEvent(worms.EventCellDug, 1, at, nil),
		worms.NewEvent(worms.EventRoundAdvanced, 2, at, nil),
	}
	if err := repo.Append(context.Background(), "match-1", batch); err != nil {
		t.Fatalf("append: %v", err)
	}

	all, err := repo.ListByMatchID(context.Background(), "match-1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].Type != worms.EventRoundAdvanced || all[2].Type != worms.EventWormMoved {
		t.Fatalf("order mismatch: %+v", all)
	}

	limited, err := repo.ListByMatchID(context.Background(), "match-1", 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 || limited[0].Type != worms.EventRoundAdvanced {
		t.Fatalf("limit mismatch: %+v", limited)
	}
}
