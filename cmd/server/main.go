package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	httpadapter "wormsarena/internal/adapter/http"
	"wormsarena/internal/adapter/mapgen"
	metricsinmem "wormsarena/internal/adapter/metrics/inmemory"
	gormrepo "wormsarena/internal/adapter/repo/gorm"
	"wormsarena/internal/adapter/repo/memory"
	"wormsarena/internal/adapter/ws"
	"wormsarena/internal/app/observe"
	"wormsarena/internal/app/ports"
	"wormsarena/internal/app/replay"
	"wormsarena/internal/app/round"
	"wormsarena/internal/app/status"
	"wormsarena/internal/domain/worms"

	"github.com/cloudwego/hertz/pkg/app/server"
)

const demoMatchID = "demo-match"

func main() {
	matchRepo, commandRepo, eventRepo, txManager := buildRepos()
	kpiRecorder := metricsinmem.NewRecorder()
	hub := ws.NewHub()
	go hub.Run()
	go func() {
		addr := strEnv("WORMS_WS_ADDR", ":8081")
		if err := ws.Serve(hub, addr); err != nil {
			log.Printf("spectator server stopped: %v", err)
		}
	}()

	cfg := configFromEnv()
	seedDemoMatch(matchRepo, cfg)

	h := httpadapter.Handler{
		ObserveUC: observe.UseCase{Matches: matchRepo, Policy: observe.DefaultVisibility()},
		RoundUC: round.UseCase{
			TxManager:   txManager,
			Matches:     matchRepo,
			Commands:    commandRepo,
			Events:      eventRepo,
			Metrics:     kpiRecorder,
			Broadcaster: hub,
			Now:         time.Now,
		},
		StatusUC: status.UseCase{Matches: matchRepo},
		ReplayUC: replay.UseCase{Events: eventRepo},
		KPI:      kpiRecorder,
	}

	addr := strEnv("WORMS_HTTP_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("wormsarena server listening on %s (demo match: %s)", addr, demoMatchID)
	s.Spin()
}

func buildRepos() (ports.MatchRepository, ports.CommandExecutionRepository, ports.EventRepository, ports.TxManager) {
	dsn := strings.TrimSpace(os.Getenv("WORMS_DB_DSN"))
	if dsn == "" {
		log.Println("WORMS_DB_DSN not set, using in-memory store")
		store := memory.NewStore()
		return memory.NewMatchRepo(store), memory.NewCommandExecutionRepo(store), memory.NewEventRepo(store), memory.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	return gormrepo.NewMatchRepo(db), gormrepo.NewCommandExecutionRepo(db), gormrepo.NewEventRepo(db), gormrepo.NewTxManager(db)
}

func configFromEnv() worms.Config {
	cfg := worms.DefaultConfig()
	cfg.MapSize = intEnv("WORMS_MAP_SIZE", cfg.MapSize)
	cfg.MaxRounds = intEnv("WORMS_MAX_ROUNDS", cfg.MaxRounds)
	cfg.WormsPerPlayer = intEnv("WORMS_PER_PLAYER", cfg.WormsPerPlayer)
	cfg.StartingHealth = intEnv("WORMS_STARTING_HEALTH", cfg.StartingHealth)
	cfg.WeaponDamage = intEnv("WORMS_WEAPON_DAMAGE", cfg.WeaponDamage)
	cfg.WeaponRange = intEnv("WORMS_WEAPON_RANGE", cfg.WeaponRange)
	cfg.PushbackDamage = intEnv("WORMS_PUSHBACK_DAMAGE", cfg.PushbackDamage)
	cfg.HealthPackValue = intEnv("WORMS_HEALTH_PACK_VALUE", cfg.HealthPackValue)
	return cfg
}

func seedDemoMatch(matches ports.MatchRepository, cfg worms.Config) {
	_, err := matches.GetByMatchID(context.Background(), demoMatchID)
	if err == nil {
		return
	}
	if !errors.Is(err, ports.ErrNotFound) {
		log.Fatalf("load demo match: %v", err)
	}

	seed := int64(intEnv("WORMS_MAP_SEED", 1))
	m, err := mapgen.Generate(demoMatchID, cfg, seed)
	if err != nil {
		log.Fatalf("generate demo match: %v", err)
	}
	if err := matches.SaveWithVersion(context.Background(), m, 0); err != nil {
		log.Fatalf("seed demo match: %v", err)
	}
}

func strEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
