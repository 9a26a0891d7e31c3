package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ekima-network/ekima/internal/api"
	"github.com/ekima-network/ekima/internal/app/gamification"
	"github.com/ekima-network/ekima/internal/domain"
	"github.com/ekima-network/ekima/internal/health"
	"github.com/ekima-network/ekima/internal/infra/catalog"
	_ "github.com/ekima-network/ekima/internal/infra/metrics" // Register Prometheus metrics
	"github.com/ekima-network/ekima/internal/infra/sqlite"
)

// Daemon is the Ekima gamification engine runtime. It wires together the
// profile store, the write-path service, the leaderboard cache, and the
// HTTP API.
type Daemon struct {
	Config  Config
	DB      *sqlite.DB
	Bus     *gamification.Bus
	Service *gamification.Service
	Boards  *gamification.LeaderboardCache
	Health  *health.Checker
	Server  *api.Server
	cancel  context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(ekimaHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Achievement catalog — compiled once here; a malformed requirement
	// string fails startup, never an evaluation.
	defs := catalog.Default()
	if cfg.Gamification.CatalogFile != "" {
		defs, err = catalog.Load(cfg.Gamification.CatalogFile)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("load achievement catalog: %w", err)
		}
	}

	curve := domain.Curve{
		XPPerLevel: cfg.Gamification.XPPerLevel,
		MaxLevel:   cfg.Gamification.MaxLevel,
	}

	bus := gamification.NewBus()
	ledger := gamification.NewLedger(curve, cfg.Gamification.SourceMultipliers)
	engine := gamification.NewEngine(defs)
	service := gamification.NewService(db, db, ledger, engine, bus)

	boards := gamification.NewLeaderboardCache(
		sqlite.NewRanking(db, curve),
		cfg.Leaderboard.TTL(),
		cfg.Leaderboard.Limit,
	)

	checker := health.NewChecker(db, engine, ekimaHome())

	srv := api.NewServer(service, boards)
	srv.SetHealth(checker)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config:  cfg,
		DB:      db,
		Bus:     bus,
		Service: service,
		Boards:  boards,
		Health:  checker,
		Server:  srv,
	}, nil
}

// Serve runs the HTTP API and background refresh until a signal or
// context cancellation.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Leaderboard invalidation ticker runs independently of the write path.
	go d.Boards.Run(ctx)
	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Ekima engine serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop triggers a graceful shutdown.
func (d *Daemon) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
}

// Close releases resources for non-serving (CLI) use.
func (d *Daemon) Close() error {
	return d.DB.Close()
}
