package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Harshitk-cp/nars/internal/api/handlers"
	mw "github.com/Harshitk-cp/nars/internal/api/middleware"
	"github.com/Harshitk-cp/nars/internal/buildconfig"
	"github.com/Harshitk-cp/nars/internal/config"
	"github.com/Harshitk-cp/nars/internal/domain"
	"github.com/Harshitk-cp/nars/internal/service"
	"github.com/Harshitk-cp/nars/internal/store"
)

// App holds the router and background workers for lifecycle management.
type App struct {
	Router   *chi.Mux
	Reasoner *service.Reasoner
	Runner   *service.Runner
	Outbox   *service.Outbox

	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// NewApp builds the reasoner, its worker and the HTTP surface. db is
// optional; when set, outputs are journaled to PostgreSQL.
func NewApp(db *pgxpool.Pool, params config.Params, seed uint64, logger *zap.Logger) *App {
	var journal domain.OutputStore
	var lookup handlers.OutputLookup
	if db != nil {
		s := store.NewOutputStore(db)
		journal, lookup = s, s
	}

	reasoner := service.NewReasoner(params, seed, logger)
	outbox := service.NewOutbox(journal, logger)
	reasoner.SetPublisher(outbox)
	runner := service.NewRunner(reasoner, outbox, logger)
	runner.SetCycleDelay(config.CycleDelay())
	runner.SetSnapshotInterval(config.SnapshotInterval())

	reasonerHandler := handlers.NewReasonerHandler(reasoner, runner, outbox, lookup)

	r := chi.NewRouter()
	app := &App{
		Router:    r,
		Reasoner:  reasoner,
		Runner:    runner,
		Outbox:    outbox,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Unauthenticated
	r.Get("/health", healthHandler(db))
	r.Get("/metrics", app.metricsHandler())
	r.Handle("/metrics/prometheus", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(config.APIKey()))

		r.Post("/input", reasonerHandler.Input)
		r.Get("/snapshot", reasonerHandler.Snapshot)
		r.Get("/outputs", reasonerHandler.Outputs)
		r.Get("/outputs/{id}", reasonerHandler.OutputByID)
		r.Get("/status", reasonerHandler.Status)
		r.Post("/pause", reasonerHandler.Pause)
		r.Post("/resume", reasonerHandler.Resume)
	})

	return app
}

// Start launches the outbox and the reasoner worker.
func (app *App) Start() {
	app.Outbox.Start()
	app.Runner.Start()
}

// Stop halts the worker after its current cycle, then flushes the outbox.
func (app *App) Stop() {
	app.Runner.Stop()
	app.Outbox.Stop()
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if db == nil {
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "journal": "disabled"})
			return
		}

		if err := db.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "journal": "postgres"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)
		status := app.Runner.Status()

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"reasoner": map[string]any{
				"run_id": status.RunID,
				"cycle":  status.Cycle,
				"paused": status.Paused,
			},
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
			"version":    buildconfig.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure implementations satisfy interfaces at compile time.
var (
	_ domain.OutputStore     = (*store.OutputStore)(nil)
	_ domain.OutputStore     = (*store.SQLiteOutputStore)(nil)
	_ handlers.OutputLookup  = (*store.OutputStore)(nil)
	_ handlers.OutputLookup  = (*store.SQLiteOutputStore)(nil)
	_ service.Publisher      = (*service.Outbox)(nil)
	_ handlers.OutputFeed    = (*service.Outbox)(nil)
	_ handlers.RunControl    = (*service.Runner)(nil)
	_ handlers.LineSubmitter = (*service.Reasoner)(nil)
)
