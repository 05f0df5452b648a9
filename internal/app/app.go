package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/weekgrid/internal/config"
	"github.com/klokku/weekgrid/internal/database"
	"github.com/klokku/weekgrid/internal/seed"
	"github.com/klokku/weekgrid/pkg/calendar"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	router *mux.Router
	srv    *http.Server
	db     *pgxpool.Pool
}

// NewApplication loads the configuration file and constructs the full HTTP application, ready to Run().
func NewApplication(configPath string) (*Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return NewApplicationWithConfig(cfg)
}

func NewApplicationWithConfig(cfg config.Application) (*Application, error) {
	repo, db, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}

	deps, err := BuildDependencies(repo, cfg)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	if cfg.Seed.Path != "" {
		if err := seedEvents(cfg.Seed.Path, deps); err != nil {
			closeDB(db)
			return nil, err
		}
	}

	r := mux.NewRouter()
	SetupMiddleware(r)
	RegisterRoutes(r, deps)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Listen,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, router: r, srv: srv, db: db}, nil
}

func openStorage(cfg config.Application) (calendar.Repository, *pgxpool.Pool, error) {
	switch cfg.Storage {
	case config.MemoryStorage:
		log.Warn("using in-memory storage, events are lost on restart")
		return calendar.NewMemoryRepository(), nil, nil
	case config.PostgresStorage, "":
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(cfg.Database); err != nil {
			db.Close()
			return nil, nil, err
		}
		return calendar.NewRepository(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage type %q", cfg.Storage)
	}
}

func seedEvents(path string, deps *Dependencies) error {
	fixture, err := seed.Load(path)
	if err != nil {
		return err
	}
	added, err := seed.Apply(context.Background(), fixture, deps.CalendarService, deps.Clock.Now(), deps.LayoutOptions.Location)
	if err != nil {
		return err
	}
	log.Infof("seeded %d events from %s", added, path)
	return nil
}

func closeDB(db *pgxpool.Pool) {
	if db != nil {
		db.Close()
	}
}

// Handler exposes the router, mostly for tests.
func (a *Application) Handler() http.Handler {
	return a.router
}

// Run starts the HTTP server and blocks.
func (a *Application) Run() error {
	log.Infof("Starting server on %s", a.srv.Addr)
	defer closeDB(a.db)
	return a.srv.ListenAndServe()
}
