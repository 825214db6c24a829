package container

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"projectpulse/adapters/excel"
	"projectpulse/adapters/file"
	"projectpulse/adapters/postgres"
	"projectpulse/adapters/sheets"
	"projectpulse/app"
	"projectpulse/internal"
	"projectpulse/internal/config"
	"projectpulse/internal/errors"
	"projectpulse/internal/kpi"
	"projectpulse/internal/tracker"
	"projectpulse/ports"
)

// Container wires configuration into the concrete services the entrypoints
// share. The dashboard source and the tracker store are both picked from
// config: SHEET_URL vs DATA_FILE for the former, DATABASE_URL vs the JSON
// file for the latter.
type Container struct {
	Config    *config.Config
	Logger    *internal.Logger
	Source    ports.TableSource
	Dashboard *app.DashboardService
	Tracker   *tracker.Service

	db *sqlx.DB
}

// New builds the full dependency graph from the loaded configuration.
func New(cfg *config.Config) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: internal.DefaultLogger,
	}

	if cfg.Sheet.URL != "" {
		c.Source = sheets.NewSheetReader(cfg.Sheet.URL, cfg.Sheet.HTTPTimeout)
	} else {
		c.Source = excel.NewDataReader(cfg.Sheet.DataFile)
	}

	c.Dashboard = app.NewDashboardService(
		c.Source,
		cfg.Sheet.CacheTTL,
		cfg.Sheet.MarkerColumn,
		kpi.DefaultColumns(),
		c.Logger,
	)

	repo, err := c.trackerRepository(cfg)
	if err != nil {
		return nil, err
	}
	c.Tracker = tracker.NewService(repo)

	return c, nil
}

func (c *Container) trackerRepository(cfg *config.Config) (ports.TrackerRepository, error) {
	if cfg.Database.URL == "" {
		store, err := file.NewTrackerStore(cfg.Tracker.DataFile)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open tracker file")
		}
		c.Logger.Info("tracker persistence: file %s", cfg.Tracker.DataFile)
		return store, nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := postgres.EnsureSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ensure tracker schema")
	}
	c.db = db
	c.Logger.Info("tracker persistence: postgres")
	return postgres.NewTrackerRepository(db), nil
}

// Shutdown releases held resources.
func (c *Container) Shutdown() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
