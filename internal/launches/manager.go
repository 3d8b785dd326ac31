package launches

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"launchdash.dev/internal/logging"
	"launchdash.dev/launchdb"
)

// Manager owns the launch dataset for the lifetime of the process: the in-memory table
// and its SQLite mirror. Neither changes after InitLaunchManager returns.
type Manager struct {
	config       Config
	dataset      *Dataset
	LaunchDB     *launchdb.Client
	logger       *slog.Logger
	loadedAt     time.Time
	shutdownOnce sync.Once
}

// InitLaunchManager loads the dataset named by config.Source and mirrors it into SQLite.
func InitLaunchManager(ctx context.Context, config Config, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Source == "" {
		config.Source = DefaultSource
	}

	start := time.Now()
	rows, err := loadLaunchData(ctx, config.Source, logger)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		config:   config,
		dataset:  NewDataset(rows),
		logger:   logger,
		loadedAt: time.Now(),
	}

	db, err := launchdb.NewClient(launchdb.NewConfig(config.DataPath, config.Env, config.Verbose), logger)
	if err != nil {
		return nil, fmt.Errorf("error building launch database: %w", err)
	}
	if err := db.ImportLaunches(ctx, rows); err != nil {
		logging.SafeCloseWithLogging(db, logger, "launchdb_close_after_import")
		return nil, fmt.Errorf("error importing launches: %w", err)
	}
	manager.LaunchDB = db

	logging.LogOperation(logger, "launch_data_loaded",
		slog.String("source", config.Source),
		slog.Bool("local_file", config.isLocalFile()),
		slog.Int("rows", manager.dataset.Len()),
		slog.Duration("duration", time.Since(start)),
		slog.String("component", "launch_manager"))

	return manager, nil
}

// Shutdown releases the SQLite mirror. It is safe to call more than once.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		if manager.LaunchDB != nil {
			logging.SafeCloseWithLogging(manager.LaunchDB, manager.logger, "launchdb_shutdown")
		}
	})
}

func (manager *Manager) Dataset() *Dataset {
	return manager.dataset
}

// Statistics summarises the dataset and its SQLite mirror for logs and the debug page.
type Statistics struct {
	Source            string        `json:"source"`
	LoadedAt          time.Time     `json:"loadedAt"`
	Rows              int           `json:"rows"`
	Successes         int           `json:"successes"`
	Sites             []string      `json:"sites"`
	BoosterCategories []string      `json:"boosterCategories"`
	MinPayloadKg      float64       `json:"minPayloadKg"`
	MaxPayloadKg      float64       `json:"maxPayloadKg"`
	MirrorRows        int           `json:"mirrorRows"`
	MirrorImport      time.Duration `json:"mirrorImport"`
}

// MirrorInSync reports whether the SQLite mirror holds every dataset row.
func (stats Statistics) MirrorInSync() bool {
	return stats.MirrorRows == stats.Rows
}

func (manager *Manager) Statistics(ctx context.Context) (Statistics, error) {
	ds := manager.dataset
	stats := Statistics{
		Source:            manager.config.Source,
		LoadedAt:          manager.loadedAt,
		Rows:              ds.Len(),
		Sites:             ds.SiteNames(),
		BoosterCategories: ds.BoosterCategories(),
		MinPayloadKg:      ds.minPayload,
		MaxPayloadKg:      ds.maxPayload,
	}
	for _, l := range ds.launches {
		if l.Succeeded() {
			stats.Successes++
		}
	}

	if manager.LaunchDB != nil {
		n, err := manager.LaunchDB.CountLaunches(ctx)
		if err != nil {
			return stats, fmt.Errorf("error counting mirrored launches: %w", err)
		}
		stats.MirrorRows = n
		stats.MirrorImport = manager.LaunchDB.ImportRuntime()
	}
	return stats, nil
}

// PrintStatistics logs the dataset summary, and warns when the mirror disagrees with
// the dataset.
func (manager *Manager) PrintStatistics(ctx context.Context) {
	stats, err := manager.Statistics(ctx)
	if err != nil {
		logging.LogError(manager.logger, "failed to collect launch statistics", err,
			slog.String("component", "launch_manager"))
		return
	}

	logging.LogOperation(manager.logger, "launch_data_statistics",
		slog.String("source", stats.Source),
		slog.Time("loaded_at", stats.LoadedAt),
		slog.Int("rows", stats.Rows),
		slog.Int("successes", stats.Successes),
		slog.Any("sites", stats.Sites),
		slog.Any("booster_categories", stats.BoosterCategories),
		slog.Float64("min_payload_kg", stats.MinPayloadKg),
		slog.Float64("max_payload_kg", stats.MaxPayloadKg),
		slog.Int("mirror_rows", stats.MirrorRows),
		slog.Duration("mirror_import", stats.MirrorImport),
		slog.String("component", "launch_manager"))

	if !stats.MirrorInSync() {
		manager.logger.Warn("launch mirror out of sync",
			slog.Int("rows", stats.Rows),
			slog.Int("mirror_rows", stats.MirrorRows),
			slog.String("component", "launch_manager"))
	}
}
