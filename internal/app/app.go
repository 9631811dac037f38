package app

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/db"
	"github.com/openmuseum/museum-map-backend/internal/modules/groups"
	"github.com/openmuseum/museum-map-backend/internal/modules/items"
	"github.com/openmuseum/museum-map-backend/internal/modules/layout"
	"github.com/openmuseum/museum-map-backend/internal/platform/getty"
	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/vocab"
)

// App wires the pipeline: database, repositories, vocabulary service and the
// three processing modules.
type App struct {
	Log   *logger.Logger
	DB    *gorm.DB
	Cfg   Config
	Repos Repos

	Items  items.Usecases
	Groups groups.Usecases
	Layout layout.Usecases

	closers []func() error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg := LoadConfig()

	dbService, err := db.NewService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if cfg.AutoMigrate {
		if err := dbService.AutoMigrateAll(); err != nil {
			log.Sync()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}
	theDB := dbService.DB()

	reposet := wireRepos(theDB, log)

	app := &App{
		Log:   log,
		DB:    theDB,
		Cfg:   cfg,
		Repos: reposet,
	}

	cache, err := app.wireCache(cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}
	expander := vocab.NewExpander(getty.NewClient(log), cache, log)

	app.Items = items.New(items.UsecasesDeps{
		DB:    theDB,
		Log:   log,
		Items: reposet.Items,
		Vocab: expander,
	})
	app.Groups = groups.New(groups.UsecasesDeps{
		DB:     theDB,
		Log:    log,
		Items:  reposet.Items,
		Groups: reposet.Groups,
		Vocab:  expander,
	})
	app.Layout = layout.New(layout.UsecasesDeps{
		DB:     theDB,
		Log:    log,
		Items:  reposet.Items,
		Groups: reposet.Groups,
		Rooms:  reposet.Rooms,
		Floors: reposet.Floors,
		Topics: reposet.Topics,
	})
	return app, nil
}

func (a *App) wireCache(cfg Config) (vocab.Cache, error) {
	switch cfg.CacheBackend {
	case "redis":
		cache, err := vocab.NewRedisCache(a.Log)
		if err != nil {
			return nil, fmt.Errorf("init redis vocabulary cache: %w", err)
		}
		a.closers = append(a.closers, cache.Close)
		return cache, nil
	default:
		cache, err := vocab.NewFileCache(cfg.CachePath)
		if err != nil {
			return nil, fmt.Errorf("init file vocabulary cache: %w", err)
		}
		return cache, nil
	}
}

// Run executes the full pipeline: category expansion, group hierarchy
// construction, then physical layout.
func (a *App) Run(ctx context.Context) error {
	a.Log.Info("expanding item categories")
	if _, err := a.Items.ExpandCategories(ctx, items.ExpandCategoriesInput{
		HierarchyField: a.Cfg.HierarchyField,
		Expansions:     a.Cfg.Expansions,
	}); err != nil {
		return fmt.Errorf("expand categories: %w", err)
	}

	a.Log.Info("building group hierarchy")
	if err := a.Groups.Pipeline(ctx, groups.PipelineInput{
		YearField: a.Cfg.YearField,
		Threshold: a.Cfg.GroupThreshold,
		Bounds:    a.Cfg.Splits,
	}); err != nil {
		return fmt.Errorf("group pipeline: %w", err)
	}

	a.Log.Info("generating layout")
	slots, err := layout.LoadSlots(a.Cfg.LayoutConfigPath)
	if err != nil {
		return err
	}
	if err := a.Layout.Pipeline(ctx, slots); err != nil {
		return fmt.Errorf("layout pipeline: %w", err)
	}
	return nil
}

func (a *App) Close() {
	for _, close := range a.closers {
		if err := close(); err != nil {
			a.Log.Warn("close resource", "error", err)
		}
	}
	a.Log.Sync()
}
