// Command khareeta answers questions about Egypt's geography lessons.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/khareeta/internal/adapters/driven/config/file"
	"github.com/custodia-labs/khareeta/internal/adapters/driven/lessons"
	"github.com/custodia-labs/khareeta/internal/adapters/driven/openverse"
	"github.com/custodia-labs/khareeta/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/khareeta/internal/adapters/driving/cli"
	"github.com/custodia-labs/khareeta/internal/core/domain"
	"github.com/custodia-labs/khareeta/internal/core/services"
	"github.com/custodia-labs/khareeta/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the driven adapters into the core services.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, func(), error) {
	dataDir := opts.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".khareeta")
	}

	configStore, err := file.NewConfigStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, err
	}

	lessonsPath := opts.LessonsPath
	if lessonsPath == "" {
		lessonsPath = settings.LessonsPath
	}
	source := lessons.NewYAMLSource(lessonsPath)
	dataset, err := source.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	store, err := sqlite.NewStore(filepath.Join(dataDir, "data"))
	if err != nil {
		return nil, nil, fmt.Errorf("open progress store: %w", err)
	}

	knowledgeService := services.NewKnowledgeService(dataset, services.WithQueryConfig(settings.Query))
	progressService := services.NewProgressService(store.ProgressStore(), dataset.Lessons)
	knowledgeService.SetAwarder(progressService)

	mediaService, err := services.NewMediaService(openverse.NewClient(openverse.Config{
		BaseURL:   settings.Media.OpenverseBaseURL,
		PageSize:  settings.Media.PageSize,
		RateLimit: openverse.DefaultRateLimit,
	}), settings.Media)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	watcher := watchLessons(source, knowledgeService, progressService)

	cleanup := func() {
		if watcher != nil {
			watcher.Stop()
		}
		if err := store.Close(); err != nil {
			logger.Warn("close progress store: %v", err)
		}
	}

	return &cli.Services{
		Knowledge: knowledgeService,
		Progress:  progressService,
		Media:     mediaService,
		Settings:  settingsService,
	}, cleanup, nil
}

// watchLessons reloads a file-backed dataset on change. The embedded
// dataset is not watched. A watcher that fails to start is not fatal.
func watchLessons(
	source *lessons.YAMLSource, knowledge *services.KnowledgeService, progress *services.ProgressService,
) *lessons.Watcher {
	if source.Location() == lessons.EmbeddedLocation {
		return nil
	}

	watcher, err := lessons.NewWatcher(source)
	if err != nil {
		logger.Warn("lesson watcher disabled: %v", err)
		return nil
	}
	watcher.OnChange(func(dataset *domain.Dataset) {
		knowledge.ReplaceLessons(dataset)
		progress.SetLessons(dataset.Lessons)
	})
	if err := watcher.Start(); err != nil {
		logger.Warn("lesson watcher disabled: %v", err)
		watcher.Stop()
		return nil
	}
	return watcher
}
