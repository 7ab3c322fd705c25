package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/sourcerank/internal/adapters/driven/catalog"
	"github.com/custodia-labs/sourcerank/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sourcerank/internal/adapters/driven/config/vocabulary"
	"github.com/custodia-labs/sourcerank/internal/adapters/driven/importer/feed"
	"github.com/custodia-labs/sourcerank/internal/adapters/driven/importer/github"
	"github.com/custodia-labs/sourcerank/internal/adapters/driven/importer/telegram"
	"github.com/custodia-labs/sourcerank/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sourcerank/internal/adapters/driven/watcher"
	"github.com/custodia-labs/sourcerank/internal/adapters/driving/cli"
	"github.com/custodia-labs/sourcerank/internal/core/services"
	"github.com/custodia-labs/sourcerank/internal/logger"
)

// telegramSessionFile holds the MTProto session inside the data directory.
const telegramSessionFile = "telegram.session"

// bootstrap builds every service from the configuration directory.
func bootstrap(ctx context.Context, configDir string) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	vocab, err := vocabulary.Load(settings.Catalog.Vocabulary)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	recommendService, err := services.NewRecommendService(
		catalog.NewLoaders(settings.Catalog, vocab), vocab, *settings)
	if err != nil {
		return nil, err
	}

	dataDir := ""
	if configDir != "" {
		dataDir = filepath.Join(configDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open import ledger: %w", err)
	}
	logger.Debug("Import ledger: %s", store.Path())

	var targets []services.ImportTarget
	if settings.Catalog.DeepGitHub != "" {
		targets = append(targets, services.ImportTarget{
			Searcher: github.NewSearcherWithToken(ctx, settings.Import.GitHubToken),
			Appender: catalog.NewDeepGitHubAppender(catalog.Resolve(settings.Catalog, settings.Catalog.DeepGitHub)),
		})
	}
	if len(settings.Catalog.URLLists) > 0 {
		targets = append(targets, services.ImportTarget{
			Searcher: feed.NewSearcher(settings.Import.Feeds),
			Appender: catalog.NewURLListAppender(catalog.Resolve(settings.Catalog, settings.Catalog.URLLists[0])),
		})
	}

	if settings.Catalog.Telegram != "" && settings.Import.TelegramEnabled() {
		targets = append(targets, services.ImportTarget{
			Searcher: telegram.NewSearcherWithConfig(telegram.Config{
				AppID:       settings.Import.TelegramAppID,
				AppHash:     settings.Import.TelegramAppHash,
				Phone:       settings.Import.TelegramPhone,
				SessionPath: filepath.Join(filepath.Dir(store.Path()), telegramSessionFile),
				Code:        telegram.PromptCode(os.Stdin, os.Stderr),
			}),
			Appender: catalog.NewTelegramAppender(catalog.Resolve(settings.Catalog, settings.Catalog.Telegram)),
		})
	}

	return &cli.Services{
		Recommend:  recommendService,
		Import:     services.NewImportService(store.ImportLedger(), targets...),
		Settings:   settingsService,
		Watcher:    watcher.New(0),
		Vocabulary: vocab,
		Close:      store.Close,
	}, nil
}
