package catalog

import (
	"path/filepath"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
	"github.com/custodia-labs/sourcerank/internal/core/ports/driven"
)

// Resolve joins a catalog file name with the catalog directory.
// Absolute names and empty directories are returned unchanged.
func Resolve(cfg domain.CatalogSettings, name string) string {
	if name == "" || filepath.IsAbs(name) || cfg.Dir == "" {
		return name
	}
	return filepath.Join(cfg.Dir, name)
}

// NewLoaders builds the loaders for every configured catalog, in the
// order duplicates are resolved: deep GitHub, blogs, Telegram, URL lists.
// Catalogs with an empty file name are left out.
func NewLoaders(cfg domain.CatalogSettings, vocab *domain.Vocabulary) []driven.CatalogLoader {
	var loaders []driven.CatalogLoader
	if cfg.DeepGitHub != "" {
		loaders = append(loaders, NewDeepGitHubLoader(Resolve(cfg, cfg.DeepGitHub), vocab))
	}
	if cfg.Karpathy != "" {
		loaders = append(loaders, NewKarpathyLoader(Resolve(cfg, cfg.Karpathy), vocab))
	}
	if cfg.Telegram != "" {
		loaders = append(loaders, NewTelegramLoader(Resolve(cfg, cfg.Telegram), vocab))
	}
	for _, name := range cfg.URLLists {
		if name != "" {
			loaders = append(loaders, NewURLListLoader(Resolve(cfg, name), vocab))
		}
	}
	return loaders
}
