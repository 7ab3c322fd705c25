package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
	"github.com/custodia-labs/sourcerank/internal/core/ports/driven"
	"github.com/custodia-labs/sourcerank/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyCatalogDir        = "catalog.dir"
	keyCatalogKarpathy   = "catalog.karpathy"
	keyCatalogDeepGitHub = "catalog.deep_github"
	keyCatalogTelegram   = "catalog.telegram"
	keyCatalogURLLists   = "catalog.url_lists"
	keyCatalogVocabulary = "catalog.vocabulary"
	keyRecommendLimit    = "recommend.limit"
	keyRecommendStrategy = "recommend.strategy"
	keyPerTypeCap        = "diversify.per_type_cap"
	keyPerHostCap        = "diversify.per_host_cap"
	keyWindowMultiplier  = "diversify.window_multiplier"
	keyAcceptRelevance   = "diversify.accept_relevance"
	keyBackfillRelevance = "diversify.backfill_relevance"
	keyMinSecondary      = "diversify.min_secondary"
	keyImportGitHubToken = "import.github_token"
	keyImportFeeds       = "import.feeds"
	keyTelegramAppID     = "import.telegram_app_id"
	keyTelegramAppHash   = "import.telegram_app_hash"
	keyTelegramPhone     = "import.telegram_phone"

	// keyTypeCapPrefix is followed by a source type, e.g. diversify.type_cap.telegram.
	keyTypeCapPrefix = "diversify.type_cap."
)

type keyKind int

const (
	kindString keyKind = iota
	kindList
	kindPositiveInt
	kindNonNegativeInt
	kindFloat
	kindStrategy
)

var keyKinds = map[string]keyKind{
	keyCatalogDir:        kindString,
	keyCatalogKarpathy:   kindString,
	keyCatalogDeepGitHub: kindString,
	keyCatalogTelegram:   kindString,
	keyCatalogURLLists:   kindList,
	keyCatalogVocabulary: kindString,
	keyRecommendLimit:    kindPositiveInt,
	keyRecommendStrategy: kindStrategy,
	keyPerTypeCap:        kindNonNegativeInt,
	keyPerHostCap:        kindPositiveInt,
	keyWindowMultiplier:  kindPositiveInt,
	keyAcceptRelevance:   kindFloat,
	keyBackfillRelevance: kindFloat,
	keyMinSecondary:      kindNonNegativeInt,
	keyImportGitHubToken: kindString,
	keyImportFeeds:       kindList,
	keyTelegramAppID:     kindPositiveInt,
	keyTelegramAppHash:   kindString,
	keyTelegramPhone:     kindString,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Unset or invalid values
// fall back to the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Catalog: domain.CatalogSettings{
			Dir:        s.getString(keyCatalogDir, d.Catalog.Dir),
			Karpathy:   s.getString(keyCatalogKarpathy, d.Catalog.Karpathy),
			DeepGitHub: s.getString(keyCatalogDeepGitHub, d.Catalog.DeepGitHub),
			Telegram:   s.getString(keyCatalogTelegram, d.Catalog.Telegram),
			URLLists:   s.getList(keyCatalogURLLists, d.Catalog.URLLists),
			Vocabulary: s.configStore.GetString(keyCatalogVocabulary),
		},
		Recommend: domain.RecommendSettings{
			Limit:    s.getPositiveInt(keyRecommendLimit, d.Recommend.Limit),
			Strategy: s.getStrategy(d.Recommend.Strategy),
		},
		Diversify: domain.DiversifySettings{
			PerTypeCap:        s.getNonNegativeInt(keyPerTypeCap, d.Diversify.PerTypeCap),
			TypeCaps:          s.getTypeCaps(),
			PerHostCap:        s.getPositiveInt(keyPerHostCap, d.Diversify.PerHostCap),
			WindowMultiplier:  s.getPositiveInt(keyWindowMultiplier, d.Diversify.WindowMultiplier),
			AcceptRelevance:   s.getFloat(keyAcceptRelevance, d.Diversify.AcceptRelevance),
			BackfillRelevance: s.getFloat(keyBackfillRelevance, d.Diversify.BackfillRelevance),
			MinSecondary:      s.getNonNegativeInt(keyMinSecondary, d.Diversify.MinSecondary),
		},
		Import: domain.ImportSettings{
			GitHubToken: s.configStore.GetString(keyImportGitHubToken),
			Feeds:       s.getList(keyImportFeeds, d.Import.Feeds),

			TelegramAppID:   s.getPositiveInt(keyTelegramAppID, 0),
			TelegramAppHash: s.configStore.GetString(keyTelegramAppHash),
			TelegramPhone:   s.configStore.GetString(keyTelegramPhone),
		},
	}

	return settings, nil
}

// Set validates a raw string value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	if strings.HasPrefix(key, keyTypeCapPrefix) {
		t := domain.SourceType(strings.TrimPrefix(key, keyTypeCapPrefix))
		if !t.IsValid() {
			return fmt.Errorf("%w: unknown source type %q", domain.ErrInvalidInput, t)
		}
		n, err := parseInt(value, 0)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return s.configStore.Set(key, n)
	}

	kind, ok := keyKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}

	var stored any
	switch kind {
	case kindString:
		stored = value
	case kindList:
		stored = splitList(value)
	case kindPositiveInt:
		n, err := parseInt(value, 1)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		stored = n
	case kindNonNegativeInt:
		n, err := parseInt(value, 0)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		stored = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 || f > domain.MaxScore {
			return fmt.Errorf("%s: %w: want a number in [0, 5]", key, domain.ErrInvalidInput)
		}
		stored = f
	case kindStrategy:
		name := domain.StrategyName(value)
		if !name.IsValid() {
			return fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, value)
		}
		stored = name.String()
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the supported configuration keys in display order.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyCatalogDir, keyCatalogKarpathy, keyCatalogDeepGitHub, keyCatalogTelegram,
		keyCatalogURLLists, keyCatalogVocabulary,
		keyRecommendLimit, keyRecommendStrategy,
		keyPerTypeCap, keyPerHostCap, keyWindowMultiplier,
		keyAcceptRelevance, keyBackfillRelevance, keyMinSecondary,
		keyImportGitHubToken, keyImportFeeds,
		keyTelegramAppID, keyTelegramAppHash, keyTelegramPhone,
	}
	for _, t := range domain.AllSourceTypes() {
		keys = append(keys, keyTypeCapPrefix+t.String())
	}
	return keys
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getList(key string, defaultVal []string) []string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetStringSlice(key)
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getNonNegativeInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getStrategy(defaultVal domain.StrategyName) domain.StrategyName {
	val := s.configStore.GetString(keyRecommendStrategy)
	if val == "" {
		return defaultVal
	}
	name := domain.StrategyName(val)
	if !name.IsValid() {
		return defaultVal
	}
	return name
}

func (s *SettingsService) getTypeCaps() map[domain.SourceType]int {
	caps := make(map[domain.SourceType]int)
	for _, t := range domain.AllSourceTypes() {
		key := keyTypeCapPrefix + t.String()
		if _, exists := s.configStore.Get(key); exists {
			caps[t] = s.configStore.GetInt(key)
		}
	}
	return caps
}

func parseInt(value string, minVal int) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < minVal {
		return 0, fmt.Errorf("%w: want an integer >= %d", domain.ErrInvalidInput, minVal)
	}
	return n, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
