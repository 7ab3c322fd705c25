package domain

const unknownDescription = "Unknown"

// StrategyName selects a diversification strategy.
type StrategyName string

// Available diversification strategies.
const (
	// StrategyHardQuota caps picks per source type in a single pass.
	StrategyHardQuota StrategyName = "hard-quota"

	// StrategySoftQuota caps picks per host inside a truncated window and
	// backfills the secondary category up to a guaranteed minimum.
	StrategySoftQuota StrategyName = "soft-quota"
)

// IsValid returns true if the strategy is recognised.
func (s StrategyName) IsValid() bool {
	switch s {
	case StrategyHardQuota, StrategySoftQuota:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s StrategyName) String() string {
	return string(s)
}

// Description returns a human-readable description of the strategy.
func (s StrategyName) Description() string {
	switch s {
	case StrategyHardQuota:
		return "Hard quota (per source type cap)"
	case StrategySoftQuota:
		return "Soft quota (per host cap with secondary backfill)"
	default:
		return unknownDescription
	}
}

// AllStrategies returns all available diversification strategies.
func AllStrategies() []StrategyName {
	return []StrategyName{StrategyHardQuota, StrategySoftQuota}
}

// CatalogSettings locates the catalog files.
// Relative file names are resolved against Dir.
type CatalogSettings struct {
	// Dir is the directory holding the catalog files.
	Dir string

	// Karpathy is the long-form blog TSV.
	Karpathy string

	// DeepGitHub is the repository TSV.
	DeepGitHub string

	// Telegram is the community channel TSV.
	Telegram string

	// URLLists are plain-text files with one URL per line.
	URLLists []string

	// Vocabulary is an optional YAML file replacing the built-in tables.
	Vocabulary string
}

// RecommendSettings configures the default recommendation run.
type RecommendSettings struct {
	// Limit is the number of sources to select.
	Limit int

	// Strategy is the diversification strategy.
	Strategy StrategyName
}

// DiversifySettings holds the tunable constants of both strategies.
type DiversifySettings struct {
	// PerTypeCap is the hard-quota cap applied to every source type.
	PerTypeCap int

	// TypeCaps overrides PerTypeCap for specific types.
	TypeCaps map[SourceType]int

	// PerHostCap is the soft-quota cap per URL host.
	PerHostCap int

	// WindowMultiplier sizes the soft-quota window as limit*multiplier.
	WindowMultiplier int

	// AcceptRelevance is the relevance a secondary source needs in the first pass.
	AcceptRelevance float64

	// BackfillRelevance is the relevance a secondary source needs in the backfill pass.
	BackfillRelevance float64

	// MinSecondary is the number of secondary picks the backfill tries to reach.
	MinSecondary int
}

// CapFor returns the hard-quota cap of a source type.
func (d DiversifySettings) CapFor(t SourceType) int {
	if c, ok := d.TypeCaps[t]; ok {
		return c
	}
	return d.PerTypeCap
}

// ImportSettings configures the import collaborators.
type ImportSettings struct {
	// GitHubToken authenticates repository search. Empty means anonymous.
	GitHubToken string

	// Feeds are the default RSS/Atom feeds for the feed importer.
	Feeds []string

	// TelegramAppID and TelegramAppHash are the MTProto API credentials
	// from my.telegram.org. The channel importer is off without them.
	TelegramAppID   int
	TelegramAppHash string

	// TelegramPhone logs in a fresh session.
	TelegramPhone string
}

// TelegramEnabled reports whether the channel importer has credentials.
func (s ImportSettings) TelegramEnabled() bool {
	return s.TelegramAppID > 0 && s.TelegramAppHash != ""
}

// AppSettings holds all application settings.
type AppSettings struct {
	Catalog   CatalogSettings
	Recommend RecommendSettings
	Diversify DiversifySettings
	Import    ImportSettings
}

// DefaultAppSettings returns settings with the stock catalog layout and
// the diversification constants the rankings were tuned with.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Catalog: CatalogSettings{
			Dir:        "references",
			Karpathy:   "karpathy-92-hn-2025.tsv",
			DeepGitHub: "deep-sources-github.tsv",
			Telegram:   "deep-sources-telegram.tsv",
			URLLists:   []string{"deep-sources-urls.txt"},
		},
		Recommend: RecommendSettings{
			Limit:    10,
			Strategy: StrategyHardQuota,
		},
		Diversify: DiversifySettings{
			PerTypeCap:        5,
			PerHostCap:        2,
			WindowMultiplier:  4,
			AcceptRelevance:   3.4,
			BackfillRelevance: 2.3,
			MinSecondary:      2,
		},
	}
}
