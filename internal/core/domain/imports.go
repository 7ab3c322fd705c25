package domain

import "time"

// ImportProvider identifies a remote search used to grow a catalog.
type ImportProvider string

// Available import providers.
const (
	// ImportProviderGitHub searches GitHub repositories.
	ImportProviderGitHub ImportProvider = "github"

	// ImportProviderFeed filters RSS/Atom feed items.
	ImportProviderFeed ImportProvider = "feed"

	// ImportProviderTelegram searches public Telegram channels.
	ImportProviderTelegram ImportProvider = "telegram"
)

// IsValid returns true if the provider is recognised.
func (p ImportProvider) IsValid() bool {
	switch p {
	case ImportProviderGitHub, ImportProviderFeed, ImportProviderTelegram:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p ImportProvider) String() string {
	return string(p)
}

// CatalogRow is one row produced by an import and appended to a catalog.
type CatalogRow struct {
	Name     string
	URL      string
	Type     SourceType
	Stars    int
	Members  int
	Tags     TagSet
	Note     string
	LastSeen time.Time
}

// ImportRequest describes one import run.
type ImportRequest struct {
	// Provider selects the remote search.
	Provider ImportProvider

	// Query is the search text.
	Query string

	// Limit caps the number of hits requested.
	Limit int

	// Tags are attached to every imported row.
	Tags TagSet

	// Feeds overrides the configured feed URLs (feed provider only).
	Feeds []string
}

// ImportRun records the outcome of one import.
type ImportRun struct {
	ID         string         `json:"id"`
	Provider   ImportProvider `json:"provider"`
	Query      string         `json:"query"`
	Target     string         `json:"target"`
	Fetched    int            `json:"fetched"`
	Imported   int            `json:"imported"`
	Skipped    int            `json:"skipped"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Error      string         `json:"error,omitempty"`
}

// Succeeded reports whether the run finished without error.
func (r ImportRun) Succeeded() bool {
	return r.Error == ""
}

// Duration returns how long the run took.
func (r ImportRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
