package driving

import "github.com/custodia-labs/sourcerank/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, with defaults for unset keys.
	Get() (*domain.AppSettings, error)

	// Set validates and persists a single dotted key.
	Set(key, value string) error

	// Keys returns the supported configuration keys in display order.
	Keys() []string

	// Path returns the configuration file path.
	Path() string
}
