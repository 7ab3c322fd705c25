package domain

import (
	"net/url"
	"strings"
)

// SourceType identifies which catalog a source came from.
// It selects the scoring branch and the diversification quota.
type SourceType string

// Known source types.
const (
	// SourceTypeKarpathy is a long-form blog from the curated HN blog catalog.
	SourceTypeKarpathy SourceType = "karpathy"

	// SourceTypeDeepGitHub is a repository from the deep GitHub catalog.
	SourceTypeDeepGitHub SourceType = "deep-github"

	// SourceTypeTelegram is a community channel from the Telegram catalog.
	SourceTypeTelegram SourceType = "telegram"

	// SourceTypeManualList is a bare URL taken from a plain-text list.
	SourceTypeManualList SourceType = "manual-list"
)

// AllSourceTypes returns the known source types in load order.
func AllSourceTypes() []SourceType {
	return []SourceType{
		SourceTypeDeepGitHub,
		SourceTypeKarpathy,
		SourceTypeTelegram,
		SourceTypeManualList,
	}
}

// IsValid returns true if the source type is recognised.
func (t SourceType) IsValid() bool {
	switch t {
	case SourceTypeKarpathy, SourceTypeDeepGitHub, SourceTypeTelegram, SourceTypeManualList:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t SourceType) String() string {
	return string(t)
}

// Category groups source types for the soft-quota diversifier.
type Category string

// Source categories.
const (
	// CategoryPrimary covers curated catalogs.
	CategoryPrimary Category = "primary"

	// CategorySecondary covers community channels and hand-kept URL lists.
	CategorySecondary Category = "secondary"
)

// Category returns the diversification category of the source type.
// Unknown types are treated as secondary.
func (t SourceType) Category() Category {
	switch t {
	case SourceTypeKarpathy, SourceTypeDeepGitHub:
		return CategoryPrimary
	default:
		return CategorySecondary
	}
}

// Source is one candidate reference item.
// Sources are values: nothing mutates a Source after a loader builds it.
type Source struct {
	// Name is the display label.
	Name string `json:"name"`

	// URL is the canonical identifier, used for deduplication and host grouping.
	URL string `json:"url"`

	// Type is the catalog the source came from.
	Type SourceType `json:"type"`

	// Tags are the topic labels attached to the source.
	Tags TagSet `json:"tags"`

	// Note is a free-text rationale. It is never scored.
	Note string `json:"note"`

	// Cluster is the blog cluster (karpathy only).
	Cluster string `json:"cluster,omitempty"`

	// Stars is the repository star count (deep-github only).
	Stars int `json:"stars,omitempty"`

	// Members is the channel member count (telegram only).
	Members int `json:"members,omitempty"`
}

// Validate checks the fields every source must carry.
func (s Source) Validate() error {
	if strings.TrimSpace(s.URL) == "" {
		return &ParseError{Field: "url", Reason: "missing"}
	}
	if s.Type == "" {
		return &ParseError{Field: "type", Reason: "missing"}
	}
	return nil
}

// Host returns the lower-cased URL host without a leading "www.".
// Unparseable URLs return the lower-cased raw URL so they still group.
func (s Source) Host() string {
	return HostOf(s.URL)
}

// HostOf extracts the grouping host of a URL.
func HostOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// MatchesDomain reports whether host equals domain or is a subdomain of it.
func MatchesDomain(host, domain string) bool {
	host = strings.ToLower(host)
	domain = strings.ToLower(domain)
	return host == domain || strings.HasSuffix(host, "."+domain)
}
