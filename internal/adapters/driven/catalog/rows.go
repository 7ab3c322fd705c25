package catalog

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

// ParseKarpathyRow parses a blog catalog row.
//
// Defaults: source_name -> URL host; cluster -> "" (default cluster tags
// and depth apply). html_url is required.
func ParseKarpathyRow(row Row, vocab *domain.Vocabulary) (domain.Source, error) {
	url := row.Get("html_url", "")
	if url == "" {
		return domain.Source{}, &domain.ParseError{Line: row.Line, Field: "html_url", Reason: "missing"}
	}
	cluster := row.Get("cluster", "")

	return domain.Source{
		Name:    row.Get("source_name", domain.HostOf(url)),
		URL:     url,
		Type:    domain.SourceTypeKarpathy,
		Tags:    vocab.ClusterTagSet(cluster),
		Note:    vocab.KarpathyNote,
		Cluster: cluster,
	}, nil
}

// ParseDeepGitHubRow parses a repository catalog row.
//
// Defaults: name -> URL host and path; stars -> 0; tags -> none;
// note -> the vocabulary's deep GitHub note. url is required and stars,
// when present, must be a non-negative integer.
func ParseDeepGitHubRow(row Row, vocab *domain.Vocabulary) (domain.Source, error) {
	url := row.Get("url", "")
	if url == "" {
		return domain.Source{}, &domain.ParseError{Line: row.Line, Field: "url", Reason: "missing"}
	}
	stars, err := parseCount(row, "stars")
	if err != nil {
		return domain.Source{}, err
	}

	return domain.Source{
		Name:  row.Get("name", displayName(url)),
		URL:   url,
		Type:  domain.SourceTypeDeepGitHub,
		Tags:  domain.ParseTags(row.Get("tags", "")),
		Note:  row.Get("note", vocab.DeepGitHubNote),
		Stars: stars,
	}, nil
}

// ParseTelegramRow parses a channel catalog row.
//
// Defaults: name -> URL; members -> 0; tags -> "telegram";
// note -> the vocabulary's Telegram note. url is required.
func ParseTelegramRow(row Row, vocab *domain.Vocabulary) (domain.Source, error) {
	url := row.Get("url", "")
	if url == "" {
		return domain.Source{}, &domain.ParseError{Line: row.Line, Field: "url", Reason: "missing"}
	}
	members, err := parseCount(row, "members")
	if err != nil {
		return domain.Source{}, err
	}

	return domain.Source{
		Name:    row.Get("name", url),
		URL:     url,
		Type:    domain.SourceTypeTelegram,
		Tags:    domain.ParseTags(row.Get("tags", "telegram")),
		Note:    row.Get("note", vocab.TelegramNote),
		Members: members,
	}, nil
}

func parseCount(row Row, column string) (int, error) {
	raw := row.Get(column, "0")
	n, err := strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
	if err != nil || n < 0 {
		return 0, &domain.ParseError{Line: row.Line, Field: column, Reason: "not a non-negative integer: " + raw}
	}
	return n, nil
}

// displayName renders a URL as host plus path without the scheme.
func displayName(url string) string {
	name := url
	if i := strings.Index(name, "://"); i >= 0 {
		name = name[i+3:]
	}
	name = strings.TrimPrefix(name, "www.")
	return strings.TrimSuffix(name, "/")
}
