package telegram

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gotd/td/session"
	tdtelegram "github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
	"github.com/custodia-labs/sourcerank/internal/core/ports/driven"
	"github.com/custodia-labs/sourcerank/internal/logger"
)

const (
	// DefaultLimit is the number of hits requested when none is given.
	DefaultLimit = 30

	// maxLimit is the ceiling contacts.search accepts.
	maxLimit = 100

	linkPrefix = "https://t.me/"
)

// DefaultTags are attached to imported channels when the request carries
// no tags of its own.
var DefaultTags = []string{"telegram", "adversarial"}

// ErrNotConfigured is returned when the API credentials are missing.
var ErrNotConfigured = errors.New("telegram: import.telegram_app_id and import.telegram_app_hash are required")

// ErrNotAuthorized is returned when the session has no logged-in user and
// no phone number is configured to log in with.
var ErrNotAuthorized = errors.New("telegram: session is not logged in; set import.telegram_phone")

// ContactsAPI is the slice of the Telegram API the searcher calls.
type ContactsAPI interface {
	ContactsSearch(ctx context.Context, req *tg.ContactsSearchRequest) (*tg.ContactsFound, error)
}

// Session runs fn with an authorized API connection.
type Session func(ctx context.Context, fn func(ctx context.Context, api ContactsAPI) error) error

// Config holds the MTProto credentials.
type Config struct {
	AppID       int
	AppHash     string
	Phone       string
	SessionPath string

	// Code asks the user for the login code sent by Telegram.
	Code func(ctx context.Context) (string, error)
}

// Searcher finds public channels for the telegram catalog.
type Searcher struct {
	session Session
}

var _ driven.RemoteSearcher = (*Searcher)(nil)

// NewSearcher creates a searcher over an existing session.
func NewSearcher(s Session) *Searcher {
	return &Searcher{session: s}
}

// NewSearcherWithConfig creates a searcher that connects with gotd for
// each search.
func NewSearcherWithConfig(cfg Config) *Searcher {
	return NewSearcher(clientSession(cfg))
}

// Provider identifies the searcher.
func (s *Searcher) Provider() domain.ImportProvider {
	return domain.ImportProviderTelegram
}

// Search runs a global contact search and keeps channels that have a
// public username, in the order Telegram returned them.
func (s *Searcher) Search(ctx context.Context, req domain.ImportRequest) ([]domain.CatalogRow, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, maxLimit)

	var rows []domain.CatalogRow
	err := s.session(ctx, func(ctx context.Context, api ContactsAPI) error {
		found, err := api.ContactsSearch(ctx, &tg.ContactsSearchRequest{Q: query, Limit: limit})
		if err != nil {
			return fmt.Errorf("contacts.search: %w", err)
		}
		logger.Debug("Telegram search for %q: %d chats", query, len(found.Chats))
		rows = channelRows(found.Chats, query, len(req.Tags) == 0)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func channelRows(chats []tg.ChatClass, query string, defaultTags bool) []domain.CatalogRow {
	var rows []domain.CatalogRow
	for _, chat := range chats {
		ch, ok := chat.(*tg.Channel)
		if !ok {
			continue
		}
		username := strings.TrimSpace(ch.Username)
		if username == "" {
			continue
		}
		members, _ := ch.GetParticipantsCount()

		row := domain.CatalogRow{
			Name:    strings.TrimSpace(ch.Title),
			URL:     linkPrefix + username,
			Type:    domain.SourceTypeTelegram,
			Members: members,
			Note:    "Telegram search import: " + query,
		}
		if row.Name == "" {
			row.Name = username
		}
		if defaultTags {
			row.Tags = domain.NewTagSet(DefaultTags...)
		}
		rows = append(rows, row)
	}
	return rows
}

// clientSession connects a gotd client, logs in when the stored session
// is not authorized, then hands the raw API to fn.
func clientSession(cfg Config) Session {
	return func(ctx context.Context, fn func(ctx context.Context, api ContactsAPI) error) error {
		if cfg.AppID <= 0 || cfg.AppHash == "" {
			return ErrNotConfigured
		}

		opts := tdtelegram.Options{}
		if cfg.SessionPath != "" {
			opts.SessionStorage = &session.FileStorage{Path: cfg.SessionPath}
		}
		client := tdtelegram.NewClient(cfg.AppID, cfg.AppHash, opts)

		return client.Run(ctx, func(ctx context.Context) error {
			if err := login(ctx, client.Auth(), cfg); err != nil {
				return err
			}
			return fn(ctx, client.API())
		})
	}
}

func login(ctx context.Context, client *auth.Client, cfg Config) error {
	status, err := client.Status(ctx)
	if err != nil {
		return fmt.Errorf("telegram: auth status: %w", err)
	}
	if status.Authorized {
		return nil
	}
	if cfg.Phone == "" || cfg.Code == nil {
		return ErrNotAuthorized
	}

	code := auth.CodeAuthenticatorFunc(func(ctx context.Context, _ *tg.AuthSentCode) (string, error) {
		return cfg.Code(ctx)
	})
	flow := auth.NewFlow(auth.CodeOnly(cfg.Phone, code), auth.SendCodeOptions{})
	if err := client.IfNecessary(ctx, flow); err != nil {
		return fmt.Errorf("telegram: login: %w", err)
	}
	logger.Info("Telegram session saved to %s", cfg.SessionPath)
	return nil
}

// PromptCode reads the login code from in after writing a prompt to out.
func PromptCode(in io.Reader, out io.Writer) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		fmt.Fprint(out, "Telegram login code: ")
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		code := strings.TrimSpace(line)
		if code == "" {
			return "", fmt.Errorf("%w: empty login code", domain.ErrInvalidInput)
		}
		return code, ctx.Err()
	}
}
