package telegram

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

type fakeContacts struct {
	got   *tg.ContactsSearchRequest
	found *tg.ContactsFound
	err   error
}

func (f *fakeContacts) ContactsSearch(_ context.Context, req *tg.ContactsSearchRequest) (*tg.ContactsFound, error) {
	f.got = req
	return f.found, f.err
}

func fakeSession(api ContactsAPI) Session {
	return func(ctx context.Context, fn func(ctx context.Context, api ContactsAPI) error) error {
		return fn(ctx, api)
	}
}

func channel(title, username string, members int) *tg.Channel {
	ch := &tg.Channel{Title: title, Username: username}
	if members > 0 {
		ch.SetParticipantsCount(members)
	}
	return ch
}

func TestSearcher_Search(t *testing.T) {
	api := &fakeContacts{found: &tg.ContactsFound{Chats: []tg.ChatClass{
		channel("SEO Blackhat Lab", "seolab", 4200),
		channel("Private group", "", 900),
		&tg.Chat{Title: "basic group"},
		channel("", "osintfeed", 0),
	}}}
	s := NewSearcher(fakeSession(api))

	rows, err := s.Search(context.Background(), domain.ImportRequest{Query: " seo blackhat ", Limit: 500})

	require.NoError(t, err)
	assert.Equal(t, "seo blackhat", api.got.Q)
	assert.Equal(t, maxLimit, api.got.Limit)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "SEO Blackhat Lab", first.Name)
	assert.Equal(t, "https://t.me/seolab", first.URL)
	assert.Equal(t, domain.SourceTypeTelegram, first.Type)
	assert.Equal(t, 4200, first.Members)
	assert.Equal(t, []string{"adversarial", "telegram"}, first.Tags.Sorted())
	assert.Equal(t, "Telegram search import: seo blackhat", first.Note)

	assert.Equal(t, "osintfeed", rows[1].Name, "untitled channels fall back to the username")
	assert.Equal(t, 0, rows[1].Members)
	assert.Equal(t, domain.ImportProviderTelegram, s.Provider())
}

func TestSearcher_RequestTagsReplaceDefaults(t *testing.T) {
	api := &fakeContacts{found: &tg.ContactsFound{Chats: []tg.ChatClass{channel("Ops", "ops", 10)}}}

	rows, err := NewSearcher(fakeSession(api)).Search(context.Background(), domain.ImportRequest{
		Query: "ops",
		Tags:  domain.NewTagSet("ops"),
	})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Tags.Sorted())
	assert.Equal(t, DefaultLimit, api.got.Limit)
}

func TestSearcher_Errors(t *testing.T) {
	api := &fakeContacts{err: errors.New("FLOOD_WAIT_30")}
	s := NewSearcher(fakeSession(api))

	_, err := s.Search(context.Background(), domain.ImportRequest{Query: "seo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FLOOD_WAIT_30")

	_, err = s.Search(context.Background(), domain.ImportRequest{Query: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewSearcherWithConfig_MissingCredentials(t *testing.T) {
	s := NewSearcherWithConfig(Config{AppHash: "hash"})

	_, err := s.Search(context.Background(), domain.ImportRequest{Query: "seo"})

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestPromptCode(t *testing.T) {
	var out bytes.Buffer

	code, err := PromptCode(strings.NewReader(" 12345 \n"), &out)(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "12345", code)
	assert.Equal(t, "Telegram login code: ", out.String())

	_, err = PromptCode(strings.NewReader("\n"), &out)(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
