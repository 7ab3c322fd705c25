package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("missing recommend service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingRecommendService)
	})

	t.Run("nil ports returns error", func(t *testing.T) {
		_, err := NewServer(nil)
		assert.ErrorIs(t, err, ErrMissingRecommendService)
	})

	t.Run("recommend only is valid", func(t *testing.T) {
		server, err := NewServer(&Ports{Recommend: &mockRecommendService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("with import history", func(t *testing.T) {
		server, err := NewServer(&Ports{Recommend: &mockRecommendService{}, Import: &mockImportService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}
