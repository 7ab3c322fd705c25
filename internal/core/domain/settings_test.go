package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStrategyName_IsValid tests all valid and invalid strategy names
func TestStrategyName_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		strategy StrategyName
		expected bool
	}{
		{"hard-quota is valid", StrategyHardQuota, true},
		{"soft-quota is valid", StrategySoftQuota, true},
		{"empty is invalid", StrategyName(""), false},
		{"unknown is invalid", StrategyName("round-robin"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.strategy.IsValid())
		})
	}
}

func TestStrategyName_Description(t *testing.T) {
	for _, s := range AllStrategies() {
		assert.NotEqual(t, unknownDescription, s.Description(), s.String())
	}
	assert.Equal(t, unknownDescription, StrategyName("nope").Description())
}

func TestDiversifySettings_CapFor(t *testing.T) {
	d := DiversifySettings{
		PerTypeCap: 5,
		TypeCaps:   map[SourceType]int{SourceTypeTelegram: 1},
	}

	assert.Equal(t, 1, d.CapFor(SourceTypeTelegram))
	assert.Equal(t, 5, d.CapFor(SourceTypeKarpathy))

	d.TypeCaps = nil
	assert.Equal(t, 5, d.CapFor(SourceTypeTelegram))
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, 10, s.Recommend.Limit)
	assert.Equal(t, StrategyHardQuota, s.Recommend.Strategy)
	assert.Equal(t, 5, s.Diversify.PerTypeCap)
	assert.Equal(t, 2, s.Diversify.PerHostCap)
	assert.Equal(t, 4, s.Diversify.WindowMultiplier)
	assert.InDelta(t, 3.4, s.Diversify.AcceptRelevance, 1e-9)
	assert.InDelta(t, 2.3, s.Diversify.BackfillRelevance, 1e-9)
	assert.Equal(t, 2, s.Diversify.MinSecondary)
	assert.Equal(t, "references", s.Catalog.Dir)
	assert.Equal(t, []string{"deep-sources-urls.txt"}, s.Catalog.URLLists)
}
