package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

func TestNewStrategy(t *testing.T) {
	for _, name := range domain.AllStrategies() {
		s, err := NewStrategy(name, domain.DefaultAppSettings().Diversify)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}

	_, err := NewStrategy("round-robin", domain.DiversifySettings{})
	assert.ErrorIs(t, err, domain.ErrUnknownStrategy)
}

func TestHardQuota_Select(t *testing.T) {
	h := &HardQuota{cfg: domain.DiversifySettings{
		PerTypeCap: 2,
		TypeCaps:   map[domain.SourceType]int{domain.SourceTypeTelegram: 1},
	}}
	ranked := []domain.Ranked{
		entry("g1", "https://github.com/a/1", domain.SourceTypeDeepGitHub, 4.5, 3.4),
		entry("g2", "https://github.com/a/2", domain.SourceTypeDeepGitHub, 4.4, 3.4),
		entry("g3", "https://github.com/a/3", domain.SourceTypeDeepGitHub, 4.3, 3.4),
		entry("t1", "https://t.me/1", domain.SourceTypeTelegram, 4.2, 3.4),
		entry("t2", "https://t.me/2", domain.SourceTypeTelegram, 4.1, 3.4),
		entry("k1", "https://blog.example", domain.SourceTypeKarpathy, 4.0, 2.3),
	}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"caps per type", 5, []string{"g1", "g2", "t1", "k1"}},
		{"stops at n", 2, []string{"g1", "g2"}},
		{"zero", 0, []string{}},
		{"negative", -1, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, names(h.Select(ranked, tt.n))); diff != "" {
				t.Errorf("selection mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHardQuota_ZeroCapExcludesType(t *testing.T) {
	h := &HardQuota{cfg: domain.DiversifySettings{
		PerTypeCap: 5,
		TypeCaps:   map[domain.SourceType]int{domain.SourceTypeManualList: 0},
	}}
	ranked := []domain.Ranked{
		entry("m1", "https://a.example", domain.SourceTypeManualList, 4.5, 3.4),
		entry("k1", "https://b.example", domain.SourceTypeKarpathy, 4.0, 3.4),
	}

	assert.Equal(t, []string{"k1"}, names(h.Select(ranked, 3)))
}

func softConfig() domain.DiversifySettings {
	return domain.DiversifySettings{
		PerHostCap:        1,
		WindowMultiplier:  3,
		AcceptRelevance:   3.4,
		BackfillRelevance: 2.3,
		MinSecondary:      2,
	}
}

func TestSoftQuota_HostCapAndBackfill(t *testing.T) {
	s := &SoftQuota{cfg: softConfig()}
	ranked := []domain.Ranked{
		entry("k1", "https://a.example/1", domain.SourceTypeKarpathy, 4.6, 2.3),
		entry("k2", "https://a.example/2", domain.SourceTypeKarpathy, 4.5, 2.3),
		entry("m1", "https://x.example", domain.SourceTypeManualList, 4.4, 2.3),
		entry("t1", "https://t.me/1", domain.SourceTypeTelegram, 4.3, 2.3+1.1),
		entry("m2", "https://y.example", domain.SourceTypeManualList, 4.2, 2.0),
	}

	got := s.Select(ranked, 3)

	// k2 shares a host with k1; m1 only enters through the backfill pass
	// and is appended after t1.
	if diff := cmp.Diff([]string{"k1", "t1", "m1"}, names(got)); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestSoftQuota_WindowLimitsPool(t *testing.T) {
	cfg := softConfig()
	cfg.WindowMultiplier = 1
	s := &SoftQuota{cfg: cfg}
	ranked := []domain.Ranked{
		entry("m1", "https://a.example", domain.SourceTypeManualList, 4.6, 2.0),
		entry("m2", "https://b.example", domain.SourceTypeManualList, 4.5, 2.0),
		entry("k1", "https://c.example", domain.SourceTypeKarpathy, 4.4, 3.4),
	}

	assert.Empty(t, s.Select(ranked, 2), "k1 lies outside the window")
}

func TestSoftQuota_NoBackfillWhenEnoughSecondary(t *testing.T) {
	cfg := softConfig()
	cfg.MinSecondary = 1
	s := &SoftQuota{cfg: cfg}
	ranked := []domain.Ranked{
		entry("t1", "https://t.me/1", domain.SourceTypeTelegram, 4.6, 3.4),
		entry("m1", "https://x.example", domain.SourceTypeManualList, 4.5, 2.3),
		entry("k1", "https://a.example", domain.SourceTypeKarpathy, 4.4, 2.3),
	}

	assert.Equal(t, []string{"t1", "k1"}, names(s.Select(ranked, 3)))
}

func TestSoftQuota_NeverExceedsN(t *testing.T) {
	s := &SoftQuota{cfg: softConfig()}
	var ranked []domain.Ranked
	for _, host := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		ranked = append(ranked, entry(host, "https://"+host+".example", domain.SourceTypeTelegram, 4, 3.4))
	}

	assert.Len(t, s.Select(ranked, 4), 4)
	assert.Empty(t, s.Select(ranked, 0))
}
