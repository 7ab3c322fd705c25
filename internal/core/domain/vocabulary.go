package domain

// KeywordRule maps one query tag to the substrings that trigger it.
type KeywordRule struct {
	Tag      string   `yaml:"tag" json:"tag"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// DomainHint describes a known host for sources derived from bare URLs.
type DomainHint struct {
	Domain string   `yaml:"domain" json:"domain"`
	Name   string   `yaml:"name" json:"name"`
	Note   string   `yaml:"note" json:"note"`
	Tags   []string `yaml:"tags" json:"tags"`
}

// GapRule fires when QueryTag is in the query but Sentinel is not covered.
type GapRule struct {
	QueryTag   string `yaml:"query_tag" json:"query_tag"`
	Sentinel   string `yaml:"sentinel" json:"sentinel"`
	Suggestion string `yaml:"suggestion" json:"suggestion"`
}

// Vocabulary holds every fixed lookup table used by tagging, loading,
// scoring and gap reporting. It is built once and passed explicitly.
type Vocabulary struct {
	// QueryKeywords is checked in order. Order only matters for output
	// stability; the resulting tag set is unordered.
	QueryKeywords []KeywordRule `yaml:"query_keywords"`

	// DefaultTag is added when no keyword matches. Empty disables it.
	DefaultTag string `yaml:"default_tag"`

	ClusterTags         map[string][]string `yaml:"cluster_tags"`
	DefaultClusterTags  []string            `yaml:"default_cluster_tags"`
	ClusterDepth        map[string]float64  `yaml:"cluster_depth"`
	DefaultClusterDepth float64             `yaml:"default_cluster_depth"`

	// DomainHints is checked in order; the first matching domain wins.
	DomainHints  []DomainHint `yaml:"domain_hints"`
	FallbackNote string       `yaml:"fallback_note"`
	FallbackTags []string     `yaml:"fallback_tags"`

	PracticalTags   []string `yaml:"practical_tags"`
	CodeHostDomains []string `yaml:"code_host_domains"`
	SocialDomains   []string `yaml:"social_domains"`

	// RiskFlagTags mark a source as high-risk content.
	RiskFlagTags []string `yaml:"risk_flag_tags"`
	// RiskSeekingTags mark a query as asking for risk content.
	RiskSeekingTags []string `yaml:"risk_seeking_tags"`

	AdvisoryTags []string `yaml:"advisory_tags"`
	Advisory     string   `yaml:"advisory"`

	GapRules    []GapRule `yaml:"gap_rules"`
	GapFallback string    `yaml:"gap_fallback"`

	ReadingOrder string `yaml:"reading_order"`
	Closing      string `yaml:"closing"`

	KarpathyNote   string `yaml:"karpathy_note"`
	DeepGitHubNote string `yaml:"deep_github_note"`
	TelegramNote   string `yaml:"telegram_note"`
}

// DefaultVocabulary returns a fresh copy of the built-in tables.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		QueryKeywords: []KeywordRule{
			{Tag: "seo", Keywords: []string{"seo", "pseo", "geo", "serp", "排名", "收录", "关键词"}},
			{Tag: "adversarial", Keywords: []string{"黑帽", "grey", "gray", "blackhat", "对抗", "绕过", "寄生", "pbn", "bypass"}},
			{Tag: "osint", Keywords: []string{"osint", "情报", "intel", "论坛", "leak"}},
			{Tag: "security", Keywords: []string{"security", "漏洞", "攻防", "风控", "threat"}},
			{Tag: "research", Keywords: []string{"论文", "paper", "research", "methodology"}},
			{Tag: "agent", Keywords: []string{"agent", "automation", "workflow", "mcp", "multi-agent"}},
			{Tag: "ecom", Keywords: []string{"电商", "shopify", "独立站", "选品", "brand"}},
			{Tag: "ops", Keywords: []string{"ops", "运维", "infra", "selfhosted", "自托管", "基础设施"}},
			{Tag: "privacy", Keywords: []string{"privacy", "隐私", "匿名", "opsec"}},
		},
		DefaultTag: "research",

		ClusterTags: map[string][]string{
			"ai-eng":   {"agent", "research"},
			"security": {"security", "adversarial"},
			"systems":  {"agent", "research"},
			"policy":   {"security", "adversarial"},
			"startup":  {"seo", "ecom"},
			"market":   {"seo", "ecom"},
			"research": {"research"},
			"eng":      {"agent"},
		},
		DefaultClusterTags: []string{"research"},
		ClusterDepth: map[string]float64{
			"ai-eng":   4.7,
			"security": 4.6,
			"systems":  4.7,
			"research": 4.6,
			"startup":  4.1,
			"market":   4.0,
			"eng":      4.0,
		},
		DefaultClusterDepth: 4.0,

		DomainHints: []DomainHint{
			{Domain: "github.com", Name: "GitHub", Note: "Code repository; runnable entry point", Tags: []string{"agent", "tools"}},
			{Domain: "blackhatworld.com", Name: "BlackHatWorld", Note: "SEO forum with white/grey/black-hat case threads", Tags: []string{"seo", "adversarial", "seo-forum-index"}},
			{Domain: "t.me", Name: "Telegram", Note: "Telegram channel; fast but unverified", Tags: []string{"telegram", "adversarial"}},
			{Domain: "news.ycombinator.com", Name: "Hacker News", Note: "Engineering discussion with dissenting comments", Tags: []string{"research", "agent"}},
			{Domain: "reddit.com", Name: "Reddit", Note: "Community threads; good for recent field reports", Tags: []string{"osint", "seo"}},
			{Domain: "arxiv.org", Name: "arXiv", Note: "Preprint; check methodology before citing", Tags: []string{"research"}},
			{Domain: "developers.google.com", Name: "Google Developers", Note: "Vendor documentation; authoritative for platform rules", Tags: []string{"seo", "platform-policy-changelog"}},
			{Domain: "support.google.com", Name: "Google Support", Note: "Platform policy pages and enforcement notes", Tags: []string{"seo", "ecom", "platform-policy-changelog", "ad-network-abuse"}},
			{Domain: "courtlistener.com", Name: "CourtListener", Note: "Court opinions for consequence assessment", Tags: []string{"security", "legal-casebook"}},
			{Domain: "krebsonsecurity.com", Name: "Krebs on Security", Note: "Investigative security reporting", Tags: []string{"security", "osint"}},
			{Domain: "xss.is", Name: "XSS", Note: "Russian-language forum entry point", Tags: []string{"osint", "adversarial", "regional-forums"}},
			{Domain: "x.com", Name: "X", Note: "Short-form posts; fastest signal, weakest verification", Tags: []string{"research"}},
			{Domain: "twitter.com", Name: "Twitter", Note: "Short-form posts; fastest signal, weakest verification", Tags: []string{"research"}},
		},
		FallbackNote: "Unclassified link; verify before relying on it",
		FallbackTags: []string{"research"},

		PracticalTags:   []string{"workflow", "tools", "meta"},
		CodeHostDomains: []string{"github.com", "gitlab.com", "codeberg.org", "bitbucket.org", "developers.google.com", "docs.github.com", "learn.microsoft.com"},
		SocialDomains:   []string{"t.me", "reddit.com", "news.ycombinator.com", "x.com", "twitter.com", "discord.com", "blackhatworld.com", "xss.is"},

		RiskFlagTags:    []string{"adversarial"},
		RiskSeekingTags: []string{"adversarial", "security"},

		AdvisoryTags: []string{"adversarial", "seo"},
		Advisory: "Possible consequences: copying edge tactics without sandbox validation commonly leads to " +
			"account or site enforcement, sharp ranking swings, brand damage and wasted ad and labour spend; " +
			"in severe cases it can trigger legal disputes.",

		GapRules: []GapRule{
			{QueryTag: "adversarial", Sentinel: "platform-policy-changelog", Suggestion: "Platform policy / penalty case changelog list (to judge how long a tactic stays valid)"},
			{QueryTag: "seo", Sentinel: "seo-forum-index", Suggestion: "SEO practitioner forum index (white/grey/black-hat adversarial samples)"},
			{QueryTag: "osint", Sentinel: "regional-forums", Suggestion: "Regional-language forum entry list (Russian/Spanish/Arabic)"},
			{QueryTag: "security", Sentinel: "legal-casebook", Suggestion: "Compliance and enforcement case-law index (for consequence assessment)"},
			{QueryTag: "ecom", Sentinel: "ad-network-abuse", Suggestion: "Ad platform risk-control and ban case list (advertising adversarial view)"},
		},
		GapFallback: "Verifiable directory of private high-quality communities (paid forums / invite-only groups)",

		ReadingOrder: "Reading order: 2 actionable entry points -> 2 methodology deep reads -> 1 adversarial counterexample for calibration",
		Closing:      "Experiment: within 24 hours turn the top 3 sources into a one-page strategy card with goal, hypothesis, minimal experiment and stop-loss condition",

		KarpathyNote:   "Long-form deep source; builds fundamentals and methodology",
		DeepGitHubNote: "Deep-water entry point",
		TelegramNote:   "Telegram channel",
	}
}

// ClusterTagSet returns the tags of a blog cluster, falling back to the
// default cluster tags for unknown clusters.
func (v *Vocabulary) ClusterTagSet(cluster string) TagSet {
	if tags, ok := v.ClusterTags[cluster]; ok {
		return NewTagSet(tags...)
	}
	return NewTagSet(v.DefaultClusterTags...)
}

// DepthForCluster returns the depth constant of a blog cluster.
func (v *Vocabulary) DepthForCluster(cluster string) float64 {
	if d, ok := v.ClusterDepth[cluster]; ok {
		return d
	}
	return v.DefaultClusterDepth
}

// HintForHost returns the first domain hint matching host.
func (v *Vocabulary) HintForHost(host string) (DomainHint, bool) {
	for _, h := range v.DomainHints {
		if MatchesDomain(host, h.Domain) {
			return h, true
		}
	}
	return DomainHint{}, false
}

// IsCodeHost reports whether host is a code-hosting or vendor-docs domain.
func (v *Vocabulary) IsCodeHost(host string) bool {
	return matchesAny(host, v.CodeHostDomains)
}

// IsSocialHost reports whether host is a social or forum domain.
func (v *Vocabulary) IsSocialHost(host string) bool {
	return matchesAny(host, v.SocialDomains)
}

func matchesAny(host string, domains []string) bool {
	for _, d := range domains {
		if MatchesDomain(host, d) {
			return true
		}
	}
	return false
}
