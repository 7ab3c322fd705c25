// Package report renders a recommendation as terminal text or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

// Options control text rendering.
type Options struct {
	// Explain adds the five component scores under each item.
	Explain bool

	// Styles colour the output. Nil renders plain text.
	Styles *styles.Styles
}

// WriteText prints the header, the numbered top-N list, the reading
// order, the advisory, the gap suggestions and the closing line.
func WriteText(w io.Writer, rec *domain.Recommendation, opts Options) error {
	st := opts.Styles
	if st == nil {
		st = styles.Plain()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", st.Subtitle.Render("Query tags:"), strings.Join(rec.QueryTags, ", "))
	fmt.Fprintf(&b, "%s %s\n", st.Subtitle.Render("Candidate pool:"), PoolSummary(rec))
	fmt.Fprintf(&b, "%s %s\n\n", st.Subtitle.Render("Strategy:"), rec.Strategy)

	fmt.Fprintf(&b, "%s\n", st.Title.Render(fmt.Sprintf("Top %d", len(rec.Items))))
	for i, item := range rec.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, ItemLine(item, st))
		if opts.Explain {
			fmt.Fprintf(&b, "   %s\n", st.Muted.Render(Components(item.Components)))
		}
	}

	if rec.ReadingOrder != "" {
		fmt.Fprintf(&b, "\n%s\n", rec.ReadingOrder)
	}
	if rec.Advisory != "" {
		fmt.Fprintf(&b, "\n%s\n", st.Advisory.Render(rec.Advisory))
	}

	fmt.Fprintf(&b, "\n%s\n", st.Subtitle.Render("Missing reference categories:"))
	for _, g := range rec.Gaps {
		fmt.Fprintf(&b, "- %s\n", g)
	}

	if rec.Closing != "" {
		fmt.Fprintf(&b, "\n%s\n", rec.Closing)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON prints the recommendation as indented JSON.
func WriteJSON(w io.Writer, rec *domain.Recommendation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode recommendation: %w", err)
	}
	return nil
}

// PoolSummary returns "N (type a, type b, ...)" in catalog load order.
func PoolSummary(rec *domain.Recommendation) string {
	var parts []string
	for _, t := range domain.AllSourceTypes() {
		if n := rec.PoolByType[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", t, n))
		}
	}
	if len(parts) == 0 {
		return strconv.Itoa(rec.PoolSize)
	}
	return fmt.Sprintf("%d (%s)", rec.PoolSize, strings.Join(parts, ", "))
}

// ItemLine formats one ranked source:
// name (type)[ | stars S][ | members M] | KnowledgeValue V/5 | note | url.
func ItemLine(item domain.Ranked, st *styles.Styles) string {
	if st == nil {
		st = styles.Plain()
	}
	src := item.Source

	fields := []string{fmt.Sprintf("%s (%s)", st.Normal.Render(src.Name), st.TypeBadge(src.Type))}
	if src.Stars > 0 {
		fields = append(fields, "stars "+thousands(src.Stars))
	}
	if src.Members > 0 {
		fields = append(fields, "members "+thousands(src.Members))
	}
	fields = append(fields,
		"KnowledgeValue "+st.Score.Render(fmt.Sprintf("%.2f", item.Score))+"/5",
		src.Note,
		st.URL.Render(src.URL),
	)
	return strings.Join(fields, " | ")
}

// Components formats the five sub-scores on one line.
func Components(c domain.ComponentScores) string {
	return fmt.Sprintf("relevance %.2f  depth %.2f  actionability %.2f  freshness %.2f  consequence %.2f",
		c.Relevance, c.Depth, c.Actionability, c.Freshness, c.Consequence)
}

func thousands(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + thousands(-n)
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
