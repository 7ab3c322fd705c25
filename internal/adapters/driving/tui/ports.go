// Package tui provides an interactive terminal browser for recommendations.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/sourcerank/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI uses.
type Ports struct {
	// Recommend ranks the catalogs for a query. Required.
	Recommend driving.RecommendService

	// Import lists recorded import runs. Optional; the history view
	// reports that nothing is recorded when it is nil.
	Import driving.ImportService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Recommend == nil {
		return ErrMissingRecommendService
	}
	return nil
}
