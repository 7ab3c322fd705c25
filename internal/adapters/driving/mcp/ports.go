package mcp

import (
	"github.com/custodia-labs/sourcerank/internal/core/ports/driving"
)

// Ports aggregates the driving ports the server uses.
type Ports struct {
	// Recommend ranks the catalogs. Required.
	Recommend driving.RecommendService

	// Import exposes the import ledger. Optional.
	Import driving.ImportService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Recommend == nil {
		return ErrMissingRecommendService
	}
	return nil
}
