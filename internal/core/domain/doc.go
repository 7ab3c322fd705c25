// Package domain defines the core entities of sourcerank.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Source: A candidate reference item with topic tags
//   - TagSet: An unordered set of topic labels
//   - Vocabulary: The fixed lookup tables used for tagging and scoring
//   - Ranked / Recommendation: Scored and selected results
//   - CatalogRow / ImportRun: Import collaborator records
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
package domain
