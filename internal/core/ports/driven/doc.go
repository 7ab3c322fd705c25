// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CatalogLoader: Reads one catalog file into Sources
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These are only needed by the import collaborator and watch mode:
//
//   - RemoteSearcher: Searches a remote service for new catalog rows
//   - CatalogAppender: Appends rows to a catalog file
//   - ImportLedger: Records import runs
//   - ChangeNotifier: Signals catalog file changes
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
