// Package memory provides in-memory implementations of the driven ports.
// They back tests and one-shot sessions that should leave nothing on disk.
package memory
