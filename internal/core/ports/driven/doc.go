// Package driven defines the interfaces the core depends on.
// Implementations live in internal/fetch, internal/extract,
// internal/script and internal/adapters/driven.
package driven
