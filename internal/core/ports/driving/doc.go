// Package driving defines the interfaces exposed to entry points
// (CLI commands and the directory watcher).
package driving
