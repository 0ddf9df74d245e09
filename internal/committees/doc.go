// Package committees resolves committee display names to stable committee
// identifiers, with per-congress caching backed by SQLite.
package committees
