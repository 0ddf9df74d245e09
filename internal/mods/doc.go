// Package mods parses GPO FDsys STATUTE metadata documents (MODS XML) and
// exposes path-based queries over their embedded items.
package mods
