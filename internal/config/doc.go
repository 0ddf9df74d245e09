// Package config loads, normalizes, and validates the TOML configuration
// for the statutes converter.
package config
