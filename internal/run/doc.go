// Package run selects downloaded STATUTE volumes and drives them through
// extraction and persistence, one batch at a time.
package run
