// Package extract classifies the embedded items of a STATUTE volume,
// cross-validates their bill and law references, derives normalized actions,
// and assembles the canonical bill records.
package extract
