// Command statutes converts GPO STATUTE volume metadata into per-bill JSON
// records laid out for downstream legislative tooling.
package main
