// Package output persists bill records and version stubs in the downstream
// data-directory layout with atomic replace semantics.
package output
