// Package deps checks the availability of external binaries before and
// during a run.
package deps
