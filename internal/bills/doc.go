// Package bills defines the canonical bill record schema and derives status,
// history, and title summaries from normalized action lists.
package bills
