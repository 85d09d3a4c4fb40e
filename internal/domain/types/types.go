// Package types contains common types used across the application.
package types

// Entry represents one row of a ranking read-out.
type Entry struct {
	Rank        int     `json:"rank"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	Comparisons int     `json:"comparisons"`
}
