// Package store persists launch rows in a SQLite database so a dataset can
// be converted once and served from a single file.
package store

// DefaultTable holds launch rows written by Replace.
const DefaultTable = "launches"

// Row is one stored launch. Columns use the snake_case forms of the CSV
// headers; Class is 1 for a successful landing and 0 otherwise.
type Row struct {
	FlightNumber           int64
	LaunchSite             string
	Class                  int64
	PayloadMassKg          float64
	BoosterVersion         string
	BoosterVersionCategory string
}
