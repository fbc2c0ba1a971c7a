package model

import "time"

// GenreRun is the per-genre slice of a run manifest.
type GenreRun struct {
	Files     int `json:"files"`
	Failed    int `json:"failed"`
	Sequences int `json:"sequences"`
	States    int `json:"states"`
}

// RunManifest records one scoring run. Written next to the trained models
// and read back by the analyze and serve stages, mainly so genres that ended
// up with no surprise records still get reported instead of vanishing.
type RunManifest struct {
	ID        string              `json:"id"`
	Root      string              `json:"root"`
	Reducer   string              `json:"reducer"`
	GapBits   float64             `json:"gap_bits"`
	StartedAt time.Time           `json:"started_at"`
	Duration  string              `json:"duration"`
	Genres    map[string]GenreRun `json:"genres"`
}
