package model

// SurpriseRecord scores one note transition. Index is 1-based: the first
// note of a sequence has no predecessor and emits no record. Gap marks
// transitions the genre model never observed; their Bits carry the
// configured ceiling instead of -log2(0).
type SurpriseRecord struct {
	Index int
	Pitch Pitch
	Bits  float64
	Gap   bool
}

// GenreSummary aggregates every scored transition of one genre. Mean and
// Variance are NaN when undefined (Count 0; Variance also for Count 1) so an
// empty genre never reads as a confidently unsurprising one.
type GenreSummary struct {
	Genre    string
	Mean     float64
	Variance float64
	Count    int
	GapCount int
}
