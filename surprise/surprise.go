package surprise

import (
	"math"

	"github.com/skyla-ma/melody-surprise/markov"
	"github.com/skyla-ma/melody-surprise/model"
)

// Score rates every transition of seq against m in bits. The first pitch
// has no incoming transition, so N pitches yield N-1 records. A transition
// the model holds no estimate for, or a zero probability, gets ceilingBits
// and the gap flag rather than infinity.
func Score(seq model.PitchSequence, m markov.Model, ceilingBits float64) []model.SurpriseRecord {
	if len(seq) < 2 {
		return nil
	}
	recs := make([]model.SurpriseRecord, 0, len(seq)-1)
	for i := 1; i < len(seq); i++ {
		rec := model.SurpriseRecord{Index: i, Pitch: seq[i].Pitch}
		switch p, ok := m.Prob(seq[i-1].Pitch, seq[i].Pitch); {
		case !ok || p == 0:
			rec.Bits = ceilingBits
			rec.Gap = true
		case p < 1:
			rec.Bits = -math.Log2(p)
		}
		// p == 1 keeps the plain zero, -Log2(1) would be negative zero
		recs = append(recs, rec)
	}
	return recs
}
