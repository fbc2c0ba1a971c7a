package markov

import (
	"sort"

	"github.com/skyla-ma/melody-surprise/model"
	"github.com/skyla-ma/melody-surprise/util"
)

// Counts accumulates observed pitch transitions before normalization.
type Counts map[model.Pitch]map[model.Pitch]uint64

// Model maps source pitch to destination pitch to probability. Every row
// sums to one.
type Model map[model.Pitch]map[model.Pitch]float64

func NewCounts() Counts {
	return make(Counts)
}

// Add records the adjacent pitch pairs of one sequence. Sequences shorter
// than two pitches contribute nothing. Pairs never span sequences.
func (c Counts) Add(seq model.PitchSequence) {
	for i := 0; i+1 < len(seq); i++ {
		src, dst := seq[i].Pitch, seq[i+1].Pitch
		row, ok := c[src]
		if !ok {
			row = make(map[model.Pitch]uint64)
			c[src] = row
		}
		row[dst]++
	}
}

// Merge folds other into c. Addition commutes, so merge order does not
// affect the result.
func (c Counts) Merge(other Counts) {
	for src, row := range other {
		dest, ok := c[src]
		if !ok {
			dest = make(map[model.Pitch]uint64)
			c[src] = dest
		}
		for dst, n := range row {
			dest[dst] += n
		}
	}
}

// Normalize turns raw counts into row-stochastic probabilities.
func (c Counts) Normalize() Model {
	m := make(Model, len(c))
	for src, row := range c {
		var total uint64
		for _, n := range row {
			total += n
		}
		probs := make(map[model.Pitch]float64, len(row))
		for dst, n := range row {
			probs[dst] = float64(n) / float64(total)
		}
		m[src] = probs
	}
	return m
}

// Prob reports the probability of moving from src to dst and whether the
// model has any estimate for that transition.
func (m Model) Prob(src, dst model.Pitch) (float64, bool) {
	row, ok := m[src]
	if !ok {
		return 0, false
	}
	p, ok := row[dst]
	if !ok {
		return 0, false
	}
	return p, true
}

// States reports how many source pitches the model has rows for.
func (m Model) States() int {
	return len(m)
}

// Transition is one (src, dst) edge with its probability, for reporting.
type Transition struct {
	Src  model.Pitch
	Dst  model.Pitch
	Prob float64
}

// Top returns the n most probable transitions, ties broken by pitch so the
// order is stable.
func (m Model) Top(n int) []Transition {
	var all []Transition
	for _, src := range util.SortedKeys(m) {
		for _, dst := range util.SortedKeys(m[src]) {
			all = append(all, Transition{Src: src, Dst: dst, Prob: m[src][dst]})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Prob > all[j].Prob
	})
	if n >= 0 && n < len(all) {
		all = all[:n]
	}
	return all
}
