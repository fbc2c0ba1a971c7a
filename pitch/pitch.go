package pitch

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/skyla-ma/melody-surprise/midi"
	"github.com/skyla-ma/melody-surprise/model"
)

// Reducer collapses the currently sounding notes to the single pitch the
// melodic line keeps. Active pitches arrive in onset order, oldest first.
type Reducer interface {
	Reduce(active []model.Pitch) model.Pitch
}

// HighestNote keeps the top note of whatever is sounding, the usual
// melody-extraction heuristic.
type HighestNote struct{}

func (HighestNote) Reduce(active []model.Pitch) model.Pitch {
	res := active[0]
	for _, p := range active[1:] {
		if p > res {
			res = p
		}
	}
	return res
}

// LowestNote keeps the bottom note, for bass-line studies.
type LowestNote struct{}

func (LowestNote) Reduce(active []model.Pitch) model.Pitch {
	res := active[0]
	for _, p := range active[1:] {
		if p < res {
			res = p
		}
	}
	return res
}

// LastOnset keeps the most recently struck note regardless of register.
type LastOnset struct{}

func (LastOnset) Reduce(active []model.Pitch) model.Pitch {
	return active[len(active)-1]
}

// ReducerFor maps a policy name from configuration to its implementation.
func ReducerFor(name string) (Reducer, error) {
	switch name {
	case "", "highest":
		return HighestNote{}, nil
	case "lowest":
		return LowestNote{}, nil
	case "latest":
		return LastOnset{}, nil
	}
	return nil, errors.Errorf("unknown reduction policy %q (want highest, lowest or latest)", name)
}

// Extract walks the merged note events of one file (ordered, releases
// before onsets at equal ticks) and produces its monophonic line. At every
// tick where a note starts, the reducer picks one pitch from everything
// sounding. A pitch that is merely still held is not re-emitted; a re-struck
// pitch is.
func Extract(events []midi.NoteEvent, r Reducer) model.PitchSequence {
	var seq model.PitchSequence
	var active []model.Pitch
	sounding := make(map[model.Pitch]bool)

	for i := 0; i < len(events); {
		tick, micros := events[i].Tick, events[i].Micros
		var started map[model.Pitch]bool

		for ; i < len(events) && events[i].Tick == tick; i++ {
			ev := events[i]
			if !ev.Start {
				if !sounding[ev.Key] {
					continue // release without a matching onset
				}
				delete(sounding, ev.Key)
				active = drop(active, ev.Key)
				continue
			}
			if sounding[ev.Key] {
				// doubled tracks often press the same note twice
				logrus.Warnf("note double pressed: %v ch=%v t=%v", midi.NoteName(ev.Key), ev.Channel, ev.Tick)
				continue
			}
			if started == nil {
				started = make(map[model.Pitch]bool)
			}
			started[ev.Key] = true
			sounding[ev.Key] = true
			active = append(active, ev.Key)
		}

		if started == nil || len(active) == 0 {
			continue
		}
		p := r.Reduce(active)
		if len(seq) > 0 && seq[len(seq)-1].Pitch == p && !started[p] {
			continue // held note, already part of the line
		}
		logrus.Debugf("keep %s t=%d us=%d sounding=%d", midi.NoteName(p), tick, micros, len(active))
		seq = append(seq, model.PitchEvent{Pitch: p, Index: len(seq)})
	}
	return seq
}

func drop(active []model.Pitch, p model.Pitch) []model.Pitch {
	for i, v := range active {
		if v == p {
			return append(active[:i], active[i+1:]...)
		}
	}
	return active
}
