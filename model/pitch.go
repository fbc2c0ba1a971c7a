package model

// Pitch is a MIDI note number (0-127).
type Pitch = uint8

// PitchEvent is one retained melodic onset. Index is the onset order within
// the source file, starting at 0.
type PitchEvent struct {
	Pitch Pitch
	Index int
}

// PitchSequence is the monophonic line extracted from one source file, in
// onset order. Immutable once extracted.
type PitchSequence = []PitchEvent

// Pitches flattens a sequence to bare note numbers, mostly for tests and
// model training.
func Pitches(seq PitchSequence) []Pitch {
	res := make([]Pitch, len(seq))
	for i, ev := range seq {
		res[i] = ev.Pitch
	}
	return res
}

// Sequence builds a PitchSequence from bare note numbers.
func Sequence(pitches ...Pitch) PitchSequence {
	res := make(PitchSequence, len(pitches))
	for i, p := range pitches {
		res[i] = PitchEvent{Pitch: p, Index: i}
	}
	return res
}
