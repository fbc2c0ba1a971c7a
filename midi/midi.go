package midi

import (
	"bytes"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ReadFile parses one standard MIDI file. The gomidi parser panics on some
// malformed inputs (https://github.com/gomidi/midi/issues/20), so panics are
// converted into ordinary parse errors; callers skip the file and continue
// with the rest of the corpus.
func ReadFile(path string) (s *smf.SMF, e error) {
	defer func() {
		switch r := recover().(type) {
		case nil:
		case error:
			e = errors.Wrapf(r, "parsing midi file %v", path)
		default:
			e = errors.Errorf("parsing midi file %v: %v", path, r)
		}
	}()

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading midi file %v", path)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing midi file %v", path)
	}
	return res, nil
}

// NoteEvent is a note boundary on the file's shared tick timeline. Start is
// true for a sounding onset (note-on with velocity > 0); a velocity-0
// note-on counts as a release, like a note-off.
type NoteEvent struct {
	Tick     int64
	Micros   int64
	Track    int
	Channel  uint8
	Key      uint8
	Velocity uint8
	Start    bool
}

// CollectNoteEvents merges the note starts and ends of every track onto one
// ordered timeline. Tracks of one SMF share the tick resolution, so ticks
// compare across tracks.
func CollectNoteEvents(s *smf.SMF) []NoteEvent {
	var res []NoteEvent
	for trackNo, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteStart(&channel, &key, &velocity):
				res = append(res, NoteEvent{
					Tick:     absTicks,
					Micros:   s.TimeAt(absTicks),
					Track:    trackNo,
					Channel:  channel,
					Key:      key,
					Velocity: velocity,
					Start:    true,
				})
			case event.Message.GetNoteEnd(&channel, &key):
				res = append(res, NoteEvent{
					Tick:    absTicks,
					Micros:  s.TimeAt(absTicks),
					Track:   trackNo,
					Channel: channel,
					Key:     key,
				})
			}
		}
	}

	SortEvents(res)
	return res
}

// SortEvents orders events by tick with releases before onsets at equal
// ticks, then track and key, so the merged timeline is reproducible.
func SortEvents(events []NoteEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Tick != b.Tick {
			return a.Tick < b.Tick
		}
		if a.Start != b.Start {
			return !a.Start
		}
		if a.Track != b.Track {
			return a.Track < b.Track
		}
		return a.Key < b.Key
	})
}
