package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// testSMF builds a single-track file of sequential quarter notes.
func testSMF(pitches []uint8) *smf.SMF {
	clock := smf.MetricTicks(480)
	var tr smf.Track
	tr.Add(0, smf.MetaTempo(120))
	for _, p := range pitches {
		tr.Add(0, gomidi.NoteOn(0, p, 100))
		tr.Add(clock.Ticks4th(), gomidi.NoteOff(0, p))
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = clock
	s.Add(tr)
	return s
}

func TestCollectNoteEventsMergesTimeline(t *testing.T) {
	events := CollectNoteEvents(testSMF([]uint8{60, 62}))

	assert := assert.New(t)
	assert.Equal(len(events), 4)
	assert.Equal(events[0], NoteEvent{Tick: 0, Micros: 0, Track: 0, Channel: 0, Key: 60, Velocity: 100, Start: true})

	// the release of 60 lands on the same tick as the onset of 62 and
	// must come first
	assert.Equal(events[1].Tick, int64(480))
	assert.Equal(events[1].Key, uint8(60))
	assert.False(events[1].Start)
	assert.Equal(events[2].Tick, int64(480))
	assert.Equal(events[2].Key, uint8(62))
	assert.True(events[2].Start)

	// quarter note at 120 bpm is half a second
	assert.Equal(events[1].Micros, int64(500000))
	assert.Equal(events[3].Micros, int64(1000000))
}

func TestVelocityZeroNoteOnIsRelease(t *testing.T) {
	clock := smf.MetricTicks(480)
	var tr smf.Track
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(480, gomidi.NoteOn(0, 60, 0))
	tr.Close(0)
	s := smf.New()
	s.TimeFormat = clock
	s.Add(tr)

	events := CollectNoteEvents(s)

	assert := assert.New(t)
	assert.Equal(len(events), 2)
	assert.True(events[0].Start)
	assert.False(events[1].Start)
}

func TestSortEventsReleasesBeforeOnsets(t *testing.T) {
	events := []NoteEvent{
		{Tick: 480, Key: 62, Start: true},
		{Tick: 480, Key: 60},
		{Tick: 0, Key: 60, Start: true},
	}
	SortEvents(events)

	assert := assert.New(t)
	assert.Equal(events[0], NoteEvent{Tick: 0, Key: 60, Start: true})
	assert.Equal(events[1], NoteEvent{Tick: 480, Key: 60})
	assert.Equal(events[2], NoteEvent{Tick: 480, Key: 62, Start: true})
}

func TestReadFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.mid")
	if err := os.WriteFile(path, []byte("this is not midi"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadFile(path)
	assert.Error(t, err)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.mid"))
	assert.Error(t, err)
}

func TestReadFileParsesWhatWasWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tune.mid")

	assert := assert.New(t)
	assert.NoError(testSMF([]uint8{60, 64}).WriteFile(path))

	s, err := ReadFile(path)
	assert.NoError(err)
	assert.Equal(len(CollectNoteEvents(s)), 4)
}

func TestNoteNames(t *testing.T) {
	cases := map[uint8]string{
		0:   "C-1",
		21:  "A0",
		60:  "C4",
		61:  "C#4",
		69:  "A4",
		127: "G9",
		200: "200",
	}
	for n, want := range cases {
		assert.Equal(t, NoteName(n), want)
	}
}

func TestDumpListsEvents(t *testing.T) {
	var buf bytes.Buffer
	err := Dump(testSMF([]uint8{60}), "one.mid", &buf)

	assert := assert.New(t)
	assert.NoError(err)
	out := buf.String()
	assert.Contains(out, "FILE: one.mid")
	assert.Contains(out, "=== Track 0 ===")
	assert.Contains(out, "note_on")
	assert.Contains(out, "note_off")
	assert.Contains(out, "C4")
}
