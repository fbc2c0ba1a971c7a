package util

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/skyla-ma/melody-surprise/model"
)

func TestSortedKeysNumeric(t *testing.T) {
	m := map[uint8]string{7: "g", 1: "a", 4: "d"}
	assert.Equal(t, SortedKeys(m), []uint8{1, 4, 7})
}

func TestSortedKeysStrings(t *testing.T) {
	m := map[string]int{"rock": 1, "classical": 2, "jazz": 3}
	assert.Equal(t, SortedKeys(m), []string{"classical", "jazz", "rock"})
}

func TestBinaryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "data.dat")
	in := map[string]map[uint8]float64{"pop": {60: 0.5, 62: 0.5}}

	assert := assert.New(t)
	assert.NoError(CreateBinary(path, in))

	var out map[string]map[uint8]float64
	assert.NoError(ReadBinary(path, &out))
	assert.Equal(out, in)
}

func TestJSONRoundTripManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	in := model.RunManifest{
		ID:        "run-1",
		Root:      "/tmp/corpus",
		Reducer:   "highest",
		GapBits:   19.93,
		StartedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Duration:  "1m2s",
		Genres: map[string]model.GenreRun{
			"pop": {Files: 3, Failed: 1, Sequences: 2, States: 12},
		},
	}

	assert := assert.New(t)
	assert.NoError(WriteJSON(path, in))

	var out model.RunManifest
	assert.NoError(ReadJSON(path, &out))
	assert.Equal(out.ID, in.ID)
	assert.Equal(out.Reducer, in.Reducer)
	assert.Equal(out.GapBits, in.GapBits)
	assert.Equal(out.Genres, in.Genres)
	assert.True(out.StartedAt.Equal(in.StartedAt))
}

func TestMirrorPathSwapsRootAndSuffix(t *testing.T) {
	out, err := MirrorPath("/corpus", "/corpus/_surprise", "/corpus/pop/song.mid", ".surprise.txt")

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(out, filepath.Join("/corpus/_surprise", "pop", "song.surprise.txt"))
}

func TestMirrorPathKeepsNesting(t *testing.T) {
	out, err := MirrorPath("/c", "/out", "/c/a/b/tune.midi", ".mid.txt")

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(out, filepath.Join("/out", "a", "b", "tune.mid.txt"))
}
