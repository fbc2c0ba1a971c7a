package genre

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skyla-ma/melody-surprise/config"
	"github.com/skyla-ma/melody-surprise/util"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestOfUsesFirstSegment(t *testing.T) {
	g, err := Of("/corpus", "/corpus/jazz/sub/tune.mid")

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(g, "jazz")
}

func TestOfLabelsRootFiles(t *testing.T) {
	g, err := Of("/corpus", "/corpus/tune.mid")

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(g, config.RootGenre)
}

func TestGatherGroupsAndSkips(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "pop", "a.mid"))
	touch(t, filepath.Join(dir, "pop", "b.MID"))
	touch(t, filepath.Join(dir, "pop", "notes.txt"))
	touch(t, filepath.Join(dir, "pop", "._ghost.mid"))
	touch(t, filepath.Join(dir, "rock", "deep", "c.midi"))
	touch(t, filepath.Join(dir, "loose.mid"))
	touch(t, filepath.Join(dir, "_surprise", "pop", "a.surprise.txt"))
	touch(t, filepath.Join(dir, "_txt", "pop", "a.mid"))
	touch(t, filepath.Join(dir, ".cache", "x.mid"))

	byGenre, err := Gather(dir, nil, 0)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(util.SortedKeys(byGenre), []string{config.RootGenre, "pop", "rock"})
	assert.Equal(byGenre["pop"], []string{
		filepath.Join(dir, "pop", "a.mid"),
		filepath.Join(dir, "pop", "b.MID"),
	})
	assert.Equal(byGenre["rock"], []string{filepath.Join(dir, "rock", "deep", "c.midi")})
	assert.Equal(byGenre[config.RootGenre], []string{filepath.Join(dir, "loose.mid")})
}

func TestGatherLimitsPerGenre(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "pop", "a.mid"))
	touch(t, filepath.Join(dir, "pop", "b.mid"))
	touch(t, filepath.Join(dir, "pop", "c.mid"))
	touch(t, filepath.Join(dir, "rock", "d.mid"))

	byGenre, err := Gather(dir, nil, 2)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(byGenre["pop"], []string{
		filepath.Join(dir, "pop", "a.mid"),
		filepath.Join(dir, "pop", "b.mid"),
	})
	assert.Equal(len(byGenre["rock"]), 1)
}

func TestGatherFixedGenreList(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "pop", "a.mid"))
	touch(t, filepath.Join(dir, "rock", "b.mid"))
	touch(t, filepath.Join(dir, "jazz", "c.mid"))

	byGenre, err := Gather(dir, []string{"rock", "jazz"}, 0)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(util.SortedKeys(byGenre), []string{"jazz", "rock"})
}

func TestGatherMissingRoot(t *testing.T) {
	_, err := Gather(filepath.Join(t.TempDir(), "nope"), nil, 0)
	assert.Error(t, err)
}
