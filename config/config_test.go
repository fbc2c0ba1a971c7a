package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultGapBitsMatchesProbabilityFloor(t *testing.T) {
	assert.InDelta(t, DefaultGapBits(), 19.931568569324174, 1e-9)
}

func TestValidateRequiresRoot(t *testing.T) {
	c := Default()
	c.Root = ""
	assert.Error(t, c.Validate())
}

func TestValidateRejectsFileAsRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "afile")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := Default()
	c.Root = path
	assert.Error(t, c.Validate())
}

func TestValidateRejectsBadGapBits(t *testing.T) {
	for _, bad := range []float64{0, -1, math.Inf(1), math.NaN()} {
		c := Default()
		c.Root = t.TempDir()
		c.GapBits = bad
		assert.Errorf(t, c.Validate(), "gap bits %v", bad)
	}
}

func TestValidateRejectsZeroWorkers(t *testing.T) {
	c := Default()
	c.Root = t.TempDir()
	c.Workers = 0
	assert.Error(t, c.Validate())
}

func TestValidateAcceptsDefaults(t *testing.T) {
	c := Default()
	c.Root = t.TempDir()
	assert.NoError(t, c.Validate())
}

func TestArtifactPaths(t *testing.T) {
	c := Config{Root: "/corpus"}

	assert := assert.New(t)
	assert.Equal(c.ModelsPath(), filepath.Join("/corpus", "_models", "models.dat"))
	assert.Equal(c.ManifestPath(), filepath.Join("/corpus", "_models", "manifest.json"))
	assert.Equal(c.SummaryCSVPath(), filepath.Join("/corpus", "_surprise", "genre_surprise_summary.csv"))
	assert.Equal(c.TextDir(), filepath.Join("/corpus", "_txt"))
	assert.Equal(c.PlotDir(), filepath.Join("/corpus", "_plots"))
}
