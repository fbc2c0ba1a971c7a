package config

import (
	"math"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
)

// Artifact trees created under the corpus root. The leading underscore keeps
// them out of corpus walks.
const (
	TextDirName     = "_txt"
	SurpriseDirName = "_surprise"
	ModelDirName    = "_models"
	PlotDirName     = "_plots"
)

const (
	SurpriseSuffix = ".surprise.txt"
	DumpSuffix     = ".mid.txt"
	SummaryCSVName = "genre_surprise_summary.csv"
	ModelsFileName = "models.dat"
	ManifestName   = "manifest.json"
)

// RootGenre labels files sitting directly under the corpus root.
const RootGenre = "ROOT"

// DefaultGapProb is the probability floor assigned to transitions outside a
// genre model; its bits value is the default surprise ceiling for model
// gaps, so gap records stay on the same scale as very unlikely observed
// transitions.
const DefaultGapProb = 1e-6

func DefaultGapBits() float64 { return -math.Log2(DefaultGapProb) }

// Config carries every knob the pipeline needs. Commands build one from
// flags and pass it (or individual fields) down; packages never read
// ambient state.
type Config struct {
	Root    string
	Genres  []string // optional fixed genre list; empty means discover
	Reducer string   // monophonic reduction policy name
	GapBits float64  // surprise ceiling for model gaps, in bits
	Workers int
	Limit   int // cap on files kept per genre, 0 = no cap
	Bins    int // histogram bins for the analyze stage
}

func Default() Config {
	return Config{
		Root:    os.Getenv("MELODY_ROOT"),
		Reducer: "highest",
		GapBits: DefaultGapBits(),
		Workers: runtime.NumCPU(),
		Bins:    50,
	}
}

// Validate reports configuration errors that must abort the run before any
// file is touched.
func (c Config) Validate() error {
	if c.Root == "" {
		return errors.New("no corpus root configured (--root flag or MELODY_ROOT)")
	}
	info, err := os.Stat(c.Root)
	if err != nil {
		return errors.Wrapf(err, "corpus root %v", c.Root)
	}
	if !info.IsDir() {
		return errors.Errorf("corpus root %v is not a directory", c.Root)
	}
	if c.GapBits <= 0 || math.IsInf(c.GapBits, 0) || math.IsNaN(c.GapBits) {
		return errors.Errorf("gap ceiling must be a positive finite bits value, got %v", c.GapBits)
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %v", c.Workers)
	}
	return nil
}

func (c Config) TextDir() string     { return filepath.Join(c.Root, TextDirName) }
func (c Config) SurpriseDir() string { return filepath.Join(c.Root, SurpriseDirName) }
func (c Config) ModelDir() string    { return filepath.Join(c.Root, ModelDirName) }
func (c Config) PlotDir() string     { return filepath.Join(c.Root, PlotDirName) }

func (c Config) ModelsPath() string   { return filepath.Join(c.ModelDir(), ModelsFileName) }
func (c Config) ManifestPath() string { return filepath.Join(c.ModelDir(), ManifestName) }

func (c Config) SummaryCSVPath() string {
	return filepath.Join(c.SurpriseDir(), SummaryCSVName)
}
