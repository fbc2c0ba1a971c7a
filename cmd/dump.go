package cmd

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/skyla-ma/melody-surprise/config"
	"github.com/skyla-ma/melody-surprise/genre"
	"github.com/skyla-ma/melody-surprise/midi"
	"github.com/skyla-ma/melody-surprise/progress"
	"github.com/skyla-ma/melody-surprise/util"
)

func init() {
	rootCmd.AddCommand(dumpCmd)
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Writes human-readable event listings",
	Long: `Mirrors every MIDI file into a text listing of its events with
absolute ticks and note names, for eyeballing what the extractor sees.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := baseConfig()
		if err := conf.Validate(); err != nil {
			return err
		}
		return RunDump(conf)
	},
}

// RunDump mirrors the corpus into text listings.
func RunDump(conf config.Config) error {
	byGenre, err := genre.Gather(conf.Root, nil, 0)
	if err != nil {
		return err
	}
	total := 0
	for _, files := range byGenre {
		total += len(files)
	}

	rep := progress.New("dump", total)
	for _, g := range util.SortedKeys(byGenre) {
		for _, path := range byGenre[g] {
			if err := dumpOne(conf, path); err != nil {
				logrus.Warnf("skipping %v: %v", path, err)
			}
			rep.Inc()
		}
	}
	rep.Done()
	return nil
}

func dumpOne(conf config.Config, path string) error {
	s, err := midi.ReadFile(path)
	if err != nil {
		return err
	}
	out, err := util.MirrorPath(conf.Root, conf.TextDir(), path, config.DumpSuffix)
	if err != nil {
		return err
	}
	if err := util.EnsureDir(filepath.Dir(out)); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return errors.Wrapf(err, "creating %v", out)
	}
	defer f.Close()
	return midi.Dump(s, filepath.Base(path), f)
}
