package cmd

import (
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/skyla-ma/melody-surprise/config"
	"github.com/skyla-ma/melody-surprise/genre"
	"github.com/skyla-ma/melody-surprise/markov"
	"github.com/skyla-ma/melody-surprise/midi"
	"github.com/skyla-ma/melody-surprise/model"
	"github.com/skyla-ma/melody-surprise/pitch"
	"github.com/skyla-ma/melody-surprise/progress"
	"github.com/skyla-ma/melody-surprise/surprise"
	"github.com/skyla-ma/melody-surprise/util"
)

func init() {
	scoreCmd.Flags().StringSliceVar(&flagGenres, "genres", nil, "restrict the run to these genres")
	scoreCmd.Flags().StringVar(&flagReducer, "reducer", "highest", "reduction policy: highest, lowest or latest")
	scoreCmd.Flags().Float64Var(&flagGapBits, "gap-bits", config.DefaultGapBits(), "surprise assigned to transitions the model never saw")
	scoreCmd.Flags().IntVar(&flagWorkers, "workers", runtime.NumCPU(), "parallel file workers")
	scoreCmd.Flags().IntVar(&flagLimit, "limit", 0, "cap on files per genre, 0 means all")
	rootCmd.AddCommand(scoreCmd)
}

var (
	flagGenres  []string
	flagReducer string
	flagGapBits float64
	flagWorkers int
	flagLimit   int
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Trains genre models and scores every melody",
	Long: `Extracts a monophonic line from every MIDI file, trains one transition
model per genre, then rates each file's transitions against its genre model
and writes the per-file surprise artifacts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := baseConfig()
		conf.Genres = flagGenres
		conf.Reducer = flagReducer
		conf.GapBits = flagGapBits
		conf.Workers = flagWorkers
		conf.Limit = flagLimit
		if err := conf.Validate(); err != nil {
			return err
		}
		return RunScore(conf)
	},
}

// RunScore is the whole scoring stage: gather, extract, train, persist,
// score. Per-file failures are logged and counted, never fatal.
func RunScore(conf config.Config) error {
	reducer, err := pitch.ReducerFor(conf.Reducer)
	if err != nil {
		return err
	}
	byGenre, err := genre.Gather(conf.Root, conf.Genres, conf.Limit)
	if err != nil {
		return err
	}
	if len(byGenre) == 0 {
		return errors.Errorf("no MIDI files under %v", conf.Root)
	}

	start := time.Now()
	manifest := model.RunManifest{
		ID:        uuid.New().String(),
		Root:      conf.Root,
		Reducer:   conf.Reducer,
		GapBits:   conf.GapBits,
		StartedAt: start,
		Genres:    make(map[string]model.GenreRun),
	}

	models := make(map[string]markov.Model, len(byGenre))
	lines := make(map[string]map[string]model.PitchSequence, len(byGenre))

	for _, g := range util.SortedKeys(byGenre) {
		files := byGenre[g]
		logrus.WithFields(logrus.Fields{"genre": g, "files": len(files)}).Info("extracting")
		seqs, failed := extractAll(files, reducer, conf.Workers)

		counts := markov.NewCounts()
		for _, path := range util.SortedKeys(seqs) {
			counts.Add(seqs[path])
		}
		m := counts.Normalize()

		models[g] = m
		lines[g] = seqs
		manifest.Genres[g] = model.GenreRun{
			Files:     len(files),
			Failed:    failed,
			Sequences: len(seqs),
			States:    m.States(),
		}
		logrus.WithFields(logrus.Fields{"genre": g, "states": m.States()}).Info("trained")
	}

	if err := markov.SaveAll(conf.ModelsPath(), models); err != nil {
		return err
	}

	for _, g := range util.SortedKeys(lines) {
		scoreGenre(conf, g, lines[g], models[g])
	}

	manifest.Duration = time.Since(start).String()
	if err := util.WriteJSON(conf.ManifestPath(), manifest); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"genres": len(models), "elapsed": manifest.Duration}).Info("score complete")
	return nil
}

type extraction struct {
	path string
	seq  model.PitchSequence
	err  error
}

// extractAll parses and reduces files in parallel. Parse failures are
// logged, counted and skipped so one broken file never sinks a run.
func extractAll(files []string, reducer pitch.Reducer, workers int) (map[string]model.PitchSequence, int) {
	jobs := make(chan string)
	results := make(chan extraction)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- extractOne(path, reducer)
			}
		}()
	}
	go func() {
		for _, path := range files {
			jobs <- path
		}
		close(jobs)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	rep := progress.New("extract", len(files))
	seqs := make(map[string]model.PitchSequence, len(files))
	failed := 0
	for res := range results {
		rep.Inc()
		if res.err != nil {
			failed++
			logrus.Warnf("skipping %v: %v", res.path, res.err)
			continue
		}
		seqs[res.path] = res.seq
	}
	rep.Done()
	return seqs, failed
}

func extractOne(path string, reducer pitch.Reducer) extraction {
	s, err := midi.ReadFile(path)
	if err != nil {
		return extraction{path: path, err: err}
	}
	return extraction{path: path, seq: pitch.Extract(midi.CollectNoteEvents(s), reducer)}
}

// scoreGenre rates every extracted line against its genre model and writes
// the artifact tree. The model is never mutated here, workers read it freely.
func scoreGenre(conf config.Config, g string, seqs map[string]model.PitchSequence, m markov.Model) {
	paths := util.SortedKeys(seqs)
	jobs := make(chan string)
	rep := progress.New("score "+g, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < conf.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				recs := surprise.Score(seqs[path], m, conf.GapBits)
				out, err := util.MirrorPath(conf.Root, conf.SurpriseDir(), path, config.SurpriseSuffix)
				if err == nil {
					err = surprise.WriteFile(out, recs)
				}
				if err != nil {
					logrus.Warnf("scoring %v: %v", path, err)
				}
				rep.Inc()
			}
		}()
	}
	for _, path := range paths {
		jobs <- path
	}
	close(jobs)
	wg.Wait()
	rep.Done()
}
