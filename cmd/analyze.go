package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/skyla-ma/melody-surprise/config"
	"github.com/skyla-ma/melody-surprise/model"
	"github.com/skyla-ma/melody-surprise/render"
	"github.com/skyla-ma/melody-surprise/stats"
	"github.com/skyla-ma/melody-surprise/surprise"
	"github.com/skyla-ma/melody-surprise/util"
)

func init() {
	analyzeCmd.Flags().IntVar(&flagBins, "bins", 50, "histogram bins")
	analyzeCmd.Flags().BoolVar(&flagNoPlots, "no-plots", false, "skip PNG rendering")
	rootCmd.AddCommand(analyzeCmd)
}

var (
	flagBins    int
	flagNoPlots bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Aggregates surprise artifacts per genre",
	Long: `Reads the surprise artifacts written by score, prints the per-genre
table, writes the summary CSV and renders comparison plots.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := baseConfig()
		conf.Bins = flagBins
		if err := conf.Validate(); err != nil {
			return err
		}
		return RunAnalyze(conf, !flagNoPlots)
	},
}

// RunAnalyze is the whole aggregation stage: read artifacts, print the
// table, write the CSV, optionally render plots.
func RunAnalyze(conf config.Config, plots bool) error {
	arts, err := loadArtifacts(conf)
	if err != nil {
		return err
	}

	var summaries []model.GenreSummary
	for _, g := range util.SortedKeys(arts) {
		summaries = append(summaries, stats.Summarize(g, arts[g].records))
	}

	printTable(summaries)
	if err := stats.WriteSummaryCSV(conf.SummaryCSVPath(), summaries); err != nil {
		return err
	}
	logrus.Infof("summary written to %v", conf.SummaryCSVPath())

	if plots {
		renderAll(conf, arts)
	}
	return nil
}

// genreArtifacts is everything analyze and serve need from one genre's
// scored files.
type genreArtifacts struct {
	records  []model.SurpriseRecord // all transitions, concatenated
	bestPath string                 // artifact with the most records
	bestRecs []model.SurpriseRecord
}

// loadArtifacts reads the whole artifact tree grouped by genre. Genres named
// in the run manifest keep a slot even when nothing scored, so they report
// as count-0 rows instead of vanishing.
func loadArtifacts(conf config.Config) (map[string]*genreArtifacts, error) {
	byGenre, err := surprise.Files(conf.SurpriseDir())
	if err != nil {
		return nil, errors.Wrap(err, "no surprise artifacts, run score first")
	}

	arts := make(map[string]*genreArtifacts)
	var manifest model.RunManifest
	if err := util.ReadJSON(conf.ManifestPath(), &manifest); err != nil {
		logrus.Warnf("no run manifest: %v", err)
	} else {
		for g := range manifest.Genres {
			arts[g] = &genreArtifacts{}
		}
	}

	for g, files := range byGenre {
		a := arts[g]
		if a == nil {
			a = &genreArtifacts{}
			arts[g] = a
		}
		for _, f := range files {
			recs, err := surprise.ReadFile(f)
			if err != nil {
				logrus.Warnf("skipping %v: %v", f, err)
				continue
			}
			a.records = append(a.records, recs...)
			if len(recs) > len(a.bestRecs) {
				a.bestRecs = recs
				a.bestPath = f
			}
		}
	}
	return arts, nil
}

func printTable(summaries []model.GenreSummary) {
	fmt.Printf("%-24v %12v %12v %12v %8v\n", "genre", "mean_bits", "variance", "transitions", "gaps")
	for _, s := range summaries {
		fmt.Printf("%-24v %12.4f %12.4f %12d %8d\n", s.Genre, s.Mean, s.Variance, s.Count, s.GapCount)
	}
}

// renderAll draws one histogram per genre plus the surprise curve of its
// longest scored file. Render failures are warnings, not fatal.
func renderAll(conf config.Config, arts map[string]*genreArtifacts) {
	for _, g := range util.SortedKeys(arts) {
		a := arts[g]
		if len(a.records) == 0 {
			continue
		}
		bits := make([]float64, len(a.records))
		for i, r := range a.records {
			bits[i] = r.Bits
		}
		hist := render.PlotName(conf.PlotDir(), g+"_surprise_hist.png")
		if err := render.Histogram(hist, g, bits, conf.Bins); err != nil {
			logrus.Warnf("histogram %v: %v", g, err)
		}
		if a.bestPath == "" {
			continue
		}
		stem := strings.TrimSuffix(filepath.Base(a.bestPath), config.SurpriseSuffix)
		curve := render.PlotName(conf.PlotDir(), fmt.Sprintf("%v_%v_curve.png", g, stem))
		if err := render.Curve(curve, fmt.Sprintf("%v: %v", g, stem), a.bestRecs); err != nil {
			logrus.Warnf("curve %v: %v", g, err)
		}
	}
	logrus.Infof("plots written to %v", conf.PlotDir())
}
