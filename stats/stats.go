package stats

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/skyla-ma/melody-surprise/model"
	"github.com/skyla-ma/melody-surprise/util"
)

// Summarize reduces one genre's scored transitions to mean, sample variance
// and counts. Gap fallbacks count toward the statistics, they are real
// prediction failures, and are tallied separately. With no transitions both
// moments are NaN; with one, the variance is.
func Summarize(genre string, recs []model.SurpriseRecord) model.GenreSummary {
	s := model.GenreSummary{
		Genre:    genre,
		Mean:     math.NaN(),
		Variance: math.NaN(),
		Count:    len(recs),
	}
	if len(recs) == 0 {
		return s
	}
	xs := make([]float64, len(recs))
	for i, r := range recs {
		xs[i] = r.Bits
		if r.Gap {
			s.GapCount++
		}
	}
	s.Mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		s.Variance = stat.Variance(xs, nil)
	}
	return s
}

// WriteSummaryCSV writes one row per genre. Undefined moments appear as NaN
// so downstream tooling sees them as missing rather than zero.
func WriteSummaryCSV(filename string, summaries []model.GenreSummary) error {
	if err := util.EnsureDir(filepath.Dir(filename)); err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "creating %v", filename)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	records := [][]string{{"genre", "mean_surprise", "variance", "n_transitions", "n_model_gaps"}}
	for _, s := range summaries {
		records = append(records, []string{
			s.Genre,
			Cell(s.Mean),
			Cell(s.Variance),
			strconv.Itoa(s.Count),
			strconv.Itoa(s.GapCount),
		})
	}
	if err := w.WriteAll(records); err != nil {
		return errors.Wrapf(err, "writing %v", filename)
	}
	return nil
}

// Cell renders one statistic for CSV and JSON output. NaN is spelled out
// because several consumers cannot carry it as a number.
func Cell(x float64) string {
	if math.IsNaN(x) {
		return "NaN"
	}
	return strconv.FormatFloat(x, 'f', 6, 64)
}
