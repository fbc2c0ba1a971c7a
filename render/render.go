package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/skyla-ma/melody-surprise/model"
	"github.com/skyla-ma/melody-surprise/util"
)

// Histogram draws the distribution of one genre's surprise values.
func Histogram(filename, genre string, bits []float64, bins int) error {
	if len(bits) == 0 {
		return errors.Errorf("no surprise values for %v", genre)
	}
	if err := util.EnsureDir(filepath.Dir(filename)); err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Surprise distribution: %v", genre)
	p.X.Label.Text = "surprise (bits)"
	p.Y.Label.Text = "transitions"
	h, err := plotter.NewHist(plotter.Values(bits), bins)
	if err != nil {
		return errors.Wrapf(err, "histogram for %v", genre)
	}
	p.Add(h)
	return errors.Wrapf(p.Save(6*vg.Inch, 4*vg.Inch, filename), "saving %v", filename)
}

// Curve draws one file's surprise series over its transition indices.
func Curve(filename, title string, recs []model.SurpriseRecord) error {
	if len(recs) == 0 {
		return errors.Errorf("no records for %v", title)
	}
	if err := util.EnsureDir(filepath.Dir(filename)); err != nil {
		return err
	}
	xys := make(plotter.XYs, len(recs))
	for i, r := range recs {
		xys[i].X = float64(r.Index)
		xys[i].Y = r.Bits
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "transition"
	p.Y.Label.Text = "surprise (bits)"
	line, err := plotter.NewLine(xys)
	if err != nil {
		return errors.Wrapf(err, "curve for %v", title)
	}
	p.Add(line)
	return errors.Wrapf(p.Save(8*vg.Inch, 4*vg.Inch, filename), "saving %v", filename)
}

// PlotName joins dir and stem with spaces swapped for underscores so the
// artifact names stay shell-friendly.
func PlotName(dir, stem string) string {
	return filepath.Join(dir, strings.ReplaceAll(stem, " ", "_"))
}
