package surprise

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/skyla-ma/melody-surprise/config"
	"github.com/skyla-ma/melody-surprise/genre"
	"github.com/skyla-ma/melody-surprise/model"
	"github.com/skyla-ma/melody-surprise/util"
)

const fileHeader = "index\tnote\tsurprise_bits\tmodel_gap"

// WriteFile stores one scored sequence as tab-separated text, one transition
// per line after the header.
func WriteFile(filename string, recs []model.SurpriseRecord) error {
	if err := util.EnsureDir(filepath.Dir(filename)); err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "creating %v", filename)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	fmt.Fprintln(bw, fileHeader)
	for _, r := range recs {
		gap := 0
		if r.Gap {
			gap = 1
		}
		fmt.Fprintf(bw, "%d\t%d\t%.6f\t%d\n", r.Index, r.Pitch, r.Bits, gap)
	}
	return errors.Wrapf(bw.Flush(), "writing %v", filename)
}

// ReadFile loads back what WriteFile stored.
func ReadFile(filename string) ([]model.SurpriseRecord, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %v", filename)
	}
	defer f.Close()

	var recs []model.SurpriseRecord
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || text == fileHeader {
			continue
		}
		rec, err := parseLine(text)
		if err != nil {
			return nil, errors.Wrapf(err, "%v line %v", filename, line)
		}
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %v", filename)
	}
	return recs, nil
}

// Files walks an artifact tree and groups the scored files by genre label,
// sorted within each genre.
func Files(dir string) (map[string][]string, error) {
	byGenre := make(map[string][]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), config.SurpriseSuffix) {
			return nil
		}
		g, err := genre.Of(dir, path)
		if err != nil {
			return err
		}
		byGenre[g] = append(byGenre[g], path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %v", dir)
	}
	for g := range byGenre {
		sort.Strings(byGenre[g])
	}
	return byGenre, nil
}

func parseLine(text string) (model.SurpriseRecord, error) {
	var rec model.SurpriseRecord
	parts := strings.Split(text, "\t")
	if len(parts) != 4 {
		return rec, errors.Errorf("want 4 fields, got %v", len(parts))
	}
	index, err := strconv.Atoi(parts[0])
	if err != nil {
		return rec, err
	}
	note, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return rec, err
	}
	bits, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return rec, err
	}
	gap, err := strconv.Atoi(parts[3])
	if err != nil {
		return rec, err
	}
	rec.Index = index
	rec.Pitch = model.Pitch(note)
	rec.Bits = bits
	rec.Gap = gap != 0
	return rec, nil
}
