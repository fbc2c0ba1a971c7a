package util

import (
	"encoding/gob"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// SortedKeys returns the map's keys in ascending order so every walk over a
// map is deterministic.
func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

// CreateBinary gob-encodes data into filename, creating parent directories.
func CreateBinary(filename string, data any) error {
	if err := EnsureDir(filepath.Dir(filename)); err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "creating %v", filename)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(data); err != nil {
		return errors.Wrapf(err, "encoding %v", filename)
	}
	return nil
}

// ReadBinary gob-decodes filename into out, which must be a pointer.
func ReadBinary(filename string, out any) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "opening %v", filename)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(out); err != nil {
		return errors.Wrapf(err, "decoding %v", filename)
	}
	return nil
}

// WriteJSON stores data as indented JSON, creating parent directories.
func WriteJSON(filename string, data any) error {
	if err := EnsureDir(filepath.Dir(filename)); err != nil {
		return err
	}
	buf, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encoding %v", filename)
	}
	return errors.Wrapf(os.WriteFile(filename, buf, 0o644), "writing %v", filename)
}

// ReadJSON decodes filename into out, which must be a pointer.
func ReadJSON(filename string, out any) error {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "reading %v", filename)
	}
	return errors.Wrapf(json.Unmarshal(buf, out), "decoding %v", filename)
}

func EnsureDir(dir string) error {
	return errors.Wrapf(os.MkdirAll(dir, 0o755), "creating dir %v", dir)
}

// MirrorPath maps a file under inRoot to the matching location under
// outRoot, swapping the extension for suffix. With suffix ".surprise.txt",
// root/pop/song.mid becomes outRoot/pop/song.surprise.txt.
func MirrorPath(inRoot, outRoot, path, suffix string) (string, error) {
	rel, err := filepath.Rel(inRoot, path)
	if err != nil {
		return "", errors.Wrapf(err, "relativizing %v", path)
	}
	base := strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.Join(outRoot, base+suffix), nil
}
