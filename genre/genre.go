package genre

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/skyla-ma/melody-surprise/config"
)

// Of labels a file by the first directory segment beneath root. Files that
// sit directly in root fall under config.RootGenre.
func Of(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", errors.Wrapf(err, "relativizing %v", path)
	}
	rel = filepath.ToSlash(rel)
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		return rel[:i], nil
	}
	return config.RootGenre, nil
}

// Gather walks root and groups every MIDI file by genre. Directories and
// files named with a leading "_" or "." are skipped, which keeps the output
// trees written next to the corpus out of later runs. When only is
// non-empty, genres outside it are dropped. When limit is positive, each
// genre keeps at most that many files. Lists come back sorted.
func Gather(root string, only []string, limit int) (map[string][]string, error) {
	var keep map[string]bool
	if len(only) > 0 {
		keep = make(map[string]bool, len(only))
		for _, g := range only {
			keep[g] = true
		}
	}

	byGenre := make(map[string][]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !isMidi(name) {
			return nil
		}
		g, err := Of(root, path)
		if err != nil {
			return err
		}
		if keep != nil && !keep[g] {
			return nil
		}
		byGenre[g] = append(byGenre[g], path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %v", root)
	}

	for g, files := range byGenre {
		sort.Strings(files)
		if limit > 0 && len(files) > limit {
			byGenre[g] = files[:limit]
		}
	}
	return byGenre, nil
}

func isMidi(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mid", ".midi":
		return true
	}
	return false
}
