package level

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed defaults/*.yaml
var defaultFS embed.FS

// Defaults returns the levels shipped with the game.
func Defaults() ([]Level, error) {
	return loadFS(defaultFS, "defaults", "")
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string

	// OnSkip, if set, is told about every file that could not be loaded.
	OnSkip func(path string, err error)
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files under Root. Files are
// visited in lexical order and levels keep their order within a file.
// Unreadable or malformed files are skipped and reported to OnSkip.
func (l *Loader) LoadAll() ([]Level, error) {
	var paths []string
	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("level: walking directory %s: %w", l.Root, err)
	}
	sort.Strings(paths)

	var levels []Level
	for _, path := range paths {
		lvls, err := l.LoadFile(path)
		if err != nil {
			if l.OnSkip != nil {
				l.OnSkip(path, err)
			}
			continue
		}
		levels = append(levels, lvls...)
	}
	return levels, nil
}

// LoadFile loads every level in a single file.
func (l *Loader) LoadFile(path string) ([]Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: reading file %s: %w", path, err)
	}

	levels, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("level: parsing file %s: %w", path, err)
	}
	for i := range levels {
		levels[i].Source = path
	}
	return levels, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level: %w: level not found: %s", ErrConfiguration, id)
}

// Merge returns base with every level of extra appended, replacing levels
// of base that share an ID.
func Merge(base, extra []Level) []Level {
	out := make([]Level, 0, len(base)+len(extra))
	out = append(out, base...)
	index := make(map[string]int, len(out))
	for i, lvl := range out {
		index[lvl.ID] = i
	}
	for _, lvl := range extra {
		if i, ok := index[lvl.ID]; ok {
			out[i] = lvl
			continue
		}
		index[lvl.ID] = len(out)
		out = append(out, lvl)
	}
	return out
}

// LoadWithUser returns the default levels merged with any levels found in
// dir. A missing dir is not an error.
func LoadWithUser(dir string, onSkip func(path string, err error)) ([]Level, error) {
	levels, err := Defaults()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return levels, nil
	}
	if _, statErr := os.Stat(dir); os.IsNotExist(statErr) {
		return levels, nil
	}

	loader := &Loader{Root: dir, OnSkip: onSkip}
	user, err := loader.LoadAll()
	if err != nil {
		return levels, err
	}
	return Merge(levels, user), nil
}

func loadFS(fsys fs.FS, root, source string) ([]Level, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("level: reading embedded levels: %w", err)
	}

	var levels []Level
	for _, e := range entries {
		if e.IsDir() || !isSupportedExtension(filepath.Ext(e.Name())) {
			continue
		}
		data, err := fs.ReadFile(fsys, root+"/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("level: reading embedded %s: %w", e.Name(), err)
		}
		lvls, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("level: parsing embedded %s: %w", e.Name(), err)
		}
		for i := range lvls {
			lvls[i].Source = source
		}
		levels = append(levels, lvls...)
	}
	return levels, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
