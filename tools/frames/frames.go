package frames

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

const indexWidth = 4

var (
	// ErrDirectoryNotFound - the sequence directory does not exist
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrNoFramesFound - the directory exists but holds no matching frames
	ErrNoFramesFound = errors.New("no frames found")
)

// Sequence is one resolved frame sequence. Immutable once resolved.
type Sequence struct {
	Dir        string
	Prefix     string
	Ext        string
	StartIndex int
	Count      int
}

// InputPattern - returns the printf-style pattern the encoder reads the
// sequence with, e.g. /renders/frame_%04d.png
func (s Sequence) InputPattern() string {
	return filepath.Join(s.Dir, fmt.Sprintf("%s_%%0%dd%s", s.Prefix, indexWidth, s.Ext))
}

// Resolve scans dir for files named <prefix>_<4 digit index><ext> and
// returns the sequence starting at the smallest index present. The index is
// fixed-width zero-padded, so a lexicographic sort of the names is also a
// numeric sort. There is no fallback to index 0: encoding from a guessed
// start index silently misaligns the composite.
func Resolve(dir, prefix, ext string) (Sequence, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Sequence{}, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return Sequence{}, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := parseIndex(entry.Name(), prefix, ext); ok {
			names = append(names, entry.Name())
		}
	}

	if len(names) == 0 {
		return Sequence{}, fmt.Errorf("%w: %s", ErrNoFramesFound, dir)
	}

	sort.Strings(names)
	start, _ := parseIndex(names[0], prefix, ext)

	return Sequence{
		Dir:        dir,
		Prefix:     prefix,
		Ext:        ext,
		StartIndex: start,
		Count:      len(names),
	}, nil
}

func parseIndex(name, prefix, ext string) (int, bool) {
	want := len(prefix) + 1 + indexWidth + len(ext)
	if len(name) != want {
		return 0, false
	}
	if name[:len(prefix)+1] != prefix+"_" {
		return 0, false
	}
	if name[len(name)-len(ext):] != ext {
		return 0, false
	}

	digits := name[len(prefix)+1 : len(prefix)+1+indexWidth]
	index, err := strconv.Atoi(digits)
	if err != nil || index < 0 {
		return 0, false
	}

	return index, true
}
