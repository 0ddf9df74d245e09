package run

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Batch identifies one STATUTE volume awaiting conversion.
type Batch struct {
	Volume int
	Year   int
	Path   string
}

// Name returns the batch label used in logs and summaries.
func (b Batch) Name() string {
	return fmt.Sprintf("STATUTE-%d", b.Volume)
}

type selectionMode int

const (
	selectAll selectionMode = iota
	selectVolumes
	selectYears
)

// Selection narrows a run to a subset of the downloaded volumes. The zero
// value selects everything.
type Selection struct {
	mode selectionMode
	lo   int
	hi   int
}

// All selects every downloaded volume.
func All() Selection {
	return Selection{mode: selectAll}
}

// Volume selects a single statute volume.
func Volume(v int) (Selection, error) {
	return Volumes(v, v)
}

// Volumes selects an inclusive range of statute volumes.
func Volumes(lo, hi int) (Selection, error) {
	if lo <= 0 || hi < lo {
		return Selection{}, fmt.Errorf("invalid volume range %d-%d", lo, hi)
	}
	return Selection{mode: selectVolumes, lo: lo, hi: hi}, nil
}

// Year selects every volume published in a single year.
func Year(y int) (Selection, error) {
	return Years(y, y)
}

// Years selects every volume published in an inclusive year range.
func Years(lo, hi int) (Selection, error) {
	if lo <= 0 || hi < lo {
		return Selection{}, fmt.Errorf("invalid year range %d-%d", lo, hi)
	}
	return Selection{mode: selectYears, lo: lo, hi: hi}, nil
}

// Resolve scans the statute root (<root>/<year>/STATUTE-<volume>/mods.xml)
// for downloaded volumes matching the selection. Directories that do not
// follow the mirror layout are ignored. An empty result is not an error:
// the caller decides whether a no-op run is worth reporting.
func (s Selection) Resolve(statuteRoot string) ([]Batch, error) {
	matches, err := filepath.Glob(filepath.Join(statuteRoot, "*", "STATUTE-*", "mods.xml"))
	if err != nil {
		return nil, fmt.Errorf("scan statute root: %w", err)
	}

	batches := make([]Batch, 0, len(matches))
	for _, path := range matches {
		volumeDir := filepath.Base(filepath.Dir(path))
		yearDir := filepath.Base(filepath.Dir(filepath.Dir(path)))

		volume, err := strconv.Atoi(strings.TrimPrefix(volumeDir, "STATUTE-"))
		if err != nil {
			continue
		}
		year, err := strconv.Atoi(yearDir)
		if err != nil {
			continue
		}
		if !s.matches(volume, year) {
			continue
		}
		batches = append(batches, Batch{Volume: volume, Year: year, Path: path})
	}

	sort.Slice(batches, func(i, j int) bool {
		if batches[i].Volume != batches[j].Volume {
			return batches[i].Volume < batches[j].Volume
		}
		return batches[i].Year < batches[j].Year
	})
	return batches, nil
}

func (s Selection) matches(volume, year int) bool {
	switch s.mode {
	case selectVolumes:
		return volume >= s.lo && volume <= s.hi
	case selectYears:
		return year >= s.lo && year <= s.hi
	default:
		return true
	}
}
