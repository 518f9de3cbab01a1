// Package release builds the chronological release index consumed by the
// labeller and the dataset assembler.
package release

import (
	"errors"
	"math"
	"sort"
	"time"
)

// ErrNoReleases is returned by NewIndex when given an empty descriptor set.
var ErrNoReleases = errors.New("release: no releases with a date")

// Release is an immutable, dated point in project history.
type Release struct {
	Name string
	Date time.Time
	// Index is the 1-based chronological ordinal. Dense and strictly
	// increasing with Date.
	Index int
}

// Descriptor is the raw, unsorted input to NewIndex: a candidate release
// that may or may not carry a date (undated descriptors are filtered out
// before indexing).
type Descriptor struct {
	Name string
	Date *time.Time
}

// Index is the read-only, ordered view over a project's releases.
type Index struct {
	releases []Release
}

// NewIndex filters descriptors to those with a date, sorts by date
// ascending (ties broken by name, stable), and assigns dense 1-based
// indices. Returns ErrNoReleases if no descriptor carries a date.
func NewIndex(descriptors []Descriptor) (*Index, error) {
	dated := make([]Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		if d.Date != nil {
			dated = append(dated, d)
		}
	}
	if len(dated) == 0 {
		return nil, ErrNoReleases
	}

	sort.SliceStable(dated, func(i, j int) bool {
		di, dj := *dated[i].Date, *dated[j].Date
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return dated[i].Name < dated[j].Name
	})

	releases := make([]Release, len(dated))
	for i, d := range dated {
		releases[i] = Release{Name: d.Name, Date: *d.Date, Index: i + 1}
	}
	return &Index{releases: releases}, nil
}

// Releases returns the full ordered release list. The returned slice must
// not be mutated by callers.
func (idx *Index) Releases() []Release {
	return idx.releases
}

// Len returns the number of releases, i.e. N.
func (idx *Index) Len() int {
	return len(idx.releases)
}

// ByIndex returns the release with the given 1-based index, or false if
// out of range.
func (idx *Index) ByIndex(i int) (Release, bool) {
	if i < 1 || i > len(idx.releases) {
		return Release{}, false
	}
	return idx.releases[i-1], true
}

// IndexForDate returns the smallest release index whose date is >= d, or
// N if d is after the last release's date.
func (idx *Index) IndexForDate(d time.Time) int {
	n := len(idx.releases)
	i := sort.Search(n, func(i int) bool {
		return !idx.releases[i].Date.Before(d)
	})
	if i == n {
		return n
	}
	return idx.releases[i].Index
}

// CutoffCount returns ceil(N * pct) releases for the dataset assembler's
// "first N*cutoffPercentage releases" window (spec §4.9).
func (idx *Index) CutoffCount(pct float64) int {
	n := len(idx.releases)
	if pct <= 0 {
		return 0
	}
	if pct >= 1 {
		return n
	}
	count := int(math.Ceil(float64(n) * pct))
	if count > n {
		count = n
	}
	return count
}
