// Package projection turns repository snapshots into what list, board and
// calendar views display. Every function is pure: it reads a snapshot plus
// filter and sort state and returns new slices.
package projection

import (
	"fmt"
	"sort"
	"strings"
)

// ── Filters ──────────────────────────────────────────────────────────────────

// Contains is a case-insensitive substring match. An empty needle matches all.
func Contains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Member is a multi-select filter: an empty selection matches everything.
func Member(selected []string, value string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if s == value {
			return true
		}
	}
	return false
}

// TriState is a boolean column filter.
type TriState string

const (
	TriAll TriState = "All"
	TriYes TriState = "Yes"
	TriNo  TriState = "No"
)

// Match reports whether v passes the filter; anything but Yes or No matches all.
func (t TriState) Match(v bool) bool {
	switch t {
	case TriYes:
		return v
	case TriNo:
		return !v
	default:
		return true
	}
}

// ── Sorting ──────────────────────────────────────────────────────────────────

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort is a sort key plus direction as sent by a view.
type Sort struct {
	Key string    `form:"sort" json:"key"`
	Dir Direction `form:"dir" json:"dir"`
}

// Or returns s with an empty key or direction replaced by the defaults.
func (s Sort) Or(key string, dir Direction) Sort {
	if s.Key == "" {
		s.Key = key
	}
	if s.Dir != Asc && s.Dir != Desc {
		s.Dir = dir
	}
	return s
}

// SortByKey stably sorts items by the lower-cased string key returns. Missing
// values are "" and therefore sort first ascending.
func SortByKey[T any](items []T, dir Direction, key func(T) string) {
	keys := make(map[int]string, len(items))
	idx := make([]int, len(items))
	for i, it := range items {
		idx[i] = i
		keys[i] = strings.ToLower(key(it))
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if dir == Desc {
			return ka > kb
		}
		return ka < kb
	})
	sorted := make([]T, len(items))
	for i, j := range idx {
		sorted[i] = items[j]
	}
	copy(items, sorted)
}

// epochKey renders milliseconds so they order correctly as strings.
func epochKey(ms int64) string { return fmt.Sprintf("%020d", ms) }
