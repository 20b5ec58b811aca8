package game

import (
	"sort"

	"wordmatch/internal/domain"
)

// PairSet is an append-only set of pair ids. With returns a new set and never
// modifies the receiver, so a State can share sets with its predecessor.
type PairSet map[string]struct{}

// With returns a copy of the set that also contains id
func (s PairSet) With(id string) PairSet {
	if s.Has(id) {
		return s
	}
	next := make(PairSet, len(s)+1)
	for k := range s {
		next[k] = struct{}{}
	}
	next[id] = struct{}{}
	return next
}

// Has reports whether id is in the set
func (s PairSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of ids in the set
func (s PairSet) Len() int { return len(s) }

// IDs returns the ids in sorted order
func (s PairSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Select returns the pairs whose id is in the set, in the order of pairs
func (s PairSet) Select(pairs []domain.WordPair) []domain.WordPair {
	out := make([]domain.WordPair, 0, len(s))
	for _, p := range pairs {
		if s.Has(p.ID) {
			out = append(out, p)
		}
	}
	return out
}
