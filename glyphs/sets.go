// Package glyphs accumulates per font-family codepoint sets discovered by
// static analysis or browser scanning and turns them into unicode-range
// strings suitable for font subsetting.
package glyphs

import (
	"slices"
	"strings"
)

// Universal is the reserved family key accumulating the union of every
// codepoint recorded by the dynamic scanner, plus whitelisted characters.
const Universal = "*"

// Sets keeps deduplicated codepoints per font-family. Family keys retain
// their original case, filtering is case-insensitive.
//
// Not safe for concurrent use - the scanning session owns it exclusively.
type Sets struct {
	families map[string]map[uint32]struct{}
}

func NewSets() *Sets {
	return &Sets{families: make(map[string]map[uint32]struct{})}
}

// Merge unions codepoints from other into the aggregate. Merging the same
// input twice is a no-op, as is merging an empty map.
func (s *Sets) Merge(other map[string][]uint32) {
	for family, codes := range other {
		set, ok := s.families[family]
		if !ok {
			set = make(map[uint32]struct{}, len(codes))
			s.families[family] = set
		}
		for _, c := range codes {
			set[c] = struct{}{}
		}
	}
}

// AddWhitelist records every character of text into the universal set only.
func (s *Sets) AddWhitelist(text string) {
	if text == "" {
		return
	}
	set, ok := s.families[Universal]
	if !ok {
		set = make(map[uint32]struct{}, len(text))
		s.families[Universal] = set
	}
	for _, r := range text {
		set[uint32(r)] = struct{}{}
	}
}

// Select returns the sorted union of codepoints for families matching filter.
// The filter is a comma-separated list of family name fragments matched
// case-insensitively as substrings. An empty filter selects the universal set
// when present, otherwise the union of all families.
func (s *Sets) Select(filter string) []uint32 {
	if strings.TrimSpace(filter) == "" {
		if set, ok := s.families[Universal]; ok {
			return sorted(set)
		}
		union := make(map[uint32]struct{})
		for _, set := range s.families {
			for c := range set {
				union[c] = struct{}{}
			}
		}
		return sorted(union)
	}

	var fragments []string
	for f := range strings.SplitSeq(filter, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			fragments = append(fragments, f)
		}
	}

	union := make(map[uint32]struct{})
	for family, set := range s.families {
		name := strings.ToLower(family)
		for _, f := range fragments {
			if strings.Contains(name, f) {
				for c := range set {
					union[c] = struct{}{}
				}
				break
			}
		}
	}
	return sorted(union)
}

// Families returns all aggregated family names, unsorted.
func (s *Sets) Families() []string {
	names := make([]string, 0, len(s.families))
	for name := range s.families {
		names = append(names, name)
	}
	return names
}

// Codepoints returns the sorted codepoints recorded for one family.
func (s *Sets) Codepoints(family string) []uint32 {
	set, ok := s.families[family]
	if !ok {
		return nil
	}
	return sorted(set)
}

// Export flattens the aggregate into plain sorted slices, the same shape
// Merge consumes. Used by the glyph cache.
func (s *Sets) Export() map[string][]uint32 {
	out := make(map[string][]uint32, len(s.families))
	for family, set := range s.families {
		out[family] = sorted(set)
	}
	return out
}

func sorted(set map[uint32]struct{}) []uint32 {
	out := make([]uint32, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}
