package glyphs

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// UnicodeRange encodes codepoints as a CSS unicode-range value: maximal runs
// of consecutive codepoints become "U+XX" or "U+XX-YY" tokens joined with
// commas, uppercase hex without padding. Input may be unsorted and contain
// duplicates. Empty input yields an empty string.
func UnicodeRange(codepoints []uint32) string {
	if len(codepoints) == 0 {
		return ""
	}

	chars := slices.Clone(codepoints)
	slices.Sort(chars)
	chars = slices.Compact(chars)

	var sb strings.Builder
	start, end := chars[0], chars[0]

	flush := func() {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		if start == end {
			fmt.Fprintf(&sb, "U+%X", start)
		} else {
			fmt.Fprintf(&sb, "U+%X-%X", start, end)
		}
	}

	for _, c := range chars[1:] {
		if c == end+1 {
			end = c
			continue
		}
		flush()
		start, end = c, c
	}
	flush()

	return sb.String()
}

// ParseUnicodeRange expands a unicode-range value back into sorted
// codepoints. It accepts exactly the format UnicodeRange produces.
func ParseUnicodeRange(s string) ([]uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var out []uint32
	for tok := range strings.SplitSeq(s, ",") {
		tok = strings.TrimSpace(tok)
		hex, ok := strings.CutPrefix(tok, "U+")
		if !ok {
			return nil, fmt.Errorf("unicode-range token %q: missing U+ prefix", tok)
		}
		lo, hi, isRange := strings.Cut(hex, "-")
		start, err := strconv.ParseUint(lo, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("unicode-range token %q: %w", tok, err)
		}
		end := start
		if isRange {
			if end, err = strconv.ParseUint(hi, 16, 32); err != nil {
				return nil, fmt.Errorf("unicode-range token %q: %w", tok, err)
			}
			if end < start {
				return nil, fmt.Errorf("unicode-range token %q: inverted range", tok)
			}
		}
		for c := start; c <= end; c++ {
			out = append(out, uint32(c))
		}
	}
	return out, nil
}
