package glyphs

import (
	"fmt"
	"io"
	"sort"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"
)

// SnippetName derives a file-system friendly name for a family's CSS snippet.
func SnippetName(family string) string {
	if family == Universal {
		return "universal.css"
	}
	return slug.Make(family) + ".css"
}

// WriteCSS emits one @font-face shaped snippet per aggregated family with its
// unicode-range, families in natural order. The universal set, when present,
// is written last as a comment since it belongs to no single face.
func (s *Sets) WriteCSS(w io.Writer) error {
	names := s.Families()
	sort.Sort(natural.StringSlice(names))

	for _, family := range names {
		if family == Universal {
			continue
		}
		r := UnicodeRange(s.Codepoints(family))
		if r == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "@font-face {\n  font-family: %q;\n  unicode-range: %s;\n}\n\n", family, r); err != nil {
			return err
		}
	}

	if set, ok := s.families[Universal]; ok && len(set) > 0 {
		if _, err := fmt.Fprintf(w, "/* all families: %s */\n", UnicodeRange(sorted(set))); err != nil {
			return err
		}
	}
	return nil
}
