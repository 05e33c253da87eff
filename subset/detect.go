package subset

import (
	"github.com/h2non/filetype"
	"golang.org/x/image/font/sfnt"

	"fontcull/common"
)

// Detect sniffs the font container kind from file content. Unknown content
// is not an error here - the engine decides what it accepts.
func Detect(data []byte) common.FontKind {
	t, err := filetype.Match(data)
	if err != nil {
		return common.FontKindUnknown
	}
	switch t.Extension {
	case "ttf":
		return common.FontKindTtf
	case "otf":
		return common.FontKindOtf
	case "woff":
		return common.FontKindWoff
	case "woff2":
		return common.FontKindWoff2
	default:
		return common.FontKindUnknown
	}
}

// Coverage parses an sfnt font (ttf/otf) and reports which of the requested
// codepoints have no glyph mapped in its cmap. The subsetting engine tolerates
// missing codepoints; the report lets the caller warn about them up front.
func Coverage(data []byte, codepoints []uint32) ([]uint32, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}

	var (
		buf     sfnt.Buffer
		missing []uint32
	)
	for _, c := range codepoints {
		gi, err := f.GlyphIndex(&buf, rune(c))
		if err != nil || gi == 0 {
			missing = append(missing, c)
		}
	}
	return missing, nil
}
