// Package subset is the boundary to the external font engineering library:
// it names fonts to process, sniffs their container kind, checks cmap
// coverage, and hands bytes plus codepoints to an injected Engine. The
// engine itself - glyph-table subsetting and WOFF2 compression - is an
// opaque black box behind the Engine interface.
package subset

import "fmt"

// Engine subsets a font to the given codepoints and compresses the result
// to WOFF2. Implementations should return errors convertible to ParseError,
// SubsetError or CompressError so callers can classify the failure.
type Engine interface {
	Subset(font []byte, codepoints []uint32) ([]byte, error)
}

// ParseError means the engine could not parse the font file.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse font %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SubsetError means glyph-table subsetting failed.
type SubsetError struct {
	File string
	Err  error
}

func (e *SubsetError) Error() string {
	return fmt.Sprintf("failed to subset font %s: %v", e.File, e.Err)
}

func (e *SubsetError) Unwrap() error { return e.Err }

// CompressError means WOFF2 compression of the subsetted font failed.
type CompressError struct {
	File string
	Err  error
}

func (e *CompressError) Error() string {
	return fmt.Sprintf("failed to compress font %s to WOFF2: %v", e.File, e.Err)
}

func (e *CompressError) Unwrap() error { return e.Err }
