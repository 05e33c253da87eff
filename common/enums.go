// Package common keeps enums shared between configuration and the scanning
// pipeline, so that neither has to import the other.
package common

// Order in which discovered pages are taken off the crawl frontier. The
// order determines which pages get visited before the spider limit is
// exhausted.
// ENUM(depthFirst, breadthFirst)
type CrawlOrder int

// Font container kind as sniffed from file content, not extension.
// ENUM(unknown, ttf, otf, woff, woff2)
type FontKind int

// Subsettable returns true for kinds the font engine accepts directly.
func (k FontKind) Subsettable() bool {
	return k == FontKindTtf || k == FontKindOtf
}

// Ext returns canonical file extension for the kind.
func (k FontKind) Ext() string {
	switch k {
	case FontKindTtf:
		return ".ttf"
	case FontKindOtf:
		return ".otf"
	case FontKindWoff:
		return ".woff"
	case FontKindWoff2:
		return ".woff2"
	default:
		return ""
	}
}
