// Package scan drives a real browser over a set of pages, evaluating a glyph
// extraction script against live computed styles and collecting same-origin
// links to crawl further. One browser session is driven sequentially, one
// page at a time; session state (frontier, visited set, aggregated sets) is
// owned by the single driving flow and needs no locking.
package scan

import "context"

// Browser is the automation capability the session drives. Implementations
// must make Evaluate unmarshal the script's JSON result into out.
type Browser interface {
	Navigate(ctx context.Context, url string) error
	Evaluate(ctx context.Context, script string, out any) error
	Close(ctx context.Context) error
}
