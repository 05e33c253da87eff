package scan

import (
	"fmt"
	"net/url"
	"strings"

	"fontcull/common"
)

// Frontier tracks discovered-but-unvisited URLs and the visited set for one
// session. URLs are stored normalized; the visited set only grows and the
// pending list only shrinks through Next for the lifetime of a session.
type Frontier struct {
	order   common.CrawlOrder
	visited map[string]struct{}
	pending []string
}

// NewFrontier creates a frontier with the given traversal order. The order
// decides which pages are reached before a global limit cuts the crawl.
func NewFrontier(order common.CrawlOrder) *Frontier {
	return &Frontier{order: order, visited: make(map[string]struct{})}
}

// Seed enqueues starting URLs as given (not normalized - the seed is visited
// exactly as the caller wrote it).
func (f *Frontier) Seed(urls []string) {
	f.pending = append(f.pending, urls...)
}

// Next pops the next unvisited URL per traversal order and marks it visited.
func (f *Frontier) Next() (string, bool) {
	for len(f.pending) > 0 {
		var u string
		if f.order == common.CrawlOrderBreadthFirst {
			u = f.pending[0]
			f.pending = f.pending[1:]
		} else {
			u = f.pending[len(f.pending)-1]
			f.pending = f.pending[:len(f.pending)-1]
		}
		if _, seen := f.visited[u]; seen {
			continue
		}
		f.visited[u] = struct{}{}
		return u, true
	}
	return "", false
}

// Visited reports how many pages have been handed out so far.
func (f *Frontier) Visited() int {
	return len(f.visited)
}

// Extend filters hrefs discovered on pageURL down to normalized same-origin
// links not yet visited or pending, deduplicates them within this extraction,
// and enqueues at most limit of them (0 = unlimited for this call). It
// returns how many were enqueued.
func (f *Frontier) Extend(pageURL string, hrefs []string, limit int) int {
	origin, err := url.Parse(pageURL)
	if err != nil {
		return 0
	}

	inPending := make(map[string]struct{}, len(f.pending))
	for _, p := range f.pending {
		inPending[p] = struct{}{}
	}

	added := 0
	for _, href := range hrefs {
		if limit > 0 && added >= limit {
			break
		}
		norm, err := Normalize(href)
		if err != nil {
			continue
		}
		if !sameOrigin(origin, norm) {
			continue
		}
		if _, seen := f.visited[norm]; seen {
			continue
		}
		if _, queued := inPending[norm]; queued {
			continue
		}
		inPending[norm] = struct{}{}
		f.pending = append(f.pending, norm)
		added++
	}
	return added
}

// Normalize canonicalizes a URL for deduplication: drop the fragment, trim
// one trailing slash from non-root paths, sort query parameters by name.
func Normalize(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("not an absolute URL: %q", raw)
	}

	u.Fragment = ""
	u.RawFragment = ""

	if u.Path != "/" && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimSuffix(u.Path, "/")
		u.RawPath = ""
	}

	if u.RawQuery != "" {
		u.RawQuery = u.Query().Encode() // Encode sorts by key
	}

	return u.String(), nil
}

// Origin reduces a URL to its scheme://host form, the key used for the
// persistent glyph cache.
func Origin(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("not an absolute URL: %q", raw)
	}
	return u.Scheme + "://" + u.Host, nil
}

func sameOrigin(origin *url.URL, norm string) bool {
	u, err := url.Parse(norm)
	if err != nil {
		return false
	}
	return u.Scheme == origin.Scheme && u.Host == origin.Host
}
