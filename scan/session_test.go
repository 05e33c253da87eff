package scan

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"fontcull/common"
)

// fakeBrowser scripts per-page behavior for session tests. Pages map URLs to
// extraction results; Links map URLs to spider results; Broken pages fail
// navigation.
type fakeBrowser struct {
	pages   map[string]map[string][]uint32
	links   map[string][]string
	broken  map[string]bool
	current string

	navigated []string
	closed    bool
}

func (b *fakeBrowser) Navigate(_ context.Context, url string) error {
	b.navigated = append(b.navigated, url)
	if b.broken[url] {
		return errors.New("net::ERR_CONNECTION_REFUSED")
	}
	b.current = url
	return nil
}

func (b *fakeBrowser) Evaluate(_ context.Context, script string, out any) error {
	switch script {
	case extractScript:
		found, ok := b.pages[b.current]
		if !ok {
			return errors.New("evaluation failed")
		}
		*(out.(*map[string][]uint32)) = found
	case spiderScript:
		*(out.(*[]string)) = b.links[b.current]
	default:
		return errors.New("unexpected script")
	}
	return nil
}

func (b *fakeBrowser) Close(context.Context) error {
	b.closed = true
	return nil
}

func TestSession_SingleSeed(t *testing.T) {
	browser := &fakeBrowser{
		pages: map[string]map[string][]uint32{
			"https://s.example/": {"Lora": {0x41, 0x42}, "*": {0x41, 0x42}},
		},
	}
	sess := NewSession(browser, SessionConfig{Order: common.CrawlOrderDepthFirst}, nil)

	if err := sess.Run(context.Background(), []string{"https://s.example/"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sess.Pages() != 1 {
		t.Errorf("Pages() = %d, want 1", sess.Pages())
	}
	if got := sess.Sets().Codepoints("Lora"); !slices.Equal(got, []uint32{0x41, 0x42}) {
		t.Errorf("Lora = %v", got)
	}
}

func TestSession_NoSpideringByDefault(t *testing.T) {
	browser := &fakeBrowser{
		pages: map[string]map[string][]uint32{
			"https://s.example/": {"*": {0x41}},
		},
		links: map[string][]string{
			"https://s.example/": {"https://s.example/other"},
		},
	}
	sess := NewSession(browser, SessionConfig{SpiderLimit: 0}, nil)

	if err := sess.Run(context.Background(), []string{"https://s.example/"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(browser.navigated) != 1 {
		t.Errorf("navigated %v, want only the seed", browser.navigated)
	}
}

func TestSession_SpiderLimit(t *testing.T) {
	glyphs := map[string][]uint32{"*": {0x41}}
	browser := &fakeBrowser{
		pages: map[string]map[string][]uint32{
			"https://s.example/":  glyphs,
			"https://s.example/a": glyphs,
			"https://s.example/b": glyphs,
			"https://s.example/c": glyphs,
		},
		links: map[string][]string{
			"https://s.example/": {
				"https://s.example/a",
				"https://s.example/b",
				"https://s.example/c",
			},
		},
	}
	sess := NewSession(browser, SessionConfig{SpiderLimit: 3, Order: common.CrawlOrderBreadthFirst}, nil)

	if err := sess.Run(context.Background(), []string{"https://s.example/"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// seed plus two discovered pages: the limit counts total visited pages
	if sess.Pages() != 3 {
		t.Errorf("Pages() = %d, want 3 (navigated %v)", sess.Pages(), browser.navigated)
	}
}

func TestSession_FailurePolicy(t *testing.T) {
	t.Run("sole page failing is fatal", func(t *testing.T) {
		browser := &fakeBrowser{
			broken: map[string]bool{"https://s.example/": true},
		}
		sess := NewSession(browser, SessionConfig{}, nil)

		if err := sess.Run(context.Background(), []string{"https://s.example/"}); err == nil {
			t.Error("Run() expected error when the only page fails")
		}
	})

	t.Run("one of several failing is skipped", func(t *testing.T) {
		glyphs := map[string][]uint32{"*": {0x41}}
		browser := &fakeBrowser{
			pages: map[string]map[string][]uint32{
				"https://s.example/a": glyphs,
				"https://s.example/c": glyphs,
			},
			broken: map[string]bool{"https://s.example/b": true},
		}
		sess := NewSession(browser, SessionConfig{Order: common.CrawlOrderBreadthFirst}, nil)

		err := sess.Run(context.Background(), []string{
			"https://s.example/a",
			"https://s.example/b",
			"https://s.example/c",
		})
		if err != nil {
			t.Fatalf("Run() error = %v, want broken page skipped", err)
		}
		if sess.Pages() != 2 {
			t.Errorf("Pages() = %d, want 2", sess.Pages())
		}
	})

	t.Run("extraction failure counts like navigation failure", func(t *testing.T) {
		// navigation succeeds but the page is not in pages, so Evaluate fails
		browser := &fakeBrowser{}
		sess := NewSession(browser, SessionConfig{}, nil)

		if err := sess.Run(context.Background(), []string{"https://s.example/"}); err == nil {
			t.Error("Run() expected error when extraction fails on the only page")
		}
	})
}

func TestSummarize(t *testing.T) {
	browser := &fakeBrowser{
		pages: map[string]map[string][]uint32{
			"https://s.example/": {"Lora": {0x41, 0x42}, "*": {0x41, 0x42}},
		},
	}
	sess := NewSession(browser, SessionConfig{}, nil)
	if err := sess.Run(context.Background(), []string{"https://s.example/"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := string(summarize(sess))
	if !strings.Contains(got, "pages scanned: 1") {
		t.Errorf("summary missing page count: %q", got)
	}
	if !strings.Contains(got, "Lora") {
		t.Errorf("summary missing family: %q", got)
	}
}

func TestSession_NoSeeds(t *testing.T) {
	sess := NewSession(&fakeBrowser{}, SessionConfig{}, nil)
	if err := sess.Run(context.Background(), nil); err == nil {
		t.Error("Run() expected error for empty seed list")
	}
}

func TestSession_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sess := NewSession(&fakeBrowser{}, SessionConfig{PageTimeout: time.Second}, nil)
	if err := sess.Run(ctx, []string{"https://s.example/"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
