package scan

import (
	"testing"

	"fontcull/common"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"fragment dropped", "https://site.example/page#section", "https://site.example/page"},
		{"trailing slash trimmed", "https://site.example/page/", "https://site.example/page"},
		{"root slash kept", "https://site.example/", "https://site.example/"},
		{"query params sorted", "https://site.example/p?b=2&a=1", "https://site.example/p?a=1&b=2"},
		{"already canonical", "https://site.example/p?a=1", "https://site.example/p?a=1"},
		{"everything at once", "https://site.example/page/?z=9&a=1#top", "https://site.example/page?a=1&z=9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalize_RejectsRelative(t *testing.T) {
	for _, raw := range []string{"/relative/path", "page.html", "//missing-scheme.example", ":::"} {
		if _, err := Normalize(raw); err == nil {
			t.Errorf("Normalize(%q) expected error", raw)
		}
	}
}

func TestOrigin(t *testing.T) {
	got, err := Origin("https://site.example/deep/page?x=1")
	if err != nil {
		t.Fatalf("Origin() error = %v", err)
	}
	if got != "https://site.example" {
		t.Errorf("Origin() = %q", got)
	}

	if _, err := Origin("not-absolute"); err == nil {
		t.Error("Origin(relative) expected error")
	}
}

func TestFrontier_Extend(t *testing.T) {
	f := NewFrontier(common.CrawlOrderDepthFirst)
	f.Seed([]string{"https://site.example/"})

	page, ok := f.Next()
	if !ok || page != "https://site.example/" {
		t.Fatalf("Next() = %q, %v", page, ok)
	}

	added := f.Extend(page, []string{
		"https://site.example/a",
		"https://site.example/a#frag",     // duplicate after normalization
		"https://site.example/a/",         // duplicate after normalization
		"https://site.example/b?x=1&a=2",  // kept
		"https://site.example/b?a=2&x=1",  // duplicate after query sort
		"https://other.example/elsewhere", // cross origin
		"https://site.example/",           // already visited
		"not a url",
	}, 10)

	if added != 2 {
		t.Errorf("Extend() added %d, want 2", added)
	}
}

func TestFrontier_ExtendLimit(t *testing.T) {
	f := NewFrontier(common.CrawlOrderDepthFirst)
	f.Seed([]string{"https://site.example/"})
	page, _ := f.Next()

	added := f.Extend(page, []string{
		"https://site.example/a",
		"https://site.example/b",
		"https://site.example/c",
	}, 2)

	if added != 2 {
		t.Errorf("Extend() added %d, want 2", added)
	}
}

func TestFrontier_Order(t *testing.T) {
	drain := func(f *Frontier) []string {
		var out []string
		for {
			u, ok := f.Next()
			if !ok {
				return out
			}
			out = append(out, u)
		}
	}

	t.Run("depth first is LIFO", func(t *testing.T) {
		f := NewFrontier(common.CrawlOrderDepthFirst)
		f.Seed([]string{"https://s.example/1"})
		page, _ := f.Next()
		f.Extend(page, []string{"https://s.example/a", "https://s.example/b"}, 10)

		got := drain(f)
		if len(got) != 2 || got[0] != "https://s.example/b" || got[1] != "https://s.example/a" {
			t.Errorf("LIFO order = %v", got)
		}
	})

	t.Run("breadth first is FIFO", func(t *testing.T) {
		f := NewFrontier(common.CrawlOrderBreadthFirst)
		f.Seed([]string{"https://s.example/1"})
		page, _ := f.Next()
		f.Extend(page, []string{"https://s.example/a", "https://s.example/b"}, 10)

		got := drain(f)
		if len(got) != 2 || got[0] != "https://s.example/a" || got[1] != "https://s.example/b" {
			t.Errorf("FIFO order = %v", got)
		}
	})
}

func TestFrontier_VisitedNeverRequeued(t *testing.T) {
	f := NewFrontier(common.CrawlOrderDepthFirst)
	f.Seed([]string{"https://s.example/a", "https://s.example/a"})

	seen := 0
	for {
		if _, ok := f.Next(); !ok {
			break
		}
		seen++
	}
	if seen != 1 {
		t.Errorf("visited %d pages, want 1", seen)
	}
}
