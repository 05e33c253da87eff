// Package static attributes rendered text to font families without a
// browser, by simulating a deliberately simplified CSS cascade over a parsed
// HTML tree: rules are scanned in source order and the last matching rule
// wins, with ancestor fallback for inherited font-family. There is no
// specificity scoring, no !important and no media query evaluation - the
// trade is bit-for-bit reproducible output.
package static

import (
	"bytes"
	"strings"

	"github.com/andybalholm/cascadia"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"fontcull/css"
)

// DefaultFamily is attributed to text no rule and no ancestor rule covers.
const DefaultFamily = "sans-serif"

// Analysis is the result of statically analyzing one document.
type Analysis struct {
	// CharsPerFamily maps font-family name to the set of characters used
	// with it. Keys are families as resolved from CSS, never the universal
	// "*" key - static analysis always lands on a concrete family.
	CharsPerFamily map[string]map[rune]struct{}
	// FontFaces are the @font-face declarations of the stylesheet, for the
	// subsetting side. Aggregation logic ignores them.
	FontFaces []css.FontFace
}

// Codepoints flattens CharsPerFamily into the shape glyphs.Sets.Merge takes.
func (a *Analysis) Codepoints() map[string][]uint32 {
	out := make(map[string][]uint32, len(a.CharsPerFamily))
	for family, chars := range a.CharsPerFamily {
		codes := make([]uint32, 0, len(chars))
		for r := range chars {
			codes = append(codes, uint32(r))
		}
		out[family] = codes
	}
	return out
}

// Analyzer runs static font-usage analysis over HTML and CSS text.
type Analyzer struct {
	log    *zap.Logger
	parser *css.Parser
}

func NewAnalyzer(log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{log: log.Named("static"), parser: css.NewParser(log)}
}

// compiledRule pairs a source-order rule with its compiled matcher. Rules
// whose selectors cascadia rejects are kept out of the list - they degrade
// to "no match".
type compiledRule struct {
	matcher cascadia.Selector
	family  string
}

// Analyze maps every run of element-own text in htmlText to the font-family
// the stylesheet assigns it. It is total: malformed HTML and CSS degrade to
// partial trees and skipped rules, never an error.
func (a *Analyzer) Analyze(htmlText, cssText []byte) *Analysis {
	sheet := a.parser.Parse(cssText)

	rules := make([]compiledRule, 0, len(sheet.Rules))
	for _, r := range sheet.Rules {
		m, err := cascadia.Compile(r.Selector)
		if err != nil {
			a.log.Debug("Skipping unsupported selector", zap.String("selector", r.Selector), zap.Error(err))
			continue
		}
		rules = append(rules, compiledRule{matcher: m, family: r.Family})
	}

	doc, err := html.Parse(bytes.NewReader(htmlText))
	if err != nil {
		// html.Parse only fails on reader errors; a bytes.Reader has none,
		// but degrade to an empty result rather than panic on principle.
		a.log.Debug("HTML parse failed", zap.Error(err))
		return &Analysis{CharsPerFamily: map[string]map[rune]struct{}{}, FontFaces: sheet.FontFaces}
	}

	result := &Analysis{
		CharsPerFamily: make(map[string]map[rune]struct{}),
		FontFaces:      sheet.FontFaces,
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template", "head":
				return
			}
			if text := ownText(n); strings.TrimSpace(text) != "" {
				family := familyFor(n, rules)
				set, ok := result.CharsPerFamily[family]
				if !ok {
					set = make(map[rune]struct{})
					result.CharsPerFamily[family] = set
				}
				for _, r := range text {
					set[r] = struct{}{}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return result
}

// ownText concatenates the element's direct text children. Descendant text
// is attributed where it lives, preventing double counting against more
// specific descendant rules.
func ownText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

// familyFor resolves the font-family for one element: last matching rule in
// source order, then the same scan outward over ancestors stopping at the
// first ancestor with any match, then the default.
func familyFor(n *html.Node, rules []compiledRule) string {
	if f, ok := lastMatch(n, rules); ok {
		return f
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		if f, ok := lastMatch(p, rules); ok {
			return f
		}
	}
	return DefaultFamily
}

func lastMatch(n *html.Node, rules []compiledRule) (string, bool) {
	var family string
	found := false
	for _, r := range rules {
		if r.matcher.Match(n) {
			family = r.family
			found = true
		}
	}
	return family, found
}

// ExtractCSS concatenates the contents of every <style> element in the
// document, for the common case of a self-contained HTML file.
func ExtractCSS(htmlText []byte) []byte {
	doc, err := html.Parse(bytes.NewReader(htmlText))
	if err != nil {
		return nil
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "style" {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
			}
			sb.WriteByte('\n')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return []byte(sb.String())
}
