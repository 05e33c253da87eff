// Package css extracts font usage information from stylesheets: which
// selectors set which font-family, declared @font-face sources, and custom
// properties needed to resolve var() references in family values.
//
// The parser is total: malformed constructs are skipped, never reported as
// errors. Degrading to "no match"/"no value" keeps downstream analysis going
// on real-world CSS.
package css

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	cssparse "github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS into the font-usage view of a stylesheet.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// rawRule is a rule before variable resolution; family values are resolved
// only after the whole sheet is read since the last declaration of a custom
// property wins globally.
type rawRule struct {
	selector string
	family   string // raw font-family value, unresolved
}

// Parse parses CSS text. The optional source parameter identifies what is
// being parsed for debug logging.
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{Vars: make(map[string]string)}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := cssparse.NewParser(input, false)

	var raw []rawRule

	var walk func(depth int)
	walk = func(depth int) {
		for {
			gt, _, data := parser.Next()

			switch gt {
			case cssparse.ErrorGrammar:
				if err := parser.Err(); err != nil && err.Error() != "EOF" {
					p.log.Debug("CSS parse error", zap.Error(err))
				}
				return

			case cssparse.EndAtRuleGrammar, cssparse.EndRulesetGrammar:
				if depth > 0 {
					return
				}
				// stray terminator at top level, ignore

			case cssparse.BeginAtRuleGrammar:
				switch string(data) {
				case "@font-face":
					if ff, ok := p.parseFontFace(parser); ok {
						sheet.FontFaces = append(sheet.FontFaces, ff)
					}
				default:
					// Descend so that rules and custom properties inside
					// @media and friends are still collected.
					walk(depth + 1)
				}

			case cssparse.AtRuleGrammar:
				// blockless @-rule (@import, @charset) - nothing to collect

			case cssparse.BeginRulesetGrammar:
				selectors := splitSelectors(data, parser.Values())
				family := p.collectDeclarations(parser, sheet.Vars)
				if family == "" {
					continue
				}
				for _, sel := range selectors {
					if strings.HasPrefix(sel, "@") {
						continue
					}
					raw = append(raw, rawRule{selector: sel, family: family})
				}

			case cssparse.CustomPropertyGrammar:
				sheet.Vars[string(data)] = tokensString(parser.Values())
			}
		}
	}
	walk(0)

	// Resolution pass: the variable table is complete now.
	for _, r := range raw {
		family := FirstFamily(sheet.ResolveVars(r.family))
		if family == "" {
			p.log.Debug("Dropping rule with empty resolved family", zap.String("selector", r.selector))
			continue
		}
		sheet.Rules = append(sheet.Rules, FamilyRule{Selector: r.selector, Family: family})
	}

	return sheet
}

// collectDeclarations reads declarations until the end of the current ruleset,
// recording custom properties into vars and returning the raw font-family
// value if one was declared. The font shorthand is intentionally not parsed.
func (p *Parser) collectDeclarations(parser *cssparse.Parser, vars map[string]string) string {
	var family string
	for {
		gt, _, data := parser.Next()

		switch gt {
		case cssparse.ErrorGrammar, cssparse.EndRulesetGrammar:
			return family

		case cssparse.DeclarationGrammar:
			if string(data) == "font-family" {
				family = tokensString(parser.Values())
			}

		case cssparse.CustomPropertyGrammar:
			vars[string(data)] = tokensString(parser.Values())
		}
	}
}

// parseFontFace reads an @font-face block. Blocks missing family or a src
// url are dropped silently, per the degradation contract.
func (p *Parser) parseFontFace(parser *cssparse.Parser) (FontFace, bool) {
	var ff FontFace
	for {
		gt, _, data := parser.Next()

		switch gt {
		case cssparse.ErrorGrammar, cssparse.EndAtRuleGrammar:
			if ff.Family == "" || ff.Src == "" {
				p.log.Debug("Dropping incomplete @font-face",
					zap.String("family", ff.Family), zap.String("src", ff.Src))
				return FontFace{}, false
			}
			return ff, true

		case cssparse.DeclarationGrammar:
			value := tokensString(parser.Values())
			switch string(data) {
			case "font-family":
				ff.Family = Unquote(value)
			case "src":
				ff.Src = firstURL(value)
			case "font-weight":
				ff.Weight = value
			case "font-style":
				ff.Style = value
			}
		}
	}
}

// firstURL extracts the first url(...) reference from a src value,
// quotes stripped. Empty string when there is none.
func firstURL(value string) string {
	i := strings.Index(value, "url(")
	if i < 0 {
		return ""
	}
	rest := value[i+len("url("):]
	j := strings.IndexByte(rest, ')')
	if j < 0 {
		return ""
	}
	return Unquote(rest[:j])
}

// splitSelectors builds the full selector text from grammar data and value
// tokens and splits grouped selectors on commas.
func splitSelectors(data []byte, values []cssparse.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// tokensString joins value tokens into a single string, collapsing
// whitespace runs to one space.
func tokensString(tokens []cssparse.Token) string {
	var sb strings.Builder
	space := false
	for _, t := range tokens {
		if t.TokenType == cssparse.WhitespaceToken {
			space = sb.Len() > 0
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}
