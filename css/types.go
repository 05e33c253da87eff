package css

import "strings"

// FamilyRule binds a selector to the font-family its declaration block
// resolves to. Rules are kept in source order - the cascade simulation in the
// static analyzer depends on it (last matching rule wins).
type FamilyRule struct {
	Selector string // selector as written, trimmed
	Family   string // first family of the stack, variables resolved, quotes stripped
}

// FontFace represents an @font-face declaration. Family and Src are always
// set - blocks missing either are dropped during parsing. It is informational
// only: aggregation never consults it, the subsetting side does.
type FontFace struct {
	Family string
	Src    string // first url(...) of the src value, quotes stripped
	Weight string // optional
	Style  string // optional
}

// Stylesheet is the parsed view of one CSS text, reduced to what font usage
// discovery needs.
type Stylesheet struct {
	Rules     []FamilyRule      // source order
	FontFaces []FontFace        // source order
	Vars      map[string]string // custom property name -> raw value, last wins
}

// FamilyNames returns distinct families referenced by rules, in first-seen order.
func (s *Stylesheet) FamilyNames() []string {
	seen := make(map[string]struct{}, len(s.Rules))
	var names []string
	for _, r := range s.Rules {
		if _, ok := seen[r.Family]; ok {
			continue
		}
		seen[r.Family] = struct{}{}
		names = append(names, r.Family)
	}
	return names
}

// FirstFamily reduces a font-family value to its primary entry: first
// comma-separated element, whitespace trimmed, surrounding quotes removed.
func FirstFamily(value string) string {
	first := value
	if i := strings.IndexByte(value, ','); i >= 0 {
		first = value[:i]
	}
	return Unquote(first)
}

// Unquote removes surrounding single or double quotes from a string.
func Unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
