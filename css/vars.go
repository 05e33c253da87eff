package css

import "strings"

// maxVarPasses bounds var() substitution so circular references terminate.
// Whatever text remains after the last pass is returned as-is.
const maxVarPasses = 10

// ResolveVars substitutes var(--name[, fallback]) references in value using
// the sheet's custom property table. Unknown names resolve to the fallback,
// or to an empty string when there is none. Fallbacks may nest further var()
// references; those are picked up on subsequent passes.
func (s *Stylesheet) ResolveVars(value string) string {
	for range maxVarPasses {
		next, changed := substituteVars(value, s.Vars)
		if !changed {
			return next
		}
		value = next
	}
	return value
}

// substituteVars performs one substitution pass over value.
func substituteVars(value string, vars map[string]string) (string, bool) {
	i := strings.Index(value, "var(")
	if i < 0 {
		return value, false
	}

	var sb strings.Builder
	changed := false

	for i >= 0 {
		sb.WriteString(value[:i])
		rest := value[i+len("var("):]

		end := matchParen(rest)
		if end < 0 {
			// unterminated var() - keep the tail untouched
			sb.WriteString(value[i:])
			return sb.String(), changed
		}

		name, fallback, hasFallback := cutTopLevel(rest[:end])
		name = strings.TrimSpace(name)

		if v, ok := vars[name]; ok {
			sb.WriteString(v)
		} else if hasFallback {
			sb.WriteString(strings.TrimSpace(fallback))
		}
		// unknown without fallback: empty string

		changed = true
		value = rest[end+1:]
		i = strings.Index(value, "var(")
	}
	sb.WriteString(value)
	return sb.String(), changed
}

// matchParen returns the index of the ')' closing the parenthesis opened just
// before s, respecting nesting, or -1 when unbalanced.
func matchParen(s string) int {
	depth := 1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// cutTopLevel splits "name, fallback" at the first comma not nested inside
// parentheses, so fallbacks containing var(x, y) stay intact.
func cutTopLevel(s string) (name, fallback string, found bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				return s[:i], s[i+1:], true
			}
		}
	}
	return s, "", false
}
