package css

import (
	"testing"
)

func parseText(t *testing.T, text string) *Stylesheet {
	t.Helper()
	return NewParser(nil).Parse([]byte(text), "test")
}

func TestParse_FamilyRules(t *testing.T) {
	sheet := parseText(t, `
		body { color: red; font-family: Lora, serif; }
		h1, h2 { font-family: "Open Sans"; }
		p { margin: 0; }
	`)

	want := []FamilyRule{
		{Selector: "body", Family: "Lora"},
		{Selector: "h1", Family: "Open Sans"},
		{Selector: "h2", Family: "Open Sans"},
	}
	if len(sheet.Rules) != len(want) {
		t.Fatalf("got %d rules %v, want %d", len(sheet.Rules), sheet.Rules, len(want))
	}
	for i, r := range want {
		if sheet.Rules[i] != r {
			t.Errorf("rule %d = %+v, want %+v", i, sheet.Rules[i], r)
		}
	}
}

func TestParse_FontShorthandIgnored(t *testing.T) {
	sheet := parseText(t, `p { font: italic 16px/1.4 Georgia, serif; }`)
	if len(sheet.Rules) != 0 {
		t.Errorf("font shorthand produced rules: %v", sheet.Rules)
	}
}

func TestParse_VariableResolution(t *testing.T) {
	t.Run("definition after use", func(t *testing.T) {
		sheet := parseText(t, `
			p { font-family: var(--body-font); }
			:root { --body-font: Roboto, sans-serif; }
		`)
		if len(sheet.Rules) != 1 || sheet.Rules[0].Family != "Roboto" {
			t.Errorf("rules = %v, want p -> Roboto", sheet.Rules)
		}
	})

	t.Run("fallback for unknown", func(t *testing.T) {
		sheet := parseText(t, `div { font-family: var(--missing, Georgia); }`)
		if len(sheet.Rules) != 1 || sheet.Rules[0].Family != "Georgia" {
			t.Errorf("rules = %v, want div -> Georgia", sheet.Rules)
		}
	})

	t.Run("unresolvable family dropped", func(t *testing.T) {
		sheet := parseText(t, `div { font-family: var(--missing); }`)
		if len(sheet.Rules) != 0 {
			t.Errorf("rules = %v, want none", sheet.Rules)
		}
	})

	t.Run("last definition wins", func(t *testing.T) {
		sheet := parseText(t, `
			:root { --f: First; }
			p { font-family: var(--f); }
			:root { --f: Second; }
		`)
		if len(sheet.Rules) != 1 || sheet.Rules[0].Family != "Second" {
			t.Errorf("rules = %v, want p -> Second", sheet.Rules)
		}
	})
}

func TestParse_FontFace(t *testing.T) {
	sheet := parseText(t, `
		@font-face {
			font-family: "Lora";
			src: url("fonts/lora.woff2") format("woff2");
			font-weight: 400;
			font-style: italic;
		}
		@font-face { font-family: NoSource; }
		@font-face { src: url(orphan.woff2); }
	`)

	if len(sheet.FontFaces) != 1 {
		t.Fatalf("got %d font faces %v, want 1", len(sheet.FontFaces), sheet.FontFaces)
	}
	ff := sheet.FontFaces[0]
	if ff.Family != "Lora" {
		t.Errorf("Family = %q", ff.Family)
	}
	if ff.Src != "fonts/lora.woff2" {
		t.Errorf("Src = %q", ff.Src)
	}
	if ff.Weight != "400" {
		t.Errorf("Weight = %q", ff.Weight)
	}
	if ff.Style != "italic" {
		t.Errorf("Style = %q", ff.Style)
	}
}

func TestParse_NestedAtRules(t *testing.T) {
	sheet := parseText(t, `
		@media (min-width: 600px) {
			article { font-family: Merriweather; }
		}
	`)
	if len(sheet.Rules) != 1 || sheet.Rules[0].Family != "Merriweather" {
		t.Errorf("rules = %v, want article -> Merriweather", sheet.Rules)
	}
}

func TestParse_MalformedInput(t *testing.T) {
	// garbage degrades to partial results, never panics
	for _, text := range []string{
		"",
		"body { font-family: }",
		"{}{}{}",
		"@font-face",
		"p { font-family: Lora",
	} {
		sheet := NewParser(nil).Parse([]byte(text))
		if sheet == nil {
			t.Errorf("Parse(%q) returned nil", text)
		}
	}
}

func TestFamilyNames(t *testing.T) {
	sheet := parseText(t, `
		body { font-family: Lora; }
		h1 { font-family: Roboto; }
		p { font-family: Lora; }
	`)
	names := sheet.FamilyNames()
	if len(names) != 2 || names[0] != "Lora" || names[1] != "Roboto" {
		t.Errorf("FamilyNames() = %v", names)
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct{ in, want string }{
		{`"Open Sans"`, "Open Sans"},
		{`'Open Sans'`, "Open Sans"},
		{"Lora", "Lora"},
		{`"mismatched'`, `"mismatched'`},
		{`""`, ""},
		{`a`, "a"},
	}
	for _, tt := range tests {
		if got := Unquote(tt.in); got != tt.want {
			t.Errorf("Unquote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
