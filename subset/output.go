package subset

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
)

// DefaultNameTemplate renders the contract output name: the source file stem
// with a "-subset" suffix and the WOFF2 extension.
const DefaultNameTemplate = `{{.Stem}}-subset.woff2`

// nameValues is what the output name template may refer to.
type nameValues struct {
	Stem string // source file name without extension
	Ext  string // source extension, including the dot
}

// NameTemplate parses an output-name template with sprig helpers available.
func NameTemplate(text string) (*template.Template, error) {
	if text == "" {
		text = DefaultNameTemplate
	}
	tmpl, err := template.New("output-name").Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("bad output name template %q: %w", text, err)
	}
	return tmpl, nil
}

// OutputPath derives where the subsetted font goes: the rendered name placed
// in outDir, or beside the source file when outDir is empty.
func OutputPath(src, outDir string, tmpl *template.Template) (string, error) {
	base := filepath.Base(src)
	ext := filepath.Ext(base)

	var sb strings.Builder
	err := tmpl.Execute(&sb, nameValues{Stem: strings.TrimSuffix(base, ext), Ext: ext})
	if err != nil {
		return "", fmt.Errorf("rendering output name for %s: %w", src, err)
	}
	name := sb.String()
	if name == "" || strings.ContainsRune(name, filepath.Separator) {
		return "", fmt.Errorf("output name template produced invalid name %q for %s", name, src)
	}

	dir := outDir
	if dir == "" {
		dir = filepath.Dir(src)
	}
	return filepath.Join(dir, name), nil
}
