package subset

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"fontcull/archive"
)

// Source names one font to subset: a file on disk, or a member of a zip
// archive when Member is set.
type Source struct {
	Path   string
	Member string
}

func (s Source) String() string {
	if s.Member != "" {
		return s.Path + ":" + s.Member
	}
	return s.Path
}

// Processor runs the injected engine over a set of font sources. Failures
// are reported per file and never disturb previously aggregated glyph state -
// the processor only consumes codepoints, it does not own them.
type Processor struct {
	engine Engine
	tmpl   *template.Template
	outDir string
	log    *zap.Logger

	// Overwrite allows replacing existing output files. Without it an
	// existing destination is an error.
	Overwrite bool
}

func NewProcessor(engine Engine, nameTemplate, outDir string, log *zap.Logger) (*Processor, error) {
	if engine == nil {
		return nil, errors.New("no font engine provided")
	}
	if log == nil {
		log = zap.NewNop()
	}
	tmpl, err := NameTemplate(nameTemplate)
	if err != nil {
		return nil, err
	}
	return &Processor{engine: engine, tmpl: tmpl, outDir: outDir, log: log.Named("subset")}, nil
}

// Expand resolves glob patterns into concrete sources. Patterns matching zip
// archives are walked for font members.
func (p *Processor) Expand(patterns []string) ([]Source, error) {
	var sources []Source
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			p.log.Warn("Pattern matched no files", zap.String("pattern", pattern))
			continue
		}
		for _, m := range matches {
			if strings.EqualFold(filepath.Ext(m), ".zip") {
				err := archive.Walk(m, "", func(arc string, f *zip.File) error {
					sources = append(sources, Source{Path: arc, Member: f.Name})
					return nil
				})
				if err != nil {
					return nil, fmt.Errorf("walking archive %s: %w", m, err)
				}
				continue
			}
			sources = append(sources, Source{Path: m})
		}
	}
	return sources, nil
}

// Process subsets every source to the given codepoints, writing each result
// to its derived output path. Per-file failures are collected and returned
// together after all sources were attempted.
func (p *Processor) Process(sources []Source, codepoints []uint32) (err error) {
	if len(codepoints) == 0 {
		return errors.New("refusing to subset to an empty codepoint set")
	}

	for _, src := range sources {
		if e := p.processOne(src, codepoints); e != nil {
			p.log.Error("Font processing failed", zap.Stringer("source", src), zap.Error(e))
			err = multierr.Append(err, e)
		}
	}
	return
}

func (p *Processor) processOne(src Source, codepoints []uint32) error {
	data, err := readSource(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	kind := Detect(data)
	p.log.Debug("Processing font", zap.Stringer("source", src), zap.Stringer("kind", kind), zap.Int("codepoints", len(codepoints)))

	if kind.Subsettable() {
		// Non-sfnt containers go to the engine as-is, it may know how to
		// decompress them; coverage can only be checked on sfnt data.
		if missing, err := Coverage(data, codepoints); err == nil && len(missing) > 0 {
			p.log.Warn("Font does not cover all requested codepoints",
				zap.Stringer("source", src), zap.Int("missing", len(missing)))
		}
	}

	out, err := p.engine.Subset(data, codepoints)
	if err != nil {
		return classify(src.String(), err)
	}

	name := src.Path
	if src.Member != "" {
		name = src.Member
	}
	outPath, err := OutputPath(name, p.outputDirFor(src), p.tmpl)
	if err != nil {
		return err
	}
	if !p.Overwrite {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("destination already exists: %s", outPath)
		}
	}
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	p.log.Info("Created subset font", zap.String("output", outPath),
		zap.Int("bytes", len(out)), zap.Int("original", len(data)))
	return nil
}

// outputDirFor keeps the "beside the source" default meaningful for archive
// members: their fonts land beside the archive itself.
func (p *Processor) outputDirFor(src Source) string {
	if p.outDir != "" {
		return p.outDir
	}
	if src.Member != "" {
		return filepath.Dir(src.Path)
	}
	return "" // OutputPath falls back to the source file's directory
}

func readSource(src Source) ([]byte, error) {
	if src.Member == "" {
		return os.ReadFile(src.Path)
	}

	var data []byte
	found := false
	err := archive.Walk(src.Path, src.Member, func(_ string, f *zip.File) error {
		if f.Name != src.Member || found {
			return nil
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		data, err = io.ReadAll(rc)
		found = true
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("member %s not found in %s", src.Member, src.Path)
	}
	return data, nil
}

// classify makes sure engine failures surface with the offending file
// attached, wrapping untyped errors as subset failures.
func classify(file string, err error) error {
	var pe *ParseError
	var se *SubsetError
	var ce *CompressError
	if errors.As(err, &pe) || errors.As(err, &se) || errors.As(err, &ce) {
		return err
	}
	return &SubsetError{File: file, Err: err}
}
