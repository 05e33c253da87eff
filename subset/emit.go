package subset

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"fontcull/glyphs"
	"fontcull/state"
)

// Emit finishes a discovery run: applies the configured whitelist, selects
// codepoints for the requested families, writes the unicode-range stylesheet
// when an output directory is set and subsets the requested fonts.
func Emit(env *state.LocalEnv, sets *glyphs.Sets) error {
	log := env.Log.Named("emit")

	if wl := env.Cfg.Subset.Whitelist; len(wl) > 0 {
		sets.AddWhitelist(wl)
	}

	codepoints := sets.Select(env.Families)
	if len(codepoints) == 0 {
		log.Warn("No codepoints discovered for requested families", zap.String("families", env.Families))
	}

	// the primary result, usable directly in a unicode-range descriptor
	fmt.Println(glyphs.UnicodeRange(codepoints))

	if outDir := env.Cfg.Subset.OutputDir; len(outDir) > 0 {
		path := filepath.Join(outDir, "glyphs.css")
		if !env.Overwrite {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("destination already exists: %s", path)
			}
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("unable to create stylesheet: %w", err)
		}
		if err = sets.WriteCSS(f); err == nil {
			err = f.Close()
		} else {
			f.Close()
		}
		if err != nil {
			return fmt.Errorf("unable to write stylesheet: %w", err)
		}
		env.Rpt.Store("glyphs.css", path)
		log.Info("Wrote unicode-range stylesheet", zap.String("file", path))
	}

	if len(env.Fonts) == 0 {
		return nil
	}

	engine, err := NewExecEngine(env.Cfg.Subset.EnginePath, env.Log)
	if err != nil {
		return err
	}
	proc, err := NewProcessor(engine, env.Cfg.Subset.OutputNameTemplate, env.Cfg.Subset.OutputDir, env.Log)
	if err != nil {
		return err
	}
	proc.Overwrite = env.Overwrite

	sources, err := proc.Expand(env.Fonts)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		log.Warn("No font files matched requested patterns")
		return nil
	}
	return proc.Process(sources, codepoints)
}
