package static

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"fontcull/glyphs"
	"fontcull/state"
	"fontcull/subset"
)

// Run implements the analyze subcommand: estimate per-family glyph usage
// from an HTML document and its stylesheets without a browser, then hand the
// result to the subsetting step.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("analyze")

	if cmd.Args().Len() == 0 {
		return errors.New("no input document has been specified")
	}

	env.Families = cmd.String("family")
	env.Fonts = cmd.StringSlice("subset")
	env.Overwrite = cmd.Bool("overwrite")
	if out := cmd.String("output"); len(out) > 0 {
		env.Cfg.Subset.OutputDir = out
	}
	if wl := cmd.String("whitelist"); len(wl) > 0 {
		env.Cfg.Subset.Whitelist = wl
	}

	// documents predating UTF-8 may need their character set forced
	if cp := cmd.String("charset"); len(cp) > 0 {
		enc, err := ianaindex.IANA.Encoding(cp)
		if err != nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		} else {
			n, _ := ianaindex.IANA.Name(enc)
			log.Debug("Decoding inputs", zap.String("charset", n))
			env.CodePage = enc
		}
	}

	htmlFile := cmd.Args().Get(0)
	htmlText, err := readInput(env, htmlFile)
	if err != nil {
		return fmt.Errorf("unable to read document %q: %w", htmlFile, err)
	}

	cssText := ExtractCSS(htmlText)
	for _, name := range cmd.Args().Slice()[1:] {
		data, err := readInput(env, name)
		if err != nil {
			return fmt.Errorf("unable to read stylesheet %q: %w", name, err)
		}
		cssText = append(cssText, '\n')
		cssText = append(cssText, data...)
	}

	log.Info("Analysis starting", zap.String("document", htmlFile), zap.Int("stylesheets", cmd.Args().Len()-1))
	defer func(start time.Time) {
		log.Info("Analysis completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	analysis := NewAnalyzer(env.Log).Analyze(htmlText, cssText)
	for _, ff := range analysis.FontFaces {
		log.Debug("Declared font face", zap.String("family", ff.Family), zap.String("src", ff.Src))
	}

	sets := glyphs.NewSets()
	sets.Merge(analysis.Codepoints())

	return subset.Emit(env, sets)
}

func readInput(env *state.LocalEnv, name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if env.CodePage == nil {
		return data, nil
	}
	return env.CodePage.NewDecoder().Bytes(data)
}
