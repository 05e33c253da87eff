package scan

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"fontcull/cache"
	"fontcull/common"
	"fontcull/state"
	"fontcull/subset"
)

// Run implements the scan subcommand: crawl the requested site in a real
// browser, aggregate rendered glyphs per font family and hand the result to
// the subsetting step.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("scan")

	seeds := cmd.Args().Slice()
	if len(seeds) == 0 {
		return errors.New("no URLs have been specified")
	}

	env.Families = cmd.String("family")
	env.Fonts = cmd.StringSlice("subset")
	env.Overwrite = cmd.Bool("overwrite")
	if cmd.IsSet("spider-limit") {
		env.Cfg.Scan.SpiderLimit = cmd.Int("spider-limit")
	}
	if out := cmd.String("output"); len(out) > 0 {
		env.Cfg.Subset.OutputDir = out
	}
	if wl := cmd.String("whitelist"); len(wl) > 0 {
		env.Cfg.Subset.Whitelist = wl
	}

	order, err := common.ParseCrawlOrder(env.Cfg.Scan.CrawlOrder)
	if err != nil {
		return fmt.Errorf("bad crawl order in configuration: %w", err)
	}

	var store *cache.Cache
	if cmd.Bool("cache") {
		if len(env.Cfg.Scan.CachePath) == 0 {
			return errors.New("--cache requested but no cache_path configured")
		}
		if store, err = cache.Open(env.Cfg.Scan.CachePath); err != nil {
			return fmt.Errorf("unable to open glyph cache: %w", err)
		}
		defer func() {
			if e := store.Close(); e != nil {
				err = multierr.Append(err, fmt.Errorf("unable to close glyph cache: %w", e))
			}
		}()
	}

	browser, err := NewChrome(ctx, ChromeConfig{
		ExecPath:  env.Cfg.Scan.BrowserPath,
		UserAgent: env.Cfg.Scan.UserAgent,
		Headless:  env.Cfg.Scan.Headless,
	}, env.Log)
	if err != nil {
		return fmt.Errorf("unable to start browser: %w", err)
	}
	defer func() {
		if e := browser.Close(ctx); e != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close browser: %w", e))
		}
	}()

	sess := NewSession(browser, SessionConfig{
		SpiderLimit: env.Cfg.Scan.SpiderLimit,
		PageTimeout: time.Duration(env.Cfg.Scan.PageTimeoutSec) * time.Second,
		Order:       order,
	}, env.Log)

	origin, err := Origin(seeds[0])
	if err != nil {
		return err
	}
	if store != nil {
		known, err := store.Load(origin)
		if err != nil {
			return fmt.Errorf("unable to load glyph cache: %w", err)
		}
		sess.Sets().Merge(known)
	}

	log.Info("Scan starting", zap.Strings("seeds", seeds), zap.Int("spider limit", env.Cfg.Scan.SpiderLimit))
	defer func(start time.Time) {
		log.Info("Scan completed", zap.Int("pages", sess.Pages()), zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if err := sess.Run(ctx, seeds); err != nil {
		return err
	}

	if store != nil {
		if err := store.Store(origin, sess.Sets().Export()); err != nil {
			return fmt.Errorf("unable to update glyph cache: %w", err)
		}
	}

	if env.Rpt != nil {
		env.Rpt.StoreData("scan-summary.txt", summarize(sess))
	}

	return subset.Emit(env, sess.Sets())
}

func summarize(sess *Session) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pages scanned: %d\n", sess.Pages())

	names := sess.Sets().Families()
	sort.Sort(natural.StringSlice(names))
	for _, name := range names {
		fmt.Fprintf(&sb, "%-40s %d codepoints\n", name, len(sess.Sets().Codepoints(name)))
	}
	return []byte(sb.String())
}
