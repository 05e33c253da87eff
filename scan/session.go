package scan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fontcull/common"
	"fontcull/glyphs"
)

// SessionConfig bounds one scanning session.
type SessionConfig struct {
	// SpiderLimit caps the total number of pages visited when crawling
	// beyond the seeds. 0 disables spidering: only seed URLs are scanned.
	SpiderLimit int
	// PageTimeout bounds navigation plus script evaluation per page. A page
	// that never finishes loading becomes a recoverable per-page failure.
	PageTimeout time.Duration
	Order       common.CrawlOrder
}

// Session drives one browser over the crawl frontier, aggregating per-family
// codepoint sets. All session state is owned by the single goroutine calling
// Run; the browser is driven one page at a time.
type Session struct {
	browser  Browser
	conf     SessionConfig
	log      *zap.Logger
	id       uuid.UUID
	sets     *glyphs.Sets
	frontier *Frontier
	scanned  int
}

func NewSession(browser Browser, conf SessionConfig, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New()
	return &Session{
		browser:  browser,
		conf:     conf,
		log:      log.Named("scan").With(zap.String("session", id.String())),
		id:       id,
		sets:     glyphs.NewSets(),
		frontier: NewFrontier(conf.Order),
	}
}

// Sets returns the session aggregate. The caller may keep using it after Run
// returns; the session itself never touches it again.
func (s *Session) Sets() *glyphs.Sets {
	return s.sets
}

// Pages reports how many pages were successfully scanned.
func (s *Session) Pages() int {
	return s.scanned
}

// Run scans the seed URLs and, when spidering is enabled, same-origin pages
// discovered on them, until the frontier drains or the spider limit is hit.
//
// Failure policy: a page that fails to load or whose extraction script fails
// is skipped when any other page was already scanned or is still queued; the
// failure is session-fatal only when the failing page was the sole requested
// one. This mirrors crawl-level recoverability - one broken page must not
// void an otherwise productive session.
func (s *Session) Run(ctx context.Context, seeds []string) error {
	if len(seeds) == 0 {
		return errors.New("no URLs to scan")
	}
	s.frontier.Seed(seeds)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		url, ok := s.frontier.Next()
		if !ok {
			break
		}

		start := time.Now()
		if err := s.scanPage(ctx, url); err != nil {
			if s.scanned == 0 && len(s.frontier.pending) == 0 {
				return fmt.Errorf("scanning %s: %w", url, err)
			}
			s.log.Warn("Skipping page", zap.String("url", url), zap.Error(err))
			continue
		}
		s.scanned++
		s.log.Info("Page scanned", zap.String("url", url), zap.Duration("elapsed", time.Since(start)))
	}

	s.log.Info("Session done", zap.Int("pages", s.scanned), zap.Int("families", len(s.sets.Families())))
	return nil
}

func (s *Session) scanPage(ctx context.Context, url string) error {
	if s.conf.PageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.conf.PageTimeout)
		defer cancel()
	}

	if err := s.browser.Navigate(ctx, url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	var found map[string][]uint32
	if err := s.browser.Evaluate(ctx, extractScript, &found); err != nil {
		return fmt.Errorf("glyph extraction failed: %w", err)
	}
	s.sets.Merge(found)
	s.log.Debug("Glyphs extracted", zap.String("url", url), zap.Int("families", len(found)))

	if remaining := s.conf.SpiderLimit - s.frontier.Visited(); s.conf.SpiderLimit > 0 && remaining > 0 {
		var hrefs []string
		if err := s.browser.Evaluate(ctx, spiderScript, &hrefs); err != nil {
			// Links are best effort; glyphs from this page are already merged.
			s.log.Warn("Link discovery failed", zap.String("url", url), zap.Error(err))
			return nil
		}
		added := s.frontier.Extend(url, hrefs, remaining)
		s.log.Debug("Frontier extended", zap.String("url", url), zap.Int("found", len(hrefs)), zap.Int("queued", added))
	}

	return nil
}
