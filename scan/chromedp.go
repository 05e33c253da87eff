package scan

import (
	"context"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ChromeConfig controls the headless Chrome instance backing a session.
type ChromeConfig struct {
	ExecPath  string // custom browser binary, empty for chromedp's lookup
	UserAgent string
	Headless  bool
}

// Chrome implements Browser on top of chromedp. The CDP event pump runs on
// chromedp's internal goroutines for the lifetime of the browser context and
// is shut down by Close; no protocol events carry semantic work here.
type Chrome struct {
	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc
}

// NewChrome launches a browser. The passed context bounds the whole browser
// lifetime, not a single call.
func NewChrome(ctx context.Context, conf ChromeConfig, log *zap.Logger) (*Chrome, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("chrome")

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !conf.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if conf.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(conf.ExecPath))
	}
	if conf.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(conf.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			log.Sugar().Debugf(format, args...)
		}))

	// Start the browser process now so launch failures surface here and not
	// on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, err
	}

	return &Chrome{ctx: browserCtx, cancelCtx: cancelCtx, cancelAlloc: cancelAlloc}, nil
}

func (b *Chrome) Navigate(ctx context.Context, url string) error {
	return b.run(ctx, chromedp.Navigate(url))
}

func (b *Chrome) Evaluate(ctx context.Context, script string, out any) error {
	return b.run(ctx, chromedp.Evaluate(script, out))
}

func (b *Chrome) Close(context.Context) error {
	b.cancelCtx()
	b.cancelAlloc()
	return nil
}

// run executes actions on the browser context while honoring the caller's
// deadline and cancellation. chromedp actions must run on a context derived
// from the browser context, so the caller's ctx cannot be passed through
// directly.
func (b *Chrome) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(b.ctx)
	defer cancel()
	if d, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		runCtx, cancelDeadline = context.WithDeadline(runCtx, d)
		defer cancelDeadline()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}
