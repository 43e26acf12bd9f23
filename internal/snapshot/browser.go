package snapshot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// CaptureScale is the device scale factor of element screenshots.
const CaptureScale = 2

// Capturer renders a page and returns a PNG image of one element.
type Capturer interface {
	Capture(ctx context.Context, url, elementID string) ([]byte, error)
}

// BrowserCapturer captures elements with a headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type BrowserCapturer struct {
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewBrowserCapturer returns a BrowserCapturer with the default timeout.
func NewBrowserCapturer(logger *zap.Logger) *BrowserCapturer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrowserCapturer{Timeout: DefaultTimeout, Logger: logger}
}

// Capture navigates to url, waits for the page body and screenshots the element at CaptureScale.
func (b *BrowserCapturer) Capture(ctx context.Context, url, elementID string) ([]byte, error) {
	b.Logger.Debug("starting headless browser", zap.String("url", url), zap.String("element", elementID))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	selector := ElementSelector(elementID)
	var present bool
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(fmt.Sprintf("document.getElementById(%s) !== null", strconv.Quote(elementID)), &present),
	)
	if err != nil {
		return nil, &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}
	if !present {
		return nil, &MissingElementError{ElementID: elementID, URL: url}
	}

	var png []byte
	if err := chromedp.Run(browserCtx, chromedp.ScreenshotScale(selector, CaptureScale, &png, chromedp.ByQuery)); err != nil {
		return nil, &Error{URL: url, Message: "element screenshot failed", Cause: err}
	}

	b.Logger.Debug("captured element", zap.String("element", elementID), zap.Int("bytes", len(png)))
	return png, nil
}
