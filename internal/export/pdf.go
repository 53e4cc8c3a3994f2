package export

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// DefaultPDFTimeout bounds one print job.
const DefaultPDFTimeout = 30 * time.Second

// A4 paper size in inches.
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// Printer turns an HTML document into PDF bytes.
type Printer interface {
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromePrinter prints HTML with a headless Chrome. Requires Chrome or
// Chromium on the host.
type ChromePrinter struct {
	Timeout time.Duration
}

// NewChromePrinter creates a printer; a zero timeout uses DefaultPDFTimeout.
func NewChromePrinter(timeout time.Duration) *ChromePrinter {
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	return &ChromePrinter{Timeout: timeout}
}

// PrintPDF loads html into a blank page and prints it to an A4 PDF.
func (p *ChromePrinter) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	start := time.Now()

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

	browserCtx, cancel = context.WithTimeout(browserCtx, p.Timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("browser printing failed: %w", err)
	}

	log.Debug().
		Int("bytes", len(pdf)).
		Dur("elapsed", time.Since(start)).
		Msg("printed summary PDF")
	return pdf, nil
}
