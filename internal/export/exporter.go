package export

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/webjhones/requirements-intake/internal/rendering"
	"github.com/webjhones/requirements-intake/internal/summary"
)

// Options configures the export recipients.
type Options struct {
	ContactEmail  string
	WhatsAppPhone string
}

// Exporter renders and delivers summary records.
type Exporter struct {
	renderer *rendering.Renderer
	printer  Printer
	opts     Options
}

// NewExporter creates an exporter. printer may be nil when PDF export is
// disabled.
func NewExporter(renderer *rendering.Renderer, printer Printer, opts Options) *Exporter {
	return &Exporter{renderer: renderer, printer: printer, opts: opts}
}

// PDFEnabled reports whether a printer is configured.
func (e *Exporter) PDFEnabled() bool {
	return e.printer != nil
}

// PDF renders rec as HTML and prints it.
func (e *Exporter) PDF(ctx context.Context, rec summary.Record) ([]byte, error) {
	if e.printer == nil {
		return nil, &Error{Channel: ChannelPDF, Message: "no printer", Cause: ErrNotConfigured}
	}
	html, err := e.renderer.HTML(rec)
	if err != nil {
		return nil, &Error{Channel: ChannelPDF, Message: "failed to render summary", Cause: err}
	}
	pdf, err := e.printer.PrintPDF(ctx, html)
	if err != nil {
		return nil, &Error{Channel: ChannelPDF, Message: "failed to print summary", Cause: err}
	}
	return pdf, nil
}

// Mailto builds the mailto link addressed to the contact e-mail.
func (e *Exporter) Mailto(rec summary.Record) (string, error) {
	if e.opts.ContactEmail == "" {
		return "", &Error{Channel: ChannelMailto, Message: "missing contact e-mail", Cause: ErrNotConfigured}
	}
	return MailtoLink(e.opts.ContactEmail, rendering.MailSubject(rec), rendering.MailBody(rec)), nil
}

// WhatsApp builds the deep link carrying the full requirements message.
func (e *Exporter) WhatsApp(rec summary.Record) (string, error) {
	if e.opts.WhatsAppPhone == "" {
		return "", &Error{Channel: ChannelWhatsApp, Message: "missing WhatsApp phone", Cause: ErrNotConfigured}
	}
	message, err := e.renderer.Message(rec)
	if err != nil {
		return "", &Error{Channel: ChannelWhatsApp, Message: "failed to render message", Cause: err}
	}
	return WhatsAppLink(e.opts.WhatsAppPhone, message), nil
}

// PDFFilename is the download name of the summary PDF.
func PDFFilename(rec summary.Record) string {
	if rec.Service.ID == "" {
		return "requisitos.pdf"
	}
	return fmt.Sprintf("requisitos-%s.pdf", rec.Service.ID)
}

// Bundle is every export of one summary. A failed channel leaves its field
// empty and records the failure in Notices.
type Bundle struct {
	MailtoURL   string             `json:"mailto_url,omitempty"`
	WhatsAppURL string             `json:"whatsapp_url,omitempty"`
	PDF         []byte             `json:"-"`
	PDFFilename string             `json:"pdf_filename,omitempty"`
	PDFSize     int                `json:"pdf_size"`
	Notices     map[Channel]string `json:"notices,omitempty"`
}

// Bundle runs all exports concurrently. Individual channel failures are
// reported in the bundle; an error is returned only when ctx is done.
func (e *Exporter) Bundle(ctx context.Context, rec summary.Record) (*Bundle, error) {
	var (
		mailto, whatsapp       string
		pdf                    []byte
		mailErr, waErr, pdfErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		mailto, mailErr = e.Mailto(rec)
		return nil
	})
	g.Go(func() error {
		whatsapp, waErr = e.WhatsApp(rec)
		return nil
	})
	if e.PDFEnabled() {
		g.Go(func() error {
			pdf, pdfErr = e.PDF(gctx, rec)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := &Bundle{
		MailtoURL:   mailto,
		WhatsAppURL: whatsapp,
		PDF:         pdf,
		PDFSize:     len(pdf),
		Notices:     map[Channel]string{},
	}
	if len(pdf) > 0 {
		b.PDFFilename = PDFFilename(rec)
	}
	for ch, err := range map[Channel]error{ChannelMailto: mailErr, ChannelWhatsApp: waErr, ChannelPDF: pdfErr} {
		if err != nil {
			b.Notices[ch] = err.Error()
		}
	}
	if len(b.Notices) == 0 {
		b.Notices = nil
	}
	return b, nil
}
