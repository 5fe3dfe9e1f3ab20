package report

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-matchtype/internal/fileutil"
)

// Sentinel errors for PDF rendering.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrUnknownPage    = errors.New("unknown page size")
)

// DefaultTimeout bounds page loading when the context has no deadline.
const DefaultTimeout = 30 * time.Second

const marginInches = 0.5

// PageSize names a paper size.
type PageSize string

// Paper sizes.
const (
	Letter PageSize = "letter"
	A4     PageSize = "a4"
	Legal  PageSize = "legal"
)

// dimensions returns width and height in inches.
func (s PageSize) dimensions() (width, height float64, err error) {
	switch PageSize(strings.ToLower(string(s))) {
	case Letter, "":
		return 8.5, 11, nil
	case A4:
		return 8.27, 11.69, nil
	case Legal:
		return 8.5, 14, nil
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownPage, string(s))
	}
}

// PDFOptions holds options for PDF generation.
type PDFOptions struct {
	PageSize PageSize
	Footer   string // Chrome footer template, empty for none
}

// PDFRenderer converts a standalone HTML page to PDF bytes.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, htmlContent string, opts PDFOptions) ([]byte, error)
	Close() error
}

// Compile-time interface check.
var _ PDFRenderer = (*RodRenderer)(nil)

// RodRenderer implements PDFRenderer with headless Chrome via go-rod.
// Rod downloads Chromium on first run if no browser is found.
// The browser is started lazily and reused until Close.
type RodRenderer struct {
	timeout  time.Duration
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewRodRenderer creates a RodRenderer. A non-positive timeout uses DefaultTimeout.
func NewRodRenderer(timeout time.Duration) *RodRenderer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *RodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// Chrome's sandbox does not work in most containers.
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		r.killBrowser()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *RodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.killBrowser()
	return err
}

// killBrowser terminates the Chrome process tree and removes its profile dir.
func (r *RodRenderer) killBrowser() {
	if r.launcher == nil {
		return
	}
	if pid := r.launcher.PID(); pid > 0 {
		killProcessGroup(pid)
	}
	r.launcher.Kill()
	r.launcher.Cleanup()
	r.launcher = nil
}

// RenderPDF writes htmlContent to a temp file, opens it in headless Chrome and
// prints it to PDF.
func (r *RodRenderer) RenderPDF(ctx context.Context, htmlContent string, opts PDFOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	printOpts, err := buildPrintOptions(opts)
	if err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + path})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(printOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// buildPrintOptions constructs proto.PagePrintToPDF for the page size and footer.
func buildPrintOptions(opts PDFOptions) (*proto.PagePrintToPDF, error) {
	width, height, err := opts.PageSize.dimensions()
	if err != nil {
		return nil, err
	}

	marginBottom := marginInches
	if opts.Footer != "" {
		marginBottom = 0.75
	}

	p := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginBottom),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}

	if opts.Footer != "" {
		p.DisplayHeaderFooter = true
		p.HeaderTemplate = "<span></span>"
		p.FooterTemplate = opts.Footer
	}
	return p, nil
}

// footerTemplate builds Chrome's native footer: page numbers and the run id.
func footerTemplate(runID string) string {
	content := `<span class="pageNumber"></span>/<span class="totalPages"></span>`
	if runID != "" {
		content += " - run " + html.EscapeString(runID)
	}
	return `<div style="font-size: 9px; font-family: sans-serif; color: #888; width: 100%; text-align: right; padding: 0 0.5in;">` + content + `</div>`
}

// BrowserPath returns the Chrome binary rod would use, or false if none is
// installed. ROD_BROWSER_BIN takes precedence.
func BrowserPath() (string, bool) {
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		return bin, fileutil.FileExists(bin)
	}
	return launcher.LookPath()
}

func floatPtr(v float64) *float64 {
	return &v
}
