package report

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	matchtype "github.com/alnah/go-matchtype"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultStyle is the chroma style used when Options.Style is empty.
const DefaultStyle = "github"

var (
	//go:embed assets/report.css
	baseCSS string

	//go:embed assets/report.html
	pageSource string

	pageTemplate = template.Must(template.New("report").Parse(pageSource))
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)

	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// sanitizer allows the markup goldmark produces for a report, including
// chroma class names, and nothing else.
func sanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("class").Matching(regexp.MustCompile(`^[\w\- ]+$`)).OnElements("pre", "code", "span")
		policy = p
	})
	return policy
}

type page struct {
	Title string
	RunID string
	CSS   template.CSS
	Body  template.HTML
}

// renderHTML converts the markdown report into a standalone HTML5 page.
// Supports context cancellation via goroutine + select since goldmark does
// not take a context.
func renderHTML(ctx context.Context, res *matchtype.Result, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	source := renderMarkdown(res, title)

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var body bytes.Buffer
		if err := markdown.Convert([]byte(source), &body); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}

		css, err := Stylesheet(opts.Style)
		if err != nil {
			done <- result{err: err}
			return
		}

		// #nosec G203 -- CSS is embedded or generated by chroma, body is sanitized
		var out bytes.Buffer
		err = pageTemplate.Execute(&out, page{
			Title: title,
			RunID: res.RunID,
			CSS:   template.CSS(css),
			Body:  template.HTML(sanitizer().SanitizeBytes(body.Bytes())),
		})
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: out.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// Stylesheet returns the report stylesheet followed by the chroma classes
// for style. Unknown style names fall back to chroma's default style.
func Stylesheet(style string) (string, error) {
	if style == "" {
		style = DefaultStyle
	}

	var buf bytes.Buffer
	buf.WriteString(baseCSS)
	buf.WriteByte('\n')

	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(style)); err != nil {
		return "", fmt.Errorf("%w: writing highlight styles: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}
