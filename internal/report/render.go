package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	matchtype "github.com/alnah/go-matchtype"
	"github.com/alnah/go-matchtype/internal/yamlutil"
)

// Sentinel errors for rendering.
var (
	ErrNilResult     = errors.New("result cannot be nil")
	ErrNoPDFRenderer = errors.New("pdf output requires a PDF renderer")
)

// DefaultTitle is used when Options.Title is empty.
const DefaultTitle = "Keyword conversion report"

// Options controls rendering.
type Options struct {
	Report   bool        // text: append summary and rejected keywords
	Title    string      // markdown/html/pdf heading
	Style    string      // chroma style for highlighted blocks
	PageSize PageSize    // pdf paper size
	PDF      PDFRenderer // required for PDF
}

// Render renders res in format f.
func Render(ctx context.Context, res *matchtype.Result, f Format, opts Options) ([]byte, error) {
	if res == nil {
		return nil, ErrNilResult
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch f {
	case Text:
		return []byte(renderText(res, opts.Report)), nil
	case JSON:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(data, '\n'), nil
	case YAML:
		data, err := yamlutil.Marshal(res)
		if err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return data, nil
	case Markdown:
		return []byte(renderMarkdown(res, opts.Title)), nil
	case HTML:
		page, err := renderHTML(ctx, res, opts)
		if err != nil {
			return nil, err
		}
		return []byte(page), nil
	case PDF:
		if opts.PDF == nil {
			return nil, ErrNoPDFRenderer
		}
		page, err := renderHTML(ctx, res, opts)
		if err != nil {
			return nil, err
		}
		return opts.PDF.RenderPDF(ctx, page, PDFOptions{
			PageSize: opts.PageSize,
			Footer:   footerTemplate(res.RunID),
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// renderText writes one keyword per line, optionally followed by a summary.
func renderText(res *matchtype.Result, withReport bool) string {
	var b strings.Builder

	if res.NoKeywords {
		if withReport {
			b.WriteString("No keywords entered\n")
		}
		return b.String()
	}

	for _, k := range res.Keywords {
		b.WriteString(k)
		b.WriteByte('\n')
	}

	if !withReport {
		return b.String()
	}

	if len(res.Keywords) > 0 {
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "keywords: %d, duplicates: %d, invalid: %d\n",
		res.Summary.KeywordCount, res.Summary.DuplicateCount, res.Summary.InvalidCount)
	if w := res.Warning(); w != nil {
		fmt.Fprintf(&b, "warning: %v\n", w)
	}
	if invalid := res.Invalid(); len(invalid) > 0 {
		b.WriteString("rejected:\n")
		for _, v := range invalid {
			fmt.Fprintf(&b, "  %s: %s\n", v.Original, v.Message)
		}
	}
	return b.String()
}

// renderMarkdown builds the GFM document used for markdown, html and pdf output.
func renderMarkdown(res *matchtype.Result, title string) string {
	if title == "" {
		title = DefaultTitle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(title))

	if res.NoKeywords {
		b.WriteString("_No keywords entered._\n")
		return b.String()
	}

	b.WriteString("| Target | Keywords | Duplicates | Invalid |\n")
	b.WriteString("|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %s | %d | %d | %d |\n\n",
		res.Target, res.Summary.KeywordCount, res.Summary.DuplicateCount, res.Summary.InvalidCount)

	if w := res.Warning(); w != nil {
		fmt.Fprintf(&b, "> **Warning:** %s\n\n", escapeMarkdown(w.Error()))
	}

	b.WriteString("## Keywords\n\n")
	if len(res.Keywords) == 0 {
		b.WriteString("_No valid keywords._\n\n")
	} else {
		b.WriteString("```text\n")
		b.WriteString(res.Text())
		b.WriteString("\n```\n\n")
	}

	b.WriteString("## Validation\n\n")
	b.WriteString("| # | Original | Detected | Status |\n")
	b.WriteString("|---|---|---|---|\n")
	for i, v := range res.Validations {
		status := "ok"
		if !v.Valid {
			status = v.Message
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", i+1, escapeMarkdown(v.Original), v.Detected, escapeMarkdown(status))
	}

	if res.RunID != "" {
		fmt.Fprintf(&b, "\nRun `%s`\n", res.RunID)
	}
	return b.String()
}

// markdownSpecial holds characters that change meaning in inline Markdown or
// inside a GFM table cell.
const markdownSpecial = "\\`*_[]<>|&~!#"

// escapeMarkdown backslash-escapes Markdown punctuation so user text renders
// literally.
func escapeMarkdown(s string) string {
	if !strings.ContainsAny(s, markdownSpecial) {
		return s
	}
	var buf bytes.Buffer
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune(markdownSpecial, r) {
			buf.WriteByte('\\')
		}
		buf.WriteRune(r)
	}
	return buf.String()
}
