package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

// Page geometry in points, A4.
const (
	leftMargin   = 50.0
	topMargin    = 50.0
	bottomMargin = 50.0
	bulletIndent = 15.0
	lineLeading  = 5.0
)

// pdfLayout owns the vertical cursor and the page-break rule: a line
// advances the cursor by its font size plus fixed leading, and when
// the cursor would cross the bottom margin a new page starts with the
// cursor reset to the top margin.
type pdfLayout struct {
	doc        *fpdf.Fpdf
	y          float64
	pageHeight float64
}

type lineOpts struct {
	bold       bool
	size       float64
	indent     float64
	spaceAfter float64
}

func newPDFLayout() *pdfLayout {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	_, pageHeight := doc.GetPageSize()

	return &pdfLayout{
		doc:        doc,
		y:          topMargin,
		pageHeight: pageHeight,
	}
}

// line draws one line of text at the cursor, breaking the page first
// if the line would land below the bottom margin.
func (l *pdfLayout) line(text string, opts lineOpts) {
	if opts.size == 0 {
		opts.size = 12
	}

	if l.y+opts.size > l.pageHeight-bottomMargin {
		l.doc.AddPage()
		l.y = topMargin
	}

	style := ""
	if opts.bold {
		style = "B"
	}
	l.doc.SetFont("Helvetica", style, opts.size)
	l.doc.Text(leftMargin+opts.indent, l.y+opts.size, text)

	l.y += opts.size + lineLeading + opts.spaceAfter
}

// space advances the cursor without drawing.
func (l *pdfLayout) space(points float64) {
	l.y += points
}

func (l *pdfLayout) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := l.doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
