package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/Ebzefr/WebSecura/logger"
	"github.com/Ebzefr/WebSecura/models"
)

// A4 portrait layout, millimetres.
const (
	pageMargin   = 15.0
	breakY       = 260.0 // a block starting below this goes to a new page
	bodyBottom   = 280.0
	footerY      = 287.0
	lineHeight   = 5.0
	contentWidth = 210.0 - 2*pageMargin
)

type rgb struct{ r, g, b int }

var (
	colorPass   = rgb{34, 197, 94}
	colorFail   = rgb{239, 68, 68}
	colorMedium = rgb{234, 179, 8}
	colorText   = rgb{30, 41, 59}
	colorMuted  = rgb{100, 116, 139}
	colorHeader = rgb{15, 23, 42}
)

func severityRGB(s models.Severity) rgb {
	switch s {
	case models.SeverityHigh:
		return colorFail
	case models.SeverityMedium:
		return colorMedium
	default:
		return colorPass
	}
}

// PDFEncoder lays the report out on A4 pages with a "Page i of N" footer.
// Layout is two passes: content first, which fixes the page count, then
// the footers. If layout fails the text export is returned instead.
type PDFEncoder struct {
	Title string
	// NewDocument overrides document construction.
	NewDocument func() *fpdf.Fpdf
}

func (*PDFEncoder) Format() Format { return FormatPDF }

func (e *PDFEncoder) Encode(r *models.ScanReport) (Output, error) {
	if r == nil {
		return Output{}, ErrNoData
	}
	out, err := e.layout(r)
	if err == nil {
		return out, nil
	}
	logger.Warn("PDF layout failed, falling back to text export: %v", err)
	text, terr := TextEncoder{Title: e.Title}.Encode(r)
	if terr != nil {
		return Output{}, terr
	}
	text.FellBack = true
	return text, nil
}

func (e *PDFEncoder) newDocument() *fpdf.Fpdf {
	if e.NewDocument != nil {
		return e.NewDocument()
	}
	return fpdf.New("P", "mm", "A4", "")
}

func (e *PDFEncoder) layout(r *models.ScanReport) (out Output, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("pdf layout panicked: %v", p)
		}
	}()

	pdf := e.newDocument()
	if pdf == nil {
		return Output{}, fmt.Errorf("pdf support unavailable")
	}
	title := e.Title
	if title == "" {
		title = DefaultTitle
	}
	l := &pdfLayout{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetTitle(title, true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	l.header(title, r)
	for i, c := range r.Results {
		l.check(i+1, c)
	}

	pages := pdf.PageCount()
	l.stampFooters(pages)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Output{}, fmt.Errorf("writing pdf: %w", err)
	}
	return Output{Format: FormatPDF, Ext: "pdf", ContentType: "application/pdf", Data: buf.Bytes(), Pages: pages}, nil
}

type pdfLayout struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (l *pdfLayout) color(c rgb) { l.pdf.SetTextColor(c.r, c.g, c.b) }

func (l *pdfLayout) line(style string, size float64, c rgb, text string) {
	l.pdf.SetFont("Helvetica", style, size)
	l.color(c)
	l.pdf.MultiCell(contentWidth, lineHeight+1, l.tr(text), "", "L", false)
}

func (l *pdfLayout) header(title string, r *models.ScanReport) {
	s := r.Summary()
	l.pdf.SetFont("Helvetica", "B", 18)
	l.color(colorHeader)
	l.pdf.CellFormat(contentWidth, 10, l.tr(title), "", 1, "L", false, 0, "")
	l.pdf.SetDrawColor(colorMuted.r, colorMuted.g, colorMuted.b)
	l.pdf.Line(pageMargin, l.pdf.GetY(), pageMargin+contentWidth, l.pdf.GetY())
	l.pdf.Ln(4)

	l.line("", 11, colorText, "URL: "+r.URL)
	l.line("", 11, colorText, "Scan Date: "+models.DisplayTime(r.ScanTime))
	l.line("", 11, colorText, fmt.Sprintf("Total Checks: %d", s.Total))
	l.line("B", 11, colorPass, fmt.Sprintf("Passed: %d", s.Passed))
	l.line("B", 11, colorFail, fmt.Sprintf("Failed: %d", s.Failed))
	l.pdf.Ln(4)
}

// blockHeight estimates the height of a check block for the page break.
func (l *pdfLayout) blockHeight(c models.CheckResult) float64 {
	l.pdf.SetFont("Helvetica", "", 10)
	h := 2*(lineHeight+2) + 4
	for _, text := range []string{c.Description, c.Details, c.Recommendation} {
		if text != "" {
			h += float64(len(l.pdf.SplitText(l.tr(text), contentWidth-25))) * lineHeight
		}
	}
	return h
}

// room starts a new page when h more millimetres would cross the body
// bottom.
func (l *pdfLayout) room(h float64) {
	if l.pdf.GetY()+h > bodyBottom {
		l.pdf.AddPage()
	}
}

func (l *pdfLayout) check(n int, c models.CheckResult) {
	y := l.pdf.GetY()
	// A block taller than a page is split by field, so only move it when it
	// starts low.
	h := l.blockHeight(c)
	if y > breakY || (h <= bodyBottom-pageMargin && y+h > bodyBottom) {
		l.pdf.AddPage()
	}

	l.pdf.SetFont("Helvetica", "B", 12)
	l.color(colorHeader)
	l.pdf.CellFormat(contentWidth, lineHeight+2, l.tr(fmt.Sprintf("%d. %s", n, c.Check)), "", 1, "L", false, 0, "")

	l.pdf.SetFont("Helvetica", "B", 10)
	if c.Passed {
		l.color(colorPass)
	} else {
		l.color(colorFail)
	}
	l.pdf.CellFormat(30, lineHeight+2, statusText(c.Passed), "", 0, "L", false, 0, "")
	if c.ShowsSeverity() {
		l.color(severityRGB(c.Severity))
		l.pdf.CellFormat(50, lineHeight+2, "Severity: "+strings.ToUpper(string(c.Severity)), "", 0, "L", false, 0, "")
	}
	l.pdf.Ln(lineHeight + 2)

	l.field("Description", c.Description)
	l.field("Details", c.Details)
	l.field("Recommendation", c.Recommendation)
	l.pdf.Ln(4)
}

func (l *pdfLayout) field(label, text string) {
	if text == "" {
		return
	}
	l.pdf.SetFont("Helvetica", "", 10)
	lines := l.pdf.SplitText(l.tr(text), contentWidth-25)
	for i, ln := range lines {
		l.room(lineHeight)
		if i == 0 {
			l.pdf.SetFont("Helvetica", "B", 10)
			l.color(colorMuted)
			l.pdf.CellFormat(25, lineHeight, label+":", "", 0, "L", false, 0, "")
		} else {
			l.pdf.SetX(pageMargin + 25)
		}
		l.pdf.SetFont("Helvetica", "", 10)
		l.color(colorText)
		l.pdf.CellFormat(contentWidth-25, lineHeight, ln, "", 1, "L", false, 0, "")
	}
}

func (l *pdfLayout) stampFooters(pages int) {
	for i := 1; i <= pages; i++ {
		l.pdf.SetPage(i)
		l.pdf.SetXY(pageMargin, footerY)
		l.pdf.SetFont("Helvetica", "I", 8)
		l.color(colorMuted)
		l.pdf.CellFormat(contentWidth, 5, fmt.Sprintf("Page %d of %d", i, pages), "", 0, "C", false, 0, "")
	}
}
