package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Ebzefr/WebSecura/database"
	"github.com/Ebzefr/WebSecura/models"
)

func sampleReport() *models.ScanReport {
	return &models.ScanReport{
		URL:      "https://example.com",
		ScanTime: "2024-05-01T12:30:00.123456",
		Results: []models.CheckResult{
			{Check: "HTTPS", Passed: true, Description: "Site is served over HTTPS"},
			{Check: "CSP", Passed: false, Severity: models.SeverityHigh, Description: "No Content-Security-Policy header", Details: "Header missing on /", Recommendation: "Add a restrictive CSP"},
			{Check: "Server banner", Passed: false, Severity: models.SeverityNone, Description: "Server header reveals nginx/1.18 <version>"},
		},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	r := sampleReport()
	out, err := JSONEncoder{}.Encode(r)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.HasPrefix(out.Data, []byte("{\n  \"url\"")) {
		t.Errorf("output is not two-space indented:\n%s", out.Data)
	}
	var back models.ScanReport
	if err := json.Unmarshal(out.Data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(&back, r) {
		t.Errorf("round trip = %+v, want %+v", back, *r)
	}
	if !bytes.Contains(out.Data, []byte("<version>")) {
		t.Error("JSON output escaped HTML characters")
	}
}

func TestTextEncoder(t *testing.T) {
	out, err := TextEncoder{}.Encode(sampleReport())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `WebSecura Security Scan Report
==============================

URL: https://example.com
Scan Date: 2024-05-01 12:30:00
Total Checks: 3
Passed: 1
Failed: 2

1. HTTPS
   Status: PASSED
   Description: Site is served over HTTPS

2. CSP
   Status: FAILED
   Severity: HIGH
   Description: No Content-Security-Policy header
   Details: Header missing on /
   Recommendation: Add a restrictive CSP

3. Server banner
   Status: FAILED
   Description: Server header reveals nginx/1.18 <version>
`
	if got := string(out.Data); got != want {
		t.Errorf("text output =\n%s\nwant\n%s", got, want)
	}
	again, _ := TextEncoder{}.Encode(sampleReport())
	if !bytes.Equal(out.Data, again.Data) {
		t.Error("text output differs between runs")
	}
}

func TestEncodersRejectMissingReport(t *testing.T) {
	for _, f := range Formats {
		enc, err := EncoderFor(f)
		if err != nil {
			t.Fatalf("EncoderFor(%s): %v", f, err)
		}
		if _, err := enc.Encode(nil); !errors.Is(err, ErrNoData) {
			t.Errorf("%s Encode(nil) = %v, want ErrNoData", f, err)
		}
	}
}

func TestExportWithoutReportWritesNothing(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, "websecura", nil)
	if _, err := e.Export(nil, FormatJSON); !errors.Is(err, ErrNoData) {
		t.Fatalf("Export(nil) = %v, want ErrNoData", err)
	}
	if ErrNoData.Error() != "No scan data available to export" {
		t.Errorf("message = %q", ErrNoData.Error())
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("files written: %v", entries)
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2024, 5, 1, 14, 3, 9, 500, time.FixedZone("CEST", 2*3600))
	if got := Filename("websecura", "json", at); got != "websecura-scan-2024-05-01T12-03-09.json" {
		t.Errorf("Filename = %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "TXT": FormatText, " text ": FormatText, "pdf": FormatPDF} {
		if got, err := ParseFormat(in); err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("csv"); err == nil {
		t.Error("ParseFormat accepted csv")
	}
}

func uncompressed() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	return pdf
}

func TestPDFFooterOnEveryPage(t *testing.T) {
	r := &models.ScanReport{URL: "https://example.com", ScanTime: "2024-05-01T12:30:00"}
	for i := 0; i < 40; i++ {
		r.Results = append(r.Results, models.CheckResult{
			Check:          fmt.Sprintf("Check %d", i+1),
			Passed:         i%3 != 0,
			Severity:       models.SeverityMedium,
			Description:    strings.Repeat("A reasonably long description. ", 4),
			Recommendation: "Fix it",
		})
	}
	out, err := (&PDFEncoder{NewDocument: uncompressed}).Encode(r)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if out.FellBack || out.Ext != "pdf" || !bytes.HasPrefix(out.Data, []byte("%PDF-")) {
		t.Fatalf("output = %s fellBack=%v", out.Ext, out.FellBack)
	}
	if out.Pages < 2 {
		t.Fatalf("pages = %d, want a multi-page document", out.Pages)
	}
	for i := 1; i <= out.Pages; i++ {
		if footer := fmt.Sprintf("(Page %d of %d)", i, out.Pages); !bytes.Contains(out.Data, []byte(footer)) {
			t.Errorf("missing footer %s", footer)
		}
	}
}

func TestPDFSplitsCheckTallerThanPage(t *testing.T) {
	var details strings.Builder
	for i := 1; i <= 1500; i++ {
		fmt.Fprintf(&details, "seg%04d ", i)
	}
	c := models.CheckResult{
		Check:          "Content Security Policy",
		Severity:       models.SeverityHigh,
		Description:    "No policy header",
		Details:        details.String(),
		Recommendation: "Send a Content-Security-Policy header",
	}

	pdf := uncompressed()
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	l := &pdfLayout{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	if h := l.blockHeight(c); h <= bodyBottom-pageMargin {
		t.Fatalf("block height %.1f fits on one page", h)
	}
	l.check(1, c)
	if y := pdf.GetY(); y > bodyBottom {
		t.Errorf("final y = %.1f, past the body bottom %.1f", y, bodyBottom)
	}
	if n := pdf.PageCount(); n < 3 {
		t.Errorf("pages = %d, want the block spread over at least 3", n)
	}

	r := &models.ScanReport{URL: "https://example.com", ScanTime: "2024-05-01T12:30:00", Results: []models.CheckResult{c}}
	out, err := (&PDFEncoder{NewDocument: uncompressed}).Encode(r)
	if err != nil || out.FellBack {
		t.Fatalf("Encode: %v fellBack=%v", err, out.FellBack)
	}
	for _, tok := range []string{"seg0001", "seg0750", "seg1500", "Send a Content-Security-Policy header"} {
		if !bytes.Contains(out.Data, []byte(tok)) {
			t.Errorf("pdf missing %q", tok)
		}
	}
	for i := 1; i <= out.Pages; i++ {
		if footer := fmt.Sprintf("(Page %d of %d)", i, out.Pages); !bytes.Contains(out.Data, []byte(footer)) {
			t.Errorf("missing footer %s", footer)
		}
	}
}

func TestPDFFallsBackToText(t *testing.T) {
	broken := func() *fpdf.Fpdf {
		pdf := fpdf.New("P", "mm", "A4", "")
		pdf.SetErrorf("layout engine unavailable")
		return pdf
	}
	for name, enc := range map[string]*PDFEncoder{
		"errored document": {NewDocument: broken},
		"no document":      {NewDocument: func() *fpdf.Fpdf { return nil }},
	} {
		t.Run(name, func(t *testing.T) {
			out, err := enc.Encode(sampleReport())
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			text, _ := TextEncoder{}.Encode(sampleReport())
			if !out.FellBack || out.Ext != "txt" || !bytes.Equal(out.Data, text.Data) {
				t.Errorf("fallback output = %s fellBack=%v", out.Ext, out.FellBack)
			}
		})
	}
}

type memRecorder struct{ recs []database.ExportRecord }

func (m *memRecorder) Record(rec database.ExportRecord) (int64, error) {
	m.recs = append(m.recs, rec)
	return int64(len(m.recs)), nil
}

func TestExporterWritesAndRecords(t *testing.T) {
	dir := t.TempDir()
	log := &memRecorder{}
	e := NewExporter(dir, "websecura", log)
	e.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	path, err := e.Export(sampleReport(), FormatText)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filepath.Base(path) != "websecura-scan-2024-05-01T12-00-00.txt" {
		t.Errorf("path = %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || !bytes.HasPrefix(data, []byte(DefaultTitle)) {
		t.Errorf("file contents = %q, %v", data, err)
	}
	if len(log.recs) != 1 || log.recs[0].Format != "text" || log.recs[0].ReportURL != "https://example.com" {
		t.Errorf("records = %+v", log.recs)
	}
}
