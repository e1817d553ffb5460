package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ebzefr/WebSecura/models"
)

// Format is an export file type.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatText, FormatPDF}

// ErrNoData is returned when there is no report to export.
var ErrNoData = errors.New("No scan data available to export")

// DefaultTitle heads the text and PDF exports.
const DefaultTitle = "WebSecura Security Scan Report"

// Output is one encoded file.
type Output struct {
	Format      Format
	Ext         string
	ContentType string
	Data        []byte
	// Pages is set by the PDF encoder.
	Pages int
	// FellBack is true when the PDF layout failed and text was produced.
	FellBack bool
}

// Encoder turns a report into a downloadable file.
type Encoder interface {
	Format() Format
	Encode(r *models.ScanReport) (Output, error)
}

// ParseFormat accepts a format name; "txt" is an alias for text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "text", "txt":
		return FormatText, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported export format: %q (use json, text or pdf)", s)
}

// EncoderFor returns the encoder of f.
func EncoderFor(f Format) (Encoder, error) {
	switch f {
	case FormatJSON:
		return JSONEncoder{}, nil
	case FormatText:
		return TextEncoder{}, nil
	case FormatPDF:
		return &PDFEncoder{}, nil
	}
	return nil, fmt.Errorf("unsupported export format: %s", f)
}

// Filename is <product>-scan-<timestamp>.<ext> with a sortable UTC
// timestamp at seconds precision.
func Filename(product, ext string, capturedAt time.Time) string {
	if product == "" {
		product = "websecura"
	}
	return fmt.Sprintf("%s-scan-%s.%s", product, capturedAt.UTC().Format("2006-01-02T15-04-05"), ext)
}
