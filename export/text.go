package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Ebzefr/WebSecura/models"
)

// TextEncoder writes the plain text report. The only timestamp in the
// output is the report's own, so the same report always encodes the same.
type TextEncoder struct {
	Title string
}

func (TextEncoder) Format() Format { return FormatText }

func (e TextEncoder) Encode(r *models.ScanReport) (Output, error) {
	if r == nil {
		return Output{}, ErrNoData
	}
	title := e.Title
	if title == "" {
		title = DefaultTitle
	}
	s := r.Summary()

	var b bytes.Buffer
	fmt.Fprintf(&b, "%s\n", title)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", len(title)))
	fmt.Fprintf(&b, "URL: %s\n", r.URL)
	fmt.Fprintf(&b, "Scan Date: %s\n", models.DisplayTime(r.ScanTime))
	fmt.Fprintf(&b, "Total Checks: %d\n", s.Total)
	fmt.Fprintf(&b, "Passed: %d\n", s.Passed)
	fmt.Fprintf(&b, "Failed: %d\n", s.Failed)

	for i, c := range r.Results {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, c.Check)
		fmt.Fprintf(&b, "   Status: %s\n", statusText(c.Passed))
		if c.ShowsSeverity() {
			fmt.Fprintf(&b, "   Severity: %s\n", strings.ToUpper(string(c.Severity)))
		}
		fmt.Fprintf(&b, "   Description: %s\n", c.Description)
		if c.Details != "" {
			fmt.Fprintf(&b, "   Details: %s\n", c.Details)
		}
		if c.Recommendation != "" {
			fmt.Fprintf(&b, "   Recommendation: %s\n", c.Recommendation)
		}
	}
	return Output{Format: FormatText, Ext: "txt", ContentType: "text/plain; charset=utf-8", Data: b.Bytes()}, nil
}

func statusText(passed bool) string {
	if passed {
		return "PASSED"
	}
	return "FAILED"
}
