package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/Ebzefr/WebSecura/models"
)

func sampleReport() *models.ScanReport {
	return &models.ScanReport{
		URL:      "https://example.com",
		ScanTime: "2024-05-01T12:30:00",
		Results: []models.CheckResult{
			{Check: "HTTPS", Passed: true, Description: "Site uses HTTPS", Recommendation: "Keep HSTS enabled"},
			{Check: "CSP", Passed: false, Severity: models.SeverityHigh, Description: "No CSP header", Recommendation: "Add a Content-Security-Policy"},
			{Check: "X-Frame-Options", Passed: false, Severity: models.SeverityNone, Description: "Missing"},
			{Check: "Cookies", Passed: true, Severity: models.SeverityHigh, Description: "Secure cookies"},
		},
	}
}

func TestRenderSummary(t *testing.T) {
	tests := []struct {
		results []models.CheckResult
		icon    string
		label   string
	}{
		{nil, IconShieldOK, "Secure"},
		{[]models.CheckResult{{Passed: true}, {Passed: true}, {Passed: true}, {Passed: false}}, IconShieldWarn, "Needs Attention"},
		{[]models.CheckResult{{Passed: true}, {Passed: false}}, IconShieldDanger, "High Risk"},
	}
	for _, tt := range tests {
		got := RenderSummary(&models.ScanReport{Results: tt.results})
		if got.Icon != tt.icon || got.Label != tt.label {
			t.Errorf("RenderSummary(%d results) = %s/%s, want %s/%s", len(tt.results), got.Icon, got.Label, tt.icon, tt.label)
		}
	}
}

func TestRenderCheckCard(t *testing.T) {
	r := sampleReport()
	tests := []struct {
		idx      int
		status   string
		severity models.Severity
		frame    string
	}{
		{0, "Passed", "", FrameInfo},
		{1, "Failed", models.SeverityHigh, FrameAction},
		{2, "Failed", "", FrameAction},
		{3, "Passed", "", FrameInfo},
	}
	for _, tt := range tests {
		c := RenderCheckCard(r.Results[tt.idx])
		if c.Status != tt.status || c.Severity != tt.severity || c.Frame != tt.frame {
			t.Errorf("card %d = %s/%q/%s, want %s/%q/%s", tt.idx, c.Status, c.Severity, c.Frame, tt.status, tt.severity, tt.frame)
		}
	}
}

func TestRenderOverlayKeepsOrder(t *testing.T) {
	v := RenderOverlay(sampleReport())
	var names []string
	for _, c := range v.Cards {
		names = append(names, c.Check)
	}
	if got := strings.Join(names, ","); got != "HTTPS,CSP,X-Frame-Options,Cookies" {
		t.Errorf("card order = %s", got)
	}
	if len(v.Exports) != 3 || v.Exports[0].Format != "json" || v.Exports[1].Format != "text" {
		t.Errorf("exports = %+v", v.Exports)
	}
}

func TestWriteTerminal(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	WriteTerminal(&buf, RenderOverlay(sampleReport()))
	out := buf.String()
	for _, want := range []string{
		"Security Scan Complete: High Risk",
		"URL:     https://example.com",
		" 2. [FAIL] CSP (high)",
		"    Recommended action: Add a Content-Security-Policy",
		" 3. [FAIL] X-Frame-Options\n",
		"    Good practice: Keep HSTS enabled",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("terminal output missing %q:\n%s", want, out)
		}
	}
}
