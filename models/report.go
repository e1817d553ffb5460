package models

import (
	"strings"
	"time"
)

// Severity of a failed check as reported by the backend.
type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// RiskTier is the coarse bucket derived from the pass/fail ratio.
type RiskTier string

const (
	TierSecure         RiskTier = "secure"
	TierNeedsAttention RiskTier = "needs_attention"
	TierHighRisk       RiskTier = "high_risk"
)

// HighRiskRatio is the failed/total share at or above which a report is High Risk.
const HighRiskRatio = 0.5

// CheckResult is one security check outcome.
type CheckResult struct {
	Check          string   `json:"check" example:"HTTPS"`                                       // Display name of the check.
	Passed         bool     `json:"passed" example:"true"`                                       // Whether the target passed.
	Severity       Severity `json:"severity,omitempty" example:"high" enum:"none,low,medium,high"` // Only meaningful when Passed is false.
	Description    string   `json:"description"`
	Details        string   `json:"details,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// ShowsSeverity reports whether a severity badge applies to this check.
func (c CheckResult) ShowsSeverity() bool {
	return !c.Passed && c.Severity != "" && c.Severity != SeverityNone
}

// ScanReport is one completed scan. ScanTime is kept exactly as the server
// sent it so a JSON round trip reproduces the report.
type ScanReport struct {
	URL      string        `json:"url" example:"https://example.com"`
	ScanTime string        `json:"scan_time" example:"2024-05-01T12:30:00.123456"`
	Results  []CheckResult `json:"results"`
}

// Summary is the derived, never stored, view of a report's results.
type Summary struct {
	Total  int      `json:"total_checks"`
	Passed int      `json:"passed_checks"`
	Failed int      `json:"failed_checks"`
	Tier   RiskTier `json:"risk_tier"`
}

// Summarize counts results and assigns the risk tier. A report with no
// checks has no failures and is therefore Secure; exactly half failing is
// High Risk.
func Summarize(results []CheckResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Passed {
			s.Passed++
		}
	}
	s.Failed = s.Total - s.Passed
	s.Tier = TierFor(s.Total, s.Failed)
	return s
}

// TierFor maps failed-of-total to a risk tier.
func TierFor(total, failed int) RiskTier {
	switch {
	case failed <= 0:
		return TierSecure
	case float64(failed) >= float64(total)*HighRiskRatio:
		return TierHighRisk
	default:
		return TierNeedsAttention
	}
}

// Summary derives the report summary.
func (r *ScanReport) Summary() Summary {
	return Summarize(r.Results)
}

var scanTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ScannedAt parses ScanTime. Timestamps without a zone (Python isoformat)
// are read as UTC.
func (r *ScanReport) ScannedAt() (time.Time, bool) {
	return ParseTimestamp(r.ScanTime)
}

// ParseTimestamp accepts the timestamp shapes the backend is known to emit.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range scanTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayTime renders a backend timestamp for humans, falling back to the
// raw value when it cannot be parsed.
func DisplayTime(s string) string {
	if t, ok := ParseTimestamp(s); ok {
		return t.Format("2006-01-02 15:04:05")
	}
	return s
}
