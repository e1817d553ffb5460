package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Ebzefr/WebSecura/models"
)

var (
	passColor   = color.New(color.FgGreen, color.Bold)
	failColor   = color.New(color.FgRed, color.Bold)
	warnColor   = color.New(color.FgYellow, color.Bold)
	headColor   = color.New(color.FgCyan, color.Bold)
	dimColor    = color.New(color.FgHiBlack)
	actionColor = color.New(color.FgYellow)
	infoColor   = color.New(color.FgBlue)
)

func tierColor(t models.RiskTier) *color.Color {
	switch t {
	case models.TierSecure:
		return passColor
	case models.TierNeedsAttention:
		return warnColor
	default:
		return failColor
	}
}

// SeverityColor is high=red, medium=yellow, low and none=green.
func SeverityColor(s models.Severity) *color.Color {
	switch s {
	case models.SeverityHigh:
		return failColor
	case models.SeverityMedium:
		return warnColor
	default:
		return passColor
	}
}

// WriteTerminal prints v for a terminal. Colours follow color.NoColor.
func WriteTerminal(w io.Writer, v View) {
	title := "Security Scan Complete"
	if v.Variant == VariantModal {
		title = "Scan Details"
	}
	headColor.Fprintf(w, "%s: ", title)
	tierColor(v.Summary.Tier).Fprintln(w, v.Summary.Label)
	fmt.Fprintf(w, "URL:     %s\n", v.URL)
	fmt.Fprintf(w, "Scanned: %s\n", v.ScannedAt)
	fmt.Fprintf(w, "Total: %d  ", v.Summary.Total)
	passColor.Fprintf(w, "Passed: %d  ", v.Summary.Passed)
	failColor.Fprintf(w, "Failed: %d\n", v.Summary.Failed)
	fmt.Fprintln(w, strings.Repeat("-", 60))

	for i, c := range v.Cards {
		fmt.Fprintf(w, "%2d. ", i+1)
		if c.Passed {
			passColor.Fprint(w, "[PASS]")
		} else {
			failColor.Fprint(w, "[FAIL]")
		}
		fmt.Fprintf(w, " %s", c.Check)
		if c.Severity != "" {
			fmt.Fprint(w, " ")
			SeverityColor(c.Severity).Fprintf(w, "(%s)", c.Severity)
		}
		fmt.Fprintln(w)
		if c.Description != "" {
			fmt.Fprintf(w, "    %s\n", c.Description)
		}
		if c.Details != "" {
			dimColor.Fprintf(w, "    %s\n", c.Details)
		}
		if c.Recommendation != "" {
			frame := infoColor
			if c.Frame == FrameAction {
				frame = actionColor
			}
			frame.Fprintf(w, "    %s: %s\n", c.RecommendationTitle(), c.Recommendation)
		}
	}
}
