package render

import (
	"github.com/Ebzefr/WebSecura/models"
)

const (
	IconShieldOK     = "shield-ok"
	IconShieldWarn   = "shield-warn"
	IconShieldDanger = "shield-danger"
)

// Variant says where a report view is mounted.
type Variant string

const (
	// VariantOverlay is the live scan results overlay.
	VariantOverlay Variant = "overlay"
	// VariantModal is the history detail modal.
	VariantModal Variant = "modal"
)

// Element ids and selectors the mounted views use.
const (
	AnchorID       = "results-anchor"
	OverlayID      = "resultsOverlay"
	ModalID        = "historyModal"
	overlayClose   = ".results-close"
	modalClose     = ".modal-close"
	backdrop       = ".results-backdrop"
	DismissKey     = "Escape"
	FrameInfo      = "info"
	FrameAction    = "action"
	statusPassed   = "passed"
	statusFailed   = "failed"
	tierClassOK    = "success"
	tierClassWarn  = "warning"
	tierClassAlarm = "danger"
)

// SummaryView is the header of a report view.
type SummaryView struct {
	Total  int
	Passed int
	Failed int
	Tier   models.RiskTier
	Icon   string
	Label  string
	// Class is the colour class of the status icon.
	Class string
}

// Card is one check in the results grid.
type Card struct {
	Check       string
	Passed      bool
	Status      string
	StatusClass string
	// Severity is empty unless the badge applies.
	Severity       models.Severity
	Description    string
	Details        string
	Recommendation string
	// Frame is FrameInfo for passed checks and FrameAction for failed ones.
	Frame string
}

// RecommendationTitle heads the recommendation block.
func (c Card) RecommendationTitle() string {
	if c.Frame == FrameAction {
		return "Recommended action"
	}
	return "Good practice"
}

// ExportTrigger is a download control in the view.
type ExportTrigger struct {
	Format string
	Label  string
	Href   string
}

// View is a fully derived report ready for a template or the terminal.
type View struct {
	Variant   Variant
	URL       string
	ScannedAt string
	Summary   SummaryView
	Cards     []Card
	Exports   []ExportTrigger
	// CloseHref is where the close control leads when scripting is off.
	CloseHref string
}

// ElementID is the id of the mounted root element.
func (v View) ElementID() string {
	if v.Variant == VariantModal {
		return ModalID
	}
	return OverlayID
}

// CloseClass is the class of the close control, without the dot.
func (v View) CloseClass() string {
	if v.Variant == VariantModal {
		return modalClose[1:]
	}
	return overlayClose[1:]
}

// BackdropClass is the class of the element behind the content. A click on
// it dismisses the view.
func (v View) BackdropClass() string { return backdrop[1:] }

// DismissKey is the key that dismisses the view.
func (v View) DismissKey() string { return DismissKey }

var tierDisplay = map[models.RiskTier]struct{ icon, label, class string }{
	models.TierSecure:         {IconShieldOK, "Secure", tierClassOK},
	models.TierNeedsAttention: {IconShieldWarn, "Needs Attention", tierClassWarn},
	models.TierHighRisk:       {IconShieldDanger, "High Risk", tierClassAlarm},
}

// RenderSummary derives the summary header of r.
func RenderSummary(r *models.ScanReport) SummaryView {
	s := r.Summary()
	d := tierDisplay[s.Tier]
	return SummaryView{Total: s.Total, Passed: s.Passed, Failed: s.Failed, Tier: s.Tier, Icon: d.icon, Label: d.label, Class: d.class}
}

// RenderCheckCard maps one check to its card.
func RenderCheckCard(c models.CheckResult) Card {
	card := Card{
		Check:          c.Check,
		Passed:         c.Passed,
		Description:    c.Description,
		Details:        c.Details,
		Recommendation: c.Recommendation,
	}
	if c.Passed {
		card.Status, card.StatusClass, card.Frame = "Passed", statusPassed, FrameInfo
	} else {
		card.Status, card.StatusClass, card.Frame = "Failed", statusFailed, FrameAction
	}
	if c.ShowsSeverity() {
		card.Severity = c.Severity
	}
	return card
}

// DefaultExports are the download controls of a live scan.
var DefaultExports = []ExportTrigger{
	{Format: "json", Label: "Export JSON", Href: "/export/json"},
	{Format: "text", Label: "Export Text", Href: "/export/text"},
	{Format: "pdf", Label: "Export PDF", Href: "/export/pdf"},
}

func renderView(r *models.ScanReport, variant Variant, closeHref string) View {
	v := View{
		Variant:   variant,
		URL:       r.URL,
		ScannedAt: models.DisplayTime(r.ScanTime),
		Summary:   RenderSummary(r),
		Cards:     make([]Card, 0, len(r.Results)),
		Exports:   append([]ExportTrigger(nil), DefaultExports...),
		CloseHref: closeHref,
	}
	for _, c := range r.Results {
		v.Cards = append(v.Cards, RenderCheckCard(c))
	}
	return v
}

// RenderOverlay builds the live scan results view. Cards keep the backend
// order.
func RenderOverlay(r *models.ScanReport) View {
	return renderView(r, VariantOverlay, "/")
}

// RenderModal builds the history detail view.
func RenderModal(r *models.ScanReport) View {
	return renderView(r, VariantModal, "/history")
}
