package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/Ebzefr/WebSecura/core"
	"github.com/Ebzefr/WebSecura/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Templates.Page.
const (
	PageScanner  = "scanner"
	PageHistory  = "history"
	PageConfirm  = "confirm"
	PageLogin    = "login"
	PageRegister = "register"
	PageContact  = "contact"
	PageProfile  = "profile"
	PageAdmin    = "admin"
	PageMessage  = "message"
)

var pageNames = []string{PageScanner, PageHistory, PageConfirm, PageLogin, PageRegister, PageContact, PageProfile, PageAdmin, PageMessage}

// ContactSubjects are the choices of the contact form.
var ContactSubjects = []string{"General Inquiry", "Technical Support", "Security Report", "Feedback"}

// PageData is what every page template receives.
type PageData struct {
	Title   string
	Product string
	Session *models.Session
	Notices []core.Notice
	Error   string
	Flash   string
	Body    interface{}
}

// ScannerBody is the body of the scanner page.
type ScannerBody struct {
	Input     string
	HasReport bool
	ReportURL string
}

// ConfirmBody is the body of the confirmation page.
type ConfirmBody struct {
	Prompt string
	Action string
	Cancel string
}

// AdminBody is the body of the admin dashboard.
type AdminBody struct {
	Stats    *models.AdminStats
	Users    []models.AdminUser
	Messages []models.ContactMessage
}

// TierLabel is the display label of a risk tier.
func TierLabel(t models.RiskTier) string {
	return tierDisplay[t].label
}

var funcs = template.FuncMap{
	"displayTime": models.DisplayTime,
	"tierLabel":   TierLabel,
	"subjects":    func() []string { return ContactSubjects },
}

// Templates holds the parsed page and fragment templates. Every value is
// escaped by html/template.
type Templates struct {
	pages     map[string]*template.Template
	fragments *template.Template
}

// LoadTemplates parses the embedded templates.
func LoadTemplates() (*Templates, error) {
	fragments, err := template.New("fragments").Funcs(funcs).ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("parsing report templates: %w", err)
	}
	t := &Templates{pages: make(map[string]*template.Template), fragments: fragments}
	for _, name := range pageNames {
		tpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing page %s: %w", name, err)
		}
		t.pages[name] = tpl
	}
	return t, nil
}

// Page writes a full page.
func (t *Templates) Page(w io.Writer, name string, data PageData) error {
	tpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	if err := tpl.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("rendering page %s: %w", name, err)
	}
	return nil
}

// Fragment renders a report view to HTML.
func (t *Templates) Fragment(v View) (string, error) {
	var buf bytes.Buffer
	if err := t.fragments.ExecuteTemplate(&buf, "report", v); err != nil {
		return "", fmt.Errorf("rendering %s view: %w", v.Variant, err)
	}
	return buf.String(), nil
}
