package handlers

import (
	"bytes"
	"net/http"
	"sync"

	"github.com/Ebzefr/WebSecura/backend"
	"github.com/Ebzefr/WebSecura/core"
	"github.com/Ebzefr/WebSecura/export"
	"github.com/Ebzefr/WebSecura/logger"
	"github.com/Ebzefr/WebSecura/models"
	"github.com/Ebzefr/WebSecura/render"
)

// Server holds what the web UI handlers share. It serves one local user,
// like a browser tab: the session and current report live in local storage.
type Server struct {
	Templates *render.Templates
	Client    *backend.Client
	State     *core.AppState
	Session   *core.SessionGate
	Exporter  *export.Exporter
	Notifier  *core.Notifier
	Notices   *NoticeBoard
	Product   string
	PageSize  int
}

// NoticeBoard holds the notices currently on screen. It is the web UI's
// core.NoticeSink.
type NoticeBoard struct {
	mu      sync.Mutex
	notices []core.Notice
}

func (b *NoticeBoard) Show(n core.Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notices = append(b.notices, n)
}

func (b *NoticeBoard) Dismiss(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, n := range b.notices {
		if n.ID == id {
			b.notices = append(b.notices[:i], b.notices[i+1:]...)
			return
		}
	}
}

// Active returns a copy of the live notices.
func (b *NoticeBoard) Active() []core.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]core.Notice(nil), b.notices...)
}

// pagePresenter collects what one request wants to show.
type pagePresenter struct {
	report *models.ScanReport
	detail *models.ScanReport
	errors []string
}

func (p *pagePresenter) PresentReport(r *models.ScanReport) { p.report = r }
func (p *pagePresenter) PresentDetail(r *models.ScanReport) { p.detail = r }
func (p *pagePresenter) ShowError(msg string)               { p.errors = append(p.errors, msg) }

func (p *pagePresenter) errorText() string {
	if len(p.errors) == 0 {
		return ""
	}
	return p.errors[len(p.errors)-1]
}

// formControl stands in for the submit button and input of a form post.
type formControl struct {
	input string
	busy  bool
}

func (c *formControl) Busy()       { c.busy = true }
func (c *formControl) Idle()       { c.busy = false }
func (c *formControl) ClearInput() { c.input = "" }

// formConfirmer confirms when the posted form carries confirm=yes.
func formConfirmer(r *http.Request) core.Confirmer {
	return core.ConfirmFunc(func(string) bool { return r.PostFormValue("confirm") == "yes" })
}

func (s *Server) pageData(title string, body interface{}) render.PageData {
	var notices []core.Notice
	if s.Notices != nil {
		notices = s.Notices.Active()
	}
	return render.PageData{
		Title:   title,
		Product: s.Product,
		Session: s.Session.Current(),
		Notices: notices,
		Body:    body,
	}
}

// renderPage writes page name. When view is non-nil it is mounted into the
// page's results anchor before the page is sent.
func (s *Server) renderPage(w http.ResponseWriter, status int, name string, data render.PageData, view *render.View) {
	var buf bytes.Buffer
	if err := s.Templates.Page(&buf, name, data); err != nil {
		logger.Error("Rendering %s page: %v", name, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	if view != nil {
		page, err := render.NewPage(s.Templates, &buf)
		if err != nil {
			logger.Error("Parsing rendered %s page: %v", name, err)
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
			return
		}
		if view.Variant == render.VariantModal {
			_, err = page.MountModal(*view)
		} else {
			_, err = page.MountOverlay(*view)
		}
		if err != nil {
			logger.Error("Mounting %s into %s page: %v", view.Variant, name, err)
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
			return
		}
		html, err := page.HTML()
		if err != nil {
			logger.Error("Serializing %s page: %v", name, err)
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
			return
		}
		buf.Reset()
		buf.WriteString(html)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error("Writing %s page: %v", name, err)
	}
}

func (s *Server) renderMessage(w http.ResponseWriter, status int, title, msg string) {
	s.renderPage(w, status, render.PageMessage, s.pageData(title, msg), nil)
}

// requireLogin redirects to the login page when there is no session.
func (s *Server) requireLogin(w http.ResponseWriter, r *http.Request) (*models.Session, bool) {
	user := s.Session.Current()
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil, false
	}
	return user, true
}

// statusFor maps a client error to the HTTP status of the page showing it.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case isValidation(err):
		return http.StatusUnprocessableEntity
	case backend.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
