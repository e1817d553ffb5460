package handlers

import (
	"errors"
	"net/http"

	"github.com/Ebzefr/WebSecura/core"
	"github.com/Ebzefr/WebSecura/logger"
	"github.com/Ebzefr/WebSecura/render"
)

func (s *Server) scannerBody(input string) render.ScannerBody {
	body := render.ScannerBody{Input: input}
	if cur, ok := s.State.Current(); ok {
		body.HasReport = true
		body.ReportURL = cur.URL
	}
	return body
}

// ScannerPageHandler serves the scan form.
func (s *Server) ScannerPageHandler(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, render.PageScanner, s.pageData("Scanner", s.scannerBody("")), nil)
}

// ScanHandler runs a scan from the posted form and shows the results
// overlay on the scanner page.
func (s *Server) ScanHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		logger.Error("ScanHandler: Error parsing form: %v", err)
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	ctrl := &formControl{input: r.PostFormValue("url")}
	presenter := &pagePresenter{}
	scanner := core.NewScanner(s.Client, s.State, s.Session, presenter, s.Notifier)

	_, err := scanner.Scan(r.Context(), ctrl.input, ctrl)
	if errors.Is(err, core.ErrSuperseded) {
		// A newer scan owns the overlay now.
		http.Redirect(w, r, "/report", http.StatusSeeOther)
		return
	}

	data := s.pageData("Scanner", s.scannerBody(ctrl.input))
	data.Error = presenter.errorText()
	if presenter.report == nil {
		s.renderPage(w, statusFor(err), render.PageScanner, data, nil)
		return
	}
	view := render.RenderOverlay(presenter.report)
	s.renderPage(w, http.StatusOK, render.PageScanner, data, &view)
}

// CurrentReportHandler shows the current report, if any, in the overlay.
func (s *Server) CurrentReportHandler(w http.ResponseWriter, r *http.Request) {
	data := s.pageData("Scanner", s.scannerBody(""))
	cur, ok := s.State.Current()
	if !ok {
		data.Error = "No scan results yet. Run a scan first."
		s.renderPage(w, http.StatusNotFound, render.PageScanner, data, nil)
		return
	}
	view := render.RenderOverlay(cur)
	s.renderPage(w, http.StatusOK, render.PageScanner, data, &view)
}
