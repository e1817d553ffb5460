package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Ebzefr/WebSecura/core"
	"github.com/Ebzefr/WebSecura/render"
)

func (s *Server) historyBrowser(presenter core.Presenter) *core.HistoryBrowser {
	return core.NewHistoryBrowser(s.Client, s.Session, s.State, presenter, s.PageSize)
}

// loadHistory fetches the list and applies the q and page query values.
// A failed load still yields a page: the fallback view.
func (s *Server) loadHistory(r *http.Request, h *core.HistoryBrowser) core.HistoryPage {
	// Load logs its own failures; the page then shows the fallback list.
	_ = h.Load(r.Context())
	h.Filter(r.URL.Query().Get("q"))
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return h.GoTo(page)
}

// HistoryPageHandler lists past scans with filter and pagination.
func (s *Server) HistoryPageHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireLogin(w, r); !ok {
		return
	}
	h := s.historyBrowser(&pagePresenter{})
	s.renderPage(w, http.StatusOK, render.PageHistory, s.pageData("History", s.loadHistory(r, h)), nil)
}

// HistoryDetailHandler opens one record in the detail modal over the list.
// A failure keeps the list and shows the error.
func (s *Server) HistoryDetailHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireLogin(w, r); !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		http.Error(w, "Invalid scan ID", http.StatusBadRequest)
		return
	}
	presenter := &pagePresenter{}
	h := s.historyBrowser(presenter)
	list := s.loadHistory(r, h)

	_, err := h.ViewDetail(r.Context(), id)
	data := s.pageData("History", list)
	if presenter.detail == nil {
		data.Error = presenter.errorText()
		s.renderPage(w, statusFor(err), render.PageHistory, data, nil)
		return
	}
	view := render.RenderModal(presenter.detail)
	s.renderPage(w, http.StatusOK, render.PageHistory, data, &view)
}

// DeleteHistoryHandler deletes a record. Without confirm=yes it only shows
// the confirmation page.
func (s *Server) DeleteHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireLogin(w, r); !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		http.Error(w, "Invalid scan ID", http.StatusBadRequest)
		return
	}
	presenter := &pagePresenter{}
	h := s.historyBrowser(presenter)

	err := h.Delete(r.Context(), id, formConfirmer(r))
	switch {
	case errors.Is(err, core.ErrCancelled):
		body := render.ConfirmBody{
			Prompt: "Are you sure you want to delete this scan? This action cannot be undone.",
			Action: fmt.Sprintf("/history/%d/delete", id),
			Cancel: "/history",
		}
		s.renderPage(w, http.StatusOK, render.PageConfirm, s.pageData("Confirm", body), nil)
	case err != nil && presenter.errorText() != "":
		data := s.pageData("History", s.loadHistory(r, s.historyBrowser(&pagePresenter{})))
		data.Error = presenter.errorText()
		s.renderPage(w, statusFor(err), render.PageHistory, data, nil)
	default:
		// Deleted; a reload failure after it shows as the fallback list.
		http.Redirect(w, r, "/history", http.StatusSeeOther)
	}
}
