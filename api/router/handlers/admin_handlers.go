package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Ebzefr/WebSecura/backend"
	"github.com/Ebzefr/WebSecura/core"
	"github.com/Ebzefr/WebSecura/logger"
	"github.com/Ebzefr/WebSecura/render"
)

func (s *Server) admin() *core.Admin {
	return core.NewAdmin(s.Client, s.Session)
}

// requireAdmin sends anonymous visitors to the login page and regular users
// a 403 page.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	user, ok := s.requireLogin(w, r)
	if !ok {
		return false
	}
	if !user.IsAdmin {
		s.renderMessage(w, http.StatusForbidden, "Admin", "Access denied. Admin privileges required.")
		return false
	}
	return true
}

// adminBody loads the three dashboard panels. A panel that fails is left
// empty and its error is returned for display.
func (s *Server) adminBody(r *http.Request) (render.AdminBody, string) {
	a := s.admin()
	var body render.AdminBody
	var failures []string

	stats, err := a.Stats(r.Context())
	if err != nil {
		logger.Error("AdminDashboardHandler: Error loading stats: %v", err)
		failures = append(failures, "Failed to load stats: "+backend.UserMessage(err))
	}
	body.Stats = stats

	if body.Users, err = a.Users(r.Context()); err != nil {
		logger.Error("AdminDashboardHandler: Error loading users: %v", err)
		failures = append(failures, "Failed to load users: "+backend.UserMessage(err))
	}
	if body.Messages, err = a.Messages(r.Context()); err != nil {
		logger.Error("AdminDashboardHandler: Error loading messages: %v", err)
		failures = append(failures, "Failed to load messages: "+backend.UserMessage(err))
	}
	if len(failures) > 0 {
		return body, failures[0]
	}
	return body, ""
}

// AdminDashboardHandler shows stats, users and contact messages.
func (s *Server) AdminDashboardHandler(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	body, errText := s.adminBody(r)
	data := s.pageData("Admin", body)
	data.Error = errText
	s.renderPage(w, http.StatusOK, render.PageAdmin, data, nil)
}

// adminAction runs a confirmable dashboard action and renders its outcome.
func (s *Server) adminAction(w http.ResponseWriter, r *http.Request, prompt, action, done string, run func(id int64, c core.Confirmer) error) {
	if !s.requireAdmin(w, r) {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	err := run(id, formConfirmer(r))
	switch {
	case errors.Is(err, core.ErrCancelled):
		body := render.ConfirmBody{Prompt: prompt, Action: fmt.Sprintf(action, id), Cancel: "/admin"}
		s.renderPage(w, http.StatusOK, render.PageConfirm, s.pageData("Confirm", body), nil)
	case err != nil:
		body, _ := s.adminBody(r)
		data := s.pageData("Admin", body)
		data.Error = backend.UserMessage(err)
		s.renderPage(w, statusFor(err), render.PageAdmin, data, nil)
	default:
		if s.Notifier != nil {
			s.Notifier.Notify(core.NoticeSuccess, done)
		}
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	}
}

func (s *Server) DeactivateUserHandler(w http.ResponseWriter, r *http.Request) {
	s.adminAction(w, r,
		"Are you sure you want to deactivate this user?",
		"/admin/users/%d/deactivate",
		"User deactivated",
		func(id int64, c core.Confirmer) error { return s.admin().DeactivateUser(r.Context(), id, c) })
}

func (s *Server) DeleteMessageHandler(w http.ResponseWriter, r *http.Request) {
	s.adminAction(w, r,
		"Are you sure you want to delete this message? This action cannot be undone.",
		"/admin/messages/%d/delete",
		"Message deleted",
		func(id int64, c core.Confirmer) error { return s.admin().DeleteMessage(r.Context(), id, c) })
}
