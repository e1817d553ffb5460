package handlers

import (
	"net/http"

	"github.com/Ebzefr/WebSecura/backend"
	"github.com/Ebzefr/WebSecura/core"
	"github.com/Ebzefr/WebSecura/logger"
	"github.com/Ebzefr/WebSecura/render"
)

type loginForm struct {
	Email string
}

type registerForm struct {
	Username string
	Email    string
}

func (s *Server) accounts() *core.Accounts {
	return core.NewAccounts(s.Client, s.Session)
}

func (s *Server) LoginPageHandler(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, render.PageLogin, s.pageData("Login", loginForm{}), nil)
}

// LoginHandler stores the session and returns to the scanner.
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	user, err := s.accounts().Login(r.Context(), email, r.PostFormValue("password"))
	if err != nil {
		logger.Info("LoginHandler: Login failed for %s: %v", email, err)
		data := s.pageData("Login", loginForm{Email: email})
		data.Error = backend.UserMessage(err)
		s.renderPage(w, statusFor(err), render.PageLogin, data, nil)
		return
	}
	if s.Notifier != nil {
		s.Notifier.Notify(core.NoticeSuccess, "Welcome back, "+user.Username)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) RegisterPageHandler(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, render.PageRegister, s.pageData("Register", registerForm{}), nil)
}

func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	form := registerForm{Username: r.PostFormValue("username"), Email: r.PostFormValue("email")}
	user, err := s.accounts().Register(r.Context(), form.Username, form.Email, r.PostFormValue("password"))
	if err != nil {
		data := s.pageData("Register", form)
		data.Error = backend.UserMessage(err)
		s.renderPage(w, statusFor(err), render.PageRegister, data, nil)
		return
	}
	if s.Notifier != nil {
		s.Notifier.Notify(core.NoticeSuccess, "Account created. Welcome, "+user.Username)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LogoutHandler always ends the local session.
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.accounts().Logout(r.Context()); err != nil {
		logger.Error("LogoutHandler: Error clearing session: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) ProfilePageHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireLogin(w, r)
	if !ok {
		return
	}
	profile, err := s.accounts().Profile(r.Context())
	data := s.pageData("Profile", profile)
	if err != nil {
		// Fall back to the cached identity.
		data.Body = user
		data.Error = backend.UserMessage(err)
	}
	s.renderPage(w, http.StatusOK, render.PageProfile, data, nil)
}

func (s *Server) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireLogin(w, r)
	if !ok {
		return
	}
	updated, err := s.accounts().UpdateProfile(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		data := s.pageData("Profile", user)
		data.Error = backend.UserMessage(err)
		s.renderPage(w, statusFor(err), render.PageProfile, data, nil)
		return
	}
	data := s.pageData("Profile", updated)
	data.Flash = "Profile updated"
	s.renderPage(w, http.StatusOK, render.PageProfile, data, nil)
}

