package handlers

import (
	"github.com/go-chi/chi/v5"
)

func (s *Server) RegisterAuthRoutes(r chi.Router) {
	r.Get("/login", s.LoginPageHandler)
	r.Post("/login", s.LoginHandler)
	r.Get("/register", s.RegisterPageHandler)
	r.Post("/register", s.RegisterHandler)
	r.Post("/logout", s.LogoutHandler)
	r.Get("/profile", s.ProfilePageHandler)
	r.Post("/profile", s.UpdateProfileHandler)
}
