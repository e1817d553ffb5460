package handlers

import (
	"github.com/go-chi/chi/v5"
)

func (s *Server) RegisterContactRoutes(r chi.Router) {
	r.Get("/contact", s.ContactPageHandler)
	r.Post("/contact", s.ContactHandler)
}
