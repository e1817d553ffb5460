package handlers

import (
	"github.com/go-chi/chi/v5"
)

func (s *Server) RegisterAdminRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/", s.AdminDashboardHandler)
		r.Post("/users/{id}/deactivate", s.DeactivateUserHandler)
		r.Post("/messages/{id}/delete", s.DeleteMessageHandler)
	})
}
