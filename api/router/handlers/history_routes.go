package handlers

import (
	"github.com/go-chi/chi/v5"
)

func (s *Server) RegisterHistoryRoutes(r chi.Router) {
	r.Route("/history", func(r chi.Router) {
		r.Get("/", s.HistoryPageHandler)
		r.Get("/{id}", s.HistoryDetailHandler)
		r.Post("/{id}/delete", s.DeleteHistoryHandler)
	})
}
