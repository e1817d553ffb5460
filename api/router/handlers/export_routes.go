package handlers

import (
	"github.com/go-chi/chi/v5"
)

func (s *Server) RegisterExportRoutes(r chi.Router) {
	r.Get("/export/{format}", s.ExportHandler)
}
