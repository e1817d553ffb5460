package handlers

import (
	"github.com/go-chi/chi/v5"
)

func (s *Server) RegisterScanRoutes(r chi.Router) {
	r.Get("/", s.ScannerPageHandler)
	r.Post("/scan", s.ScanHandler)
	r.Get("/report", s.CurrentReportHandler)
}
