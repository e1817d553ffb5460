package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Ebzefr/WebSecura/export"
	"github.com/Ebzefr/WebSecura/logger"
)

// ExportHandler downloads the current report.
// @Summary Export the current report
// @Description Encodes the report last shown (live scan or history record) as json, text or pdf.
// @Tags Export
// @Produce application/json,text/plain,application/pdf
// @Param format path string true "json, text or pdf"
// @Success 200 {file} file
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "No scan data available to export"
// @Router /export/{format} [get]
func (s *Server) ExportHandler(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	cur, _ := s.State.Current()
	name, out, err := s.Exporter.Encode(cur, format)
	if err != nil {
		if errors.Is(err, export.ErrNoData) {
			writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		logger.Error("ExportHandler: Error encoding %s export: %v", format, err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to export report")
		return
	}
	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Data)))
	if _, err := w.Write(out.Data); err != nil {
		logger.Error("ExportHandler: Error writing %s: %v", name, err)
	}
}
