package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ebzefr/WebSecura/version"
)

// GetVersionHandler returns the client version.
// @Summary Get client version
// @Tags Version
// @Produce json
// @Success 200 {object} map[string]string "{"version": "1.0.0"}"
// @Router /version [get]
func GetVersionHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": version.AppVersion})
}

func RegisterVersionRoutes(r chi.Router) {
	r.Get("/version", GetVersionHandler)
}
