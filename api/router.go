package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Ebzefr/WebSecura/api/router/handlers"
	"github.com/Ebzefr/WebSecura/logger"
)

// NewRouter wires every web UI page and the JSON endpoints onto one chi
// router.
func NewRouter(s *handlers.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	s.RegisterScanRoutes(r)
	s.RegisterHistoryRoutes(r)
	s.RegisterExportRoutes(r)
	s.RegisterAuthRoutes(r)
	s.RegisterContactRoutes(r)
	s.RegisterAdminRoutes(r)
	s.RegisterHealthRoutes(r)
	handlers.RegisterVersionRoutes(r)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		logger.Error("CATCH-ALL: Unhandled route: %s %s", r.Method, r.URL.Path)
		http.NotFound(w, r)
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Info("%s %s -> %d (%s) [%s]", r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}
