// Package preview serves the generated report and image over HTTP so the
// operator can inspect the output in a browser.
package preview

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is a read-only static server over the report output directory.
type Server struct {
	router     chi.Router
	dir        string
	reportPath string
	log        *slog.Logger
}

// NewServer configures a preview server rooted at the report's directory.
func NewServer(reportPath string, log *slog.Logger) *Server {
	s := &Server{
		dir:        filepath.Dir(reportPath),
		reportPath: reportPath,
		log:        log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Handle("/*", http.FileServer(http.Dir(s.dir)))

	s.router = r
}

// handleIndex prefers the HTML rendering of the report and falls back to the
// raw markdown.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	htmlPath := trimExt(s.reportPath) + ".html"
	if _, err := os.Stat(htmlPath); err == nil {
		http.ServeFile(w, r, htmlPath)
		return
	}
	if _, err := os.Stat(s.reportPath); err == nil {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		http.ServeFile(w, r, s.reportPath)
		return
	}
	http.Error(w, "no report generated yet, run `flowlens analyze` first", http.StatusNotFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: 200}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func trimExt(path string) string {
	return path[:len(path)-len(filepath.Ext(path))]
}
