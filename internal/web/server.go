// Package web serves the upload-and-analyze dashboard. Statements are
// analyzed from a temporary file and the report is rendered server-side;
// nothing is persisted between requests.
package web

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"finadvisor/internal/assistant"
	"finadvisor/internal/logging"
	appweb "finadvisor/web"
)

type Server struct {
	http.Server
	templates *template.Template
	assistant *assistant.Assistant
	maxUpload int64
	logger    logging.Logger
}

// NewServer configures routes and templates, returning a ready-to-run
// http.Server.
func NewServer(addr string, a *assistant.Assistant, maxUpload int64, logger logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		assistant: a,
		maxUpload: maxUpload,
		logger:    logger,
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	s.templates = t

	sub, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return nil, err
	}
	static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
	mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		static.ServeHTTP(w, r)
	}))

	mux.HandleFunc("/", s.withRequestLog(s.handleIndex))
	mux.HandleFunc("/analyze", s.withRequestLog(s.handleAnalyze))
	mux.HandleFunc("/healthz", handleHealth)

	return s, nil
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Server.Shutdown(ctx)
}

func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.logger.WithFields(
			logging.Field{Key: "method", Value: r.Method},
			logging.Field{Key: "path", Value: r.URL.Path},
			logging.Field{Key: "duration", Value: time.Since(start).String()},
		).Debug("Request handled")
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
