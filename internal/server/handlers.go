package server

import (
	"bytes"
	"net/http"
	"os"

	"github.com/KaramelBytes/edareport/internal/analysis"
	"github.com/KaramelBytes/edareport/internal/export"
	"github.com/KaramelBytes/edareport/internal/render"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("raw") == "1"
	doc, err := s.document(r.Context(), raw)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	toggle := "/?raw=1"
	if raw {
		toggle = "/"
	}
	var buf bytes.Buffer
	if err := doc.HTMLWithToggle(&buf, toggle); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) artifacts(r *http.Request) ([]*analysis.Artifact, error) {
	t, err := s.table()
	if err != nil {
		return nil, err
	}
	return analysis.BuildAll(r.Context(), t)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	arts, err := s.artifacts(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	a, ok := analysis.Find(arts, id)
	if !ok || a.Chart == nil {
		http.Error(w, "chart not found", http.StatusNotFound)
		return
	}
	out, err := render.SVG(a.Chart, s.cfg.Chart)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(out)
}

func (s *Server) handleArtifacts(w http.ResponseWriter, r *http.Request) {
	arts, err := s.artifacts(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteSpecs(&buf, arts, export.FormatJSON); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(s.cfg.ImagePath); err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, s.cfg.ImagePath)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
