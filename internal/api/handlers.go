package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vkotov/rulesmith/internal/metrics"
)

// ArtifactInfo describes one downloadable artifact in the index.
type ArtifactInfo struct {
	Format       string `json:"format"` // "clash", "singbox" or "srs"
	Path         string `json:"path"`
	Available    bool   `json:"available"`
	Size         int64  `json:"size,omitempty"`
	LastModified string `json:"last_modified,omitempty"` // RFC3339
}

// CategoryInfo describes one configured category and its artifacts.
type CategoryInfo struct {
	Name      string         `json:"name"`
	Kind      string         `json:"kind"`
	Artifacts []ArtifactInfo `json:"artifacts"`
}

// IndexResponse is the /api/v1/index document.
type IndexResponse struct {
	Categories []CategoryInfo `json:"categories"`
}

// handleArtifact serves a category artifact from dir, refusing names that
// are not configured categories.
func (s *Server) handleArtifact(format, dir, ext, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		if !s.isKnownCategory(name) {
			s.countArtifact(format, http.StatusNotFound)
			http.NotFound(w, r)
			return
		}

		path := filepath.Join(dir, name+ext)
		f, err := os.Open(path)
		if err != nil {
			s.countArtifact(format, http.StatusNotFound)
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		stat, err := f.Stat()
		if err != nil {
			s.countArtifact(format, http.StatusInternalServerError)
			http.Error(w, "failed to stat artifact", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", contentType)
		s.countArtifact(format, http.StatusOK)
		http.ServeContent(w, r, name+ext, stat.ModTime(), f)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	resp := IndexResponse{Categories: make([]CategoryInfo, 0, len(s.cfg.Categories))}

	for _, cat := range s.cfg.Categories {
		info := CategoryInfo{
			Name: cat.Name,
			Kind: string(cat.Kind),
			Artifacts: []ArtifactInfo{
				s.artifactInfo("clash", s.cfg.GetAbsClashDir(), cat.Name+".yaml", "/clash/"),
				s.artifactInfo("singbox", s.cfg.GetAbsSingboxDir(), cat.Name+".json", "/singbox/"),
				s.artifactInfo("srs", s.cfg.GetAbsSRSDir(), cat.Name+".srs", "/srs/"),
			},
		}
		resp.Categories = append(resp.Categories, info)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(&resp); err != nil {
		http.Error(w, fmt.Sprintf("failed to encode index: %v", err), http.StatusInternalServerError)
	}
}

func (s *Server) artifactInfo(format, dir, file, urlPrefix string) ArtifactInfo {
	info := ArtifactInfo{
		Format: format,
		Path:   urlPrefix + file,
	}

	if stat, err := os.Stat(filepath.Join(dir, file)); err == nil {
		info.Available = true
		info.Size = stat.Size()
		info.LastModified = stat.ModTime().UTC().Format(time.RFC3339)
	}
	return info
}

func (s *Server) isKnownCategory(name string) bool {
	for _, cat := range s.cfg.Categories {
		if cat.Name == name {
			return true
		}
	}
	return false
}

func (s *Server) countArtifact(format string, code int) {
	metrics.ArtifactRequestsTotal.WithLabelValues(format, strconv.Itoa(code)).Inc()
}
