package handler

import (
	"log/slog"
	"net/http"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/httputil"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/service/ingest"
)

// ArtifactHandler serves listings of stored artifacts.
type ArtifactHandler struct {
	service *ingest.Service
	logger  *slog.Logger
}

// NewArtifactHandler creates a new artifact handler.
func NewArtifactHandler(service *ingest.Service, logger *slog.Logger) *ArtifactHandler {
	return &ArtifactHandler{service: service, logger: logger}
}

// List returns stored artifacts grouped by pipeline area.
// GET /api/artifacts
func (h *ArtifactHandler) List(w http.ResponseWriter, r *http.Request) {
	listing, err := h.service.ListArtifacts(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listing)
}

// LatestMarkdown returns the newest converted markdown artifact.
// GET /api/artifacts/markdowns/latest
func (h *ArtifactHandler) LatestMarkdown(w http.ResponseWriter, r *http.Request) {
	artifact, err := h.service.LatestMarkdown(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, artifact)
}
