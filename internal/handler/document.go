package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/httputil"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/service/ingest"
)

// DocumentHandler handles document upload and conversion HTTP requests.
type DocumentHandler struct {
	service        *ingest.Service
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewDocumentHandler creates a new document handler. maxUploadBytes caps
// the multipart request body.
func NewDocumentHandler(service *ingest.Service, maxUploadBytes int64, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Upload accepts a multipart document upload in the "file" field.
// POST /api/documents
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "missing \"file\" form field")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	job, err := h.service.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), content)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, job)
}

// Latest returns the most recent upload with a fresh object URL.
// GET /api/documents/latest
func (h *DocumentHandler) Latest(w http.ResponseWriter, r *http.Request) {
	job, err := h.service.LatestUpload(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, job)
}

// Convert converts a stored upload to markdown.
// POST /api/documents/{id}/convert?service=opensource|azure
//
// The literal id "latest" converts the most recent upload.
func (h *DocumentHandler) Convert(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "latest" {
		id = ""
	}

	job, err := h.service.Convert(r.Context(), id, r.URL.Query().Get("service"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, job)
}
