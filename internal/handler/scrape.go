package handler

import (
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/httputil"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/scrape"
)

// ScrapeHandler handles web scraping HTTP requests.
type ScrapeHandler struct {
	service *scrape.Service
	logger  *slog.Logger
}

// NewScrapeHandler creates a new scrape handler.
func NewScrapeHandler(service *scrape.Service, logger *slog.Logger) *ScrapeHandler {
	return &ScrapeHandler{service: service, logger: logger}
}

// ScrapeRequest is the body of a scrape request.
type ScrapeRequest struct {
	URL string `json:"url"`
}

// Validate checks the request fields. URL scheme and extension rules are
// enforced downstream by the scrape service.
func (r ScrapeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL, validation.Required),
	)
}

// Scrape runs the open-source scrape pipeline.
// POST /api/scrape
func (h *ScrapeHandler) Scrape(w http.ResponseWriter, r *http.Request) {
	var req ScrapeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := h.service.Scrape(r.Context(), req.URL)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, job)
}

// ScrapeEnterprise runs the managed-crawler scrape pipeline.
// POST /api/scrape/enterprise
func (h *ScrapeHandler) ScrapeEnterprise(w http.ResponseWriter, r *http.Request) {
	var req ScrapeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := h.service.ScrapeEnterprise(r.Context(), req.URL)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, job)
}

// LatestMarkdown returns the newest scraped markdown artifact.
// GET /api/scrape/markdowns?service=opensource|enterprise
func (h *ScrapeHandler) LatestMarkdown(w http.ResponseWriter, r *http.Request) {
	service := r.URL.Query().Get("service")
	var enterprise bool
	switch service {
	case "", "opensource":
	case "enterprise":
		enterprise = true
	default:
		httputil.RespondError(w, http.StatusBadRequest, "service must be \"opensource\" or \"enterprise\"")
		return
	}

	artifact, err := h.service.LatestMarkdown(r.Context(), enterprise)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, artifact)
}
