package handler

import (
	"net/http"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/httputil"
)

// HealthCheck reports service liveness.
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
