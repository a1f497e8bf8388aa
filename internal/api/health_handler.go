package api

import (
	"net/http"

	"github.com/rmsato/todoapi/internal/api/shared"
)

// HealthCheck handles GET /api/v1/health/.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: "backend",
	})
}
