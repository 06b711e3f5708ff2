package handlers

import (
	"net/http"
	"time"

	"github.com/authdemo/apiserver/types"
)

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Health reports that the server is up.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Success:   true,
		Message:   "Server is running",
		Timestamp: types.FormatTimestamp(time.Now()),
	})
}
