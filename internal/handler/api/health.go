package api

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status      string `json:"status"`
	Worker      string `json:"worker"`
	Environment string `json:"environment"`
	Timestamp   string `json:"timestamp"`
}

// HealthHandler returns a static liveness payload.
func HealthHandler(worker, environment string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, http.StatusOK, healthResponse{
			Status:      "ok",
			Worker:      worker,
			Environment: environment,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		})
	}
}
