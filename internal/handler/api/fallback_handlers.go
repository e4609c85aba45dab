package api

import "net/http"

// Fallbacks for the diagnostics surface. Misrouted probes and webhooks get
// the same JSON error shape as every other handler here.

func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "No such diagnostics endpoint", nil)
	}
}

func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed on this endpoint", nil)
	}
}
