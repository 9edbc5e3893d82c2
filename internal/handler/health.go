package handler

import "net/http"

// Health handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
// Mounted outside the authenticated API group so load balancers can probe it.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
