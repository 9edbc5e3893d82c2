package handler

import "net/http"

// GetDashboard handles GET /analytics/dashboard.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.analytics.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
