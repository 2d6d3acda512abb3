package api

import (
	"net/http"
)

// statsResponse is the JSON response for GET /v1/stats.
type statsResponse struct {
	Total         int            `json:"total"`
	ByStatus      map[string]int `json:"by_status"`
	TotalPresses  int            `json:"total_presses"`
	TotalFailures int            `json:"total_failures"`
	AvgPresses    float64        `json:"avg_presses"`
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetSessionStats(r.Context())
	if err != nil {
		s.logger.Error("get session stats", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	s.writeJSON(w, http.StatusOK, statsResponse{
		Total:         stats.Total,
		ByStatus:      stats.CountByStatus,
		TotalPresses:  stats.TotalPresses,
		TotalFailures: stats.TotalFailures,
		AvgPresses:    stats.AvgPresses,
	})
}
