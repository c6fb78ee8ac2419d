package history

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

type historyResponse struct {
	UserID   string     `json:"user_id"`
	LastSeen *time.Time `json:"last_seen,omitempty"`
	Events   []Event    `json:"events"`
}

// RegisterRoutes mounts the presence history endpoint for userID.
func RegisterRoutes(r chi.Router, store *Store, userID string) {
	r.Get("/api/presence/history", func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
				limit = n
			}
		}

		events, err := store.Recent(r.Context(), userID, limit)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if events == nil {
			events = []Event{}
		}

		resp := historyResponse{UserID: userID, Events: events}
		if t, ok, err := store.LastSeen(r.Context(), userID); err == nil && ok {
			resp.LastSeen = &t
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
