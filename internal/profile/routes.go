package profile

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type profileResponse struct {
	Profile
	Fallback bool `json:"fallback"`
}

// RegisterRoutes mounts the profile endpoint, which reports the profile the
// page was rendered from.
func RegisterRoutes(r chi.Router, res LoadResult) {
	resp := profileResponse{Profile: res.Profile, Fallback: res.Fallback}
	if resp.Songs == nil {
		resp.Songs = []Song{}
	}
	r.Get("/api/profile", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})
}
