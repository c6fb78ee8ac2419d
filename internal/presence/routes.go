package presence

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// resultResponse is the JSON form of a Result.
type resultResponse struct {
	Live       bool      `json:"live"`
	Error      string    `json:"error,omitempty"`
	FetchedAt  time.Time `json:"fetched_at"`
	StatusText string    `json:"status_text"`
	Snapshot   Snapshot  `json:"snapshot"`
}

// RegisterRoutes mounts the presence API onto the given router.
func RegisterRoutes(r chi.Router, p *Poller) {
	r.Get("/api/presence", func(w http.ResponseWriter, r *http.Request) {
		res := p.Current()
		resp := resultResponse{
			Live:       res.Live,
			FetchedAt:  res.FetchedAt,
			StatusText: DisplayFor(res.Snapshot.Status).Text,
			Snapshot:   res.Snapshot,
		}
		if res.Err != nil {
			resp.Error = res.Err.Error()
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})
}
