package presence

import "github.com/go-chi/chi/v5"

func newTestRouter(p *Poller) chi.Router {
	r := chi.NewRouter()
	RegisterRoutes(r, p)
	return r
}
