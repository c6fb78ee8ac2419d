// Package page renders the portfolio document: tab navigation, content
// panels and the populated profile and presence fields.
package page

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"

	"github.com/cosmiccodedger/portfolio/internal/presence"
	"github.com/cosmiccodedger/portfolio/internal/profile"
)

// LiveURL is the websocket path the client script connects to.
const LiveURL = "/ws/live"

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// PresenceSource supplies the latest presence result.
type PresenceSource interface {
	Current() presence.Result
}

// View is the data passed to the document template.
type View struct {
	Title            string
	Panels           []Panel
	Patch            Patch
	Songs            []profile.Song
	LiveURL          string
	DefaultAvatarURL string
}

// Page renders the root document for one profile.
type Page struct {
	profile  profile.Profile
	panels   []Panel
	presence PresenceSource
}

// New renders the profile's tabs once and returns a Page that fills in
// presence on every request.
func New(p profile.Profile, src PresenceSource) (*Page, error) {
	panels, err := RenderTabs(p.Tabs, NewMarkdown())
	if err != nil {
		return nil, err
	}
	if len(panels) == 0 {
		log.Printf("page: no tabs defined in profile")
	}
	return &Page{profile: p, panels: panels, presence: src}, nil
}

// Panels returns the rendered panels with the first tab active.
func (pg *Page) Panels() []Panel { return pg.panels }

// View builds the template data with activeTab selected. An empty or
// unknown activeTab keeps the first tab active.
func (pg *Page) View(activeTab string) View {
	ts := tabSetFor(pg.panels)
	if activeTab != "" {
		_ = ts.Activate(activeTab)
	}

	var res presence.Result
	if pg.presence != nil {
		res = pg.presence.Current()
	} else {
		res = presence.Result{Snapshot: presence.FallbackSnapshot(pg.profile.DiscordID)}
	}

	return View{
		Title:            pg.profile.Name,
		Panels:           ts.Apply(pg.panels),
		Patch:            Populate(pg.profile, res),
		Songs:            pg.profile.Songs,
		LiveURL:          LiveURL,
		DefaultAvatarURL: presence.DefaultAvatarURL,
	}
}

// CurrentPatch populates the profile with the latest presence.
func (pg *Page) CurrentPatch() Patch {
	return pg.View("").Patch
}

// Render writes the document for v to w.
func Render(w io.Writer, v View) error {
	if err := pageTmpl.Execute(w, v); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

// ServeHTTP renders the root document. The ?tab= query selects the active tab.
func (pg *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := Render(&buf, pg.View(r.URL.Query().Get("tab"))); err != nil {
		log.Printf("page: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
