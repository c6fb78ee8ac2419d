package page

import (
	"errors"
	"fmt"
	"html/template"
	"unicode"
	"unicode/utf8"

	"github.com/cosmiccodedger/portfolio/internal/profile"
)

// ErrUnknownTab is returned when activating a key with no matching panel.
var ErrUnknownTab = errors.New("unknown tab")

// placeholderContent is shown for text tabs without content.
const placeholderContent = "Content coming soon..."

// Panel is one navigation control plus its content panel.
type Panel struct {
	Key     string
	Label   string
	Type    string
	Heading string
	Body    template.HTML
	Active  bool
}

// RenderTabs materializes a panel per tab descriptor. The first panel is
// active. Profile panels carry no body; the document template supplies
// the profile block. Unknown types produce a control with an empty panel.
func RenderTabs(tabs []profile.Tab, md *Markdown) ([]Panel, error) {
	if len(tabs) == 0 {
		return nil, nil
	}

	panels := make([]Panel, 0, len(tabs))
	for i, t := range tabs {
		p := Panel{
			Key:    t.TabName,
			Label:  t.DisplayName,
			Type:   t.Type,
			Active: i == 0,
		}
		if t.Type == profile.TabText {
			p.Heading = capitalize(t.DisplayName)
			content := t.Content
			if content == "" {
				content = placeholderContent
			}
			body, err := md.Render(content)
			if err != nil {
				return nil, fmt.Errorf("rendering tab %q: %w", t.TabName, err)
			}
			p.Body = body
		}
		panels = append(panels, p)
	}
	return panels, nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// TabSet tracks which tab is active. Exactly one tab is active whenever
// the set is non-empty; the first tab starts active.
type TabSet struct {
	keys   []string
	active int
}

// NewTabSet creates a TabSet over keys in display order.
func NewTabSet(keys []string) *TabSet {
	return &TabSet{keys: keys}
}

// Activate makes key the active tab. An unknown key leaves the current
// tab active and returns ErrUnknownTab.
func (s *TabSet) Activate(key string) error {
	for i, k := range s.keys {
		if k == key {
			s.active = i
			return nil
		}
	}
	return fmt.Errorf("%w %q", ErrUnknownTab, key)
}

// Active returns the active key, or "" for an empty set.
func (s *TabSet) Active() string {
	if len(s.keys) == 0 {
		return ""
	}
	return s.keys[s.active]
}

// IsActive reports whether the tab at index i is active.
func (s *TabSet) IsActive(i int) bool {
	return len(s.keys) > 0 && i == s.active
}

// Apply returns a copy of panels with Active set from the TabSet.
func (s *TabSet) Apply(panels []Panel) []Panel {
	out := make([]Panel, len(panels))
	for i, p := range panels {
		p.Active = s.IsActive(i)
		out[i] = p
	}
	return out
}

// tabSetFor builds a TabSet over the keys of panels.
func tabSetFor(panels []Panel) *TabSet {
	keys := make([]string, len(panels))
	for i, p := range panels {
		keys[i] = p.Key
	}
	return NewTabSet(keys)
}
