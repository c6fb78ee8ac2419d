package presence

import "time"

// Status values reported by Lanyard.
const (
	StatusOnline  = "online"
	StatusIdle    = "idle"
	StatusDND     = "dnd"
	StatusOffline = "offline"
)

// Snapshot is the normalized presence of one Discord user. Snapshots are
// immutable once built; each poll produces a new one.
type Snapshot struct {
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Status      string    `json:"status"`
	Activity    *Activity `json:"activity,omitempty"`
}

// Activity is the first activity entry of a presence, if any.
type Activity struct {
	Name    string `json:"name"`
	Type    int    `json:"type"`
	State   string `json:"state,omitempty"`
	Details string `json:"details,omitempty"`
}

// Result is the outcome of one poll: either a live snapshot or the
// offline fallback, together with the error that caused the fallback.
type Result struct {
	Snapshot  Snapshot
	Live      bool
	Err       error
	FetchedAt time.Time
}

// StatusDisplay is the label and CSS class shown for a status.
type StatusDisplay struct {
	Text  string
	Class string
}

var statusDisplays = map[string]StatusDisplay{
	StatusOnline:  {Text: "Online", Class: "online"},
	StatusIdle:    {Text: "Away", Class: "away"},
	StatusDND:     {Text: "Do Not Disturb", Class: "dnd"},
	StatusOffline: {Text: "Offline", Class: "offline"},
}

// DisplayFor maps a status to its label; unknown statuses display as offline.
func DisplayFor(status string) StatusDisplay {
	if d, ok := statusDisplays[status]; ok {
		return d
	}
	return statusDisplays[StatusOffline]
}

// lanyardEnvelope is the JSON body returned by GET /v1/users/{id}.
type lanyardEnvelope struct {
	Success *bool        `json:"success"`
	Data    *lanyardData `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type lanyardData struct {
	DiscordUser   *lanyardUser      `json:"discord_user"`
	DiscordStatus string            `json:"discord_status"`
	Activities    []lanyardActivity `json:"activities"`
}

type lanyardUser struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	GlobalName    string `json:"global_name"`
	DisplayName   string `json:"display_name"`
	Avatar        string `json:"avatar"`
	Discriminator string `json:"discriminator"`
}

type lanyardActivity struct {
	Name    string `json:"name"`
	Type    int    `json:"type"`
	State   string `json:"state"`
	Details string `json:"details"`
}
