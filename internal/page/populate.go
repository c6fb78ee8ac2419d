package page

import (
	"github.com/cosmiccodedger/portfolio/internal/presence"
	"github.com/cosmiccodedger/portfolio/internal/profile"
)

// Element ids shared by the document template and the client script.
const (
	IDUserName            = "userName"
	IDUserDescription     = "userDescription"
	IDPlaylistDescription = "playlistDescription"
	IDDiscordName         = "discordName"
	IDDiscordStatus       = "discordStatus"
	IDDiscordActivity     = "discordActivity"
	IDDiscordAvatar       = "discordAvatar"
	IDStatusIndicator     = "statusIndicator"
)

// Patch is the populated page state keyed by element id. The same Patch
// renders the initial document and is pushed to clients after each poll;
// clients skip ids that are not present in their document.
type Patch struct {
	Text        map[string]string `json:"text"`
	AvatarURL   string            `json:"avatar_url"`
	StatusClass string            `json:"status_class"`
	Live        bool              `json:"live"`
}

// Populate builds the Patch for a profile and the latest presence result.
func Populate(p profile.Profile, res presence.Result) Patch {
	snap := res.Snapshot
	status := presence.DisplayFor(snap.Status)

	avatar := snap.AvatarURL
	if avatar == "" {
		avatar = presence.DefaultAvatarURL
	}

	return Patch{
		Text: map[string]string{
			IDUserName:            p.Name,
			IDUserDescription:     p.Description,
			IDPlaylistDescription: p.PlaylistDescription,
			IDDiscordName:         discordName(p.DiscordID, snap),
			IDDiscordStatus:       status.Text,
			IDDiscordActivity:     activityText(snap.Activity),
		},
		AvatarURL:   avatar,
		StatusClass: status.Class,
		Live:        res.Live,
	}
}

// discordName prefers a display name, then a username, as long as it is
// something more readable than the raw identifier.
func discordName(id string, snap presence.Snapshot) string {
	switch {
	case snap.DisplayName != "" && snap.DisplayName != id:
		return snap.DisplayName
	case snap.Username != "" && snap.Username != id:
		return snap.Username
	default:
		return id
	}
}

func activityText(a *presence.Activity) string {
	if a == nil {
		return ""
	}
	switch a.Type {
	case 1:
		return "Streaming " + a.Name
	case 2:
		return "Listening to " + a.Name
	case 3:
		return "Watching " + a.Name
	case 4:
		// Custom status: the text lives in state.
		return a.State
	case 5:
		return "Competing in " + a.Name
	default:
		return "Playing " + a.Name
	}
}
