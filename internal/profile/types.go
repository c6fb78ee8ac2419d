package profile

// Tab types understood by the page renderer.
const (
	TabProfile = "profile"
	TabText    = "text"
)

// Profile is the portfolio document loaded from config.json.
type Profile struct {
	Name                string `json:"name"`
	Description         string `json:"description"`
	DiscordID           string `json:"discordID"`
	PlaylistDescription string `json:"playlistDescription"`
	Tabs                []Tab  `json:"tabs,omitempty"`
	Songs               []Song `json:"songs"`
}

// Tab describes one navigable section. Order in Profile.Tabs is display order.
type Tab struct {
	TabName     string `json:"tabName"`
	DisplayName string `json:"displayName"`
	Type        string `json:"type"`
	Content     string `json:"content,omitempty"`
}

// Song is one entry of the "currently in rotation" playlist.
type Song struct {
	Title  string `json:"title"`
	Artist string `json:"artist,omitempty"`
	URL    string `json:"url,omitempty"`
}

// LoadResult reports which profile is in use and why.
type LoadResult struct {
	Profile  Profile
	Source   string
	Fallback bool
	Err      error
}
