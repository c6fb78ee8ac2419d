package presence

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	cdnBase = "https://cdn.discordapp.com"

	// DefaultAvatarURL is shown when nothing better is known, and is the
	// client-side replacement when an avatar fails to load.
	DefaultAvatarURL = cdnBase + "/embed/avatars/0.png"

	animatedPrefix = "a_"
)

// AvatarURL resolves the avatar for a user. A custom avatar hash maps to
// a CDN image (GIF when the hash carries the animated marker, PNG
// otherwise); without one the deterministic default avatar is used.
func AvatarURL(userID, hash, discriminator string) string {
	if hash == "" {
		return defaultAvatar(userID, discriminator)
	}
	ext := "png"
	if strings.HasPrefix(hash, animatedPrefix) {
		ext = "gif"
	}
	return fmt.Sprintf("%s/avatars/%s/%s.%s?size=128", cdnBase, userID, hash, ext)
}

// defaultAvatar picks one of Discord's embed avatars. Accounts on the new
// username system (discriminator "0") hash the snowflake; legacy accounts
// use the discriminator.
func defaultAvatar(userID, discriminator string) string {
	var index uint64
	if discriminator == "" || discriminator == "0" {
		if id, err := strconv.ParseUint(userID, 10, 64); err == nil {
			index = (id >> 22) % 6
		}
	} else if d, err := strconv.ParseUint(discriminator, 10, 64); err == nil {
		index = d % 5
	}
	return fmt.Sprintf("%s/embed/avatars/%d.png", cdnBase, index)
}
