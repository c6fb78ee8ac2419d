// Package presence polls Lanyard for a Discord user's presence and
// normalizes it into snapshots for the page.
package presence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrNoUserID is reported when no Discord user is configured.
	ErrNoUserID = errors.New("no discord user id configured")
	// ErrMalformed is returned for payloads missing the success flag or user data.
	ErrMalformed = errors.New("malformed presence payload")
	// ErrStatus is returned for non-2xx responses.
	ErrStatus = errors.New("unexpected status")
)

// DefaultBaseURL is the public Lanyard REST API.
const DefaultBaseURL = "https://api.lanyard.rest"

// Client talks to the Lanyard REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for baseURL. A zero timeout leaves requests
// unbounded.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves and normalizes the presence of userID.
func (c *Client) Fetch(ctx context.Context, userID string) (Snapshot, error) {
	if userID == "" {
		return Snapshot{}, ErrNoUserID
	}

	endpoint := fmt.Sprintf("%s/v1/users/%s", c.baseURL, url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("requesting presence: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading presence: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env lanyardEnvelope
		if json.Unmarshal(body, &env) == nil && env.Error != nil {
			return Snapshot{}, fmt.Errorf("%w %d: %s", ErrStatus, resp.StatusCode, env.Error.Message)
		}
		return Snapshot{}, fmt.Errorf("%w %d", ErrStatus, resp.StatusCode)
	}

	return Normalize(body)
}

// Poll fetches the presence of userID and never fails: on any error the
// offline fallback snapshot is returned with Live=false.
func (c *Client) Poll(ctx context.Context, userID string) Result {
	now := time.Now()
	snap, err := c.Fetch(ctx, userID)
	if err != nil {
		if ctx.Err() == nil {
			logFailure(userID, err)
		}
		return Result{Snapshot: FallbackSnapshot(userID), Err: err, FetchedAt: now}
	}
	return Result{Snapshot: snap, Live: true, FetchedAt: now}
}

func logFailure(userID string, err error) {
	switch {
	case errors.Is(err, ErrNoUserID):
		log.Printf("presence: %v; set discordID in the profile to show live status", err)
	case errors.Is(err, ErrStatus):
		log.Printf("presence: lookup for %s failed: %v; make sure the account has joined the Lanyard Discord server (discord.gg/lanyard) and the ID is a numeric user ID", userID, err)
	default:
		log.Printf("presence: lookup for %s failed: %v; using offline placeholder", userID, err)
	}
}

// Normalize converts a Lanyard response body into a Snapshot. Bodies that
// are not JSON, lack the success flag or carry no user yield ErrMalformed.
func Normalize(body []byte) (Snapshot, error) {
	var env lanyardEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.Success == nil || !*env.Success || env.Data == nil || env.Data.DiscordUser == nil {
		return Snapshot{}, ErrMalformed
	}
	u := env.Data.DiscordUser

	snap := Snapshot{
		UserID:      u.ID,
		Username:    u.Username,
		DisplayName: firstNonEmpty(u.DisplayName, u.GlobalName, u.Username),
		AvatarURL:   AvatarURL(u.ID, u.Avatar, u.Discriminator),
		Status:      env.Data.DiscordStatus,
	}
	if len(env.Data.Activities) > 0 {
		a := env.Data.Activities[0]
		snap.Activity = &Activity{Name: a.Name, Type: a.Type, State: a.State, Details: a.Details}
	}
	return snap, nil
}

// FallbackSnapshot is the offline placeholder used whenever live data is
// unavailable. Every field is a placeholder; none come from a partial fetch.
func FallbackSnapshot(userID string) Snapshot {
	name := userID
	if name == "" {
		name = "unknown"
	}
	return Snapshot{
		UserID:      userID,
		Username:    name,
		DisplayName: name,
		AvatarURL:   DefaultAvatarURL,
		Status:      StatusOffline,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
