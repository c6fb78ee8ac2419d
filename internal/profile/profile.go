// Package profile loads the portfolio document that drives the page.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
)

// ErrStatus is returned when a remote profile responds with a non-2xx status.
var ErrStatus = errors.New("unexpected status")

// Fallback returns the fixed profile used when the configured one cannot be
// read. It carries a single profile tab so the name, description and
// presence widget still render.
func Fallback() Profile {
	return Profile{
		Name:                "cosmin",
		Description:         "full stack developer specializing in modern web technologies",
		DiscordID:           "cosmiccodedger",
		PlaylistDescription: "currently in rotation - a personal collection of music i've been listening to lately",
		Tabs:                []Tab{{TabName: "about", DisplayName: "about", Type: TabProfile}},
		Songs:               []Song{},
	}
}

// Load reads the profile from source, which may be a file path or an
// http(s) URL. Any failure is logged and the fallback profile is returned
// instead; Load never fails.
func Load(ctx context.Context, source string, client *http.Client) LoadResult {
	p, err := read(ctx, source, client)
	if err != nil {
		log.Printf("profile: loading %s: %v; using fallback profile", source, err)
		return LoadResult{Profile: Fallback(), Source: source, Fallback: true, Err: err}
	}
	return LoadResult{Profile: p, Source: source}
}

func read(ctx context.Context, source string, client *http.Client) (Profile, error) {
	var data []byte
	var err error
	if isRemote(source) {
		data, err = fetch(ctx, source, client)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return Profile{}, err
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing profile: %w", err)
	}
	return p, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func fetch(ctx context.Context, url string, client *http.Client) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w %d", ErrStatus, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Save writes the profile to path as indented JSON.
func (p *Profile) Save(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling profile: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing profile to %s: %w", path, err)
	}
	return nil
}

// Validate checks that tab keys are present and unique and that every tab
// has a known type. The renderer itself never validates.
func (p *Profile) Validate() error {
	seen := make(map[string]bool, len(p.Tabs))
	for i, t := range p.Tabs {
		if t.TabName == "" {
			return fmt.Errorf("tab %d: tabName is required", i)
		}
		if seen[t.TabName] {
			return fmt.Errorf("tab %d: duplicate tabName %q", i, t.TabName)
		}
		seen[t.TabName] = true

		switch t.Type {
		case TabProfile, TabText:
		default:
			return fmt.Errorf("tab %q: unknown type %q: must be one of profile, text", t.TabName, t.Type)
		}
	}
	return nil
}
