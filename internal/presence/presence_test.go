package presence

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

const livePayload = `{
  "success": true,
  "data": {
    "discord_user": {
      "id": "94490510688792576",
      "username": "phineas",
      "global_name": "Phineas",
      "display_name": "",
      "avatar": "a_1234abcd",
      "discriminator": "0"
    },
    "discord_status": "dnd",
    "activities": [
      {"name": "Visual Studio Code", "type": 0, "state": "Editing main.go", "details": "portfolio"},
      {"name": "Spotify", "type": 2}
    ]
  }
}`

func TestNormalize(t *testing.T) {
	snap, err := Normalize([]byte(livePayload))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if snap.Username != "phineas" {
		t.Errorf("username = %q", snap.Username)
	}
	if snap.DisplayName != "Phineas" {
		t.Errorf("display name should fall back to global_name, got %q", snap.DisplayName)
	}
	if snap.Status != StatusDND {
		t.Errorf("status = %q, want dnd", snap.Status)
	}
	if snap.Activity == nil || snap.Activity.Name != "Visual Studio Code" {
		t.Errorf("expected first activity, got %+v", snap.Activity)
	}
	if !strings.HasSuffix(snap.AvatarURL, ".gif?size=128") {
		t.Errorf("animated avatar should be a gif, got %q", snap.AvatarURL)
	}
}

func TestNormalizeDisplayNameFallback(t *testing.T) {
	tests := []struct {
		name string
		user string
		want string
	}{
		{"display name", `{"id":"1","username":"u","global_name":"g","display_name":"d"}`, "d"},
		{"global name", `{"id":"1","username":"u","global_name":"g"}`, "g"},
		{"username", `{"id":"1","username":"u"}`, "u"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"success":true,"data":{"discord_user":` + tt.user + `,"discord_status":"online","activities":[]}}`
			snap, err := Normalize([]byte(body))
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if snap.DisplayName != tt.want {
				t.Errorf("display name = %q, want %q", snap.DisplayName, tt.want)
			}
			if snap.Activity != nil {
				t.Errorf("expected no activity, got %+v", snap.Activity)
			}
		})
	}
}

func TestNormalizeMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>`},
		{"missing success", `{"data":{"discord_user":{"id":"1","username":"u"}}}`},
		{"success false", `{"success":false,"data":{"discord_user":{"id":"1","username":"u"}}}`},
		{"missing data", `{"success":true}`},
		{"missing user", `{"success":true,"data":{"discord_status":"online"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Normalize([]byte(tt.body)); !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestAvatarURL(t *testing.T) {
	tests := []struct {
		name           string
		id, hash, disc string
		want           string
	}{
		{"static", "42", "abc", "0", "https://cdn.discordapp.com/avatars/42/abc.png?size=128"},
		{"animated", "42", "a_abc", "0", "https://cdn.discordapp.com/avatars/42/a_abc.gif?size=128"},
		// (94490510688792576 >> 22) % 6 == 3
		{"default migrated", "94490510688792576", "", "0", "https://cdn.discordapp.com/embed/avatars/3.png"},
		{"default migrated other", "4194304", "", "0", "https://cdn.discordapp.com/embed/avatars/1.png"},
		{"default legacy", "42", "", "1337", "https://cdn.discordapp.com/embed/avatars/2.png"},
		{"default unparsable", "not-a-snowflake", "", "", DefaultAvatarURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AvatarURL(tt.id, tt.hash, tt.disc); got != tt.want {
				t.Errorf("AvatarURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayFor(t *testing.T) {
	tests := map[string]StatusDisplay{
		StatusOnline:  {"Online", "online"},
		StatusIdle:    {"Away", "away"},
		StatusDND:     {"Do Not Disturb", "dnd"},
		StatusOffline: {"Offline", "offline"},
		"invisible":   {"Offline", "offline"},
		"":            {"Offline", "offline"},
	}
	for status, want := range tests {
		if got := DisplayFor(status); got != want {
			t.Errorf("DisplayFor(%q) = %+v, want %+v", status, got, want)
		}
	}
}

func lanyardServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v1/users/") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPollLive(t *testing.T) {
	srv := lanyardServer(t, http.StatusOK, livePayload)
	c := NewClient(srv.URL, 0)

	res := c.Poll(t.Context(), "94490510688792576")
	if !res.Live {
		t.Fatalf("expected live result, got err %v", res.Err)
	}
	if res.Snapshot.Username != "phineas" {
		t.Errorf("username = %q", res.Snapshot.Username)
	}
}

func TestPollFallback(t *testing.T) {
	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	tests := []struct {
		name    string
		baseURL string
		wantErr error
	}{
		{"not monitored", lanyardServer(t, http.StatusNotFound, `{"success":false,"error":{"code":"user_not_monitored","message":"User is not being monitored by Lanyard"}}`).URL, ErrStatus},
		{"server error", lanyardServer(t, http.StatusBadGateway, `oops`).URL, ErrStatus},
		{"malformed", lanyardServer(t, http.StatusOK, `{"success":true}`).URL, ErrMalformed},
		{"unreachable", closedURL, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewClient(tt.baseURL, time.Second).Poll(t.Context(), "123")
			if res.Live {
				t.Fatal("expected fallback result")
			}
			if res.Err == nil {
				t.Fatal("expected error on fallback result")
			}
			if tt.wantErr != nil && !errors.Is(res.Err, tt.wantErr) {
				t.Errorf("err = %v, want %v", res.Err, tt.wantErr)
			}
			want := FallbackSnapshot("123")
			if res.Snapshot != want {
				t.Errorf("snapshot = %+v, want %+v", res.Snapshot, want)
			}
			if res.Snapshot.Status != StatusOffline || res.Snapshot.AvatarURL != DefaultAvatarURL {
				t.Errorf("fallback must be offline with default avatar: %+v", res.Snapshot)
			}
		})
	}
}

func TestPollerEmptyUserID(t *testing.T) {
	p := NewPoller(NewClient("http://127.0.0.1:1", 0), "", time.Hour)
	res := p.PollNow(t.Context())
	if !errors.Is(res.Err, ErrNoUserID) {
		t.Errorf("expected ErrNoUserID, got %v", res.Err)
	}
	if res.Live {
		t.Error("expected fallback result")
	}
}

func TestPollerPublishes(t *testing.T) {
	srv := lanyardServer(t, http.StatusOK, livePayload)
	p := NewPoller(NewClient(srv.URL, 0), "94490510688792576", time.Hour)

	if p.Current().Live {
		t.Fatal("poller should start with the fallback result")
	}

	var mu sync.Mutex
	var got []Result
	done := make(chan struct{}, 1)
	p.Subscribe(func(r Result) {
		mu.Lock()
		got = append(got, r)
		mu.Unlock()
		done <- struct{}{}
	})

	p.Start(t.Context())
	defer p.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber was not notified")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || !got[0].Live {
		t.Fatalf("unexpected results: %+v", got)
	}
	if !p.Current().Live {
		t.Error("Current should reflect the latest poll")
	}
}

func TestPresenceRoute(t *testing.T) {
	srv := lanyardServer(t, http.StatusOK, livePayload)
	p := NewPoller(NewClient(srv.URL, 0), "94490510688792576", time.Hour)
	p.PollNow(t.Context())

	r := newTestRouter(p)
	req := httptest.NewRequest(http.MethodGet, "/api/presence", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"live":true`) || !strings.Contains(body, `"status_text":"Do Not Disturb"`) {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestPollerIgnoresCancelledPoll(t *testing.T) {
	srv := lanyardServer(t, http.StatusOK, livePayload)
	p := NewPoller(NewClient(srv.URL, 0), "94490510688792576", time.Hour)

	first := p.PollNow(t.Context())
	if !first.Live {
		t.Fatalf("expected live result, got err %v", first.Err)
	}

	notified := 0
	p.Subscribe(func(Result) { notified++ })

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	res := p.PollNow(ctx)

	if !res.Live || !p.Current().Live {
		t.Errorf("cancelled poll replaced the live result: %+v", p.Current())
	}
	if !p.Current().FetchedAt.Equal(first.FetchedAt) {
		t.Error("cancelled poll should leave the stored result untouched")
	}
	if notified != 0 {
		t.Errorf("subscribers notified %d times for a cancelled poll", notified)
	}
}
