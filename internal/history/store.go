// Package history records presence changes so the page can show when the
// owner was last seen.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/cosmiccodedger/portfolio/internal/db"
	"github.com/cosmiccodedger/portfolio/internal/presence"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02 15:04:05.000000000"

// Event is one recorded presence change.
type Event struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Status      string    `json:"status"`
	DisplayName string    `json:"display_name"`
	Activity    string    `json:"activity,omitempty"`
	Live        bool      `json:"live"`
	Error       string    `json:"error,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// Store persists presence events.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record stores res if it differs from the last event for the same user in
// status, activity or liveness. It reports whether a row was written.
func (s *Store) Record(ctx context.Context, res presence.Result) (bool, error) {
	e := eventFrom(res)

	last, err := s.Last(ctx, e.UserID)
	if err != nil {
		return false, err
	}
	if last != nil && last.Status == e.Status && last.Activity == e.Activity && last.Live == e.Live {
		return false, nil
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO presence_events (id, user_id, status, display_name, activity, live, error, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Status, e.DisplayName, e.Activity, e.Live, e.Error,
		e.RecordedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return false, fmt.Errorf("inserting presence event: %w", err)
	}
	return true, nil
}

// Last returns the most recent event for userID, or nil if there is none.
func (s *Store) Last(ctx context.Context, userID string) (*Event, error) {
	events, err := s.Recent(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

// Recent returns up to limit events for userID, newest first.
func (s *Store) Recent(ctx context.Context, userID string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, status, display_name, activity, live, error, recorded_at
		FROM presence_events WHERE user_id = ?
		ORDER BY recorded_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying presence events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning presence event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// LastSeen returns when userID was last recorded with a live, non-offline
// status. ok is false if that never happened.
func (s *Store) LastSeen(ctx context.Context, userID string) (t time.Time, ok bool, err error) {
	var ts string
	err = s.db.QueryRowContext(ctx, `
		SELECT recorded_at FROM presence_events
		WHERE user_id = ? AND live = 1 AND status != ?
		ORDER BY recorded_at DESC LIMIT 1`, userID, presence.StatusOffline).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("querying last seen: %w", err)
	}
	t, err = time.Parse(timeLayout, ts)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing recorded_at %q: %w", ts, err)
	}
	return t, true, nil
}

// Subscriber returns a poll subscriber that records every result.
func (s *Store) Subscriber(ctx context.Context) func(presence.Result) {
	return func(res presence.Result) {
		if _, err := s.Record(ctx, res); err != nil {
			log.Printf("history: %v", err)
		}
	}
}

func eventFrom(res presence.Result) Event {
	e := Event{
		ID:          uuid.New().String(),
		UserID:      res.Snapshot.UserID,
		Status:      res.Snapshot.Status,
		DisplayName: res.Snapshot.DisplayName,
		Live:        res.Live,
		RecordedAt:  res.FetchedAt,
	}
	if res.Snapshot.Activity != nil {
		e.Activity = res.Snapshot.Activity.Name
	}
	if res.Err != nil {
		e.Error = res.Err.Error()
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}
	return e
}

func scanEvent(rows *sql.Rows) (*Event, error) {
	var e Event
	var ts string
	if err := rows.Scan(&e.ID, &e.UserID, &e.Status, &e.DisplayName, &e.Activity, &e.Live, &e.Error, &ts); err != nil {
		return nil, err
	}
	t, err := time.Parse(timeLayout, ts)
	if err != nil {
		return nil, fmt.Errorf("parsing recorded_at %q: %w", ts, err)
	}
	e.RecordedAt = t
	return &e, nil
}
