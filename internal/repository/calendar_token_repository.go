package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CalendarTokenRepo stores per-artist OAuth tokens for the external
// calendar integration.  Tokens are kept as opaque JSON blobs; only
// the calendar package interprets them.
type CalendarTokenRepo struct {
	db *sql.DB
}

// NewCalendarTokenRepo constructs a CalendarTokenRepo given a DB handle.
func NewCalendarTokenRepo(db *sql.DB) *CalendarTokenRepo {
	return &CalendarTokenRepo{db: db}
}

// Get returns the stored token JSON for the artist, or ErrNotFound
// when the artist has not connected a calendar.
func (r *CalendarTokenRepo) Get(ctx context.Context, artistID uint64) (string, error) {
	const q = `SELECT token_json FROM calendar_tokens WHERE artist_id = ?`
	var tok string
	err := r.db.QueryRowContext(ctx, q, artistID).Scan(&tok)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: calendar token for artist %d", ErrNotFound, artistID)
	}
	if err != nil {
		return "", fmt.Errorf("%w: load calendar token: %v", ErrTransientFetch, err)
	}
	return tok, nil
}

// Save stores or replaces the artist's token JSON.
func (r *CalendarTokenRepo) Save(ctx context.Context, artistID uint64, tokenJSON string) error {
	const q = `INSERT INTO calendar_tokens (artist_id, token_json) VALUES (?, ?)
	           ON DUPLICATE KEY UPDATE token_json = VALUES(token_json)`
	_, err := r.db.ExecContext(ctx, q, artistID, tokenJSON)
	return err
}

// Delete removes the artist's calendar connection.
func (r *CalendarTokenRepo) Delete(ctx context.Context, artistID uint64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM calendar_tokens WHERE artist_id = ?`, artistID)
	return err
}
