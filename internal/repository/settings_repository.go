package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/inkdesk/artist-booking/internal/model"
)

// SettingsRepo persists per-artist booking settings, including the
// books_open master gate.  Concurrent writers resolve by
// last-write-wins; there are no version tokens.
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo constructs a SettingsRepo given a DB handle.
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// GetForArtist loads the artist's booking settings.  ErrNotFound is
// returned for artists that have never configured booking.
func (r *SettingsRepo) GetForArtist(ctx context.Context, artistID uint64) (model.BookingSettings, error) {
	const q = `SELECT artist_id, books_open, hourly_rate_cents, deposit_amount_cents,
	                  consultation_fee_cents, minimum_session_minutes, timezone, updated_at
	           FROM booking_settings WHERE artist_id = ?`
	var s model.BookingSettings
	err := r.db.QueryRowContext(ctx, q, artistID).Scan(
		&s.ArtistID, &s.BooksOpen, &s.HourlyRateCents, &s.DepositAmountCents,
		&s.ConsultationFeeCents, &s.MinimumSessionMinutes, &s.Timezone, &s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.BookingSettings{}, fmt.Errorf("%w: settings for artist %d", ErrNotFound, artistID)
	}
	if err != nil {
		return model.BookingSettings{}, fmt.Errorf("%w: load settings: %v", ErrTransientFetch, err)
	}
	return s, nil
}

// Upsert writes the full settings row, creating it when absent.
func (r *SettingsRepo) Upsert(ctx context.Context, s model.BookingSettings) (model.BookingSettings, error) {
	const q = `INSERT INTO booking_settings
	             (artist_id, books_open, hourly_rate_cents, deposit_amount_cents,
	              consultation_fee_cents, minimum_session_minutes, timezone)
	           VALUES (?, ?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	             books_open = VALUES(books_open),
	             hourly_rate_cents = VALUES(hourly_rate_cents),
	             deposit_amount_cents = VALUES(deposit_amount_cents),
	             consultation_fee_cents = VALUES(consultation_fee_cents),
	             minimum_session_minutes = VALUES(minimum_session_minutes),
	             timezone = VALUES(timezone)`
	if _, err := r.db.ExecContext(ctx, q,
		s.ArtistID, s.BooksOpen, s.HourlyRateCents, s.DepositAmountCents,
		s.ConsultationFeeCents, s.MinimumSessionMinutes, s.Timezone,
	); err != nil {
		return model.BookingSettings{}, err
	}
	return r.GetForArtist(ctx, s.ArtistID)
}

// SetBooksOpen flips only the master gate, creating the settings row
// with defaults when the artist has none yet.
func (r *SettingsRepo) SetBooksOpen(ctx context.Context, artistID uint64, open bool) (model.BookingSettings, error) {
	const q = `INSERT INTO booking_settings (artist_id, books_open, timezone)
	           VALUES (?, ?, 'UTC')
	           ON DUPLICATE KEY UPDATE books_open = VALUES(books_open)`
	if _, err := r.db.ExecContext(ctx, q, artistID, open); err != nil {
		return model.BookingSettings{}, err
	}
	return r.GetForArtist(ctx, artistID)
}
