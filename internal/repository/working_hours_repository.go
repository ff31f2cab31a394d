package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/inkdesk/artist-booking/internal/model"
)

// WorkingHoursRepo persists the recurring weekly schedule.  A schedule
// is always written as a complete 7-entry set; partial per-day patches
// are not supported at this layer.
type WorkingHoursRepo struct {
	db *sql.DB
}

// NewWorkingHoursRepo constructs a WorkingHoursRepo given a DB handle.
func NewWorkingHoursRepo(db *sql.DB) *WorkingHoursRepo {
	return &WorkingHoursRepo{db: db}
}

// ValidateWeek checks that hours form a canonical weekly set: exactly
// seven entries whose day_of_week values cover {0..6} with no
// duplicates, parseable HH:MM:SS times, and start before end on every
// open day.  It returns a ValidationError describing the first
// violation found.
func ValidateWeek(hours []model.WorkingHour) error {
	if len(hours) != 7 {
		return Invalid("hours", fmt.Sprintf("expected 7 entries, got %d", len(hours)))
	}
	seen := map[int]bool{}
	for _, h := range hours {
		if h.DayOfWeek < 0 || h.DayOfWeek > 6 {
			return Invalid("day_of_week", fmt.Sprintf("value %d out of range 0-6", h.DayOfWeek))
		}
		if seen[h.DayOfWeek] {
			return Invalid("day_of_week", fmt.Sprintf("duplicate entry for day %d", h.DayOfWeek))
		}
		seen[h.DayOfWeek] = true
		if h.IsDayOff {
			continue
		}
		start, err := time.Parse("15:04:05", h.StartTime)
		if err != nil {
			return Invalid("start_time", fmt.Sprintf("day %d: %q is not HH:MM:SS", h.DayOfWeek, h.StartTime))
		}
		end, err := time.Parse("15:04:05", h.EndTime)
		if err != nil {
			return Invalid("end_time", fmt.Sprintf("day %d: %q is not HH:MM:SS", h.DayOfWeek, h.EndTime))
		}
		if !start.Before(end) {
			return Invalid("end_time", fmt.Sprintf("day %d: end must be after start", h.DayOfWeek))
		}
	}
	return nil
}

// GetForArtist returns the artist's weekly schedule ordered by day of
// week.  An artist that has never saved hours gets an empty slice, not
// an error; callers treat that the same as a week of day-offs.
func (r *WorkingHoursRepo) GetForArtist(ctx context.Context, artistID uint64) ([]model.WorkingHour, error) {
	const q = `SELECT id, artist_id, day_of_week, start_time, end_time, is_day_off, created_at, updated_at
	           FROM working_hours WHERE artist_id = ? ORDER BY day_of_week`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, fmt.Errorf("%w: list working hours: %v", ErrTransientFetch, err)
	}
	defer rows.Close()

	var out []model.WorkingHour
	for rows.Next() {
		var h model.WorkingHour
		if err := rows.Scan(&h.ID, &h.ArtistID, &h.DayOfWeek, &h.StartTime, &h.EndTime, &h.IsDayOff, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Replace atomically swaps the artist's schedule for the supplied
// 7-entry set.  Either the whole set replaces the prior one or, on any
// failure, nothing changes.  Day-off entries are canonicalized to
// 00:00:00 before writing.  The stored set is returned.
func (r *WorkingHoursRepo) Replace(ctx context.Context, artistID uint64, hours []model.WorkingHour) ([]model.WorkingHour, error) {
	if err := ValidateWeek(hours); err != nil {
		return nil, err
	}
	model.CanonicalizeWeek(hours)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM working_hours WHERE artist_id = ?`, artistID); err != nil {
		return nil, err
	}

	// Bulk insert: one statement, five placeholders per entry.
	query := `INSERT INTO working_hours (artist_id, day_of_week, start_time, end_time, is_day_off) VALUES `
	args := make([]interface{}, 0, len(hours)*5)
	for i, h := range hours {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, artistID, h.DayOfWeek, h.StartTime, h.EndTime, h.IsDayOff)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetForArtist(ctx, artistID)
}
