package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/inkdesk/artist-booking/internal/model"
)

// AppointmentRepo exposes the booking ledger.  The availability path
// only ever reads from it; the single write, CreatePending, exists for
// invite redemption and records a request that does not yet block any
// date.
type AppointmentRepo struct {
	db *sql.DB
}

// NewAppointmentRepo constructs an AppointmentRepo given a DB handle.
func NewAppointmentRepo(db *sql.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

// ListForRange returns every appointment for the artist whose time
// range overlaps [from, to).  Failures are classified as transient so
// the availability service can degrade to "no known conflicts" instead
// of failing the whole computation.
func (r *AppointmentRepo) ListForRange(ctx context.Context, artistID uint64, from, to time.Time) ([]model.Appointment, error) {
	const q = `SELECT id, artist_id, starts_at, ends_at, status, booking_type, note, created_at, updated_at
	           FROM appointments
	           WHERE artist_id = ? AND starts_at < ? AND ends_at >= ?
	           ORDER BY starts_at`
	rows, err := r.db.QueryContext(ctx, q, artistID, to, from)
	if err != nil {
		return nil, fmt.Errorf("%w: list appointments: %v", ErrTransientFetch, err)
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		var note sql.NullString
		if err := rows.Scan(&a.ID, &a.ArtistID, &a.StartsAt, &a.EndsAt, &a.Status, &a.BookingType, &note, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.Note = note.String
		out = append(out, a)
	}
	return out, rows.Err()
}

// CreatePending inserts an appointment in PENDING state and returns it
// with its assigned ID.  Pending appointments never block availability.
func (r *AppointmentRepo) CreatePending(ctx context.Context, a model.Appointment) (model.Appointment, error) {
	a.Status = model.AppointmentPending
	const q = `INSERT INTO appointments (artist_id, starts_at, ends_at, status, booking_type, note)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.ArtistID, a.StartsAt, a.EndsAt, a.Status, a.BookingType, a.Note)
	if err != nil {
		return model.Appointment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Appointment{}, err
	}
	a.ID = uint64(id)
	return a, nil
}
