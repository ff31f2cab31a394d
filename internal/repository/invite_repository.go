package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/inkdesk/artist-booking/internal/model"
)

// InviteRepo persists direct booking invitations.
type InviteRepo struct {
	db *sql.DB
}

// NewInviteRepo constructs an InviteRepo given a DB handle.
func NewInviteRepo(db *sql.DB) *InviteRepo {
	return &InviteRepo{db: db}
}

// Create inserts the invite in SENT state and returns it with its
// assigned ID.
func (r *InviteRepo) Create(ctx context.Context, inv model.Invite) (model.Invite, error) {
	inv.Status = model.InviteSent
	const q = `INSERT INTO invites (artist_id, date, booking_type, guest_email, guest_name, note, status, token_hash)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		inv.ArtistID, inv.Date.Format("2006-01-02"), inv.BookingType,
		inv.GuestEmail, inv.GuestName, inv.Note, inv.Status, inv.TokenHash,
	)
	if err != nil {
		return model.Invite{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Invite{}, err
	}
	inv.ID = uint64(id)
	return inv, nil
}

// GetByID loads an invite or ErrNotFound.
func (r *InviteRepo) GetByID(ctx context.Context, id uint64) (model.Invite, error) {
	const q = `SELECT id, artist_id, date, booking_type, guest_email, guest_name, note, status, token_hash, created_at, redeemed_at
	           FROM invites WHERE id = ?`
	var inv model.Invite
	var guestName, note sql.NullString
	var redeemedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&inv.ID, &inv.ArtistID, &inv.Date, &inv.BookingType, &inv.GuestEmail,
		&guestName, &note, &inv.Status, &inv.TokenHash, &inv.CreatedAt, &redeemedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Invite{}, fmt.Errorf("%w: invite %d", ErrNotFound, id)
	}
	if err != nil {
		return model.Invite{}, fmt.Errorf("%w: load invite: %v", ErrTransientFetch, err)
	}
	inv.GuestName = guestName.String
	inv.Note = note.String
	if redeemedAt.Valid {
		t := redeemedAt.Time
		inv.RedeemedAt = &t
	}
	return inv, nil
}

// ListForArtist returns the artist's invites, newest first.
func (r *InviteRepo) ListForArtist(ctx context.Context, artistID uint64) ([]model.Invite, error) {
	const q = `SELECT id, artist_id, date, booking_type, guest_email, guest_name, note, status, token_hash, created_at, redeemed_at
	           FROM invites WHERE artist_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, fmt.Errorf("%w: list invites: %v", ErrTransientFetch, err)
	}
	defer rows.Close()

	var out []model.Invite
	for rows.Next() {
		var inv model.Invite
		var guestName, note sql.NullString
		var redeemedAt sql.NullTime
		if err := rows.Scan(
			&inv.ID, &inv.ArtistID, &inv.Date, &inv.BookingType, &inv.GuestEmail,
			&guestName, &note, &inv.Status, &inv.TokenHash, &inv.CreatedAt, &redeemedAt,
		); err != nil {
			return nil, err
		}
		inv.GuestName = guestName.String
		inv.Note = note.String
		if redeemedAt.Valid {
			t := redeemedAt.Time
			inv.RedeemedAt = &t
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// MarkRedeemed flips a SENT invite to REDEEMED exactly once.  A second
// redemption attempt affects zero rows and returns ErrConflict.
func (r *InviteRepo) MarkRedeemed(ctx context.Context, id uint64) error {
	const q = `UPDATE invites SET status = ?, redeemed_at = NOW() WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, model.InviteRedeemed, id, model.InviteSent)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: invite %d already redeemed", ErrConflict, id)
	}
	return nil
}
