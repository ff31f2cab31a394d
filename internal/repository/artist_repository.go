package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/inkdesk/artist-booking/internal/model"
)

// ArtistRepo reads the public artist directory.  Profile writes are
// owned by the profile service; this side only browses.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo given a DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// List returns directory entries ordered by name.  An optional city
// filter narrows the result; pass "" for all cities.
func (r *ArtistRepo) List(ctx context.Context, city string) ([]model.Artist, error) {
	q := `SELECT id, name, studio_name, city, bio, created_at, updated_at FROM artists`
	var args []interface{}
	if city != "" {
		q += ` WHERE city = ?`
		args = append(args, city)
	}
	q += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list artists: %v", ErrTransientFetch, err)
	}
	defer rows.Close()

	var out []model.Artist
	for rows.Next() {
		var a model.Artist
		if err := rows.Scan(&a.ID, &a.Name, &a.StudioName, &a.City, &a.Bio, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetByID loads a single artist or ErrNotFound.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (model.Artist, error) {
	const q = `SELECT id, name, studio_name, city, bio, created_at, updated_at FROM artists WHERE id = ?`
	var a model.Artist
	err := r.db.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.Name, &a.StudioName, &a.City, &a.Bio, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Artist{}, fmt.Errorf("%w: artist %d", ErrNotFound, id)
	}
	if err != nil {
		return model.Artist{}, fmt.Errorf("%w: load artist: %v", ErrTransientFetch, err)
	}
	return a, nil
}
