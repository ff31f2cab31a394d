package model

import "time"

// Artist is the public directory record for a tattoo artist.  Profile
// management beyond this projection (images, portfolio, studio CRUD)
// is owned by other services.
type Artist struct {
	ID         uint64    `json:"id"`          // artists.id
	Name       string    `json:"name"`        // artists.name
	StudioName string    `json:"studio_name"` // artists.studio_name
	City       string    `json:"city"`        // artists.city
	Bio        string    `json:"bio"`         // artists.bio
	CreatedAt  time.Time `json:"created_at"`  // artists.created_at
	UpdatedAt  time.Time `json:"-"`           // artists.updated_at
}
