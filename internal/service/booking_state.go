package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/inkdesk/artist-booking/internal/model"
	"github.com/inkdesk/artist-booking/internal/repository"
)

// SettingsStore is the settings surface the controller writes through.
type SettingsStore interface {
	SettingsReader
	SetBooksOpen(ctx context.Context, artistID uint64, open bool) (model.BookingSettings, error)
}

// HoursStore is the working-hours surface the controller drives.
type HoursStore interface {
	WorkingHoursReader
	Replace(ctx context.Context, artistID uint64, hours []model.WorkingHour) ([]model.WorkingHour, error)
}

// BookingStateController owns the books open/closed state machine and
// the coupling between the weekly schedule and the master gate:
// opening requires at least one open day, and a schedule that loses
// its last open day drags the gate shut with it.
//
// Writes resolve by last-write-wins at the persistence layer.  Clients
// that flip state optimistically revert to the returned authoritative
// settings when a call fails.
type BookingStateController struct {
	Settings SettingsStore
	Hours    HoursStore
	Log      zerolog.Logger
}

// OpenBooks transitions Closed -> Open.  The transition is rejected
// with ErrRequiresAvailability while the artist's schedule holds no
// open day; callers should prompt for working hours and retry.
func (c *BookingStateController) OpenBooks(ctx context.Context, artistID uint64) (model.BookingSettings, error) {
	hours, err := c.Hours.GetForArtist(ctx, artistID)
	if err != nil {
		return model.BookingSettings{}, err
	}
	if !model.HasOpenDay(hours) {
		return model.BookingSettings{}, repository.ErrRequiresAvailability
	}
	settings, err := c.Settings.SetBooksOpen(ctx, artistID, true)
	if err != nil {
		return model.BookingSettings{}, err
	}
	c.Log.Info().Uint64("artist_id", artistID).Msg("books opened")
	return settings, nil
}

// CloseBooks transitions Open -> Closed.  Always permitted: the gate
// is a display flag, not a transactional lock, so there is no grace
// period and nothing in flight to protect.  Availability is computed
// fresh per request, so closing takes effect on the very next view.
func (c *BookingStateController) CloseBooks(ctx context.Context, artistID uint64) (model.BookingSettings, error) {
	settings, err := c.Settings.SetBooksOpen(ctx, artistID, false)
	if err != nil {
		return model.BookingSettings{}, err
	}
	c.Log.Info().Uint64("artist_id", artistID).Msg("books closed")
	return settings, nil
}

// SaveWorkingHours replaces the artist's schedule wholesale and
// reconciles the master gate with the result:
//   - a saved set with zero open days forces books closed, whatever
//     their previous state;
//   - when openIntent is set and the saved set has an open day, the
//     pending open completes automatically;
//   - when openIntent is set but the set still has no open day, the
//     toggle silently stays closed.
//
// The stored schedule and the resulting settings are both returned so
// the client can reconcile its local state in one round trip.
func (c *BookingStateController) SaveWorkingHours(ctx context.Context, artistID uint64, hours []model.WorkingHour, openIntent bool) ([]model.WorkingHour, model.BookingSettings, error) {
	saved, err := c.Hours.Replace(ctx, artistID, hours)
	if err != nil {
		return nil, model.BookingSettings{}, err
	}

	open := model.HasOpenDay(saved)
	var settings model.BookingSettings
	switch {
	case !open:
		// Hours with no open day can never justify an open book.
		settings, err = c.Settings.SetBooksOpen(ctx, artistID, false)
	case openIntent:
		settings, err = c.Settings.SetBooksOpen(ctx, artistID, true)
	default:
		settings, err = c.currentSettings(ctx, artistID)
	}
	if err != nil {
		return nil, model.BookingSettings{}, err
	}
	return saved, settings, nil
}

func (c *BookingStateController) currentSettings(ctx context.Context, artistID uint64) (model.BookingSettings, error) {
	settings, err := c.Settings.GetForArtist(ctx, artistID)
	if errors.Is(err, repository.ErrNotFound) {
		// No settings row yet: books are closed by definition.
		return model.BookingSettings{ArtistID: artistID}, nil
	}
	return settings, err
}
