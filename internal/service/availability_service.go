// Package service hosts the request-scoped coordinators that sit
// between HTTP handlers and the repositories: availability assembly,
// the books open/closed state machine, and direct invitations.
package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkdesk/artist-booking/internal/availability"
	"github.com/inkdesk/artist-booking/internal/calendar"
	"github.com/inkdesk/artist-booking/internal/model"
	"github.com/inkdesk/artist-booking/internal/repository"
)

// WorkingHoursReader loads the weekly schedule for one artist.
type WorkingHoursReader interface {
	GetForArtist(ctx context.Context, artistID uint64) ([]model.WorkingHour, error)
}

// AppointmentReader lists appointments overlapping a window.
type AppointmentReader interface {
	ListForRange(ctx context.Context, artistID uint64, from, to time.Time) ([]model.Appointment, error)
}

// SettingsReader loads booking settings for one artist.
type SettingsReader interface {
	GetForArtist(ctx context.Context, artistID uint64) (model.BookingSettings, error)
}

// AvailabilityService assembles one month view of an artist's booking
// calendar.  It owns the fetch-then-compute flow: settings first (the
// master gate), then working hours, the appointment ledger and the
// external busy overlay in parallel, then the pure engine.  The
// service itself caches nothing; every call computes fresh.
type AvailabilityService struct {
	Hours         WorkingHoursReader
	Appointments  AppointmentReader
	Settings      SettingsReader
	Busy          calendar.BusySource
	HorizonMonths int
	Log           zerolog.Logger

	// now is swapped out in tests; zero value means time.Now.
	now func() time.Time
}

// MonthView is the client-facing availability payload for one
// displayed month.
type MonthView struct {
	ArtistID    uint64                          `json:"artist_id"`
	BookingType availability.BookingType        `json:"booking_type"`
	Month       string                          `json:"month"` // YYYY-MM
	Days        map[string]availability.Entry   `json:"days"`
	Busy        []string                        `json:"busy"`
	Summary     availability.Summary            `json:"summary"`
}

// MonthView computes availability for the artist and returns the slice
// of it belonging to the requested displayed month.  Zero year selects
// the current month in the artist's timezone.
//
// Ledger and overlay fetch failures degrade to empty inputs: showing
// some availability beats hiding all of it behind a transient error.
// A working-hours fetch failure is fatal for the request since the
// schedule is the ground truth the engine runs on.
func (s *AvailabilityService) MonthView(ctx context.Context, artistID uint64, bt availability.BookingType, year int, month time.Month) (MonthView, error) {
	settings, err := s.Settings.GetForArtist(ctx, artistID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Never configured booking: books are closed by definition.
			settings = model.BookingSettings{ArtistID: artistID}
		} else {
			return MonthView{}, err
		}
	}

	loc := settings.Location()
	asOf := s.clock()().In(loc)
	if year == 0 {
		year, month = asOf.Year(), asOf.Month()
	}

	view := MonthView{
		ArtistID:    artistID,
		BookingType: bt,
		Month:       time.Date(year, month, 1, 0, 0, 0, 0, loc).Format("2006-01"),
		Days:        map[string]availability.Entry{},
		Busy:        []string{},
		Summary:     availability.Summary{NextAvailable: availability.NoneAvailable},
	}
	if !settings.BooksOpen {
		// Terminal short-circuit: no fetches, empty map.
		return view, nil
	}

	from := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, loc)
	to := time.Date(asOf.Year(), asOf.Month()+time.Month(s.HorizonMonths)+1, 1, 0, 0, 0, 0, loc)

	// The three sources are causally independent; fetch them in
	// parallel and let the request context cancel stale work.
	var (
		wg       sync.WaitGroup
		hours    []model.WorkingHour
		appts    []model.Appointment
		events   []model.ExternalEvent
		hoursErr error
		apptErr  error
		busyErr  error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		hours, hoursErr = s.Hours.GetForArtist(ctx, artistID)
	}()
	go func() {
		defer wg.Done()
		appts, apptErr = s.Appointments.ListForRange(ctx, artistID, from, to)
	}()
	go func() {
		defer wg.Done()
		events, busyErr = s.Busy.ListEvents(ctx, artistID, from, to)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		// The triggering window went stale mid-fetch; discard results.
		return MonthView{}, err
	}
	if hoursErr != nil {
		return MonthView{}, hoursErr
	}
	if apptErr != nil {
		s.Log.Warn().Err(apptErr).Uint64("artist_id", artistID).Msg("appointment fetch degraded to empty")
		appts = nil
	}
	if busyErr != nil {
		s.Log.Warn().Err(busyErr).Uint64("artist_id", artistID).Msg("busy overlay degraded to empty")
		events = nil
	}

	res := availability.Compute(availability.Input{
		BooksOpen:    settings.BooksOpen,
		WorkingHours: hours,
		Appointments: appts,
		Events:       events,
	}, asOf, s.HorizonMonths)

	view.Days = res.Days
	view.Busy = sortedKeys(res.Busy)
	view.Summary = availability.MonthSummary(res.Days, year, month, bt)
	return view, nil
}

func (s *AvailabilityService) clock() func() time.Time {
	if s.now != nil {
		return s.now
	}
	return time.Now
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
