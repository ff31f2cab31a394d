package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkdesk/artist-booking/internal/availability"
	"github.com/inkdesk/artist-booking/internal/model"
	"github.com/inkdesk/artist-booking/internal/repository"
)

// September 1st 2025 is a Monday.
var sept1 = time.Date(2025, time.September, 1, 9, 0, 0, 0, time.UTC)

func newAvailabilityService(hours *fakeHours, appts *fakeAppointments, settings *fakeSettings, busy *fakeBusy) *AvailabilityService {
	return &AvailabilityService{
		Hours:         hours,
		Appointments:  appts,
		Settings:      settings,
		Busy:          busy,
		HorizonMonths: 3,
		Log:           zerolog.Nop(),
		now:           func() time.Time { return sept1 },
	}
}

func TestMonthViewClosedBooksShortCircuits(t *testing.T) {
	hours := &fakeHours{hours: openWeek(0, 1, 2, 3, 4, 5, 6)}
	appts := &fakeAppointments{}
	busy := &fakeBusy{}
	settings := &fakeSettings{settings: model.BookingSettings{ArtistID: 1, BooksOpen: false}}
	svc := newAvailabilityService(hours, appts, settings, busy)

	view, err := svc.MonthView(context.Background(), 1, availability.Appointment, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Days) != 0 {
		t.Fatalf("closed books must yield an empty map, got %d entries", len(view.Days))
	}
	if view.Summary.NextAvailable != availability.NoneAvailable {
		t.Fatalf("expected None sentinel, got %q", view.Summary.NextAvailable)
	}
	if hours.gets != 0 || appts.lists != 0 || busy.lists != 0 {
		t.Fatal("closed books must not trigger any fetch")
	}
}

func TestMonthViewNoSettingsMeansClosed(t *testing.T) {
	settings := &fakeSettings{err: repository.ErrNotFound}
	svc := newAvailabilityService(&fakeHours{}, &fakeAppointments{}, settings, &fakeBusy{})

	view, err := svc.MonthView(context.Background(), 42, availability.Consultation, 0, 0)
	if err != nil {
		t.Fatalf("missing settings must not be an error: %v", err)
	}
	if len(view.Days) != 0 {
		t.Fatal("artist without settings has closed books")
	}
}

func TestMonthViewOpenMondays(t *testing.T) {
	hours := &fakeHours{hours: openWeek(1)}
	settings := &fakeSettings{settings: model.BookingSettings{ArtistID: 1, BooksOpen: true, Timezone: "UTC"}}
	svc := newAvailabilityService(hours, &fakeAppointments{}, settings, &fakeBusy{})

	view, err := svc.MonthView(context.Background(), 1, availability.Appointment, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Month != "2025-09" {
		t.Fatalf("expected current month 2025-09, got %s", view.Month)
	}
	if view.Summary.AvailableCount != 5 {
		t.Fatalf("September 2025 holds 5 Mondays, got %d", view.Summary.AvailableCount)
	}
	if view.Summary.NextAvailable != "2025-09-01" {
		t.Fatalf("expected 2025-09-01 next, got %s", view.Summary.NextAvailable)
	}
	if _, ok := view.Days["2025-09-02"]; ok {
		t.Fatal("Tuesday must be closed")
	}
}

func TestMonthViewLedgerFailureDegrades(t *testing.T) {
	hours := &fakeHours{hours: openWeek(1)}
	appts := &fakeAppointments{err: repository.ErrTransientFetch}
	settings := &fakeSettings{settings: model.BookingSettings{BooksOpen: true}}
	svc := newAvailabilityService(hours, appts, settings, &fakeBusy{})

	view, err := svc.MonthView(context.Background(), 1, availability.Appointment, 0, 0)
	if err != nil {
		t.Fatalf("ledger failure must degrade, not abort: %v", err)
	}
	if view.Summary.AvailableCount != 5 {
		t.Fatalf("expected full availability with degraded ledger, got %d", view.Summary.AvailableCount)
	}
}

func TestMonthViewOverlayFailureDegrades(t *testing.T) {
	hours := &fakeHours{hours: openWeek(1)}
	busy := &fakeBusy{err: errors.New("google 503")}
	settings := &fakeSettings{settings: model.BookingSettings{BooksOpen: true}}
	svc := newAvailabilityService(hours, &fakeAppointments{}, settings, busy)

	view, err := svc.MonthView(context.Background(), 1, availability.Appointment, 0, 0)
	if err != nil {
		t.Fatalf("overlay failure must degrade, not abort: %v", err)
	}
	if len(view.Busy) != 0 {
		t.Fatalf("expected empty busy list, got %v", view.Busy)
	}
	if view.Summary.AvailableCount != 5 {
		t.Fatal("availability must be unaffected by overlay failure")
	}
}

func TestMonthViewHoursFailureIsFatal(t *testing.T) {
	hours := &fakeHours{err: repository.ErrTransientFetch}
	settings := &fakeSettings{settings: model.BookingSettings{BooksOpen: true}}
	svc := newAvailabilityService(hours, &fakeAppointments{}, settings, &fakeBusy{})

	if _, err := svc.MonthView(context.Background(), 1, availability.Appointment, 0, 0); err == nil {
		t.Fatal("working-hours fetch failure must surface")
	}
}

func TestMonthViewBusyAnnotatesWithoutGating(t *testing.T) {
	hours := &fakeHours{hours: openWeek(1)}
	busy := &fakeBusy{events: []model.ExternalEvent{{
		ID:       "ev",
		StartsAt: time.Date(2025, time.September, 8, 0, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2025, time.September, 9, 0, 0, 0, 0, time.UTC),
	}}}
	settings := &fakeSettings{settings: model.BookingSettings{BooksOpen: true}}
	svc := newAvailabilityService(hours, &fakeAppointments{}, settings, busy)

	view, err := svc.MonthView(context.Background(), 1, availability.Appointment, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Busy) != 2 || view.Busy[0] != "2025-09-08" || view.Busy[1] != "2025-09-09" {
		t.Fatalf("expected sorted busy dates, got %v", view.Busy)
	}
	if _, ok := view.Days["2025-09-08"]; !ok {
		t.Fatal("busy date must remain bookable")
	}
}

func TestMonthViewCancelledContextDiscards(t *testing.T) {
	hours := &fakeHours{hours: openWeek(1)}
	settings := &fakeSettings{settings: model.BookingSettings{BooksOpen: true}}
	svc := newAvailabilityService(hours, &fakeAppointments{}, settings, &fakeBusy{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.MonthView(ctx, 1, availability.Appointment, 0, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("stale window must be discarded with context error, got %v", err)
	}
}

func TestMonthViewExplicitMonth(t *testing.T) {
	hours := &fakeHours{hours: openWeek(1)}
	settings := &fakeSettings{settings: model.BookingSettings{BooksOpen: true}}
	svc := newAvailabilityService(hours, &fakeAppointments{}, settings, &fakeBusy{})

	view, err := svc.MonthView(context.Background(), 1, availability.Consultation, 2025, time.October)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// October 2025 Mondays: 6, 13, 20, 27.
	if view.Summary.AvailableCount != 4 || view.Summary.NextAvailable != "2025-10-06" {
		t.Fatalf("unexpected October summary: %+v", view.Summary)
	}
}
