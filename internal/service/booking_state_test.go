package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/inkdesk/artist-booking/internal/model"
	"github.com/inkdesk/artist-booking/internal/repository"
)

func newController(hours *fakeHours, settings *fakeSettings) *BookingStateController {
	return &BookingStateController{Settings: settings, Hours: hours, Log: zerolog.Nop()}
}

func TestOpenBooksRequiresOpenDay(t *testing.T) {
	hours := &fakeHours{hours: openWeek()} // every day off
	settings := &fakeSettings{}
	c := newController(hours, settings)

	_, err := c.OpenBooks(context.Background(), 1)
	if !errors.Is(err, repository.ErrRequiresAvailability) {
		t.Fatalf("expected ErrRequiresAvailability, got %v", err)
	}
	if len(settings.sets) != 0 {
		t.Fatal("rejected transition must not touch the gate")
	}
	if settings.settings.BooksOpen {
		t.Fatal("books must remain closed")
	}
}

func TestOpenBooksWithOpenDay(t *testing.T) {
	hours := &fakeHours{hours: openWeek(2)}
	settings := &fakeSettings{}
	c := newController(hours, settings)

	got, err := c.OpenBooks(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.BooksOpen {
		t.Fatal("expected books open after transition")
	}
}

func TestCloseBooksUnconditional(t *testing.T) {
	// Closing never checks hours: even an empty schedule closes fine.
	hours := &fakeHours{err: repository.ErrTransientFetch}
	settings := &fakeSettings{settings: model.BookingSettings{BooksOpen: true}}
	c := newController(hours, settings)

	got, err := c.CloseBooks(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BooksOpen {
		t.Fatal("expected books closed")
	}
	if hours.gets != 0 {
		t.Fatal("closing must not consult working hours")
	}
}

func TestSaveHoursAllDayOffForcesClosed(t *testing.T) {
	hours := &fakeHours{hours: openWeek(1)}
	settings := &fakeSettings{settings: model.BookingSettings{BooksOpen: true}}
	c := newController(hours, settings)

	_, got, err := c.SaveWorkingHours(context.Background(), 1, openWeek(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BooksOpen {
		t.Fatal("a week of day-offs must force books closed")
	}
}

func TestSaveHoursCompletesPendingOpen(t *testing.T) {
	hours := &fakeHours{}
	settings := &fakeSettings{}
	c := newController(hours, settings)

	saved, got, err := c.SaveWorkingHours(context.Background(), 1, openWeek(1, 3), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.BooksOpen {
		t.Fatal("open intent with an open day must complete the toggle")
	}
	if len(saved) != 7 {
		t.Fatalf("expected stored 7-entry set, got %d", len(saved))
	}
}

func TestSaveHoursOpenIntentSilentlyReverts(t *testing.T) {
	hours := &fakeHours{}
	settings := &fakeSettings{}
	c := newController(hours, settings)

	_, got, err := c.SaveWorkingHours(context.Background(), 1, openWeek(), true)
	if err != nil {
		t.Fatalf("open intent with no open day must not error: %v", err)
	}
	if got.BooksOpen {
		t.Fatal("toggle must silently stay closed")
	}
}

func TestSaveHoursKeepsGateWhenUnaffected(t *testing.T) {
	hours := &fakeHours{}
	settings := &fakeSettings{settings: model.BookingSettings{ArtistID: 1, BooksOpen: true}}
	c := newController(hours, settings)

	_, got, err := c.SaveWorkingHours(context.Background(), 1, openWeek(5), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.BooksOpen {
		t.Fatal("saving a valid week without intent must not flip an open gate")
	}
	if len(settings.sets) != 0 {
		t.Fatal("gate must not be rewritten when unaffected")
	}
}

func TestSaveHoursRejectsInvalidWeek(t *testing.T) {
	hours := &fakeHours{hours: openWeek(1)}
	settings := &fakeSettings{settings: model.BookingSettings{BooksOpen: true}}
	c := newController(hours, settings)

	_, _, err := c.SaveWorkingHours(context.Background(), 1, openWeek(1)[:5], false)
	if !errors.Is(err, repository.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(settings.sets) != 0 {
		t.Fatal("failed save must leave the gate untouched")
	}
}

func TestSaveHoursCanonicalizesDayOff(t *testing.T) {
	hours := &fakeHours{}
	settings := &fakeSettings{}
	c := newController(hours, settings)

	week := openWeek(1)
	week[0].StartTime = "08:00:00" // stale time on a day off
	week[0].EndTime = "16:00:00"
	saved, _, err := c.SaveWorkingHours(context.Background(), 1, week, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved[0].StartTime != "00:00:00" || saved[0].EndTime != "00:00:00" {
		t.Fatalf("day-off times must canonicalize to midnight, got %s-%s", saved[0].StartTime, saved[0].EndTime)
	}
}
