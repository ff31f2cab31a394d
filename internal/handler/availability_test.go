package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkdesk/artist-booking/internal/availability"
	"github.com/inkdesk/artist-booking/internal/repository"
	"github.com/inkdesk/artist-booking/internal/service"
)

type fakeViewer struct {
	view service.MonthView
	err  error

	gotArtist uint64
	gotType   availability.BookingType
	gotYear   int
	gotMonth  time.Month
}

func (f *fakeViewer) MonthView(_ context.Context, artistID uint64, bt availability.BookingType, year int, month time.Month) (service.MonthView, error) {
	f.gotArtist, f.gotType, f.gotYear, f.gotMonth = artistID, bt, year, month
	return f.view, f.err
}

func availabilityRequest(t *testing.T, target string) (*fakeViewer, *httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/artists/:id/availability")
	c.SetParamNames("id")
	c.SetParamValues("7")
	return &fakeViewer{}, rec, c
}

func TestGetArtistAvailabilityDefaults(t *testing.T) {
	viewer, rec, c := availabilityRequest(t, "/v1/artists/7/availability")
	viewer.view = service.MonthView{
		ArtistID:    7,
		BookingType: availability.Appointment,
		Month:       "2025-09",
		Days: map[string]availability.Entry{
			"2025-09-01": {Date: "2025-09-01", Consultation: true, Appointment: true},
		},
		Busy:    []string{},
		Summary: availability.Summary{AvailableCount: 1, NextAvailable: "2025-09-01"},
	}

	if err := NewAvailabilityHandler(viewer).GetArtistAvailability(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if viewer.gotArtist != 7 {
		t.Fatalf("expected artist 7, got %d", viewer.gotArtist)
	}
	if viewer.gotType != availability.Appointment {
		t.Fatalf("expected default type appointment, got %s", viewer.gotType)
	}
	if viewer.gotYear != 0 {
		t.Fatal("absent month param must pass zero year through")
	}

	var body service.MonthView
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Summary.NextAvailable != "2025-09-01" {
		t.Fatalf("unexpected summary: %+v", body.Summary)
	}
}

func TestGetArtistAvailabilityParsesQuery(t *testing.T) {
	viewer, rec, c := availabilityRequest(t, "/v1/artists/7/availability?type=consultation&month=2025-10")

	if err := NewAvailabilityHandler(viewer).GetArtistAvailability(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if viewer.gotType != availability.Consultation {
		t.Fatalf("expected consultation, got %s", viewer.gotType)
	}
	if viewer.gotYear != 2025 || viewer.gotMonth != time.October {
		t.Fatalf("expected 2025-10, got %d-%d", viewer.gotYear, viewer.gotMonth)
	}
}

func TestGetArtistAvailabilityRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		target string
	}{
		{"bad type", "/v1/artists/7/availability?type=walkin"},
		{"bad month", "/v1/artists/7/availability?month=October"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			viewer, rec, c := availabilityRequest(t, tc.target)
			if err := NewAvailabilityHandler(viewer).GetArtistAvailability(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestGetArtistAvailabilityMapsErrors(t *testing.T) {
	viewer, rec, c := availabilityRequest(t, "/v1/artists/7/availability")
	viewer.err = repository.ErrTransientFetch

	if err := NewAvailabilityHandler(viewer).GetArtistAvailability(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for transient failure, got %d", rec.Code)
	}
}
