package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/inkdesk/artist-booking/internal/model"
	"github.com/inkdesk/artist-booking/internal/queue"
	"github.com/inkdesk/artist-booking/internal/repository"
	"github.com/inkdesk/artist-booking/internal/utils"
)

func newCoordinator(invites *fakeInvites, appts *fakeAppointments) (*InviteCoordinator, *[]queue.InviteSentEvent) {
	published := &[]queue.InviteSentEvent{}
	pub := func(_ context.Context, ev queue.InviteSentEvent) error {
		*published = append(*published, ev)
		return nil
	}
	return NewInviteCoordinator(invites, appts, pub, 4, zerolog.Nop()), published
}

func validInvite() InviteRequest {
	return InviteRequest{
		ArtistID:    1,
		Date:        "2025-09-07", // a Sunday the generic calendar may well refuse
		BookingType: "consultation",
		GuestEmail:  "guest@example.com",
		GuestName:   "Sam",
	}
}

func TestSendInviteRequiresGuestEmail(t *testing.T) {
	ic, published := newCoordinator(newFakeInvites(), &fakeAppointments{})

	req := validInvite()
	req.GuestEmail = ""
	_, _, err := ic.SendInvite(context.Background(), req)
	if !errors.Is(err, repository.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(*published) != 0 {
		t.Fatal("invalid invite must not publish")
	}
}

func TestSendInviteRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*InviteRequest)
	}{
		{"malformed email", func(r *InviteRequest) { r.GuestEmail = "not-an-email" }},
		{"bad date", func(r *InviteRequest) { r.Date = "07/09/2025" }},
		{"unknown type", func(r *InviteRequest) { r.BookingType = "walkin" }},
		{"missing artist", func(r *InviteRequest) { r.ArtistID = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ic, _ := newCoordinator(newFakeInvites(), &fakeAppointments{})
			req := validInvite()
			tc.mutate(&req)
			if _, _, err := ic.SendInvite(context.Background(), req); !errors.Is(err, repository.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestSendInviteBypassesAvailability(t *testing.T) {
	// The coordinator takes no availability dependency at all: an
	// invite for any date succeeds without consulting the engine.
	invites := newFakeInvites()
	ic, published := newCoordinator(invites, &fakeAppointments{})

	inv, raw, err := ic.SendInvite(context.Background(), validInvite())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.ID == 0 || inv.Status != model.InviteSent {
		t.Fatalf("unexpected invite: %+v", inv)
	}
	if raw == "" || raw == inv.TokenHash {
		t.Fatal("raw token must be returned and differ from the stored hash")
	}
	if !utils.CheckInviteToken(inv.TokenHash, raw) {
		t.Fatal("stored hash must verify the raw token")
	}
	if len(*published) != 1 {
		t.Fatalf("expected one published event, got %d", len(*published))
	}
	ev := (*published)[0]
	if ev.InviteID != inv.ID || ev.Date != "2025-09-07" || ev.GuestEmail != "guest@example.com" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestSendInviteSurvivesPublishFailure(t *testing.T) {
	invites := newFakeInvites()
	pub := func(context.Context, queue.InviteSentEvent) error { return errors.New("broker down") }
	ic := NewInviteCoordinator(invites, &fakeAppointments{}, pub, 4, zerolog.Nop())

	inv, _, err := ic.SendInvite(context.Background(), validInvite())
	if err != nil {
		t.Fatalf("publish failure must not fail the invite: %v", err)
	}
	if inv.ID == 0 {
		t.Fatal("invite must still be persisted")
	}
}

func TestRedeemWrongToken(t *testing.T) {
	invites := newFakeInvites()
	ic, _ := newCoordinator(invites, &fakeAppointments{})
	inv, _, err := ic.SendInvite(context.Background(), validInvite())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ic.Redeem(context.Background(), inv.ID, "wrong-token"); !errors.Is(err, repository.ErrValidation) {
		t.Fatalf("expected ErrValidation for wrong token, got %v", err)
	}
}

func TestRedeemCreatesPendingAppointmentOnce(t *testing.T) {
	invites := newFakeInvites()
	appts := &fakeAppointments{}
	ic, _ := newCoordinator(invites, appts)
	inv, raw, err := ic.SendInvite(context.Background(), validInvite())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	appt, err := ic.Redeem(context.Background(), inv.ID, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.Status != model.AppointmentPending {
		t.Fatalf("redeemed invite must create a PENDING appointment, got %s", appt.Status)
	}
	if got := appt.StartsAt.Format("2006-01-02"); got != "2025-09-07" {
		t.Fatalf("appointment must land on the invited date, got %s", got)
	}
	if appt.EndsAt.Format("2006-01-02") != "2025-09-07" {
		t.Fatal("all-day appointment must not spill into the next date")
	}

	// Tokens are single-use.
	if _, err := ic.Redeem(context.Background(), inv.ID, raw); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("second redemption must conflict, got %v", err)
	}
}

func TestRedeemUnknownInvite(t *testing.T) {
	ic, _ := newCoordinator(newFakeInvites(), &fakeAppointments{})
	if _, err := ic.Redeem(context.Background(), 99, "whatever"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
