package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/inkdesk/artist-booking/internal/model"
	"github.com/inkdesk/artist-booking/internal/queue"
	"github.com/inkdesk/artist-booking/internal/repository"
	"github.com/inkdesk/artist-booking/internal/utils"
)

// InviteStore is the persistence surface for invitations.
type InviteStore interface {
	Create(ctx context.Context, inv model.Invite) (model.Invite, error)
	GetByID(ctx context.Context, id uint64) (model.Invite, error)
	ListForArtist(ctx context.Context, artistID uint64) ([]model.Invite, error)
	MarkRedeemed(ctx context.Context, id uint64) error
}

// AppointmentWriter records the pending appointment created when a
// guest redeems an invite.
type AppointmentWriter interface {
	CreatePending(ctx context.Context, a model.Appointment) (model.Appointment, error)
}

// InvitePublisher emits the invite-sent event; swapped for a recorder
// in tests.
type InvitePublisher func(ctx context.Context, ev queue.InviteSentEvent) error

// InviteRequest is the validated input for SendInvite.  Only the guest
// email is mandatory beyond the artist/date/type triple.
type InviteRequest struct {
	ArtistID    uint64 `json:"artist_id" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	BookingType string `json:"type" validate:"required,oneof=consultation appointment"`
	GuestEmail  string `json:"guest_email" validate:"required,email"`
	GuestName   string `json:"guest_name" validate:"omitempty,max=120"`
	Note        string `json:"note" validate:"omitempty,max=1000"`
}

// InviteCoordinator sends and redeems direct booking invitations.
// This path is an escape hatch from the availability engine: it never
// consults the engine or its closed-day filter, so an artist can
// invite a guest onto a date the generic calendar would refuse.
type InviteCoordinator struct {
	Invites      InviteStore
	Appointments AppointmentWriter
	Publish      InvitePublisher
	BcryptCost   int
	Log          zerolog.Logger

	validate *validator.Validate
}

// NewInviteCoordinator wires the coordinator and its payload validator.
func NewInviteCoordinator(invites InviteStore, appts AppointmentWriter, publish InvitePublisher, bcryptCost int, log zerolog.Logger) *InviteCoordinator {
	return &InviteCoordinator{
		Invites:      invites,
		Appointments: appts,
		Publish:      publish,
		BcryptCost:   bcryptCost,
		Log:          log,
		validate:     validator.New(),
	}
}

// SendInvite validates the request, persists the invite with a hashed
// single-use redemption token, and publishes the invite-sent event.
// The raw token is returned exactly once for delivery to the guest.
// Publish failures are logged but do not fail the invite; the guest
// notification pipeline is best-effort.
func (ic *InviteCoordinator) SendInvite(ctx context.Context, req InviteRequest) (model.Invite, string, error) {
	if err := ic.validate.Struct(req); err != nil {
		if fields, ok := err.(validator.ValidationErrors); ok && len(fields) > 0 {
			f := fields[0]
			return model.Invite{}, "", repository.Invalid(f.Field(), "failed rule "+f.Tag())
		}
		return model.Invite{}, "", repository.Invalid("", err.Error())
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return model.Invite{}, "", repository.Invalid("date", "must be YYYY-MM-DD")
	}

	raw, err := utils.NewInviteToken()
	if err != nil {
		return model.Invite{}, "", err
	}
	hash, err := utils.HashInviteToken(raw, ic.BcryptCost)
	if err != nil {
		return model.Invite{}, "", err
	}

	inv, err := ic.Invites.Create(ctx, model.Invite{
		ArtistID:    req.ArtistID,
		Date:        date,
		BookingType: req.BookingType,
		GuestEmail:  req.GuestEmail,
		GuestName:   req.GuestName,
		Note:        req.Note,
		TokenHash:   hash,
	})
	if err != nil {
		return model.Invite{}, "", err
	}

	ev := queue.InviteSentEvent{
		InviteID:    inv.ID,
		ArtistID:    inv.ArtistID,
		Date:        inv.DateString(),
		BookingType: inv.BookingType,
		GuestEmail:  inv.GuestEmail,
		GuestName:   inv.GuestName,
		Note:        inv.Note,
		SentAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if err := ic.Publish(ctx, ev); err != nil {
		ic.Log.Warn().Err(err).Uint64("invite_id", inv.ID).Msg("invite event publish failed")
	}
	return inv, raw, nil
}

// ListForArtist returns the artist's invites, newest first.
func (ic *InviteCoordinator) ListForArtist(ctx context.Context, artistID uint64) ([]model.Invite, error) {
	return ic.Invites.ListForArtist(ctx, artistID)
}

// Redeem verifies the single-use token and converts the invite into a
// pending all-day appointment on the invited date.  A wrong token is a
// validation failure; a second redemption surfaces as ErrConflict from
// the store's conditional update.
func (ic *InviteCoordinator) Redeem(ctx context.Context, inviteID uint64, rawToken string) (model.Appointment, error) {
	inv, err := ic.Invites.GetByID(ctx, inviteID)
	if err != nil {
		return model.Appointment{}, err
	}
	if !utils.CheckInviteToken(inv.TokenHash, rawToken) {
		return model.Appointment{}, repository.Invalid("token", "does not match invite")
	}
	if err := ic.Invites.MarkRedeemed(ctx, inv.ID); err != nil {
		return model.Appointment{}, err
	}

	day := time.Date(inv.Date.Year(), inv.Date.Month(), inv.Date.Day(), 0, 0, 0, 0, inv.Date.Location())
	appt, err := ic.Appointments.CreatePending(ctx, model.Appointment{
		ArtistID:    inv.ArtistID,
		StartsAt:    day,
		EndsAt:      day.Add(24*time.Hour - time.Second),
		BookingType: inv.BookingType,
		Note:        inv.Note,
	})
	if err != nil {
		return model.Appointment{}, err
	}
	ic.Log.Info().Uint64("invite_id", inv.ID).Uint64("appointment_id", appt.ID).Msg("invite redeemed")
	return appt, nil
}
