package service

import (
	"context"
	"time"

	"github.com/inkdesk/artist-booking/internal/model"
	"github.com/inkdesk/artist-booking/internal/repository"
)

// In-memory fakes for the store interfaces. They mimic the real
// repositories closely enough for controller semantics: Replace runs
// the same week validation, MarkRedeemed is conditional on status.

type fakeHours struct {
	hours []model.WorkingHour
	err   error
	gets  int
}

func (f *fakeHours) GetForArtist(context.Context, uint64) ([]model.WorkingHour, error) {
	f.gets++
	return f.hours, f.err
}

func (f *fakeHours) Replace(_ context.Context, artistID uint64, hours []model.WorkingHour) ([]model.WorkingHour, error) {
	if err := repository.ValidateWeek(hours); err != nil {
		return nil, err
	}
	model.CanonicalizeWeek(hours)
	for i := range hours {
		hours[i].ArtistID = artistID
	}
	f.hours = hours
	return hours, nil
}

type fakeSettings struct {
	settings model.BookingSettings
	err      error
	sets     []bool
}

func (f *fakeSettings) GetForArtist(context.Context, uint64) (model.BookingSettings, error) {
	if f.err != nil {
		return model.BookingSettings{}, f.err
	}
	return f.settings, nil
}

func (f *fakeSettings) SetBooksOpen(_ context.Context, artistID uint64, open bool) (model.BookingSettings, error) {
	f.sets = append(f.sets, open)
	f.settings.ArtistID = artistID
	f.settings.BooksOpen = open
	f.err = nil
	return f.settings, nil
}

type fakeAppointments struct {
	appts   []model.Appointment
	err     error
	lists   int
	created []model.Appointment
}

func (f *fakeAppointments) ListForRange(context.Context, uint64, time.Time, time.Time) ([]model.Appointment, error) {
	f.lists++
	return f.appts, f.err
}

func (f *fakeAppointments) CreatePending(_ context.Context, a model.Appointment) (model.Appointment, error) {
	a.ID = uint64(len(f.created) + 1)
	a.Status = model.AppointmentPending
	f.created = append(f.created, a)
	return a, nil
}

type fakeBusy struct {
	events []model.ExternalEvent
	err    error
	lists  int
}

func (f *fakeBusy) ListEvents(context.Context, uint64, time.Time, time.Time) ([]model.ExternalEvent, error) {
	f.lists++
	return f.events, f.err
}

type fakeInvites struct {
	byID   map[uint64]model.Invite
	nextID uint64
}

func newFakeInvites() *fakeInvites {
	return &fakeInvites{byID: map[uint64]model.Invite{}}
}

func (f *fakeInvites) Create(_ context.Context, inv model.Invite) (model.Invite, error) {
	f.nextID++
	inv.ID = f.nextID
	inv.Status = model.InviteSent
	inv.CreatedAt = time.Now()
	f.byID[inv.ID] = inv
	return inv, nil
}

func (f *fakeInvites) GetByID(_ context.Context, id uint64) (model.Invite, error) {
	inv, ok := f.byID[id]
	if !ok {
		return model.Invite{}, repository.ErrNotFound
	}
	return inv, nil
}

func (f *fakeInvites) ListForArtist(_ context.Context, artistID uint64) ([]model.Invite, error) {
	var out []model.Invite
	for _, inv := range f.byID {
		if inv.ArtistID == artistID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvites) MarkRedeemed(_ context.Context, id uint64) error {
	inv, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	if inv.Status != model.InviteSent {
		return repository.ErrConflict
	}
	inv.Status = model.InviteRedeemed
	now := time.Now()
	inv.RedeemedAt = &now
	f.byID[id] = inv
	return nil
}

// openWeek builds a 7-entry schedule with the listed days open.
func openWeek(days ...int) []model.WorkingHour {
	open := map[int]bool{}
	for _, d := range days {
		open[d] = true
	}
	var hours []model.WorkingHour
	for d := 0; d < 7; d++ {
		h := model.WorkingHour{DayOfWeek: d, IsDayOff: true, StartTime: "00:00:00", EndTime: "00:00:00"}
		if open[d] {
			h.IsDayOff = false
			h.StartTime = "10:00:00"
			h.EndTime = "18:00:00"
		}
		hours = append(hours, h)
	}
	return hours
}
