package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/inkdesk/artist-booking/internal/model"
	"github.com/inkdesk/artist-booking/internal/repository"
)

// TokenStore persists per-artist OAuth tokens as opaque JSON.
type TokenStore interface {
	Get(ctx context.Context, artistID uint64) (string, error)
	Save(ctx context.Context, artistID uint64, tokenJSON string) error
}

// NewGoogleConfig builds the OAuth2 configuration for read-only Google
// Calendar access from environment variables.  It returns nil when the
// integration is not configured, and callers then fall back to the
// Disabled source.
func NewGoogleConfig() *oauth2.Config {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	redirectURL := os.Getenv("GOOGLE_REDIRECT_URL")
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{gcal.CalendarReadonlyScope},
		Endpoint:     google.Endpoint,
	}
}

// GoogleSource implements BusySource on top of the Google Calendar
// API.  Artists connect through the OAuth flow exposed by the calendar
// handler; their tokens live in the TokenStore.
type GoogleSource struct {
	cfg    *oauth2.Config
	tokens TokenStore
}

// NewGoogleSource wires the OAuth config to the token store.
func NewGoogleSource(cfg *oauth2.Config, tokens TokenStore) *GoogleSource {
	return &GoogleSource{cfg: cfg, tokens: tokens}
}

// AuthURL returns the consent URL for the given artist.  The state
// parameter carries the artist ID so the callback can attribute the
// exchanged token.
func (s *GoogleSource) AuthURL(artistID uint64) string {
	state := fmt.Sprintf("artist_%d_%d", artistID, time.Now().Unix())
	return s.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades the callback code for a token and persists it for
// the artist.
func (s *GoogleSource) Exchange(ctx context.Context, artistID uint64, code string) error {
	tok, err := s.cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange code: %w", err)
	}
	raw, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return s.tokens.Save(ctx, artistID, string(raw))
}

// ListEvents fetches the artist's calendar events overlapping
// [from, to].  An artist without a stored token gets an empty list and
// a nil error.  API failures are classified as transient so the
// availability service can degrade to "no overlay" instead of failing.
func (s *GoogleSource) ListEvents(ctx context.Context, artistID uint64, from, to time.Time) ([]model.ExternalEvent, error) {
	tokJSON, err := s.tokens.Get(ctx, artistID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal([]byte(tokJSON), &tok); err != nil {
		return nil, fmt.Errorf("%w: stored token unreadable: %v", repository.ErrTransientFetch, err)
	}

	client := s.cfg.Client(ctx, &tok)
	srv, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("%w: calendar service: %v", repository.ErrTransientFetch, err)
	}

	call := srv.Events.List("primary").
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(250).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339))

	events, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: list calendar events: %v", repository.ErrTransientFetch, err)
	}

	out := make([]model.ExternalEvent, 0, len(events.Items))
	for _, item := range events.Items {
		if ev, ok := eventFromItem(item); ok {
			out = append(out, ev)
		}
	}
	return out, nil
}

// eventFromItem maps one Google event to the overlay model.  All-day
// events carry a date (YYYY-MM-DD); timed events carry an RFC3339
// datetime.  Cancelled or unparseable items are skipped.
func eventFromItem(item *gcal.Event) (model.ExternalEvent, bool) {
	if item == nil || item.Status == "cancelled" || item.Start == nil || item.End == nil {
		return model.ExternalEvent{}, false
	}
	ev := model.ExternalEvent{ID: item.Id, Title: item.Summary, Source: "google"}

	switch {
	case item.Start.DateTime != "":
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return model.ExternalEvent{}, false
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			return model.ExternalEvent{}, false
		}
		ev.StartsAt, ev.EndsAt = start, end
	case item.Start.Date != "":
		start, err := time.Parse("2006-01-02", item.Start.Date)
		if err != nil {
			return model.ExternalEvent{}, false
		}
		end, err := time.Parse("2006-01-02", item.End.Date)
		if err != nil {
			return model.ExternalEvent{}, false
		}
		// Google's all-day end date is exclusive; pull it back one day
		// so the overlay range is inclusive of both boundary dates.
		ev.StartsAt = start
		ev.EndsAt = end.AddDate(0, 0, -1)
		if ev.EndsAt.Before(ev.StartsAt) {
			ev.EndsAt = ev.StartsAt
		}
		ev.AllDay = true
	default:
		return model.ExternalEvent{}, false
	}
	return ev, true
}
