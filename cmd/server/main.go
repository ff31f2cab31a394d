package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkdesk/artist-booking/internal/calendar"
	"github.com/inkdesk/artist-booking/internal/config"
	"github.com/inkdesk/artist-booking/internal/database"
	"github.com/inkdesk/artist-booking/internal/handler"
	"github.com/inkdesk/artist-booking/internal/middleware"
	"github.com/inkdesk/artist-booking/internal/queue"
	"github.com/inkdesk/artist-booking/internal/repository"
	"github.com/inkdesk/artist-booking/internal/router"
	"github.com/inkdesk/artist-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	// Redis is optional; limiter and cache degrade to no-ops without it.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable; rate limiting and response cache disabled")
	}

	// Repositories.
	artists := repository.NewArtistRepo(db)
	hours := repository.NewWorkingHoursRepo(db)
	appointments := repository.NewAppointmentRepo(db)
	settings := repository.NewSettingsRepo(db)
	invites := repository.NewInviteRepo(db)
	calTokens := repository.NewCalendarTokenRepo(db)

	// Google Calendar is optional; without client credentials the
	// availability view simply carries no busy annotations.
	var busy calendar.BusySource = calendar.Disabled{}
	var google *calendar.GoogleSource
	if gcfg := calendar.NewGoogleConfig(); gcfg != nil {
		google = calendar.NewGoogleSource(gcfg, calTokens)
		busy = google
	} else {
		log.Warn().Msg("google calendar credentials not set; busy overlay disabled")
	}

	// Services.
	availabilitySvc := &service.AvailabilityService{
		Hours:         hours,
		Appointments:  appointments,
		Settings:      settings,
		Busy:          busy,
		HorizonMonths: cfg.HorizonMonths,
		Log:           log,
	}
	state := &service.BookingStateController{Settings: settings, Hours: hours, Log: log}
	inviteSvc := service.NewInviteCoordinator(invites, appointments, queue.PublishInviteSent, cfg.BcryptCost, log)

	// Handlers.
	publicH := handler.NewPublicHandler(artists)
	availH := handler.NewAvailabilityHandler(availabilitySvc)
	hoursH := handler.NewHoursHandler(hours, state)
	settingsH := handler.NewSettingsHandler(settings, state)
	inviteH := handler.NewInviteHandler(inviteSvc)
	calH := handler.NewCalendarHandler(google)

	// Invite events are consumed in-process for now; the consumer
	// reconnects on its own if the broker drops.
	go queue.StartInviteConsumer(log)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterPublic(e, publicH, availH, inviteH, cache)
	router.RegisterArtist(e, hoursH, settingsH, inviteH, calH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
