package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/auth"
	"hotel_booking/internal/adapters/cloudinary"
	server "hotel_booking/internal/adapters/http_server"
	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/adapters/opencage"
	"hotel_booking/internal/adapters/openweather"
	"hotel_booking/internal/adapters/purgomalum"
	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/adapters/remote"
	"hotel_booking/internal/app"
	"hotel_booking/internal/shared"
	mysqlrepo "hotel_booking/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	observability.InstallLogger(observability.NewLogger(cfg.AppEnv), cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	if err := cache.Ping(ctx); err != nil {
		// weather is still served, just uncached
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable")
	}

	creds, err := auth.New(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("auth setup failed")
	}

	// gateways
	uploader := cloudinary.New(cloudinary.Config{
		BaseURL:   cfg.CloudinaryBase,
		CloudName: cfg.CloudinaryCloud,
		APIKey:    cfg.CloudinaryKey,
		APISecret: cfg.CloudinarySecret,
		Folder:    cfg.CloudinaryFolder,
	}, remote.New("cloudinary", cfg.GatewayRPS, 60*time.Second))
	weather := app.NewCachedWeather(
		openweather.New(cfg.WeatherBase, cfg.WeatherKey, remote.New("openweather", cfg.GatewayRPS, 10*time.Second)),
		cache, cfg.WeatherCacheTTL)
	geo := opencage.New(cfg.GeocodingBase, cfg.GeocodingKey, remote.New("opencage", cfg.GatewayRPS, 10*time.Second))
	profanity := purgomalum.New(cfg.ProfanityBase, remote.New("purgomalum", cfg.GatewayRPS, 10*time.Second))

	// services
	repo := mysqlrepo.New(db)
	handlers := &server.Handlers{
		Hotels:       app.NewHotelService(repo, uploader, weather, geo),
		Rooms:        app.NewRoomService(repo, uploader, profanity),
		Reservations: app.NewReservationService(repo),
		Users:        app.NewUserService(repo, creds),
	}

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(handlers)

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("API stopped")
}
