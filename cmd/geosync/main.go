// Command geosync geocodes every hotel that has no coordinates yet.
package main

import (
	"context"
	"database/sql"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/adapters/opencage"
	"hotel_booking/internal/adapters/remote"
	"hotel_booking/internal/app"
	"hotel_booking/internal/shared"
	mysqlrepo "hotel_booking/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()
	observability.InstallLogger(observability.NewLogger(cfg.AppEnv), cfg.LogLevel)

	log.Info().
		Str("base", cfg.GeocodingBase).
		Int("workers", cfg.Workers).
		Msg("geosync starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	geo := opencage.New(cfg.GeocodingBase, cfg.GeocodingKey, remote.New("opencage", cfg.GatewayRPS, 10*time.Second))
	// only geocoding is exercised here
	hotels := app.NewHotelService(mysqlrepo.New(db), nil, nil, geo)

	ok, failed := refreshAll(ctx, hotels, cfg.Workers)
	log.Info().Int64("ok", ok).Int64("failed", failed).Msg("geosync completed")
}

type coordinateRefresher interface {
	HotelsMissingCoordinates(ctx context.Context) ([]int64, error)
	RefreshCoordinates(ctx context.Context, hotelID int64) (app.HotelGeocoding, error)
}

// refreshAll refreshes every hotel lacking coordinates with at most workers in flight.
func refreshAll(ctx context.Context, svc coordinateRefresher, workers int) (ok, failed int64) {
	ids, err := svc.HotelsMissingCoordinates(ctx)
	if err != nil {
		log.Error().Err(err).Msg("list hotels failed")
		return 0, 0
	}
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for _, id := range ids {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("stopping early")
			break
		}
		wg.Add(1)
		go func(hotelID int64) {
			defer wg.Done()
			defer sem.Release(1)

			g, err := svc.RefreshCoordinates(ctx, hotelID)
			if err != nil {
				atomic.AddInt64(&failed, 1)
				log.Warn().Int64("hotel_id", hotelID).Err(err).Msg("geocode failed")
				return
			}
			atomic.AddInt64(&ok, 1)
			log.Info().Int64("hotel_id", hotelID).Float64("lat", g.Latitude).Float64("lon", g.Longitude).Msg("geocode ok")
		}(id)
	}
	wg.Wait()
	return ok, failed
}
