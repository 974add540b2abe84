package main

import (
	"context"

	"taxifleet/config"
	"taxifleet/pkg/logger"
	"taxifleet/storage/postgres"
)

// Empties every fleet table and restarts the id sequences. The schema
// itself is left alone.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	pg, err := postgres.New(ctx, cfg, log)
	if err != nil {
		panic(err)
	}
	defer pg.Close()

	_, err = pg.GetPool().Exec(ctx, "TRUNCATE TABLE car_drivers, cars, drivers, manufacturers RESTART IDENTITY CASCADE")
	if err != nil {
		log.Error("failed to truncate tables", logger.Error(err))
		return
	}
	log.Info("truncated car_drivers, cars, drivers and manufacturers")
}
