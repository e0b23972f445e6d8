package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/frakneable/cursotiaor/internal/log"
	"github.com/frakneable/cursotiaor/services/dashboard/config"
	"github.com/frakneable/cursotiaor/services/dashboard/db"
	httpserver "github.com/frakneable/cursotiaor/services/dashboard/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	if err := log.Init(cfg.Debug); err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	source, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connection error: %v", err)
	}
	defer source.Close()

	cached := db.NewCache(source, cfg.CacheTTL)

	srv := httpserver.New(cfg, cached)
	log.Infof("dashboard API listening on %s (table=%s limit=%d)", cfg.ListenAddr(), cfg.SensorTable, cfg.FetchLimit)

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
