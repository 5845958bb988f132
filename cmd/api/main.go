package main

import (
	"context"
	"log"
	"strings"

	"github.com/socforge/drc-backend/config"
	"github.com/socforge/drc-backend/internal/bootstrap"
	"github.com/socforge/drc-backend/internal/drc/detection/rules"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()
	deps := bootstrap.RouterDeps{
		ServiceName: "drc-backend",
		Version:     cfg.App.Version,
		DRCOptions: rules.Options{
			CheckOptionalPorts:    cfg.DRC.CheckOptionalPorts,
			MaxInterconnectFanOut: cfg.DRC.MaxInterconnectFanOut,
		},
	}
	if cfg.Server.AllowedOrigins != "" {
		deps.AllowedOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	}

	// Both stores are optional: without them the analyze endpoint still
	// serves, it just keeps no history and no cache.
	if cfg.Store.DSN != "" {
		db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Store.DSN})
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer db.Close()
		deps.DB = db
	} else {
		log.Println("DB_DSN not set; report history disabled")
	}
	if cfg.Store.RedisAddr != "" {
		rdb, err := bootstrap.OpenRedis(ctx, cfg.Store.RedisAddr, cfg.Store.RedisPassword, cfg.Store.RedisDB)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		deps.Redis = rdb
	} else {
		log.Println("REDIS_ADDR not set; report cache disabled")
	}

	r := bootstrap.BuildRouter(deps)
	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
