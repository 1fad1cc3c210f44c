package main

import (
	"time"

	"pipid/internal/identity/handler"
	"pipid/internal/identity/service"
	"pipid/pkg/app"
	"pipid/pkg/config"
	"pipid/pkg/identity"
	"pipid/pkg/ingester"
)

const ServiceName = "identityd"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Identity service")
	identityService := initServices(cfg)
	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewIdentityHandler(identityService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.IdentityService {
	ing := ingester.New(ingester.Options{
		Timeout:     cfg.FetchTimeout,
		UserAgent:   cfg.FetchUserAgent,
		MaxBodySize: int64(cfg.FetchMaxBodySize),
	})
	identityService := service.NewIdentityService(identity.NewValidator(), ing, cfg.Log)

	cfg.Log.Info("Identity service initialized",
		"fetch_timeout", cfg.FetchTimeout.Round(time.Millisecond),
		"fetch_user_agent", cfg.FetchUserAgent,
	)
	return identityService
}
