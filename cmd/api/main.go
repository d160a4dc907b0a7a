package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"voyago/internal/adapters/amadeus"
	server "voyago/internal/adapters/http_server"
	"voyago/internal/adapters/observability"
	redisad "voyago/internal/adapters/redis"
	"voyago/internal/app"
	"voyago/internal/shared"
)

func main() {
	_ = godotenv.Load()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	client, err := amadeus.New(cfg.AmadeusBase, cfg.AmadeusID, cfg.AmadeusSecret, cfg.AmadeusRPS, cfg.HotelBatchWorkers)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Amadeus client")
	}

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	svc := app.NewSearchService(client, cache, cfg.CacheTTL)

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Str("upstream", cfg.AmadeusBase).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
