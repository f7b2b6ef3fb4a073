package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"text-recitation/api"
	"text-recitation/config"
	"text-recitation/infrastructure"
	"text-recitation/ocr"
	"text-recitation/speech"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load configuration")
	}

	// A missing model means a broken deployment; refuse to serve rather
	// than fail every recitation at request time.
	model, err := speech.LoadModel(cfg.Speech)
	if err != nil {
		if errors.Is(err, speech.ErrModelNotFound) {
			log.Fatal().Err(err).Msg("Recognition model missing, cannot serve recitation requests")
		}
		log.Fatal().Err(err).Msg("Could not load recognition model")
	}
	engine := speech.NewEngine(model)

	ctx, shutdown := context.WithCancel(context.Background())
	defer shutdown()

	db, err := infrastructure.Connect(ctx, cfg.Database.ConnectionString)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to database")
	}
	if err := infrastructure.CreateTables(db); err != nil {
		log.Fatal().Err(err).Msg("Could not migrate database tables")
	}

	server := api.New(cfg, db, engine, ocr.NewClient(cfg.OCR.Endpoint))

	httpServer := &http.Server{Addr: cfg.ListenAddr, Handler: server.Handler()}
	serverDone := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("Serving recitation API")
		serverDone <- httpServer.ListenAndServe()
	}()

	server.HandleShutdownSignals(shutdown)
	server.AwaitForShutdown(ctx, httpServer, serverDone, shutdown)
}
