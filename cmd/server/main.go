package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	httpapi "ataxx_go/internal/api/http"
	"ataxx_go/internal/api/ws"
	"ataxx_go/internal/config"
	"ataxx_go/internal/session"
)

const GracefulShutdownTimeout = 20 * time.Second

func main() {
	cfg, err := config.Load("ataxx-server", os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	cfg.SetupLogging()
	if !cfg.GetBool(config.ConfigDebug) {
		gin.SetMode(gin.ReleaseMode)
	}

	store := session.NewMemoryStore()
	hub := ws.NewHub(store)
	r := httpapi.NewRouter(store, hub, session.Settings{
		Depth:       cfg.SearchDepth(),
		Seed:        cfg.Seed(),
		ShuffleRoot: cfg.ShuffleRoot(),
	})
	srv := &http.Server{Addr: cfg.HTTPAddr(), Handler: r}

	idleConnsClosed := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info().Msg("got quit signal...")
		ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("http-shutdown")
		}
		close(idleConnsClosed)
	}()

	log.Info().Str("addr", cfg.HTTPAddr()).Msg("listening")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("listen")
	}
	<-idleConnsClosed
	log.Info().Msg("server gracefully shutting down")
}
