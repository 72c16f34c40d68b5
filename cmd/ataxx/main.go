package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"ataxx_go/internal/config"
	"ataxx_go/internal/shell"
)

func main() {
	cfg, err := config.Load("ataxx", os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	cfg.SetupLogging()
	log.Debug().Interface("settings", cfg.SanitizedSettings()).Msg("loaded-config")

	sc, err := shell.NewShellController(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("readline")
	}

	done := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Debug().Msg("got quit signal...")
		close(done)
	}()

	go sc.Loop(sig)
	<-done
	log.Debug().Msg("bye")
}
