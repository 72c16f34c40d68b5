package main

import (
	"context"
	"encoding/csv"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"ataxx_go/internal/config"
	"ataxx_go/internal/selfplay"
)

func main() {
	cfg, err := config.Load("selfplay", os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	cfg.SetupLogging()

	outFile := cfg.GetString(config.ConfigSelfplayOut)
	done, err := selfplay.RepairCSV(outFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", outFile).Msg("repair csv")
	}

	f, err := os.OpenFile(outFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		log.Fatal().Err(err).Msg("open csv")
	}
	w := csv.NewWriter(f)
	defer func() { w.Flush(); f.Close() }()
	fi, err := f.Stat()
	if err != nil {
		log.Fatal().Err(err).Msg("stat csv")
	}
	if fi.Size() == 0 {
		if err := w.Write(selfplay.Header); err != nil {
			log.Fatal().Err(err).Msg("write header")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := selfplay.Options{
		Games:    cfg.GetInt(config.ConfigSelfplayGames),
		Workers:  cfg.GetInt(config.ConfigSelfplayWorkers),
		Openings: cfg.GetInt(config.ConfigSelfplayOpening),
		Depth:    cfg.SearchDepth(),
		Seed:     cfg.Seed(),
		Skip:     done,
	}
	sum, err := selfplay.Run(ctx, opts, func(r selfplay.Result) error {
		if err := w.Write(r.Row()); err != nil {
			return err
		}
		w.Flush()
		return w.Error()
	})
	if err != nil {
		log.Error().Err(err).Msg("selfplay-stopped")
	}
	log.Info().
		Int("games", sum.Games).
		Int("resumed-past", len(done)).
		Int("red", sum.RedWins).
		Int("blue", sum.BlueWins).
		Int("draws", sum.Draws).
		Float64("mean-plies", sum.MeanPlies).
		Float64("std-plies", sum.StdPlies).
		Dur("mean-think", sum.MeanThink).
		Msg("selfplay-summary")
}
