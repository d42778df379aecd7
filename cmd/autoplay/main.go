package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/nnaakkaaii/expectimax2048/internal/config"
	"github.com/nnaakkaaii/expectimax2048/internal/usecase"
)

func main() {
	config.SetupLogging(false)
	cfg, err := config.Load("autoplay", os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	config.SetupLogging(cfg.Debug)

	spawnRng, moveRng := usecase.NewRandPair(cfg.Seed)
	summary := usecase.AutoPlay(os.Stdout, spawnRng, moveRng, cfg.AutoPlayConfig())
	if !summary.Won {
		os.Exit(1)
	}
}
