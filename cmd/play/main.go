package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/nnaakkaaii/expectimax2048/internal/config"
	"github.com/nnaakkaaii/expectimax2048/internal/usecase"
)

func main() {
	config.SetupLogging(false)
	cfg, err := config.Load("play", os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	config.SetupLogging(cfg.Debug)

	spawnRng, moveRng := usecase.NewRandPair(cfg.Seed)
	hint := usecase.NewPlayer(cfg.PlayerConfig(), moveRng)
	game := usecase.PlayGame(os.Stdin, os.Stdout, spawnRng, hint)
	log.Info().
		Int("moves", game.Moves()).
		Int("highest", game.Board().HighestTile()).
		Msg("game ended")
}
