package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/nnaakkaaii/expectimax2048/internal/config"
	"github.com/nnaakkaaii/expectimax2048/internal/usecase"
)

func main() {
	config.SetupLogging(false)
	cfg, err := config.Load("analyze", os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	config.SetupLogging(cfg.Debug)

	solver := usecase.NewSolver(cfg.PlayerConfig())

	fmt.Println("=== 2048 Interactive Analyzer ===")
	fmt.Println("Enter board state as 16 numbers (0 for empty), or 'quit' to exit")
	fmt.Println("Example: 0 0 0 0 0 0 0 0 0 0 0 0 0 0 2 2")
	fmt.Println()

	n := usecase.AnalyzeStream(os.Stdin, os.Stdout, solver)
	log.Debug().Int("boards", n).Msg("analysis finished")
}
