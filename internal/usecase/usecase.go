package usecase

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/nnaakkaaii/expectimax2048/internal/domain"
)

// PlayGame はCLIで2048ゲームを実行する
// hintがnilでなければ h でAIの推奨手を表示する
func PlayGame(r io.Reader, w io.Writer, rng domain.Rand, hint Player) *domain.Game {
	game := domain.NewGame(rng)
	reader := bufio.NewReader(r)

	fmt.Fprintln(w, "=== 2048 ===")
	if hint != nil {
		fmt.Fprintln(w, "Controls: w=Up, s=Down, a=Left, d=Right, h=Hint, q=Quit")
	} else {
		fmt.Fprintln(w, "Controls: w=Up, s=Down, a=Left, d=Right, q=Quit")
	}
	fmt.Fprintln(w)

	for {
		fmt.Fprint(w, game.Board())
		fmt.Fprintf(w, "Moves: %d, Highest: %d\n", game.Moves(), game.Board().HighestTile())

		if game.IsGameOver() {
			fmt.Fprintln(w, "Game Over!")
			break
		}

		fmt.Fprint(w, "Move: ")
		input, err := reader.ReadString('\n')
		if err != nil && input == "" {
			break
		}

		input = strings.TrimSpace(strings.ToLower(input))
		if input == "q" {
			fmt.Fprintln(w, "Quit.")
			break
		}
		if input == "h" && hint != nil {
			if m, ok := hint.BestMove(game.Board()); ok {
				fmt.Fprintf(w, "Hint: %s (legal: %s)\n\n", m.Direction, legalNames(game.Board()))
			}
			continue
		}

		dir, err := domain.ParseDirection(input)
		if err != nil {
			fmt.Fprintln(w, "Invalid input. Use w/a/s/d or q to quit.")
			continue
		}

		if !game.Move(dir) {
			fmt.Fprintf(w, "Cannot move in that direction. Legal: %s\n", legalNames(game.Board()))
		}
		fmt.Fprintln(w)
	}
	return game
}

func legalNames(b domain.Board) string {
	names := lo.Map(b.LegalMoves(), func(m domain.Transition, _ int) string {
		return m.Direction.String()
	})
	return strings.Join(names, ", ")
}
