package usecase

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/nnaakkaaii/expectimax2048/internal/domain"
)

var ErrInvalidBoard = errors.New("invalid board")

// ParseBoard は空白区切りの16個のタイル値(0は空き)から盤面を作る
func ParseBoard(line string) (domain.Board, error) {
	parts := strings.Fields(line)
	if len(parts) != 16 {
		return 0, fmt.Errorf("%w: need exactly 16 numbers, got %d", ErrInvalidBoard, len(parts))
	}

	var tiles [4][4]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("%w: cell %d: %w", ErrInvalidBoard, i, err)
		}
		tiles[i/4][i%4] = v
	}
	b, err := domain.NewBoardFromTiles(tiles)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidBoard, err)
	}
	return b, nil
}

// Analyze は各合法手の期待値を表示し、最良の手を返す
// 合法手がない場合はfalseを返す
func Analyze(w io.Writer, b domain.Board, solver *domain.Solver) (domain.Result, bool) {
	fmt.Fprintln(w, "Current board:")
	fmt.Fprint(w, b)

	results := solver.ScoreMoves(b)
	if len(results) == 0 {
		fmt.Fprintln(w, "No valid moves available!")
		return domain.Result{}, false
	}

	// 同点はScoreMovesの列挙順で先のものを選ぶ
	best := lo.Reduce(results[1:], func(acc domain.Result, r domain.Result, _ int) domain.Result {
		if r.Score > acc.Score {
			return r
		}
		return acc
	}, results[0])

	fmt.Fprintf(w, "\n=== Recommended move: %s ===\n", best.Direction)
	fmt.Fprintln(w, "Move scores:")
	for _, r := range results {
		fmt.Fprintf(w, "  %-5s: %.2f", r.Direction, r.Score)
		if r.Direction == best.Direction {
			fmt.Fprint(w, " <- BEST")
		}
		fmt.Fprintln(w)
	}
	return best, true
}

// AnalyzeStream は1行に1盤面を読み、それぞれを解析する
// "quit" で終了する。解析できた盤面の数を返す
func AnalyzeStream(r io.Reader, w io.Writer, solver *domain.Solver) int {
	scanner := bufio.NewScanner(r)
	analyzed := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" {
			break
		}
		b, err := ParseBoard(line)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			continue
		}
		Analyze(w, b, solver)
		fmt.Fprintln(w)
		analyzed++
	}
	return analyzed
}
