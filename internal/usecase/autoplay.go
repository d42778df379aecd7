package usecase

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"github.com/nnaakkaaii/expectimax2048/internal/domain"
)

// DefaultTargetTile は自動プレイの目標タイル
const DefaultTargetTile = 2048

// 手数あたりの速度を更新するタイミング
const (
	firstRateMove  = 10
	rateMoveStride = 50
)

// AutoPlayConfig は自動プレイの設定
type AutoPlayConfig struct {
	Player PlayerConfig
	// TargetTile に到達したらゲームを終了する。0なら詰むまで続ける
	TargetTile int
	Delay      time.Duration
	Verbose    bool
}

// DefaultAutoPlayConfig はデフォルトの設定を返す
func DefaultAutoPlayConfig() AutoPlayConfig {
	return AutoPlayConfig{
		Player:     DefaultPlayerConfig(),
		TargetTile: DefaultTargetTile,
		Verbose:    true,
	}
}

// Summary は1ゲームの結果
type Summary struct {
	Board          domain.Board
	HighestTile    int
	Moves          int
	Won            bool
	Elapsed        time.Duration
	MovesPerSecond float64
	// 1手あたりの思考時間の平均と標準偏差
	ThinkMean   time.Duration
	ThinkStdDev time.Duration
}

// AutoPlay は自動でゲームをプレイする
// spawnRngはタイルの出現に、moveRngはランダムな手の選択に使う
func AutoPlay(w io.Writer, spawnRng, moveRng domain.Rand, config AutoPlayConfig) Summary {
	game := domain.NewGame(spawnRng)
	player := NewPlayer(config.Player, moveRng)

	if config.Verbose {
		fmt.Fprintln(w, "=== 2048 AutoPlay ===")
		fmt.Fprintf(w, "Algorithm: %s, Depth: %s, Mode: %s, Target: %s\n\n",
			config.Player.Algorithm, depthName(depthOf(config.Player)), modeName(config.Player), targetName(config.TargetTile))
		fmt.Fprint(w, game.Board())
	}

	start := time.Now()
	var thinkTimes []float64
	movesPerSecond := 0.0

	for {
		board := game.Board()
		if config.TargetTile > 0 && board.HighestTile() >= config.TargetTile {
			break
		}

		thinkStart := time.Now()
		m, ok := player.BestMove(board)
		if !ok {
			break
		}
		thinkTimes = append(thinkTimes, time.Since(thinkStart).Seconds())

		game.NextState(m.Board)
		moves := game.Moves()
		if moves == firstRateMove || moves%rateMoveStride == 0 {
			movesPerSecond = float64(moves) / time.Since(start).Seconds()
		}

		log.Debug().
			Str("move", m.Direction.String()).
			Int("moves", moves).
			Int("highest", game.Board().HighestTile()).
			Int("empty", len(game.Board().Empty())).
			Int("depth", searchDepth(config.Player, board)).
			Msg("advanced")

		if config.Verbose {
			fmt.Fprintf(w, "Move: %-5s  Moves: %d  %.0f moves/s\n", m.Direction, moves, movesPerSecond)
			fmt.Fprint(w, game.Board())
		}

		if config.Delay > 0 {
			time.Sleep(config.Delay)
		}
	}

	summary := summarize(game, config.TargetTile, time.Since(start), thinkTimes)

	// 最終結果は常に表示
	fmt.Fprint(w, summary.Board)
	fmt.Fprintln(w, "=== Game Over ===")
	fmt.Fprintf(w, "Highest Tile: %d\n", summary.HighestTile)
	fmt.Fprintf(w, "Total Moves: %d\n", summary.Moves)
	fmt.Fprintf(w, "Speed: %.1f moves/s (think %v ± %v)\n", summary.MovesPerSecond, summary.ThinkMean, summary.ThinkStdDev)
	if summary.Won {
		fmt.Fprintln(w, "Result: WIN")
	} else {
		fmt.Fprintln(w, "Result: LOSE")
	}

	log.Info().
		Int("highest", summary.HighestTile).
		Int("moves", summary.Moves).
		Bool("won", summary.Won).
		Dur("elapsed", summary.Elapsed).
		Float64("moves_per_sec", summary.MovesPerSecond).
		Msg("game finished")

	return summary
}

func summarize(game *domain.Game, target int, elapsed time.Duration, thinkTimes []float64) Summary {
	board := game.Board()
	s := Summary{
		Board:       board,
		HighestTile: board.HighestTile(),
		Moves:       game.Moves(),
		Elapsed:     elapsed,
	}
	s.Won = target <= 0 || s.HighestTile >= target
	if elapsed > 0 {
		s.MovesPerSecond = float64(s.Moves) / elapsed.Seconds()
	}
	if len(thinkTimes) > 0 {
		s.ThinkMean = seconds(stat.Mean(thinkTimes, nil))
	}
	// 不偏分散なので2件以上必要
	if len(thinkTimes) > 1 {
		s.ThinkStdDev = seconds(stat.StdDev(thinkTimes, nil))
	}
	return s
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}

func searchDepth(config PlayerConfig, b domain.Board) int {
	if config.Algorithm == AlgorithmRandom {
		return 0
	}
	return depthOf(config).Depth(b)
}

func depthName(d domain.DepthPolicy) string {
	if s, ok := d.(fmt.Stringer); ok {
		return s.String()
	}
	return "custom"
}

func modeName(config PlayerConfig) string {
	if config.Algorithm == AlgorithmRandom {
		return "Random"
	}
	if config.Parallel {
		return "Parallel"
	}
	return "Sequential"
}

func targetName(target int) string {
	if target <= 0 {
		return "unbounded"
	}
	return fmt.Sprint(target)
}
