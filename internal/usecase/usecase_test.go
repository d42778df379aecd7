package usecase_test

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnaakkaaii/expectimax2048/internal/domain"
	"github.com/nnaakkaaii/expectimax2048/internal/usecase"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input string
		want  usecase.Algorithm
		err   bool
	}{
		{input: "weight", want: usecase.AlgorithmWeight},
		{input: "SUM", want: usecase.AlgorithmSum},
		{input: " random ", want: usecase.AlgorithmRandom},
		{input: "greedy", err: true},
		{input: "", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := usecase.ParseAlgorithm(tt.input)
			if tt.err {
				assert.ErrorIs(t, err, usecase.ErrUnknownAlgorithm)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.ToLower(strings.TrimSpace(tt.input)), got.String())
		})
	}
}

func TestNewPlayer(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	seq := usecase.NewPlayer(usecase.DefaultPlayerConfig(), rng)
	assert.IsType(t, &domain.Solver{}, seq)

	par := usecase.NewPlayer(usecase.PlayerConfig{Algorithm: usecase.AlgorithmSum, Parallel: true, Workers: 2}, rng)
	assert.IsType(t, &domain.ParallelSolver{}, par)

	random := usecase.NewPlayer(usecase.PlayerConfig{Algorithm: usecase.AlgorithmRandom}, rng)
	b := domain.NewBoard([4][4]uint8{
		{1, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	m, ok := random.BestMove(b)
	require.True(t, ok)
	assert.Contains(t, b.LegalMoves(), m)
}

func TestNewPlayerMatchesSolver(t *testing.T) {
	config := usecase.PlayerConfig{Algorithm: usecase.AlgorithmSum, Depth: domain.FixedDepth(1)}
	player := usecase.NewPlayer(config, nil)
	b := domain.NewBoard([4][4]uint8{
		{1, 1, 2, 0},
		{0, 3, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 1},
	})
	got, ok := player.BestMove(b)
	require.True(t, ok)
	want, _ := domain.ExpectimaxSumMove(b, 1)
	assert.Equal(t, want, got)
}

func TestNewRandPairDeterministic(t *testing.T) {
	draw := func(r domain.Rand) []int {
		out := make([]int, 8)
		for i := range out {
			out[i] = r.Intn(1 << 30)
		}
		return out
	}

	spawn1, move1 := usecase.NewRandPair(7)
	spawn2, move2 := usecase.NewRandPair(7)
	s1 := draw(spawn1)
	assert.Equal(t, s1, draw(spawn2))
	m1 := draw(move1)
	assert.Equal(t, m1, draw(move2))
	assert.NotEqual(t, s1, m1, "spawn and move streams must differ")

	other, _ := usecase.NewRandPair(8)
	assert.NotEqual(t, s1, draw(other))
}

func quietConfig(algorithm usecase.Algorithm, depth domain.DepthPolicy, target int) usecase.AutoPlayConfig {
	config := usecase.DefaultAutoPlayConfig()
	config.Player.Algorithm = algorithm
	config.Player.Depth = depth
	config.TargetTile = target
	config.Verbose = false
	return config
}

func TestAutoPlayReachesSmallTarget(t *testing.T) {
	var out bytes.Buffer
	spawn, move := usecase.NewRandPair(1)
	summary := usecase.AutoPlay(&out, spawn, move, quietConfig(usecase.AlgorithmRandom, nil, 8))

	assert.True(t, summary.Won)
	assert.GreaterOrEqual(t, summary.HighestTile, 8)
	assert.Equal(t, summary.Board.HighestTile(), summary.HighestTile)
	assert.Contains(t, out.String(), "=== Game Over ===")
	assert.Contains(t, out.String(), "Result: WIN")
	assert.NotContains(t, out.String(), "=== 2048 AutoPlay ===")
}

func TestAutoPlayUnboundedPlaysToGameOver(t *testing.T) {
	var out bytes.Buffer
	spawn, move := usecase.NewRandPair(2)
	summary := usecase.AutoPlay(&out, spawn, move, quietConfig(usecase.AlgorithmRandom, nil, 0))

	assert.True(t, summary.Board.IsGameOver())
	assert.True(t, summary.Won, "an unbounded game always counts as a win")
	assert.Positive(t, summary.Moves)
}

func TestAutoPlayDeterministicWithSeed(t *testing.T) {
	play := func() usecase.Summary {
		spawn, move := usecase.NewRandPair(42)
		return usecase.AutoPlay(&bytes.Buffer{}, spawn, move, quietConfig(usecase.AlgorithmWeight, domain.FixedDepth(1), 64))
	}
	first := play()
	second := play()
	assert.Equal(t, first.Board, second.Board)
	assert.Equal(t, first.Moves, second.Moves)
}

func TestAutoPlayVerboseOutput(t *testing.T) {
	var out bytes.Buffer
	spawn, move := usecase.NewRandPair(3)
	config := quietConfig(usecase.AlgorithmSum, domain.FixedDepth(1), 16)
	config.Verbose = true
	config.Player.Parallel = true
	summary := usecase.AutoPlay(&out, spawn, move, config)

	assert.Contains(t, out.String(), "=== 2048 AutoPlay ===")
	assert.Contains(t, out.String(), "Algorithm: sum, Depth: 1, Mode: Parallel, Target: 16")
	assert.Equal(t, summary.Moves, strings.Count(out.String(), "Move: "))
}

func TestPlayGameScripted(t *testing.T) {
	var out bytes.Buffer
	input := strings.NewReader("x\na\nd\nw\ns\nq\n")
	game := usecase.PlayGame(input, &out, rand.New(rand.NewSource(5)), nil)

	assert.Contains(t, out.String(), "Invalid input")
	assert.Contains(t, out.String(), "Quit.")
	assert.NotContains(t, out.String(), "h=Hint")
	assert.LessOrEqual(t, game.Moves(), 4)
}

func TestPlayGameHint(t *testing.T) {
	var out bytes.Buffer
	hint := usecase.NewPlayer(usecase.PlayerConfig{Depth: domain.FixedDepth(1)}, nil)
	game := usecase.PlayGame(strings.NewReader("h\nq\n"), &out, rand.New(rand.NewSource(6)), hint)

	assert.Contains(t, out.String(), "h=Hint")
	assert.Contains(t, out.String(), "Hint: ")
	assert.Equal(t, 0, game.Moves(), "asking for a hint does not move")
}

func TestPlayGameEndOfInput(t *testing.T) {
	var out bytes.Buffer
	game := usecase.PlayGame(strings.NewReader(""), &out, rand.New(rand.NewSource(7)), nil)
	assert.Equal(t, 0, game.Moves())
}

func TestParseBoard(t *testing.T) {
	b, err := usecase.ParseBoard("0 0 0 0  0 0 0 0  0 0 0 0  0 2048 4 2")
	require.NoError(t, err)
	assert.Equal(t, uint8(11), b.Get(13))
	assert.Equal(t, 4, b.Tile(14))
	assert.Equal(t, 2, b.Tile(15))
	assert.Equal(t, 1, b.Tile(0))

	for _, line := range []string{
		"0 0 0",
		"0 0 0 0 0 0 0 0 0 0 0 0 0 0 2 x",
		"0 0 0 0 0 0 0 0 0 0 0 0 0 0 2 3",
	} {
		_, err := usecase.ParseBoard(line)
		assert.ErrorIs(t, err, usecase.ErrInvalidBoard, line)
	}

	_, err = usecase.ParseBoard("0 0 0 0 0 0 0 0 0 0 0 0 0 0 2 6")
	assert.ErrorIs(t, err, domain.ErrInvalidTile)
}

func TestAnalyze(t *testing.T) {
	solver := usecase.NewSolver(usecase.PlayerConfig{Algorithm: usecase.AlgorithmSum, Depth: domain.FixedDepth(1)})
	b, err := usecase.ParseBoard("0 0 0 0 0 0 0 0 0 0 0 0 0 0 2 2")
	require.NoError(t, err)

	var out bytes.Buffer
	best, ok := usecase.Analyze(&out, b, solver)
	require.True(t, ok)
	for _, r := range solver.ScoreMoves(b) {
		assert.LessOrEqual(t, r.Score, best.Score)
	}
	assert.Contains(t, out.String(), "=== Recommended move: "+best.Direction.String()+" ===")
	assert.Equal(t, 1, strings.Count(out.String(), "<- BEST"))
}

func TestAnalyzeStuckBoard(t *testing.T) {
	solver := usecase.NewSolver(usecase.DefaultPlayerConfig())
	b, err := usecase.ParseBoard("2 4 2 4 4 2 4 2 2 4 2 4 4 2 4 2")
	require.NoError(t, err)

	var out bytes.Buffer
	_, ok := usecase.Analyze(&out, b, solver)
	assert.False(t, ok)
	assert.Contains(t, out.String(), "No valid moves available!")
}

func TestAnalyzeStream(t *testing.T) {
	solver := usecase.NewSolver(usecase.PlayerConfig{Depth: domain.FixedDepth(1)})
	input := strings.Join([]string{
		"not a board",
		"",
		"0 0 0 0 0 0 0 0 0 0 0 0 0 0 2 2",
		"quit",
		"0 0 0 0 0 0 0 0 0 0 0 0 0 0 4 4",
	}, "\n")

	var out bytes.Buffer
	n := usecase.AnalyzeStream(strings.NewReader(input), &out, solver)
	assert.Equal(t, 1, n)
	assert.Contains(t, out.String(), "Error: invalid board")
}
