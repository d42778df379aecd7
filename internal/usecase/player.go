package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/nnaakkaaii/expectimax2048/internal/domain"
)

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithm は手を選ぶアルゴリズム
type Algorithm int

const (
	AlgorithmWeight Algorithm = iota
	AlgorithmSum
	AlgorithmRandom
)

var algorithmNames = map[Algorithm]string{
	AlgorithmWeight: "weight",
	AlgorithmSum:    "sum",
	AlgorithmRandom: "random",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAlgorithm はアルゴリズム名をAlgorithmに変換
func ParseAlgorithm(s string) (Algorithm, error) {
	a, ok := lo.FindKey(algorithmNames, strings.ToLower(strings.TrimSpace(s)))
	if !ok {
		return 0, fmt.Errorf("%w: %q (want one of weight, sum, random)", ErrUnknownAlgorithm, s)
	}
	return a, nil
}

// Player は盤面から次の手を選ぶ
// 合法手がない場合はfalseを返す
type Player interface {
	BestMove(b domain.Board) (domain.Transition, bool)
}

// PlayerConfig はPlayerの生成に使う設定
type PlayerConfig struct {
	Algorithm        Algorithm
	Depth            domain.DepthPolicy
	Parallel         bool
	Workers          int
	PreSpawnFallback bool
}

// DefaultPlayerConfig は重み行列評価とスマート深さの設定を返す
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Algorithm: AlgorithmWeight,
		Depth:     domain.SmartDepth{},
	}
}

type randomPlayer struct {
	rng domain.Rand
}

func (p randomPlayer) BestMove(b domain.Board) (domain.Transition, bool) {
	return domain.RandMove(b, p.rng)
}

// NewPlayer は設定に従ってPlayerを生成する
// rngはランダムな手の選択にのみ使う
func NewPlayer(config PlayerConfig, rng domain.Rand) Player {
	if config.Algorithm == AlgorithmRandom {
		return randomPlayer{rng: rng}
	}
	if config.Parallel {
		return domain.NewParallelSolver(evaluatorFor(config.Algorithm), depthOf(config), config.Workers, solverOptions(config)...)
	}
	return NewSolver(config)
}

// NewSolver は逐次探索のSolverを生成する
// ランダムアルゴリズムには評価関数がないので重み行列で代用する
func NewSolver(config PlayerConfig) *domain.Solver {
	return domain.NewSolver(evaluatorFor(config.Algorithm), depthOf(config), solverOptions(config)...)
}

func evaluatorFor(a Algorithm) domain.Evaluator {
	if a == AlgorithmSum {
		return domain.SumEvaluator{}
	}
	return domain.WeightEvaluator{}
}

func depthOf(config PlayerConfig) domain.DepthPolicy {
	if config.Depth == nil {
		return domain.SmartDepth{}
	}
	return config.Depth
}

func solverOptions(config PlayerConfig) []domain.SolverOption {
	if config.PreSpawnFallback {
		return []domain.SolverOption{domain.WithPreSpawnFallback()}
	}
	return nil
}
