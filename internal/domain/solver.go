package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// DepthPolicy は盤面ごとの探索深さを決める
type DepthPolicy interface {
	Depth(b Board) int
}

// FixedDepth は常に同じ深さで探索する
type FixedDepth int

func (d FixedDepth) Depth(Board) int {
	return int(d)
}

func (d FixedDepth) String() string {
	return strconv.Itoa(int(d))
}

// SmartDepth は空きマスが少ない（危険な）盤面ほど深く探索する
type SmartDepth struct{}

func (SmartDepth) Depth(b Board) int {
	return SmartDepthFor(b)
}

func (SmartDepth) String() string {
	return "smart"
}

// SmartDepthFor は空きマスが5未満なら3、それ以外は2を返す
func SmartDepthFor(b Board) int {
	if len(b.Empty()) < 5 {
		return 3
	}
	return 2
}

// ParseDepth は"smart"または0以上の整数をDepthPolicyに変換
func ParseDepth(s string) (DepthPolicy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "smart" {
		return SmartDepth{}, nil
	}
	d, err := strconv.Atoi(s)
	if err != nil || d < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDepth, s)
	}
	return FixedDepth(d), nil
}

// Result は決定ノードで選ばれた手とその期待値
type Result struct {
	Direction Direction
	Board     Board
	Score     float64
}

// SolverOption はSolverの挙動を調整する
type SolverOption func(*Solver)

// WithPreSpawnFallback はスポーン後に合法手がない場合、
// スポーン後の盤面ではなくスポーン前の盤面を評価する（旧来の挙動）
func WithPreSpawnFallback() SolverOption {
	return func(s *Solver) {
		s.preSpawnFallback = true
	}
}

// Solver はExpectimaxアルゴリズムで最良の手を探索する
// 状態を持たないので複数のgoroutineから同時に使える
type Solver struct {
	evaluator        Evaluator
	depth            DepthPolicy
	preSpawnFallback bool
}

// NewSolver は新しいSolverを生成する
func NewSolver(evaluator Evaluator, depth DepthPolicy, opts ...SolverOption) *Solver {
	s := &Solver{
		evaluator: evaluator,
		depth:     depth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BestMove は深さポリシーに従って最良の手を返す
// 合法手がない場合はfalseを返す
func (s *Solver) BestMove(b Board) (Transition, bool) {
	res, ok := s.Best(b, s.depth.Depth(b))
	if !ok {
		return Transition{}, false
	}
	return Transition{Direction: res.Direction, Board: res.Board}, true
}

// Best は決定ノード：全合法手のうち期待値が最大の手を返す
// 同点の場合はLeft, Right, Up, Downの順で先にあるものを選ぶ
func (s *Solver) Best(b Board, depth int) (Result, bool) {
	var best Result
	found := false
	for _, m := range b.LegalMoves() {
		score := s.Score(m.Board, depth)
		if !found || score > best.Score {
			best = Result{Direction: m.Direction, Board: m.Board, Score: score}
			found = true
		}
	}
	return best, found
}

// ScoreMoves は全合法手とその期待値を列挙順に返す
func (s *Solver) ScoreMoves(b Board) []Result {
	depth := s.depth.Depth(b)
	moves := b.LegalMoves()
	results := make([]Result, 0, len(moves))
	for _, m := range moves {
		results = append(results, Result{
			Direction: m.Direction,
			Board:     m.Board,
			Score:     s.Score(m.Board, depth),
		})
	}
	return results
}

// Score はチャンスノード：スポーンの期待値を計算する
// 各空きマスは等確率、その中で2が90%、4が10%
func (s *Solver) Score(b Board, depth int) float64 {
	if depth <= 0 {
		return s.evaluator.Evaluate(b)
	}
	empty := b.Empty()
	if len(empty) == 0 {
		return s.evaluator.Evaluate(b)
	}

	weightedSum := 0.0
	for _, i := range empty {
		weightedSum += TwoSpawnProb * s.spawnScore(b, b.Add(i, 1), depth)
		weightedSum += FourSpawnProb * s.spawnScore(b, b.Add(i, 2), depth)
	}
	return weightedSum / float64(len(empty))
}

// spawnScore はスポーン後の盤面から探索を続ける
func (s *Solver) spawnScore(before, after Board, depth int) float64 {
	if res, ok := s.Best(after, depth-1); ok {
		return res.Score
	}
	if s.preSpawnFallback {
		return s.evaluator.Evaluate(before)
	}
	return s.evaluator.Evaluate(after)
}

// RandMove は合法手から一様にランダムに選ぶ
func RandMove(b Board, rng Rand) (Transition, bool) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return Transition{}, false
	}
	return moves[rng.Intn(len(moves))], true
}

// ExpectimaxSumMove はタイル合計の評価で深さdepthの探索をする
func ExpectimaxSumMove(b Board, depth int) (Transition, bool) {
	return NewSolver(SumEvaluator{}, FixedDepth(depth)).BestMove(b)
}

// ExpectimaxWeightMove は重み行列の評価で深さdepthの探索をする
func ExpectimaxWeightMove(b Board, depth int) (Transition, bool) {
	return NewSolver(WeightEvaluator{}, FixedDepth(depth)).BestMove(b)
}
