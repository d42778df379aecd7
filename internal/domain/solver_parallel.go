package domain

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelSolver はトップレベルの合法手ごとに並列で探索するソルバー
// 結果はSolver.BestMoveと同一（同点処理も同じ）
type ParallelSolver struct {
	solver  *Solver
	workers int
}

// NewParallelSolver は新しいParallelSolverを生成する
// workersが0以下ならCPU数を使う
func NewParallelSolver(evaluator Evaluator, depth DepthPolicy, workers int, opts ...SolverOption) *ParallelSolver {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &ParallelSolver{
		solver:  NewSolver(evaluator, depth, opts...),
		workers: workers,
	}
}

// BestMove は現在の盤面から最良の手を返す（トップレベルのみ並列化）
func (s *ParallelSolver) BestMove(b Board) (Transition, bool) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return Transition{}, false
	}
	// 1手しかない場合は並列化不要
	if len(moves) == 1 {
		return moves[0], true
	}

	depth := s.solver.depth.Depth(b)
	scores := make([]float64, len(moves))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, m := range moves {
		g.Go(func() error {
			scores[i] = s.solver.Score(m.Board, depth)
			return nil
		})
	}
	// 各goroutineはエラーを返さない
	_ = g.Wait()

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return moves[best], true
}
