package domain

// Evaluator はBoardを評価してスコアを返すインターフェース
// 探索の末端ノードで使われる
type Evaluator interface {
	Evaluate(b Board) float64
}

// EvaluatorFunc は関数をEvaluatorとして使うためのアダプタ
type EvaluatorFunc func(b Board) float64

func (f EvaluatorFunc) Evaluate(b Board) float64 {
	return f(b)
}

// SumEvaluator は全タイル値の合計で評価する（配置は考慮しない）
type SumEvaluator struct{}

func (e SumEvaluator) Evaluate(b Board) float64 {
	score := 0.0
	for i := 0; i < 16; i++ {
		score += float64(b.Tile(i))
	}
	return score
}

// WeightEvaluator は角に大きいタイルを寄せるほど高評価
// 基本の重み行列とその回転・転置の計8パターンとの内積の最大を返す
type WeightEvaluator struct{}

type weightMatrix [16]float64

// baseWeights は左上の角を重視する重み行列
// https://codemyroad.wordpress.com/2014/05/14/2048-ai-the-intelligent-bot/
var baseWeights = weightMatrix{
	0.135759, 0.121925, 0.102812, 0.099937,
	0.0997992, 0.0888405, 0.076711, 0.0724143,
	0.060654, 0.0562579, 0.037116, 0.0161889,
	0.0125498, 0.00992495, 0.00575871, 0.00335193,
}

var weightMatrices = buildWeightMatrices(baseWeights)

func buildWeightMatrices(w weightMatrix) [8]weightMatrix {
	var patterns [8]weightMatrix
	patterns[0] = w
	for i := 1; i < 4; i++ {
		patterns[i] = rotateWeights(patterns[i-1])
	}
	for i := 0; i < 4; i++ {
		patterns[i+4] = transposeWeights(patterns[i])
	}
	return patterns
}

func rotateWeights(w weightMatrix) weightMatrix {
	var result weightMatrix
	for i, idx := range rightRotateIdx {
		result[i] = w[idx]
	}
	return result
}

func transposeWeights(w weightMatrix) weightMatrix {
	var result weightMatrix
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			result[r*4+c] = w[c*4+r]
		}
	}
	return result
}

func (e WeightEvaluator) Evaluate(b Board) float64 {
	var tiles [16]float64
	for i := range tiles {
		tiles[i] = float64(b.Tile(i))
	}

	maxScore := dot(tiles, weightMatrices[0])
	for _, w := range weightMatrices[1:] {
		if score := dot(tiles, w); score > maxScore {
			maxScore = score
		}
	}
	return maxScore
}

func dot(tiles [16]float64, w weightMatrix) float64 {
	score := 0.0
	for i := range tiles {
		score += tiles[i] * w[i]
	}
	return score
}
