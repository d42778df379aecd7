package domain

// Rand はタイルのスポーンや手の選択に使う乱数源
// *math/rand.Rand と *frand.RNG のどちらも満たす
type Rand interface {
	// Intn は[0,n)の一様乱数を返す
	Intn(n int) int
	// Float64 は[0,1)の一様乱数を返す
	Float64() float64
}

// Game は2048ゲームの状態を管理する
type Game struct {
	rng   Rand
	board Board
	moves int
}

// NewGame は新しいゲームを開始する
func NewGame(rng Rand) *Game {
	g := &Game{rng: rng}
	// 初期配置として2つのタイルを配置
	g.board = g.board.RandAdd(rng).RandAdd(rng)
	return g
}

// Board は現在の盤面を返す
func (g *Game) Board() Board {
	return g.board
}

// Moves はこれまでに進めた手数を返す
func (g *Game) Moves() int {
	return g.moves
}

// IsGameOver はゲームオーバーかどうかを返す
func (g *Game) IsGameOver() bool {
	return g.board.IsGameOver()
}

// NextState は動かした後の盤面に置き換え、ランダムにタイルを1つ置いて手数を進める
// nextは現在の盤面の合法手の結果でなければならない
func (g *Game) NextState(next Board) {
	g.board = next.RandAdd(g.rng)
	g.moves++
}

// Move は指定した方向にスワイプを実行する
// 盤面が変化した場合はtrueを返す
func (g *Game) Move(dir Direction) bool {
	next := g.board.Move(dir)
	if next == g.board {
		return false
	}
	g.NextState(next)
	return true
}
