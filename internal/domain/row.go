package domain

import "fmt"

// MaxExponent は1マスに格納できる最大の指数（2^15 = 32768）
const MaxExponent = 15

// Row は1行4マスの操作を表すインターフェース
// 参照実装のArrayRowと高速なPackedRowの両方が満たす
type Row[R any] interface {
	// ShiftLeft は左に詰めて隣接する同じ値をマージした行を返す
	ShiftLeft() R
	// ShiftRight は右に詰めて隣接する同じ値をマージした行を返す
	ShiftRight() R
	// Empty は空きマスのインデックス（0-3）を昇順で返す
	Empty() []int
	// Get は指定マスの指数を返す
	Get(i int) uint8
	// Add は空きマスに指数xのタイルを置いた行を返す
	Add(i int, x uint8) R
}

var (
	_ Row[ArrayRow]  = ArrayRow{}
	_ Row[PackedRow] = PackedRow(0)
)

// ArrayRow は1行を指数の配列で表す参照実装
// シフトキャッシュの構築にのみ使う
type ArrayRow [4]uint8

// ShiftLeft は1行を左にスライドしてマージする
// 置いたタイルは直前に置いたタイルと1回だけ比較し、等しければそこへマージする
// マージ済みのタイルは次に来るタイルとさらにマージしうる
func (r ArrayRow) ShiftLeft() ArrayRow {
	var result ArrayRow
	writePos := 0
	for _, v := range r {
		if v == 0 {
			continue
		}
		if writePos > 0 && result[writePos-1] == v && v < MaxExponent {
			result[writePos-1]++
			continue
		}
		result[writePos] = v
		writePos++
	}
	return result
}

// ShiftRight は反転してから左シフトし、再度反転する
func (r ArrayRow) ShiftRight() ArrayRow {
	return r.Reverse().ShiftLeft().Reverse()
}

// Reverse は行を反転
func (r ArrayRow) Reverse() ArrayRow {
	return ArrayRow{r[3], r[2], r[1], r[0]}
}

func (r ArrayRow) Empty() []int {
	cells := make([]int, 0, 4)
	for i, v := range r {
		if v == 0 {
			cells = append(cells, i)
		}
	}
	return cells
}

func (r ArrayRow) Get(i int) uint8 {
	return r[i]
}

func (r ArrayRow) Add(i int, x uint8) ArrayRow {
	checkAdd(i, x, r[i])
	r[i] = x
	return r
}

func (r ArrayRow) String() string {
	return fmt.Sprintf("%2d %2d %2d %2d", r[0], r[1], r[2], r[3])
}

// checkAdd は空きマスへの配置という前提条件を検証する
// 違反はプログラミングエラーなのでpanicする
func checkAdd(i int, x, current uint8) {
	if i < 0 || i >= 4 {
		panic(fmt.Sprintf("domain: cell index %d out of range", i))
	}
	if x > MaxExponent {
		panic(fmt.Sprintf("domain: exponent %d does not fit in a cell", x))
	}
	if current != 0 {
		panic(fmt.Sprintf("domain: cell %d is already occupied by exponent %d", i, current))
	}
}
