package domain

import (
	"fmt"
	"math/bits"
	"strings"
)

// Direction はスワイプの方向を表す
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// AllDirections は合法手の列挙順（探索の同点処理もこの順に従う）
var AllDirections = [4]Direction{Left, Right, Up, Down}

func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Up:
		return "Up"
	case Down:
		return "Down"
	default:
		return "Unknown"
	}
}

// ParseDirection は方向名またはw/a/s/dキーをDirectionに変換
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l", "a":
		return Left, nil
	case "right", "r", "d":
		return Right, nil
	case "up", "u", "w":
		return Up, nil
	case "down", "s":
		return Down, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// スポーン確率（2が90%、4が10%）
const (
	FourSpawnProb = 0.1
	TwoSpawnProb  = 1 - FourSpawnProb
)

// Board は2048の盤面を64ビット整数で表現
// 行rはビット16r..16r+15のPackedRow、マスiは線形インデックス（行優先、0-15）
// 値型なので==で構造的に比較できる
type Board uint64

// Transition は方向とその方向に動かした直後（スポーン前）の盤面
type Transition struct {
	Direction Direction
	Board     Board
}

// NewBoard は指数の配列からBoardを生成
func NewBoard(cells [4][4]uint8) Board {
	var b Board
	for r := 0; r < 4; r++ {
		b = b.setRow(r, PackRow(ArrayRow(cells[r])))
	}
	return b
}

// NewBoardFromTiles はタイル値（0=空、それ以外は2の累乗）の配列からBoardを生成
func NewBoardFromTiles(tiles [4][4]int) (Board, error) {
	var cells [4][4]uint8
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			v := tiles[r][c]
			if v == 0 {
				continue
			}
			exp := bits.TrailingZeros(uint(v))
			if v < 2 || v&(v-1) != 0 || exp > MaxExponent {
				return 0, fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidTile, v, r, c)
			}
			cells[r][c] = uint8(exp)
		}
	}
	return NewBoard(cells), nil
}

// Row は指定行を16ビット値として抽出
func (b Board) Row(r int) PackedRow {
	return PackedRow(b >> (r * 16))
}

// setRow は指定行に16ビット値を設定
func (b Board) setRow(r int, row PackedRow) Board {
	shift := r * 16
	mask := ^(Board(0xFFFF) << shift)
	return (b & mask) | (Board(row) << shift)
}

// Get はマスiの指数を返す
func (b Board) Get(i int) uint8 {
	return uint8(b>>(i*4)) & 0xF
}

// Tile はマスiのタイル値 2^指数 を返す（空きマスは 2^0 = 1）
func (b Board) Tile(i int) int {
	return 1 << b.Get(i)
}

// Add は空きマスiに指数xのタイルを置いた盤面を返す
// 埋まっているマスへの配置はpanicする
func (b Board) Add(i int, x uint8) Board {
	if i < 0 || i >= 16 {
		panic(fmt.Sprintf("domain: cell index %d out of range", i))
	}
	return b.setRow(i/4, b.Row(i/4).Add(i%4, x))
}

// rightRotateIdx は右90度回転で新しいマスiに入る元のマスのインデックス
var rightRotateIdx = [16]int{12, 8, 4, 0, 13, 9, 5, 1, 14, 10, 6, 2, 15, 11, 7, 3}

// rotateRight は盤面を右に90度回転
func (b Board) rotateRight() Board {
	var result Board
	for i, idx := range rightRotateIdx {
		result |= Board(b.Get(idx)) << (i * 4)
	}
	return result
}

// rotateLeft は盤面を左に90度回転
func (b Board) rotateLeft() Board {
	var result Board
	for i, idx := range rightRotateIdx {
		result |= Board(b.Get(i)) << (idx * 4)
	}
	return result
}

func (b Board) moveLeft() Board {
	var result Board
	for r := 0; r < 4; r++ {
		result = result.setRow(r, b.Row(r).ShiftLeft())
	}
	return result
}

func (b Board) moveRight() Board {
	var result Board
	for r := 0; r < 4; r++ {
		result = result.setRow(r, b.Row(r).ShiftRight())
	}
	return result
}

// Move は指定方向に動かした盤面を返す（スポーンなし）
// 上下は回転してから左シフトし、逆方向に回転して戻す
func (b Board) Move(dir Direction) Board {
	switch dir {
	case Left:
		return b.moveLeft()
	case Right:
		return b.moveRight()
	case Up:
		return b.rotateLeft().moveLeft().rotateRight()
	case Down:
		return b.rotateRight().moveLeft().rotateLeft()
	default:
		return b
	}
}

// LegalMoves は盤面が変化する方向とその結果をLeft, Right, Up, Downの順に返す
func (b Board) LegalMoves() []Transition {
	moves := make([]Transition, 0, 4)
	for _, dir := range AllDirections {
		next := b.Move(dir)
		if next != b {
			moves = append(moves, Transition{Direction: dir, Board: next})
		}
	}
	return moves
}

// IsGameOver はどの方向にも動かせないか判定
func (b Board) IsGameOver() bool {
	for _, dir := range AllDirections {
		if b.Move(dir) != b {
			return false
		}
	}
	return true
}

// Empty は空きマスの線形インデックスを昇順で返す
func (b Board) Empty() []int {
	cells := make([]int, 0, 16)
	for r := 0; r < 4; r++ {
		for _, c := range b.Row(r).Empty() {
			cells = append(cells, r*4+c)
		}
	}
	return cells
}

// RandAdd は空きマスを一様に選び、90%で2、10%で4を置いた盤面を返す
// 満杯の盤面で呼ぶのはプログラミングエラーなのでpanicする
func (b Board) RandAdd(rng Rand) Board {
	empty := b.Empty()
	if len(empty) == 0 {
		panic("domain: attempt to add a tile to a full board")
	}
	i := empty[rng.Intn(len(empty))]
	x := uint8(2)
	if rng.Float64() < TwoSpawnProb {
		x = 1
	}
	return b.Add(i, x)
}

// HighestTile は最大タイルの値を返す
func (b Board) HighestTile() int {
	var highest uint8
	for i := 0; i < 16; i++ {
		if e := b.Get(i); e > highest {
			highest = e
		}
	}
	return 1 << highest
}

// String はBoardをASCIIアートとして表示する
func (b Board) String() string {
	line := "+------+------+------+------+"
	var sb strings.Builder
	sb.WriteString(line + "\n")
	for r := 0; r < 4; r++ {
		sb.WriteString("|")
		for c := 0; c < 4; c++ {
			i := r*4 + c
			if b.Get(i) == 0 {
				sb.WriteString("      |")
			} else {
				fmt.Fprintf(&sb, "%5d |", b.Tile(i))
			}
		}
		sb.WriteString("\n" + line + "\n")
	}
	return sb.String()
}
