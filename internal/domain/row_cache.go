package domain

import "sync"

// rowCount は16ビット行がとりうる値の総数
const rowCount = 1 << 16

// PackedRow は1行を16ビットに詰めた表現（各マス4ビット、マスiはビット4i..4i+3）
type PackedRow uint16

// PackRow はArrayRowを16ビット表現に変換
func PackRow(r ArrayRow) PackedRow {
	return PackedRow(r[0]&0xF) |
		PackedRow(r[1]&0xF)<<4 |
		PackedRow(r[2]&0xF)<<8 |
		PackedRow(r[3]&0xF)<<12
}

// Unpack は16ビット表現をArrayRowに戻す
func (p PackedRow) Unpack() ArrayRow {
	return ArrayRow{p.Get(0), p.Get(1), p.Get(2), p.Get(3)}
}

// shiftTable は全65536行の左右シフト結果
type shiftTable struct {
	left  [rowCount]PackedRow
	right [rowCount]PackedRow
}

// shiftTables は初回アクセス時に一度だけ構築され、以後は読み取り専用
var shiftTables = sync.OnceValue(func() *shiftTable {
	t := new(shiftTable)
	for i := 0; i < rowCount; i++ {
		r := PackedRow(i).Unpack()
		t.left[i] = PackRow(r.ShiftLeft())
		t.right[i] = PackRow(r.ShiftRight())
	}
	return t
})

// ShiftLeft はテーブル参照で左シフトする
func (p PackedRow) ShiftLeft() PackedRow {
	return shiftTables().left[p]
}

// ShiftRight はテーブル参照で右シフトする
func (p PackedRow) ShiftRight() PackedRow {
	return shiftTables().right[p]
}

func (p PackedRow) Empty() []int {
	cells := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		if p.Get(i) == 0 {
			cells = append(cells, i)
		}
	}
	return cells
}

func (p PackedRow) Get(i int) uint8 {
	return uint8(p>>(4*i)) & 0xF
}

func (p PackedRow) Add(i int, x uint8) PackedRow {
	checkAdd(i, x, p.Get(i))
	return p | PackedRow(x)<<(4*i)
}

func (p PackedRow) String() string {
	return p.Unpack().String()
}
