package usecase

import (
	"encoding/binary"

	"lukechampine.com/frand"

	"github.com/nnaakkaaii/expectimax2048/internal/domain"
)

// 出現用と手選択用の乱数列を分けるためのストリーム番号
const (
	spawnStream = 1
	moveStream  = 2
)

// NewRandPair はタイル出現用と手選択用の独立した乱数源を返す
// seedが0ならエントロピーから、それ以外は再現可能な乱数列を生成する
func NewRandPair(seed uint64) (spawn, move domain.Rand) {
	if seed == 0 {
		return frand.New(), frand.New()
	}
	return seededRand(seed, spawnStream), seededRand(seed, moveStream)
}

func seededRand(seed uint64, stream byte) *frand.RNG {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	key[8] = stream
	return frand.NewCustom(key[:], 1024, 12)
}
