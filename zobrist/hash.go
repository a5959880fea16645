package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/solitaire/card"
	"github.com/domino14/solitaire/game"
)

const bignum = 1<<63 - 2

// Zobrist generates a zobrist hash for a solitaire position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
//
// Every slot of the observation layout (a position inside a tableau,
// foundation, the waste or the stock) gets one key per card plus one for a
// face-down card in that slot.
type Zobrist struct {
	posTable    [][]uint64
	hiddenTable []uint64
	drawCounter [game.DrawLoopLimit + 1]uint64
	reversible  uint64
}

func (z *Zobrist) Initialize() {
	z.posTable = make([][]uint64, game.ObservationSize)
	z.hiddenTable = make([]uint64, game.ObservationSize)
	for i := 0; i < game.ObservationSize; i++ {
		z.posTable[i] = make([]uint64, card.NumCards)
		for j := 0; j < card.NumCards; j++ {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
		z.hiddenTable[i] = frand.Uint64n(bignum) + 1
	}
	for i := range z.drawCounter {
		z.drawCounter[i] = frand.Uint64n(bignum) + 1
	}
	z.reversible = frand.Uint64n(bignum) + 1
}

// New returns an initialized Zobrist.
func New() *Zobrist {
	z := &Zobrist{}
	z.Initialize()
	return z
}

// Hash hashes the visible position together with the state that decides
// which moves are legal next. Two games that reached the same layout by
// different routes hash the same.
func (z *Zobrist) Hash(g *game.Game) uint64 {
	vp := game.ObservationPool.Get().(*[]float64)
	defer game.ObservationPool.Put(vp)
	vec := *vp
	g.EncodeObservation(vec)

	key := uint64(0)
	for i, v := range vec {
		switch int(v) {
		case game.NoCard:
			continue
		case game.HiddenCard:
			key ^= z.hiddenTable[i]
		default:
			key ^= z.posTable[i][int(v)]
		}
	}
	dc := min(g.DrawCounter(), game.DrawLoopLimit)
	key ^= z.drawCounter[dc]
	if g.LastMoveReversible() {
		key ^= z.reversible
	}
	return key
}
