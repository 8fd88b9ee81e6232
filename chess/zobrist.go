package chess

import "golang.org/x/exp/rand"

// Zobrist hashing identifies repeated positions for mcts.Game's
// IsSamePosition / repetition bookkeeping. The hash is not maintained
// incrementally: IsSamePosition recomputes it on demand with a fixed
// 64-square walk.

var (
	zobristPieces     [13][64]uint64
	zobristCastling   [16]uint64
	zobristEnPassant  [8]uint64
	zobristSideToMove uint64
)

func init() {
	// Fixed seed: the hash only needs to be stable within a single run of
	// the engine, never across processes.
	rng := rand.New(rand.NewSource(0x1234567890ABCDEF))
	for piece := 0; piece < 13; piece++ {
		for sq := 0; sq < 64; sq++ {
			zobristPieces[piece][sq] = rng.Uint64()
		}
	}
	for i := 0; i < 16; i++ {
		zobristCastling[i] = rng.Uint64()
	}
	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.Uint64()
	}
	zobristSideToMove = rng.Uint64()
}

func (p *Position) computeHash() uint64 {
	var h uint64
	for sq := Square(0); sq < 64; sq++ {
		pc := p.squares[sq]
		if pc != Empty {
			h ^= zobristPieces[pc][sq]
		}
	}
	h ^= zobristCastling[p.castling]
	if p.enPassant != NoSquare {
		h ^= zobristEnPassant[p.enPassant.File()]
	}
	if p.side == Black {
		h ^= zobristSideToMove
	}
	return h
}
