// Package chess is the rules-engine collaborator consumed by package mcts
// through its Game and Move interfaces (see mcts.Game, mcts.Move). It owns
// board representation, legality, check/mate/stalemate detection and
// Zobrist-based repetition bookkeeping; the search core never looks past
// those interfaces.
package chess

import "github.com/gorgonia/agogo/mcts"

// Color is an alias for mcts.Player: a chess.Position's side to move and a
// mcts search node's active army are the same concept, so there is no
// conversion at the package boundary.
type Color = mcts.Player

const (
	White = mcts.White
	Black = mcts.Black
)

// Piece is a chess piece with its color encoded, 0 meaning an empty square.
type Piece uint8

const (
	Empty Piece = iota
	WPawn
	WKnight
	WBishop
	WRook
	WQueen
	WKing
	BPawn
	BKnight
	BBishop
	BRook
	BQueen
	BKing
)

// PieceColor returns the color of a non-empty piece.
func (p Piece) PieceColor() Color {
	if p >= BPawn {
		return Black
	}
	return White
}

// IsWhite reports whether p is a white piece.
func (p Piece) IsWhite() bool { return p >= WPawn && p <= WKing }

// IsBlack reports whether p is a black piece.
func (p Piece) IsBlack() bool { return p >= BPawn && p <= BKing }

// Type returns the piece type (1=pawn .. 6=king), 0 for an empty square.
func (p Piece) Type() int {
	if p == Empty {
		return 0
	}
	if p >= BPawn {
		return int(p - BPawn + 1)
	}
	return int(p)
}

var pieceGlyph = map[Piece]byte{
	WKing: 'K', WQueen: 'Q', WRook: 'R', WBishop: 'B', WKnight: 'N', WPawn: 'P',
	BKing: 'k', BQueen: 'q', BRook: 'r', BBishop: 'b', BKnight: 'n', BPawn: 'p',
}

// Castling-right bits, packed KQkq in FEN order.
const (
	CastleWK uint8 = 1 << iota
	CastleWQ
	CastleBK
	CastleBQ
)

// Square is a 0-63 board index, a1=0 through h8=63.
type Square int8

// NoSquare marks the absence of an en-passant target.
const NoSquare Square = -1

// Rank returns the 0-7 rank (0 is rank 1).
func (sq Square) Rank() int { return int(sq) / 8 }

// File returns the 0-7 file (0 is file a).
func (sq Square) File() int { return int(sq) % 8 }

// FromRankFile builds a square from 0-7 rank and file.
func FromRankFile(rank, file int) Square { return Square(rank*8 + file) }

// IsValid reports whether sq lies on the board.
func (sq Square) IsValid() bool { return sq >= 0 && sq < 64 }

func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	files := "abcdefgh"
	ranks := "12345678"
	return string(files[sq.File()]) + string(ranks[sq.Rank()])
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
