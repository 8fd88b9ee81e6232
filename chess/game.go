package chess

import "github.com/gorgonia/agogo/mcts"

// Position is a chess position snapshot: the sole implementation of
// mcts.Game. Every Clone is an independent value; MakeMove mutates its
// receiver in place, matching how the search core clones before trying a
// move (see mcts.Node.generatePotential).
type Position struct {
	squares    [64]Piece
	side       Color
	castling   uint8
	enPassant  Square
	halfmove   int
	fullmove   int
	kingSquare [2]Square

	lastMove Move

	checkmate bool
	stalemate bool

	// repetitions caches the ancestor-walk result from mcts.Node.repetitions;
	// -1 means "not yet computed for this snapshot".
	repetitions int
}

// NewGame returns the standard starting position.
func NewGame() *Position {
	p := &Position{
		squares:     startingSquares(),
		side:        White,
		castling:    CastleWK | CastleWQ | CastleBK | CastleBQ,
		enPassant:   NoSquare,
		fullmove:    1,
		repetitions: -1,
	}
	p.kingSquare[White] = 4
	p.kingSquare[Black] = 60
	return p
}

// Clone returns an independent copy of p. The repetition cache is reset:
// a clone is a fresh tree node and has not yet had its ancestor chain
// walked.
func (p *Position) Clone() mcts.Game {
	cp := *p
	cp.repetitions = -1
	return &cp
}

// LastMove returns the move that produced this position, or the zero Move
// at the root.
func (p *Position) LastMove() mcts.Move { return p.lastMove }

// HalfmoveClock returns the half-move clock (plies since the last capture
// or pawn push), used for the 50-move rule.
func (p *Position) HalfmoveClock() int { return p.halfmove }

// ActiveArmy returns the side to move.
func (p *Position) ActiveArmy() mcts.Player { return p.side }

// IsChecked reports whether side's king is currently attacked, independent
// of whose turn it is.
func (p *Position) IsChecked(side mcts.Player) bool {
	return p.isAttacked(p.kingSquare[side], side.Opponent())
}

// IsDeadPosition reports whether neither side has enough material to
// deliver checkmate: no pawns, rooks or queens remain and each side has at
// most one knight or bishop. Bishop square colors are not examined, so
// K+B v K+B, K+N v K+N and K+B v K+N all count as dead.
func (p *Position) IsDeadPosition() bool {
	var whiteMinors, blackMinors, pawns, rooksQueens int
	for sq := Square(0); sq < 64; sq++ {
		switch p.squares[sq] {
		case WPawn, BPawn:
			pawns++
		case WRook, WQueen, BRook, BQueen:
			rooksQueens++
		case WKnight, WBishop:
			whiteMinors++
		case BKnight, BBishop:
			blackMinors++
		}
	}
	if pawns > 0 || rooksQueens > 0 {
		return false
	}
	return whiteMinors <= 1 && blackMinors <= 1
}

// IsSamePosition reports whether other is the same position for
// three-fold repetition purposes: same piece placement, side to move,
// castling rights and en-passant target.
func (p *Position) IsSamePosition(other mcts.Game) bool {
	o, ok := other.(*Position)
	if !ok {
		return false
	}
	if p.side != o.side || p.castling != o.castling || p.enPassant != o.enPassant {
		return false
	}
	return p.computeHash() == o.computeHash()
}

// Repetitions returns the cached repetition count, or -1 if unset.
func (p *Position) Repetitions() int { return p.repetitions }

// SetRepetitions caches the repetition count computed by the search core.
func (p *Position) SetRepetitions(n int) { p.repetitions = n }

// SetCheckmate records that this position is checkmate.
func (p *Position) SetCheckmate() { p.checkmate = true }

// SetStalemate records that this position is stalemate.
func (p *Position) SetStalemate() { p.stalemate = true }

// IsCheckmate reports whether SetCheckmate was called on this snapshot.
func (p *Position) IsCheckmate() bool { return p.checkmate }

// IsStalemate reports whether SetStalemate was called on this snapshot.
func (p *Position) IsStalemate() bool { return p.stalemate }

// PseudoLegalMoves calls accept once per pseudo-legal move; it does not
// filter moves that leave the mover in check, matching mcts.Game's
// contract that such filtering happens at the call site.
func (p *Position) PseudoLegalMoves(accept func(mcts.Move)) {
	buf := p.generatePseudoLegal(make([]Move, 0, 48))
	for _, m := range buf {
		accept(m)
	}
}

// MakeMove applies m in place. It reports false only when m is structurally
// invalid; a move that leaves its own king in check is still applied and
// must be checked for afterwards via IsChecked, per mcts.Game's contract.
func (p *Position) MakeMove(mv mcts.Move) bool {
	m, ok := mv.(Move)
	if !ok || !m.valid {
		return false
	}

	piece := p.squares[m.From]
	if piece == Empty {
		return false
	}
	us := p.side
	them := us.Opponent()

	captured := p.squares[m.To]
	if m.From == m.To {
		return false
	}

	if piece == WPawn || piece == BPawn {
		if m.To == p.enPassant {
			if us == White {
				p.squares[m.To-8] = Empty
			} else {
				p.squares[m.To+8] = Empty
			}
			captured = Empty
			if us == White {
				captured = BPawn
			} else {
				captured = WPawn
			}
		}
	}

	p.squares[m.To] = piece
	p.squares[m.From] = Empty
	if m.Promo != Empty {
		p.squares[m.To] = m.Promo
	}

	if piece == WKing || piece == BKing {
		p.kingSquare[us] = m.To
		switch {
		case m.From == 4 && m.To == 6:
			p.squares[5], p.squares[7] = WRook, Empty
		case m.From == 4 && m.To == 2:
			p.squares[3], p.squares[0] = WRook, Empty
		case m.From == 60 && m.To == 62:
			p.squares[61], p.squares[63] = BRook, Empty
		case m.From == 60 && m.To == 58:
			p.squares[59], p.squares[56] = BRook, Empty
		}
	}

	if m.From == 4 {
		p.castling &^= CastleWK | CastleWQ
	}
	if m.From == 60 {
		p.castling &^= CastleBK | CastleBQ
	}
	if m.From == 0 || m.To == 0 {
		p.castling &^= CastleWQ
	}
	if m.From == 7 || m.To == 7 {
		p.castling &^= CastleWK
	}
	if m.From == 56 || m.To == 56 {
		p.castling &^= CastleBQ
	}
	if m.From == 63 || m.To == 63 {
		p.castling &^= CastleBK
	}

	p.enPassant = NoSquare
	if piece == WPawn && int(m.To-m.From) == 16 {
		p.enPassant = m.From + 8
	} else if piece == BPawn && int(m.From-m.To) == 16 {
		p.enPassant = m.From - 8
	}

	if captured != Empty || piece == WPawn || piece == BPawn {
		p.halfmove = 0
	} else {
		p.halfmove++
	}
	if us == Black {
		p.fullmove++
	}

	p.side = them
	p.repetitions = -1

	m.capture = captured != Empty
	m.check = p.IsChecked(them)
	p.lastMove = m
	return true
}
