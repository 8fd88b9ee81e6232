package chess

// Move is a candidate or played move, satisfying mcts.Move. Zero-value
// Moves are invalid; every Move the package hands to a caller is built by
// move generation or ParseMove, both of which set valid.
type Move struct {
	From, To  Square
	Promo     Piece // promotion piece, colorless Type() semantics not used here; Empty if none
	valid     bool
	capture   bool
	enPassant bool
	castle    bool
	check     bool
}

// IsValid reports whether this Move was produced by move generation or
// parsing, as opposed to being a zero-valued placeholder.
func (m Move) IsValid() bool { return m.valid }

// IsCapture reports whether m captures a piece (en passant included).
func (m Move) IsCapture() bool { return m.capture }

// IsCheck reports whether m gives check. The flag is set by MakeMove on the
// move it records as LastMove; moves from generation or ParseMove report
// false.
func (m Move) IsCheck() bool { return m.check }

// IsEnPassant reports whether m is an en-passant capture.
func (m Move) IsEnPassant() bool { return m.enPassant }

// Promotion reports whether m promotes a pawn.
func (m Move) Promotion() bool { return m.Promo != Empty }

var promoGlyph = map[Piece]byte{
	WQueen: 'q', WRook: 'r', WBishop: 'b', WKnight: 'n',
	BQueen: 'q', BRook: 'r', BBishop: 'b', BKnight: 'n',
}

// String renders m in long algebraic notation, e.g. "e2e4" or "a7a8q", with
// a trailing "+" when it is a checking move.
func (m Move) String() string {
	if !m.valid {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if g, ok := promoGlyph[m.Promo]; ok {
		s += string(g)
	}
	if m.check {
		s += "+"
	}
	return s
}
