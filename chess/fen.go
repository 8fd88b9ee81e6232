package chess

import (
	"strconv"
	"strings"
)

// FromFEN parses Forsyth-Edwards Notation into a Position. It returns false
// if fen does not have at least the piece-placement and side-to-move
// fields.
func FromFEN(fen string) (*Position, bool) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, false
	}

	p := &Position{enPassant: NoSquare, fullmove: 1, repetitions: -1}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, false
	}
	for r, rank := range ranks {
		file := 0
		for _, ch := range rank {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			if file > 7 {
				return nil, false
			}
			sq := FromRankFile(7-r, file)
			piece, ok := pieceFromGlyph(byte(ch))
			if !ok {
				return nil, false
			}
			p.squares[sq] = piece
			if piece == WKing {
				p.kingSquare[White] = sq
			} else if piece == BKing {
				p.kingSquare[Black] = sq
			}
			file++
		}
	}

	switch parts[1] {
	case "w":
		p.side = White
	case "b":
		p.side = Black
	default:
		return nil, false
	}

	if len(parts) >= 3 && parts[2] != "-" {
		for _, ch := range parts[2] {
			switch ch {
			case 'K':
				p.castling |= CastleWK
			case 'Q':
				p.castling |= CastleWQ
			case 'k':
				p.castling |= CastleBK
			case 'q':
				p.castling |= CastleBQ
			}
		}
	}

	if len(parts) >= 4 && parts[3] != "-" {
		if len(parts[3]) < 2 {
			return nil, false
		}
		file := int(parts[3][0] - 'a')
		rank := int(parts[3][1] - '1')
		if file < 0 || file > 7 || rank < 0 || rank > 7 {
			return nil, false
		}
		p.enPassant = FromRankFile(rank, file)
	}

	if len(parts) >= 5 {
		if n, err := strconv.Atoi(parts[4]); err == nil {
			p.halfmove = n
		}
	}
	if len(parts) >= 6 {
		if n, err := strconv.Atoi(parts[5]); err == nil {
			p.fullmove = n
		}
	}

	return p, true
}

func pieceFromGlyph(ch byte) (Piece, bool) {
	for p, g := range pieceGlyph {
		if g == ch {
			return p, true
		}
	}
	return Empty, false
}

// FEN renders p in Forsyth-Edwards Notation.
func (p *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.squares[FromRankFile(rank, file)]
			if pc == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pieceGlyph[pc])
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if p.side == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	castling := ""
	if p.castling&CastleWK != 0 {
		castling += "K"
	}
	if p.castling&CastleWQ != 0 {
		castling += "Q"
	}
	if p.castling&CastleBK != 0 {
		castling += "k"
	}
	if p.castling&CastleBQ != 0 {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)

	if p.enPassant == NoSquare {
		sb.WriteString(" -")
	} else {
		sb.WriteByte(' ')
		sb.WriteString(p.enPassant.String())
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullmove))

	return sb.String()
}

// ParseMove parses long algebraic notation (e.g. "e2e4", "e7e8q") against
// p's current pseudo-legal moves, returning the matching Move.
func (p *Position) ParseMove(s string) (Move, bool) {
	if len(s) < 4 {
		return Move{}, false
	}
	fromFile, fromRank := int(s[0]-'a'), int(s[1]-'1')
	toFile, toRank := int(s[2]-'a'), int(s[3]-'1')
	if fromFile < 0 || fromFile > 7 || fromRank < 0 || fromRank > 7 ||
		toFile < 0 || toFile > 7 || toRank < 0 || toRank > 7 {
		return Move{}, false
	}
	from := FromRankFile(fromRank, fromFile)
	to := FromRankFile(toRank, toFile)

	var promo Piece
	if len(s) >= 5 {
		promo, _ = promoFromGlyph(s[4], p.side)
	}

	for _, m := range p.generatePseudoLegal(make([]Move, 0, 48)) {
		if m.From == from && m.To == to && (promo == Empty || m.Promo == promo) {
			return m, true
		}
	}
	return Move{}, false
}

func promoFromGlyph(ch byte, side Color) (Piece, bool) {
	if side == White {
		switch ch {
		case 'q':
			return WQueen, true
		case 'r':
			return WRook, true
		case 'b':
			return WBishop, true
		case 'n':
			return WKnight, true
		}
		return Empty, false
	}
	switch ch {
	case 'q':
		return BQueen, true
	case 'r':
		return BRook, true
	case 'b':
		return BBishop, true
	case 'n':
		return BKnight, true
	}
	return Empty, false
}
