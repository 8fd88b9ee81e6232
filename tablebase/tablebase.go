// Package tablebase is the endgame-tablebase collaborator mcts.Tablebase
// abstracts over. It does not ship a real Syzygy/Gaviota probe (that is an
// external data file this module has no access to); instead it classifies
// the handful of elementary endgames simply enough to judge outright from
// piece count and king position — K+Q v K, K+R v K, and K+P v K by the rule
// of the square — and reports everything else as not found.
package tablebase

import (
	"github.com/gorgonia/agogo/chess"
	"github.com/gorgonia/agogo/mcts"
)

// Rule is a rule-based classifier for elementary mating and pawn endgames.
// It makes no attempt at distance-to-zero move selection: ProbeDTZ always
// reports not-found, since picking the actual zeroing move needs real
// tablebase data this package does not have.
type Rule struct{}

// Probe classifies g from the side-to-move's perspective. It only
// recognizes lone-king-vs-king-plus-one-major endgames (always a win for
// the side with the extra piece) and king-and-pawn-vs-king by the classic
// rule of the square; every other material configuration reports
// TBNotFound so the caller falls back to the evaluator.
func (Rule) Probe(g mcts.Game) mcts.TBResult {
	p, ok := g.(*chess.Position)
	if !ok {
		return mcts.TBNotFound
	}

	material := classify(p)
	if !material.elementary {
		return mcts.TBNotFound
	}

	us := p.ActiveArmy()
	switch {
	case material.majorCount[us] > 0 && material.majorCount[us.Opponent()] == 0:
		return mcts.TBWin
	case material.majorCount[us.Opponent()] > 0 && material.majorCount[us] == 0:
		return mcts.TBLoss
	}

	if material.pawnSquare != chess.NoSquare && material.pawnColor == us {
		if pawnWinsRuleOfSquare(p, material.pawnSquare, us) {
			return mcts.TBWin
		}
		return mcts.TBDraw
	}
	if material.pawnSquare != chess.NoSquare && material.pawnColor == us.Opponent() {
		if pawnWinsRuleOfSquare(p, material.pawnSquare, us.Opponent()) {
			return mcts.TBLoss
		}
		return mcts.TBDraw
	}
	return mcts.TBDraw
}

// ProbeDTZ never finds a result: this package classifies outcomes but does
// not compute distance-to-zero or a best move, which would need real
// tablebase data.
func (Rule) ProbeDTZ(g mcts.Game) (result mcts.TBResult, move mcts.Move, dtz int, ok bool) {
	return mcts.TBNotFound, nil, 0, false
}

type material struct {
	elementary bool
	majorCount [2]int // queens+rooks, indexed by mcts.Player
	pawnSquare chess.Square
	pawnColor  mcts.Player
}

// classify inspects p's remaining material. It only marks a position
// elementary when, beyond the two kings, there is at most one extra piece
// on the board total.
func classify(p *chess.Position) material {
	m := material{pawnSquare: chess.NoSquare}
	extras := 0
	for sq := chess.Square(0); sq < 64; sq++ {
		pc := p.PieceAt(sq)
		switch pc {
		case chess.Empty, chess.WKing, chess.BKing:
			continue
		case chess.WQueen, chess.WRook:
			extras++
			m.majorCount[mcts.White]++
		case chess.BQueen, chess.BRook:
			extras++
			m.majorCount[mcts.Black]++
		case chess.WPawn:
			extras++
			m.pawnSquare, m.pawnColor = sq, mcts.White
		case chess.BPawn:
			extras++
			m.pawnSquare, m.pawnColor = sq, mcts.Black
		default:
			// Knight or bishop: outside this package's elementary set.
			extras += 2
		}
	}
	m.elementary = extras <= 1
	return m
}

// pawnWinsRuleOfSquare applies the classic rule of the square: the pawn
// promotes unassisted if the defending king cannot enter the square drawn
// from the pawn to its promotion square before the pawn arrives.
func pawnWinsRuleOfSquare(p *chess.Position, pawnSq chess.Square, pawnColor mcts.Player) bool {
	file := pawnSq.File()
	rank := pawnSq.Rank()

	var promoRank, distance int
	if pawnColor == mcts.White {
		promoRank = 7
		distance = promoRank - rank
	} else {
		promoRank = 0
		distance = rank - promoRank
	}

	defender := pawnColor.Opponent()
	kingSq := p.KingSquare(defender)
	kingFile, kingRank := kingSq.File(), kingSq.Rank()

	kingDistToPromo := abs(kingRank - promoRank)
	if fd := abs(kingFile - file); fd > kingDistToPromo {
		kingDistToPromo = fd
	}

	toMoveBonus := 0
	if p.ActiveArmy() == defender {
		toMoveBonus = 1
	}
	return kingDistToPromo > distance+toMoveBonus
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Null is a Tablebase that never finds anything, for engines run without
// any endgame knowledge at all.
type Null struct{}

func (Null) Probe(mcts.Game) mcts.TBResult { return mcts.TBNotFound }
func (Null) ProbeDTZ(mcts.Game) (mcts.TBResult, mcts.Move, int, bool) {
	return mcts.TBNotFound, nil, 0, false
}
