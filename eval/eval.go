// Package eval is a material-and-position heuristic standing in for the
// neural-network evaluator mcts.Evaluator abstracts over. It scores
// positions the way a classical engine's static evaluation does: tapered
// piece-square tables blended between a middlegame and an endgame table by
// remaining material, squashed into the [-1, 1] range the search core
// expects. Move priors come from a cheap capture/promotion/center-control
// heuristic rather than a learned policy head.
package eval

import (
	"github.com/chewxy/math32"
	"github.com/gorgonia/agogo/chess"
	"github.com/gorgonia/agogo/mcts"
)

// pieceValues indexes by chess.Piece.Type()-1 (pawn=0 .. king=5).
var pieceValues = [6]int{100, 320, 330, 500, 900, 0}

// phaseWeight is how much each piece type contributes to the 0-24 game
// phase counter used to taper between middlegame and endgame tables.
var phaseWeight = [6]int{0, 1, 1, 2, 4, 0}

const totalPhase = 24

// Heuristic is a material-and-PST static evaluator. The zero value is
// ready to use.
type Heuristic struct{}

// Infer satisfies mcts.Evaluator. value is the tapered material/PST score
// from the side-to-move's perspective, squashed through tanh into [-1, 1].
// priors come from scoreMove, softmax-normalized over moves.
func (Heuristic) Infer(g mcts.Game, moves []mcts.Move) (value float32, priors []float32) {
	pos, ok := g.(*chess.Position)
	if !ok {
		priors = uniform(len(moves))
		return 0, priors
	}

	cp := staticEval(pos)
	value = math32.Tanh(float32(cp) / 400.0)

	priors = make([]float32, len(moves))
	if len(moves) == 0 {
		return value, priors
	}
	scores := make([]float32, len(moves))
	var maxScore float32 = -math32.MaxFloat32
	for i, m := range moves {
		scores[i] = scoreMove(pos, m.(chess.Move))
		if scores[i] > maxScore {
			maxScore = scores[i]
		}
	}
	var sum float32
	for i, s := range scores {
		// Subtract the max before exponentiating for numerical stability;
		// this is a plain softmax over move scores, not a learned policy.
		e := math32.Exp((s - maxScore) / 200.0)
		priors[i] = e
		sum += e
	}
	for i := range priors {
		priors[i] /= sum
	}
	return value, priors
}

func uniform(n int) []float32 {
	if n == 0 {
		return nil
	}
	p := make([]float32, n)
	u := float32(1) / float32(n)
	for i := range p {
		p[i] = u
	}
	return p
}

// staticEval returns a centipawn score from the side-to-move's perspective:
// material plus a phase-tapered piece-square bonus.
func staticEval(p *chess.Position) int {
	var mg, eg, phase [2]int
	var score [2]int
	for sq := chess.Square(0); sq < 64; sq++ {
		pc := p.PieceAt(sq)
		if pc == chess.Empty {
			continue
		}
		color := 0
		if pc.PieceColor() == chess.Black {
			color = 1
		}
		t := pc.Type() - 1
		score[color] += pieceValues[t]
		mg[color] += pstMid(pc, sq)
		eg[color] += pstEnd(pc, sq)
		phase[color] += phaseWeight[t]
	}

	ph := phase[0] + phase[1]
	if ph > totalPhase {
		ph = totalPhase
	}
	taperedMid := mg[0] - mg[1]
	taperedEnd := eg[0] - eg[1]
	positional := (taperedMid*ph + taperedEnd*(totalPhase-ph)) / totalPhase

	cp := (score[0] - score[1]) + positional
	if p.Side() == chess.Black {
		cp = -cp
	}
	return cp
}

// scoreMove is a move-ordering heuristic: MVV-LVA for captures, a flat
// bonus for promotions, and a small center-control nudge, matching the
// ordering a classical alpha-beta search would use to try its best guesses
// first.
func scoreMove(p *chess.Position, m chess.Move) float32 {
	var s float32
	if m.IsCapture() {
		victim := p.PieceAt(m.To)
		if victim == chess.Empty {
			// En passant: the captured pawn is not on the target square.
			victim = chess.WPawn
		}
		attacker := p.PieceAt(m.From)
		s += 1000 + float32(pieceValues[victim.Type()-1])*10 - float32(pieceValues[attacker.Type()-1])
	}
	if m.Promotion() {
		s += 800
	}
	toFile, toRank := m.To.File(), m.To.Rank()
	centerDist := abs(toFile-3) + abs(toFile-4) + abs(toRank-3) + abs(toRank-4)
	s += float32(14 - centerDist)
	return s
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
