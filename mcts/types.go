// Package mcts implements the PUCT-style Monte Carlo Tree Search core of a
// neural-network-guided chess engine: lazy child materialization from
// potential moves, virtual-loss-biased concurrent playouts, and
// sign-flipping back-propagation of value estimates.
//
// The rules engine, the neural network evaluator and the endgame tablebase
// are external collaborators, consumed here through the narrow interfaces
// below.
package mcts

import "github.com/chewxy/math32"

// Player is the side to move. Q-values, prior probabilities and rendering
// are all relative to whichever Player is active at a node.
type Player uint8

const (
	White Player = iota
	Black
)

// Opponent returns the other side.
func (p Player) Opponent() Player {
	if p == White {
		return Black
	}
	return White
}

func (p Player) String() string {
	if p == White {
		return "white"
	}
	return "black"
}

// Move is a candidate or played chess move. Concrete implementations are
// supplied by the rules engine collaborator (see package chess).
type Move interface {
	IsValid() bool
	IsCapture() bool
	IsCheck() bool
	IsEnPassant() bool
	// Promotion reports whether the move promotes a pawn.
	Promotion() bool
	// String renders the move in long-algebraic notation, e.g. "e2e4" or
	// "a7a8q".
	String() string
}

// Game is a cheaply-copyable chess position snapshot. It is the sole
// authority on legality, check detection and repetition bookkeeping; the
// core never inspects a board directly.
type Game interface {
	// Clone returns an independent copy of the position.
	Clone() Game

	LastMove() Move
	HalfmoveClock() int
	ActiveArmy() Player

	IsChecked(side Player) bool
	IsDeadPosition() bool
	IsSamePosition(other Game) bool

	// Repetitions returns the cached repetition count, or -1 if it has
	// never been computed for this snapshot.
	Repetitions() int
	SetRepetitions(n int)

	// MakeMove applies move in place and reports whether it was legal to
	// apply (pseudo-legal moves may still leave the mover in check).
	MakeMove(m Move) bool

	SetCheckmate()
	SetStalemate()

	// PseudoLegalMoves calls accept once per pseudo-legal move available to
	// the side to move. accept is expected to reject (by doing nothing)
	// moves that leave the mover in check.
	PseudoLegalMoves(accept func(Move))
}

// Evaluator is the neural network collaborator: given a leaf position, it
// returns a value in [-1, 1] from the side-to-move's perspective and a
// policy assigning a prior probability to each of the position's pseudo-
// legal moves, indexed in the same order PseudoLegalMoves would enumerate
// them.
//
// Infer may be called concurrently from multiple playout workers; an
// external batching layer (out of scope here) may coalesce such calls.
type Evaluator interface {
	Infer(g Game, moves []Move) (value float32, priors []float32)
}

// TBResult is the outcome of a tablebase probe, from the perspective of the
// side to move in the probed position.
type TBResult uint8

const (
	TBNotFound TBResult = iota
	TBWin
	TBLoss
	TBDraw
)

// Tablebase is the endgame tablebase collaborator.
type Tablebase interface {
	Probe(g Game) TBResult
	// ProbeDTZ probes distance-to-zero at the root, returning the best move
	// towards zeroing the halfmove clock along with the result it leads to.
	// ok is false when the position is not in the tablebase.
	ProbeDTZ(g Game) (result TBResult, move Move, dtz int, ok bool)
}

// Settings are the external search-settings collaborator (§6): the knobs a
// UCI/engine-configuration layer would normally load from a file.
type Settings struct {
	// TryPlayoutLimit bounds how many times playout() will restart from the
	// root before giving up and reporting no progress.
	TryPlayoutLimit int
	// VLDMax bounds the total virtual-loss budget a single playout() call
	// may spend bouncing off already-busy nodes.
	VLDMax int32

	CPuctBase  float32
	CPuctFactor float32
	CPuctInit  float32
}

// DefaultSettings mirrors the defaults a typical lc0-family engine ships
// with.
func DefaultSettings() Settings {
	return Settings{
		TryPlayoutLimit: 3,
		VLDMax:          800,
		CPuctBase:       19652,
		CPuctFactor:     1.25,
		CPuctInit:       1.25,
	}
}

// CPuct returns the exploration constant for a parent with the given visit
// count, per the lc0/AlphaZero formula: it grows (slowly, logarithmically)
// with experience at the node.
func (s Settings) CPuct(parentVisits uint32) float32 {
	return s.CPuctInit + s.CPuctFactor*math32.Log((float32(parentVisits)+s.CPuctBase+1)/s.CPuctBase)
}
