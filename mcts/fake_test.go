package mcts

// This file backs the package's tests with a minimal in-memory game: a
// binary tree of positions reached by moves "L" and "R", deep enough to
// exercise selection, expansion, and back-propagation without pulling in
// a real rules engine. It plays the same role the teacher's dummyNN/mnk
// pairing does for its own tests.

type fakeMove struct {
	label    string
	capture  bool
	check    bool
	promotes bool
}

func (m fakeMove) IsValid() bool    { return m.label != "" }
func (m fakeMove) IsCapture() bool  { return m.capture }
func (m fakeMove) IsCheck() bool    { return m.check }
func (m fakeMove) IsEnPassant() bool { return false }
func (m fakeMove) Promotion() bool  { return m.promotes }
func (m fakeMove) String() string  { return m.label }

var (
	moveL = fakeMove{label: "L"}
	moveR = fakeMove{label: "R"}
)

// fakeGame is a toy position: a path of moves from an implicit start, a
// maximum depth past which no further moves are offered (so the tree
// terminates and generatePotentials falls through to the
// checkmate/stalemate override), and a halfmove clock that resets on "L"
// moves and increments on "R" moves, giving tests an easy knob for the
// 50-move-rule path.
type fakeGame struct {
	path        []fakeMove
	maxDepth    int
	halfmove    int
	repetitions int
	dead        bool
	toMove      Player
	checkmate   bool
	stalemate   bool
	checked     bool
}

func newFakeGame(maxDepth int) *fakeGame {
	return &fakeGame{maxDepth: maxDepth, repetitions: -1, toMove: White}
}

func (g *fakeGame) Clone() Game {
	cp := *g
	cp.path = append([]fakeMove(nil), g.path...)
	return &cp
}

func (g *fakeGame) LastMove() Move {
	if len(g.path) == 0 {
		return nil
	}
	return g.path[len(g.path)-1]
}

func (g *fakeGame) HalfmoveClock() int { return g.halfmove }
func (g *fakeGame) ActiveArmy() Player { return g.toMove }
func (g *fakeGame) IsChecked(side Player) bool { return g.checked && side == g.toMove }
func (g *fakeGame) IsDeadPosition() bool       { return g.dead }

func (g *fakeGame) IsSamePosition(other Game) bool {
	o, ok := other.(*fakeGame)
	if !ok || len(o.path) != len(g.path) {
		return false
	}
	for i, m := range g.path {
		if o.path[i] != m {
			return false
		}
	}
	return true
}

func (g *fakeGame) Repetitions() int     { return g.repetitions }
func (g *fakeGame) SetRepetitions(n int) { g.repetitions = n }

func (g *fakeGame) MakeMove(m Move) bool {
	fm, ok := m.(fakeMove)
	if !ok || !fm.IsValid() {
		return false
	}
	g.path = append(g.path, fm)
	if fm == moveR {
		g.halfmove++
	} else {
		g.halfmove = 0
	}
	g.repetitions = -1
	g.toMove = g.toMove.Opponent()
	return true
}

func (g *fakeGame) SetCheckmate() { g.checkmate = true }
func (g *fakeGame) SetStalemate() { g.stalemate = true }

func (g *fakeGame) PseudoLegalMoves(accept func(Move)) {
	if len(g.path) >= g.maxDepth {
		return
	}
	accept(moveL)
	accept(moveR)
}

// fakeEvaluator returns a fixed value and a uniform prior over whatever
// moves it is asked about.
type fakeEvaluator struct {
	value float32
}

func (e fakeEvaluator) Infer(g Game, moves []Move) (float32, []float32) {
	priors := make([]float32, len(moves))
	if len(moves) > 0 {
		p := float32(1) / float32(len(moves))
		for i := range priors {
			priors[i] = p
		}
	}
	return e.value, priors
}

// fakeTablebase never finds anything, unless armed.
type fakeTablebase struct {
	probeResult TBResult
	probe       bool
	dtzMove     Move
	dtzResult   TBResult
	dtzOK       bool
}

func (tb fakeTablebase) Probe(g Game) TBResult {
	if !tb.probe {
		return TBNotFound
	}
	return tb.probeResult
}

func (tb fakeTablebase) ProbeDTZ(g Game) (TBResult, Move, int, bool) {
	if !tb.dtzOK {
		return TBNotFound, nil, 0, false
	}
	return tb.dtzResult, tb.dtzMove, 1, true
}
