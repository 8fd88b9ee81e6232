package chess

import (
	"testing"

	"github.com/gorgonia/agogo/mcts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countMoves(p *Position) int {
	n := 0
	p.PseudoLegalMoves(func(mcts.Move) { n++ })
	return n
}

// legalMoves filters PseudoLegalMoves the same way mcts.Node.generatePotential
// does: clone, apply, and discard anything that leaves the mover in check.
func legalMoves(p *Position) []Move {
	var out []Move
	mover := p.ActiveArmy()
	p.PseudoLegalMoves(func(m mcts.Move) {
		clone := p.Clone().(*Position)
		if !clone.MakeMove(m) {
			return
		}
		if clone.IsChecked(mover) {
			return
		}
		out = append(out, m.(Move))
	})
	return out
}

func TestStartingPositionHasTwentyMoves(t *testing.T) {
	p := NewGame()
	assert.Equal(t, 20, countMoves(p))
	assert.Len(t, legalMoves(p), 20)
}

func TestMakeMoveFlipsSideAndUpdatesClocks(t *testing.T) {
	p := NewGame()
	m, ok := p.ParseMove("e2e4")
	require.True(t, ok)
	require.True(t, p.MakeMove(m))

	assert.Equal(t, Black, p.ActiveArmy())
	assert.Equal(t, 0, p.HalfmoveClock(), "a pawn push resets the half-move clock")
	assert.Equal(t, FromRankFile(2, 4), p.enPassant)
}

func TestMakeMoveRejectsEmptyFromSquare(t *testing.T) {
	p := NewGame()
	bogus := Move{From: FromRankFile(3, 3), To: FromRankFile(4, 3), valid: true}
	assert.False(t, p.MakeMove(bogus))
}

func TestEnPassantCapture(t *testing.T) {
	p := NewGame()
	for _, uci := range []string{"e2e4", "a7a6", "e4e5", "d7d5"} {
		m, ok := p.ParseMove(uci)
		require.True(t, ok, uci)
		require.True(t, p.MakeMove(m))
	}
	m, ok := p.ParseMove("e5d6")
	require.True(t, ok, "e5d6 should be available as an en-passant capture")
	require.True(t, m.IsEnPassant())
	require.True(t, p.MakeMove(m))
	assert.Equal(t, Empty, p.PieceAt(FromRankFile(4, 3)), "the captured pawn square must be cleared")
}

func TestCastlingMovesRookToo(t *testing.T) {
	p := NewGame()
	for _, uci := range []string{"g1f3", "b8c6", "g2g3", "b7b6", "f1g2", "c8b7", "e1g1"} {
		m, ok := p.ParseMove(uci)
		require.True(t, ok, uci)
		require.True(t, p.MakeMove(m))
	}
	assert.Equal(t, WKing, p.PieceAt(6))
	assert.Equal(t, WRook, p.PieceAt(5))
	assert.Equal(t, Empty, p.PieceAt(7))
}

func TestFoolsMateLeavesWhiteWithNoLegalMoves(t *testing.T) {
	p := NewGame()
	for _, uci := range []string{"f2f3", "e7e5", "g2g4"} {
		m, ok := p.ParseMove(uci)
		require.True(t, ok, uci)
		require.True(t, p.MakeMove(m))
	}
	m, ok := p.ParseMove("d8h4")
	require.True(t, ok, "d8h4")
	require.True(t, p.MakeMove(m))

	assert.True(t, p.IsChecked(White))
	assert.Empty(t, legalMoves(p), "fool's mate leaves white with no way out of check")
}

func TestFENRoundTrip(t *testing.T) {
	p := NewGame()
	fen := p.FEN()
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", fen)

	parsed, ok := FromFEN(fen)
	require.True(t, ok)
	assert.Equal(t, fen, parsed.FEN())
}

func TestIsSamePositionIgnoresHalfmoveClock(t *testing.T) {
	a := NewGame()
	b, ok := FromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 7 1")
	require.True(t, ok)
	assert.True(t, a.IsSamePosition(b))
}

func TestRepetitionCacheDefaultsToUnset(t *testing.T) {
	p := NewGame()
	assert.Equal(t, -1, p.Repetitions())
	p.SetRepetitions(2)
	assert.Equal(t, 2, p.Repetitions())

	clone := p.Clone().(*Position)
	assert.Equal(t, -1, clone.Repetitions(), "a clone is a new tree node with its own uncomputed cache")
}

func TestIsDeadPositionBareKings(t *testing.T) {
	p, ok := FromFEN("8/8/4k3/8/8/4K3/8/8 w - - 0 1")
	require.True(t, ok)
	assert.True(t, p.IsDeadPosition())
}

func TestIsDeadPositionFalseWithRooks(t *testing.T) {
	p := NewGame()
	assert.False(t, p.IsDeadPosition())
}
