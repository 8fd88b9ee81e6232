package mcts

import "github.com/pkg/errors"

// Sentinel errors described in spec §7. The core itself performs no I/O:
// these report an exhausted playout budget, a rejected tablebase move, a
// breached precondition, or a move missing from the root's children.
var (
	// ErrNoPlayout indicates playout() exhausted its try/vld budget without
	// finding a leaf to hand to the evaluator. The caller should treat the
	// search as saturated for this instant and either wait or move on.
	ErrNoPlayout = errors.New("mcts: no playout available, try/vld budget exhausted")

	// ErrIllegalDTZMove indicates the tablebase returned a best move that
	// the rules engine rejected. The DTZ short-circuit is abandoned and
	// normal search proceeds.
	ErrIllegalDTZMove = errors.New("mcts: tablebase DTZ move rejected by rules engine")

	// ErrNotRoot is raised (in debug builds) when an operation that
	// requires a root node is attempted on a node with a parent.
	ErrNotRoot = errors.New("mcts: node is not a root node")

	// ErrMissingRawQValue is raised (in debug builds) when back-propagation
	// is attempted on a node that was never scored.
	ErrMissingRawQValue = errors.New("mcts: back-propagation requires a raw Q-value")

	// ErrMoveNotFound is returned by Tree.AdvanceRoot when the requested
	// move has no corresponding materialized child of the current root.
	ErrMoveNotFound = errors.New("mcts: move not found among root's children")
)

// assertf panics with a wrapped, captioned error in debug builds; see
// log_release.go for the release-build no-op variant used instead.
func assertf(cond bool, base error, format string, args ...interface{}) {
	if cond {
		return
	}
	assertFail(errors.Wrapf(base, format, args...))
}
