// Package perft implements the move-counting correctness oracle used to
// validate the legal move generator: the number of leaf positions
// reachable in exactly N plies from a given position is a well-known
// quantity for a large battery of FENs, so any move-generation bug
// (missed pin, wrong en passant square, double-counted castle) shows up
// as a node-count mismatch long before it would surface as a search bug.
package perft

import "github.com/riftchess/mctsengine/internal/board"

// Count returns the number of leaf positions reachable from pos in
// exactly depth plies. depth 0 always returns 1 (pos itself).
func Count(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		undo := pos.MakeMove(m)
		nodes += Count(pos, depth-1)
		pos.UnmakeMove(m, undo)
	}
	return nodes
}

// Divide breaks the depth-node perft count down by the root's first
// move, in move order, the way "go perft N" debug commands report it so
// a mismatch against a reference engine can be bisected one ply at a
// time instead of re-running the whole battery.
func Divide(pos *board.Position, depth int) []MoveCount {
	moves := pos.GenerateLegalMoves()
	counts := make([]MoveCount, 0, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		undo := pos.MakeMove(m)
		nodes := Count(pos, depth-1)
		pos.UnmakeMove(m, undo)
		counts = append(counts, MoveCount{Move: m, Nodes: nodes})
	}
	return counts
}

// MoveCount is one root move's share of a Divide call.
type MoveCount struct {
	Move  board.Move
	Nodes uint64
}
