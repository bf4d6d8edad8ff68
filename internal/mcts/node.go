// Package mcts implements the Monte Carlo tree search core: a
// double-buffered node arena (see tree.go), PUCT selection, expansion
// via the policy scorer, leaf evaluation via the static evaluator, and
// backpropagation with proven-mate propagation (see search.go).
package mcts

import "github.com/riftchess/mctsengine/internal/board"

// NodeIndex packs a one-bit generation ("half") into the top bit of a
// 31-bit intra-half offset, the way the arena's node indices must
// survive across tree flips without ever aliasing a freed node.
type NodeIndex uint32

const nodeIndexHalfBit = uint32(1) << 31

// NodeIndexNull marks an unexpanded or not-yet-allocated child block.
const NodeIndexNull NodeIndex = NodeIndex(^uint32(0))

// NewNodeIndex builds an index from a half bit (0 or 1) and an offset.
func NewNodeIndex(half uint8, index uint32) NodeIndex {
	return NodeIndex((uint32(half) << 31) | index)
}

// Half reports which half of the arena this index refers to.
func (n NodeIndex) Half() uint8 { return uint8(uint32(n) >> 31) }

// Index reports the offset within that half.
func (n NodeIndex) Index() uint32 { return uint32(n) &^ nodeIndexHalfBit }

// Add returns the index offset by d slots within the same half.
func (n NodeIndex) Add(d uint32) NodeIndex { return n + NodeIndex(d) }

// GameResult tags a node's terminal status.
type GameResult uint8

const (
	NonTerminal GameResult = iota
	Mated
	Drawn
)

// ChildIter walks a contiguous block of child indices without allocating.
type ChildIter struct {
	cur, end NodeIndex
}

// Next returns the next child index, or false once exhausted.
func (it *ChildIter) Next() (NodeIndex, bool) {
	if it.cur == it.end {
		return 0, false
	}
	idx := it.cur
	it.cur++
	return idx, true
}

// Node is one arena slot: a move leading into this position from its
// parent, a policy prior, accumulated visit statistics, and (once
// expanded) the block of its children.
type Node struct {
	FirstChild NodeIndex
	ChildCount uint8
	ParentMove board.Move
	Result     GameResult
	// MateDist is nonzero only once a proven mate has propagated to this
	// node: positive means the side to move here forces mate in MateDist
	// plies, negative means it is mated in -MateDist plies.
	MateDist int16
	Policy   float32
	Wins     float32
	Visits   uint32
}

func newNode(mv board.Move, policy float32) Node {
	return Node{FirstChild: NodeIndexNull, ParentMove: mv, Policy: policy}
}

// Q is the node's empirical win rate from its own side-to-move's view.
func (n *Node) Q() float32 {
	if n.Visits == 0 {
		return 0
	}
	return n.Wins / float32(n.Visits)
}

// IsTerminal reports whether this node is a confirmed mate or draw (as
// opposed to merely having a proven mate distance propagated onto it).
func (n *Node) IsTerminal() bool { return n.Result != NonTerminal }

// IsExpanded reports whether children have ever been allocated for n.
func (n *Node) IsExpanded() bool { return n.ChildCount > 0 }

// ChildIndices iterates the contiguous block of n's children.
func (n *Node) ChildIndices() ChildIter {
	return ChildIter{cur: n.FirstChild, end: n.FirstChild.Add(uint32(n.ChildCount))}
}

// AddScore records one backpropagated playout result.
func (n *Node) AddScore(result float32) {
	n.Visits++
	n.Wins += result
}

// MateOutcome reports a proven mate, if any, from this node's own
// side-to-move's perspective: win (plies, true) or loss (plies, false).
func (n *Node) MateOutcome() (plies uint16, win bool, ok bool) {
	if n.Result == Mated {
		return 0, false, true
	}
	if n.MateDist > 0 {
		return uint16(n.MateDist), true, true
	}
	if n.MateDist < 0 {
		return uint16(-n.MateDist), false, true
	}
	return 0, false, false
}

// Score summarizes the node for reporting: a proven mate/loss distance
// or a draw takes priority over the running win-rate average.
func (n *Node) Score() Score {
	if n.Result == Drawn {
		return Score{kind: scoreDraw}
	}
	if plies, win, ok := n.MateOutcome(); ok {
		if win {
			return Score{kind: scoreWin, dist: plies}
		}
		return Score{kind: scoreLoss, dist: plies}
	}
	return Score{kind: scoreNormal, q: n.Q()}
}
