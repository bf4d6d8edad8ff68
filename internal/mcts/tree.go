package mcts

import (
	"math"
	"unsafe"

	"github.com/riftchess/mctsengine/internal/board"
	"github.com/riftchess/mctsengine/internal/policy"
)

// maxChildren bounds a single expansion the same way board.MaxMoves
// bounds a move list: no chess position has more than a few dozen
// legal moves, 256 is generous headroom and lets the softmax scratch
// buffer be a fixed-size array on Tree instead of a slice allocated per
// expansion.
const maxChildren = board.MaxMoves

// Half is one of the arena's two node buffers.
type Half struct {
	nodes []Node
	used  uint32
}

func newHalf(capacity uint32) *Half {
	return &Half{nodes: make([]Node, capacity)}
}

// MaxNodes is this half's fixed capacity.
func (h *Half) MaxNodes() uint32 { return uint32(len(h.nodes)) }

// UsedNodes is how many of those slots are currently allocated.
func (h *Half) UsedNodes() uint32 { return h.used }

// clearIndices runs on the half that is about to go inactive and resets
// every child pointer it holds into the other half, whose slots are
// about to be reused for new allocations: those nodes must be
// re-expanded before they can be selected through again. Pointers
// within this half are kept, so FetchChildren can copy those children
// across later.
func (h *Half) clearIndices(half uint8) {
	for i := range h.nodes {
		if h.nodes[i].FirstChild.Half() != half {
			h.nodes[i].FirstChild = NodeIndexNull
			h.nodes[i].ChildCount = 0
		}
	}
}

// Tree is the double-buffered MCTS node arena. Exactly one half is
// "active" (receives new allocations) at a time; the other holds the
// previous generation, whose nodes are fetched across lazily as
// selection descends into them.
type Tree struct {
	halves     [2]*Half
	activeHalf uint8

	rootTemperature     float32
	interiorTemperature float32

	policyScratch [maxChildren]float32
}

// NewTree allocates a two-half arena sized to hold roughly mb megabytes
// of nodes in total (mb/2 per half), the way the original engine turns
// a UCI Hash-style size into a node budget.
func NewTree(mb int, rootTemperature, interiorTemperature float32) *Tree {
	if mb < 1 {
		mb = 1
	}
	nodeSize := uint64(unsafe.Sizeof(Node{}))
	totalNodes := uint64(mb) * 1024 * 1024 / nodeSize
	halfNodes := uint32(totalNodes / 2)
	if halfNodes < 2 {
		halfNodes = 2
	}
	t := &Tree{
		halves:              [2]*Half{newHalf(halfNodes), newHalf(halfNodes)},
		rootTemperature:     rootTemperature,
		interiorTemperature: interiorTemperature,
	}
	t.Clear()
	return t
}

func (t *Tree) currHalf() *Half { return t.halves[t.activeHalf] }

// Size is the number of nodes allocated in the active half.
func (t *Tree) Size() uint32 { return t.currHalf().used }

// Capacity is the active half's node capacity.
func (t *Tree) Capacity() uint32 { return t.currHalf().MaxNodes() }

// RootNode is always slot 0 of the active half.
func (t *Tree) RootNode() NodeIndex { return NewNodeIndex(t.activeHalf, 0) }

// At returns a pointer to the node at idx, live across reads and writes.
func (t *Tree) At(idx NodeIndex) *Node {
	return &t.halves[idx.Half()].nodes[idx.Index()]
}

// Clear empties both halves conceptually by resetting the active half
// to hold only a fresh root.
func (t *Tree) Clear() {
	t.currHalf().used = 1
	t.resetRootNode()
}

func (t *Tree) resetRootNode() {
	*t.At(t.RootNode()) = newNode(board.NoMove, 0)
}

// Flip swaps the active half, first resetting any child pointers from
// the outgoing half into the incoming one (whose slots get reused), and
// seeds the new
// active half with a copy of the current root so the next selection
// has somewhere to start while its subtree is fetched back lazily.
func (t *Tree) Flip() {
	oldRoot := t.RootNode()
	half := t.activeHalf
	t.currHalf().clearIndices(half)

	t.activeHalf ^= 1
	newRoot := t.RootNode()
	t.currHalf().used = 1
	*t.At(newRoot) = *t.At(oldRoot)
}

// SetAsRoot promotes node idx (a child of the current root) to be the
// new root, the way the driver advances the tree when a move is played
// instead of discarding accumulated statistics. The promoted node's
// children were scored with the interior temperature; since it is now
// the root it must be rescored with the root temperature, so its
// children are re-softmaxed immediately.
func (t *Tree) SetAsRoot(idx NodeIndex, pos *board.Position) {
	if idx.Half() != t.activeHalf {
		panic("mcts: SetAsRoot called with a node from the inactive half")
	}
	promoted := *t.At(idx)
	t.Flip()
	root := t.RootNode()
	*t.At(root) = promoted
	if promoted.IsExpanded() {
		t.FetchChildren(root)
		t.RelabelPolicies(root, pos)
	}
}

// FetchChildren ensures node idx's children live in the active half,
// copying them across from the previous generation on demand. Returns
// false if the active half has no room, in which case the caller
// should Flip and retry the whole selection from the root.
func (t *Tree) FetchChildren(idx NodeIndex) bool {
	node := t.At(idx)
	if !node.IsExpanded() {
		return true
	}
	if node.FirstChild.Half() == t.activeHalf {
		return true
	}

	oldFirst := node.FirstChild
	count := uint32(node.ChildCount)
	newFirst, ok := t.allocNodes(count)
	if !ok {
		return false
	}
	for i := uint32(0); i < count; i++ {
		*t.At(newFirst.Add(i)) = *t.At(oldFirst.Add(i))
	}
	t.At(idx).FirstChild = newFirst
	return true
}

// ExpandNode generates idx's legal moves and allocates a child block
// with policy priors softmaxed from the policy scorer, or marks idx
// terminal (Mated/Drawn) if pos has no legal moves. Returns false if
// the active half is full, in which case the caller should Flip.
func (t *Tree) ExpandNode(idx NodeIndex, pos *board.Position) bool {
	legal := pos.GenerateLegalMoves()
	n := legal.Len()
	if n == 0 {
		node := t.At(idx)
		if pos.InCheck() {
			node.Result = Mated
		} else {
			node.Result = Drawn
		}
		return true
	}

	firstChild, ok := t.allocNodes(uint32(n))
	if !ok {
		return false
	}

	temperature := t.interiorTemperature
	if idx.Index() == 0 {
		temperature = t.rootTemperature
	}

	maxLogit := float32(0)
	for i := 0; i < n; i++ {
		logit := policy.Evaluate(pos, legal.At(i)) / temperature
		t.policyScratch[i] = logit
		if i == 0 || logit > maxLogit {
			maxLogit = logit
		}
	}
	softmaxInPlace(t.policyScratch[:n], maxLogit)

	node := t.At(idx)
	node.FirstChild = firstChild
	node.ChildCount = uint8(n)
	for i := 0; i < n; i++ {
		*t.At(firstChild.Add(uint32(i))) = newNode(legal.At(i), t.policyScratch[i])
	}
	return true
}

// RelabelPolicies re-softmaxes idx's existing children against idx's
// own temperature, used when a child is promoted to root: it already
// has priors computed with the interior temperature and those must be
// recomputed with the root temperature instead.
func (t *Tree) RelabelPolicies(idx NodeIndex, pos *board.Position) {
	node := t.At(idx)
	if !node.IsExpanded() {
		return
	}

	temperature := t.interiorTemperature
	if idx.Index() == 0 {
		temperature = t.rootTemperature
	}

	n := 0
	maxLogit := float32(0)
	it := node.ChildIndices()
	for {
		ci, ok := it.Next()
		if !ok {
			break
		}
		logit := policy.Evaluate(pos, t.At(ci).ParentMove) / temperature
		t.policyScratch[n] = logit
		if n == 0 || logit > maxLogit {
			maxLogit = logit
		}
		n++
	}
	softmaxInPlace(t.policyScratch[:n], maxLogit)

	n = 0
	it = node.ChildIndices()
	for {
		ci, ok := it.Next()
		if !ok {
			break
		}
		t.At(ci).Policy = t.policyScratch[n]
		n++
	}
}

func (t *Tree) allocNodes(count uint32) (NodeIndex, bool) {
	h := t.currHalf()
	if h.used+count > h.MaxNodes() {
		return NodeIndexNull, false
	}
	index := h.used
	h.used += count
	return NewNodeIndex(t.activeHalf, index), true
}

// softmaxInPlace normalizes vals (already divided by temperature) into
// a probability distribution, subtracting maxVal before exponentiating
// for numerical stability.
func softmaxInPlace(vals []float32, maxVal float32) {
	var sum float32
	for i, v := range vals {
		e := expf32(v - maxVal)
		vals[i] = e
		sum += e
	}
	if sum == 0 {
		uniform := float32(1) / float32(len(vals))
		for i := range vals {
			vals[i] = uniform
		}
		return
	}
	for i := range vals {
		vals[i] /= sum
	}
}

func expf32(x float32) float32 { return float32(math.Exp(float64(x))) }
