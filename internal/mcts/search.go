package mcts

import (
	"context"
	"math"
	"time"

	"github.com/riftchess/mctsengine/internal/board"
	"github.com/riftchess/mctsengine/internal/eval"
)

// Config holds the engine's tuning knobs, the way internal/engine's
// Options-style structs hold search configuration: plain fields with a
// constructor that fills in defaults, rather than a config framework.
type Config struct {
	// TreeSizeMB is the arena's total size; NewTree gives each of its
	// two halves half of it.
	TreeSizeMB int
	// PUCTConstant is the exploration weight C in the PUCT formula.
	PUCTConstant float32
	// EvalScale is the logistic scale turning centipawns into a [0,1]
	// win probability.
	EvalScale float32
	// RootTemperature and InteriorTemperature divide policy logits
	// before the expansion softmax, at the root and elsewhere.
	RootTemperature     float32
	InteriorTemperature float32
}

// DefaultConfig returns the production tuning values.
func DefaultConfig() Config {
	return Config{
		TreeSizeMB:          64,
		PUCTConstant:        float32(math.Sqrt2),
		EvalScale:           400,
		RootTemperature:     3.0,
		InteriorTemperature: 1.0,
	}
}

// Limits bounds one search call. A zero value with Infinite false runs
// until the context is cancelled.
type Limits struct {
	MaxIters uint64
	MaxNodes uint64
	MoveTime time.Duration
	Infinite bool
}

func (l Limits) exceeded(iters, nodes uint64, elapsed time.Duration) bool {
	if l.Infinite {
		return false
	}
	if l.MaxIters > 0 && iters >= l.MaxIters {
		return true
	}
	if l.MaxNodes > 0 && nodes >= l.MaxNodes {
		return true
	}
	if l.MoveTime > 0 && elapsed >= l.MoveTime {
		return true
	}
	return false
}

// MoveVisit pairs a root child's move with its share of root visits,
// the visit distribution self-play policy records are built from.
type MoveVisit struct {
	Move board.Move
	Frac float32
}

// Result is a completed (or in-progress snapshot of a) search.
type Result struct {
	BestMove  board.Move
	PV        []board.Move
	Score     Score
	Depth     uint64
	Nodes     uint64
	Iters     uint64
	Elapsed   time.Duration
	VisitDist []MoveVisit
}

// Searcher owns one MCTS arena and runs iterations against it. Per
// spec.md §5, a Searcher is single-threaded and cooperative: one
// worker walks the tree, a caller may cancel it via context and read
// back only coarse, already-published statistics.
type Searcher struct {
	cfg  Config
	tree *Tree

	rootPos *board.Position
	pos     *board.Position

	// history is the key sequence of the game leading up to rootPos,
	// set via SetHistory. A selection iteration extends it temporarily
	// while descending and truncates it back afterward, so repetition
	// checks during selection see the whole game, not just the tree.
	history *board.History

	selection []NodeIndex
}

// NewSearcher allocates a fresh arena sized per cfg.
func NewSearcher(cfg Config) *Searcher {
	return &Searcher{
		cfg:       cfg,
		tree:      NewTree(cfg.TreeSizeMB, cfg.RootTemperature, cfg.InteriorTemperature),
		history:   board.NewHistory(),
		selection: make([]NodeIndex, 0, 256),
	}
}

// NewGame discards the arena entirely, the UCI "ucinewgame" contract.
func (s *Searcher) NewGame() {
	s.tree = NewTree(s.cfg.TreeSizeMB, s.cfg.RootTemperature, s.cfg.InteriorTemperature)
	s.rootPos = nil
	s.history.Reset()
}

// SetHistory installs the Zobrist key sequence of every position from
// the game's start through the current root (inclusive), the way
// `position startpos moves …` replays and records each intermediate
// hash. Repetition (see board.History.IsRepetition) within the current root's subtree is then
// detected against this history during selection, per spec.md §8.1's
// "returns Drawn at that node" requirement.
func (s *Searcher) SetHistory(h *board.History) {
	s.history = h
}

// SetPosition installs pos as the search root. If pos is reachable from
// the previous root by playing one already-explored root child's move,
// that child's subtree is promoted instead of discarded, the tree-reuse
// behavior spec.md §4.9/§4.10 call for.
func (s *Searcher) SetPosition(pos *board.Position) {
	if s.rootPos != nil && s.tree.Size() > 1 {
		if child, ok := s.findReusableChild(pos); ok {
			s.tree.SetAsRoot(child, pos)
			s.rootPos = pos.Copy()
			return
		}
	}
	s.tree.Clear()
	s.rootPos = pos.Copy()
}

// findReusableChild looks for a root child whose move, played on the
// previous root position, reaches pos (compared by Zobrist hash).
func (s *Searcher) findReusableChild(pos *board.Position) (NodeIndex, bool) {
	root := s.tree.At(s.tree.RootNode())
	if !root.IsExpanded() {
		return NodeIndexNull, false
	}
	it := root.ChildIndices()
	for {
		ci, ok := it.Next()
		if !ok {
			return NodeIndexNull, false
		}
		child := s.tree.At(ci)
		trial := s.rootPos.Copy()
		trial.MakeMove(child.ParentMove)
		if trial.Hash == pos.Hash {
			return ci, true
		}
	}
}

// Run executes iterations until ctx is done or limits are exceeded,
// invoking onInfo (if non-nil) after each new average-depth increment
// and once more with the final result.
func (s *Searcher) Run(ctx context.Context, limits Limits, onInfo func(Result)) Result {
	start := time.Now()

	if s.rootPos == nil {
		s.rootPos = board.NewPosition()
	}
	if s.tree.Size() == 0 {
		s.tree.Clear()
	}

	root := s.tree.RootNode()
	if rootNode := s.tree.At(root); !rootNode.IsExpanded() && !rootNode.IsTerminal() {
		s.pos = s.rootPos.Copy()
		s.tree.ExpandNode(root, s.pos)
		rootNode = s.tree.At(root)
		if !rootNode.IsTerminal() {
			rootNode.AddScore(sigmoid(float32(eval.Evaluate(s.pos)), s.cfg.EvalScale))
		}
	}

	var iters, totalNodes, totalDepth, prevDepth uint64

search:
	for {
		select {
		case <-ctx.Done():
			break search
		default:
		}
		if limits.exceeded(iters, totalNodes, time.Since(start)) {
			break search
		}

		s.pos = s.rootPos.Copy()
		historyBase := s.history.Len()
		s.selectLeaf()
		if s.selection[0].Half() != s.tree.activeHalf {
			// selectLeaf flipped the arena mid-descent: drop this path
			// and retry from the new root.
			s.history.Truncate(historyBase)
			continue
		}

		leafIdx := s.selection[len(s.selection)-1]
		leaf := s.tree.At(leafIdx)
		if !leaf.IsExpanded() && !leaf.IsTerminal() {
			if !s.tree.ExpandNode(leafIdx, s.pos) {
				s.tree.Flip()
				s.history.Truncate(historyBase)
				continue
			}
			leaf = s.tree.At(leafIdx)
		}

		result := s.evaluateLeaf(leaf)
		s.backprop(result)
		if leaf.IsTerminal() {
			s.propagateMate()
		}
		s.history.Truncate(historyBase)

		iters++
		totalNodes += uint64(len(s.selection))
		totalDepth += uint64(len(s.selection) - 1)

		currDepth := totalDepth / iters
		if currDepth > prevDepth {
			prevDepth = currDepth
			if onInfo != nil {
				onInfo(s.snapshot(currDepth, totalNodes, iters, time.Since(start)))
			}
		}
	}

	depth := uint64(0)
	if iters > 0 {
		depth = totalDepth / iters
	}
	final := s.snapshot(depth, totalNodes, iters, time.Since(start))
	if onInfo != nil {
		onInfo(final)
	}
	return final
}

// selectLeaf walks from the root choosing the PUCT-best child at each
// step, making moves on s.pos as it goes, until it reaches a terminal
// or unexpanded node. Each visited node's children are fetched into the
// active half first, since selection must never dereference a stale
// cross-half pointer.
func (s *Searcher) selectLeaf() {
	s.selection = s.selection[:0]
	idx := s.tree.RootNode()
	s.selection = append(s.selection, idx)

	for {
		node := s.tree.At(idx)
		if node.IsTerminal() || !node.IsExpanded() {
			return
		}
		if !s.tree.FetchChildren(idx) {
			// Arena exhausted mid-selection: flip and let the caller
			// retry the whole iteration from the (now promoted) root.
			s.tree.Flip()
			return
		}
		node = s.tree.At(idx)

		best := s.selectChild(node)
		child := s.tree.At(best)
		s.pos.MakeMove(child.ParentMove)
		idx = best
		s.selection = append(s.selection, idx)

		s.history.Push(s.pos.Hash)
		if !s.tree.At(idx).IsTerminal() && s.history.IsRepetition(s.pos.Hash, s.pos.HalfMoveClock) {
			s.tree.At(idx).Result = Drawn
		}
	}
}

// selectChild picks the PUCT-maximizing child of node.
func (s *Searcher) selectChild(node *Node) NodeIndex {
	bestUCT := float32(-1)
	best := node.FirstChild
	it := node.ChildIndices()
	parentVisits := float32(math.Sqrt(float64(node.Visits)))
	for {
		ci, ok := it.Next()
		if !ok {
			break
		}
		child := s.tree.At(ci)
		var q float32
		if child.Visits == 0 {
			q = 0.5
		} else {
			q = 1 - child.Q()
		}
		expl := s.cfg.PUCTConstant * child.Policy * parentVisits / float32(1+child.Visits)
		uct := q + expl
		if uct > bestUCT {
			bestUCT = uct
			best = ci
		}
	}
	return best
}

// evaluateLeaf scores the selected leaf from its own side-to-move's
// perspective: fixed outcomes for terminal nodes, otherwise the static
// evaluator passed through the win-probability logistic.
func (s *Searcher) evaluateLeaf(leaf *Node) float32 {
	switch leaf.Result {
	case Drawn:
		return 0.5
	case Mated:
		return 0
	default:
		return sigmoid(float32(eval.Evaluate(s.pos)), s.cfg.EvalScale)
	}
}

// backprop walks the selection path from leaf to root, flipping the
// result's perspective at each step since consecutive nodes alternate
// side to move.
func (s *Searcher) backprop(result float32) {
	for i := len(s.selection) - 1; i >= 0; i-- {
		node := s.tree.At(s.selection[i])
		node.AddScore(result)
		result = 1 - result
	}
}

// propagateMate walks upward from the leaf's parent proving mate
// distances wherever every child (or any single child) settles the
// question, stopping as soon as a node can't newly be proven (either
// because it already was, or because its children leave it undecided).
func (s *Searcher) propagateMate() {
	for i := len(s.selection) - 2; i >= 0; i-- {
		if !s.tree.tryProveMateChildren(s.selection[i]) {
			return
		}
	}
}

// tryProveMateChildren checks node idx's children for a forced outcome. A
// child that is itself lost for its own side to move is a forced win
// for idx (idx played the move that caused that), one ply further out;
// idx is only a forced loss if every child is a forced win for the
// opponent. Returns whether idx was newly proven this call.
func (t *Tree) tryProveMateChildren(idx NodeIndex) bool {
	node := t.At(idx)
	if node.IsTerminal() {
		return false
	}
	if _, _, already := node.MateOutcome(); already {
		return false
	}
	if !node.IsExpanded() {
		return false
	}

	anyWin := false
	var minWinDist uint16
	allLoss := true
	var maxLossDist uint16

	it := node.ChildIndices()
	for {
		ci, ok := it.Next()
		if !ok {
			break
		}
		child := t.At(ci)
		plies, win, ok := child.MateOutcome()
		if !ok {
			allLoss = false
			continue
		}
		if !win {
			// child lost for its own mover => a win for idx, one ply out.
			d := plies + 1
			if !anyWin || d < minWinDist {
				minWinDist = d
				anyWin = true
			}
		} else {
			d := plies + 1
			if d > maxLossDist {
				maxLossDist = d
			}
		}
	}

	if anyWin {
		node.MateDist = int16(minWinDist)
		return true
	}
	if allLoss {
		node.MateDist = -int16(maxLossDist)
		return true
	}
	return false
}

// BestMove returns the root child with the most visits (ties broken by
// higher Q), and the principal variation formed by repeating that
// choice down the tree.
func (s *Searcher) BestMove() (board.Move, Score) {
	root := s.tree.RootNode()
	best, ok := s.bestChild(root)
	if !ok {
		return board.NoMove, s.tree.At(root).Score()
	}
	return s.tree.At(best).ParentMove, s.tree.At(root).Score()
}

func (s *Searcher) bestChild(idx NodeIndex) (NodeIndex, bool) {
	node := s.tree.At(idx)
	if !node.IsExpanded() {
		return NodeIndexNull, false
	}
	var best NodeIndex
	found := false
	var bestVisits uint32
	var bestQ float32
	it := node.ChildIndices()
	for {
		ci, ok := it.Next()
		if !ok {
			break
		}
		child := s.tree.At(ci)
		if !found || child.Visits > bestVisits || (child.Visits == bestVisits && child.Q() > bestQ) {
			best = ci
			bestVisits = child.Visits
			bestQ = child.Q()
			found = true
		}
	}
	return best, found
}

func (s *Searcher) principalVariation() []board.Move {
	var pv []board.Move
	idx := s.tree.RootNode()
	for len(pv) < 64 {
		child, ok := s.bestChild(idx)
		if !ok {
			break
		}
		pv = append(pv, s.tree.At(child).ParentMove)
		idx = child
	}
	return pv
}

func (s *Searcher) visitDistribution() []MoveVisit {
	root := s.tree.At(s.tree.RootNode())
	if !root.IsExpanded() {
		return nil
	}
	var total uint32
	it := root.ChildIndices()
	for {
		ci, ok := it.Next()
		if !ok {
			break
		}
		total += s.tree.At(ci).Visits
	}
	if total == 0 {
		return nil
	}
	var dist []MoveVisit
	it = root.ChildIndices()
	for {
		ci, ok := it.Next()
		if !ok {
			break
		}
		child := s.tree.At(ci)
		dist = append(dist, MoveVisit{Move: child.ParentMove, Frac: float32(child.Visits) / float32(total)})
	}
	return dist
}

func (s *Searcher) snapshot(depth, nodes, iters uint64, elapsed time.Duration) Result {
	move, score := s.BestMove()
	return Result{
		BestMove:  move,
		PV:        s.principalVariation(),
		Score:     score,
		Depth:     depth,
		Nodes:     nodes,
		Iters:     iters,
		Elapsed:   elapsed,
		VisitDist: s.visitDistribution(),
	}
}
