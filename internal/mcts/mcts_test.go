package mcts

import (
	"context"
	"testing"
	"time"

	"github.com/riftchess/mctsengine/internal/board"
)

func TestNodeIndexPacking(t *testing.T) {
	idx := NewNodeIndex(1, 12345)
	if idx.Half() != 1 {
		t.Fatalf("half = %d, want 1", idx.Half())
	}
	if idx.Index() != 12345 {
		t.Fatalf("index = %d, want 12345", idx.Index())
	}
	idx2 := NewNodeIndex(0, 9)
	if idx2.Half() != 0 || idx2.Index() != 9 {
		t.Fatalf("half-0 index mis-packed: half=%d index=%d", idx2.Half(), idx2.Index())
	}
}

func TestExpandNodeChildPolicySumsToOne(t *testing.T) {
	tree := NewTree(1, 3.0, 1.0)
	pos := board.NewPosition()
	root := tree.RootNode()

	if !tree.ExpandNode(root, pos) {
		t.Fatal("expand failed on a freshly allocated arena")
	}

	node := tree.At(root)
	legal := pos.GenerateLegalMoves()
	if int(node.ChildCount) != legal.Len() {
		t.Fatalf("child count = %d, want %d legal moves", node.ChildCount, legal.Len())
	}

	var sum float32
	it := node.ChildIndices()
	for {
		ci, ok := it.Next()
		if !ok {
			break
		}
		sum += tree.At(ci).Policy
	}
	if sum < 0.999 || sum > 1.001 {
		t.Fatalf("child policy priors sum to %v, want ~1", sum)
	}
}

func TestStalemateIsDrawnOnFirstExpansion(t *testing.T) {
	pos, err := board.ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	legal := pos.GenerateLegalMoves()
	if legal.Len() != 0 || pos.InCheck() {
		t.Fatalf("fixture is not a stalemate: %d legal moves, inCheck=%v", legal.Len(), pos.InCheck())
	}

	tree := NewTree(1, 3.0, 1.0)
	root := tree.RootNode()
	if !tree.ExpandNode(root, pos) {
		t.Fatal("expand failed")
	}
	node := tree.At(root)
	if node.Result != Drawn {
		t.Fatalf("stalemate root result = %v, want Drawn", node.Result)
	}
}

func TestSearchFindsMateInOne(t *testing.T) {
	pos, err := board.ParseFEN("8/8/8/8/8/5K1k/8/7Q w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	cfg := DefaultConfig()
	cfg.TreeSizeMB = 4
	s := NewSearcher(cfg)
	s.SetPosition(pos)

	result := s.Run(context.Background(), Limits{MaxIters: 3000}, nil)

	want := board.NewMove(board.H1, board.H3)
	if result.BestMove != want {
		t.Fatalf("best move = %s, want %s", result.BestMove.String(), want.String())
	}
	dist, ok := result.Score.IsMate()
	if !ok || dist != 1 {
		t.Fatalf("score = %v, want a proven mate in 1", result.Score)
	}
}

func TestSearchProducesALegalMoveFromStartpos(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TreeSizeMB = 4
	s := NewSearcher(cfg)
	s.SetPosition(board.NewPosition())

	result := s.Run(context.Background(), Limits{MaxIters: 500}, nil)

	legal := board.NewPosition().GenerateLegalMoves()
	if !legal.Contains(result.BestMove) {
		t.Fatalf("best move %s is not in startpos's legal move list", result.BestMove.String())
	}
}

func TestSearchHonorsContextCancellation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TreeSizeMB = 8
	s := NewSearcher(cfg)
	s.SetPosition(board.NewPosition())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	result := s.Run(ctx, Limits{Infinite: true}, nil)
	legal := board.NewPosition().GenerateLegalMoves()
	if !legal.Contains(result.BestMove) {
		t.Fatalf("cancelled search returned an illegal move %s", result.BestMove.String())
	}
}

func TestTreeReuseRetainsVisitedSubtree(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TreeSizeMB = 8
	s := NewSearcher(cfg)
	start := board.NewPosition()
	s.SetPosition(start)
	s.Run(context.Background(), Limits{MaxIters: 1000}, nil)

	root := s.tree.At(s.tree.RootNode())
	it := root.ChildIndices()
	ci, ok := it.Next()
	if !ok {
		t.Fatal("root has no children after search")
	}
	chosen := s.tree.At(ci)
	if chosen.Visits == 0 {
		t.Skip("PUCT never visited the first enumerated child; nothing to assert")
	}
	visitsBefore := chosen.Visits

	next := start.Copy()
	next.MakeMove(chosen.ParentMove)
	s.SetPosition(next)

	newRoot := s.tree.At(s.tree.RootNode())
	if newRoot.Visits != visitsBefore {
		t.Fatalf("promoted root visits = %d, want %d (the subtree's prior statistics)", newRoot.Visits, visitsBefore)
	}
}

func TestFlipPreservesRootAcrossGenerations(t *testing.T) {
	tree := NewTree(1, 3.0, 1.0)
	pos := board.NewPosition()
	root := tree.RootNode()
	tree.ExpandNode(root, pos)
	tree.At(root).AddScore(0.7)

	tree.Flip()

	newRoot := tree.At(tree.RootNode())
	if newRoot.Visits != 1 {
		t.Fatalf("visits after flip = %d, want 1 (copied across)", newRoot.Visits)
	}
	if newRoot.FirstChild.Half() == tree.activeHalf {
		// children were not copied across by Flip, only the root node was.
		t.Fatalf("flip should not have copied children into the new active half")
	}
}

func TestFetchChildrenBringsStaleChildrenIntoActiveHalf(t *testing.T) {
	tree := NewTree(1, 3.0, 1.0)
	pos := board.NewPosition()
	root := tree.RootNode()
	tree.ExpandNode(root, pos)

	tree.Flip()
	newRoot := tree.RootNode()
	if !tree.FetchChildren(newRoot) {
		t.Fatal("fetch_children failed on a freshly flipped, nearly empty half")
	}
	if tree.At(newRoot).FirstChild.Half() != tree.activeHalf {
		t.Fatal("fetch_children left children pointing at the inactive half")
	}
}
