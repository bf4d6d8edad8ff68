package uci

import (
	"testing"
	"time"

	"github.com/riftchess/mctsengine/internal/board"
)

func TestParseGoArgsNodes(t *testing.T) {
	limits, deadline := parseGoArgs([]string{"nodes", "5000"})
	if limits.MaxNodes != 5000 {
		t.Fatalf("MaxNodes = %d, want 5000", limits.MaxNodes)
	}
	if deadline != 0 {
		t.Fatalf("deadline = %v, want 0", deadline)
	}
}

func TestParseGoArgsMoveTime(t *testing.T) {
	_, deadline := parseGoArgs([]string{"movetime", "250"})
	if deadline != 250*time.Millisecond {
		t.Fatalf("deadline = %v, want 250ms", deadline)
	}
}

func TestParseGoArgsInfinite(t *testing.T) {
	limits, deadline := parseGoArgs([]string{"infinite"})
	if !limits.Infinite {
		t.Fatal("Infinite = false, want true")
	}
	if deadline != 0 {
		t.Fatalf("deadline = %v, want 0 (caller cancels explicitly)", deadline)
	}
}

func TestHandlePositionStartposWithMoves(t *testing.T) {
	u := New()
	u.handlePosition([]string{"startpos", "moves", "e2e4", "e7e5"})

	if u.position.SideToMove != board.White {
		t.Fatalf("side to move = %v, want White after two plies", u.position.SideToMove)
	}
	if u.history.Len() != 3 {
		t.Fatalf("history length = %d, want 3 (startpos + 2 moves)", u.history.Len())
	}
}

func TestHandlePositionRejectsIllegalMove(t *testing.T) {
	u := New()
	u.handlePosition([]string{"startpos", "moves", "e2e5"})
	if u.history.Len() != 1 {
		t.Fatalf("history length = %d, want 1 (illegal move must abort the replay, leaving the prior state untouched)", u.history.Len())
	}
}

func TestHandlePositionFEN(t *testing.T) {
	u := New()
	u.handlePosition([]string{"fen", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R", "w", "KQkq", "-", "0", "1"})

	if u.position.SideToMove != board.White {
		t.Fatalf("side to move = %v, want White", u.position.SideToMove)
	}
	if u.history.Len() != 1 {
		t.Fatalf("history length = %d, want 1 (no moves appended)", u.history.Len())
	}
}

func TestHandlePositionFENWithMoves(t *testing.T) {
	u := New()
	u.handlePosition([]string{
		"fen", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R", "w", "KQkq", "-", "0", "1",
		"moves", "e1g1",
	})
	if u.history.Len() != 2 {
		t.Fatalf("history length = %d, want 2 (fen + one move)", u.history.Len())
	}
}
