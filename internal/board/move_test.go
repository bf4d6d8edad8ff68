package board

import "testing"

func TestMovePacking(t *testing.T) {
	m := NewMove(E2, E4)
	if m.From() != E2 || m.To() != E4 || m.Kind() != Normal {
		t.Fatalf("NewMove packed wrong: from=%s to=%s kind=%d", m.From(), m.To(), m.Kind())
	}
}

func TestPromotionPacking(t *testing.T) {
	m := NewPromotion(E7, E8, PromoQueen)
	if m.Kind() != PromotionMove {
		t.Fatalf("expected PromotionMove, got %d", m.Kind())
	}
	if m.PromoPieceType() != Queen {
		t.Fatalf("expected queen promotion, got %v", m.PromoPieceType())
	}
	if m.String() != "e7e8q" {
		t.Fatalf("String() = %q, want e7e8q", m.String())
	}
}

func TestCastleEncodingStoresRookOrigin(t *testing.T) {
	// Standard kingside castle: king e1, rook h1. The encoding must
	// store the rook's origin square in To(), not the king's
	// destination (g1), so Fischer-random layouts round-trip.
	m := NewCastle(E1, H1)
	if m.Kind() != CastleMove {
		t.Fatalf("expected CastleMove, got %d", m.Kind())
	}
	if m.From() != E1 {
		t.Fatalf("From() = %s, want e1", m.From())
	}
	if m.To() != H1 {
		t.Fatalf("To() = %s, want h1 (rook origin), not g1 (king destination)", m.To())
	}
}

func TestMoveListBasics(t *testing.T) {
	var l MoveList
	m1 := NewMove(E2, E4)
	m2 := NewMove(G1, F3)
	l.Add(m1)
	l.Add(m2)
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	if !l.Contains(m1) || !l.Contains(m2) {
		t.Fatal("MoveList should contain both added moves")
	}
	if l.Contains(NewMove(A2, A4)) {
		t.Fatal("MoveList should not contain an unrelated move")
	}
	l.Reset()
	if l.Len() != 0 {
		t.Fatal("Reset() should empty the list")
	}
}

func TestParseMoveTextNormalizesCastleSpellings(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	// Clear pieces between king and h-rook so the kingside castle becomes
	// legal; the queenside path stays blocked.
	pos.removePiece(F1)
	pos.removePiece(G1)
	pos.Hash = pos.ComputeHash()
	pos.UpdateCheckAndPins()

	legal := pos.GenerateLegalMoves()
	var castle Move
	for i := 0; i < legal.Len(); i++ {
		if legal.At(i).Kind() == CastleMove && legal.At(i).To() == H1 {
			castle = legal.At(i)
		}
	}
	if castle == NoMove {
		t.Fatal("expected a legal kingside castle after clearing f1/g1")
	}

	// Conventional UCI spelling (king-to-destination).
	got, err := ParseMoveText("e1g1", legal, pos)
	if err != nil {
		t.Fatalf("ParseMoveText(e1g1): %v", err)
	}
	if got != castle {
		t.Fatalf("ParseMoveText(e1g1) = %s, want %s", got, castle)
	}

	// Internal spelling (king-to-rook-origin).
	got2, err := ParseMoveText("e1h1", legal, pos)
	if err != nil {
		t.Fatalf("ParseMoveText(e1h1): %v", err)
	}
	if got2 != castle {
		t.Fatalf("ParseMoveText(e1h1) = %s, want %s", got2, castle)
	}
}

func TestParseMoveTextRejectsIllegalMove(t *testing.T) {
	pos, _ := ParseFEN(StartFEN)
	legal := pos.GenerateLegalMoves()
	if _, err := ParseMoveText("e2e5", legal, pos); err == nil {
		t.Fatal("expected error for an illegal pawn move")
	}
}
