package board

import "testing"

// TestPinMasksAreDistinct is the regression test for the resolved open
// question: an orthogonal sniper must only populate HVPinned, and a
// diagonal sniper must only populate DiagPinned. A version that ORs
// both sniper loops into a single mask would wrongly report the pinned
// pawn below as diagonally pinned too, letting it make illegal diagonal
// "captures" off the file.
func TestPinMasksAreDistinct(t *testing.T) {
	// White king e1, white pawn e2 pinned by a black rook on e8 (black
	// king out of the way on a8).
	pos, err := ParseFEN("k3r3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !pos.HVPinned.IsSet(E2) {
		t.Fatalf("expected E2 to be orthogonally pinned, HVPinned=%064b", uint64(pos.HVPinned))
	}
	if pos.DiagPinned.IsSet(E2) {
		t.Fatalf("E2 must not be reported as diagonally pinned, DiagPinned=%064b", uint64(pos.DiagPinned))
	}
}

func TestPinMasksDiagonal(t *testing.T) {
	// White king e1, white bishop d2 pinned by a black bishop on a5 (black
	// king out of the way on h8).
	pos, err := ParseFEN("7k/8/8/b7/8/8/3B4/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !pos.DiagPinned.IsSet(D2) {
		t.Fatalf("expected D2 to be diagonally pinned")
	}
	if pos.HVPinned.IsSet(D2) {
		t.Fatalf("D2 must not be reported as orthogonally pinned")
	}
}

func TestMakeUnmakeRestoresPosition(t *testing.T) {
	pos, _ := ParseFEN(StartFEN)
	before := pos.ToFEN()
	beforeHash := pos.Hash

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		undo := pos.MakeMove(m)
		pos.UnmakeMove(m, undo)
		if pos.ToFEN() != before {
			t.Fatalf("make/unmake %s changed FEN: got %q want %q", m, pos.ToFEN(), before)
		}
		if pos.Hash != beforeHash {
			t.Fatalf("make/unmake %s changed hash", m)
		}
	}
}

func TestHashMatchesRecompute(t *testing.T) {
	pos, _ := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		undo := pos.MakeMove(moves.At(i))
		if pos.Hash != pos.ComputeHash() {
			t.Fatalf("incremental hash drift after %s: got %x want %x", moves.At(i), pos.Hash, pos.ComputeHash())
		}
		pos.UnmakeMove(moves.At(i), undo)
	}
}

func TestFischerRandomCastling(t *testing.T) {
	pos := &Position{EnPassant: NoSquare, FullMoveNumber: 1}
	pos.KingSquare[White] = NoSquare
	pos.KingSquare[Black] = NoSquare
	// Fischer-random layout: king on b1/b8, rooks on a-file and f-file.
	// A white pawn on f2 closes the f-file so the black f8 rook does not
	// attack f1, a square the white king crosses when castling kingside.
	pos.setPiece(WK, B1)
	pos.setPiece(WR, A1)
	pos.setPiece(WR, F1)
	pos.setPiece(WP, F2)
	pos.setPiece(BK, B8)
	pos.setPiece(BR, A8)
	pos.setPiece(BR, F8)
	pos.CastlingRooks[White][QueenSide] = A1
	pos.CastlingRooks[White][KingSide] = F1
	pos.CastlingRooks[Black][QueenSide] = A8
	pos.CastlingRooks[Black][KingSide] = F8
	pos.CastlingRights = AllCastling
	pos.updateOccupied()
	pos.findKings()
	pos.Hash = pos.ComputeHash()
	pos.UpdateCheckAndPins()

	moves := pos.GenerateLegalMoves()
	var kingSideCastle, queenSideCastle Move
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.Kind() == CastleMove {
			if m.To() == F1 {
				kingSideCastle = m
			} else if m.To() == A1 {
				queenSideCastle = m
			}
		}
	}
	if kingSideCastle == NoMove {
		t.Fatal("expected a kingside castle move (b1 king, f1 rook)")
	}
	if queenSideCastle == NoMove {
		t.Fatal("expected a queenside castle move (b1 king, a1 rook)")
	}

	undo := pos.MakeMove(kingSideCastle)
	if pos.PieceAt(G1) != WK {
		t.Fatalf("expected white king on g1 after kingside castle, board:\n%s", pos)
	}
	if pos.PieceAt(F1) != WR {
		t.Fatalf("expected white rook on f1 after kingside castle, board:\n%s", pos)
	}
	pos.UnmakeMove(kingSideCastle, undo)
	if pos.PieceAt(B1) != WK || pos.PieceAt(F1) != WR {
		t.Fatalf("unmake castle did not restore position, board:\n%s", pos)
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// Black king e8 double-checked by a white rook on e1 (file) and a
	// white bishop on a4 (the a4-e8 diagonal), both rays unobstructed;
	// the white king sits on h1.
	pos, err := ParseFEN("4k3/8/8/8/B7/8/8/4R2K b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if pos.Checkers.PopCount() != 2 {
		t.Fatalf("expected double check, got %d checkers", pos.Checkers.PopCount())
	}
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if moves.At(i).From() != E8 {
			t.Fatalf("expected only king moves under double check, got %s", moves.At(i))
		}
	}
}
