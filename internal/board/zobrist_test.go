package board

import "testing"

func TestZobristKeysAreDistinct(t *testing.T) {
	seen := make(map[uint64]string)
	check := func(key uint64, label string) {
		if other, ok := seen[key]; ok {
			t.Fatalf("zobrist key collision between %s and %s", label, other)
		}
		seen[key] = label
	}
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				check(ZobristPiece(c, pt, sq), "piece")
			}
		}
	}
	for file := 0; file < 8; file++ {
		check(ZobristEnPassant(file), "en-passant")
	}
	check(ZobristSideToMove(), "side-to-move")
}

func TestZobristCastlingCoversAllCombinations(t *testing.T) {
	seen := make(map[uint64]bool)
	for i := CastlingRights(0); i < 16; i++ {
		key := ZobristCastling(i)
		if seen[key] {
			t.Fatalf("duplicate castling key for combination %d", i)
		}
		seen[key] = true
	}
}

func TestZobristIsDeterministic(t *testing.T) {
	a := ZobristPiece(White, Pawn, E4)
	b := ZobristPiece(White, Pawn, E4)
	if a != b {
		t.Fatal("ZobristPiece must return the same key across calls")
	}
}
