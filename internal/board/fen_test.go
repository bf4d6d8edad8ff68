package board

import "testing"

func TestParseFENRoundTrip(t *testing.T) {
	cases := []string{
		StartFEN,
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/8/8/8/8/5K1k/8/7Q w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range cases {
		t.Run(fen, func(t *testing.T) {
			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("ParseFEN(%q): %v", fen, err)
			}
			got := pos.ToFEN()
			if got != fen {
				t.Fatalf("round trip mismatch: got %q want %q", got, fen)
			}
		})
	}
}

func TestParseFENRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",     // 7 ranks
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // bad stm
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XQkq - 0 1", // bad castling char
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1", // bad ep square
		"8/8/8/8/8/8/8/8 w - - 0 1",                                 // no kings
	}
	for _, fen := range cases {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q) expected error, got none", fen)
		}
	}
}

func TestParseFENHalfMoveClockBounds(t *testing.T) {
	if _, err := ParseFEN(StartFENReplaceClock("150")); err == nil {
		t.Fatal("expected error for half-move clock > 100")
	}
}

// StartFENReplaceClock substitutes the half-move clock field of
// StartFEN, used to probe boundary validation.
func StartFENReplaceClock(clock string) string {
	return "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - " + clock + " 1"
}
