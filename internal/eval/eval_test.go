package eval

import (
	"testing"

	"github.com/riftchess/mctsengine/internal/board"
)

func TestScorePairPacking(t *testing.T) {
	cases := []struct{ mg, eg int32 }{
		{0, 0}, {100, -100}, {-32768, 32767}, {1, -1}, {975, 950},
	}
	for _, c := range cases {
		sp := S(c.mg, c.eg)
		if sp.Mg() != c.mg {
			t.Fatalf("S(%d,%d).Mg() = %d, want %d", c.mg, c.eg, sp.Mg(), c.mg)
		}
		if sp.Eg() != c.eg {
			t.Fatalf("S(%d,%d).Eg() = %d, want %d", c.mg, c.eg, sp.Eg(), c.eg)
		}
	}
}

func TestScorePairArithmetic(t *testing.T) {
	a := S(10, 20)
	b := S(3, 4)
	if sum := a.Add(b); sum.Mg() != 13 || sum.Eg() != 24 {
		t.Fatalf("Add: got mg=%d eg=%d", sum.Mg(), sum.Eg())
	}
	if diff := a.Sub(b); diff.Mg() != 7 || diff.Eg() != 16 {
		t.Fatalf("Sub: got mg=%d eg=%d", diff.Mg(), diff.Eg())
	}
	if neg := a.Neg(); neg.Mg() != -10 || neg.Eg() != -20 {
		t.Fatalf("Neg: got mg=%d eg=%d", neg.Mg(), neg.Eg())
	}
	if scaled := a.Scale(3); scaled.Mg() != 30 || scaled.Eg() != 60 {
		t.Fatalf("Scale: got mg=%d eg=%d", scaled.Mg(), scaled.Eg())
	}
}

// TestStartingPositionIsSymmetric checks that the evaluator returns exactly
// White's tempo bonus from the starting position: the two sides' material,
// PSQT, mobility, and every other feature cancel by symmetry, since Black
// to move would see the mirrored position with the same score.
func TestStartingPositionIsSymmetric(t *testing.T) {
	pos := board.NewPosition()
	got := Evaluate(pos)
	wantTempo := (Params{}).Tempo()
	if got != wantTempo {
		t.Fatalf("starting position eval = %d, want tempo bonus %d", got, wantTempo)
	}
}

// TestMaterialAdvantageIsPositive checks that being up a queen, with
// otherwise mirrored material, scores clearly positive for the side to
// move.
func TestMaterialAdvantageIsPositive(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	got := Evaluate(pos)
	if got < 800 {
		t.Fatalf("expected a large positive score with an extra queen, got %d", got)
	}
}

// TestEvaluationFlipsWithSideToMove checks that swapping the side to move
// without touching the pieces negates the non-tempo portion of the score,
// since the evaluator always reports from the mover's perspective.
func TestEvaluationFlipsWithSideToMove(t *testing.T) {
	white, err := board.ParseFEN("4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	black, err := board.ParseFEN("4k3/8/8/8/8/8/8/Q3K3 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	w := Evaluate(white)
	b := Evaluate(black)
	tempo := (Params{}).Tempo()
	if (w - tempo) != -(b - tempo) {
		t.Fatalf("eval should flip sign with side to move modulo tempo: white=%d black=%d", w, b)
	}
}

func TestBareKingsEvaluateToTempo(t *testing.T) {
	endgame, err := board.ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	got := Evaluate(endgame)
	wantTempo := (Params{}).Tempo()
	if got != wantTempo {
		t.Fatalf("bare kings should evaluate to exactly the tempo bonus, got %d", got)
	}
}

func TestMobilityRewardsOpenDevelopment(t *testing.T) {
	cramped, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	// Same material as the starting position, but White's b1 knight has
	// relocated to the open center on e5 instead of sitting undeveloped.
	open, err := board.ParseFEN("rnbqkbnr/pppppppp/8/4N3/8/8/PPPPPPPP/R1BQKBNR w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if Evaluate(open) <= Evaluate(cramped) {
		t.Fatalf("a centralized, mobile knight should not score worse than an undeveloped one")
	}
}

func TestPassedPawnSpanExcludesOwnSquareIncludesAdjacentFiles(t *testing.T) {
	span := passedPawnSpan(board.White, board.E4)
	if span.IsSet(board.E4) {
		t.Fatal("span must not include the pawn's own square")
	}
	if !span.IsSet(board.E5) || !span.IsSet(board.D5) || !span.IsSet(board.F5) {
		t.Fatal("span must cover the own and adjacent files ahead of the pawn")
	}
	if span.IsSet(board.E3) {
		t.Fatal("span must not include squares behind the pawn")
	}
	if span.IsSet(board.C5) || span.IsSet(board.G5) {
		t.Fatal("span must not extend beyond the adjacent files")
	}
}
