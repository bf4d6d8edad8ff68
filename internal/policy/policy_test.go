package policy

import (
	"testing"

	"github.com/riftchess/mctsengine/internal/board"
)

func TestCaptureScoresHigherThanQuietMove(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/3p4/4R3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	capture := board.NewMove(board.E4, board.D5)
	quiet := board.NewMove(board.E4, board.E5)
	if Evaluate(pos, capture) <= Evaluate(pos, quiet) {
		t.Fatalf("an undefended-pawn capture should score higher than an equivalent quiet rook move")
	}
}

func TestPromotionToQueenScoresHigherThanUnderpromotion(t *testing.T) {
	pos, err := board.ParseFEN("k7/4P3/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	toQueen := board.NewPromotion(board.E7, board.E8, board.PromoQueen)
	toKnight := board.NewPromotion(board.E7, board.E8, board.PromoKnight)
	if Evaluate(pos, toQueen) <= Evaluate(pos, toKnight) {
		t.Fatalf("queening should score higher than underpromoting to a knight")
	}
}

func TestCheckGivingMoveGetsABonus(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	checkMove := board.NewMove(board.A1, board.A8)
	quietMove := board.NewMove(board.A1, board.B1)
	if Evaluate(pos, checkMove) <= Evaluate(pos, quietMove) {
		t.Fatalf("a move giving check should score higher than an equivalent quiet rook move")
	}
}

func TestSoftmaxIsAProbabilityDistribution(t *testing.T) {
	logits := []float32{1, 2, 3, 0.5}
	probs := Softmax(logits, 1.0)
	var sum float32
	for _, p := range probs {
		if p < 0 {
			t.Fatalf("softmax output must be non-negative, got %v", p)
		}
		sum += p
	}
	if sum < 0.999 || sum > 1.001 {
		t.Fatalf("softmax outputs must sum to 1, got %v", sum)
	}
	maxIdx := 2
	for i, p := range probs {
		if i != maxIdx && p > probs[maxIdx] {
			t.Fatalf("the highest logit must get the highest probability")
		}
	}
}

func TestHigherTemperatureFlattensDistribution(t *testing.T) {
	logits := []float32{1, 5}
	sharp := Softmax(logits, 1.0)
	flat := Softmax(logits, 3.0)
	sharpGap := sharp[1] - sharp[0]
	flatGap := flat[1] - flat[0]
	if flatGap >= sharpGap {
		t.Fatalf("a higher temperature should flatten the distribution: sharp gap=%v flat gap=%v", sharpGap, flatGap)
	}
}

func TestSoftmaxEmptyInput(t *testing.T) {
	probs := Softmax(nil, 1.0)
	if len(probs) != 0 {
		t.Fatalf("softmax of no logits should return no probabilities")
	}
}
