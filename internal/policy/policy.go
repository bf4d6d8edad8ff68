// Package policy scores legal moves for search ordering: a single raw
// logit per move built from capture value, promotion, pawn threats, a
// piece-square delta, a mobility delta, a bad-SEE penalty, and a check
// bonus. The MCTS tree turns these logits into a probability
// distribution over a node's children with a softmax, using a higher
// temperature at the root than in the interior of the tree.
package policy

import (
	"math"

	"github.com/riftchess/mctsengine/internal/board"
)

// Value is the policy logit type. The evaluator package uses a packed
// score-pair abstraction because it blends two results (mg/eg); the
// policy scorer only ever produces one scalar, so a plain float32 plays
// the role EvalScoreType plays for the evaluator — matched against
// PolicyValueType's single-scalar trait bound rather than reusing the
// pair machinery eval.go needs.
type Value = float32

// Values is the policy feature-weight table, parameterized so a tuner can
// substitute a gradient-trace type for Value without touching Score.
type Values[V any] interface {
	CapBonus(pt board.PieceType) V
	PawnProtectedPenalty(pt board.PieceType) V
	PawnThreatEvasion(pt board.PieceType) V
	PSQTScore(c board.Color, pt board.PieceType, sq board.Square, phase int) V
	Mobility(pt board.PieceType, mob int, phase int) V
	PromoBonus(pt board.PieceType) V
	BadSeePenalty() V
	CheckBonus() V
}

// Score computes the raw policy logit for move m in position pos. It
// leaves pos as it found it: SEE works on bitboards without making m,
// and the check test makes and unmakes m internally.
func Score[V ~float32](pos *board.Position, m board.Move, values Values[V]) V {
	us := pos.SideToMove
	them := us.Other()

	oppPawns := pos.Pieces[them][board.Pawn]
	pawnProtected := pawnAttacksBB(them, oppPawns)

	movingPiece := pos.PieceAt(m.From())
	capturedPiece := pos.PieceAt(m.To())

	var capBonus V
	if capturedPiece != board.NoPiece {
		capBonus = values.CapBonus(capturedPiece.Type())
	}

	var pawnProtectedPenalty V
	if pawnProtected.IsSet(m.To()) {
		pawnProtectedPenalty = values.PawnProtectedPenalty(movingPiece.Type())
	}

	var pawnThreatEvasion V
	if pawnProtected.IsSet(m.From()) && !pawnProtected.IsSet(m.To()) && movingPiece.Type() != board.King {
		pawnThreatEvasion = values.PawnThreatEvasion(movingPiece.Type())
	}

	phase := int(4*pos.Pieces[board.White][board.Queen].PopCount() + 4*pos.Pieces[board.Black][board.Queen].PopCount() +
		2*pos.Pieces[board.White][board.Rook].PopCount() + 2*pos.Pieces[board.Black][board.Rook].PopCount() +
		pos.Pieces[board.White][board.Bishop].PopCount() + pos.Pieces[board.Black][board.Bishop].PopCount() +
		pos.Pieces[board.White][board.Knight].PopCount() + pos.Pieces[board.Black][board.Knight].PopCount())

	var psqt V
	if m.Kind() != board.PromotionMove {
		psqt = values.PSQTScore(us, movingPiece.Type(), m.To(), phase) - values.PSQTScore(us, movingPiece.Type(), m.From(), phase)
	}

	var mobilityScore V
	if m.Kind() == board.Normal && movingPiece.Type() != board.Pawn && movingPiece.Type() != board.King {
		attacksBefore := pieceAttacks(movingPiece.Type(), m.From(), pos.AllOccupied)
		occAfter := (pos.AllOccupied | board.SquareBB(m.To())) &^ board.SquareBB(m.From())
		attacksAfter := pieceAttacks(movingPiece.Type(), m.To(), occAfter)

		mobilityArea := ^pawnAttacksBB(them, oppPawns)
		mobilityBefore := (attacksBefore & mobilityArea).PopCount()
		mobilityAfter := (attacksAfter & mobilityArea).PopCount()

		mobilityScore = values.Mobility(movingPiece.Type(), mobilityAfter, phase) - values.Mobility(movingPiece.Type(), mobilityBefore, phase)
	}

	var promoBonus V
	if m.Kind() == board.PromotionMove {
		promoBonus = values.PromoBonus(m.PromoPieceType())
	}

	var badSeePenalty V
	if !board.SEE(pos, m, 0) && !pawnProtected.IsSet(m.To()) {
		badSeePenalty = values.BadSeePenalty()
	}

	var checkBonus V
	if pos.GivesCheck(m) {
		checkBonus = values.CheckBonus()
	}

	return capBonus + promoBonus + pawnThreatEvasion + badSeePenalty + checkBonus -
		pawnProtectedPenalty + psqt/50 + mobilityScore/50
}

func pawnAttacksBB(c board.Color, pawns board.Bitboard) board.Bitboard {
	if c == board.White {
		return pawns.NorthEast() | pawns.NorthWest()
	}
	return pawns.SouthEast() | pawns.SouthWest()
}

// Evaluate scores move m with the production weight table.
func Evaluate(pos *board.Position, m board.Move) float32 {
	return Score[float32](pos, m, Params{})
}

// Softmax turns raw logits into a probability distribution, dividing by
// temperature before exponentiating: temperature 1.0 reproduces a plain
// softmax (the searcher's default interior temperature), temperatures
// above 1.0 flatten the distribution toward uniform (the default root
// temperature is 3.0, to favor exploration), and temperatures below 1.0
// sharpen it toward the top logit.
// Shifting by the maximum logit before exponentiating keeps the sum
// finite regardless of how large the raw logits get.
func Softmax(logits []float32, temperature float32) []float32 {
	out := make([]float32, len(logits))
	if len(logits) == 0 {
		return out
	}
	max := logits[0]
	for _, l := range logits[1:] {
		if l > max {
			max = l
		}
	}
	var sum float64
	for i, l := range logits {
		e := math.Exp(float64((l - max) / temperature))
		out[i] = float32(e)
		sum += e
	}
	if sum == 0 {
		uniform := 1.0 / float32(len(logits))
		for i := range out {
			out[i] = uniform
		}
		return out
	}
	for i := range out {
		out[i] = float32(float64(out[i]) / sum)
	}
	return out
}

func pieceAttacks(pt board.PieceType, sq board.Square, occ board.Bitboard) board.Bitboard {
	switch pt {
	case board.Knight:
		return board.KnightAttacks(sq)
	case board.Bishop:
		return board.BishopAttacks(sq, occ)
	case board.Rook:
		return board.RookAttacks(sq, occ)
	case board.Queen:
		return board.QueenAttacks(sq, occ)
	default:
		return 0
	}
}
