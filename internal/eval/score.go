// Package eval implements the tapered static position evaluator: material,
// piece-square tables, mobility, pawn structure, king safety, and threats,
// blended between middlegame and endgame weights by a phase estimate.
package eval

// ScorePair packs a middlegame and an endgame centipawn score into one
// int32 (eg in the high 16 bits, mg in the low 16), so every feature
// addition during evaluation is a single int32 add instead of two. The
// endgame half is recovered with a rounding add before the shift so that
// negative endgame values decode correctly (sign-aware unpack).
type ScorePair int32

// S builds a ScorePair from separate middlegame/endgame values.
func S(mg, eg int32) ScorePair {
	return ScorePair((uint32(eg) << 16) + uint32(int16(mg)))
}

// Mg returns the middlegame component.
func (s ScorePair) Mg() int32 { return int32(int16(uint32(s) & 0xFFFF)) }

// Eg returns the endgame component.
func (s ScorePair) Eg() int32 { return int32(int16((uint32(s) + 0x8000) >> 16)) }

func (s ScorePair) Add(o ScorePair) ScorePair { return s + o }
func (s ScorePair) Sub(o ScorePair) ScorePair { return s - o }
func (s ScorePair) Neg() ScorePair            { return -s }
func (s ScorePair) Scale(k int32) ScorePair   { return ScorePair(int32(s) * k) }

// ScorePairAlgebra is the operation set the evaluator needs from its score
// type. The evaluator and params tables are written against this
// abstraction, not against ScorePair directly, so a tuner can substitute a
// sparse-feature-trace type (one that accumulates a gradient coefficient
// per feature index instead of a concrete centipawn value) implementing
// the same algebra, without touching evaluation logic.
type ScorePairAlgebra[S any] interface {
	Add(S) S
	Sub(S) S
	Neg() S
	Scale(int32) S
	Mg() int32
	Eg() int32
}
