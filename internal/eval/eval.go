package eval

import "github.com/riftchess/mctsengine/internal/board"

// evalData accumulates the per-color attack bitboards that the king-safety
// and threat terms need, built once per evaluation and shared by every
// feature pass so sliding-piece attacks are computed exactly once per
// piece.
type evalData[S ScorePairAlgebra[S]] struct {
	attacked         [2]board.Bitboard
	attackedBy       [2][6]board.Bitboard
	attackedBy2      [2]board.Bitboard
	kingRing         [2]board.Bitboard
	kingAttackWeight [2]S
	kingAttacks      [2]int
}

func pawnAttacksBB(c board.Color, pawns board.Bitboard) board.Bitboard {
	if c == board.White {
		return pawns.NorthEast() | pawns.NorthWest()
	}
	return pawns.SouthEast() | pawns.SouthWest()
}

// passedPawnSpan returns the file corridor (own file plus both neighbors)
// strictly ahead of sq from color's perspective, the zone enemy pawns must
// be clear of for sq's pawn to be passed.
func passedPawnSpan(c board.Color, sq board.Square) board.Bitboard {
	file := sq.File()
	mask := board.FileMask[file]
	if file > 0 {
		mask |= board.FileMask[file-1]
	}
	if file < 7 {
		mask |= board.FileMask[file+1]
	}
	var front board.Bitboard
	if c == board.White {
		front = board.SquareBB(sq).NorthFill() &^ board.SquareBB(sq)
	} else {
		front = board.SquareBB(sq).SouthFill() &^ board.SquareBB(sq)
	}
	return mask & front
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

func evaluatePiece[S ScorePairAlgebra[S], V Values[S]](
	pos *board.Position, pt board.PieceType, color board.Color, values V, data *evalData[S],
) S {
	var eval S

	oppPawns := pos.Pieces[color.Other()][board.Pawn]
	mobilityArea := ^pawnAttacksBB(color.Other(), oppPawns)

	pieces := pos.Pieces[color][pt]
	for pieces != 0 {
		sq := pieces.PopLSB()

		attacks := pieceAttacks(pt, sq, pos.AllOccupied)
		mobility := (attacks & mobilityArea).PopCount()
		eval = eval.Add(values.Mobility(pt, mobility))

		data.attackedBy2[color] |= attacks & data.attacked[color]
		data.attacked[color] |= attacks
		data.attackedBy[color][pt] |= attacks

		kingRingAttacks := data.kingRing[color.Other()] & attacks
		if kingRingAttacks != 0 {
			data.kingAttackWeight[color] = data.kingAttackWeight[color].Add(values.KingAttackerWeight(pt))
			data.kingAttacks[color] += kingRingAttacks.PopCount()
		}
	}
	return eval
}

func evaluateKings[S ScorePairAlgebra[S], V Values[S]](
	pos *board.Position, color board.Color, values V, data *evalData[S],
) S {
	var eval S
	enemy := color.Other()

	theirKing := pos.KingSquare[enemy]
	rookCheckSquares := board.RookAttacks(theirKing, pos.AllOccupied)
	bishopCheckSquares := board.BishopAttacks(theirKing, pos.AllOccupied)

	knightChecks := data.attackedBy[color][board.Knight] & board.KnightAttacks(theirKing)
	bishopChecks := data.attackedBy[color][board.Bishop] & bishopCheckSquares
	rookChecks := data.attackedBy[color][board.Rook] & rookCheckSquares
	queenChecks := data.attackedBy[color][board.Queen] & (bishopCheckSquares | rookCheckSquares)

	weak := ^data.attacked[enemy] | (^data.attackedBy2[enemy] & data.attackedBy[enemy][board.King])
	safe := ^pos.Occupied[color] & (^data.attacked[enemy] | (weak & data.attackedBy2[color]))

	eval = eval.Add(values.SafeKnightCheck().Scale(int32((knightChecks & safe).PopCount())))
	eval = eval.Add(values.SafeBishopCheck().Scale(int32((bishopChecks & safe).PopCount())))
	eval = eval.Add(values.SafeRookCheck().Scale(int32((rookChecks & safe).PopCount())))
	eval = eval.Add(values.SafeQueenCheck().Scale(int32((queenChecks & safe).PopCount())))

	eval = eval.Add(data.kingAttackWeight[color])
	attacks := data.kingAttacks[color]
	if attacks > 13 {
		attacks = 13
	}
	eval = eval.Add(values.KingAttacks(attacks))

	return eval
}

func evaluateThreats[S ScorePairAlgebra[S], V Values[S]](
	pos *board.Position, color board.Color, values V, data *evalData[S],
) S {
	stm := color == pos.SideToMove
	enemy := color.Other()
	var eval S

	defendedBB := data.attackedBy2[enemy] |
		data.attackedBy[enemy][board.Pawn] |
		(data.attacked[enemy] &^ data.attackedBy2[color])

	pawnThreats := data.attackedBy[color][board.Pawn] & pos.Occupied[enemy]
	for pawnThreats != 0 {
		sq := pawnThreats.PopLSB()
		threatened := pos.PieceAt(sq).Type()
		eval = eval.Add(values.ThreatByPawn(stm, threatened))
	}

	knightThreats := data.attackedBy[color][board.Knight] & pos.Occupied[enemy]
	for knightThreats != 0 {
		sq := knightThreats.PopLSB()
		threatened := pos.PieceAt(sq).Type()
		defended := defendedBB.IsSet(sq)
		eval = eval.Add(values.ThreatByKnight(stm, threatened, defended))
	}

	bishopThreats := data.attackedBy[color][board.Bishop] & pos.Occupied[enemy]
	for bishopThreats != 0 {
		sq := bishopThreats.PopLSB()
		threatened := pos.PieceAt(sq).Type()
		defended := defendedBB.IsSet(sq)
		eval = eval.Add(values.ThreatByBishop(stm, threatened, defended))
	}

	rookThreats := data.attackedBy[color][board.Rook] & pos.Occupied[enemy]
	for rookThreats != 0 {
		sq := rookThreats.PopLSB()
		threatened := pos.PieceAt(sq).Type()
		defended := defendedBB.IsSet(sq)
		eval = eval.Add(values.ThreatByRook(stm, threatened, defended))
	}

	queenThreats := data.attackedBy[color][board.Queen] & pos.Occupied[enemy]
	for queenThreats != 0 {
		sq := queenThreats.PopLSB()
		threatened := pos.PieceAt(sq).Type()
		defended := defendedBB.IsSet(sq)
		eval = eval.Add(values.ThreatByQueen(stm, threatened, defended))
	}

	return eval
}

func evaluatePawns[S ScorePairAlgebra[S], V Values[S]](pos *board.Position, color board.Color, values V) S {
	var eval S
	ourPawns := pos.Pieces[color][board.Pawn]
	theirPawns := pos.Pieces[color.Other()][board.Pawn]

	tmp := ourPawns
	for tmp != 0 {
		sq := tmp.PopLSB()
		relativeRank := sq.RelativeRank(color)
		stoppers := theirPawns & passedPawnSpan(color, sq)
		if stoppers == 0 {
			eval = eval.Add(values.PassedPawn(relativeRank))
		}
	}

	phalanxes := ourPawns & ourPawns.West()
	for phalanxes != 0 {
		sq := phalanxes.PopLSB()
		eval = eval.Add(values.PawnPhalanx(sq.RelativeRank(color)))
	}

	defended := ourPawns & pawnAttacksBB(color, ourPawns)
	for defended != 0 {
		sq := defended.PopLSB()
		eval = eval.Add(values.DefendedPawn(sq.RelativeRank(color)))
	}

	return eval
}

var pieceTypes = [6]board.PieceType{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen, board.King}

// evalImpl is the generic tapered evaluator: it accumulates features in
// the score-pair type S and returns the blended int32 centipawn score
// from the side-to-move's perspective.
func evalImpl[S ScorePairAlgebra[S], V Values[S]](pos *board.Position, values V) int32 {
	stm := pos.SideToMove
	nstm := stm.Other()
	var score S

	for _, pt := range pieceTypes {
		stmBB := pos.Pieces[stm][pt]
		nstmBB := pos.Pieces[nstm][pt]

		for stmBB != 0 {
			sq := stmBB.PopLSB()
			score = score.Add(values.Material(pt)).Add(values.PSQT(stm, pt, sq))
		}
		for nstmBB != 0 {
			sq := nstmBB.PopLSB()
			score = score.Sub(values.Material(pt)).Sub(values.PSQT(nstm, pt, sq))
		}
	}

	var data evalData[S]

	wKingAtks := board.KingAttacks(pos.KingSquare[board.White])
	bKingAtks := board.KingAttacks(pos.KingSquare[board.Black])
	data.attacked[board.White] = wKingAtks
	data.attacked[board.Black] = bKingAtks
	data.attackedBy[board.White][board.King] = wKingAtks
	data.attackedBy[board.Black][board.King] = bKingAtks
	data.attackedBy[board.White][board.Pawn] = pawnAttacksBB(board.White, pos.Pieces[board.White][board.Pawn])
	data.attackedBy[board.Black][board.Pawn] = pawnAttacksBB(board.Black, pos.Pieces[board.Black][board.Pawn])

	data.kingRing[board.White] = (wKingAtks | wKingAtks.North()) &^ board.SquareBB(pos.KingSquare[board.White])
	data.kingRing[board.Black] = (bKingAtks | bKingAtks.South()) &^ board.SquareBB(pos.KingSquare[board.Black])

	score = score.Add(evaluatePiece[S](pos, board.Knight, stm, values, &data)).
		Sub(evaluatePiece[S](pos, board.Knight, nstm, values, &data))
	score = score.Add(evaluatePiece[S](pos, board.Bishop, stm, values, &data)).
		Sub(evaluatePiece[S](pos, board.Bishop, nstm, values, &data))
	score = score.Add(evaluatePiece[S](pos, board.Rook, stm, values, &data)).
		Sub(evaluatePiece[S](pos, board.Rook, nstm, values, &data))
	score = score.Add(evaluatePiece[S](pos, board.Queen, stm, values, &data)).
		Sub(evaluatePiece[S](pos, board.Queen, nstm, values, &data))

	score = score.Add(evaluateKings[S](pos, stm, values, &data)).
		Sub(evaluateKings[S](pos, nstm, values, &data))
	score = score.Add(evaluateThreats[S](pos, stm, values, &data)).
		Sub(evaluateThreats[S](pos, nstm, values, &data))

	score = score.Add(evaluatePawns[S](pos, stm, values)).
		Sub(evaluatePawns[S](pos, nstm, values))

	phase := 4*pos.Pieces[board.White][board.Queen].PopCount() + 4*pos.Pieces[board.Black][board.Queen].PopCount() +
		2*pos.Pieces[board.White][board.Rook].PopCount() + 2*pos.Pieces[board.Black][board.Rook].PopCount() +
		pos.Pieces[board.White][board.Bishop].PopCount() + pos.Pieces[board.Black][board.Bishop].PopCount() +
		pos.Pieces[board.White][board.Knight].PopCount() + pos.Pieces[board.Black][board.Knight].PopCount()
	if phase > 24 {
		phase = 24
	}

	return (score.Mg()*int32(phase)+score.Eg()*int32(24-phase))/24 + values.Tempo()
}

// Evaluate scores pos from the side-to-move's perspective, in centipawns,
// using the production weight table.
func Evaluate(pos *board.Position) int32 {
	return evalImpl[ScorePair](pos, Params{})
}
