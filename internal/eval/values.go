package eval

import "github.com/riftchess/mctsengine/internal/board"

// Values is the full table of evaluation feature weights, parameterized
// over the score-pair type so a tuner can swap in a gradient-trace type
// without touching the evaluation logic in eval.go.
type Values[S ScorePairAlgebra[S]] interface {
	Material(pt board.PieceType) S
	PSQT(c board.Color, pt board.PieceType, sq board.Square) S
	Mobility(pt board.PieceType, mob int) S
	PassedPawn(rank int) S
	PawnPhalanx(rank int) S
	DefendedPawn(rank int) S
	SafeKnightCheck() S
	SafeBishopCheck() S
	SafeRookCheck() S
	SafeQueenCheck() S
	KingAttackerWeight(pt board.PieceType) S
	KingAttacks(attacks int) S
	ThreatByPawn(stm bool, pt board.PieceType) S
	ThreatByKnight(stm bool, pt board.PieceType, defended bool) S
	ThreatByBishop(stm bool, pt board.PieceType, defended bool) S
	ThreatByRook(stm bool, pt board.PieceType, defended bool) S
	ThreatByQueen(stm bool, pt board.PieceType, defended bool) S
	Tempo() int32
}

// Params is the concrete, hand-tuned weight table used by engine play. Its
// constants are the production weight set; a tuner builds a different
// Values[S] implementation over the same table shapes rather than mutating
// this one in place.
type Params struct{}

var material = [6]ScorePair{S(78, 126), S(318, 238), S(406, 273), S(483, 495), S(975, 950), S(0, 0)}

// psqt is stored rank-8-first, the layout produced by reading a printed
// board top to bottom; indexing mirrors the square for White and leaves it
// unmirrored for Black, so both colors read their own pieces as if playing
// up the board from rank 1.
var psqt = [6][64]ScorePair{
	{ // Pawn
		S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0),
		S(60, 105), S(-31, 105), S(54, 79), S(71, 3), S(48, 30), S(-52, 71), S(17, 50), S(-32, 98),
		S(10, 53), S(-6, 49), S(17, 7), S(55, -29), S(42, -28), S(30, -17), S(11, 24), S(10, 38),
		S(-28, 21), S(-19, 8), S(-9, -14), S(9, -42), S(12, -39), S(5, -29), S(-4, -13), S(-8, -14),
		S(-36, 6), S(-33, 7), S(-8, -28), S(5, -36), S(6, -53), S(11, -38), S(-10, -31), S(-19, -19),
		S(-39, -4), S(-20, -18), S(-15, -27), S(-21, -22), S(-4, -35), S(-18, -26), S(18, -45), S(-16, -27),
		S(-38, 15), S(-8, -3), S(-15, -13), S(-23, -10), S(-15, -26), S(17, -21), S(30, -33), S(-11, -30),
		S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0), S(0, 0),
	},
	{ // Knight
		S(-168, -8), S(10, -10), S(-78, -19), S(-12, -39), S(-12, -68), S(-162, 1), S(119, -87), S(-48, -113),
		S(-38, 18), S(5, 10), S(-1, -17), S(46, -25), S(17, 12), S(-6, -5), S(-24, 3), S(-65, 19),
		S(48, -25), S(-30, -4), S(4, 24), S(38, 22), S(39, 12), S(11, 44), S(19, 7), S(12, 2),
		S(47, -23), S(16, 1), S(24, 15), S(48, 32), S(26, 26), S(43, 16), S(18, 19), S(43, 10),
		S(8, -11), S(26, -25), S(16, 41), S(10, 46), S(23, 51), S(24, 32), S(6, 15), S(23, 24),
		S(-14, 1), S(9, -28), S(-10, 43), S(8, 31), S(7, 43), S(-1, 29), S(25, -13), S(-2, 11),
		S(-64, -68), S(5, -22), S(-6, 0), S(-4, 25), S(8, -8), S(9, -4), S(-9, 24), S(36, -34),
		S(-106, 3), S(-12, 29), S(-41, 23), S(-10, -21), S(17, -11), S(10, 26), S(-5, -17), S(25, -85),
	},
	{ // Bishop
		S(-22, -43), S(-96, 48), S(-46, -6), S(-20, -33), S(-105, -4), S(-121, 10), S(-165, 55), S(-10, 49),
		S(24, -50), S(0, 2), S(-62, 14), S(11, -25), S(-55, -7), S(9, -5), S(-78, 24), S(-51, 9),
		S(43, -57), S(57, -25), S(23, 3), S(33, -39), S(50, -2), S(6, 31), S(37, -8), S(29, 9),
		S(56, -34), S(12, 4), S(28, 5), S(43, 9), S(16, 30), S(-3, 14), S(4, 8), S(43, -9),
		S(33, -13), S(8, -17), S(21, -3), S(17, 36), S(19, 28), S(0, 19), S(27, 11), S(2, 11),
		S(14, 7), S(60, -22), S(2, 0), S(13, 7), S(2, 14), S(34, 0), S(24, -36), S(14, 8),
		S(44, 5), S(5, 5), S(29, -18), S(-3, -10), S(14, -17), S(19, -35), S(27, -29), S(23, -18),
		S(-34, 54), S(8, 5), S(5, -1), S(-53, 11), S(-1, -37), S(-9, -7), S(-19, 6), S(-31, 52),
	},
	{ // Rook
		S(3, 31), S(145, -37), S(179, -68), S(100, -50), S(92, -42), S(47, -17), S(-34, 42), S(-3, 29),
		S(13, 19), S(45, -15), S(90, -20), S(79, -17), S(122, -28), S(60, -14), S(12, 1), S(-44, 38),
		S(-28, 21), S(12, -5), S(10, 2), S(45, -9), S(10, 3), S(1, 3), S(27, 3), S(-26, 35),
		S(11, 0), S(-41, 15), S(-3, 18), S(35, -7), S(-6, -2), S(-25, 16), S(-16, 34), S(11, -7),
		S(-29, 7), S(-34, 6), S(11, 14), S(-61, 36), S(1, -13), S(-34, 5), S(-18, -6), S(-46, 10),
		S(-55, 9), S(-5, -19), S(-33, 1), S(-59, 24), S(-3, -12), S(-27, -16), S(-33, 14), S(-52, 1),
		S(-64, -2), S(-36, -1), S(-18, -8), S(-9, -28), S(-8, -28), S(-30, 10), S(-18, -18), S(-81, -11),
		S(-44, 16), S(-32, 11), S(-14, 10), S(-13, 8), S(10, -10), S(-7, 0), S(-46, 23), S(-37, -1),
	},
	{ // Queen
		S(18, 17), S(48, -25), S(-38, 80), S(-25, 62), S(77, -27), S(70, -11), S(-67, 108), S(26, -27),
		S(-2, -25), S(-29, 16), S(-52, 64), S(3, 9), S(25, 21), S(-31, 108), S(1, -16), S(18, -1),
		S(-12, 36), S(-4, -10), S(-15, 35), S(-46, 118), S(-36, 81), S(46, 45), S(4, 54), S(45, -40),
		S(16, -17), S(13, 24), S(-39, 106), S(-27, 101), S(-6, 80), S(-20, 49), S(9, 8), S(37, -57),
		S(1, -36), S(-10, -40), S(6, 32), S(-9, 47), S(-12, 61), S(-14, 31), S(13, 9), S(22, -23),
		S(2, -58), S(4, -24), S(14, -24), S(2, -8), S(1, -14), S(-4, 25), S(9, -25), S(20, -130),
		S(-42, 79), S(-12, -24), S(16, -84), S(14, -54), S(2, -6), S(29, -90), S(25, -81), S(-16, -100),
		S(-3, 11), S(15, -116), S(25, -81), S(15, -47), S(29, -111), S(5, -139), S(-75, 0), S(-81, 54),
	},
	{ // King
		S(119, -157), S(-200, -36), S(246, -63), S(223, -28), S(-166, 151), S(-275, 180), S(-30, -18), S(-16, -37),
		S(-306, 58), S(-9, 24), S(42, 35), S(-317, 142), S(-257, 160), S(-379, 129), S(-42, 36), S(-137, -6),
		S(7, 17), S(-104, 53), S(-158, 74), S(-130, 52), S(-48, 32), S(-301, 107), S(-350, 144), S(-409, 163),
		S(-87, 17), S(125, 19), S(97, 15), S(200, -53), S(390, -71), S(149, 3), S(-28, 50), S(1, 4),
		S(60, -59), S(145, -22), S(81, -10), S(136, -15), S(222, -39), S(109, 1), S(57, -10), S(-46, -6),
		S(101, -46), S(116, -51), S(31, -7), S(73, -12), S(11, 4), S(71, -14), S(99, -47), S(3, -28),
		S(110, -76), S(62, -52), S(72, -35), S(31, -22), S(24, -16), S(37, -20), S(90, -42), S(80, -65),
		S(5, -62), S(80, -60), S(61, -47), S(-18, -31), S(62, -82), S(24, -62), S(92, -69), S(69, -97),
	},
}

// mobility is indexed [pieceType-Knight][attackCount]; unused trailing
// entries for pieces whose maximum mobility is lower than a queen's stay
// zero and are never read.
var mobility = [4][28]ScorePair{
	{S(-141, -255), S(-28, 5), S(-10, 22), S(4, 30), S(18, 44), S(23, 45), S(29, 53), S(42, 55), S(63, 1)},
	{S(-52, -164), S(-34, -91), S(-52, -25), S(-39, 18), S(-27, 30), S(-24, 52), S(-22, 59), S(-16, 55), S(-11, 56), S(4, 39), S(-6, 54), S(47, -11), S(32, 26), S(201, -97)},
	{S(-387, -243), S(-80, 54), S(-21, -52), S(-16, -15), S(-6, 7), S(3, 24), S(14, 29), S(16, 35), S(23, 36), S(30, 41), S(34, 43), S(33, 44), S(62, 33), S(60, 36), S(234, -70)},
	{S(-312, -267), S(-312, -267), S(-654, -309), S(-80, 304), S(-60, -95), S(-45, 32), S(-42, 93), S(-35, 92), S(-35, 123), S(-30, 114), S(-33, 140), S(-25, 143), S(-23, 139), S(-27, 161), S(-26, 153), S(-29, 152), S(-29, 149), S(-22, 123), S(-26, 109), S(1, 88), S(-4, 87), S(23, 23), S(89, -38), S(207, -135), S(251, -182), S(343, -299), S(578, -342), S(355, -291)},
}

var passedPawn = [8]ScorePair{S(0, 0), S(1, 12), S(-9, 38), S(-16, 64), S(10, 81), S(23, 104), S(57, 147), S(0, 0)}
var pawnPhalanx = [8]ScorePair{S(0, 0), S(5, 12), S(8, 18), S(16, 23), S(45, 57), S(54, 250), S(576, 746), S(0, 0)}
var defendedPawn = [8]ScorePair{S(0, 0), S(0, 0), S(14, 20), S(13, 14), S(13, 14), S(52, 29), S(388, -45), S(0, 0)}

var safeKnightCheck = S(25, -18)
var safeBishopCheck = S(18, 17)
var safeRookCheck = S(95, -19)
var safeQueenCheck = S(31, 32)

// kingAttackerWeight is indexed [pieceType-Knight].
var kingAttackerWeight = [4]ScorePair{S(13, 19), S(-4, 21), S(22, 9), S(-9, 65)}

var kingAttacks = [14]ScorePair{
	S(-57, 49), S(-50, -4), S(-46, 2), S(-36, 7), S(-9, -13), S(21, -18), S(66, -44),
	S(104, -72), S(191, -93), S(184, -74), S(319, -233), S(358, -176), S(210, -61), S(272, -274),
}

// threatByPawn is indexed [sideToMove][threatenedPieceType].
var threatByPawn = [2][6]ScorePair{
	{S(-13, -67), S(77, 40), S(59, 63), S(59, 42), S(12, 151), S(0, 0)},
	{S(-7, -51), S(204, 167), S(235, 201), S(244, 416), S(445, 1419), S(0, 0)},
}

// threatByKnight/Bishop/Rook/Queen are indexed [sideToMove][defended][threatenedPieceType].
var threatByKnight = [2][2][6]ScorePair{
	{
		{S(0, 67), S(16, -180), S(45, 37), S(67, 31), S(41, 136), S(0, 0)},
		{S(-9, 17), S(-12, -184), S(33, 51), S(57, 28), S(21, 213), S(0, 0)},
	},
	{
		{S(20, 69), S(49, -122), S(149, 136), S(160, 391), S(234, 1293), S(0, 0)},
		{S(-8, 15), S(-2, -184), S(49, 44), S(88, 211), S(193, 804), S(0, 0)},
	},
}

var threatByBishop = [2][2][6]ScorePair{
	{
		{S(10, 44), S(61, 23), S(-25, -3), S(41, 64), S(107, 24), S(0, 0)},
		{S(3, 9), S(27, 40), S(-35, -3), S(32, 105), S(57, 168), S(0, 0)},
	},
	{
		{S(27, 62), S(161, 131), S(97, 24), S(226, 420), S(435, 1254), S(0, 0)},
		{S(-1, 10), S(25, 46), S(-36, -19), S(93, 201), S(392, 435), S(0, 0)},
	},
}

var threatByRook = [2][2][6]ScorePair{
	{
		{S(7, 69), S(61, 54), S(76, 50), S(1, -220), S(103, 35), S(0, 0)},
		{S(-6, 34), S(14, 29), S(38, 22), S(-3, -225), S(122, 64), S(0, 0)},
	},
	{
		{S(6, 91), S(110, 187), S(155, 194), S(150, 177), S(540, 1318), S(0, 0)},
		{S(-5, 16), S(23, 7), S(34, 8), S(-5, -248), S(281, 703), S(0, 0)},
	},
}

var threatByQueen = [2][2][6]ScorePair{
	{
		{S(16, -6), S(39, 13), S(47, 81), S(79, -8), S(-58, -190), S(0, 0)},
		{S(-6, 14), S(-3, 4), S(13, 13), S(9, -26), S(-120, -139), S(0, 0)},
	},
	{
		{S(24, 70), S(127, 42), S(175, 127), S(293, 212), S(454, 857), S(0, 0)},
		{S(-1, -3), S(-7, -2), S(-11, 37), S(-2, 5), S(-93, -201), S(0, 0)},
	},
}

const tempo int32 = 26

func boolIdx(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (Params) Material(pt board.PieceType) ScorePair { return material[pt] }

func (Params) PSQT(c board.Color, pt board.PieceType, sq board.Square) ScorePair {
	return psqt[pt][sq.RelativeSquare(c).Mirror()]
}

func (Params) Mobility(pt board.PieceType, mob int) ScorePair {
	return mobility[int(pt)-int(board.Knight)][mob]
}

func (Params) PassedPawn(rank int) ScorePair   { return passedPawn[rank] }
func (Params) PawnPhalanx(rank int) ScorePair  { return pawnPhalanx[rank] }
func (Params) DefendedPawn(rank int) ScorePair { return defendedPawn[rank] }

func (Params) SafeKnightCheck() ScorePair { return safeKnightCheck }
func (Params) SafeBishopCheck() ScorePair { return safeBishopCheck }
func (Params) SafeRookCheck() ScorePair   { return safeRookCheck }
func (Params) SafeQueenCheck() ScorePair  { return safeQueenCheck }

func (Params) KingAttackerWeight(pt board.PieceType) ScorePair {
	return kingAttackerWeight[int(pt)-int(board.Knight)]
}

func (Params) KingAttacks(attacks int) ScorePair { return kingAttacks[attacks] }

func (Params) ThreatByPawn(stm bool, pt board.PieceType) ScorePair {
	return threatByPawn[boolIdx(stm)][pt]
}

func (Params) ThreatByKnight(stm bool, pt board.PieceType, defended bool) ScorePair {
	return threatByKnight[boolIdx(stm)][boolIdx(defended)][pt]
}

func (Params) ThreatByBishop(stm bool, pt board.PieceType, defended bool) ScorePair {
	return threatByBishop[boolIdx(stm)][boolIdx(defended)][pt]
}

func (Params) ThreatByRook(stm bool, pt board.PieceType, defended bool) ScorePair {
	return threatByRook[boolIdx(stm)][boolIdx(defended)][pt]
}

func (Params) ThreatByQueen(stm bool, pt board.PieceType, defended bool) ScorePair {
	return threatByQueen[boolIdx(stm)][boolIdx(defended)][pt]
}

func (Params) Tempo() int32 { return tempo }
