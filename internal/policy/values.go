package policy

import "github.com/riftchess/mctsengine/internal/board"

// capBonus/pawnProtectedPenalty/pawnThreatEvasion are indexed by the
// captured or moving piece type, Pawn..Queen (a king is never captured
// and never the subject of a threat-evasion bonus).
var capBonus = [5]float32{1.543, 2.510, 2.694, 2.677, 3.202}
var pawnProtectedPenalty = [5]float32{0.632, 2.162, 1.989, 3.074, 3.331}
var pawnThreatEvasion = [5]float32{0.238, 2.547, 2.157, 2.395, 2.789}

// psqtMgEg packs the policy network's own piece-square weights; stored
// rank-8-first like the evaluator's PSQT, indexed the same way.
type psqtMgEg struct{ mg, eg float32 }

func sc(mg, eg float32) psqtMgEg { return psqtMgEg{mg, eg} }

var psqtScore = [6][64]psqtMgEg{
	{ // Pawn
		sc(0, 0), sc(0, 0), sc(0, 0), sc(0, 0), sc(0, 0), sc(0, 0), sc(0, 0), sc(0, 0),
		sc(96.311, 154.176), sc(65.919, 138.798), sc(85.852, 152.793), sc(81.588, 151.393), sc(91.479, 135.434), sc(44.495, 127.242), sc(42.982, 122.053), sc(76.100, 152.536),
		sc(26.788, 56.849), sc(26.099, 45.942), sc(53.964, 59.136), sc(68.066, 50.018), sc(66.831, 36.647), sc(75.793, 26.430), sc(44.212, 23.988), sc(38.771, 43.679),
		sc(-40.118, -20.130), sc(15.722, -30.402), sc(14.423, -15.117), sc(37.980, -16.547), sc(46.890, -30.434), sc(32.657, -39.231), sc(39.990, -50.385), sc(-9.341, -38.813),
		sc(-45.045, -80.862), sc(-26.521, -67.539), sc(-8.463, -62.313), sc(10.327, -51.611), sc(3.412, -58.939), sc(-0.147, -69.545), sc(-1.735, -82.901), sc(-19.997, -92.217),
		sc(-21.754, -102.928), sc(-31.159, -71.646), sc(-3.692, -79.035), sc(-21.752, -48.540), sc(-6.129, -62.052), sc(-11.274, -74.428), sc(11.050, -87.991), sc(10.675, -109.169),
		sc(-22.946, -85.744), sc(-20.154, -66.326), sc(-22.152, -61.616), sc(-56.435, -37.713), sc(-42.497, -38.354), sc(3.264, -63.878), sc(23.620, -82.056), sc(-4.251, -91.946),
		sc(0, 0), sc(0, 0), sc(0, 0), sc(0, 0), sc(0, 0), sc(0, 0), sc(0, 0), sc(0, 0),
	},
	{ // Knight
		sc(31.426, -62.892), sc(23.345, -30.817), sc(-22.435, -7.464), sc(46.244, -20.504), sc(34.240, -14.375), sc(10.834, -29.696), sc(7.954, -28.656), sc(39.608, -54.477),
		sc(-22.974, -12.297), sc(8.761, -6.153), sc(10.732, 3.185), sc(3.525, 5.767), sc(2.237, 2.493), sc(40.477, -9.629), sc(-2.647, -5.449), sc(19.269, -28.429),
		sc(3.814, -11.113), sc(33.050, 0.705), sc(45.764, 10.870), sc(27.487, 22.462), sc(52.805, 9.858), sc(39.764, 8.991), sc(54.639, -8.127), sc(21.864, -21.477),
		sc(4.941, -0.459), sc(12.327, 13.647), sc(30.250, 24.755), sc(41.851, 22.973), sc(43.280, 22.283), sc(42.529, 21.057), sc(26.588, 11.319), sc(44.779, -13.167),
		sc(-5.866, -4.403), sc(9.479, 7.558), sc(20.100, 26.309), sc(32.371, 21.557), sc(37.694, 19.799), sc(32.264, 20.422), sc(26.038, 8.729), sc(9.417, -13.345),
		sc(-44.945, -9.950), sc(-7.797, 2.671), sc(20.270, 2.348), sc(18.532, 16.903), sc(30.009, 16.941), sc(21.262, -1.204), sc(21.017, -8.514), sc(-34.003, -8.328),
		sc(-50.938, -17.573), sc(-33.841, -11.724), sc(-16.805, -3.140), sc(-13.753, 2.623), sc(-8.387, 2.351), sc(1.250, -4.044), sc(-13.599, -15.470), sc(-29.583, -16.373),
		sc(-83.201, -9.945), sc(-56.315, -40.909), sc(-64.707, -9.299), sc(-38.395, -13.693), sc(-43.069, -16.378), sc(-28.552, -19.825), sc(-49.316, -38.269), sc(-82.078, -1.276),
	},
	{ // Bishop
		sc(4.368, -31.739), sc(-65.478, -9.361), sc(8.830, -26.316), sc(-0.265, -11.969), sc(-18.316, -12.745), sc(0.227, -22.778), sc(-49.176, -13.815), sc(9.397, -35.909),
		sc(-33.838, -23.660), sc(1.946, -7.105), sc(-15.533, -0.698), sc(-49.116, 3.819), sc(-25.069, 0.586), sc(-20.439, -2.644), sc(-6.353, -5.443), sc(-13.430, -33.465),
		sc(-30.801, -7.370), sc(2.559, 0.947), sc(6.990, 13.235), sc(21.098, 5.901), sc(11.001, 11.646), sc(16.391, 12.822), sc(18.433, -0.939), sc(-15.399, -8.306),
		sc(-9.652, -11.920), sc(9.880, 8.804), sc(9.831, 20.149), sc(19.584, 28.384), sc(22.693, 26.541), sc(13.682, 18.954), sc(20.082, 5.823), sc(-1.056, -16.864),
		sc(7.061, -18.477), sc(-6.877, 12.849), sc(3.072, 24.992), sc(27.773, 26.707), sc(26.564, 24.460), sc(8.969, 21.017), sc(2.965, 5.692), sc(19.655, -28.901),
		sc(1.424, -14.321), sc(15.075, 0.253), sc(13.400, 19.258), sc(7.628, 20.237), sc(5.413, 24.923), sc(10.619, 17.977), sc(19.080, -4.341), sc(8.464, -17.407),
		sc(-10.087, -13.397), sc(11.109, -11.613), sc(8.333, -3.273), sc(-17.231, 7.341), sc(-3.276, 6.333), sc(18.014, -7.117), sc(30.940, -13.342), sc(-0.805, -24.518),
		sc(-24.301, -29.910), sc(-18.858, -11.298), sc(-18.480, -33.002), sc(-34.482, -8.284), sc(-22.615, -17.191), sc(-17.235, -22.026), sc(-13.646, -20.976), sc(-26.777, -36.664),
	},
	{ // Rook
		sc(17.464, 12.869), sc(-9.260, 18.229), sc(-36.598, 29.959), sc(-37.492, 23.304), sc(-24.260, 15.946), sc(-24.506, 13.900), sc(-3.409, 10.901), sc(45.221, 1.286),
		sc(-2.071, 14.772), sc(-0.447, 19.664), sc(10.639, 21.222), sc(15.741, 11.657), sc(15.214, 5.768), sc(16.498, 4.035), sc(6.459, 5.586), sc(35.013, -1.227),
		sc(-0.416, 12.042), sc(8.148, 10.667), sc(16.547, 6.666), sc(26.248, -2.273), sc(34.165, -11.947), sc(30.779, -9.114), sc(41.396, -8.391), sc(30.872, -8.937),
		sc(-6.392, 10.542), sc(4.176, 5.743), sc(19.611, 4.765), sc(19.907, -0.407), sc(32.072, -12.456), sc(29.245, -11.989), sc(33.764, -11.910), sc(30.195, -12.465),
		sc(-13.663, 6.412), sc(-17.290, 8.054), sc(7.440, 1.887), sc(17.038, -3.543), sc(20.813, -8.271), sc(9.413, -4.205), sc(18.650, -11.138), sc(10.110, -11.806),
		sc(-34.483, 5.095), sc(-12.577, -3.226), sc(-5.928, -1.580), sc(-3.026, -3.226), sc(7.690, -8.586), sc(1.652, -11.808), sc(27.956, -22.761), sc(6.898, -19.553),
		sc(-45.535, 1.602), sc(-32.067, -0.093), sc(-10.626, -3.879), sc(-8.964, -5.492), sc(-6.171, -10.000), sc(-6.759, -12.145), sc(10.552, -22.501), sc(-18.513, -13.070),
		sc(-0.440, -13.901), sc(-20.168, 1.231), sc(-8.319, 4.139), sc(5.724, -2.473), sc(4.981, -9.865), sc(2.918, -16.624), sc(12.930, -18.668), sc(8.593, -26.150),
	},
	{ // Queen
		sc(-9.028, -5.109), sc(-29.431, 10.478), sc(-46.926, 30.281), sc(-51.628, 28.510), sc(-35.687, 21.926), sc(-49.200, 22.215), sc(-10.507, -1.333), sc(6.386, -6.605),
		sc(-10.208, -16.342), sc(-13.919, 6.402), sc(-22.494, 22.254), sc(-56.449, 43.452), sc(-66.324, 55.629), sc(-30.148, 26.977), sc(-17.994, 12.716), sc(5.003, -5.682),
		sc(-2.802, -21.646), sc(11.367, -10.532), sc(-4.646, 16.351), sc(7.581, 11.207), sc(3.961, 22.259), sc(6.365, 18.440), sc(32.239, -6.378), sc(12.032, -8.281),
		sc(-14.632, -6.408), sc(8.250, -2.692), sc(1.773, 10.591), sc(10.493, 18.208), sc(16.994, 19.656), sc(14.540, 18.994), sc(23.137, 6.899), sc(20.295, -9.277),
		sc(5.457, -20.161), sc(-7.810, 5.567), sc(15.113, 2.083), sc(24.522, 8.432), sc(24.516, 12.125), sc(23.493, 3.609), sc(12.863, 5.111), sc(19.317, -14.895),
		sc(-10.266, -14.214), sc(6.949, -9.277), sc(20.199, -3.558), sc(10.079, 6.275), sc(19.359, 4.000), sc(24.447, -2.823), sc(33.983, -16.846), sc(15.677, -22.395),
		sc(-21.103, -15.328), sc(-3.329, -11.832), sc(12.748, -20.494), sc(6.497, -7.159), sc(9.854, -9.235), sc(21.600, -25.422), sc(24.917, -34.238), sc(10.376, -41.961),
		sc(-12.189, -21.334), sc(-42.750, -1.762), sc(-23.556, -8.496), sc(12.574, -64.381), sc(-9.206, -20.524), sc(-25.019, -6.737), sc(-11.051, -20.752), sc(-23.545, -24.037),
	},
	{ // King
		sc(-8.117, -32.683), sc(-4.483, -13.857), sc(-12.692, -7.726), sc(-63.499, 5.376), sc(-50.322, 6.442), sc(-24.320, 8.927), sc(-6.164, 5.942), sc(20.499, -28.695),
		sc(-45.624, -6.010), sc(-38.025, 25.137), sc(-57.562, 24.312), sc(-41.920, 22.742), sc(-73.205, 36.038), sc(-37.427, 39.570), sc(-10.063, 30.947), sc(-39.995, 13.091),
		sc(-90.730, 7.659), sc(-33.517, 27.077), sc(-72.811, 38.989), sc(-92.170, 50.912), sc(-73.702, 53.593), sc(-23.737, 47.417), sc(-19.472, 40.164), sc(-46.627, 17.779),
		sc(-84.704, 5.425), sc(-68.281, 28.621), sc(-90.312, 44.079), sc(-136.137, 58.289), sc(-116.412, 57.354), sc(-103.806, 53.975), sc(-88.183, 40.595), sc(-109.430, 19.191),
		sc(-76.884, -6.271), sc(-73.607, 18.519), sc(-83.323, 34.065), sc(-114.447, 50.988), sc(-115.176, 51.040), sc(-86.414, 39.266), sc(-81.482, 25.209), sc(-106.853, 9.163),
		sc(-29.997, -20.200), sc(-7.139, -0.962), sc(-43.827, 17.152), sc(-59.623, 29.421), sc(-57.568, 29.610), sc(-49.711, 20.364), sc(-21.886, 4.190), sc(-30.079, -13.862),
		sc(30.871, -39.296), sc(14.753, -17.861), sc(6.080, -5.168), sc(-20.015, 2.375), sc(-19.966, 5.351), sc(4.309, -5.163), sc(27.244, -18.619), sc(20.155, -35.378),
		sc(-5.743, -68.565), sc(63.930, -58.450), sc(51.216, -44.725), sc(-6.491, -38.547), sc(58.581, -56.069), sc(9.640, -42.926), sc(56.242, -53.175), sc(14.019, -72.511),
	},
}

var policyMobility = [4][28]psqtMgEg{
	{sc(12.967, -59.716), sc(-5.868, -12.116), sc(-6.977, -14.944), sc(-3.315, -1.874), sc(-0.829, 2.550), sc(1.715, 7.364), sc(4.434, 6.311), sc(7.512, 6.052), sc(11.340, 1.850)},
	{sc(-0.612, 36.349), sc(0.204, 13.132), sc(-6.411, 16.883), sc(-0.780, 11.030), sc(3.046, 8.776), sc(5.702, 6.273), sc(5.803, 3.694), sc(4.662, 0.917), sc(3.960, -4.762), sc(0.132, -6.574), sc(-0.932, -10.419), sc(-8.709, -12.956), sc(-3.516, -19.797), sc(-10.105, -18.876)},
	{sc(5.411, 48.873), sc(-4.370, 49.194), sc(-36.494, 33.676), sc(-20.445, 9.009), sc(-8.440, 7.796), sc(-3.728, 7.136), sc(0.696, 7.012), sc(6.542, 2.762), sc(9.162, 0.707), sc(13.768, -2.601), sc(15.856, -3.799), sc(16.917, -6.042), sc(15.648, -7.430), sc(15.131, -10.984), sc(1.831, -9.290)},
	{sc(0, 0), sc(0, 0), sc(-70.570, 33.894), sc(16.187, -54.341), sc(14.066, -29.781), sc(-4.704, 6.609), sc(1.842, -8.350), sc(3.513, -0.637), sc(5.036, -5.973), sc(5.621, -2.231), sc(4.886, 1.495), sc(3.685, 3.195), sc(2.306, 4.247), sc(1.988, 4.709), sc(1.452, 1.912), sc(-0.299, 1.989), sc(0.262, 0.016), sc(-4.251, 0.246), sc(-6.053, 0.539), sc(-5.720, -0.203), sc(-9.889, -0.693), sc(-13.766, 2.213), sc(-16.470, -2.860), sc(-20.775, 0.925), sc(-14.028, -2.593), sc(-30.613, 4.820), sc(-14.465, -3.340), sc(-22.023, 4.010)},
}

var promoBonus = [2]float32{1.167, -1.952}

const badSeePenalty float32 = -2.548
const checkBonus float32 = 0.504

func taper(p psqtMgEg, phase int) float32 {
	if phase > 24 {
		phase = 24
	}
	return (p.mg*float32(phase) + p.eg*float32(24-phase)) / 24.0
}

// Params is the concrete, hand-tuned policy weight table used by engine
// play; a tuner builds a separate Values[V] implementation over the same
// table shapes.
type Params struct{}

func (Params) CapBonus(pt board.PieceType) float32              { return capBonus[pt] }
func (Params) PawnProtectedPenalty(pt board.PieceType) float32  { return pawnProtectedPenalty[pt] }
func (Params) PawnThreatEvasion(pt board.PieceType) float32     { return pawnThreatEvasion[pt] }

func (Params) PSQTScore(c board.Color, pt board.PieceType, sq board.Square, phase int) float32 {
	return taper(psqtScore[pt][sq.RelativeSquare(c).Mirror()], phase)
}

func (Params) Mobility(pt board.PieceType, mob int, phase int) float32 {
	return taper(policyMobility[int(pt)-int(board.Knight)][mob], phase)
}

func (Params) PromoBonus(pt board.PieceType) float32 {
	if pt == board.Queen {
		return promoBonus[0]
	}
	return promoBonus[1]
}

func (Params) BadSeePenalty() float32 { return badSeePenalty }
func (Params) CheckBonus() float32    { return checkBonus }
