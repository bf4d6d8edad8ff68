package board

// GivesCheck reports whether making m leaves the opponent in check. It
// makes and immediately unmakes the move, so it catches discovered checks
// as well as checks delivered directly by the moved piece.
func (p *Position) GivesCheck(m Move) bool {
	undo := p.MakeMove(m)
	gives := p.InCheck()
	p.UnmakeMove(m, undo)
	return gives
}
