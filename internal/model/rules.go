package model

var (
	knightDirs = []Square{{File: 2, Rank: 1}, {File: 2, Rank: -1}, {File: -2, Rank: 1}, {File: -2, Rank: -1}, {File: 1, Rank: 2}, {File: 1, Rank: -2}, {File: -1, Rank: 2}, {File: -1, Rank: -2}}
	kingDirs   = []Square{{File: 1, Rank: 0}, {File: -1, Rank: 0}, {File: 0, Rank: 1}, {File: 0, Rank: -1}, {File: 1, Rank: 1}, {File: 1, Rank: -1}, {File: -1, Rank: 1}, {File: -1, Rank: -1}}
)

// occupancy is a board-indexed view of an obstruction snapshot. When two
// pieces share a square the first one is recorded.
type occupancy [boardSize][boardSize]*Piece

func newOccupancy(pieces []Piece) *occupancy {
	var occ occupancy
	for i := range pieces {
		sq := pieces[i].Position
		if !sq.OnBoard() || occ[sq.File][sq.Rank] != nil {
			continue
		}
		occ[sq.File][sq.Rank] = &pieces[i]
	}
	return &occ
}

func (o *occupancy) at(sq Square) *Piece {
	if !sq.OnBoard() {
		return nil
	}
	return o[sq.File][sq.Rank]
}

// pathClear reports whether every square strictly between from and to is empty.
// from and to must share a file, rank or diagonal.
func (o *occupancy) pathClear(from, to Square) bool {
	step := Square{File: sign(to.File - from.File), Rank: sign(to.Rank - from.Rank)}
	cur := Square{File: from.File + step.File, Rank: from.Rank + step.Rank}
	for cur != to {
		if o.at(cur) != nil {
			return false
		}
		cur = Square{File: cur.File + step.File, Rank: cur.Rank + step.Rank}
	}
	return true
}

// IsMoveValid reports whether piece may reach target given the obstructions
// snapshot. It checks geometry and occupancy only: no turn order, check,
// castling, en passant or promotion.
func IsMoveValid(piece Piece, target Square, obstructions []Piece) bool {
	if !piece.Position.OnBoard() || !target.OnBoard() {
		return false
	}
	if target == piece.Position {
		return false
	}
	for _, o := range obstructions {
		if o.Position == target && o.Color == piece.Color {
			return false
		}
	}
	occ := newOccupancy(obstructions)

	switch piece.Type {
	case Pawn:
		return pawnCanReach(piece, target, occ)
	case Knight:
		return knightCanReach(piece, target)
	case Bishop:
		return bishopCanReach(piece, target, occ)
	case Rook:
		return rookCanReach(piece, target, occ)
	case Queen:
		return bishopCanReach(piece, target, occ) || rookCanReach(piece, target, occ)
	case King:
		return kingCanReach(piece, target)
	default:
		return false
	}
}

// LegalTargets lists every square the piece may move to.
func LegalTargets(piece Piece, obstructions []Piece) []Square {
	targets := []Square{}
	for file := 0; file < boardSize; file++ {
		for rank := 0; rank < boardSize; rank++ {
			sq := Square{File: file, Rank: rank}
			if IsMoveValid(piece, sq, obstructions) {
				targets = append(targets, sq)
			}
		}
	}
	return targets
}

func pawnCanReach(piece Piece, target Square, occ *occupancy) bool {
	from := piece.Position
	dir := piece.Color.forward()
	df := target.File - from.File
	dr := target.Rank - from.Rank

	switch {
	case df == 0 && dr == dir:
		return occ.at(target) == nil
	case df == 0 && dr == 2*dir:
		if from.Rank != piece.Color.pawnRank() {
			return false
		}
		between := Square{File: from.File, Rank: from.Rank + dir}
		return occ.at(between) == nil && occ.at(target) == nil
	case abs(df) == 1 && dr == dir:
		// diagonal steps only capture; same-color targets were rejected already
		return occ.at(target) != nil
	}
	return false
}

func knightCanReach(piece Piece, target Square) bool {
	return matchesDir(piece.Position, target, knightDirs)
}

func kingCanReach(piece Piece, target Square) bool {
	return matchesDir(piece.Position, target, kingDirs)
}

func bishopCanReach(piece Piece, target Square, occ *occupancy) bool {
	df := target.File - piece.Position.File
	dr := target.Rank - piece.Position.Rank
	if df == 0 || abs(df) != abs(dr) {
		return false
	}
	return occ.pathClear(piece.Position, target)
}

func rookCanReach(piece Piece, target Square, occ *occupancy) bool {
	df := target.File - piece.Position.File
	dr := target.Rank - piece.Position.Rank
	if (df == 0) == (dr == 0) {
		return false
	}
	return occ.pathClear(piece.Position, target)
}

func matchesDir(from, to Square, dirs []Square) bool {
	for _, dir := range dirs {
		if from.File+dir.File == to.File && from.Rank+dir.Rank == to.Rank {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
