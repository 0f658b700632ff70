package model

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

func toChessSquare(s Square) nchess.Square {
	return nchess.NewSquare(nchess.File(s.File), nchess.Rank(s.Rank))
}

func squareName(s Square) string {
	return toChessSquare(s).String()
}

// ParseSquare reads algebraic coordinates such as "e4".
func ParseSquare(s string) (Square, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return Square{}, fmt.Errorf("invalid square %q", s)
	}
	sq := Square{File: int(s[0] - 'a'), Rank: int(s[1] - '1')}
	if !sq.OnBoard() {
		return Square{}, fmt.Errorf("invalid square %q", s)
	}
	return sq, nil
}

func toChessPiece(p Piece) nchess.Piece {
	c := nchess.White
	if p.Color == Black {
		c = nchess.Black
	}
	var t nchess.PieceType
	switch p.Type {
	case King:
		t = nchess.King
	case Queen:
		t = nchess.Queen
	case Rook:
		t = nchess.Rook
	case Bishop:
		t = nchess.Bishop
	case Knight:
		t = nchess.Knight
	case Pawn:
		t = nchess.Pawn
	default:
		return nchess.NoPiece
	}
	return nchess.NewPiece(t, c)
}

// BoardFEN returns the piece-placement field of a FEN string for the given pieces.
// When two pieces share a square the first one wins.
func BoardFEN(pieces []Piece) string {
	m := make(map[nchess.Square]nchess.Piece, len(pieces))
	for _, p := range pieces {
		if !p.Position.OnBoard() {
			continue
		}
		sq := toChessSquare(p.Position)
		if _, taken := m[sq]; taken {
			continue
		}
		if cp := toChessPiece(p); cp != nchess.NoPiece {
			m[sq] = cp
		}
	}
	return nchess.NewBoard(m).String()
}

// moveNotation renders a short algebraic-looking label for an executed move.
func moveNotation(p Piece, to Square, captured bool) string {
	prefix := p.Type.getPieceNotation()
	if p.Type == Pawn && captured {
		prefix = string(rune('a' + p.Position.File))
	}
	x := ""
	if captured {
		x = "x"
	}
	return fmt.Sprintf("%s%s%s", prefix, x, to.String())
}
