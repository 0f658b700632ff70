package render

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/fatih/color"
)

var (
	termLight    = color.New(color.BgWhite, color.FgBlack)
	termDark     = color.New(color.BgBlack, color.FgWhite)
	termHover    = color.New(color.BgRed, color.FgWhite)
	termSelected = color.New(color.BgYellow, color.FgBlack)
)

func termLetter(p model.Piece) string {
	var l string
	switch p.Type {
	case model.King:
		l = "k"
	case model.Queen:
		l = "q"
	case model.Rook:
		l = "r"
	case model.Bishop:
		l = "b"
	case model.Knight:
		l = "n"
	case model.Pawn:
		l = "p"
	default:
		l = "?"
	}
	if p.Color == model.White {
		l = strings.ToUpper(l)
	}
	return l
}

// Text renders the board for a terminal, rank 8 first. Square backgrounds
// follow the same hover/selected/base precedence as Palette.SquareColor.
// Reachable empty squares show a '*'.
func Text(v View) string {
	var grid [boardSquares][boardSquares]string
	for _, p := range v.Pieces {
		if p.Position.OnBoard() && grid[p.Position.File][p.Position.Rank] == "" {
			grid[p.Position.File][p.Position.Rank] = termLetter(p)
		}
	}

	var b strings.Builder
	if v.Title != "" {
		b.WriteString(v.Title)
		b.WriteString("\n")
	}
	for rank := boardSquares - 1; rank >= 0; rank-- {
		fmt.Fprintf(&b, "%d ", rank+1)
		for file := 0; file < boardSquares; file++ {
			sq := model.Square{File: file, Rank: rank}
			cell := grid[file][rank]
			if cell == "" {
				cell = "."
				if v.isTarget(sq) {
					cell = "*"
				}
			}
			b.WriteString(termStyle(sq, v).Sprintf(" %s ", cell))
		}
		b.WriteString("\n")
	}
	b.WriteString("   a  b  c  d  e  f  g  h\n")
	return b.String()
}

func termStyle(sq model.Square, v View) *color.Color {
	switch {
	case v.Hover != nil && *v.Hover == sq:
		return termHover
	case v.Selected != nil && *v.Selected == sq:
		return termSelected
	case sq.IsLight():
		return termLight
	default:
		return termDark
	}
}
