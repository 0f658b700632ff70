package model

import (
	"errors"
	"fmt"
)

// ErrInvalidReference is returned when a handle does not point at a live entity.
var ErrInvalidReference = errors.New("invalid reference")

type PieceType string

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// forward is the rank delta of a pawn advance.
func (c Color) forward() int {
	if c == Black {
		return -1
	}
	return 1
}

func (c Color) pawnRank() int {
	if c == Black {
		return 6
	}
	return 1
}

func (c Color) backRank() int {
	if c == Black {
		return 7
	}
	return 0
}

const boardSize = 8

// Square is one board coordinate. File 0 is the a-file, rank 0 is White's back rank.
type Square struct {
	File int `json:"file"`
	Rank int `json:"rank"`
}

func (s Square) OnBoard() bool {
	return s.File >= 0 && s.File < boardSize && s.Rank >= 0 && s.Rank < boardSize
}

func (s Square) IsLight() bool {
	return (s.File+s.Rank+1)%2 == 0
}

func (s Square) String() string {
	if !s.OnBoard() {
		return fmt.Sprintf("(%d,%d)", s.File, s.Rank)
	}
	return squareName(s)
}

// PieceID is a stable arena handle. IDs are never reused after a capture.
type PieceID int

type Piece struct {
	ID       PieceID   `json:"id"`
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Position Square    `json:"position"`
}

type pieceSlot struct {
	piece Piece
	alive bool
}

// Registry owns the 64 squares and every piece on the board. It performs no
// legality checks; that is the Engine's job.
type Registry struct {
	squares []Square
	pieces  []pieceSlot
}

// NewRegistry returns an empty board.
func NewRegistry() *Registry {
	r := &Registry{squares: make([]Square, 0, boardSize*boardSize)}
	for file := 0; file < boardSize; file++ {
		for rank := 0; rank < boardSize; rank++ {
			r.squares = append(r.squares, Square{File: file, Rank: rank})
		}
	}
	return r
}

var backRankOrder = []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewStandardRegistry returns a board holding the 32 pieces of the standard starting position.
func NewStandardRegistry() *Registry {
	r := NewRegistry()
	for _, c := range []Color{White, Black} {
		for file, t := range backRankOrder {
			r.AddPiece(t, c, Square{File: file, Rank: c.backRank()})
		}
		for file := 0; file < boardSize; file++ {
			r.AddPiece(Pawn, c, Square{File: file, Rank: c.pawnRank()})
		}
	}
	return r
}

// AddPiece places a new piece. Occupancy is not checked.
func (r *Registry) AddPiece(t PieceType, c Color, sq Square) PieceID {
	id := PieceID(len(r.pieces))
	r.pieces = append(r.pieces, pieceSlot{
		piece: Piece{ID: id, Type: t, Color: c, Position: sq},
		alive: true,
	})
	return id
}

func (r *Registry) AllSquares() []Square {
	out := make([]Square, len(r.squares))
	copy(out, r.squares)
	return out
}

func (r *Registry) PieceAt(sq Square) (PieceID, bool) {
	for _, slot := range r.pieces {
		if slot.alive && slot.piece.Position == sq {
			return slot.piece.ID, true
		}
	}
	return 0, false
}

// AllPieces returns a snapshot of the live pieces.
func (r *Registry) AllPieces() []Piece {
	out := make([]Piece, 0, len(r.pieces))
	for _, slot := range r.pieces {
		if slot.alive {
			out = append(out, slot.piece)
		}
	}
	return out
}

// AllPieceIDs returns the handles of the live pieces, for callers that mutate.
func (r *Registry) AllPieceIDs() []PieceID {
	out := make([]PieceID, 0, len(r.pieces))
	for _, slot := range r.pieces {
		if slot.alive {
			out = append(out, slot.piece.ID)
		}
	}
	return out
}

func (r *Registry) Piece(id PieceID) (Piece, error) {
	slot, err := r.slot(id)
	if err != nil {
		return Piece{}, err
	}
	return slot.piece, nil
}

// MovePiece overwrites the position of a piece unconditionally.
func (r *Registry) MovePiece(id PieceID, to Square) error {
	slot, err := r.slot(id)
	if err != nil {
		return err
	}
	slot.piece.Position = to
	return nil
}

func (r *Registry) RemovePiece(id PieceID) error {
	slot, err := r.slot(id)
	if err != nil {
		return err
	}
	slot.alive = false
	return nil
}

func (r *Registry) Len() int {
	n := 0
	for _, slot := range r.pieces {
		if slot.alive {
			n++
		}
	}
	return n
}

func (r *Registry) slot(id PieceID) (*pieceSlot, error) {
	if id < 0 || int(id) >= len(r.pieces) || !r.pieces[id].alive {
		return nil, fmt.Errorf("piece %d: %w", id, ErrInvalidReference)
	}
	return &r.pieces[id], nil
}
