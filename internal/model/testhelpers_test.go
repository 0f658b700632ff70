package model

import "testing"

func sq(t *testing.T, name string) Square {
	t.Helper()
	s, err := ParseSquare(name)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", name, err)
	}
	return s
}

// placed builds an obstruction snapshot from "color type square" triples.
func placed(t *testing.T, specs ...string) []Piece {
	t.Helper()
	if len(specs)%3 != 0 {
		t.Fatalf("placed: want triples, got %d values", len(specs))
	}
	var out []Piece
	for i := 0; i < len(specs); i += 3 {
		out = append(out, Piece{
			ID:       PieceID(len(out)),
			Color:    Color(specs[i]),
			Type:     PieceType(specs[i+1]),
			Position: sq(t, specs[i+2]),
		})
	}
	return out
}

func mustPieceAt(t *testing.T, r *Registry, name string) Piece {
	t.Helper()
	id, ok := r.PieceAt(sq(t, name))
	if !ok {
		t.Fatalf("no piece on %s", name)
	}
	p, err := r.Piece(id)
	if err != nil {
		t.Fatalf("Piece(%d): %v", id, err)
	}
	return p
}
