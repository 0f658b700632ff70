package model

import "testing"

func TestIsMoveValidRejectsOwnSquare(t *testing.T) {
	pieces := NewStandardRegistry().AllPieces()
	for _, p := range pieces {
		if IsMoveValid(p, p.Position, pieces) {
			t.Fatalf("%s %s allowed to stay on %s", p.Color, p.Type, p.Position)
		}
		if IsMoveValid(p, p.Position, nil) {
			t.Fatalf("%s %s allowed to stay on %s with no obstructions", p.Color, p.Type, p.Position)
		}
	}
}

func TestIsMoveValidRejectsSameColorTarget(t *testing.T) {
	r := NewStandardRegistry()
	pieces := r.AllPieces()
	tests := []struct {
		from, to string
	}{
		{"a1", "a2"}, // rook onto own pawn
		{"b1", "d2"}, // knight onto own pawn
		{"e1", "d1"}, // king onto own queen
		{"c8", "d7"}, // bishop onto own pawn
		{"d8", "e8"}, // queen onto own king
	}
	for _, tt := range tests {
		p := mustPieceAt(t, r, tt.from)
		if IsMoveValid(p, sq(t, tt.to), pieces) {
			t.Fatalf("%s -> %s: captured own piece", tt.from, tt.to)
		}
	}
}

func TestIsMoveValidOffBoard(t *testing.T) {
	pieces := placed(t, "white", "queen", "d4")
	q := pieces[0]
	for _, target := range []Square{{File: 8, Rank: 3}, {File: -1, Rank: 3}, {File: 3, Rank: 8}, {File: 3, Rank: -1}} {
		if IsMoveValid(q, target, pieces) {
			t.Fatalf("target %v should be rejected", target)
		}
	}

	off := Piece{Type: Rook, Color: White, Position: Square{File: 9, Rank: 0}}
	if IsMoveValid(off, Square{File: 7, Rank: 0}, nil) {
		t.Fatalf("off-board piece should never move")
	}
}

func TestSlidingPiecesPathBlocking(t *testing.T) {
	tests := []struct {
		name    string
		mover   string
		from    string
		to      string
		blocker string
	}{
		{"rook file", "rook", "a1", "a6", "a4"},
		{"rook rank", "rook", "a1", "h1", "e1"},
		{"bishop", "bishop", "c1", "g5", "e3"},
		{"queen file", "queen", "d1", "d7", "d3"},
		{"queen diagonal", "queen", "d1", "h5", "f3"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			clearPath := placed(t, "white", tt.mover, tt.from)
			if !IsMoveValid(clearPath[0], sq(t, tt.to), clearPath) {
				t.Fatalf("clear path %s -> %s rejected", tt.from, tt.to)
			}

			for _, color := range []string{"white", "black"} {
				blocked := placed(t, "white", tt.mover, tt.from, color, "pawn", tt.blocker)
				if IsMoveValid(blocked[0], sq(t, tt.to), blocked) {
					t.Fatalf("%s blocker on %s ignored", color, tt.blocker)
				}
			}
		})
	}
}

func TestSlidingPiecesGeometry(t *testing.T) {
	tests := []struct {
		mover string
		to    string
		want  bool
	}{
		{"rook", "d8", true},
		{"rook", "a4", true},
		{"rook", "e5", false},
		{"bishop", "g7", true},
		{"bishop", "a1", true},
		{"bishop", "d5", false},
		{"bishop", "e6", false},
		{"queen", "h8", true},
		{"queen", "d1", true},
		{"queen", "e6", false},
	}
	for _, tt := range tests {
		pieces := placed(t, "white", tt.mover, "d4")
		if got := IsMoveValid(pieces[0], sq(t, tt.to), pieces); got != tt.want {
			t.Fatalf("%s d4 -> %s = %v, want %v", tt.mover, tt.to, got, tt.want)
		}
	}
}

func TestKnightIgnoresObstructions(t *testing.T) {
	r := NewStandardRegistry()
	knight := mustPieceAt(t, r, "g8")
	target := sq(t, "f6")

	if !IsMoveValid(knight, target, r.AllPieces()) {
		t.Fatalf("knight g8 -> f6 rejected in the starting position")
	}

	crowded := append(r.AllPieces(),
		Piece{ID: 100, Type: Pawn, Color: White, Position: sq(t, "g6")},
		Piece{ID: 101, Type: Pawn, Color: Black, Position: sq(t, "f7")},
	)
	if !IsMoveValid(knight, target, crowded) {
		t.Fatalf("knight blocked by pieces between source and target")
	}

	for _, bad := range []string{"g6", "h5", "e8"} {
		if IsMoveValid(knight, sq(t, bad), nil) {
			t.Fatalf("knight g8 -> %s should be rejected", bad)
		}
	}
}

func TestKingSteps(t *testing.T) {
	pieces := placed(t, "black", "king", "e5")
	king := pieces[0]
	for _, target := range []string{"d4", "d5", "d6", "e4", "e6", "f4", "f5", "f6"} {
		if !IsMoveValid(king, sq(t, target), pieces) {
			t.Fatalf("king e5 -> %s rejected", target)
		}
	}
	for _, target := range []string{"e7", "c5", "g3", "e1"} {
		if IsMoveValid(king, sq(t, target), pieces) {
			t.Fatalf("king e5 -> %s allowed", target)
		}
	}
}

func TestPawnAdvance(t *testing.T) {
	tests := []struct {
		name   string
		pieces []string
		to     string
		want   bool
	}{
		{"single step", []string{"white", "pawn", "b2"}, "b3", true},
		{"double step from start", []string{"white", "pawn", "b2"}, "b4", true},
		{"double step after moving", []string{"white", "pawn", "b3"}, "b5", false},
		{"double step blocked in between", []string{"white", "pawn", "b2", "black", "knight", "b3"}, "b4", false},
		{"double step blocked on target", []string{"white", "pawn", "b2", "black", "knight", "b4"}, "b4", false},
		{"single step blocked", []string{"white", "pawn", "b2", "black", "knight", "b3"}, "b3", false},
		{"backwards", []string{"white", "pawn", "b3"}, "b2", false},
		{"sideways", []string{"white", "pawn", "b3"}, "c3", false},
		{"triple step", []string{"white", "pawn", "b2"}, "b5", false},
		{"black single step", []string{"black", "pawn", "e7"}, "e6", true},
		{"black double step", []string{"black", "pawn", "e7"}, "e5", true},
		{"black backwards", []string{"black", "pawn", "e6"}, "e7", false},
		{"black double step off start", []string{"black", "pawn", "e6"}, "e4", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			pieces := placed(t, tt.pieces...)
			if got := IsMoveValid(pieces[0], sq(t, tt.to), pieces); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPawnDiagonalOnlyCaptures(t *testing.T) {
	tests := []struct {
		name   string
		pieces []string
		to     string
		want   bool
	}{
		{"empty diagonal", []string{"white", "pawn", "e4"}, "d5", false},
		{"opponent on diagonal", []string{"white", "pawn", "e4", "black", "pawn", "d5"}, "d5", true},
		{"own piece on diagonal", []string{"white", "pawn", "e4", "white", "pawn", "d5"}, "d5", false},
		{"backward diagonal capture", []string{"white", "pawn", "e4", "black", "pawn", "d3"}, "d3", false},
		{"black captures down", []string{"black", "pawn", "e5", "white", "knight", "f4"}, "f4", true},
		{"forward onto opponent", []string{"white", "pawn", "e4", "black", "pawn", "e5"}, "e5", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			pieces := placed(t, tt.pieces...)
			if got := IsMoveValid(pieces[0], sq(t, tt.to), pieces); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLegalTargetsFromStart(t *testing.T) {
	r := NewStandardRegistry()
	pieces := r.AllPieces()

	tests := []struct {
		from string
		want []string
	}{
		{"b1", []string{"a3", "c3"}},
		{"e2", []string{"e3", "e4"}},
		{"a1", nil},
		{"e1", nil},
		{"g8", []string{"f6", "h6"}},
	}
	for _, tt := range tests {
		got := LegalTargets(mustPieceAt(t, r, tt.from), pieces)
		if len(got) != len(tt.want) {
			t.Fatalf("%s: got %v, want %v", tt.from, got, tt.want)
		}
		for i, name := range tt.want {
			if got[i] != sq(t, name) {
				t.Fatalf("%s: got %v, want %v", tt.from, got, tt.want)
			}
		}
	}
}

func TestIsMoveValidChecksEveryPieceOnTarget(t *testing.T) {
	// an opponent listed first must not hide a same-colour piece on the same square
	pieces := placed(t, "white", "rook", "a1", "black", "pawn", "a5", "white", "pawn", "a5")
	if IsMoveValid(pieces[0], sq(t, "a5"), pieces) {
		t.Fatalf("rook allowed onto a square holding its own pawn")
	}

	opponents := placed(t, "white", "rook", "a1", "black", "pawn", "a5", "black", "knight", "a5")
	if !IsMoveValid(opponents[0], sq(t, "a5"), opponents) {
		t.Fatalf("rook refused a square holding only opponents")
	}
}
