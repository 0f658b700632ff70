package model

import "fmt"

// EntityKind tells which kind of object sits under the pointer.
type EntityKind string

const (
	EntitySquare EntityKind = "square"
	EntityPiece  EntityKind = "piece"
)

// Hover is the topmost interactable object under the pointer, as reported by
// the picking layer. A nil *Hover means the pointer is outside the board.
type Hover struct {
	Kind   EntityKind `json:"kind"`
	Square Square     `json:"square"`
	Piece  PieceID    `json:"piece"`
}

func HoverSquare(sq Square) *Hover {
	return &Hover{Kind: EntitySquare, Square: sq}
}

func HoverPiece(id PieceID) *Hover {
	return &Hover{Kind: EntityPiece, Piece: id}
}

type State string

const (
	StateIdle          State = "idle"
	StatePieceSelected State = "piece_selected"
)

type Selection struct {
	Square *Square  `json:"selectedSquare"`
	Piece  *PieceID `json:"selectedPiece"`
}

// Engine is the click-driven selection state machine. It is not safe for
// concurrent use; Table serialises access to it.
type Engine struct {
	registry  *Registry
	selection Selection
}

func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

func (e *Engine) Registry() *Registry {
	return e.registry
}

func (e *Engine) State() State {
	if e.selection.Piece != nil {
		return StatePieceSelected
	}
	return StateIdle
}

// Selection returns a copy of the current selection.
func (e *Engine) Selection() Selection {
	var out Selection
	if e.selection.Square != nil {
		sq := *e.selection.Square
		out.Square = &sq
	}
	if e.selection.Piece != nil {
		id := *e.selection.Piece
		out.Piece = &id
	}
	return out
}

func (e *Engine) Reset() {
	e.selection = Selection{}
}

// Resolve maps a hover to the board square it designates.
func (e *Engine) Resolve(h *Hover) (Square, error) {
	switch h.Kind {
	case EntitySquare:
		if !h.Square.OnBoard() {
			return Square{}, fmt.Errorf("square %s: %w", h.Square, ErrInvalidReference)
		}
		return h.Square, nil
	case EntityPiece:
		p, err := e.registry.Piece(h.Piece)
		if err != nil {
			return Square{}, err
		}
		return p.Position, nil
	default:
		return Square{}, fmt.Errorf("hover kind %q: %w", h.Kind, ErrInvalidReference)
	}
}

// HandleClick applies one primary click given what is under the pointer.
func (e *Engine) HandleClick(hover *Hover) (Outcome, error) {
	if hover == nil {
		e.Reset()
		return Outcome{Result: ResultDeselected}, nil
	}
	target, err := e.Resolve(hover)
	if err != nil {
		e.Reset()
		return Outcome{}, err
	}

	if e.selection.Piece == nil {
		return e.selectAt(target), nil
	}

	defer e.Reset()
	return e.tryMove(*e.selection.Piece, target)
}

func (e *Engine) selectAt(target Square) Outcome {
	e.selection.Square = &target
	for _, p := range e.registry.AllPieces() {
		if p.Position == target {
			id := p.ID
			e.selection.Piece = &id
			return Outcome{Result: ResultSelected, Piece: &p, From: &target}
		}
	}
	return Outcome{Result: ResultSquareSelected, To: &target}
}

func (e *Engine) tryMove(id PieceID, target Square) (Outcome, error) {
	mover, err := e.registry.Piece(id)
	if err != nil {
		return Outcome{}, err
	}
	from := mover.Position
	out := Outcome{Piece: &mover, From: &from, To: &target}

	if !IsMoveValid(mover, target, e.registry.AllPieces()) {
		out.Result = ResultRejected
		return out, nil
	}

	for _, qid := range e.registry.AllPieceIDs() {
		q, err := e.registry.Piece(qid)
		if err != nil {
			return out, err
		}
		if q.ID == mover.ID || q.Position != target || q.Color == mover.Color {
			continue
		}
		if err := e.registry.RemovePiece(qid); err != nil {
			return out, err
		}
		out.Captured = append(out.Captured, q)
	}
	if err := e.registry.MovePiece(mover.ID, target); err != nil {
		return out, err
	}

	out.Result = ResultMoved
	if len(out.Captured) > 0 {
		out.Result = ResultCaptured
	}
	out.Notation = moveNotation(mover, target, len(out.Captured) > 0)
	mover.Position = target
	out.Piece = &mover
	return out, nil
}
