package model

// ClickResult names what a single primary click did.
type ClickResult string

const (
	ResultSelected       ClickResult = "selected"
	ResultSquareSelected ClickResult = "square_selected"
	ResultMoved          ClickResult = "moved"
	ResultCaptured       ClickResult = "captured"
	ResultRejected       ClickResult = "rejected"
	ResultDeselected     ClickResult = "deselected"
)

// Outcome describes the effect of one click transition.
type Outcome struct {
	Result   ClickResult `json:"result"`
	Piece    *Piece      `json:"piece"`
	From     *Square     `json:"from"`
	To       *Square     `json:"to"`
	Captured []Piece     `json:"captured"`
	Notation string      `json:"notation,omitempty"`
}

// Mutated reports whether the registry changed.
func (o Outcome) Mutated() bool {
	return o.Result == ResultMoved || o.Result == ResultCaptured
}
