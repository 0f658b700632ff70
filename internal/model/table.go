package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/clickchess-backend/internal/obslog"
	"github.com/benbeisheim/clickchess-backend/internal/ws"
	"go.uber.org/zap"
)

var (
	// ErrViewerExists is returned when a viewer ID is registered twice.
	ErrViewerExists = errors.New("viewer already registered")
	// ErrNotOwner is returned when someone other than the owner touches a table.
	ErrNotOwner = errors.New("not the table owner")
)

// The live connections observing a table
type TableViewers struct {
	viewers map[string]*Viewer // viewerID -> viewer
	mu      sync.RWMutex
}

// Table is one interactive board session. Every click is applied as a single
// critical section so observers only ever see post-transition state.
type Table struct {
	ID      string
	Name    string
	OwnerID string

	mu          sync.Mutex
	registry    *Registry
	engine      *Engine
	hover       *Hover
	lastOutcome *Outcome
	version     uint64

	viewers  *TableViewers
	activity *ActivityClock
}

type TableState struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	State          State    `json:"state"`
	Pieces         []Piece  `json:"pieces"`
	SelectedSquare *Square  `json:"selectedSquare"`
	SelectedPiece  *PieceID `json:"selectedPiece"`
	Hover          *Hover   `json:"hover"`
	HoverSquare    *Square  `json:"hoverSquare"`
	LegalTargets   []Square `json:"legalTargets"`
	FEN            string   `json:"fen"`
	LastOutcome    *Outcome `json:"lastOutcome"`
	Version        uint64   `json:"version"`
}

func NewTable(id, name, ownerID string) *Table {
	registry := NewStandardRegistry()
	return &Table{
		ID:       id,
		Name:     name,
		OwnerID:  ownerID,
		registry: registry,
		engine:   NewEngine(registry),
		viewers:  newTableViewers(),
		activity: NewActivityClock(),
	}
}

// NewTableWithRegistry starts a table from an arbitrary position.
func NewTableWithRegistry(id, name, ownerID string, registry *Registry) *Table {
	t := NewTable(id, name, ownerID)
	t.registry = registry
	t.engine = NewEngine(registry)
	return t
}

func newTableViewers() *TableViewers {
	return &TableViewers{
		viewers: make(map[string]*Viewer),
	}
}

func (t *Table) Activity() *ActivityClock {
	return t.activity
}

// SetHover records what the picking layer reports under the pointer. A nil
// hover means the pointer left the board.
func (t *Table) SetHover(h *Hover) error {
	t.mu.Lock()
	if h != nil {
		if _, err := t.engine.Resolve(h); err != nil {
			t.mu.Unlock()
			return err
		}
		cp := *h
		h = &cp
	}
	t.hover = h
	t.version++
	state := t.snapshot()
	t.mu.Unlock()

	t.activity.Touch()
	t.broadcastState(state)
	return nil
}

// Click delivers a primary button press using the current hover.
func (t *Table) Click() (Outcome, error) {
	t.mu.Lock()
	hover := t.hover
	out, err := t.engine.HandleClick(hover)
	if err != nil {
		t.version++
		state := t.snapshot()
		t.mu.Unlock()

		obslog.L().Error("table_click_failed",
			zap.String("table_id", t.ID),
			zap.Error(err),
		)
		t.broadcastState(state)
		return Outcome{}, fmt.Errorf("click on table %s: %w", t.ID, err)
	}

	if hover != nil && hover.Kind == EntityPiece && out.To != nil {
		if _, perr := t.registry.Piece(hover.Piece); perr != nil {
			t.hover = HoverSquare(*out.To)
		}
	}
	t.lastOutcome = &out
	t.version++
	state := t.snapshot()
	t.mu.Unlock()

	t.activity.Touch()
	logOutcome(t.ID, out, state.Version)
	t.broadcastState(state)
	return out, nil
}

// Reset restores the starting position and clears selection and hover.
func (t *Table) Reset() {
	t.mu.Lock()
	t.registry = NewStandardRegistry()
	t.engine = NewEngine(t.registry)
	t.hover = nil
	t.lastOutcome = nil
	t.version++
	state := t.snapshot()
	t.mu.Unlock()

	t.activity.Touch()
	obslog.L().Info("table_reset", zap.String("table_id", t.ID))
	t.broadcastState(state)
}

func (t *Table) Snapshot() TableState {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.snapshot()
}

func (t *Table) snapshot() TableState {
	pieces := t.registry.AllPieces()
	sel := t.engine.Selection()
	state := TableState{
		ID:             t.ID,
		Name:           t.Name,
		State:          t.engine.State(),
		Pieces:         pieces,
		SelectedSquare: sel.Square,
		SelectedPiece:  sel.Piece,
		LegalTargets:   []Square{},
		FEN:            BoardFEN(pieces),
		Version:        t.version,
	}
	if t.hover != nil {
		h := *t.hover
		state.Hover = &h
		if sq, err := t.engine.Resolve(t.hover); err == nil {
			state.HoverSquare = &sq
		}
	}
	if sel.Piece != nil {
		if p, err := t.registry.Piece(*sel.Piece); err == nil {
			state.LegalTargets = LegalTargets(p, pieces)
		}
	}
	if t.lastOutcome != nil {
		out := *t.lastOutcome
		state.LastOutcome = &out
	}
	return state
}

func logOutcome(tableID string, out Outcome, version uint64) {
	fields := []zap.Field{
		zap.String("table_id", tableID),
		zap.String("result", string(out.Result)),
		zap.Uint64("version", version),
	}
	if out.Piece != nil {
		fields = append(fields, zap.String("piece", string(out.Piece.Color)+" "+string(out.Piece.Type)))
	}
	if out.From != nil {
		fields = append(fields, zap.String("from", out.From.String()))
	}
	if out.To != nil {
		fields = append(fields, zap.String("to", out.To.String()))
	}
	if out.Notation != "" {
		fields = append(fields, zap.String("notation", out.Notation))
	}
	if len(out.Captured) > 0 {
		fields = append(fields, zap.Int("captured", len(out.Captured)))
	}
	obslog.L().Info("table_click", fields...)
}

func (t *Table) RegisterViewer(v *Viewer) error {
	if v.PlayerID != t.OwnerID {
		return fmt.Errorf("player %s on table %s: %w", v.PlayerID, t.ID, ErrNotOwner)
	}

	t.viewers.mu.Lock()
	if _, exists := t.viewers.viewers[v.ID]; exists {
		t.viewers.mu.Unlock()
		return ErrViewerExists
	}
	t.viewers.viewers[v.ID] = v
	t.viewers.mu.Unlock()
	obslog.L().Debug("table_viewer_registered",
		zap.String("table_id", t.ID),
		zap.String("viewer_id", v.ID),
	)

	// Send initial state to the new viewer only
	if err := v.Send(stateMessage(t.Snapshot())); err != nil {
		t.UnregisterViewer(v.ID)
		return err
	}
	return nil
}

func (t *Table) UnregisterViewer(viewerID string) {
	t.viewers.mu.Lock()
	defer t.viewers.mu.Unlock()

	if _, exists := t.viewers.viewers[viewerID]; exists {
		delete(t.viewers.viewers, viewerID)
		obslog.L().Debug("table_viewer_unregistered",
			zap.String("table_id", t.ID),
			zap.String("viewer_id", viewerID),
		)
	}
}

func (t *Table) ViewerCount() int {
	t.viewers.mu.RLock()
	defer t.viewers.mu.RUnlock()
	return len(t.viewers.viewers)
}

// CloseViewers closes every connection, used when a table is reaped.
func (t *Table) CloseViewers() {
	t.viewers.mu.Lock()
	defer t.viewers.mu.Unlock()

	for id, v := range t.viewers.viewers {
		_ = v.Close()
		delete(t.viewers.viewers, id)
	}
}

func stateMessage(state TableState) ws.Message {
	payload, err := json.Marshal(state)
	if err != nil {
		// TableState holds only plain data; a failure here is a programming error.
		panic(err)
	}
	return ws.Message{
		Type:    ws.MessageTypeTableState,
		Payload: json.RawMessage(payload),
	}
}

// broadcastState pushes a snapshot to every viewer, dropping those whose write fails.
func (t *Table) broadcastState(state TableState) {
	// Get a snapshot of viewers under the viewers mutex
	t.viewers.mu.RLock()
	active := make([]*Viewer, 0, len(t.viewers.viewers))
	for _, v := range t.viewers.viewers {
		active = append(active, v)
	}
	t.viewers.mu.RUnlock()
	if len(active) == 0 {
		return
	}

	msg := stateMessage(state)
	for _, v := range active {
		if err := v.Send(msg); err != nil {
			obslog.L().Warn("table_broadcast_failed",
				zap.String("table_id", t.ID),
				zap.String("viewer_id", v.ID),
				zap.Error(err),
			)
			t.UnregisterViewer(v.ID)
		}
	}
}
