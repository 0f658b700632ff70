// service/table_manager.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/benbeisheim/clickchess-backend/internal/obslog"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrTableNotFound = errors.New("table not found")
	ErrTooManyTables = errors.New("too many tables")
)

type ManagerOptions struct {
	MaxTables    int
	IdleTTL      time.Duration
	ReapInterval time.Duration
}

type TableManager struct {
	tables map[string]*model.Table
	opts   ManagerOptions
	mu     sync.RWMutex

	cancel context.CancelFunc
	done   chan struct{}
}

func NewTableManager(opts ManagerOptions) *TableManager {
	if opts.MaxTables <= 0 {
		opts.MaxTables = 200
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = 30 * time.Minute
	}
	if opts.ReapInterval <= 0 {
		opts.ReapInterval = time.Minute
	}
	return &TableManager{
		tables: make(map[string]*model.Table),
		opts:   opts,
	}
}

// Start runs the idle reaper until ctx is done or Close is called.
func (tm *TableManager) Start(ctx context.Context) {
	tm.mu.Lock()
	if tm.cancel != nil {
		tm.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	tm.cancel = cancel
	tm.done = make(chan struct{})
	tm.mu.Unlock()

	go tm.processReaping(ctx)
}

func (tm *TableManager) processReaping(ctx context.Context) {
	defer close(tm.done)
	ticker := time.NewTicker(tm.opts.ReapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := tm.ReapIdle(tm.opts.IdleTTL); n > 0 {
				obslog.L().Info("table_reap", zap.Int("removed", n), zap.Int("remaining", tm.Count()))
			}
		}
	}
}

// Close stops the reaper and disconnects every viewer.
func (tm *TableManager) Close() {
	tm.mu.Lock()
	cancel, done := tm.cancel, tm.done
	tm.cancel = nil
	tables := make([]*model.Table, 0, len(tm.tables))
	for _, t := range tm.tables {
		tables = append(tables, t)
	}
	tm.tables = make(map[string]*model.Table)
	tm.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	for _, t := range tables {
		t.CloseViewers()
	}
}

func (tm *TableManager) CreateTable(ownerID string) (*model.Table, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if len(tm.tables) >= tm.opts.MaxTables {
		return nil, fmt.Errorf("create table for %s: %w", ownerID, ErrTooManyTables)
	}

	tableID := uuid.New().String()
	table := model.NewTable(tableID, petname.Generate(2, "-"), ownerID)
	tm.tables[tableID] = table

	obslog.L().Info("table_create",
		zap.String("table_id", tableID),
		zap.String("name", table.Name),
		zap.String("owner_id", ownerID),
	)
	return table, nil
}

func (tm *TableManager) GetTable(tableID string) (*model.Table, error) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	table, exists := tm.tables[tableID]
	if !exists {
		return nil, fmt.Errorf("table %s: %w", tableID, ErrTableNotFound)
	}
	return table, nil
}

func (tm *TableManager) RemoveTable(tableID string) error {
	tm.mu.Lock()
	table, exists := tm.tables[tableID]
	if exists {
		delete(tm.tables, tableID)
	}
	tm.mu.Unlock()

	if !exists {
		return fmt.Errorf("table %s: %w", tableID, ErrTableNotFound)
	}
	table.CloseViewers()
	return nil
}

// ReapIdle removes tables with no viewers that have been idle longer than ttl.
func (tm *TableManager) ReapIdle(ttl time.Duration) int {
	tm.mu.Lock()
	var reaped []*model.Table
	for id, t := range tm.tables {
		if t.ViewerCount() == 0 && t.Activity().IdleFor() > ttl {
			reaped = append(reaped, t)
			delete(tm.tables, id)
		}
	}
	tm.mu.Unlock()

	for _, t := range reaped {
		t.CloseViewers()
	}
	return len(reaped)
}

func (tm *TableManager) Count() int {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return len(tm.tables)
}
