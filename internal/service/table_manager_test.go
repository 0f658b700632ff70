package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbeisheim/clickchess-backend/internal/model"
)

type nopConn struct{}

func (nopConn) WriteJSON(interface{}) error { return nil }
func (nopConn) Close() error                { return nil }

func TestCreateAndGetTable(t *testing.T) {
	tm := NewTableManager(ManagerOptions{MaxTables: 2})

	table, err := tm.CreateTable("p1")
	if err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	if table.ID == "" || table.Name == "" || table.OwnerID != "p1" {
		t.Fatalf("table = %+v", table)
	}
	got, err := tm.GetTable(table.ID)
	if err != nil || got != table {
		t.Fatalf("GetTable = %v, %v", got, err)
	}
	if _, err := tm.GetTable("nope"); !errors.Is(err, ErrTableNotFound) {
		t.Fatalf("missing table: got %v", err)
	}

	if _, err := tm.CreateTable("p2"); err != nil {
		t.Fatalf("second table: %v", err)
	}
	if _, err := tm.CreateTable("p3"); !errors.Is(err, ErrTooManyTables) {
		t.Fatalf("limit: got %v, want ErrTooManyTables", err)
	}

	if err := tm.RemoveTable(table.ID); err != nil {
		t.Fatalf("RemoveTable: %v", err)
	}
	if err := tm.RemoveTable(table.ID); !errors.Is(err, ErrTableNotFound) {
		t.Fatalf("second RemoveTable: got %v", err)
	}
	if tm.Count() != 1 {
		t.Fatalf("count = %d", tm.Count())
	}
}

func TestReapIdleKeepsWatchedTables(t *testing.T) {
	tm := NewTableManager(ManagerOptions{})
	idle, _ := tm.CreateTable("p1")
	watched, _ := tm.CreateTable("p2")
	if err := watched.RegisterViewer(model.NewViewer("v1", "p2", nopConn{})); err != nil {
		t.Fatalf("RegisterViewer: %v", err)
	}

	if n := tm.ReapIdle(time.Hour); n != 0 {
		t.Fatalf("fresh tables reaped: %d", n)
	}
	if n := tm.ReapIdle(-time.Second); n != 1 {
		t.Fatalf("reaped %d, want 1", n)
	}
	if _, err := tm.GetTable(idle.ID); !errors.Is(err, ErrTableNotFound) {
		t.Fatalf("idle table survived: %v", err)
	}
	if _, err := tm.GetTable(watched.ID); err != nil {
		t.Fatalf("watched table reaped: %v", err)
	}
}

func TestReaperLoop(t *testing.T) {
	tm := NewTableManager(ManagerOptions{IdleTTL: time.Nanosecond, ReapInterval: 5 * time.Millisecond})
	if _, err := tm.CreateTable("p1"); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	tm.Start(context.Background())
	defer tm.Close()

	deadline := time.Now().Add(2 * time.Second)
	for tm.Count() > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("reaper never removed the idle table")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCloseDropsTables(t *testing.T) {
	tm := NewTableManager(ManagerOptions{})
	tm.Start(context.Background())
	if _, err := tm.CreateTable("p1"); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	tm.Close()
	tm.Close()
	if tm.Count() != 0 {
		t.Fatalf("count after Close = %d", tm.Count())
	}
}
