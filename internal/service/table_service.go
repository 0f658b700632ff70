package service

import (
	"context"
	"fmt"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/benbeisheim/clickchess-backend/internal/render"
)

type TableService struct {
	tableManager *TableManager
	renderer     *render.Renderer
}

func NewTableService(tableManager *TableManager, renderer *render.Renderer) *TableService {
	return &TableService{
		tableManager: tableManager,
		renderer:     renderer,
	}
}

func (ts *TableService) CreateTable(playerID string) (model.TableState, error) {
	table, err := ts.tableManager.CreateTable(playerID)
	if err != nil {
		return model.TableState{}, fmt.Errorf("failed to create table: %w", err)
	}
	return table.Snapshot(), nil
}

// ownedTable looks up a table and checks that playerID owns it.
func (ts *TableService) ownedTable(tableID, playerID string) (*model.Table, error) {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return nil, err
	}
	if table.OwnerID != playerID {
		return nil, fmt.Errorf("player %s on table %s: %w", playerID, tableID, model.ErrNotOwner)
	}
	return table, nil
}

func (ts *TableService) GetTableState(tableID, playerID string) (model.TableState, error) {
	table, err := ts.ownedTable(tableID, playerID)
	if err != nil {
		return model.TableState{}, err
	}
	return table.Snapshot(), nil
}

func (ts *TableService) Hover(tableID, playerID string, hover *model.Hover) (model.TableState, error) {
	table, err := ts.ownedTable(tableID, playerID)
	if err != nil {
		return model.TableState{}, err
	}
	if err := table.SetHover(hover); err != nil {
		return model.TableState{}, err
	}
	return table.Snapshot(), nil
}

func (ts *TableService) Click(tableID, playerID string) (model.Outcome, model.TableState, error) {
	table, err := ts.ownedTable(tableID, playerID)
	if err != nil {
		return model.Outcome{}, model.TableState{}, err
	}
	out, err := table.Click()
	if err != nil {
		return model.Outcome{}, table.Snapshot(), err
	}
	return out, table.Snapshot(), nil
}

func (ts *TableService) Reset(tableID, playerID string) (model.TableState, error) {
	table, err := ts.ownedTable(tableID, playerID)
	if err != nil {
		return model.TableState{}, err
	}
	table.Reset()
	return table.Snapshot(), nil
}

func (ts *TableService) RenderPNG(ctx context.Context, tableID, playerID string) ([]byte, error) {
	table, err := ts.ownedTable(tableID, playerID)
	if err != nil {
		return nil, err
	}
	return ts.renderer.PNG(ctx, render.ViewFromState(table.Snapshot()))
}

func (ts *TableService) RegisterConnection(tableID string, viewer *model.Viewer) error {
	table, err := ts.ownedTable(tableID, viewer.PlayerID)
	if err != nil {
		return err
	}
	return table.RegisterViewer(viewer)
}

func (ts *TableService) UnregisterConnection(tableID, viewerID string) {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return
	}
	table.UnregisterViewer(viewerID)
}
