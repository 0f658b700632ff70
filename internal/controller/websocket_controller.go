package controller

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/benbeisheim/clickchess-backend/internal/obslog"
	"github.com/benbeisheim/clickchess-backend/internal/service"
	"github.com/benbeisheim/clickchess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WebSocketController struct {
	tableService *service.TableService
}

func NewWebSocketController(tableService *service.TableService) *WebSocketController {
	return &WebSocketController{
		tableService: tableService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	tableID := c.Params("tableId")
	playerID, _ := c.Locals("playerID").(string)
	viewer := model.NewViewer(uuid.New().String(), playerID, c)

	// Register this connection with the table; it receives the current state first
	if err := wsc.tableService.RegisterConnection(tableID, viewer); err != nil {
		obslog.L().Warn("ws_register_failed",
			zap.String("table_id", tableID),
			zap.String("player_id", playerID),
			zap.Error(err),
		)
		wsc.sendError(viewer, err.Error())
		_ = c.Close()
		return
	}
	defer wsc.tableService.UnregisterConnection(tableID, viewer.ID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			obslog.L().Debug("ws_read_closed", zap.String("viewer_id", viewer.ID), zap.Error(err))
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(viewer, "malformed message")
			continue
		}
		if err := wsc.handleMessage(tableID, playerID, msg); err != nil {
			obslog.L().Debug("ws_message_failed",
				zap.String("table_id", tableID),
				zap.String("type", string(msg.Type)),
				zap.Error(err),
			)
			wsc.sendError(viewer, err.Error())
		}
	}
}

// State changes reach the client through the table broadcast, so handlers
// only report errors.
func (wsc *WebSocketController) handleMessage(tableID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeHover:
		hover, err := decodeHover(bytes.TrimSpace(msg.Payload))
		if err != nil {
			return err
		}
		_, err = wsc.tableService.Hover(tableID, playerID, hover)
		return err

	case ws.MessageTypeClick:
		_, _, err := wsc.tableService.Click(tableID, playerID)
		return err

	case ws.MessageTypeReset:
		_, err := wsc.tableService.Reset(tableID, playerID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(v *model.Viewer, errorMsg string) {
	payload, _ := json.Marshal(ws.ErrorPayload{Error: errorMsg})
	_ = v.Send(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: json.RawMessage(payload),
	})
}
