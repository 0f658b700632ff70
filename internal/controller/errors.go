package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/benbeisheim/clickchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

var errBadRequest = errors.New("bad request")

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrTableNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotOwner):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrTooManyTables):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, model.ErrInvalidReference), errors.Is(err, errBadRequest):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func writeError(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

type hoverRequest struct {
	Kind   model.EntityKind `json:"kind"`
	Square *model.Square    `json:"square"`
	At     string           `json:"at"`
	Piece  *model.PieceID   `json:"piece"`
}

// decodeHover reads a hover body. An empty body or JSON null clears the hover.
// Squares may be given as {"file":4,"rank":1} or algebraically via "at".
func decodeHover(raw []byte) (*model.Hover, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var req hoverRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("decode hover: %v: %w", err, errBadRequest)
	}

	switch req.Kind {
	case model.EntitySquare:
		if req.At != "" {
			sq, err := model.ParseSquare(req.At)
			if err != nil {
				return nil, fmt.Errorf("%v: %w", err, model.ErrInvalidReference)
			}
			return model.HoverSquare(sq), nil
		}
		if req.Square == nil {
			return nil, fmt.Errorf("square hover needs a square: %w", errBadRequest)
		}
		return model.HoverSquare(*req.Square), nil
	case model.EntityPiece:
		if req.Piece == nil {
			return nil, fmt.Errorf("piece hover needs a piece: %w", errBadRequest)
		}
		return model.HoverPiece(*req.Piece), nil
	}
	return nil, fmt.Errorf("unknown hover kind %q: %w", req.Kind, errBadRequest)
}
