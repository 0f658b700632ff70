package controller

import (
	"bytes"

	"github.com/benbeisheim/clickchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type TableController struct {
	tableService *service.TableService
}

func NewTableController(tableService *service.TableService) *TableController {
	return &TableController{tableService: tableService}
}

func (tc *TableController) CreateTable(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	state, err := tc.tableService.CreateTable(playerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Table created",
		"table_id": state.ID,
		"state":    state,
	})
}

func (tc *TableController) GetTableState(c *fiber.Ctx) error {
	tableID := c.Params("tableId")
	playerID := c.Locals("playerID").(string)

	state, err := tc.tableService.GetTableState(tableID, playerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(state)
}

func (tc *TableController) Hover(c *fiber.Ctx) error {
	tableID := c.Params("tableId")
	playerID := c.Locals("playerID").(string)

	hover, err := decodeHover(bytes.TrimSpace(c.Body()))
	if err != nil {
		return writeError(c, err)
	}
	state, err := tc.tableService.Hover(tableID, playerID, hover)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(state)
}

func (tc *TableController) Click(c *fiber.Ctx) error {
	tableID := c.Params("tableId")
	playerID := c.Locals("playerID").(string)

	outcome, state, err := tc.tableService.Click(tableID, playerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"outcome": outcome,
		"state":   state,
	})
}

func (tc *TableController) Reset(c *fiber.Ctx) error {
	tableID := c.Params("tableId")
	playerID := c.Locals("playerID").(string)

	state, err := tc.tableService.Reset(tableID, playerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(state)
}

func (tc *TableController) BoardPNG(c *fiber.Ctx) error {
	tableID := c.Params("tableId")
	playerID := c.Locals("playerID").(string)

	img, err := tc.tableService.RenderPNG(c.UserContext(), tableID, playerID)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Type("png")
	return c.Send(img)
}
