package controller

import (
	"strings"

	"github.com/benbeisheim/clickchess-backend/internal/middleware"
	"github.com/benbeisheim/clickchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
)

type AppOptions struct {
	AllowedOrigins []string
}

// NewApp builds the fiber application with every REST and WebSocket route.
func NewApp(tableService *service.TableService, opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	if len(opts.AllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(opts.AllowedOrigins, ", "),
			AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
			AllowMethods:     "GET, POST, OPTIONS",
			AllowCredentials: true,
		}))
	}
	app.Use(middleware.RequestLogger())

	// Initialize controllers
	tableController := NewTableController(tableService)
	wsController := NewWebSocketController(tableService)

	// Set up WebSocket routes
	wsRoutes := app.Group("/ws", middleware.EnsurePlayerID())
	wsRoutes.Get("/table/:tableId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         originsOrAll(opts.AllowedOrigins),
	}))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())

	tableRoutes := api.Group("/table")
	tableRoutes.Post("/", tableController.CreateTable)
	tableRoutes.Get("/:tableId", tableController.GetTableState)
	tableRoutes.Post("/:tableId/hover", tableController.Hover)
	tableRoutes.Post("/:tableId/click", tableController.Click)
	tableRoutes.Post("/:tableId/reset", tableController.Reset)
	tableRoutes.Get("/:tableId/board.png", tableController.BoardPNG)

	return app
}

func originsOrAll(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
