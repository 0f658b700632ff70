package main

import (
	"context"
	"fmt"
	"os"

	"github.com/benbeisheim/clickchess-backend/internal/config"
	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/benbeisheim/clickchess-backend/internal/obslog"
	"github.com/benbeisheim/clickchess-backend/internal/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"
)

const statusHeight = 24

type Game struct {
	table    *model.Table
	renderer *render.Renderer

	board     *ebiten.Image
	version   uint64
	drawn     bool
	hover     *model.Hover
	mouseDown bool
	resetDown bool
	status    string
}

func NewGame(table *model.Table, renderer *render.Renderer) *Game {
	return &Game{table: table, renderer: renderer}
}

// pick returns the topmost entity under the cursor: the piece on a square
// wins over the square itself, and nil means the cursor is off the board.
func (g *Game) pick(x, y int, state model.TableState) *model.Hover {
	sq, ok := g.renderer.SquareAt(x, y)
	if !ok {
		return nil
	}
	for _, p := range state.Pieces {
		if p.Position == sq {
			return model.HoverPiece(p.ID)
		}
	}
	return model.HoverSquare(sq)
}

func sameHover(a, b *model.Hover) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (g *Game) Update() error {
	resetPressed := ebiten.IsKeyPressed(ebiten.KeyR)
	if resetPressed && !g.resetDown {
		g.table.Reset()
		g.hover = nil
		g.status = "reset"
	}
	g.resetDown = resetPressed

	state := g.table.Snapshot()
	x, y := ebiten.CursorPosition()
	if h := g.pick(x, y, state); !sameHover(h, g.hover) {
		if err := g.table.SetHover(h); err != nil {
			obslog.L().Warn("desktop_hover_failed", zap.Error(err))
		}
		g.hover = h
	}

	mousePressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if mousePressed && !g.mouseDown {
		out, err := g.table.Click()
		if err != nil {
			g.status = err.Error()
		} else {
			g.status = string(out.Result)
			if out.Notation != "" {
				g.status += " " + out.Notation
			}
		}
		// a capture may have removed the hovered piece
		g.hover = nil
	}
	g.mouseDown = mousePressed
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	state := g.table.Snapshot()
	if !g.drawn || state.Version != g.version {
		img, err := g.renderer.Image(context.Background(), render.ViewFromState(state))
		if err != nil {
			obslog.L().Error("desktop_render_failed", zap.Error(err))
			return
		}
		g.board = ebiten.NewImageFromImage(img)
		g.version = state.Version
		g.drawn = true
	}
	screen.DrawImage(g.board, nil)

	line := fmt.Sprintf("%s  %s", state.State, g.status)
	ebitenutil.DebugPrintAt(screen, line, 4, g.renderer.Bounds().Dy()+4)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.renderer.Bounds()
	return b.Dx(), b.Dy() + statusHeight
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := obslog.Init(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	palette, err := render.PaletteFromConfig(cfg.Palette)
	if err != nil {
		obslog.L().Fatal("palette", zap.Error(err))
	}

	renderer := render.NewRenderer(palette, cfg.SquareSize)
	game := NewGame(model.NewTable("desktop", "desktop", "local"), renderer)

	b := renderer.Bounds()
	ebiten.SetWindowSize(b.Dx(), b.Dy()+statusHeight)
	ebiten.SetWindowTitle("Click Chess")
	if err := ebiten.RunGame(game); err != nil {
		obslog.L().Fatal("desktop_run_failed", zap.Error(err))
	}
}
