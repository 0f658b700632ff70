package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/benbeisheim/clickchess-backend/internal/config"
	"github.com/benbeisheim/clickchess-backend/internal/model"
)

// Palette maps board state to square colors.
type Palette struct {
	Light    color.RGBA
	Dark     color.RGBA
	Hover    color.RGBA
	Selected color.RGBA
	Target   color.RGBA
}

var DefaultPalette = Palette{
	Light:    color.RGBA{255, 230, 230, 255},
	Dark:     color.RGBA{0, 26, 26, 255},
	Hover:    color.RGBA{204, 77, 77, 255},
	Selected: color.RGBA{230, 26, 26, 255},
	Target:   color.RGBA{46, 160, 67, 255},
}

// View is everything the renderers read. It is never mutated by them.
type View struct {
	Title    string
	Pieces   []model.Piece
	Hover    *model.Square
	Selected *model.Square
	Targets  []model.Square
}

func ViewFromState(state model.TableState) View {
	return View{
		Title:    state.Name,
		Pieces:   state.Pieces,
		Hover:    state.HoverSquare,
		Selected: state.SelectedSquare,
		Targets:  state.LegalTargets,
	}
}

// SquareColor is the per-frame recoloring rule: hovered beats selected, which
// beats the checkerboard base.
func (p Palette) SquareColor(sq model.Square, v View) color.RGBA {
	switch {
	case v.Hover != nil && *v.Hover == sq:
		return p.Hover
	case v.Selected != nil && *v.Selected == sq:
		return p.Selected
	case sq.IsLight():
		return p.Light
	default:
		return p.Dark
	}
}

func (v View) isTarget(sq model.Square) bool {
	for _, t := range v.Targets {
		if t == sq {
			return true
		}
	}
	return false
}

// PaletteFromConfig overlays configured colors on DefaultPalette.
func PaletteFromConfig(cfg config.PaletteConfig) (Palette, error) {
	p := DefaultPalette
	for _, f := range []struct {
		raw string
		dst *color.RGBA
	}{
		{cfg.Light, &p.Light},
		{cfg.Dark, &p.Dark},
		{cfg.Hover, &p.Hover},
		{cfg.Selected, &p.Selected},
		{cfg.Target, &p.Target},
	} {
		if strings.TrimSpace(f.raw) == "" {
			continue
		}
		c, err := ParseHexColor(f.raw)
		if err != nil {
			return Palette{}, err
		}
		*f.dst = c
	}
	return p, nil
}

// ParseHexColor reads "#rrggbb" or "rrggbb".
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 255}, nil
}
