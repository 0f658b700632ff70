package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	boardSquares = 8
	labelMargin  = 18
)

var (
	backgroundColor     = color.RGBA{28, 31, 46, 255}
	coordinateTextColor = color.RGBA{204, 210, 236, 255}
)

// Renderer draws a View as a raster board: rank 8 on top, a-file on the left.
type Renderer struct {
	palette    Palette
	squareSize int
}

func NewRenderer(palette Palette, squareSize int) *Renderer {
	if squareSize <= 0 {
		squareSize = 72
	}
	return &Renderer{palette: palette, squareSize: squareSize}
}

// Origin is the top-left pixel of the a8 square.
func (r *Renderer) Origin() image.Point {
	return image.Point{X: labelMargin, Y: 0}
}

// Bounds is the full image size including coordinate margins.
func (r *Renderer) Bounds() image.Rectangle {
	size := r.squareSize * boardSquares
	return image.Rect(0, 0, size+labelMargin, size+labelMargin)
}

// SquareAt maps a pixel to a board square. It is the inverse used by pickers.
func (r *Renderer) SquareAt(x, y int) (model.Square, bool) {
	o := r.Origin()
	x -= o.X
	y -= o.Y
	size := r.squareSize * boardSquares
	if x < 0 || y < 0 || x >= size || y >= size {
		return model.Square{}, false
	}
	return model.Square{File: x / r.squareSize, Rank: boardSquares - 1 - y/r.squareSize}, true
}

func (r *Renderer) squareRect(sq model.Square) image.Rectangle {
	o := r.Origin()
	x := o.X + sq.File*r.squareSize
	y := o.Y + (boardSquares-1-sq.Rank)*r.squareSize
	return image.Rect(x, y, x+r.squareSize, y+r.squareSize)
}

func (r *Renderer) Image(ctx context.Context, v View) (*image.RGBA, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	img := image.NewRGBA(r.Bounds())
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, imagedraw.Src)

	r.drawSquares(img, v)
	r.drawTargets(img, v)
	if err := r.drawPieces(img, v); err != nil {
		return nil, err
	}
	r.drawCoordinates(img)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return img, nil
}

func (r *Renderer) PNG(ctx context.Context, v View) ([]byte, error) {
	img, err := r.Image(ctx, v)
	if err != nil {
		return nil, err
	}
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return pngBuf.Bytes(), nil
}

func (r *Renderer) drawSquares(dst imagedraw.Image, v View) {
	for file := 0; file < boardSquares; file++ {
		for rank := 0; rank < boardSquares; rank++ {
			sq := model.Square{File: file, Rank: rank}
			clr := r.palette.SquareColor(sq, v)
			imagedraw.Draw(dst, r.squareRect(sq), image.NewUniform(clr), image.Point{}, imagedraw.Src)
		}
	}
}

// drawTargets marks reachable squares with a small centered dot.
func (r *Renderer) drawTargets(img *image.RGBA, v View) {
	radius := r.squareSize / 8
	for _, sq := range v.Targets {
		if !sq.OnBoard() {
			continue
		}
		rect := r.squareRect(sq)
		center := image.Point{X: rect.Min.X + r.squareSize/2, Y: rect.Min.Y + r.squareSize/2}
		drawDisc(img, center, radius, r.palette.Target)
	}
}

func (r *Renderer) drawPieces(dst imagedraw.Image, v View) error {
	for _, p := range v.Pieces {
		if !p.Position.OnBoard() {
			continue
		}
		img, err := renderPieceImage(p.Type, p.Color, r.squareSize)
		if err != nil {
			return err
		}
		imagedraw.Draw(dst, r.squareRect(p.Position), img, image.Point{}, imagedraw.Over)
	}
	return nil
}

func (r *Renderer) drawCoordinates(img *image.RGBA) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(coordinateTextColor),
		Face: basicfont.Face7x13,
	}
	o := r.Origin()
	boardPx := r.squareSize * boardSquares
	for i := 0; i < boardSquares; i++ {
		file := string(rune('a' + i))
		x := o.X + i*r.squareSize + r.squareSize/2 - 3
		drawer.Dot = fixed.P(x, o.Y+boardPx+labelMargin-4)
		drawer.DrawString(file)

		rank := fmt.Sprintf("%d", boardSquares-i)
		y := o.Y + i*r.squareSize + r.squareSize/2 + 5
		drawer.Dot = fixed.P(5, y)
		drawer.DrawString(rank)
	}
}

func drawDisc(img *image.RGBA, center image.Point, radius int, clr color.RGBA) {
	src := image.NewUniform(clr)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			pt := image.Rect(center.X+dx, center.Y+dy, center.X+dx+1, center.Y+dy+1)
			imagedraw.Draw(img, pt, src, image.Point{}, imagedraw.Over)
		}
	}
}
