package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Piece silhouettes on a 45x45 view box. The outer 7 units stay empty so the
// square color remains visible around every piece.
var pieceShapes = map[model.PieceType]string{
	model.Pawn: `<circle cx="22.5" cy="15" r="5.5"/>
<path d="M17 21 L28 21 L30 31 L15 31 Z"/>
<rect x="12" y="31" width="21" height="5"/>`,
	model.Knight: `<path d="M14 36 L31 36 L31 31 L29 31 L28 20 C28 13 23 9 18 10 L14 14 L16 16 L13 20 L15 23 L20 20 L21 23 L16 31 L14 31 Z"/>`,
	model.Bishop: `<circle cx="22.5" cy="10" r="2.5"/>
<path d="M22.5 12 C16 16 15 23 18 28 L27 28 C30 23 29 16 22.5 12 Z"/>
<rect x="13" y="30" width="19" height="6"/>`,
	model.Rook: `<path d="M13 10 L17 10 L17 13 L20.5 13 L20.5 10 L24.5 10 L24.5 13 L28 13 L28 10 L32 10 L32 16 L29 18 L29 30 L16 30 L16 18 L13 16 Z"/>
<rect x="12" y="30" width="21" height="6"/>`,
	model.Queen: `<path d="M12 14 L16 27 L18.5 12 L22.5 26 L26.5 12 L29 27 L33 14 L31 31 L14 31 Z"/>
<rect x="13" y="31" width="19" height="5"/>`,
	model.King: `<rect x="21" y="8" width="3" height="9"/>
<rect x="18" y="10.5" width="9" height="3"/>
<path d="M22.5 17 C14 17 12 24 16 30 L29 30 C33 24 31 17 22.5 17 Z"/>
<rect x="13" y="30" width="19" height="6"/>`,
}

func pieceSVG(t model.PieceType, c model.Color) ([]byte, error) {
	shape, ok := pieceShapes[t]
	if !ok {
		return nil, fmt.Errorf("no shape for piece type %q", t)
	}
	fill, stroke := "#f5f0f0", "#1a1a1a"
	if c == model.Black {
		fill, stroke = "#1f2a2a", "#d8d0d0"
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45" width="45" height="45">`)
	fmt.Fprintf(&b, `<g fill="%s" stroke="%s" stroke-width="1.5" stroke-linejoin="round">`, fill, stroke)
	b.WriteString(shape)
	b.WriteString(`</g></svg>`)
	return b.Bytes(), nil
}

type pieceCacheKey struct {
	pieceType model.PieceType
	color     model.Color
	size      int
}

var (
	pieceCache   = map[pieceCacheKey]image.Image{}
	pieceCacheMu sync.RWMutex
)

func renderPieceImage(t model.PieceType, c model.Color, size int) (image.Image, error) {
	key := pieceCacheKey{pieceType: t, color: c, size: size}

	pieceCacheMu.RLock()
	if img, ok := pieceCache[key]; ok {
		pieceCacheMu.RUnlock()
		return img, nil
	}
	pieceCacheMu.RUnlock()

	data, err := pieceSVG(t, c)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse piece svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	pieceCacheMu.Lock()
	pieceCache[key] = img
	pieceCacheMu.Unlock()

	return img, nil
}
