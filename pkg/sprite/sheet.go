package sprite

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"chip8asm/pkg/grid"
)

// ExtractSheet reads count sprites of equal height laid out back to back.
func ExtractSheet(img []byte, offset uint16, rows, count int) ([]Sprite, error) {
	if count < 1 {
		return nil, fmt.Errorf("sprite count must be positive, got %d", count)
	}
	out := make([]Sprite, 0, count)
	for i := 0; i < count; i++ {
		s, err := Extract(img, uint16(int(offset)+i*rows), rows)
		if err != nil {
			return nil, fmt.Errorf("sprite %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// RenderSheet tiles sprites cols to a row, one pixel of gap between cells.
func RenderSheet(sprites []Sprite, cols, scale int) *image.RGBA {
	if cols < 1 {
		cols = 1
	}
	if scale < 1 {
		scale = 1
	}
	height := 0
	for _, s := range sprites {
		if s.Height() > height {
			height = s.Height()
		}
	}
	cellW, cellH := (Width+1)*scale, (height+1)*scale
	used := cols
	if len(sprites) < cols {
		used = len(sprites)
	}

	sheet := image.NewRGBA(image.Rect(0, 0, used*cellW, grid.Rows(len(sprites), cols)*cellH))
	draw.Draw(sheet, sheet.Bounds(), image.Black, image.Point{}, draw.Src)
	for i, s := range sprites {
		x, y := grid.GetGridCoords(i, cols)
		tile := s.Render(scale)
		at := image.Pt(x*cellW, y*cellH)
		draw.Draw(sheet, tile.Bounds().Add(at), tile, image.Point{}, draw.Src)
	}
	return sheet
}
