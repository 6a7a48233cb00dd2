// Package sprite reads CHIP-8 sprite data out of an assembled image and
// renders it for preview.
package sprite

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// Width is fixed by the DRW instruction: one byte per row.
const Width = 8

// MaxRows is the largest height DRW accepts.
const MaxRows = 15

var (
	ErrRows   = errors.New("sprite height out of range")
	ErrBounds = errors.New("sprite extends past the end of the image")
)

var (
	On  = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	Off = color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xFF}
)

type Sprite struct {
	Rows []byte
}

// Extract copies rows bytes starting at offset, an offset into the image
// rather than a load address.
func Extract(img []byte, offset uint16, rows int) (Sprite, error) {
	if rows < 1 || rows > MaxRows {
		return Sprite{}, fmt.Errorf("%w: %d rows (1..%d)", ErrRows, rows, MaxRows)
	}
	end := int(offset) + rows
	if end > len(img) {
		return Sprite{}, fmt.Errorf("%w: 0x%X+%d > %d bytes", ErrBounds, offset, rows, len(img))
	}
	out := make([]byte, rows)
	copy(out, img[offset:end])
	return Sprite{Rows: out}, nil
}

func (s Sprite) Height() int { return len(s.Rows) }

// Pixel reports whether the bit at (x, y) is set, MSB leftmost.
func (s Sprite) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= len(s.Rows) {
		return false
	}
	return s.Rows[y]&(0x80>>uint(x)) != 0
}

// Image draws the sprite at one pixel per bit.
func (s Sprite) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Width, s.Height()))
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < Width; x++ {
			if s.Pixel(x, y) {
				img.SetRGBA(x, y, On)
			} else {
				img.SetRGBA(x, y, Off)
			}
		}
	}
	return img
}

// Render scales the sprite up without smoothing.
func (s Sprite) Render(scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	src := s.Image()
	dst := image.NewRGBA(image.Rect(0, 0, Width*scale, s.Height()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func (s Sprite) String() string {
	var out []byte
	for y := range s.Rows {
		for x := 0; x < Width; x++ {
			if s.Pixel(x, y) {
				out = append(out, '#')
			} else {
				out = append(out, '.')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}

func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
