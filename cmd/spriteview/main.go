package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"

	"chip8asm/pkg/config"
	"chip8asm/pkg/sprite"
	"chip8asm/pkg/utils"
)

const (
	scale        = 16
	captionSpace = 20
)

type Game struct {
	sheet     *sheet
	spriteImg *ebiten.Image // redrawn when the cursor moves
	dirty     bool
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		g.sheet.step(1)
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		g.sheet.step(-1)
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.spriteImg == nil || g.dirty {
		s, err := g.sheet.current()
		if err != nil {
			ebitenutil.DebugPrint(screen, err.Error())
			return
		}
		g.spriteImg = ebiten.NewImageFromImage(s.Render(scale))
		g.dirty = false
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, captionSpace)
	screen.DrawImage(g.spriteImg, op)
	ebitenutil.DebugPrintAt(screen, g.sheet.caption(), 2, 2)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 20 * scale, sprite.MaxRows*scale + captionSpace
}

func main() {
	var (
		inPath  string
		label   string
		rows    int
		pngPath string
		count   int
		cols    int
	)

	cmd := &cobra.Command{
		Use:   "spriteview --in prog.asm --label name [--rows n] [--png out.png]",
		Short: "Preview CHIP-8 sprite data from an assembly source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := config.FromEnvironment()
			if err != nil {
				return err
			}
			logger := opts.NewLogger(os.Stderr)

			fullPath, _, err := utils.GetPathInfo(inPath)
			if err != nil {
				return err
			}
			source, err := utils.ReadSource(fullPath)
			if err != nil {
				return err
			}
			s, err := loadSheet(source, inPath, label, rows, logger)
			if err != nil {
				return err
			}

			if pngPath != "" {
				if pngPath == "auto" {
					pngPath = utils.DefaultOutputPath(inPath, ".png")
				}
				return writeSheetPNG(s, count, cols, pngPath)
			}

			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			ebiten.SetWindowSize(40*scale, 2*(sprite.MaxRows*scale+captionSpace))
			ebiten.SetWindowTitle("CHIP-8 Sprite View")
			return ebiten.RunGame(&Game{sheet: s})
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "input assembly file path")
	cmd.Flags().StringVar(&label, "label", "", "label of the first sprite row")
	cmd.Flags().IntVar(&rows, "rows", 5, "sprite height in rows (1-15)")
	cmd.Flags().IntVar(&count, "count", 1, "number of consecutive sprites to export")
	cmd.Flags().IntVar(&cols, "cols", 8, "sprites per row in an exported sheet")
	cmd.Flags().StringVar(&pngPath, "png", "", "write the sprite to a PNG instead of opening a window; \"auto\" names it after the input")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("label")

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func writeSheetPNG(s *sheet, count, cols int, path string) error {
	sprites, err := s.sprites(count)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	defer f.Close()
	if err := sprite.WritePNG(f, sprite.RenderSheet(sprites, cols, scale)); err != nil {
		return err
	}
	fmt.Printf("wrote %d sprite(s) of %dx%d -> %s\n", len(sprites), sprite.Width, s.rows, path)
	return nil
}
