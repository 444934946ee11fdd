package assets

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/Garsondee/Cell-Touch/internal/game"
)

var (
	titleTop    = color.RGBA{R: 18, G: 32, B: 72, A: 255}
	titleBottom = color.RGBA{R: 20, G: 110, B: 130, A: 255}
	bgTop       = color.RGBA{R: 14, G: 18, B: 30, A: 255}
	bgBottom    = color.RGBA{R: 30, G: 40, B: 62, A: 255}
	stageFill   = color.RGBA{R: 10, G: 12, B: 20, A: 255}
	cellLine    = color.RGBA{R: 60, G: 80, B: 110, A: 255}
	tileAccent  = color.RGBA{R: 135, G: 206, B: 235, A: 255}
)

// GenerateTitle draws stand-in title art: a blue gradient with a row of
// lit cells above the prompt line.
func GenerateTitle() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, game.CanvasWidth, game.CanvasHeight))
	verticalGradient(img, titleTop, titleBottom)
	const tile = 48
	const gap = 12
	left := (game.CanvasWidth - (game.GridCols*tile + (game.GridCols-1)*gap)) / 2
	for i := 0; i < game.GridCols; i++ {
		x := left + i*(tile+gap)
		r := image.Rect(x, 120, x+tile, 120+tile)
		if i%2 == 0 {
			draw.Draw(img, r, image.NewUniform(tileAccent), image.Point{}, draw.Src)
		}
		outline(img, r, color.White)
	}
	return img
}

// GenerateBackground draws stand-in background art: a dark gradient with the
// stage and its cell borders marked out.
func GenerateBackground() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, game.CanvasWidth, game.CanvasHeight))
	verticalGradient(img, bgTop, bgBottom)
	stage := image.Rect(game.StageLeft, game.StageTop, game.StageLeft+game.StageWidth, game.StageTop+game.StageHeight)
	draw.Draw(img, stage, image.NewUniform(stageFill), image.Point{}, draw.Src)
	for row := 0; row < game.GridRows; row++ {
		for col := 0; col < game.GridCols; col++ {
			x := game.StageLeft + col*game.CellSize
			y := game.StageTop + row*game.CellSize
			outline(img, image.Rect(x, y, x+game.CellSize, y+game.CellSize), cellLine)
		}
	}
	return img
}

func verticalGradient(img *image.RGBA, top, bottom color.RGBA) {
	b := img.Bounds()
	h := b.Dy()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		t := float64(y-b.Min.Y) / float64(h-1)
		c := color.RGBA{
			R: lerp8(top.R, bottom.R, t),
			G: lerp8(top.G, bottom.G, t),
			B: lerp8(top.B, bottom.B, t),
			A: 255,
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func outline(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// Average returns the mean colour of img, sampling every fourth pixel. The
// terminal front-end uses it to stand in for an image it cannot draw.
func Average(img image.Image) color.RGBA {
	b := img.Bounds()
	var r, g, bl, n uint64
	for y := b.Min.Y; y < b.Max.Y; y += 4 {
		for x := b.Min.X; x < b.Max.X; x += 4 {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			r += uint64(cr >> 8)
			g += uint64(cg >> 8)
			bl += uint64(cb >> 8)
			n++
		}
	}
	if n == 0 {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(bl / n), A: 255}
}
