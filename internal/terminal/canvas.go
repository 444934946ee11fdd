// Package terminal is the tcell front-end. The 640x480 canvas is stretched
// over whatever grid of cells the terminal has.
package terminal

import (
	"image"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Cell-Touch/internal/assets"
	"github.com/Garsondee/Cell-Touch/internal/game"
	"github.com/Garsondee/Cell-Touch/internal/render"
)

// Surface is the part of tcell.Screen the canvas draws through.
type Surface interface {
	Size() (int, int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Canvas implements render.Renderer on a cell grid. Images become a flat
// fill of their average colour; text is drawn at its glyph centre.
type Canvas struct {
	surface Surface
	cols    int
	rows    int
	fills   map[render.Asset]tcell.Color
	bg      []tcell.Color // background per cell, so text keeps what is under it
}

// NewCanvas sizes a canvas to s.
func NewCanvas(s Surface) *Canvas {
	c := &Canvas{
		surface: s,
		fills:   make(map[render.Asset]tcell.Color),
	}
	c.Resize()
	return c
}

// SetImage records the colour that stands in for a.
func (c *Canvas) SetImage(a render.Asset, img image.Image) {
	c.fills[a] = toColor(assets.Average(img))
}

// Resize picks up the surface's current size. Call it before each frame.
func (c *Canvas) Resize() {
	cols, rows := c.surface.Size()
	if cols != c.cols || rows != c.rows || c.bg == nil {
		c.cols, c.rows = cols, rows
		c.bg = make([]tcell.Color, max(cols*rows, 0))
	}
}

// scale is cells per canvas pixel on each axis.
func (c *Canvas) scale() (sx, sy float64) {
	return float64(c.cols) / game.CanvasWidth, float64(c.rows) / game.CanvasHeight
}

// ToCell maps a canvas point to the cell containing it.
func (c *Canvas) ToCell(x, y float64) (col, row int) {
	sx, sy := c.scale()
	return int(math.Floor(x * sx)), int(math.Floor(y * sy))
}

// ToCanvas maps a cell to the canvas point at its centre.
func (c *Canvas) ToCanvas(col, row int) (x, y float64) {
	sx, sy := c.scale()
	if sx == 0 || sy == 0 {
		return 0, 0
	}
	return (float64(col) + 0.5) / sx, (float64(row) + 0.5) / sy
}

func (c *Canvas) DrawImage(a render.Asset, x, y float64) {
	fill, ok := c.fills[a]
	if !ok {
		return
	}
	c.fillCells(x, y, game.CanvasWidth, game.CanvasHeight, fill)
}

func (c *Canvas) DrawRect(x, y, w, h float64, stroke, fill color.Color) {
	col0, row0 := c.ToCell(x, y)
	col1, row1 := c.ToCell(x+w, y+h)
	col1, row1 = max(col1-1, col0), max(row1-1, row0)

	bg := tcell.ColorDefault
	if fill != nil {
		bg = toColor(fill)
		c.fillCells(x, y, w, h, bg)
	}
	if stroke == nil {
		return
	}
	fg := toColor(stroke)
	for col := col0; col <= col1; col++ {
		c.set(col, row0, '─', fg, bg)
		c.set(col, row1, '─', fg, bg)
	}
	for row := row0; row <= row1; row++ {
		c.set(col0, row, '│', fg, bg)
		c.set(col1, row, '│', fg, bg)
	}
	c.set(col0, row0, '┌', fg, bg)
	c.set(col1, row0, '┐', fg, bg)
	c.set(col0, row1, '└', fg, bg)
	c.set(col1, row1, '┘', fg, bg)
}

// DrawText ignores shadows; a few pixels of offset is less than a cell.
func (c *Canvas) DrawText(s string, x, y float64, style render.TextStyle) {
	runes := []rune(s)
	sx, _ := c.scale()
	if style.MaxWidth > 0 {
		limit := int(style.MaxWidth * sx)
		if limit < len(runes) {
			runes = runes[:max(limit, 0)]
		}
	}

	switch style.Baseline {
	case render.BaselineTop:
		y += style.Size / 2
	case render.BaselineBottom:
		y -= style.Size / 2
	}
	col, row := c.ToCell(x, y)
	switch style.Align {
	case render.AlignCenter:
		col -= len(runes) / 2
	case render.AlignRight:
		col -= len(runes)
	}

	fg := toColor(style.Color)
	for i, r := range runes {
		cx := col + i
		if !c.inside(cx, row) {
			continue
		}
		st := tcell.StyleDefault.Foreground(fg).Background(c.bg[row*c.cols+cx])
		c.surface.SetContent(cx, row, r, nil, st)
	}
}

func (c *Canvas) fillCells(x, y, w, h float64, bg tcell.Color) {
	col0, row0 := c.ToCell(x, y)
	col1, row1 := c.ToCell(x+w, y+h)
	for row := row0; row < row1; row++ {
		for col := col0; col < col1; col++ {
			c.set(col, row, ' ', tcell.ColorDefault, bg)
		}
	}
}

func (c *Canvas) set(col, row int, r rune, fg, bg tcell.Color) {
	if !c.inside(col, row) {
		return
	}
	c.bg[row*c.cols+col] = bg
	c.surface.SetContent(col, row, r, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
}

func (c *Canvas) inside(col, row int) bool {
	return col >= 0 && row >= 0 && col < c.cols && row < c.rows
}

func toColor(clr color.Color) tcell.Color {
	if clr == nil {
		return tcell.ColorDefault
	}
	r, g, b, _ := clr.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
