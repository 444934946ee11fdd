// Package view is the ebiten front-end: a Renderer that paints onto an
// *ebiten.Image and an App that runs the driver and forwards input.
package view

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Garsondee/Cell-Touch/internal/render"
)

// shadowPasses is how many offset copies approximate a blurred shadow.
const shadowPasses = 4

// Canvas implements render.Renderer. Point it at the frame's screen with
// Target before calling render.Draw.
type Canvas struct {
	dst    *ebiten.Image
	images map[render.Asset]*ebiten.Image
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// NewCanvas parses the embedded Go Regular font. Images are added later with
// SetImage once they have been decoded.
func NewCanvas() (*Canvas, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &Canvas{
		images: make(map[render.Asset]*ebiten.Image),
		source: src,
		faces:  make(map[float64]*text.GoTextFace),
	}, nil
}

// SetImage registers the image drawn for a.
func (c *Canvas) SetImage(a render.Asset, img image.Image) {
	c.images[a] = ebiten.NewImageFromImage(img)
}

// Target sets the image subsequent draws land on.
func (c *Canvas) Target(dst *ebiten.Image) *Canvas {
	c.dst = dst
	return c
}

func (c *Canvas) DrawImage(a render.Asset, x, y float64) {
	img, ok := c.images[a]
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	c.dst.DrawImage(img, op)
}

func (c *Canvas) DrawRect(x, y, w, h float64, stroke, fill color.Color) {
	if fill != nil {
		vector.DrawFilledRect(c.dst, float32(x), float32(y), float32(w), float32(h), fill, false)
	}
	if stroke != nil {
		vector.StrokeRect(c.dst, float32(x), float32(y), float32(w), float32(h), 1, stroke, false)
	}
}

func (c *Canvas) DrawText(s string, x, y float64, style render.TextStyle) {
	face := c.face(style.Size)
	w, _ := text.Measure(s, face, 0)
	sx := fitScale(w, style.MaxWidth)

	if sh := style.Shadow; sh != nil {
		c.drawString(s, face, x+sh.OffsetX, y+sh.OffsetY, sx, style, sh.Color, 1)
		if sh.Blur > 0 {
			spread := sh.Blur / shadowPasses
			for i := 1; i <= shadowPasses; i++ {
				d := spread * float64(i)
				c.drawString(s, face, x+sh.OffsetX+d, y+sh.OffsetY+d, sx, style, sh.Color, 1/float32(i+1))
			}
		}
	}
	c.drawString(s, face, x, y, sx, style, style.Color, 1)
}

func (c *Canvas) drawString(s string, face *text.GoTextFace, x, y, sx float64, style render.TextStyle, clr color.Color, alpha float32) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(sx, 1)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(alpha)
	op.LayoutOptions.PrimaryAlign = primaryAlign(style.Align)
	op.LayoutOptions.SecondaryAlign = secondaryAlign(style.Baseline)
	text.Draw(c.dst, s, face, op)
}

func (c *Canvas) face(size float64) *text.GoTextFace {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: c.source, Size: size}
	c.faces[size] = f
	return f
}

// fitScale is the horizontal squeeze that fits width w into limit. A
// non-positive limit means unlimited.
func fitScale(w, limit float64) float64 {
	if limit <= 0 || w <= limit || w == 0 {
		return 1
	}
	return limit / w
}

func primaryAlign(a render.Align) text.Align {
	switch a {
	case render.AlignCenter:
		return text.AlignCenter
	case render.AlignRight:
		return text.AlignEnd
	default:
		return text.AlignStart
	}
}

func secondaryAlign(b render.Baseline) text.Align {
	switch b {
	case render.BaselineMiddle:
		return text.AlignCenter
	case render.BaselineBottom:
		return text.AlignEnd
	default:
		return text.AlignStart
	}
}
