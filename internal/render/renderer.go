// Package render defines the drawing contract front-ends implement and the
// scene function that turns a game state into draw calls.
package render

import "image/color"

// Asset names one of the two images a front-end must have loaded before the
// title screen can show.
type Asset int

const (
	AssetTitle Asset = iota
	AssetBackground
)

func (a Asset) String() string {
	switch a {
	case AssetTitle:
		return "title"
	case AssetBackground:
		return "background"
	default:
		return "unknown"
	}
}

// Align is the horizontal anchor of a text draw.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Baseline is the vertical anchor of a text draw.
type Baseline int

const (
	BaselineTop Baseline = iota
	BaselineMiddle
	BaselineBottom
)

// Shadow is a drop shadow behind text.
type Shadow struct {
	Color   color.Color
	OffsetX float64
	OffsetY float64
	Blur    float64
}

// TextStyle carries everything a text draw needs besides the string and
// anchor point. MaxWidth, when positive, squeezes wider text horizontally to
// fit.
type TextStyle struct {
	Size     float64 // pixel height of the font
	Color    color.Color
	Align    Align
	Baseline Baseline
	Shadow   *Shadow
	MaxWidth float64
}

// Renderer draws in canvas coordinates (640x480, origin top-left).
type Renderer interface {
	DrawImage(asset Asset, x, y float64)
	DrawRect(x, y, w, h float64, stroke, fill color.Color)
	DrawText(text string, x, y float64, style TextStyle)
}
