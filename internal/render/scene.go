package render

import (
	"image/color"
	"strconv"

	"github.com/Garsondee/Cell-Touch/internal/game"
)

// Palette.
var (
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black   = color.RGBA{A: 255}
	Red     = color.RGBA{R: 255, A: 255}
	SkyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}
)

const (
	guideText  = "Click anywhere to start."
	goText     = "GO!"
	timeUpText = "TIME UP!"
)

var (
	labelStyle = TextStyle{Size: 16, Color: White, Align: AlignLeft, Baseline: BaselineTop}
	valueStyle = TextStyle{Size: 16, Color: White, Align: AlignRight, Baseline: BaselineTop}
	guideStyle = TextStyle{Size: 32, Color: White, Align: AlignCenter, Baseline: BaselineMiddle}
	// bannerStyle is shared by the countdown numeral and the time-up banner.
	bannerStyle = TextStyle{
		Size:     384,
		Color:    White,
		Align:    AlignCenter,
		Baseline: BaselineTop,
		Shadow:   &Shadow{Color: Black, OffsetX: 5, OffsetY: 5, Blur: 20},
		MaxWidth: game.StageWidth,
	}
)

// Draw issues the draw calls for s. It reads s only; the state is passed by
// value so nothing here can reach back into the controller.
func Draw(r Renderer, s game.State) {
	switch s.Phase {
	case game.PhaseTitle:
		drawTitle(r, s)
		drawScore(r, s)
		drawHighScore(r, s)
	case game.PhaseCountdown:
		r.DrawImage(AssetBackground, 0, 0)
		drawScore(r, s)
		drawHighScore(r, s)
		drawCount(r, s)
		drawRemainingTime(r, s)
	case game.PhaseActive:
		r.DrawImage(AssetBackground, 0, 0)
		drawScore(r, s)
		drawHighScore(r, s)
		drawMap(r, s)
		drawRemainingTime(r, s)
	case game.PhaseGameOver:
		r.DrawImage(AssetBackground, 0, 0)
		drawScore(r, s)
		drawHighScore(r, s)
		drawMap(r, s)
		drawRemainingTime(r, s)
		r.DrawText(timeUpText, game.CanvasWidth/2, game.StageTop, bannerStyle)
	}
}

func drawTitle(r Renderer, s game.State) {
	r.DrawImage(AssetTitle, 0, 0)
	if !s.ShowGuide {
		return
	}
	r.DrawText(guideText, game.CanvasWidth/2, game.CanvasHeight/2, guideStyle)
}

func drawScore(r Renderer, s game.State) {
	r.DrawText("SCORE", 16, 16, labelStyle)
	r.DrawText(strconv.Itoa(s.Score), 208, 32, valueStyle)
}

func drawHighScore(r Renderer, s game.State) {
	r.DrawText("HIGH SCORE", 432, 16, labelStyle)
	r.DrawText(strconv.Itoa(s.HighScore), 624, 32, valueStyle)
}

func drawCount(r Renderer, s game.State) {
	label := goText
	if s.Count > 0 {
		label = strconv.Itoa(s.Count)
	}
	r.DrawText(label, game.CanvasWidth/2, game.StageTop, bannerStyle)
}

func drawRemainingTime(r Renderer, s game.State) {
	style := TextStyle{Size: 48, Color: White, Align: AlignCenter, Baseline: BaselineMiddle}
	if s.LowTime() {
		style.Color = Red
	}
	r.DrawText(strconv.Itoa(s.RemainingTime), game.CanvasWidth/2, 40, style)
}

func drawMap(r Renderer, s game.State) {
	for _, ref := range s.Targets.Cells() {
		left := float64(game.StageLeft + game.CellSize*ref.Col)
		top := float64(game.StageTop + game.CellSize*ref.Row)
		r.DrawRect(left, top, game.CellSize, game.CellSize, White, SkyBlue)
	}
}
