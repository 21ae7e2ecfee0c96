package main

import (
	"bytes"
	"image/color"
	"math"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontSourceOnce sync.Once
	fontSource     *text.GoTextFaceSource
)

// uiFontSource returns the shared Go Regular face source, or nil if it could
// not be parsed
func uiFontSource() *text.GoTextFaceSource {
	fontSourceOnce.Do(func() {
		s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return
		}
		fontSource = s
	})
	return fontSource
}

// uiFace returns a face of the given size, or nil without a font source
func uiFace(size float64) *text.GoTextFace {
	src := uiFontSource()
	if src == nil {
		return nil
	}
	return &text.GoTextFace{Source: src, Size: size}
}

// DrawText draws text with its top-left corner at x, y
func DrawText(screen *ebiten.Image, textString string, face *text.GoTextFace, x, y float64, textColor color.Color) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, face, op)
}

// DrawCenteredText draws text centered in r
func DrawCenteredText(screen *ebiten.Image, textString string, face *text.GoTextFace, r rect, textColor color.Color) {
	if face == nil {
		return
	}
	w, h := text.Measure(textString, face, 0)
	DrawText(screen, textString, face, r.X+(r.W-w)/2, r.Y+(r.H-h)/2, textColor)
}

// DrawFilledRect draws a filled rectangle
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), c, false)
}

// DrawStrokeRect draws a rectangle outline
func DrawStrokeRect(screen *ebiten.Image, r rect, width float64, c color.Color) {
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), float32(width), c, false)
}

// fitScale returns the scale that fits an iw x ih image into maxW x maxH.
// Without upscale, small images keep their natural size.
func fitScale(iw, ih, maxW, maxH int, upscale bool) float64 {
	if iw <= 0 || ih <= 0 || maxW <= 0 || maxH <= 0 {
		return 1
	}
	scale := math.Min(float64(maxW)/float64(iw), float64(maxH)/float64(ih))
	if !upscale && scale > 1 {
		return 1
	}
	return scale
}

// CreateErrorImage creates the failure indicator shown in place of a page
// that could not be loaded
func CreateErrorImage(width, height int, filename, errorMsg string) *ebiten.Image {
	if width <= 0 || height <= 0 {
		width, height = 400, 300
	}

	errorImg := ebiten.NewImage(width, height)
	errorImg.Fill(color.RGBA{120, 30, 30, 255})
	DrawStrokeRect(errorImg, rect{1.5, 1.5, float64(width) - 3, float64(height) - 3}, 3, colorWhite)

	face := uiFace(20)
	if face == nil {
		return errorImg
	}

	fileText := "File: " + filepath.Base(filename)
	reasonText := "Reason: " + errorMsg

	// Rough estimate: 10px per character
	maxChars := (width - 20) / 10
	if len(fileText) > maxChars {
		fileText = fileText[:maxChars-3] + "..."
	}
	if len(reasonText) > maxChars {
		reasonText = reasonText[:maxChars-3] + "..."
	}

	DrawText(errorImg, "ERROR", face, 10, 20, colorWhite)
	DrawText(errorImg, fileText, face, 10, 50, colorWhite)
	DrawText(errorImg, reasonText, face, 10, 80, colorWhite)
	return errorImg
}
