package debug

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only re-measure the text every N frames to reduce allocations.
	updateInterval = 30
)

var (
	hudColor = rl.Green
	logColor = rl.NewColor(200, 200, 200, 255)
	bgColor  = rl.NewColor(0, 0, 0, 140)
)

// Overlay draws the debugger HUD: status and help top-left, recent log lines top-right.
type Overlay struct {
	font       rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	frameCount uint32
	hudWidth   int32
}

// New returns an empty overlay.
func New() *Overlay {
	return &Overlay{}
}

// SetFont sets the font used for the overlay. Zero texture ID = use raylib default.
func (o *Overlay) SetFont(font rl.Font) {
	o.font = font
	o.hudWidth = 0
}

func (o *Overlay) measure(text string) int32 {
	if o.font.Texture.ID != 0 {
		return int32(rl.MeasureTextEx(o.font, text, fontSize, 1).X)
	}
	return rl.MeasureText(text, fontSize)
}

func (o *Overlay) text(text string, x, y int32, c rl.Color) {
	if o.font.Texture.ID != 0 {
		rl.DrawTextEx(o.font, text, rl.NewVector2(float32(x), float32(y)), fontSize, 1, c)
		return
	}
	rl.DrawText(text, x, y, fontSize, c)
}

// Draw renders hud at the top-left over a dark panel and log right-aligned at the top-right.
// Call after the 3D pass and before the terminal.
func (o *Overlay) Draw(hud, log []string) {
	o.frameCount++
	if o.frameCount%updateInterval == 1 || o.hudWidth == 0 {
		o.hudWidth = 0
		for _, line := range hud {
			o.hudWidth = max(o.hudWidth, o.measure(line))
		}
	}
	if len(hud) > 0 {
		rl.DrawRectangle(0, 0, o.hudWidth+2*padding, int32(len(hud)*lineHeight+padding), bgColor)
	}
	y := int32(padding)
	for _, line := range hud {
		o.text(line, padding, y, hudColor)
		y += lineHeight
	}

	screenW := int32(rl.GetScreenWidth())
	y = padding
	for _, line := range log {
		o.text(line, screenW-o.measure(line)-padding, y, logColor)
		y += lineHeight
	}
}
