package graphics

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrWindow is returned when raylib could not create the window or its GL context.
var ErrWindow = errors.New("graphics: window not ready")

// Open creates a resizable window. ESC is left to the caller (it toggles the terminal);
// the window closes through its close button.
func Open(title string, width, height, fps int) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width), int32(height), title)
	if !rl.IsWindowReady() {
		return ErrWindow
	}
	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(fps))
	return nil
}

// Run is the main loop. Each frame it calls update with the frame time (input, simulation),
// then clears the screen and calls draw. It returns when the window is closed or update returns false.
func Run(update func(dt float32) bool, draw func()) {
	for !rl.WindowShouldClose() {
		if !update(rl.GetFrameTime()) {
			return
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}

// Close destroys the window.
func Close() {
	rl.CloseWindow()
}
