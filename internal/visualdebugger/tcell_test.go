package visualdebugger

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"physics-tutorial/internal/physics"
	"physics-tutorial/internal/scene"
)

func TestTcellKeys(t *testing.T) {
	cases := []struct {
		key  tcell.Key
		r    rune
		want Key
	}{
		{tcell.KeyRune, ' ', KeySpace},
		{tcell.KeyRune, 'b', KeyB},
		{tcell.KeyRune, 'G', KeyG},
		{tcell.KeyRune, 'e', KeyE},
		{tcell.KeyRune, 'y', KeyY},
		{tcell.KeyRune, 'p', KeyP},
		{tcell.KeyBackspace2, 0, KeyBackspace},
		{tcell.KeyF1, 0, KeyF1},
		{tcell.KeyF2, 0, KeyF2},
	}
	for _, c := range cases {
		got, ok := tcellKey(c.key, c.r)
		assert.True(t, ok, string(c.want))
		assert.Equal(t, c.want, got)
	}
	_, ok := tcellKey(tcell.KeyRune, 'z')
	assert.False(t, ok)

	assert.True(t, isQuit(tcell.KeyEscape, 0))
	assert.True(t, isQuit(tcell.KeyRune, 'q'))
	assert.True(t, isQuit(tcell.KeyCtrlC, 0))
	assert.False(t, isQuit(tcell.KeyRune, 'b'))
}

func TestInside(t *testing.T) {
	square := []physics.Vec2{physics.V(0, 0), physics.V(2, 0), physics.V(2, 2), physics.V(0, 2)}
	assert.True(t, inside(square, physics.V(1, 1)))
	assert.False(t, inside(square, physics.V(3, 1)))

	cw := []physics.Vec2{square[3], square[2], square[1], square[0]}
	assert.True(t, inside(cw, physics.V(1, 1)), "clockwise")
	assert.False(t, inside(square[:2], physics.V(1, 0)))
}

func TestViewRoundTrip(t *testing.T) {
	d, _, _ := openTest(t, Options{})
	v := fitView(d.Frame(), 80, 2, 20)
	for _, p := range []physics.Vec2{physics.V(0, 2), physics.V(8, 3), physics.V(-1, 0)} {
		x, y := v.cell(p)
		assert.True(t, x >= 0 && x < 80, "x %d", x)
		assert.True(t, y >= 2 && y < 20, "y %d", y)
		back := v.world(x, y)
		assert.InDelta(t, p.X, back.X, v.scaleX)
		assert.InDelta(t, p.Y, back.Y, v.scaleY)
	}
	ax, _ := v.cell(physics.V(-1, 2))
	bx, _ := v.cell(physics.V(1, 2))
	assert.Less(t, ax, bx)
	_, lowY := v.cell(physics.V(0, 0))
	_, highY := v.cell(physics.V(0, 6))
	assert.Greater(t, lowY, highY, "world up is screen up")
}

func TestRasterizeShapes(t *testing.T) {
	d, _, _ := openTest(t, Options{})
	d.log.Log("hello")
	f := d.Frame()
	g := rasterize(f, 80, 24)

	// Off the joint column so the joint line does not cover the boxes.
	x, y := g.view.cell(physics.V(0.8, 2))
	assert.Equal(t, '█', g.at(x, y), "static box")
	x, y = g.view.cell(physics.V(0.8, 6))
	assert.Equal(t, '▓', g.at(x, y), "dynamic box")
	x, y = g.view.cell(physics.V(8, 3))
	assert.Equal(t, 'o', g.at(x, y), "sphere")
	x, y = g.view.cell(physics.V(6, 0))
	assert.Equal(t, '=', g.at(x, y), "ground")
	x, y = g.view.cell(physics.V(0, 4))
	assert.Equal(t, ':', g.at(x, y), "joint between the boxes")

	assert.Equal(t, 'V', g.at(0, 0), "status line")
	assert.Equal(t, '[', g.at(0, 23), "log line")
}

func TestRasterizeWithoutShapes(t *testing.T) {
	d, sc, _ := openTest(t, Options{})
	sc.SetVisualization(scene.VisCollisionShapes, 0)
	sc.SetVisualization(scene.VisJointLimits, 0)
	g := rasterize(d.Frame(), 80, 24)

	x, y := g.view.cell(physics.V(8, 3))
	assert.Equal(t, '·', g.at(x, y))
	x, y = g.view.cell(physics.V(0, 4))
	assert.Zero(t, g.at(x, y))
	x, y = g.view.cell(physics.V(0, 2))
	assert.Equal(t, '+', g.at(x, y), "joint frame")
}

func TestTcellBackendRuns(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)

	d, sc, _ := openTest(t, Options{Backend: BackendTcell, FPS: 120})
	b := newTcellBackend(screen)
	d.backend = b
	sc.onUpdate = func() {
		if sc.Steps() >= 3 {
			d.Quit()
		}
	}

	done := make(chan error, 1)
	go func() { done <- d.Start() }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("frame loop did not stop")
	}
	assert.True(t, d.Done())
	assert.GreaterOrEqual(t, d.Frames(), uint64(1))
}
