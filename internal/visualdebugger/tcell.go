package visualdebugger

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"physics-tutorial/internal/physics"
	"physics-tutorial/internal/scene"
)

// tcellBackend draws the scene into a terminal, one character cell per sample point.
type tcellBackend struct {
	screen tcell.Screen
	events chan tcell.Event
}

func openTcell(Options) (backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return newTcellBackend(screen), nil
}

func newTcellBackend(screen tcell.Screen) *tcellBackend {
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()
	return &tcellBackend{screen: screen, events: make(chan tcell.Event, 100)}
}

func (b *tcellBackend) run(d *Debugger) error {
	go func() {
		for {
			ev := b.screen.PollEvent()
			if ev == nil {
				return
			}
			b.events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(d.opts.FPS))
	defer ticker.Stop()
	last := time.Now()
	var keys []Key
	for !d.Done() {
		select {
		case ev := <-b.events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev.Key(), ev.Rune()) {
					d.Quit()
					continue
				}
				if k, ok := tcellKey(ev.Key(), ev.Rune()); ok {
					keys = append(keys, k)
				}
			case *tcell.EventResize:
				b.screen.Sync()
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if err := d.Tick(dt, keys); err != nil {
				return err
			}
			keys = keys[:0]
			b.draw(d.Frame())
		}
	}
	return nil
}

func (b *tcellBackend) close() {
	b.screen.Fini()
}

func isQuit(k tcell.Key, r rune) bool {
	return k == tcell.KeyEscape || k == tcell.KeyCtrlC || (k == tcell.KeyRune && r == 'q')
}

func tcellKey(k tcell.Key, r rune) (Key, bool) {
	switch k {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace, true
	case tcell.KeyF1:
		return KeyF1, true
	case tcell.KeyF2:
		return KeyF2, true
	case tcell.KeyRune:
		switch r {
		case ' ':
			return KeySpace, true
		case 'b', 'B':
			return KeyB, true
		case 'e', 'E':
			return KeyE, true
		case 'g', 'G':
			return KeyG, true
		case 'p', 'P':
			return KeyP, true
		case 'y', 'Y':
			return KeyY, true
		}
	}
	return "", false
}

func (b *tcellBackend) draw(f Frame) {
	w, h := b.screen.Size()
	g := rasterize(f, w, h)
	b.screen.Clear()
	for y, row := range g.cells {
		for x, c := range row {
			if c.r != 0 {
				b.screen.SetContent(x, y, c.r, nil, c.style)
			}
		}
	}
	b.screen.Show()
}

type cell struct {
	r     rune
	style tcell.Style
}

// grid is a rasterized frame: HUD rows on top, the world below, log rows at the bottom.
type grid struct {
	cells [][]cell
	view  view
}

func (g grid) at(x, y int) rune {
	if y < 0 || y >= len(g.cells) || x < 0 || x >= len(g.cells[y]) {
		return 0
	}
	return g.cells[y][x].r
}

func (g grid) set(x, y int, r rune, st tcell.Style) {
	if y < 0 || y >= len(g.cells) || x < 0 || x >= len(g.cells[y]) {
		return
	}
	g.cells[y][x] = cell{r, st}
}

func (g grid) text(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		g.set(x, y, r, st)
		x++
	}
}

// view maps world coordinates onto the cell rows [top, bottom).
type view struct {
	minX, minY, scaleX, scaleY float64
	top, bottom, width         int
}

// cellAspect is the height of a terminal cell over its width.
const cellAspect = 2.0

func fitView(f Frame, width, top, bottom int) view {
	minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	grow := func(p physics.Vec2, r float64) {
		minX, maxX = min(minX, p.X-r), max(maxX, p.X+r)
		minY, maxY = min(minY, p.Y-r), max(maxY, p.Y+r)
	}
	for _, b := range f.Bodies {
		for _, s := range b.Shapes {
			switch s.Type {
			case physics.GeometryPlane:
				grow(s.Pose.Position, 0)
			case physics.GeometrySphere:
				grow(s.Pose.Position, s.Radius)
			default:
				for _, poly := range s.Polygons {
					for _, v := range poly {
						grow(v, 0)
					}
				}
			}
		}
	}
	if minX > maxX {
		minX, minY, maxX, maxY = -10, -1, 10, 10
	}
	const margin = 2
	minX, minY, maxX, maxY = minX-margin, minY-margin, maxX+margin, maxY+margin

	rows := max(bottom-top, 1)
	cols := max(width, 1)
	// One scale for both axes so circles stay round.
	unit := max((maxX-minX)/float64(cols), (maxY-minY)*cellAspect/float64(rows))
	v := view{scaleX: unit, scaleY: unit / cellAspect, top: top, bottom: bottom, width: width}
	v.minX = (minX+maxX)/2 - unit*float64(cols)/2
	v.minY = (minY+maxY)/2 - v.scaleY*float64(rows)/2
	return v
}

// world returns the world point at the center of cell (x, y).
func (v view) world(x, y int) physics.Vec2 {
	row := v.bottom - 1 - y
	return physics.V(v.minX+(float64(x)+0.5)*v.scaleX, v.minY+(float64(row)+0.5)*v.scaleY)
}

// cell returns the cell containing world point p.
func (v view) cell(p physics.Vec2) (int, int) {
	x := int(math.Floor((p.X - v.minX) / v.scaleX))
	row := int(math.Floor((p.Y - v.minY) / v.scaleY))
	return x, v.bottom - 1 - row
}

func styleOf(c physics.Color, dim bool) tcell.Style {
	r, g, b := c.Bytes()
	if dim {
		r, g, b = r/2, g/2, b/2
	}
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

var (
	hudStyle   = tcell.StyleDefault.Foreground(tcell.ColorLightGray)
	logStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	jointStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	frameStyle = tcell.StyleDefault.Foreground(tcell.ColorAqua)
)

func rasterize(f Frame, w, h int) grid {
	g := grid{cells: make([][]cell, h)}
	for y := range g.cells {
		g.cells[y] = make([]cell, w)
	}
	top := min(len(f.HUD), h/3)
	logRows := min(len(f.Log), h/4)
	g.view = fitView(f, w, top, h-logRows)

	if f.Vis.Enabled(scene.VisCollisionShapes) {
		for y := top; y < g.view.bottom; y++ {
			for x := range w {
				p := g.view.world(x, y)
				for _, b := range f.Bodies {
					if r, ok := sample(b, p, g.view.scaleY); ok {
						g.set(x, y, r, styleOf(b.Color, b.Dynamic && !b.Awake))
					}
				}
			}
		}
	} else {
		for _, b := range f.Bodies {
			x, y := g.view.cell(b.Pose.Position)
			if y >= top && y < g.view.bottom {
				g.set(x, y, '·', styleOf(b.Color, false))
			}
		}
	}
	if f.Vis.Enabled(scene.VisJointLimits) {
		for _, j := range f.Joints {
			g.line(j.Anchors[0], j.Anchors[1], ':', jointStyle)
		}
	}
	if f.Vis.Enabled(scene.VisJointLocalFrames) {
		for _, j := range f.Joints {
			for _, fr := range j.Frames {
				x, y := g.view.cell(fr.Position)
				if y >= top && y < g.view.bottom {
					g.set(x, y, '+', frameStyle)
				}
			}
		}
	}

	for i, line := range f.HUD[:top] {
		g.text(0, i, line, hudStyle)
	}
	for i, line := range f.Log[len(f.Log)-logRows:] {
		g.text(0, g.view.bottom+i, line, logStyle)
	}
	return g
}

// sample reports the glyph of body b at world point p, if any shape covers it.
// thickness is the height of a cell, used for the zero-width ground plane.
func sample(b Body, p physics.Vec2, thickness float64) (rune, bool) {
	for _, s := range b.Shapes {
		hit := false
		switch s.Type {
		case physics.GeometrySphere:
			hit = physics.V(p.X-s.Pose.Position.X, p.Y-s.Pose.Position.Y).Length() <= s.Radius
		case physics.GeometryPlane:
			for _, seg := range s.Polygons {
				if len(seg) == 2 && p.X >= min(seg[0].X, seg[1].X) && p.X <= max(seg[0].X, seg[1].X) {
					hit = math.Abs(p.Y-seg[0].Y) <= thickness/2
				}
			}
		default:
			for _, poly := range s.Polygons {
				if inside(poly, p) {
					hit = true
					break
				}
			}
		}
		if !hit {
			continue
		}
		switch {
		case s.Trigger:
			return '░', true
		case s.Type == physics.GeometrySphere:
			return 'o', true
		case s.Type == physics.GeometryPlane:
			return '=', true
		case b.Dynamic:
			return '▓', true
		default:
			return '█', true
		}
	}
	return 0, false
}

// inside reports whether p lies in the convex polygon poly, in either winding.
func inside(poly []physics.Vec2, p physics.Vec2) bool {
	if len(poly) < 3 {
		return false
	}
	sign := 0.0
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		c := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
		if c == 0 {
			continue
		}
		if sign == 0 {
			sign = c
		} else if (c > 0) != (sign > 0) {
			return false
		}
	}
	return true
}

// line draws a segment between two world points.
func (g grid) line(a, b physics.Vec2, r rune, st tcell.Style) {
	x0, y0 := g.view.cell(a)
	x1, y1 := g.view.cell(b)
	n := max(abs(x1-x0), abs(y1-y0), 1)
	for i := 0; i <= n; i++ {
		x := x0 + (x1-x0)*i/n
		y := y0 + (y1-y0)*i/n
		if y >= g.view.top && y < g.view.bottom {
			g.set(x, y, r, st)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
