package visualdebugger

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-tutorial/internal/debug"
	"physics-tutorial/internal/fonts"
	"physics-tutorial/internal/graphics"
	"physics-tutorial/internal/physics"
	"physics-tutorial/internal/primitives"
	"physics-tutorial/internal/scene"
	"physics-tutorial/internal/terminal"
)

const (
	// depth is the thickness given to flat shapes so they read as solids.
	depth     = 2
	planeSize = 2 * gridExtent
	axisLen   = 1.5
)

var raylibKeys = []struct {
	code int32
	key  Key
}{
	{rl.KeySpace, KeySpace},
	{rl.KeyB, KeyB},
	{rl.KeyE, KeyE},
	{rl.KeyG, KeyG},
	{rl.KeyP, KeyP},
	{rl.KeyY, KeyY},
	{rl.KeyBackspace, KeyBackspace},
	{rl.KeyF1, KeyF1},
	{rl.KeyF2, KeyF2},
}

var (
	triggerTint = rl.NewColor(0, 200, 255, 255)
	outlineTint = rl.NewColor(255, 255, 255, 200)
	jointTint   = rl.Yellow
)

type raylibBackend struct {
	camera  *camera
	prims   *primitives.Registry
	overlay *debug.Overlay
	font    rl.Font
	grid    bool
}

func openRaylib(opts Options) (backend, error) {
	if err := graphics.Open(opts.Title, opts.Width, opts.Height, opts.FPS); err != nil {
		return nil, err
	}
	b := &raylibBackend{
		camera:  newCamera(rl.NewVector3(0, 6, 0), 50),
		prims:   primitives.NewRegistry(),
		overlay: debug.New(),
		grid:    opts.Prefs.GridVisible,
	}
	if opts.Prefs.Font != "" {
		if path, err := fonts.Find(fonts.BaseDirs(), opts.Prefs.Font); err == nil {
			b.font = rl.LoadFont(path)
			b.overlay.SetFont(b.font)
		} else {
			opts.Log.Logf("font %q not found under %v", opts.Prefs.Font, fonts.BaseDirs())
		}
	}
	return b, nil
}

func (b *raylibBackend) run(d *Debugger) error {
	term := terminal.New(d.log, d.reg)
	term.SetFont(b.font)
	var (
		frame Frame
		err   error
	)
	graphics.Run(func(dt float32) bool {
		term.Update()
		var keys []Key
		if !term.IsOpen() {
			b.camera.update()
			for _, k := range raylibKeys {
				if rl.IsKeyPressed(k.code) {
					keys = append(keys, k.key)
				}
			}
		}
		if err = d.Tick(float64(dt), keys); err != nil {
			return false
		}
		frame = d.Frame()
		return !d.Done()
	}, func() {
		b.draw(frame)
		term.Draw()
	})
	return err
}

func (b *raylibBackend) close() {
	if b.font.Texture.ID != 0 {
		rl.UnloadFont(b.font)
	}
	graphics.Close()
}

func (b *raylibBackend) draw(f Frame) {
	pos := b.camera.Position
	b.prims.SetView([3]float32{pos.X, pos.Y, pos.Z}, [3]float32{0.4, 1, 0.6})

	rl.BeginMode3D(b.camera.Camera3D)
	if b.grid {
		drawEditorGrid()
	}
	for _, body := range f.Bodies {
		tint := colorOf(body.Color)
		if body.Dynamic && !body.Awake {
			tint = rl.ColorBrightness(tint, -0.4)
		}
		for _, s := range body.Shapes {
			b.drawShape(s, tint)
		}
	}
	if f.Vis.Enabled(scene.VisCollisionShapes) {
		for _, body := range f.Bodies {
			for _, s := range body.Shapes {
				drawCollisionShape(s)
			}
		}
	}
	scale := float32(f.Vis[scene.VisScale])
	for _, j := range f.Joints {
		if f.Vis.Enabled(scene.VisJointLimits) {
			rl.DrawLine3D(vec3(j.Anchors[0], 0), vec3(j.Anchors[1], 0), jointTint)
			rl.DrawSphere(vec3(j.Anchors[0], 0), 0.1*scale, jointTint)
			rl.DrawSphere(vec3(j.Anchors[1], 0), 0.1*scale, jointTint)
		}
		if f.Vis.Enabled(scene.VisJointLocalFrames) {
			for _, fr := range j.Frames {
				drawFrameAxes(fr, axisLen*scale)
			}
		}
	}
	rl.EndMode3D()

	b.overlay.Draw(f.HUD, f.Log)
}

func (b *raylibBackend) drawShape(s Shape, tint rl.Color) {
	if s.Trigger {
		drawCollisionShape(s)
		return
	}
	x, y := float32(s.Pose.Position.X), float32(s.Pose.Position.Y)
	switch s.Type {
	case physics.GeometryPlane:
		b.prims.Draw("plane", primitives.Transform{
			Position: [3]float32{x, y, 0},
			Scale:    [3]float32{planeSize, 1, planeSize},
		}, tint)
	case physics.GeometryBox:
		b.prims.Draw("cube", primitives.Transform{
			Position:  [3]float32{x, y, 0},
			Scale:     [3]float32{2 * float32(s.HalfExtents.X), 2 * float32(s.HalfExtents.Y), depth},
			RotationZ: float32(s.Pose.Angle),
		}, tint)
	case physics.GeometrySphere:
		b.prims.Draw("sphere", primitives.Uniform(x, y, 0, 2*float32(s.Radius)), tint)
	default:
		for _, poly := range s.Polygons {
			primitives.DrawPrism(vec2s(poly), depth, tint)
		}
	}
}

func drawCollisionShape(s Shape) {
	tint := outlineTint
	if s.Trigger {
		tint = triggerTint
	}
	if s.Type == physics.GeometrySphere {
		rl.DrawCircle3D(vec3(s.Pose.Position, 0), float32(s.Radius), rl.NewVector3(0, 0, 1), 0, tint)
		return
	}
	for _, poly := range s.Polygons {
		primitives.DrawOutline(vec2s(poly), tint)
	}
}

func drawFrameAxes(p physics.Pose, length float32) {
	origin := vec3(p.Position, 0)
	x := physics.Transform(p, physics.V(float64(length), 0))
	y := physics.Transform(p, physics.V(0, float64(length)))
	rl.DrawLine3D(origin, vec3(x, 0), rl.Red)
	rl.DrawLine3D(origin, vec3(y, 0), rl.Green)
}

func colorOf(c physics.Color) rl.Color {
	r, g, b := c.Bytes()
	return rl.NewColor(r, g, b, 255)
}

func vec3(v physics.Vec2, z float32) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), z)
}

func vec2s(poly []physics.Vec2) []rl.Vector2 {
	out := make([]rl.Vector2, len(poly))
	for i, v := range poly {
		out[i] = rl.NewVector2(float32(v.X), float32(v.Y))
	}
	return out
}
