package visualdebugger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"physics-tutorial/internal/logger"
	"physics-tutorial/internal/physics"
	"physics-tutorial/internal/scene"
)

// testScene is a ground plane, a static box at (0, 2) jointed to a dynamic box above it,
// and a sphere.
type testScene struct {
	*scene.Scene
	initErr  error
	onUpdate func()
}

func newTestScene() *testScene {
	return &testScene{Scene: scene.New(scene.DefaultConfig())}
}

func (s *testScene) Init() error { return s.Scene.Init(s) }

func (s *testScene) CustomInit() error {
	if s.initErr != nil {
		return s.initErr
	}
	for p := scene.VisScale; p <= scene.VisJointLimits; p++ {
		s.SetVisualization(p, 1)
	}
	ground := physics.Plane(physics.Identity)
	ground.SetColor(physics.RGB255(0, 255, 0))
	base := physics.StaticBox(physics.NewPose(0, 2), 1, 1)
	base.SetName("base")
	base.SetColor(physics.RGB255(255, 255, 255))
	top := physics.Box(physics.NewPose(0, 6), 1, 0.5, 1)
	top.SetName("top")
	ball := physics.Sphere(physics.NewPose(8, 3), 1, 1)
	ball.SetName("ball")
	for _, a := range []physics.Actor{ground, base, top, ball} {
		if err := s.Add(a); err != nil {
			return err
		}
	}
	_, err := s.World().CreateDistanceJoint(base, physics.Frame{}, top, physics.Frame{})
	return err
}

func (s *testScene) CustomUpdate() {
	if s.onUpdate != nil {
		s.onUpdate()
	}
}

// fakeBackend replays key batches through Tick, one frame per batch.
type fakeBackend struct {
	frames [][]Key
	seen   []Frame
	closed bool
}

func (b *fakeBackend) run(d *Debugger) error {
	for _, keys := range b.frames {
		if d.Done() {
			break
		}
		if err := d.Tick(1.0/60, keys); err != nil {
			return err
		}
		b.seen = append(b.seen, d.Frame())
	}
	return nil
}

func (b *fakeBackend) close() { b.closed = true }

var errBoom = errors.New("boom")

func openTest(t *testing.T, opts Options) (*Debugger, *testScene, *fakeBackend) {
	t.Helper()
	sc := newTestScene()
	fb := &fakeBackend{}
	opts.open = func(Options) (backend, error) { return fb, nil }
	if opts.Log == nil {
		opts.Log = logger.NewAt("", nil)
	}
	d, err := Init(opts, sc)
	require.NoError(t, err)
	return d, sc, fb
}
