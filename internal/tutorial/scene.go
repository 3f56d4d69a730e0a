package tutorial

import (
	"fmt"
	"math/rand/v2"
	"time"

	"physics-tutorial/internal/audio"
	"physics-tutorial/internal/logger"
	"physics-tutorial/internal/physics"
	"physics-tutorial/internal/scene"
)

// MyScene is the tutorial scene: a ground plane, two platforms jointed to a bar, a sphere,
// a gun and a goal trigger, plus the demo actions bound to keys by the visual debugger.
type MyScene struct {
	*scene.Scene

	layout   *Layout
	log      *logger.Logger
	cues     CuePlayer
	rng      *rand.Rand
	state    GameState
	callback *EventCallback

	plane           physics.Actor
	bottom, bottom2 physics.Actor
	top             physics.Actor
	sphere          physics.Actor
	gun             physics.Actor
	goal            physics.Actor
	joints          []*physics.DistanceJoint
	// lastSphere is the most recently spawned sphere; FireBurst pushes it.
	lastSphere physics.Actor
}

// Option configures a MyScene.
type Option func(*MyScene)

// WithLayout replaces the built-in layout.
func WithLayout(l *Layout) Option {
	return func(s *MyScene) { s.layout = l }
}

// WithLogger sets the event log. The default logs to memory only.
func WithLogger(l *logger.Logger) Option {
	return func(s *MyScene) { s.log = l }
}

// WithCues plays sounds for events and shots.
func WithCues(c CuePlayer) Option {
	return func(s *MyScene) { s.cues = c }
}

// WithRand sets the source of FireBurst impulses.
func WithRand(r *rand.Rand) Option {
	return func(s *MyScene) { s.rng = r }
}

// WithConfig sets the stepping configuration.
func WithConfig(cfg scene.Config) Option {
	return func(s *MyScene) { s.Scene = scene.New(cfg) }
}

// New returns an uninitialized tutorial scene.
func New(opts ...Option) *MyScene {
	s := &MyScene{}
	for _, o := range opts {
		o(s)
	}
	if s.Scene == nil {
		s.Scene = scene.New(scene.DefaultConfig())
	}
	if s.layout == nil {
		s.layout = DefaultLayout()
	}
	if s.log == nil {
		s.log = logger.NewAt("", nil)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return s
}

// Init builds the world and runs CustomInit.
func (s *MyScene) Init() error {
	return s.Scene.Init(s)
}

// GameState returns the state maintained by the event callback.
func (s *MyScene) GameState() GameState {
	return s.state
}

// Layout returns the layout in use.
func (s *MyScene) Layout() *Layout {
	return s.layout
}

// Logger returns the event log.
func (s *MyScene) Logger() *logger.Logger {
	return s.log
}

// enableVisualization turns on the debug overlays the tutorial relies on.
func (s *MyScene) enableVisualization() {
	s.SetVisualization(scene.VisScale, 1)
	s.SetVisualization(scene.VisCollisionShapes, 1)
	s.SetVisualization(scene.VisJointLocalFrames, 1)
	s.SetVisualization(scene.VisJointLimits, 1)
}

// CustomInit populates the scene.
func (s *MyScene) CustomInit() error {
	l := s.layout
	s.enableVisualization()
	s.Material().SetDynamicFriction(l.DynamicFriction)

	s.state = GameState{}
	s.callback = NewEventCallback(&s.state, s.log, s.cues)
	s.World().SetSimulationEventCallback(s.callback)
	s.World().SetFilterShader(FilterShader)

	s.plane = physics.Plane(l.Plane.Pose())
	s.plane.SetColor(l.Color(l.Plane.Color))
	if err := s.Add(s.plane); err != nil {
		return fmt.Errorf("add plane: %w", err)
	}

	s.bottom = s.staticBox(l.Bottoms[0])
	s.bottom2 = s.staticBox(l.Bottoms[1])
	s.top = s.staticBox(l.Top)
	s.sphere = s.newSphere(l.Sphere.Pose(), l.Sphere.Radius, l.Sphere.Density, l.Sphere.Color)

	s.gun = physics.Box(l.Gun.Pose(), l.Gun.HalfExtents[0], l.Gun.HalfExtents[1], l.Gun.Density)
	s.gun.SetColor(l.Color(l.Gun.Color))
	s.gun.SetName(l.Gun.Name)

	s.goal = s.staticBox(l.Goal)
	s.goal.SetTrigger(true)

	s.bottom.SetupFiltering(Actor0, Actor1)
	s.bottom2.SetupFiltering(Actor0, Actor1)
	s.top.SetupFiltering(Actor0, Actor1)

	for _, a := range []physics.Actor{s.bottom, s.bottom2, s.top, s.sphere, s.goal, s.gun} {
		if err := s.Add(a); err != nil {
			return fmt.Errorf("add %q: %w", a.Name(), err)
		}
	}
	s.lastSphere = s.sphere

	s.joints = s.joints[:0]
	for _, b := range []physics.Actor{s.bottom, s.bottom2} {
		j, err := s.World().CreateDistanceJoint(b, l.Joint.BottomFrame.Frame(), s.top, l.Joint.TopFrame.Frame())
		if err != nil {
			return fmt.Errorf("joint %q-%q: %w", b.Name(), s.top.Name(), err)
		}
		s.joints = append(s.joints, j)
	}
	return nil
}

// CustomUpdate runs before every step. The tutorial has no per-step logic.
func (s *MyScene) CustomUpdate() {}

func (s *MyScene) staticBox(spec ActorSpec) physics.Actor {
	a := physics.StaticBox(spec.Pose(), spec.HalfExtents[0], spec.HalfExtents[1])
	a.SetColor(s.layout.Color(spec.Color))
	a.SetName(spec.Name)
	return a
}

func (s *MyScene) newSphere(pose physics.Pose, radius, density float64, color string) physics.Actor {
	a := physics.Sphere(pose, radius, density)
	a.SetColor(s.layout.Color(color))
	return a
}

func (s *MyScene) play(c audio.Cue) {
	if s.cues != nil {
		s.cues.Play(c)
	}
}

// FireProjectile spawns a sphere at the projectile position and pushes it along +X.
func (s *MyScene) FireProjectile() error {
	p := s.layout.Projectile
	ball := s.newSphere(p.Pose(), p.Radius, p.Density, p.Color)
	if err := s.Add(ball); err != nil {
		return fmt.Errorf("fire projectile: %w", err)
	}
	s.lastSphere = ball
	if body, ok := ball.AsDynamic(); ok {
		body.AddImpulse(p.Impulse.Physics())
	}
	s.play(audio.CueFire)
	return nil
}

// FireBurst spawns spheres at the gun and kicks the most recently spawned sphere after each
// spawn. Impulse components are rand%2 and rand%1, so mostly 0 or 1 along X and always 0 along Y.
func (s *MyScene) FireBurst() error {
	if s.gun == nil {
		return scene.ErrNotInitialized
	}
	b := s.layout.Burst
	for range b.Count {
		if gun, ok := s.gun.AsDynamic(); ok {
			ball := s.newSphere(gun.GlobalPose(), b.Radius, b.Density, b.Color)
			if err := s.Add(ball); err != nil {
				return fmt.Errorf("fire burst: %w", err)
			}
			s.lastSphere = ball
		}
		if ball, ok := s.lastSphere.AsDynamic(); ok {
			px := float64(s.rng.Int32() % 2)
			py := float64(s.rng.Int32() % 1)
			ball.AddImpulse(physics.V(px, py))
		}
	}
	s.play(audio.CueFire)
	return nil
}

// BeginMatch applies impulses 0, 1, ... along +X to the gun in a single step.
func (s *MyScene) BeginMatch() {
	if s.gun == nil {
		return
	}
	gun, ok := s.gun.AsDynamic()
	if !ok {
		return
	}
	for px := range s.layout.Match.Impulses {
		gun.AddImpulse(physics.V(float64(px), 0))
	}
}

// OnKeyPress is the example key press handler.
func (s *MyScene) OnKeyPress() {
	s.log.Log("I am pressed!")
}

// SpawnPyramid drops a dynamic pyramid at the layout's pyramid position.
func (s *MyScene) SpawnPyramid() error {
	p := s.layout.Pyramid
	a := Pyramid(p.Pose(), p.Density)
	a.SetColor(s.layout.Color(p.Color))
	a.SetName(p.Name)
	if err := s.Add(a); err != nil {
		return fmt.Errorf("spawn pyramid: %w", err)
	}
	return nil
}

// Gun returns the gun actor, nil before Init.
func (s *MyScene) Gun() physics.Actor {
	return s.gun
}

// Goal returns the goal trigger, nil before Init.
func (s *MyScene) Goal() physics.Actor {
	return s.goal
}

// SceneJoints returns the joints created by CustomInit that have not broken.
func (s *MyScene) SceneJoints() []*physics.DistanceJoint {
	out := make([]*physics.DistanceJoint, 0, len(s.joints))
	for _, j := range s.joints {
		if !j.IsBroken() {
			out = append(out, j)
		}
	}
	return out
}
