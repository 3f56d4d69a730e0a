package scene

import (
	"errors"
	"fmt"

	"physics-tutorial/internal/physics"
)

// ErrNotInitialized is returned by Update and Reset before Init has succeeded.
var ErrNotInitialized = errors.New("scene: not initialized")

// State is the scene lifecycle: Uninitialized → Initialized (after Init) → Running (after the first Update).
type State uint8

const (
	Uninitialized State = iota
	Initialized
	Running
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Hooks are the extension points a concrete scene provides.
type Hooks interface {
	// CustomInit populates the scene. It runs inside Init, after the world exists.
	CustomInit() error
	// CustomUpdate runs once before every simulation step.
	CustomUpdate()
}

// Config controls stepping. StepSize is the fixed simulation step in seconds;
// at most MaxSubSteps steps are taken per Update, the rest of the frame time is dropped.
type Config struct {
	World       physics.WorldConfig
	StepSize    float64
	MaxSubSteps int
}

// DefaultConfig returns a 60 Hz fixed step with up to 5 sub-steps per frame.
func DefaultConfig() Config {
	return Config{
		World:       physics.DefaultWorldConfig(),
		StepSize:    1.0 / 60,
		MaxSubSteps: 5,
	}
}

// Scene owns the physics world, its actors and the stepping loop. Concrete scenes
// embed or wrap it and supply Hooks.
type Scene struct {
	cfg         Config
	world       *physics.World
	hooks       Hooks
	state       State
	vis         Visualization
	paused      bool
	accumulator float64
	steps       uint64
}

// New returns an uninitialized scene. Zero fields of cfg take their DefaultConfig values.
func New(cfg Config) *Scene {
	def := DefaultConfig()
	if cfg.StepSize <= 0 {
		cfg.StepSize = def.StepSize
	}
	if cfg.MaxSubSteps <= 0 {
		cfg.MaxSubSteps = def.MaxSubSteps
	}
	if cfg.World == (physics.WorldConfig{}) {
		cfg.World = def.World
	}
	return &Scene{cfg: cfg}
}

// Init creates a fresh world and runs h.CustomInit. On failure the scene stays uninitialized.
func (s *Scene) Init(h Hooks) error {
	if h == nil {
		return errors.New("scene: nil hooks")
	}
	s.hooks = h
	s.world = physics.NewWorld(s.cfg.World)
	s.vis = Visualization{}
	s.accumulator = 0
	s.steps = 0
	s.state = Uninitialized
	if err := h.CustomInit(); err != nil {
		s.world.Destroy()
		return fmt.Errorf("custom init: %w", err)
	}
	s.state = Initialized
	return nil
}

// Update advances the simulation by frame time dt using fixed steps. It returns the number
// of steps taken. A paused scene takes no steps.
func (s *Scene) Update(dt float64) (int, error) {
	if s.state == Uninitialized {
		return 0, ErrNotInitialized
	}
	s.state = Running
	if s.paused || dt <= 0 {
		return 0, nil
	}
	s.accumulator += dt
	n := 0
	for s.accumulator >= s.cfg.StepSize && n < s.cfg.MaxSubSteps {
		s.hooks.CustomUpdate()
		s.world.Step(s.cfg.StepSize)
		s.accumulator -= s.cfg.StepSize
		s.steps++
		n++
	}
	if n == s.cfg.MaxSubSteps {
		s.accumulator = min(s.accumulator, s.cfg.StepSize)
	}
	return n, nil
}

// Reset destroys every actor and joint and runs the custom init again.
func (s *Scene) Reset() error {
	if s.hooks == nil {
		return ErrNotInitialized
	}
	s.world.Destroy()
	paused := s.paused
	if err := s.Init(s.hooks); err != nil {
		return err
	}
	s.paused = paused
	return nil
}

// Add places a detached actor into the world.
func (s *Scene) Add(a physics.Actor) error {
	if s.world == nil {
		return ErrNotInitialized
	}
	return s.world.Add(a)
}

// Get returns the first actor with the given name.
func (s *Scene) Get(name string) (physics.Actor, bool) {
	if s.world == nil {
		return nil, false
	}
	return s.world.Find(name)
}

// Actors returns the actors in the order they were added.
func (s *Scene) Actors() []physics.Actor {
	if s.world == nil {
		return nil
	}
	return s.world.Actors()
}

// Joints returns the live joints.
func (s *Scene) Joints() []*physics.DistanceJoint {
	if s.world == nil {
		return nil
	}
	return s.world.Joints()
}

// Material returns the default material of the current world, nil before Init.
func (s *Scene) Material() *physics.Material {
	if s.world == nil {
		return nil
	}
	return s.world.Material()
}

// World exposes the physics world, nil before Init.
func (s *Scene) World() *physics.World {
	return s.world
}

// State returns the lifecycle state.
func (s *Scene) State() State {
	return s.state
}

// StepSize is the fixed simulation step in seconds.
func (s *Scene) StepSize() float64 {
	return s.cfg.StepSize
}

// Steps counts simulation steps since the last Init.
func (s *Scene) Steps() uint64 {
	return s.steps
}

// TogglePause pauses or resumes stepping.
func (s *Scene) TogglePause() {
	s.paused = !s.paused
}

// Paused reports whether stepping is paused.
func (s *Scene) Paused() bool {
	return s.paused
}
