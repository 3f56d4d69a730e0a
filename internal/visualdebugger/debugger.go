// Package visualdebugger is the window or terminal harness around a scene: it owns the
// frame loop, maps keys to scene actions and draws a snapshot of the world every frame.
package visualdebugger

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"physics-tutorial/internal/commands"
	"physics-tutorial/internal/engineconfig"
	"physics-tutorial/internal/logger"
	"physics-tutorial/internal/physics"
	"physics-tutorial/internal/scene"
)

// Backend names accepted by Options.Backend and the -backend flag.
const (
	BackendRaylib = "raylib" // window with an orbit camera
	BackendTcell  = "tcell"  // character cells in the current terminal
)

var (
	// ErrUnknownBackend is returned by Init for a backend name it does not know.
	ErrUnknownBackend = errors.New("visualdebugger: unknown backend")
	// ErrNotOpen is returned by Start on a Debugger that Init did not return.
	ErrNotOpen = errors.New("visualdebugger: not initialized")
)

// Key names a key independently of the backend that reads it.
type Key string

const (
	KeySpace     Key = "space"
	KeyB         Key = "b"
	KeyE         Key = "e"
	KeyG         Key = "g"
	KeyP         Key = "p"
	KeyY         Key = "y"
	KeyBackspace Key = "backspace"
	KeyF1        Key = "f1"
	KeyF2        Key = "f2"
)

// Action is a named operation bound to a key. Name doubles as the terminal command.
type Action struct {
	Name string
	Key  Key
	Help string
	Run  func() error
}

// Scene is what the debugger drives. *tutorial.MyScene satisfies it.
type Scene interface {
	Init() error
	Update(dt float64) (int, error)
	Reset() error
	TogglePause()
	Paused() bool
	Steps() uint64
	Actors() []physics.Actor
	Joints() []*physics.DistanceJoint
	Visualization() scene.Visualization
	SetVisualization(p scene.VisParam, value float64)
}

// Options configures the harness.
type Options struct {
	Title   string
	Width   int
	Height  int
	Backend string
	FPS     int
	// Actions are bound in addition to the built-in pause, reset, help and fps actions.
	Actions []Action
	Log     *logger.Logger
	Prefs   engineconfig.EnginePrefs

	open func(Options) (backend, error)
}

// backend owns the window or terminal and calls Debugger.Tick and Debugger.Frame once per frame.
type backend interface {
	run(d *Debugger) error
	close()
}

// Debugger couples a scene to a backend.
type Debugger struct {
	opts    Options
	scene   Scene
	backend backend
	log     *logger.Logger
	reg     *commands.Registry
	actions []Action
	keys    map[Key]int

	showHelp bool
	showFPS  bool
	showMem  bool
	quit     bool
	frames   uint64
	fps      float64
	fpsClock time.Duration
	fpsCount int
}

// Init initializes the scene, then opens the backend named by opts.Backend.
// A scene that fails to initialize never opens a window.
func Init(opts Options, sc Scene) (*Debugger, error) {
	d := newDebugger(opts, sc)
	if err := sc.Init(); err != nil {
		return nil, err
	}
	open := d.opts.open
	if open == nil {
		open = openBackend
	}
	b, err := open(d.opts)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", d.opts.Backend, err)
	}
	d.backend = b
	return d, nil
}

func openBackend(opts Options) (backend, error) {
	switch opts.Backend {
	case BackendRaylib:
		return openRaylib(opts)
	case BackendTcell:
		return openTcell(opts)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownBackend, opts.Backend)
}

func newDebugger(opts Options, sc Scene) *Debugger {
	if opts.Title == "" {
		opts.Title = "Visual Debugger"
	}
	if opts.Width <= 0 {
		opts.Width = 1280
	}
	if opts.Height <= 0 {
		opts.Height = 720
	}
	if opts.Backend == "" {
		opts.Backend = BackendRaylib
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Log == nil {
		opts.Log = logger.NewAt("", nil)
	}
	d := &Debugger{
		opts:     opts,
		scene:    sc,
		log:      opts.Log,
		reg:      commands.NewRegistry(),
		keys:     make(map[Key]int),
		showHelp: opts.Prefs.ShowHelp,
		showFPS:  opts.Prefs.ShowFPS,
		showMem:  opts.Prefs.ShowMemAlloc,
	}
	builtin := []Action{
		{Name: "pause", Key: KeyP, Help: "pause or resume the simulation", Run: func() error {
			sc.TogglePause()
			return nil
		}},
		{Name: "reset", Key: KeyBackspace, Help: "rebuild the scene", Run: sc.Reset},
		{Name: "help", Key: KeyF1, Help: "show or hide this help", Run: func() error {
			d.showHelp = !d.showHelp
			return nil
		}},
		{Name: "fps", Key: KeyF2, Help: "show or hide the FPS counter", Run: func() error {
			d.showFPS = !d.showFPS
			return nil
		}},
	}
	for _, a := range append(opts.Actions, builtin...) {
		d.bind(a)
	}
	d.registerVis()
	return d
}

// bind adds a unless its name or key is taken by an earlier action.
func (d *Debugger) bind(a Action) {
	if a.Run == nil {
		return
	}
	if _, taken := d.keys[a.Key]; taken && a.Key != "" {
		return
	}
	for _, b := range d.actions {
		if b.Name == a.Name {
			return
		}
	}
	d.actions = append(d.actions, a)
	if a.Key != "" {
		d.keys[a.Key] = len(d.actions) - 1
	}
	d.reg.Register(a.Name, a.Help, nil, func([]string) error { return a.Run() })
}

func (d *Debugger) registerVis() {
	fs := commands.NewFlagSet("vis")
	param := fs.String("param", scene.VisCollisionShapes.String(), "scale, shapes, frames or limits")
	value := fs.Float64("value", 1, "new value; 0 turns the overlay off")
	d.reg.Register("vis", "set a visualization parameter", fs, func([]string) error {
		defer fs.VisitAll(func(f *flag.Flag) { f.Value.Set(f.DefValue) })
		p, ok := scene.ParseVisParam(*param)
		if !ok {
			return fmt.Errorf("unknown parameter %q", *param)
		}
		d.scene.SetVisualization(p, *value)
		return nil
	})
	d.reg.Register("keys", "list key bindings", nil, func([]string) error {
		for _, line := range d.HelpLines() {
			d.log.Log(line)
		}
		return nil
	})
}

// Start runs the frame loop until the user quits, then closes the backend.
func (d *Debugger) Start() error {
	if d.backend == nil {
		return ErrNotOpen
	}
	defer d.backend.close()
	return d.backend.run(d)
}

// Press runs the action bound to k. It reports whether k was bound.
func (d *Debugger) Press(k Key) bool {
	i, ok := d.keys[k]
	if !ok {
		return false
	}
	a := d.actions[i]
	if err := a.Run(); err != nil {
		d.log.Logf("%s: %v", a.Name, err)
	}
	return true
}

// Execute runs a terminal line such as "cmd vis -param frames -value 0".
func (d *Debugger) Execute(line string) error {
	args, ok := commands.Parse(line)
	if !ok {
		return fmt.Errorf("not a command: %q", line)
	}
	return d.reg.Execute(args)
}

// Tick handles the keys pressed since the last frame and advances the scene by dt seconds.
func (d *Debugger) Tick(dt float64, keys []Key) error {
	for _, k := range keys {
		d.Press(k)
	}
	if d.quit {
		return nil
	}
	if _, err := d.scene.Update(dt); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	d.frames++
	d.fpsCount++
	d.fpsClock += time.Duration(dt * float64(time.Second))
	if d.fpsClock >= time.Second {
		d.fps = float64(d.fpsCount) / d.fpsClock.Seconds()
		d.fpsCount, d.fpsClock = 0, 0
	}
	return nil
}

// Quit ends the frame loop after the current frame.
func (d *Debugger) Quit() { d.quit = true }

// Done reports whether Quit was called.
func (d *Debugger) Done() bool { return d.quit }

// Frames is the number of frames ticked so far.
func (d *Debugger) Frames() uint64 { return d.frames }

// Commands exposes the terminal command registry.
func (d *Debugger) Commands() *commands.Registry { return d.reg }

// Actions returns the bound actions, user actions first.
func (d *Debugger) Actions() []Action { return d.actions }

// Options returns the options after defaults were applied.
func (d *Debugger) Options() Options { return d.opts }

// HelpLines describes every key binding.
func (d *Debugger) HelpLines() []string {
	lines := make([]string, 0, len(d.actions))
	for _, a := range d.actions {
		if a.Key == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-9s %s", a.Key, a.Help))
	}
	return lines
}

// Prefs returns the preferences passed in Options with the overlay toggles made since.
func (d *Debugger) Prefs() engineconfig.EnginePrefs {
	p := d.opts.Prefs
	p.ShowHelp = d.showHelp
	p.ShowFPS = d.showFPS
	p.ShowMemAlloc = d.showMem
	p.Backend = d.opts.Backend
	return p
}
