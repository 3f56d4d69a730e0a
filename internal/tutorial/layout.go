package tutorial

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"physics-tutorial/internal/physics"
)

//go:embed layout.yaml
var defaultLayoutYAML []byte

// Vec is an (x, y) pair as written in layout files.
type Vec [2]float64

// Physics converts v to an engine vector.
func (v Vec) Physics() physics.Vec2 {
	return physics.V(v[0], v[1])
}

// ActorSpec places one actor.
type ActorSpec struct {
	Name        string  `yaml:"name,omitempty"`
	Position    Vec     `yaml:"position"`
	Angle       float64 `yaml:"angle,omitempty"`
	HalfExtents Vec     `yaml:"half_extents,omitempty"`
	Radius      float64 `yaml:"radius,omitempty"`
	Density     float64 `yaml:"density,omitempty"`
	Color       string  `yaml:"color"`
}

// Pose returns the spec's pose.
func (a ActorSpec) Pose() physics.Pose {
	return physics.Pose{Position: a.Position.Physics(), Angle: a.Angle}
}

// FrameSpec is a joint attachment frame in actor space.
type FrameSpec struct {
	Offset Vec     `yaml:"offset"`
	Angle  float64 `yaml:"angle,omitempty"`
}

// Frame converts f to an engine frame.
func (f FrameSpec) Frame() physics.Frame {
	return physics.Frame{Offset: f.Offset.Physics(), Angle: f.Angle}
}

// ProjectileSpec is the sphere spawned by FireProjectile.
type ProjectileSpec struct {
	ActorSpec `yaml:",inline"`
	Impulse   Vec `yaml:"impulse"`
}

// BurstSpec configures FireBurst.
type BurstSpec struct {
	Count   int     `yaml:"count"`
	Radius  float64 `yaml:"radius"`
	Density float64 `yaml:"density"`
	Color   string  `yaml:"color"`
}

// Layout holds every constant of the tutorial scene.
type Layout struct {
	Palette         map[string][3]uint8 `yaml:"palette"`
	DynamicFriction float64             `yaml:"dynamic_friction"`
	Plane           ActorSpec           `yaml:"plane"`
	Bottoms         []ActorSpec         `yaml:"bottoms"`
	Top             ActorSpec           `yaml:"top"`
	Sphere          ActorSpec           `yaml:"sphere"`
	Gun             ActorSpec           `yaml:"gun"`
	Goal            ActorSpec           `yaml:"goal"`
	Joint           struct {
		BottomFrame FrameSpec `yaml:"bottom_frame"`
		TopFrame    FrameSpec `yaml:"top_frame"`
	} `yaml:"joint"`
	Projectile ProjectileSpec `yaml:"projectile"`
	Burst      BurstSpec      `yaml:"burst"`
	Match      struct {
		Impulses int `yaml:"impulses"`
	} `yaml:"match"`
	Pyramid ActorSpec `yaml:"pyramid"`
}

var defaultLayout = mustParse(defaultLayoutYAML)

func mustParse(data []byte) *Layout {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		panic(fmt.Sprintf("tutorial: embedded layout: %v", err))
	}
	return &l
}

// DefaultLayout returns a fresh copy of the built-in layout.
func DefaultLayout() *Layout {
	return defaultLayout.Clone()
}

// Clone returns a deep copy of l.
func (l *Layout) Clone() *Layout {
	var out Layout
	if err := copier.CopyWithOption(&out, l, copier.Option{DeepCopy: true}); err != nil {
		panic(fmt.Sprintf("tutorial: clone layout: %v", err))
	}
	return &out
}

// LoadLayout reads path on top of the default layout: keys present in the file override
// the defaults, everything else keeps its built-in value. A missing file yields the defaults.
func LoadLayout(path string) (*Layout, error) {
	l := DefaultLayout()
	if path == "" {
		return l, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	if err := yaml.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

// Validate checks the constraints the scene relies on.
func (l *Layout) Validate() error {
	if len(l.Bottoms) != 2 {
		return fmt.Errorf("want 2 bottoms, got %d", len(l.Bottoms))
	}
	for _, c := range l.colorNames() {
		if _, ok := l.Palette[c]; !ok {
			return fmt.Errorf("unknown color %q", c)
		}
	}
	if l.Burst.Count < 0 || l.Match.Impulses < 0 {
		return errors.New("burst count and match impulses must not be negative")
	}
	return nil
}

func (l *Layout) colorNames() []string {
	names := []string{l.Plane.Color, l.Top.Color, l.Sphere.Color, l.Gun.Color, l.Goal.Color,
		l.Projectile.Color, l.Burst.Color, l.Pyramid.Color}
	for _, b := range l.Bottoms {
		names = append(names, b.Color)
	}
	return names
}

// Color resolves a palette name. Unknown names are white.
func (l *Layout) Color(name string) physics.Color {
	c, ok := l.Palette[name]
	if !ok {
		return physics.Color{R: 1, G: 1, B: 1}
	}
	return physics.RGB255(c[0], c[1], c[2])
}

// Marshal encodes l as YAML.
func (l *Layout) Marshal() ([]byte, error) {
	return yaml.Marshal(l)
}
