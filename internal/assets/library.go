package assets

import (
	"context"
	"embed"
	"io/fs"
	"path"
	"sync"
	"time"

	"cogentcore.org/core/math32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed models/*.yaml
var embeddedModels embed.FS

// ModelDef is the YAML definition of a furniture model (e.g. models/chair.yaml).
// The preview draws Primitive scaled to Size; Size also defines the collision box.
type ModelDef struct {
	Primitive string     `yaml:"primitive"`
	Size      [3]float32 `yaml:"size,omitempty"`
	Color     string     `yaml:"color,omitempty"`
}

// defaultModelColor is used when a definition has no color.
const defaultModelColor = "#808080"

// View controls are flat quads this tall; width grows with the label.
const (
	viewHeight      = 0.12
	viewCharWidth   = 0.035
	viewPaddingWide = 0.08
)

var knownPrimitives = map[string]bool{"cube": true, "cylinder": true, "sphere": true}

// Library resolves model definitions from a filesystem and snapshots view specs. Resolved models
// are cached per asset reference so placing the same furniture twice parses its definition once.
// Latency, when set, delays every resolution to mimic a real asset pipeline; resolution aborts
// early when ctx is done. Safe for concurrent use.
type Library struct {
	fsys    fs.FS
	latency time.Duration

	mu    sync.Mutex
	cache map[string]*Renderable
}

// NewLibrary returns a library reading definitions from fsys.
func NewLibrary(fsys fs.FS) *Library {
	return &Library{fsys: fsys, cache: make(map[string]*Renderable)}
}

// DefaultLibrary returns a library over the embedded definitions (models/chair.yaml, ...).
func DefaultLibrary() *Library {
	return NewLibrary(embeddedModels)
}

// SetLatency sets the simulated per-resolution delay.
func (l *Library) SetLatency(d time.Duration) {
	l.latency = d
}

func (l *Library) wait(ctx context.Context) error {
	if l.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(l.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ResolveModel loads the definition at ref and returns its renderable.
func (l *Library) ResolveModel(ctx context.Context, ref string) (*Renderable, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	l.mu.Lock()
	if r, ok := l.cache[ref]; ok {
		l.mu.Unlock()
		return r, nil
	}
	l.mu.Unlock()

	data, err := fs.ReadFile(l.fsys, path.Clean(ref))
	if err != nil {
		return nil, errors.Wrapf(err, "read model %s", ref)
	}
	var def ModelDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errors.Wrapf(err, "parse model %s", ref)
	}
	r, err := modelRenderable(ref, def)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.cache[ref]; ok {
		return cached, nil
	}
	l.cache[ref] = r
	return r, nil
}

func modelRenderable(ref string, def ModelDef) (*Renderable, error) {
	if !knownPrimitives[def.Primitive] {
		return nil, errors.Errorf("model %s: unknown primitive %q", ref, def.Primitive)
	}
	sx, sy, sz := def.Size[0], def.Size[1], def.Size[2]
	if sx <= 0 || sy <= 0 || sz <= 0 {
		return nil, errors.Errorf("model %s: size must be positive, got %v", ref, def.Size)
	}
	color := def.Color
	if color == "" {
		color = defaultModelColor
	}
	return &Renderable{
		Kind:      KindModel,
		Source:    ref,
		Primitive: def.Primitive,
		Color:     color,
		Bounds:    math32.B3(-sx/2, 0, -sz/2, sx/2, sy, sz/2),
	}, nil
}

// ResolveView snapshots spec into a flat renderable centered on its node.
func (l *Library) ResolveView(ctx context.Context, spec ViewSpec) (*Renderable, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	if spec.Label == "" {
		return nil, errors.New("view: empty label")
	}
	w := viewPaddingWide + viewCharWidth*float32(len(spec.Label))
	s := spec
	return &Renderable{
		Kind:      KindView,
		Source:    spec.Label,
		Primitive: "quad",
		Color:     spec.Background,
		Bounds:    math32.B3(-w/2, -viewHeight/2, 0, w/2, viewHeight/2, 0),
		View:      &s,
	}, nil
}

// Cached returns the number of cached model renderables.
func (l *Library) Cached() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cache)
}
