package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cogentcore.org/core/math32"

	"arplace/internal/anchor"
	"arplace/internal/assets"
	"arplace/internal/catalog"
	"arplace/internal/config"
	"arplace/internal/facing"
	"arplace/internal/logger"
	"arplace/internal/placement"
	"arplace/internal/scenegraph"
	"arplace/internal/selection"
)

// FloorHalfExtent bounds the detected floor plane on X and Z.
const FloorHalfExtent = 10

// DefaultStatus is shown until the first selection.
const DefaultStatus = "Select furniture to place"

var (
	ErrUnknownModel = errors.New("app: unknown model")
	ErrNoPlaneHit   = errors.New("app: no plane under tap")
)

// Options configures New. Zero values use the embedded catalog and models and an in-memory log.
type Options struct {
	Prefs     config.Prefs
	PrefsPath string // where grid/fps changes are saved; empty keeps them in memory
	Catalog   *catalog.Catalog
	Loader    assets.Loader
	Log       *logger.Logger
}

// App is the furniture-placement activity: the catalog list with its selection, the detected floor,
// the scene graph with placed objects, and the per-frame update that finalizes placements and turns
// controls toward the camera. Everything except asset loading runs on the caller's goroutine.
type App struct {
	Catalog   *catalog.Catalog
	Selection *selection.State
	Tracker   *anchor.Tracker
	Graph     *scenegraph.Graph
	Placement *placement.Manager
	Facing    *facing.Updater
	Sheet     *Sheet
	Log       *logger.Logger
	Prefs     config.Prefs

	prefsPath string
	floor     *anchor.Plane
	status    string
	camera    math32.Vector3
}

// New builds the activity from opts.
func New(opts Options) (*App, error) {
	prefs := opts.Prefs
	log := opts.Log
	if log == nil {
		log = logger.New("")
	}

	cat := opts.Catalog
	if cat == nil && prefs.CatalogPath != "" {
		var err error
		if cat, err = catalog.Load(prefs.CatalogPath); err != nil {
			return nil, err
		}
	}
	if cat == nil {
		cat = catalog.Default()
	}

	loader := opts.Loader
	if loader == nil {
		lib := assets.DefaultLibrary()
		if prefs.AssetsDir != "" {
			if _, err := os.Stat(prefs.AssetsDir); err != nil {
				return nil, fmt.Errorf("assets dir: %w", err)
			}
			lib = assets.NewLibrary(os.DirFS(prefs.AssetsDir))
		}
		lib.SetLatency(prefs.AssetLatency())
		loader = lib
	}

	g := scenegraph.New()
	tracker := anchor.NewTracker()
	mgr := placement.New(g, loader, log, placement.Options{
		Timeout: prefs.PlacementTimeout(),
		OnDrop: func(anc anchor.Anchor) {
			tracker.Detach(anc.ID())
		},
	})
	a := &App{
		Catalog:   cat,
		Selection: selection.New(),
		Tracker:   tracker,
		Graph:     g,
		Placement: mgr,
		Facing:    facing.New(g, mgr),
		Sheet:     NewSheet(),
		Log:       log,
		Prefs:     prefs,
		prefsPath: opts.PrefsPath,
		status:    DefaultStatus,
	}
	a.floor = a.Tracker.AddPlane(math32.Vec3(0, 0, 0), FloorHalfExtent, FloorHalfExtent)
	a.Selection.Subscribe(func(m catalog.ModelDescriptor) {
		a.status = selection.StatusText(m)
		a.Sheet.Collapse()
		a.Log.Log(a.status)
	})
	return a, nil
}

// Status is the label above the catalog list.
func (a *App) Status() string {
	return a.status
}

// SelectIndex selects the i-th catalog model.
func (a *App) SelectIndex(i int) error {
	m, ok := a.Catalog.At(i)
	if !ok {
		return fmt.Errorf("%w: index %d", ErrUnknownModel, i)
	}
	a.Selection.Set(m)
	return nil
}

// SelectTitle selects the catalog model with the given title (case-insensitive).
func (a *App) SelectTitle(title string) error {
	m, ok := a.Catalog.Find(title)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownModel, title)
	}
	a.Selection.Set(m)
	return nil
}

// TapPlane places the current selection where r meets a detected plane. Without a selection no
// anchor is created and the returned Pending fails with placement.ErrNoSelection.
func (a *App) TapPlane(ctx context.Context, r anchor.Ray) (*placement.Pending, error) {
	model := a.Selection.Selected()
	if model == nil {
		return a.Placement.Place(ctx, nil, nil), nil
	}
	hit, ok := a.Tracker.HitTest(r)
	if !ok {
		return nil, ErrNoPlaneHit
	}
	return a.Placement.Place(ctx, hit.CreateAnchor(), model), nil
}

// PlaceAt places the current selection on the floor at (x, z).
func (a *App) PlaceAt(ctx context.Context, x, z float32) (*placement.Pending, error) {
	return a.TapPlane(ctx, anchor.Ray{
		Origin: math32.Vec3(x, a.floor.Center.Y+10, z),
		Dir:    math32.Vec3(0, -1, 0),
	})
}

// Tap routes a screen tap: the nearest visible node under r receives it, otherwise the tap goes
// to the plane. The Pending is nil when a node took the tap.
func (a *App) Tap(ctx context.Context, r anchor.Ray) (*placement.Pending, error) {
	if id, ok := a.Pick(r); ok {
		a.TapNode(id)
		return nil, nil
	}
	return a.TapPlane(ctx, r)
}

// TapNode delivers a tap to a node that is showing a renderable. Hidden nodes cannot be tapped.
func (a *App) TapNode(id scenegraph.NodeID) bool {
	if a.Graph.Renderable(id) == nil {
		return false
	}
	return a.Graph.Tap(id)
}

// Update runs once per frame: finalize completed placements, then face controls toward camera.
func (a *App) Update(camera math32.Vector3) {
	a.camera = camera
	a.Placement.Poll()
	a.Facing.Tick(camera)
}

// Wait blocks until every in-flight placement is finalized, then runs one Update.
func (a *App) Wait(ctx context.Context) error {
	if err := a.Placement.Wait(ctx); err != nil {
		return err
	}
	a.Update(a.camera)
	return nil
}

// Camera returns the camera position passed to the last Update.
func (a *App) Camera() math32.Vector3 {
	return a.camera
}

// SetTracking pauses or resumes every anchor, as when the device loses and regains tracking.
func (a *App) SetTracking(state anchor.TrackingState) {
	a.Tracker.SetTracking(state)
	a.Log.Logf("Tracking %s", state)
}

// Close cancels in-flight placements.
func (a *App) Close() {
	a.Placement.Close()
}

func (a *App) savePrefs() {
	if a.prefsPath == "" {
		return
	}
	if err := config.Save(a.prefsPath, a.Prefs); err != nil {
		a.Log.Logf("Saving prefs: %v", err)
	}
}
