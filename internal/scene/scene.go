package scene

import (
	"cogentcore.org/core/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"arplace/internal/anchor"
	"arplace/internal/assets"
	"arplace/internal/scenegraph"
	"arplace/internal/ui"
)

const (
	gridExtent     = 20
	gridMinorStep  = 1
	gridMajorStep  = 5
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
	quadDepth      = 0.01
	labelFontSize  = 16
	cylinderSlices = 24
)

var (
	floorColor    = rl.NewColor(70, 90, 110, 90)
	fallbackColor = rl.NewColor(200, 200, 200, 255)
	wireColor     = rl.NewColor(20, 20, 20, 160)
)

// label is the text of a view renderable, drawn in 2D over its projected position.
type label struct {
	text  string
	pos   rl.Vector3
	color rl.Color
}

// Scene holds the preview camera and draws the detected floor and every node of a scene graph
// that shows a renderable. The camera orbits the floor by default so controls visibly turn
// toward it.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool
	Orbit       bool
	labels      []label
}

// New returns a scene with a perspective camera looking at the floor center from eye height.
func New() *Scene {
	s := &Scene{GridVisible: true, Orbit: true}
	s.Camera.Position = rl.NewVector3(0, 2.2, 5)
	s.Camera.Target = rl.NewVector3(0, 0.4, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 50
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// SetGridVisible sets whether the grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Update runs once per frame. While Orbit is on, raylib's orbital camera circles the target.
func (s *Scene) Update() {
	if s.Orbit {
		rl.UpdateCamera(&s.Camera, rl.CameraOrbital)
	}
}

// CameraPosition is the camera position in scene coordinates.
func (s *Scene) CameraPosition() math32.Vector3 {
	p := s.Camera.Position
	return math32.Vec3(p.X, p.Y, p.Z)
}

// MouseRay returns the world ray under the mouse cursor.
func (s *Scene) MouseRay() anchor.Ray {
	r := rl.GetScreenToWorldRay(rl.GetMousePosition(), s.Camera)
	return anchor.Ray{
		Origin: math32.Vec3(r.Position.X, r.Position.Y, r.Position.Z),
		Dir:    math32.Vec3(r.Direction.X, r.Direction.Y, r.Direction.Z),
	}
}

// Draw renders the floor planes, the grid and every visible node of g, then the labels of
// view renderables as a 2D overlay. Call after ClearBackground and before other 2D overlays.
func (s *Scene) Draw(g *scenegraph.Graph, planes []*anchor.Plane) {
	s.labels = s.labels[:0]
	rl.BeginMode3D(s.Camera)
	for _, p := range planes {
		size := rl.NewVector2(2*p.HalfExtent.X, 2*p.HalfExtent.Y)
		rl.DrawPlane(rl.NewVector3(p.Center.X, p.Center.Y-0.001, p.Center.Z), size, floorColor)
	}
	if s.GridVisible {
		drawGrid()
	}
	g.Walk(func(id scenegraph.NodeID, _ int) bool {
		if r := g.Renderable(id); r != nil {
			s.drawNode(g, id, r)
		}
		return true
	})
	rl.EndMode3D()

	for _, l := range s.labels {
		p := rl.GetWorldToScreen(l.pos, s.Camera)
		w := rl.MeasureText(l.text, labelFontSize)
		rl.DrawText(l.text, int32(p.X)-w/2, int32(p.Y)-labelFontSize/2, labelFontSize, l.color)
	}
}

// drawNode draws one renderable at the node's world transform.
func (s *Scene) drawNode(g *scenegraph.Graph, id scenegraph.NodeID, r *assets.Renderable) {
	pos, err := g.WorldPosition(id)
	if err != nil {
		return
	}
	rot, _ := g.WorldRotation(id)
	scale := g.WorldScale(id)
	color, ok := ui.ParseHexColor(r.Color)
	if !ok {
		color = fallbackColor
	}
	center := toRL(r.Bounds.Center())
	size := toRL(r.Bounds.Size())

	axis, angle := axisAngle(rot)
	rl.PushMatrix()
	rl.Translatef(pos.X, pos.Y, pos.Z)
	rl.Rotatef(angle, axis.X, axis.Y, axis.Z)
	rl.Scalef(scale, scale, scale)
	switch r.Primitive {
	case "cylinder":
		base := rl.NewVector3(center.X, r.Bounds.Min.Y, center.Z)
		radius := size.X / 2
		rl.DrawCylinder(base, radius, radius, size.Y, cylinderSlices, color)
		rl.DrawCylinderWires(base, radius, radius, size.Y, cylinderSlices, wireColor)
	case "sphere":
		rl.DrawSphere(center, size.Y/2, color)
	case "quad":
		size.Z = quadDepth
		rl.DrawCubeV(center, size, color)
	default:
		rl.DrawCubeV(center, size, color)
		rl.DrawCubeWiresV(center, size, wireColor)
	}
	rl.PopMatrix()

	if r.Kind == assets.KindView && r.View != nil {
		fg, ok := ui.ParseHexColor(r.View.Foreground)
		if !ok {
			fg = rl.White
		}
		s.labels = append(s.labels, label{text: r.View.Label, pos: toRL(pos), color: fg})
	}
}

// axisAngle converts a unit quaternion to an axis and an angle in degrees for rl.Rotatef.
func axisAngle(q math32.Quat) (math32.Vector3, float32) {
	w := math32.Clamp(q.W, -1, 1)
	s := math32.Sqrt(1 - w*w)
	if s < 1e-6 {
		return math32.Vec3(0, 1, 0), 0
	}
	return math32.Vec3(q.X/s, q.Y/s, q.Z/s), 2 * math32.Acos(w) * rl.Rad2deg
}

func toRL(v math32.Vector3) rl.Vector3 {
	return rl.NewVector3(v.X, v.Y, v.Z)
}

// drawGrid draws a grid on the XZ plane with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(i), 0, -gridExtent
		end.X, end.Y, end.Z = float32(i), 0, gridExtent
		rl.DrawLine3D(start, end, c)
		start.X, start.Z = -gridExtent, float32(i)
		end.X, end.Z = gridExtent, float32(i)
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = -gridExtent, 0.001, 0
	end.X, end.Y, end.Z = gridExtent, 0.001, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Z = 0, -gridExtent
	end.X, end.Z = 0, gridExtent
	rl.DrawLine3D(start, end, axisZ)
}
