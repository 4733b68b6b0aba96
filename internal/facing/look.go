package facing

import "cogentcore.org/core/math32"

// epsilon below which a direction or cross product counts as degenerate.
const epsilon = 1e-6

var (
	worldUp      = math32.Vec3(0, 1, 0)
	worldForward = math32.Vec3(0, 0, 1)
)

// LookRotation returns the rotation that maps local +Z onto dir while keeping local +Y as close
// to up as possible. When dir is parallel to up, world +Z takes the place of up. It returns false
// for a zero or non-finite dir; callers keep their previous orientation in that case.
func LookRotation(dir, up math32.Vector3) (math32.Quat, bool) {
	if !finite(dir) || !finite(up) {
		return math32.Quat{W: 1}, false
	}
	l := dir.Length()
	if l < epsilon {
		return math32.Quat{W: 1}, false
	}
	f := dir.DivScalar(l)

	r := up.Cross(f)
	if r.Length() < epsilon {
		r = worldForward.Cross(f)
		if r.Length() < epsilon {
			r = worldUp.Cross(f)
		}
	}
	r = r.DivScalar(r.Length())
	u := f.Cross(r)

	var m math32.Matrix4
	m.SetBasis(r, u, f)
	var q math32.Quat
	q.SetFromRotationMatrix(&m)
	return q, true
}

func finite(v math32.Vector3) bool {
	for _, c := range [3]float32{v.X, v.Y, v.Z} {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
