package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Pose is a position in millimeters and an orientation.
type Pose struct {
	Point       r3.Vector  `json:"point"`
	Orientation Quaternion `json:"orientation"`
}

// NewPose returns a pose at point with the given orientation, normalized.
func NewPose(point r3.Vector, o Quaternion) Pose {
	return Pose{Point: point, Orientation: o.Normalized()}
}

// NewZeroPose returns a pose at the origin with no rotation.
func NewZeroPose() Pose {
	return Pose{Orientation: NewZeroOrientation()}
}

// NewPoseFromPoint returns a pose at point with no rotation.
func NewPoseFromPoint(point r3.Vector) Pose {
	return Pose{Point: point, Orientation: NewZeroOrientation()}
}

// NewPoseFromEuler returns a pose from a position and world Euler angles in degrees.
func NewPoseFromEuler(point r3.Vector, ea *EulerAngles) Pose {
	return Pose{Point: point, Orientation: ea.Quaternion()}
}

// Compose returns the pose b expressed in the parent frame of a, i.e. a*b.
func Compose(a, b Pose) Pose {
	return Pose{
		Point:       a.Point.Add(a.Orientation.Rotate(b.Point)),
		Orientation: a.Orientation.Mul(b.Orientation).Normalized(),
	}
}

// Invert returns the pose which composed with p gives the zero pose.
func (p Pose) Invert() Pose {
	inv := p.Orientation.Conj()
	return Pose{
		Point:       inv.Rotate(p.Point).Mul(-1),
		Orientation: inv.Normalized(),
	}
}

// PoseBetween returns the pose taking a to b, expressed in a's frame: Compose(a, PoseBetween(a, b)) == b.
func PoseBetween(a, b Pose) Pose {
	return Compose(a.Invert(), b)
}

// PoseDelta returns the world-frame difference from a to b: the translation b - a and the
// rotation b * conj(a).
func PoseDelta(a, b Pose) Pose {
	return Pose{
		Point:       b.Point.Sub(a.Point),
		Orientation: b.Orientation.Mul(a.Orientation.Conj()).Normalized(),
	}
}

// EulerAngles returns the orientation as world Euler angles in degrees.
func (p Pose) EulerAngles() *EulerAngles {
	return QuatToEulerAngles(p.Orientation)
}

func (p Pose) String() string {
	ea := p.EulerAngles()
	return fmt.Sprintf("{X:%.3f Y:%.3f Z:%.3f W:%.3f P:%.3f R:%.3f}", p.Point.X, p.Point.Y, p.Point.Z, ea.W, ea.P, ea.R)
}

// PoseAlmostEqual reports whether two poses are within tol of each other in position (mm) and in
// rotation (radians).
func PoseAlmostEqual(a, b Pose, tol float64) bool {
	return a.Point.Sub(b.Point).Norm() < tol && AngularDistance(a.Orientation, b.Orientation) < tol
}

// Lerp linearly interpolates between two points.
func Lerp(a, b r3.Vector, mu float64) r3.Vector {
	return a.Add(b.Sub(a).Mul(mu))
}
