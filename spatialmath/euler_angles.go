package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"go.viam.com/armsim/utils"
)

// EulerAngles are world (fixed axis) rotations in degrees: W about X, then P about Y, then R about
// Z. The equivalent rotation matrix is Rz(R) * Ry(P) * Rx(W).
type EulerAngles struct {
	W float64 `json:"w"`
	P float64 `json:"p"`
	R float64 `json:"r"`
}

// NewEulerAngles creates an empty EulerAngles struct.
func NewEulerAngles() *EulerAngles {
	return &EulerAngles{}
}

// Quaternion converts the Euler angles to a unit quaternion.
func (ea *EulerAngles) Quaternion() Quaternion {
	mq := mgl64.AnglesToQuat(utils.DegToRad(ea.R), utils.DegToRad(ea.P), utils.DegToRad(ea.W), mgl64.ZYX)
	q := NewQuaternion(mq.W, mq.V.X(), mq.V.Y(), mq.V.Z())
	q.Normalize()
	return q
}

// QuatToEulerAngles converts a quaternion to world Euler angles in degrees. At the ±90° pitch
// singularity W is reported as zero and the whole rotation about Z goes into R.
func QuatToEulerAngles(q Quaternion) *EulerAngles {
	rm := QuatToRotationMatrix(q)
	sinP := -rm.At(2, 0)
	const gimbalEpsilon = 1e-9
	if math.Abs(sinP) >= 1-gimbalEpsilon {
		p := math.Copysign(math.Pi/2, sinP)
		r := math.Atan2(-rm.At(0, 1), rm.At(1, 1))
		return &EulerAngles{W: 0, P: utils.RadToDeg(p), R: utils.RadToDeg(r)}
	}
	return &EulerAngles{
		W: utils.RadToDeg(math.Atan2(rm.At(2, 1), rm.At(2, 2))),
		P: utils.RadToDeg(math.Asin(sinP)),
		R: utils.RadToDeg(math.Atan2(rm.At(1, 0), rm.At(0, 0))),
	}
}
