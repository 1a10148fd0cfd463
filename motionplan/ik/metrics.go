package ik

import (
	spatial "go.viam.com/armsim/spatialmath"
)

// DefaultOrientationWeight converts radians of orientation error into millimeters so that
// position and orientation can share one error vector.
const DefaultOrientationWeight = 100.

// Metric scores how far one pose is from another. Lower is better.
type Metric func(from, to spatial.Pose) float64

// PoseErrorInto writes the six element error taking from to to into dst: the world position
// difference followed by the world axis angle rotation scaled by orientationWeight.
func PoseErrorInto(dst []float64, from, to spatial.Pose, orientationWeight float64) {
	dp := to.Point.Sub(from.Point)
	aa := spatial.QuatToR3AA(to.Orientation.Mul(from.Orientation.Conj())).Mul(orientationWeight)
	dst[0], dst[1], dst[2] = dp.X, dp.Y, dp.Z
	dst[3], dst[4], dst[5] = aa.X, aa.Y, aa.Z
}

// PoseError returns the error taking from to to. See PoseErrorInto.
func PoseError(from, to spatial.Pose, orientationWeight float64) []float64 {
	e := make([]float64, 6)
	PoseErrorInto(e, from, to, orientationWeight)
	return e
}

// NewSquaredNormMetric returns a metric giving the squared norm of the weighted pose error.
func NewSquaredNormMetric(orientationWeight float64) Metric {
	return func(from, to spatial.Pose) float64 {
		dist := to.Point.Sub(from.Point).Norm2()
		o := spatial.AngularDistance(from.Orientation, to.Orientation) * orientationWeight
		return dist + o*o
	}
}
