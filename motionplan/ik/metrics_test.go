package ik

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	spatial "go.viam.com/armsim/spatialmath"
)

func TestPoseError(t *testing.T) {
	from := spatial.NewPoseFromPoint(r3.Vector{X: 1})
	to := spatial.NewPose(r3.Vector{X: 4, Y: 4}, spatial.NewAxisAngle(r3.Vector{Z: 1}, 0.1))
	e := PoseError(from, to, 100)
	test.That(t, e[0], test.ShouldAlmostEqual, 3.)
	test.That(t, e[1], test.ShouldAlmostEqual, 4.)
	test.That(t, e[5], test.ShouldAlmostEqual, 10.)

	sq := NewSquaredNormMetric(100)(from, to)
	test.That(t, sq, test.ShouldAlmostEqual, 25.+100.)
	test.That(t, NewSquaredNormMetric(100)(to, to), test.ShouldAlmostEqual, 0.)

	half := spatial.NewPose(r3.Vector{}, spatial.NewAxisAngle(r3.Vector{X: 1}, math.Pi/2))
	e = PoseError(spatial.NewZeroPose(), half, 1)
	test.That(t, e[3], test.ShouldAlmostEqual, math.Pi/2)
}
