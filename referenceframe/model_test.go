package referenceframe

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	spatial "go.viam.com/armsim/spatialmath"
)

const defaultFloatPrecision = 1e-6

func TestForwardKinematics(t *testing.T) {
	c := DefaultChain()
	test.That(t, c.Name(), test.ShouldEqual, "armsim6")
	test.That(t, c.DoF(), test.ShouldEqual, 6)
	test.That(t, len(c.Limits()), test.ShouldEqual, 6)

	home, err := c.Transform(make([]float64, 6))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatial.PoseAlmostEqual(home, spatial.NewPoseFromPoint(r3.Vector{X: 550, Z: 805}), defaultFloatPrecision),
		test.ShouldBeTrue)

	// base rotation swings the arm to +Y
	pose, err := c.Transform([]float64{math.Pi / 2, 0, 0, 0, 0, 0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose.Point.X, test.ShouldAlmostEqual, 0.)
	test.That(t, pose.Point.Y, test.ShouldAlmostEqual, 550.)
	test.That(t, pose.Point.Z, test.ShouldAlmostEqual, 805.)
	test.That(t, spatial.OrientationAlmostEqual(pose.Orientation, spatial.NewAxisAngle(r3.Vector{Z: 1}, math.Pi/2), 1e-9),
		test.ShouldBeTrue)

	// wrist pitch points the flange down
	pose, err = c.Transform([]float64{0, 0, 0, 0, math.Pi / 2, 0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose.Point.X, test.ShouldAlmostEqual, 470.)
	test.That(t, pose.Point.Z, test.ShouldAlmostEqual, 725.)

	// forward kinematics does not touch joint state
	test.That(t, c.Angles(), test.ShouldResemble, make([]float64, 6))

	_, err = c.Transform(make([]float64, 7))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, NewIncorrectDoFError(7, 6).Error())
}

func TestToolOffset(t *testing.T) {
	c := DefaultChain()
	c.SetTool(spatial.NewPoseFromPoint(r3.Vector{X: 100}))

	zeros := make([]float64, 6)
	flange, err := c.FlangeTransform(zeros)
	test.That(t, err, test.ShouldBeNil)
	tcp, err := c.Transform(zeros)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, flange.Point.X, test.ShouldAlmostEqual, 550.)
	test.That(t, tcp.Point.X, test.ShouldAlmostEqual, 650.)

	pt, err := c.ForwardKinematics(zeros)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pt.HasJoints(), test.ShouldBeTrue)
	test.That(t, spatial.PoseAlmostEqual(pt.Pose, c.CurrentPose(), defaultFloatPrecision), test.ShouldBeTrue)
}

func TestJointState(t *testing.T) {
	c := DefaultChain()
	err := c.SetJointAngles([]float64{-math.Pi / 2, 0, 0, 0, 0, 7})
	test.That(t, err, test.ShouldBeNil)
	angles := c.Angles()
	test.That(t, angles[0], test.ShouldAlmostEqual, 3*math.Pi/2)
	test.That(t, angles[5], test.ShouldAlmostEqual, 7-2*math.Pi)

	// Angles is a copy
	angles[1] = 1
	test.That(t, c.Joint(1).Rotation(), test.ShouldEqual, 0.)

	test.That(t, c.InRange(c.Angles()), test.ShouldBeNil)
	err = c.InRange([]float64{math.Pi, 0, 0, 0, 0, 0})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, ErrJointOutOfRange.Error())

	test.That(t, c.SetJointAngles([]float64{1}), test.ShouldNotBeNil)
	test.That(t, c.SetSpeedRatio(0), test.ShouldNotBeNil)
	test.That(t, c.SetSpeedRatio(0.5), test.ShouldBeNil)
	test.That(t, c.SpeedRatio(), test.ShouldEqual, 0.5)
}

func TestChainUserFrame(t *testing.T) {
	c := DefaultChain()
	p := spatial.NewPoseFromPoint(r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, c.ToNative(p), test.ShouldResemble, p)

	uf := NewUserFrame("table")
	uf.Offset = r3.Vector{X: 500}
	uf.Orientation = spatial.NewAxisAngle(r3.Vector{Z: 1}, math.Pi/2)
	c.SetUser(uf)
	test.That(t, c.User(), test.ShouldEqual, uf)

	native := c.ToNative(p)
	test.That(t, native.Point.X, test.ShouldAlmostEqual, 498.)
	test.That(t, native.Point.Y, test.ShouldAlmostEqual, 1.)
	test.That(t, spatial.PoseAlmostEqual(c.FromNative(native), p, defaultFloatPrecision), test.ShouldBeTrue)
}

func TestNewChainErrors(t *testing.T) {
	j, err := NewJoint("a", r3.Vector{Z: 1}, r3.Vector{}, NewUnboundedLimit())
	test.That(t, err, test.ShouldBeNil)
	_, err = NewChain("short", []*Joint{j}, spatial.NewZeroPose())
	test.That(t, err, test.ShouldNotBeNil)

	_, err = NewJoint("b", r3.Vector{}, r3.Vector{}, NewUnboundedLimit())
	test.That(t, err, test.ShouldNotBeNil)
}
