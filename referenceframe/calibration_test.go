package referenceframe

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	spatial "go.viam.com/armsim/spatialmath"
)

var (
	tcp        = r3.Vector{X: 10, Y: -20, Z: 150}
	fixedPoint = r3.Vector{X: 600, Y: 50, Z: 300}
)

// flangeTouching returns the flange pose that puts tcp on fixedPoint with the given orientation.
func flangeTouching(o spatial.Quaternion) *Point {
	return NewPoint(spatial.NewPose(fixedPoint.Sub(o.Rotate(tcp)), o))
}

func teachApproach(t *testing.T, f *Frame, orients ...spatial.Quaternion) {
	t.Helper()
	for i, o := range orients {
		test.That(t, f.SetTeachPoint(TeachApproach1+i, flangeTouching(o)), test.ShouldBeNil)
	}
}

func TestToolTeach3Point(t *testing.T) {
	tf := NewToolFrame("gripper")
	teachApproach(t, &tf.Frame,
		(&spatial.EulerAngles{W: 180}).Quaternion(),
		(&spatial.EulerAngles{W: 150, P: 20}).Quaternion(),
		(&spatial.EulerAngles{W: 160, P: -10, R: 35}).Quaternion(),
	)
	test.That(t, tf.Teach3Point(), test.ShouldBeNil)
	test.That(t, tf.Offset.Sub(tcp).Norm(), test.ShouldBeLessThan, 1e-6)
	test.That(t, tf.Orientation, test.ShouldResemble, spatial.NewZeroOrientation())
}

func TestToolTeach3PointDegenerate(t *testing.T) {
	previous := r3.Vector{X: 1, Y: 2, Z: 3}

	t.Run("collinear without reorienting", func(t *testing.T) {
		tf := NewToolFrame("gripper")
		tf.Offset = previous
		o := (&spatial.EulerAngles{W: 180}).Quaternion()
		for i := 0; i < 3; i++ {
			p := NewPoint(spatial.NewPose(r3.Vector{X: 400 + 50*float64(i), Z: 300}, o))
			test.That(t, tf.SetTeachPoint(i, p), test.ShouldBeNil)
		}
		err := tf.Teach3Point()
		test.That(t, errors.Is(err, ErrCalibrationDegenerate), test.ShouldBeTrue)
		test.That(t, tf.Offset, test.ShouldResemble, previous)
	})

	t.Run("rotation about one axis", func(t *testing.T) {
		tf := NewToolFrame("gripper")
		tf.Offset = previous
		teachApproach(t, &tf.Frame,
			(&spatial.EulerAngles{R: 0}).Quaternion(),
			(&spatial.EulerAngles{R: 30}).Quaternion(),
			(&spatial.EulerAngles{R: 60}).Quaternion(),
		)
		err := tf.Teach3Point()
		test.That(t, errors.Is(err, ErrCalibrationDegenerate), test.ShouldBeTrue)
		test.That(t, tf.Offset, test.ShouldResemble, previous)
	})

	t.Run("inconsistent touches", func(t *testing.T) {
		tf := NewToolFrame("gripper")
		tf.Offset = previous
		teachApproach(t, &tf.Frame,
			(&spatial.EulerAngles{W: 180}).Quaternion(),
			(&spatial.EulerAngles{W: 150, P: 20}).Quaternion(),
			(&spatial.EulerAngles{W: 160, P: -10, R: 35}).Quaternion(),
		)
		moved := tf.TeachPoint(TeachApproach3).Copy()
		moved.Point = moved.Point.Add(r3.Vector{Z: 40})
		test.That(t, tf.SetTeachPoint(TeachApproach3, moved), test.ShouldBeNil)
		err := tf.Teach3Point()
		test.That(t, errors.Is(err, ErrCalibrationDegenerate), test.ShouldBeTrue)
		test.That(t, tf.Offset, test.ShouldResemble, previous)
	})

	t.Run("missing point", func(t *testing.T) {
		tf := NewToolFrame("gripper")
		err := tf.Teach3Point()
		test.That(t, errors.Is(err, ErrMissingTeachPoint), test.ShouldBeTrue)
	})
}

func TestToolTeach6Point(t *testing.T) {
	tf := NewToolFrame("gripper")
	teachApproach(t, &tf.Frame,
		(&spatial.EulerAngles{W: 180}).Quaternion(),
		(&spatial.EulerAngles{W: 150, P: 20}).Quaternion(),
		(&spatial.EulerAngles{W: 160, P: -10, R: 35}).Quaternion(),
	)

	// the tool is mounted rotated 90 degrees about the flange z axis
	toolOrient := spatial.NewAxisAngle(r3.Vector{Z: 1}, 1.5707963267948966)
	originOrient := (&spatial.EulerAngles{W: 170, R: 20}).Quaternion()
	toolAxes := spatial.Mul(originOrient, toolOrient)
	origin := flangeTouching(originOrient)
	xPoint := origin.Copy()
	xPoint.Point = xPoint.Point.Add(toolAxes.Rotate(r3.Vector{X: 100}))
	yPoint := origin.Copy()
	yPoint.Point = yPoint.Point.Add(toolAxes.Rotate(r3.Vector{Y: 60}))
	test.That(t, tf.SetTeachPoint(TeachOrientOrigin, origin), test.ShouldBeNil)
	test.That(t, tf.SetTeachPoint(TeachXDirection, xPoint), test.ShouldBeNil)
	test.That(t, tf.SetTeachPoint(TeachYDirection, yPoint), test.ShouldBeNil)

	test.That(t, tf.Teach6Point(), test.ShouldBeNil)
	test.That(t, tf.Offset.Sub(tcp).Norm(), test.ShouldBeLessThan, 1e-6)
	test.That(t, spatial.OrientationAlmostEqual(tf.Orientation, toolOrient, 1e-6), test.ShouldBeTrue)

	// x and y points on the same line leave the frame alone
	test.That(t, tf.SetTeachPoint(TeachYDirection, xPoint), test.ShouldBeNil)
	err := tf.Teach6Point()
	test.That(t, errors.Is(err, ErrCalibrationDegenerate), test.ShouldBeTrue)
	test.That(t, spatial.OrientationAlmostEqual(tf.Orientation, toolOrient, 1e-6), test.ShouldBeTrue)
}

func TestUserTeach(t *testing.T) {
	uf := NewUserFrame("table")
	o := r3.Vector{X: 100, Y: 200, Z: 50}
	test.That(t, uf.SetTeachPoint(TeachOrientOrigin, NewPoint(spatial.NewPoseFromPoint(o))), test.ShouldBeNil)
	test.That(t, uf.SetTeachPoint(TeachXDirection, NewPoint(spatial.NewPoseFromPoint(o.Add(r3.Vector{Y: 100})))),
		test.ShouldBeNil)
	test.That(t, uf.SetTeachPoint(TeachYDirection, NewPoint(spatial.NewPoseFromPoint(o.Add(r3.Vector{X: -50, Y: 30})))),
		test.ShouldBeNil)

	test.That(t, uf.Teach3Point(), test.ShouldBeNil)
	test.That(t, uf.Offset, test.ShouldResemble, o)
	q90z := spatial.NewAxisAngle(r3.Vector{Z: 1}, 1.5707963267948966)
	test.That(t, spatial.OrientationAlmostEqual(uf.Orientation, q90z, 1e-9), test.ShouldBeTrue)

	// a point along the frame's x axis is along native +Y
	native := uf.ToNative(spatial.NewPoseFromPoint(r3.Vector{X: 10}))
	test.That(t, native.Point.Sub(o.Add(r3.Vector{Y: 10})).Norm(), test.ShouldBeLessThan, 1e-9)
	back := uf.FromNative(native)
	test.That(t, back.Point.Sub(r3.Vector{X: 10}).Norm(), test.ShouldBeLessThan, 1e-9)

	err := uf.Teach4Point()
	test.That(t, errors.Is(err, ErrMissingTeachPoint), test.ShouldBeTrue)
	test.That(t, uf.SetTeachPoint(TeachOrigin, NewPoint(spatial.NewZeroPose())), test.ShouldBeNil)
	test.That(t, uf.Teach4Point(), test.ShouldBeNil)
	test.That(t, uf.Offset, test.ShouldResemble, r3.Vector{})
	test.That(t, spatial.OrientationAlmostEqual(uf.Orientation, q90z, 1e-9), test.ShouldBeTrue)

	test.That(t, uf.SetTeachPoint(TeachYDirection, NewPoint(spatial.NewPoseFromPoint(o.Add(r3.Vector{Y: -30})))),
		test.ShouldBeNil)
	err = uf.Teach3Point()
	test.That(t, errors.Is(err, ErrCalibrationDegenerate), test.ShouldBeTrue)
	test.That(t, uf.Offset, test.ShouldResemble, r3.Vector{})

	uf.ClearTeachPoints()
	test.That(t, uf.TeachPoint(TeachOrientOrigin), test.ShouldBeNil)
	test.That(t, uf.SetTeachPoint(NumTeachPoints, NewPoint(spatial.NewZeroPose())), test.ShouldNotBeNil)
}

func TestSetDirect(t *testing.T) {
	uf := NewUserFrame("direct")
	uf.SetDirect(r3.Vector{X: 20000, Y: -5, Z: -20000}, spatial.EulerAngles{W: 190, P: -540, R: 45})
	test.That(t, uf.Offset, test.ShouldResemble, r3.Vector{X: MaxFrameOffset, Y: -5, Z: -MaxFrameOffset})
	expected := (&spatial.EulerAngles{W: -170, P: 180, R: 45}).Quaternion()
	test.That(t, spatial.OrientationAlmostEqual(uf.Orientation, expected, 1e-9), test.ShouldBeTrue)
}
