package spatialmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestRotationMatrixRoundTrip(t *testing.T) {
	//nolint:gosec
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		q := randomUnitQuaternion(rnd)
		back := QuatToRotationMatrix(q).Quaternion()
		test.That(t, OrientationAlmostEqual(q, back, 1e-9), test.ShouldBeTrue)
	}
}

func TestRotationMatrixNonUnit(t *testing.T) {
	// A scaled quaternion produces the same orthonormal matrix.
	rm := QuatToRotationMatrix(q90z.Scale(3))
	for i := 0; i < 3; i++ {
		test.That(t, rm.Row(i).Norm(), test.ShouldAlmostEqual, 1.)
	}
	test.That(t, rm.At(0, 1), test.ShouldAlmostEqual, -1.)
	test.That(t, rm.At(1, 0), test.ShouldAlmostEqual, 1.)
	test.That(t, rm.At(2, 2), test.ShouldAlmostEqual, 1.)

	v := rm.MulVec(r3.Vector{X: 2})
	test.That(t, v.Y, test.ShouldAlmostEqual, 2.)

	identity := QuatToRotationMatrix(NewQuaternion(0, 0, 0, 0))
	test.That(t, identity.Quaternion(), test.ShouldResemble, NewZeroOrientation())
}

func TestOrthonormalAxes(t *testing.T) {
	x, y, z, err := OrthonormalAxes(r3.Vector{X: 0, Y: 10}, r3.Vector{X: -3, Y: 4})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, x.Y, test.ShouldAlmostEqual, 1.)
	test.That(t, y.X, test.ShouldAlmostEqual, -1.)
	test.That(t, z.Z, test.ShouldAlmostEqual, 1.)

	q := NewRotationMatrixFromAxes(x, y, z).Quaternion()
	test.That(t, OrientationAlmostEqual(q, q90z, 1e-9), test.ShouldBeTrue)
	test.That(t, NewRotationMatrixFromAxes(x, y, z).Col(0), test.ShouldResemble, x)

	_, _, _, err = OrthonormalAxes(r3.Vector{X: 1}, r3.Vector{X: 5})
	test.That(t, err, test.ShouldBeError, ErrDegenerateAxes)
	_, _, _, err = OrthonormalAxes(r3.Vector{}, r3.Vector{Y: 5})
	test.That(t, err, test.ShouldBeError, ErrDegenerateAxes)
}

func TestEulerAngles(t *testing.T) {
	test.That(t, OrientationAlmostEqual(ea45x.Quaternion(), q45x, 1e-9), test.ShouldBeTrue)
	ea := QuatToEulerAngles(q45x)
	test.That(t, ea.W, test.ShouldAlmostEqual, 45.)
	test.That(t, ea.P, test.ShouldAlmostEqual, 0.)
	test.That(t, ea.R, test.ShouldAlmostEqual, 0.)

	ea = QuatToEulerAngles(q90z)
	test.That(t, ea.R, test.ShouldAlmostEqual, 90.)

	// World angles: W about X is applied first, then P about Y, then R about Z.
	combined := (&EulerAngles{W: 30, P: -20, R: 110}).Quaternion()
	expected := Mul(
		NewAxisAngle(r3.Vector{Z: 1}, 110*math.Pi/180),
		NewAxisAngle(r3.Vector{Y: 1}, -20*math.Pi/180),
		NewAxisAngle(r3.Vector{X: 1}, 30*math.Pi/180),
	)
	test.That(t, OrientationAlmostEqual(combined, expected, 1e-9), test.ShouldBeTrue)

	back := QuatToEulerAngles(combined)
	test.That(t, back.W, test.ShouldAlmostEqual, 30., 1e-9)
	test.That(t, back.P, test.ShouldAlmostEqual, -20., 1e-9)
	test.That(t, back.R, test.ShouldAlmostEqual, 110., 1e-9)

	// At the pitch singularity the rotation still round trips.
	gimbal := (&EulerAngles{W: 0, P: 90, R: 40}).Quaternion()
	test.That(t, OrientationAlmostEqual(QuatToEulerAngles(gimbal).Quaternion(), gimbal, 1e-6), test.ShouldBeTrue)
}
