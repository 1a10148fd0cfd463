// Package spatialmath defines spatial mathematical operations: quaternions, rotation matrices,
// Euler angles and poses.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// magnitudeEpsilon is the smallest quaternion magnitude we are willing to divide by.
const magnitudeEpsilon = 1e-12

// slerpLinearThreshold is the dot product above which Slerp falls back to normalized lerp, as
// sin(theta) gets too close to zero to divide by.
const slerpLinearThreshold = 0.9995

// Quaternion is a (w, x, y, z) quaternion stored as a gonum quat.Number, where Real is w and
// Imag, Jmag, Kmag are x, y, z. Only unit quaternions represent rotations.
type Quaternion quat.Number

// NewQuaternion returns the quaternion w + xi + yj + zk.
func NewQuaternion(w, x, y, z float64) Quaternion {
	return Quaternion{Real: w, Imag: x, Jmag: y, Kmag: z}
}

// NewZeroOrientation returns the identity quaternion, which signifies no rotation.
func NewZeroOrientation() Quaternion {
	return Quaternion{Real: 1}
}

// W returns the scalar component.
func (q Quaternion) W() float64 { return q.Real }

// X returns the i component.
func (q Quaternion) X() float64 { return q.Imag }

// Y returns the j component.
func (q Quaternion) Y() float64 { return q.Jmag }

// Z returns the k component.
func (q Quaternion) Z() float64 { return q.Kmag }

// Number returns q as a gonum quaternion.
func (q Quaternion) Number() quat.Number {
	return quat.Number(q)
}

// Magnitude returns sqrt(w²+x²+y²+z²).
func (q Quaternion) Magnitude() float64 {
	return quat.Abs(quat.Number(q))
}

// Normalize scales q in place to unit magnitude. A quaternion whose magnitude is too small to
// divide by is replaced by the identity.
func (q *Quaternion) Normalize() {
	mag := q.Magnitude()
	if mag < magnitudeEpsilon {
		*q = NewZeroOrientation()
		return
	}
	*q = Quaternion(quat.Scale(1/mag, quat.Number(*q)))
}

// Normalized returns a unit copy of q, leaving q untouched.
func (q Quaternion) Normalized() Quaternion {
	q.Normalize()
	return q
}

// Conj returns the conjugate of q.
func (q Quaternion) Conj() Quaternion {
	return Quaternion(quat.Conj(quat.Number(q)))
}

// Scale returns q multiplied by the scalar f.
func (q Quaternion) Scale(f float64) Quaternion {
	return Quaternion(quat.Scale(f, quat.Number(q)))
}

// Dot returns the 4D dot product of q and o.
func (q Quaternion) Dot(o Quaternion) float64 {
	return q.Real*o.Real + q.Imag*o.Imag + q.Jmag*o.Jmag + q.Kmag*o.Kmag
}

// Mul returns the Hamilton product q*o. Neither operand is modified.
func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion(quat.Mul(quat.Number(q), quat.Number(o)))
}

// Mul returns the left-to-right Hamilton product q1*q2*...*qn. With no arguments it returns the
// identity.
func Mul(qs ...Quaternion) Quaternion {
	ret := NewZeroOrientation()
	for _, q := range qs {
		ret = ret.Mul(q)
	}
	return ret
}

// Rotate applies the rotation represented by the unit quaternion q to v.
func (q Quaternion) Rotate(v r3.Vector) r3.Vector {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	n := quat.Number(q)
	r := quat.Mul(quat.Mul(n, p), quat.Conj(n))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// Slerp spherically interpolates between q1 and q2 along the shorter arc. mu = 0 returns q1 and
// mu = 1 returns q2.
func Slerp(q1, q2 Quaternion, mu float64) Quaternion {
	if mu <= 0 {
		return q1
	}
	if mu >= 1 {
		return q2
	}
	a := q1.Normalized()
	b := q2.Normalized()
	dot := a.Dot(b)
	if dot < 0 {
		b = b.Scale(-1)
		dot = -dot
	}

	if dot > slerpLinearThreshold {
		ret := Quaternion(quat.Add(quat.Scale(1-mu, quat.Number(a)), quat.Scale(mu, quat.Number(b))))
		ret.Normalize()
		return ret
	}

	theta := math.Acos(dot)
	sinTheta := math.Sin(theta)
	wa := math.Sin((1-mu)*theta) / sinTheta
	wb := math.Sin(mu*theta) / sinTheta
	return Quaternion(quat.Add(quat.Scale(wa, quat.Number(a)), quat.Scale(wb, quat.Number(b))))
}

// AngularDistance returns the angle in radians, in [0, π], of the rotation taking q1 to q2.
func AngularDistance(q1, q2 Quaternion) float64 {
	r := q1.Normalized().Conj().Mul(q2.Normalized())
	v := math.Sqrt(r.Imag*r.Imag + r.Jmag*r.Jmag + r.Kmag*r.Kmag)
	if v < magnitudeEpsilon {
		return 0
	}
	return 2 * math.Atan2(v, math.Abs(r.Real))
}

// QuatToR3AA converts a quaternion to an R3 axis angle: a vector along the rotation axis whose
// length is the rotation angle in radians, always taking the rotation of at most π.
func QuatToR3AA(q Quaternion) r3.Vector {
	q.Normalize()
	if q.Real < 0 {
		q = q.Scale(-1)
	}
	v := r3.Vector{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
	sinHalf := v.Norm()
	if sinHalf < 1e-9 {
		// small angle: theta ≈ 2 sin(theta/2)
		return v.Mul(2)
	}
	theta := 2 * math.Atan2(sinHalf, q.Real)
	return v.Mul(theta / sinHalf)
}

// R3AAToQuat is the inverse of QuatToR3AA.
func R3AAToQuat(aa r3.Vector) Quaternion {
	theta := aa.Norm()
	if theta < 1e-12 {
		return NewZeroOrientation()
	}
	axis := aa.Mul(1 / theta)
	return NewAxisAngle(axis, theta)
}

// NewAxisAngle returns the unit quaternion rotating theta radians about axis.
func NewAxisAngle(axis r3.Vector, theta float64) Quaternion {
	n := axis.Norm()
	if n < magnitudeEpsilon {
		return NewZeroOrientation()
	}
	s, c := math.Sincos(theta / 2)
	axis = axis.Mul(s / n)
	return NewQuaternion(c, axis.X, axis.Y, axis.Z)
}

// QuaternionAlmostEqual compares each component of two quaternions.
func QuaternionAlmostEqual(a, b Quaternion, tol float64) bool {
	return math.Abs(a.Real-b.Real) < tol &&
		math.Abs(a.Imag-b.Imag) < tol &&
		math.Abs(a.Jmag-b.Jmag) < tol &&
		math.Abs(a.Kmag-b.Kmag) < tol
}

// OrientationAlmostEqual reports whether a and b represent the same rotation, treating q and -q
// as equal.
func OrientationAlmostEqual(a, b Quaternion, tol float64) bool {
	return QuaternionAlmostEqual(a.Normalized(), b.Normalized(), tol) ||
		QuaternionAlmostEqual(a.Normalized(), b.Normalized().Scale(-1), tol)
}
