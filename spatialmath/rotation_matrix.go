package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// ErrDegenerateAxes is returned when a set of axes cannot be made into a right-handed
// orthonormal basis.
var ErrDegenerateAxes = errors.New("axes are degenerate")

// RotationMatrix is a 3x3 matrix in row major order.
// m[3*r + c] is the element in the r'th row and c'th column.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix creates a rotation matrix from row-major values. The values are not checked
// for orthonormality.
func NewRotationMatrix(m [9]float64) *RotationMatrix {
	return &RotationMatrix{mat: m}
}

// NewRotationMatrixFromAxes builds the rotation whose columns are the given frame axes. The axes
// are used as given, so they must already be orthonormal.
func NewRotationMatrixFromAxes(x, y, z r3.Vector) *RotationMatrix {
	return &RotationMatrix{mat: [9]float64{
		x.X, y.X, z.X,
		x.Y, y.Y, z.Y,
		x.Z, y.Z, z.Z,
	}}
}

// OrthonormalAxes builds a right-handed orthonormal frame from an x direction and a second
// direction lying in the xy plane on the positive y side. An error is returned when either vector
// is zero or the two are parallel.
func OrthonormalAxes(xDir, xyDir r3.Vector) (x, y, z r3.Vector, err error) {
	const minNorm = 1e-6
	if xDir.Norm() < minNorm || xyDir.Norm() < minNorm {
		return x, y, z, ErrDegenerateAxes
	}
	x = xDir.Normalize()
	z = x.Cross(xyDir)
	// Parallel inputs leave nothing to define the plane with.
	if z.Norm() < minNorm*xyDir.Norm() {
		return x, y, z, ErrDegenerateAxes
	}
	z = z.Normalize()
	y = z.Cross(x).Normalize()
	return x, y, z, nil
}

// At returns the element in the given row and column.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[row*3+col]
}

// Row returns the given row as a vector.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm.mat[row*3], Y: rm.mat[row*3+1], Z: rm.mat[row*3+2]}
}

// Col returns the given column as a vector.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: rm.mat[col], Y: rm.mat[3+col], Z: rm.mat[6+col]}
}

// MulVec returns rm * v.
func (rm *RotationMatrix) MulVec(v r3.Vector) r3.Vector {
	return r3.Vector{X: rm.Row(0).Dot(v), Y: rm.Row(1).Dot(v), Z: rm.Row(2).Dot(v)}
}

// QuatToRotationMatrix converts a quaternion to a rotation matrix. The quaternion does not need
// to be unit length: each derived row is re-normalized.
func QuatToRotationMatrix(q Quaternion) *RotationMatrix {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	n := w*w + x*x + y*y + z*z
	if n < magnitudeEpsilon {
		return NewRotationMatrixFromAxes(r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{Z: 1})
	}
	s := 2 / n
	rows := [3]r3.Vector{
		{X: 1 - s*(y*y+z*z), Y: s * (x*y - w*z), Z: s * (x*z + w*y)},
		{X: s * (x*y + w*z), Y: 1 - s*(x*x+z*z), Z: s * (y*z - w*x)},
		{X: s * (x*z - w*y), Y: s * (y*z + w*x), Z: 1 - s*(x*x+y*y)},
	}
	rm := &RotationMatrix{}
	for i, row := range rows {
		row = row.Normalize()
		rm.mat[i*3], rm.mat[i*3+1], rm.mat[i*3+2] = row.X, row.Y, row.Z
	}
	return rm
}

// Quaternion converts the rotation matrix to a unit quaternion with a non-negative real part.
func (rm *RotationMatrix) Quaternion() Quaternion {
	m := func(r, c int) float64 { return rm.At(r, c) }
	var q Quaternion
	// Shepperd's method: branch on the largest diagonal term to stay numerically stable.
	trace := m(0, 0) + m(1, 1) + m(2, 2)
	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		q = NewQuaternion(0.25*s, (m(2, 1)-m(1, 2))/s, (m(0, 2)-m(2, 0))/s, (m(1, 0)-m(0, 1))/s)
	case m(0, 0) > m(1, 1) && m(0, 0) > m(2, 2):
		s := math.Sqrt(1+m(0, 0)-m(1, 1)-m(2, 2)) * 2
		q = NewQuaternion((m(2, 1)-m(1, 2))/s, 0.25*s, (m(0, 1)+m(1, 0))/s, (m(0, 2)+m(2, 0))/s)
	case m(1, 1) > m(2, 2):
		s := math.Sqrt(1+m(1, 1)-m(0, 0)-m(2, 2)) * 2
		q = NewQuaternion((m(0, 2)-m(2, 0))/s, (m(0, 1)+m(1, 0))/s, 0.25*s, (m(1, 2)+m(2, 1))/s)
	default:
		s := math.Sqrt(1+m(2, 2)-m(0, 0)-m(1, 1)) * 2
		q = NewQuaternion((m(1, 0)-m(0, 1))/s, (m(0, 2)+m(2, 0))/s, (m(1, 2)+m(2, 1))/s, 0.25*s)
	}
	q.Normalize()
	if q.Real < 0 {
		q = q.Scale(-1)
	}
	return q
}
