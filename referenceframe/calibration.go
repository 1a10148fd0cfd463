package referenceframe

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	spatial "go.viam.com/armsim/spatialmath"
)

const (
	// minRelativeSingularValue rejects approach orientations that only rotate about one axis.
	minRelativeSingularValue = 1e-3
	// maxTCPSpread is the largest distance, in millimeters, a computed tool tip may lie from the
	// mean of all computed tips.
	maxTCPSpread = 1.0
)

// Teach3Point computes the tool center point from the three approach points, each a flange pose
// touching the same fixed point from a different orientation. The tool orientation is reset to
// the flange orientation. On error the frame is unchanged.
func (tf *ToolFrame) Teach3Point() error {
	pts, err := tf.requirePoints(TeachApproach1, TeachApproach2, TeachApproach3)
	if err != nil {
		return err
	}
	tcp, err := solveTCP([]spatial.Pose{pts[0].Pose, pts[1].Pose, pts[2].Pose})
	if err != nil {
		return err
	}
	tf.Offset = tcp
	tf.Orientation = spatial.NewZeroOrientation()
	return nil
}

// Teach6Point computes the tool center point as Teach3Point does, then the tool orientation from
// the orient origin, x direction and y direction points. On error the frame is unchanged.
func (tf *ToolFrame) Teach6Point() error {
	pts, err := tf.requirePoints(
		TeachApproach1, TeachApproach2, TeachApproach3,
		TeachOrientOrigin, TeachXDirection, TeachYDirection,
	)
	if err != nil {
		return err
	}
	tcp, err := solveTCP([]spatial.Pose{pts[0].Pose, pts[1].Pose, pts[2].Pose})
	if err != nil {
		return err
	}

	tip := func(flange spatial.Pose) r3.Vector {
		return spatial.Compose(flange, spatial.NewPoseFromPoint(tcp)).Point
	}
	origin := pts[3].Pose
	axes, err := axesQuaternion(tip(origin), tip(pts[4].Pose), tip(pts[5].Pose))
	if err != nil {
		return err
	}
	tf.Offset = tcp
	tf.Orientation = spatial.Mul(origin.Orientation.Conj(), axes).Normalized()
	return nil
}

// Teach3Point sets the user frame from the orient origin, x direction and y direction points. The
// orient origin becomes the frame origin. On error the frame is unchanged.
func (uf *UserFrame) Teach3Point() error {
	pts, err := uf.requirePoints(TeachOrientOrigin, TeachXDirection, TeachYDirection)
	if err != nil {
		return err
	}
	axes, err := axesQuaternion(pts[0].Point, pts[1].Point, pts[2].Point)
	if err != nil {
		return err
	}
	uf.Offset = pts[0].Point
	uf.Orientation = axes
	return nil
}

// Teach4Point sets the user frame axes as Teach3Point does, with the frame origin taken from the
// separate TeachOrigin point. On error the frame is unchanged.
func (uf *UserFrame) Teach4Point() error {
	pts, err := uf.requirePoints(TeachOrientOrigin, TeachXDirection, TeachYDirection, TeachOrigin)
	if err != nil {
		return err
	}
	axes, err := axesQuaternion(pts[0].Point, pts[1].Point, pts[2].Point)
	if err != nil {
		return err
	}
	uf.Offset = pts[3].Point
	uf.Orientation = axes
	return nil
}

func axesQuaternion(origin, xPoint, yPoint r3.Vector) (spatial.Quaternion, error) {
	x, y, z, err := spatial.OrthonormalAxes(xPoint.Sub(origin), yPoint.Sub(origin))
	if err != nil {
		return spatial.Quaternion{}, errors.Wrap(ErrCalibrationDegenerate, err.Error())
	}
	return spatial.NewRotationMatrixFromAxes(x, y, z).Quaternion(), nil
}

// solveTCP finds the flange-relative point t that every flange pose maps to the same world point,
// by least squares over each pair i, j: (R_i - R_j) t = p_j - p_i.
func solveTCP(flanges []spatial.Pose) (r3.Vector, error) {
	rots := make([]*spatial.RotationMatrix, len(flanges))
	for i, f := range flanges {
		rots[i] = spatial.QuatToRotationMatrix(f.Orientation)
	}

	var rows []float64
	var rhs []float64
	for i := 0; i < len(flanges); i++ {
		for j := i + 1; j < len(flanges); j++ {
			d := flanges[j].Point.Sub(flanges[i].Point)
			rhs = append(rhs, d.X, d.Y, d.Z)
			for r := 0; r < 3; r++ {
				for c := 0; c < 3; c++ {
					rows = append(rows, rots[i].At(r, c)-rots[j].At(r, c))
				}
			}
		}
	}
	a := mat.NewDense(len(rhs), 3, rows)
	b := mat.NewVecDense(len(rhs), rhs)

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return r3.Vector{}, errors.Wrap(ErrCalibrationDegenerate, "factorization failed")
	}
	sv := svd.Values(nil)
	if sv[0] < 1e-9 || sv[len(sv)-1]/sv[0] < minRelativeSingularValue {
		return r3.Vector{}, errors.Wrapf(ErrCalibrationDegenerate, "approach orientations do not span space, singular values %.4g", sv)
	}
	var x mat.VecDense
	svd.SolveVecTo(&x, b, len(sv))
	tcp := r3.Vector{X: x.AtVec(0), Y: x.AtVec(1), Z: x.AtVec(2)}

	tips := make([]r3.Vector, len(flanges))
	var mean r3.Vector
	for i, f := range flanges {
		tips[i] = f.Point.Add(rots[i].MulVec(tcp))
		mean = mean.Add(tips[i])
	}
	mean = mean.Mul(1 / float64(len(tips)))
	spread := 0.
	for _, tip := range tips {
		spread = math.Max(spread, tip.Sub(mean).Norm())
	}
	if spread > maxTCPSpread {
		return r3.Vector{}, errors.Wrapf(ErrCalibrationDegenerate, "approach points disagree by %.3fmm", spread)
	}
	return tcp, nil
}
