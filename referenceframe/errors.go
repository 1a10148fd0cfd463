package referenceframe

import (
	"github.com/pkg/errors"
)

var (
	// ErrCalibrationDegenerate is returned when taught points cannot define a frame. The frame being
	// taught is left unchanged.
	ErrCalibrationDegenerate = errors.New("calibration points are degenerate")

	// ErrJointOutOfRange is returned when a joint angle lies outside its limits.
	ErrJointOutOfRange = errors.New("joint angle out of range")

	// ErrNoModelInformation is used when there is no model information.
	ErrNoModelInformation = errors.New("no model information")

	// ErrMissingTeachPoint is returned when a calibration method needs a teach point that was never recorded.
	ErrMissingTeachPoint = errors.New("teach point not recorded")
)

// NewIncorrectDoFError returns an error indicating that the length of an input slice does not match the DoF of the chain.
func NewIncorrectDoFError(actual, expected int) error {
	return errors.Errorf("number of inputs does not match frame DoF, expected %d but got %d", expected, actual)
}

// NewJointOutOfRangeError returns an ErrJointOutOfRange naming the offending joint.
func NewJointOutOfRangeError(joint int, angle float64, limit Limit) error {
	return errors.Wrapf(ErrJointOutOfRange, "joint %d at %.5f outside %v", joint, angle, limit)
}

// NewTeachPointError returns an ErrMissingTeachPoint naming the missing point.
func NewTeachPointError(idx int) error {
	return errors.Wrapf(ErrMissingTeachPoint, "teach point %d", idx)
}
