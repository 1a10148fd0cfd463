package referenceframe

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	spatial "go.viam.com/armsim/spatialmath"
	"go.viam.com/armsim/utils"
)

// Joint is a single revolute joint of a chain: a fixed translation from the previous joint
// followed by a rotation about Axis.
type Joint struct {
	name   string
	axis   r3.Vector
	offset r3.Vector
	limit  Limit

	rotation      float64
	speedModifier float64
}

// NewJoint creates a joint at rest. The axis is normalized and must be non-zero.
func NewJoint(name string, axis, offset r3.Vector, limit Limit) (*Joint, error) {
	if axis.Norm() < 1e-9 {
		return nil, errors.Errorf("joint %q has a zero rotation axis", name)
	}
	j := &Joint{name: name, axis: axis.Normalize(), offset: offset, limit: limit}
	j.rotation = limit.Clamp(0)
	return j, nil
}

// Name returns the name of the joint.
func (j *Joint) Name() string {
	return j.name
}

// Axis returns the unit rotation axis in the frame of the previous joint.
func (j *Joint) Axis() r3.Vector {
	return j.axis
}

// Offset returns the fixed translation from the previous joint.
func (j *Joint) Offset() r3.Vector {
	return j.offset
}

// Limit returns the joint's range of motion.
func (j *Joint) Limit() Limit {
	return j.limit
}

// Rotation returns the current joint angle in [0, 2π).
func (j *Joint) Rotation() float64 {
	return j.rotation
}

// SetRotation stores angle normalized to [0, 2π). Limits are not checked.
func (j *Joint) SetRotation(angle float64) {
	j.rotation = utils.ModAngRad(angle)
}

// SpeedModifier is the per-motion rate, in radians per second, at full speed ratio. It is only
// meaningful while a joint motion is active.
func (j *Joint) SpeedModifier() float64 {
	return j.speedModifier
}

// SetSpeedModifier sets the per-motion rate.
func (j *Joint) SetSpeedModifier(m float64) {
	j.speedModifier = m
}

// Transform returns the pose of this joint's frame in the previous joint's frame at angle.
func (j *Joint) Transform(angle float64) spatial.Pose {
	return spatial.Pose{Point: j.offset, Orientation: spatial.NewAxisAngle(j.axis, angle)}
}
