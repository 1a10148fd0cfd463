package referenceframe

import (
	"github.com/pkg/errors"

	spatial "go.viam.com/armsim/spatialmath"
)

// ChainDoF is the number of joints in an arm chain.
const ChainDoF = 6

// Chain is a serial six joint arm. Forward kinematics is read-only; joint state changes only through
// SetJointAngles, which the motion executor owns.
type Chain struct {
	name   string
	joints []*Joint
	flange spatial.Pose

	tool       spatial.Pose
	user       *UserFrame
	speedRatio float64
}

// NewChain builds a chain from base to flange. flange is the fixed pose of the mounting flange in
// the last joint's frame.
func NewChain(name string, joints []*Joint, flange spatial.Pose) (*Chain, error) {
	if len(joints) != ChainDoF {
		return nil, NewIncorrectDoFError(len(joints), ChainDoF)
	}
	for i, j := range joints {
		if j == nil {
			return nil, errors.Errorf("joint %d is nil", i)
		}
	}
	return &Chain{
		name:       name,
		joints:     joints,
		flange:     flange,
		tool:       spatial.NewZeroPose(),
		speedRatio: 1,
	}, nil
}

// Name returns the name of the chain.
func (c *Chain) Name() string {
	return c.name
}

// DoF returns the number of joints.
func (c *Chain) DoF() int {
	return len(c.joints)
}

// Limits returns the range of every joint.
func (c *Chain) Limits() []Limit {
	limits := make([]Limit, 0, len(c.joints))
	for _, j := range c.joints {
		limits = append(limits, j.limit)
	}
	return limits
}

// Joint returns the i'th joint.
func (c *Chain) Joint(i int) *Joint {
	return c.joints[i]
}

// Angles returns a copy of the current joint angles.
func (c *Chain) Angles() []float64 {
	angles := make([]float64, len(c.joints))
	for i, j := range c.joints {
		angles[i] = j.rotation
	}
	return angles
}

// SetJointAngles writes all joint angles, normalized to [0, 2π). Limits are not checked; see InRange.
func (c *Chain) SetJointAngles(angles []float64) error {
	if len(angles) != len(c.joints) {
		return NewIncorrectDoFError(len(angles), len(c.joints))
	}
	for i, j := range c.joints {
		j.SetRotation(angles[i])
	}
	return nil
}

// InRange returns an error naming the first joint angle outside its limit.
func (c *Chain) InRange(angles []float64) error {
	if len(angles) != len(c.joints) {
		return NewIncorrectDoFError(len(angles), len(c.joints))
	}
	for i, j := range c.joints {
		if !j.limit.Contains(angles[i]) {
			return NewJointOutOfRangeError(i, angles[i], j.limit)
		}
	}
	return nil
}

// FlangeTransform returns the pose of the mounting flange in the native frame at the given angles.
func (c *Chain) FlangeTransform(angles []float64) (spatial.Pose, error) {
	if len(angles) != len(c.joints) {
		return spatial.Pose{}, NewIncorrectDoFError(len(angles), len(c.joints))
	}
	pose := spatial.NewZeroPose()
	for i, j := range c.joints {
		pose = spatial.Compose(pose, j.Transform(angles[i]))
	}
	return spatial.Compose(pose, c.flange), nil
}

// Transform returns the pose of the tool center point in the native frame at the given angles.
func (c *Chain) Transform(angles []float64) (spatial.Pose, error) {
	flange, err := c.FlangeTransform(angles)
	if err != nil {
		return spatial.Pose{}, err
	}
	return spatial.Compose(flange, c.tool), nil
}

// ForwardKinematics returns the native frame Point, joints included, for the given angles.
func (c *Chain) ForwardKinematics(angles []float64) (*Point, error) {
	pose, err := c.Transform(angles)
	if err != nil {
		return nil, err
	}
	return NewPointWithJoints(pose, angles), nil
}

// CurrentPose returns the tool center point at the current joint angles.
func (c *Chain) CurrentPose() spatial.Pose {
	// the joint count always matches
	//nolint:errcheck
	pose, _ := c.Transform(c.Angles())
	return pose
}

// Tool returns the active tool offset from the flange.
func (c *Chain) Tool() spatial.Pose {
	return c.tool
}

// SetTool sets the active tool offset from the flange.
func (c *Chain) SetTool(tool spatial.Pose) {
	c.tool = tool
}

// User returns the active user frame, or nil when poses are native.
func (c *Chain) User() *UserFrame {
	return c.user
}

// SetUser sets the active user frame. nil selects the native frame.
func (c *Chain) SetUser(user *UserFrame) {
	c.user = user
}

// ToNative converts a pose in the active user frame to the native frame.
func (c *Chain) ToNative(p spatial.Pose) spatial.Pose {
	if c.user == nil {
		return p
	}
	return c.user.ToNative(p)
}

// FromNative converts a native pose to the active user frame.
func (c *Chain) FromNative(p spatial.Pose) spatial.Pose {
	if c.user == nil {
		return p
	}
	return c.user.FromNative(p)
}

// SpeedRatio is the live speed override in (0, 1].
func (c *Chain) SpeedRatio() float64 {
	return c.speedRatio
}

// SetSpeedRatio sets the live speed override.
func (c *Chain) SetSpeedRatio(r float64) error {
	if r <= 0 || r > 1 {
		return errors.Errorf("speed ratio %.3f must be in (0, 1]", r)
	}
	c.speedRatio = r
	return nil
}
