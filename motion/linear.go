package motion

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/armsim/motionplan/ik"
	"go.viam.com/armsim/referenceframe"
	spatial "go.viam.com/armsim/spatialmath"
)

type linearState int

const (
	linearActive linearState = iota
	linearDone
	linearFault
)

// LinearInterpolation moves the tool center point in a straight line while blending orientation,
// solving inverse kinematics every tick. Path length counts orientation change, weighted, so
// position and orientation arrive together.
type LinearInterpolation struct {
	chain    *referenceframe.Chain
	solver   *ik.Solver
	tickRate float64
	speed    float64

	start    spatial.Pose
	dest     *spatial.Pose
	total    float64
	traveled float64

	state linearState
	fault error
}

// NewLinearInterpolation starts a linear motion from start to dest, both native poses. speed is in
// millimeters per second at full speed ratio; zero uses the configured linear speed.
func NewLinearInterpolation(
	chain *referenceframe.Chain,
	solver *ik.Solver,
	start, dest spatial.Pose,
	cfg Config,
	speed float64,
) (*LinearInterpolation, error) {
	if speed < 0 {
		return nil, errInvalidSpeed(speed)
	}
	if speed == 0 {
		speed = cfg.LinearSpeed
	}
	dest = spatial.NewPose(dest.Point, dest.Orientation)
	start = spatial.NewPose(start.Point, start.Orientation)
	return &LinearInterpolation{
		chain:    chain,
		solver:   solver,
		tickRate: cfg.TickRate,
		speed:    speed,
		start:    start,
		dest:     &dest,
		total:    PathLength(start, dest, cfg.OrientationWeight),
	}, nil
}

// PathLength is the blended distance of a linear move: millimeters of travel plus weighted
// radians of rotation.
func PathLength(from, to spatial.Pose, orientationWeight float64) float64 {
	return from.Point.Sub(to.Point).Norm() + orientationWeight*spatial.AngularDistance(from.Orientation, to.Orientation)
}

// Step advances one tick along the path and returns the distance left, or zero once the motion is
// over. When no joint angles reach the next pose the motion faults and the arm stays where it is.
func (li *LinearInterpolation) Step() float64 {
	if li.state != linearActive {
		return 0
	}
	li.traveled += li.speed * li.chain.SpeedRatio() / li.tickRate
	mu := 1.
	if li.total > 0 {
		mu = math.Min(li.traveled/li.total, 1)
	}
	pose := spatial.Pose{
		Point:       spatial.Lerp(li.start.Point, li.dest.Point, mu),
		Orientation: spatial.Slerp(li.start.Orientation, li.dest.Orientation, mu),
	}
	angles, err := li.solver.Solve(li.chain, li.chain.Angles(), pose)
	if err != nil {
		li.fault = errors.Wrapf(err, "linear move at %.1f%% to %v", mu*100, pose)
		li.state = linearFault
		li.dest = nil
		return 0
	}
	if err := li.chain.SetJointAngles(angles); err != nil {
		li.fault = err
		li.state = linearFault
		li.dest = nil
		return 0
	}
	if mu >= 1 {
		li.state = linearDone
		li.dest = nil
		return 0
	}
	return li.total - li.traveled
}

// Halt ends the motion where it is. It is safe to call more than once.
func (li *LinearInterpolation) Halt() {
	if li.state == linearActive {
		li.state = linearDone
	}
	li.dest = nil
}

// HasMotion reports whether the motion is still running.
func (li *LinearInterpolation) HasMotion() bool {
	return li.state == linearActive
}

// HasFault reports whether inverse kinematics failed along the path.
func (li *LinearInterpolation) HasFault() bool {
	return li.state == linearFault
}

// Fault returns the inverse kinematics failure, if any.
func (li *LinearInterpolation) Fault() error {
	return li.fault
}

// Destination returns the native destination pose, or nil once the motion has ended.
func (li *LinearInterpolation) Destination() *spatial.Pose {
	return li.dest
}

// Remaining returns the blended distance left to travel.
func (li *LinearInterpolation) Remaining() float64 {
	if li.state != linearActive {
		return 0
	}
	return math.Max(li.total-li.traveled, 0)
}

// Total returns the blended length of the whole path.
func (li *LinearInterpolation) Total() float64 {
	return li.total
}
