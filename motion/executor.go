package motion

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"go.viam.com/armsim/logging"
	"go.viam.com/armsim/motionplan/ik"
	"go.viam.com/armsim/referenceframe"
)

// Motion is the capability set shared by joint and linear interpolation.
type Motion interface {
	Halt()
	HasMotion() bool
	HasFault() bool
	Fault() error
	Remaining() float64
	Total() float64
}

// Termination decides when the program may move on to its next instruction. Fine waits for the
// motion to finish. A value n in [1, 100] continues once n percent of the path is done. For joint
// moves the path is the travel of the joint with the furthest to go, in radians; for linear moves
// it is the blended path length.
type Termination int

// Fine waits for the motion to finish.
const Fine Termination = 0

// MoveOptions are per-instruction overrides.
type MoveOptions struct {
	// Joint moves: percent of full speed in (0, 100]. Zero follows the live speed ratio.
	// Linear moves: millimeters per second. Zero uses the configured linear speed.
	Speed float64

	Termination Termination
}

// Executor owns the single active motion for a chain and advances it once per tick. Starting a
// motion halts and discards the previous one.
type Executor struct {
	logger logging.Logger
	chain  *referenceframe.Chain
	solver *ik.Solver
	cfg    Config

	motion Motion
	opID   uuid.UUID
	fault  error
}

// NewExecutor returns an idle executor.
func NewExecutor(logger logging.Logger, chain *referenceframe.Chain, solver *ik.Solver, cfg Config) (*Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Executor{logger: logger, chain: chain, solver: solver, cfg: cfg}, nil
}

// Chain returns the chain the executor drives.
func (e *Executor) Chain() *referenceframe.Chain {
	return e.chain
}

// Solver returns the inverse kinematics solver used for poses.
func (e *Executor) Solver() *ik.Solver {
	return e.solver
}

// Config returns the motion rates.
func (e *Executor) Config() Config {
	return e.cfg
}

// MoveJoint starts a joint move to target, which must be within limits.
func (e *Executor) MoveJoint(target []float64, opts MoveOptions) (uuid.UUID, error) {
	if e.fault != nil {
		return uuid.Nil, e.fault
	}
	if err := e.chain.InRange(target); err != nil {
		return uuid.Nil, err
	}
	if opts.Speed < 0 || opts.Speed > 100 {
		return uuid.Nil, errInvalidSpeed(opts.Speed / 100)
	}
	e.discard()
	var (
		ji  *JointInterpolation
		err error
	)
	if opts.Speed == 0 {
		ji, err = NewJointInterpolation(e.chain, target, e.cfg)
	} else {
		ji, err = NewJointInterpolationWithSpeed(e.chain, target, e.cfg, opts.Speed/100)
	}
	if err != nil {
		return uuid.Nil, err
	}
	id := e.dispatch(ji)
	e.logger.Debugw("joint move started", "op", id, "target", target, "total_rad", ji.Total())
	return id, nil
}

// MoveJointToPose starts a joint move to dest, a point in the active user frame. Joint angles on
// dest are used as given; otherwise they are solved from the current angles. If no solution
// exists ik.ErrNoSolution is returned and the arm does not move.
func (e *Executor) MoveJointToPose(dest *referenceframe.Point, opts MoveOptions) (uuid.UUID, error) {
	if e.fault != nil {
		return uuid.Nil, e.fault
	}
	if dest.HasJoints() {
		return e.MoveJoint(dest.Joints, opts)
	}
	target := e.chain.ToNative(dest.Pose)
	angles, err := e.solver.Solve(e.chain, e.chain.Angles(), target)
	if err != nil {
		e.logger.Warnw("cannot reach point", "target", target.String(), "error", err)
		return uuid.Nil, errors.Wrapf(err, "joint move to %v", dest.Pose)
	}
	return e.MoveJoint(angles, opts)
}

// MoveLinear starts a straight line move of the tool center point from where it is to dest, a
// point in the active user frame.
func (e *Executor) MoveLinear(dest *referenceframe.Point, opts MoveOptions) (uuid.UUID, error) {
	if e.fault != nil {
		return uuid.Nil, e.fault
	}
	if opts.Speed < 0 {
		return uuid.Nil, errInvalidSpeed(opts.Speed)
	}
	e.discard()
	target := e.chain.ToNative(dest.Pose)
	li, err := NewLinearInterpolation(e.chain, e.solver, e.chain.CurrentPose(), target, e.cfg, opts.Speed)
	if err != nil {
		return uuid.Nil, err
	}
	id := e.dispatch(li)
	e.logger.Debugw("linear move started", "op", id, "target", target.String(), "total", li.Total())
	return id, nil
}

// discard halts and drops the active motion. It must run before a new motion is built, because
// building one sets the chain's joint rates.
func (e *Executor) discard() {
	if e.motion != nil {
		e.motion.Halt()
		e.motion = nil
	}
}

func (e *Executor) dispatch(m Motion) uuid.UUID {
	e.motion = m
	e.opID = uuid.New()
	return e.opID
}

// Step advances the active motion by one tick and returns its remaining distance, or zero when
// idle or faulted.
func (e *Executor) Step() float64 {
	if e.fault != nil || e.motion == nil {
		return 0
	}

	switch m := e.motion.(type) {
	case *JointInterpolation:
		m.Step()
	case *LinearInterpolation:
		m.Step()
	}

	if e.motion.HasFault() {
		e.fault = &FaultError{OpID: e.opID, Err: e.motion.Fault()}
		e.logger.Errorw("motion stopped", "op", e.opID, "error", e.motion.Fault())
		e.motion.Halt()
		e.motion = nil
		return 0
	}
	remaining := e.motion.Remaining()
	if !e.motion.HasMotion() {
		e.logger.Debugw("motion complete", "op", e.opID)
		e.motion = nil
	}
	return remaining
}

// Halt stops the active motion where it is. It is safe to call when idle.
func (e *Executor) Halt() {
	if e.motion == nil {
		return
	}
	e.motion.Halt()
	e.logger.Debugw("motion halted", "op", e.opID)
	e.motion = nil
}

// HasMotion reports whether a motion is running.
func (e *Executor) HasMotion() bool {
	return e.motion != nil && e.motion.HasMotion()
}

// HasFault reports whether a fault is blocking the executor.
func (e *Executor) HasFault() bool {
	return e.fault != nil
}

// Fault returns the blocking fault, matching ErrMotionFault, or nil.
func (e *Executor) Fault() error {
	return e.fault
}

// ClearFault lets motions run again.
func (e *Executor) ClearFault() {
	e.fault = nil
}

// Remaining returns the active motion's remaining distance.
func (e *Executor) Remaining() float64 {
	if e.motion == nil {
		return 0
	}
	return e.motion.Remaining()
}

// OperationID returns the id of the most recently started motion.
func (e *Executor) OperationID() uuid.UUID {
	return e.opID
}

// Done reports whether a program waiting with the given termination may continue. It is false
// while faulted.
func (e *Executor) Done(term Termination) bool {
	if e.fault != nil {
		return false
	}
	if !e.HasMotion() {
		return true
	}
	if term <= Fine || term > 100 {
		return false
	}
	return e.motion.Remaining() <= float64(100-term)/100*e.motion.Total()
}

// CurrentPoint returns the tool center point in the active user frame with the current joints.
func (e *Executor) CurrentPoint() *referenceframe.Point {
	angles := e.chain.Angles()
	return referenceframe.NewPointWithJoints(e.chain.FromNative(e.chain.CurrentPose()), angles)
}

// SetSpeedRatio sets the live speed override in (0, 1].
func (e *Executor) SetSpeedRatio(r float64) error {
	return e.chain.SetSpeedRatio(r)
}
