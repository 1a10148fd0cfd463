// Package robot holds the handle that owns an arm's chain, motion executor and frame tables.
package robot

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/armsim/logging"
	"go.viam.com/armsim/motion"
	"go.viam.com/armsim/motionplan/ik"
	"go.viam.com/armsim/referenceframe"
	spatial "go.viam.com/armsim/spatialmath"
)

// NumFrames is the number of tool frames and of user frames a robot stores.
const NumFrames = 10

// NoFrame selects the flange as the tool or the native frame as the user frame.
const NoFrame = -1

// ErrMoving is returned by operations that may not run while a motion is active.
var ErrMoving = errors.New("robot is moving")

// TeachMethod selects a frame calibration.
type TeachMethod int

// Calibration methods. Tool frames support ThreePoint and SixPoint; user frames ThreePoint and
// FourPoint.
const (
	ThreePoint TeachMethod = iota
	FourPoint
	SixPoint
)

func (m TeachMethod) String() string {
	switch m {
	case ThreePoint:
		return "three point"
	case FourPoint:
		return "four point"
	case SixPoint:
		return "six point"
	default:
		return "unknown"
	}
}

// FrameKind says which frame table a teach point belongs to.
type FrameKind int

// Frame tables.
const (
	ToolFrameKind FrameKind = iota
	UserFrameKind
)

// Robot is the explicit handle to one arm. It is not safe for concurrent use; wrap the executor in
// a motion.Driver to share it with a ticking goroutine.
type Robot struct {
	logger logging.Logger
	chain  *referenceframe.Chain
	exec   *motion.Executor

	tools      [NumFrames]*referenceframe.ToolFrame
	users      [NumFrames]*referenceframe.UserFrame
	activeTool int
	activeUser int
}

// New returns a robot driving chain, with empty tool and user frames and none active.
func New(logger logging.Logger, chain *referenceframe.Chain, solver *ik.Solver, cfg motion.Config) (*Robot, error) {
	exec, err := motion.NewExecutor(logger.Sublogger("motion"), chain, solver, cfg)
	if err != nil {
		return nil, err
	}
	r := &Robot{logger: logger, chain: chain, exec: exec, activeTool: NoFrame, activeUser: NoFrame}
	for i := 0; i < NumFrames; i++ {
		r.tools[i] = referenceframe.NewToolFrame("")
		r.users[i] = referenceframe.NewUserFrame("")
	}
	return r, nil
}

// Chain returns the kinematic chain.
func (r *Robot) Chain() *referenceframe.Chain {
	return r.chain
}

// Executor returns the motion executor.
func (r *Robot) Executor() *motion.Executor {
	return r.exec
}

func checkIndex(idx int) error {
	if idx < 0 || idx >= NumFrames {
		return errors.Errorf("frame index %d out of range [0, %d)", idx, NumFrames)
	}
	return nil
}

// ToolFrame returns tool frame idx.
func (r *Robot) ToolFrame(idx int) (*referenceframe.ToolFrame, error) {
	if err := checkIndex(idx); err != nil {
		return nil, err
	}
	return r.tools[idx], nil
}

// UserFrame returns user frame idx.
func (r *Robot) UserFrame(idx int) (*referenceframe.UserFrame, error) {
	if err := checkIndex(idx); err != nil {
		return nil, err
	}
	return r.users[idx], nil
}

// ActiveTool returns the active tool frame index, or NoFrame.
func (r *Robot) ActiveTool() int {
	return r.activeTool
}

// ActiveUser returns the active user frame index, or NoFrame.
func (r *Robot) ActiveUser() int {
	return r.activeUser
}

// SetActiveTool makes tool frame idx, or NoFrame, the chain's tool.
func (r *Robot) SetActiveTool(idx int) error {
	if r.exec.HasMotion() {
		return ErrMoving
	}
	if idx == NoFrame {
		r.chain.SetTool(spatial.NewZeroPose())
		r.activeTool = NoFrame
		return nil
	}
	if err := checkIndex(idx); err != nil {
		return err
	}
	r.chain.SetTool(r.tools[idx].Pose())
	r.activeTool = idx
	return nil
}

// SetActiveUser makes user frame idx, or NoFrame, the frame poses are given in.
func (r *Robot) SetActiveUser(idx int) error {
	if r.exec.HasMotion() {
		return ErrMoving
	}
	if idx == NoFrame {
		r.chain.SetUser(nil)
		r.activeUser = NoFrame
		return nil
	}
	if err := checkIndex(idx); err != nil {
		return err
	}
	r.chain.SetUser(r.users[idx])
	r.activeUser = idx
	return nil
}

// RecordTeachPoint stores the arm's current position in a frame's teach point slot. Tool frames
// record the flange pose; user frames record the native tool center point.
func (r *Robot) RecordTeachPoint(kind FrameKind, frameIdx, pointIdx int) error {
	if err := checkIndex(frameIdx); err != nil {
		return err
	}
	angles := r.chain.Angles()
	switch kind {
	case ToolFrameKind:
		flange, err := r.chain.FlangeTransform(angles)
		if err != nil {
			return err
		}
		return r.tools[frameIdx].SetTeachPoint(pointIdx, referenceframe.NewPointWithJoints(flange, angles))
	case UserFrameKind:
		return r.users[frameIdx].SetTeachPoint(pointIdx, referenceframe.NewPointWithJoints(r.chain.CurrentPose(), angles))
	default:
		return errors.Errorf("unknown frame kind %d", kind)
	}
}

// TeachToolFrame calibrates tool frame idx from its teach points. On failure the frame keeps its
// previous offsets.
func (r *Robot) TeachToolFrame(idx int, method TeachMethod) error {
	if err := r.checkToolEditable(idx); err != nil {
		return err
	}
	tf := r.tools[idx]
	var err error
	switch method {
	case ThreePoint:
		err = tf.Teach3Point()
	case SixPoint:
		err = tf.Teach6Point()
	default:
		err = errors.Errorf("%s teaching is not supported for tool frames", method)
	}
	if err != nil {
		r.logger.Warnw("tool frame teach failed", "frame", idx, "method", method.String(), "error", err)
		return err
	}
	r.logger.Infow("tool frame taught", "frame", idx, "method", method.String(), "offset", tf.Pose().String())
	r.refreshTool(idx)
	return nil
}

// TeachUserFrame calibrates user frame idx from its teach points. On failure the frame keeps its
// previous offsets.
func (r *Robot) TeachUserFrame(idx int, method TeachMethod) error {
	if err := checkIndex(idx); err != nil {
		return err
	}
	uf := r.users[idx]
	var err error
	switch method {
	case ThreePoint:
		err = uf.Teach3Point()
	case FourPoint:
		err = uf.Teach4Point()
	default:
		err = errors.Errorf("%s teaching is not supported for user frames", method)
	}
	if err != nil {
		r.logger.Warnw("user frame teach failed", "frame", idx, "method", method.String(), "error", err)
		return err
	}
	r.logger.Infow("user frame taught", "frame", idx, "method", method.String(), "offset", uf.Pose().String())
	return nil
}

// SetToolFrameDirect sets tool frame idx from a raw offset and world Euler angles in degrees.
func (r *Robot) SetToolFrameDirect(idx int, offset r3.Vector, ea spatial.EulerAngles) error {
	if err := r.checkToolEditable(idx); err != nil {
		return err
	}
	r.tools[idx].SetDirect(offset, ea)
	r.refreshTool(idx)
	return nil
}

// SetUserFrameDirect sets user frame idx from a raw offset and world Euler angles in degrees.
func (r *Robot) SetUserFrameDirect(idx int, offset r3.Vector, ea spatial.EulerAngles) error {
	if err := checkIndex(idx); err != nil {
		return err
	}
	r.users[idx].SetDirect(offset, ea)
	return nil
}

// checkToolEditable refuses changes to the active tool while a motion runs.
func (r *Robot) checkToolEditable(idx int) error {
	if err := checkIndex(idx); err != nil {
		return err
	}
	if idx == r.activeTool && r.exec.HasMotion() {
		return ErrMoving
	}
	return nil
}

// refreshTool pushes a changed tool offset into the chain when that tool is active. The active user
// frame is shared with the chain by pointer.
func (r *Robot) refreshTool(idx int) {
	if idx == r.activeTool {
		r.chain.SetTool(r.tools[idx].Pose())
	}
}
