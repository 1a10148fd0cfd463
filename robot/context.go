package robot

import (
	"go.viam.com/armsim/referenceframe"
	"go.viam.com/armsim/utils"
)

// EvalContext is the robot state an instruction operand may read. It is a snapshot taken by
// Robot.Context and passed explicitly to evaluation.
type EvalContext struct {
	// Tool center point in the active user frame, with the current joints.
	CurrentPoint *referenceframe.Point
	Joints       []float64
	HasMotion    bool
	HasFault     bool
	ActiveTool   int
	ActiveUser   int
	Remaining    float64
}

// Context captures the robot's current state for operand evaluation.
func (r *Robot) Context() EvalContext {
	pt := r.exec.CurrentPoint()
	return EvalContext{
		CurrentPoint: pt,
		Joints:       pt.Joints,
		HasMotion:    r.exec.HasMotion(),
		HasFault:     r.exec.HasFault(),
		ActiveTool:   r.activeTool,
		ActiveUser:   r.activeUser,
		Remaining:    r.exec.Remaining(),
	}
}

// Position returns one component of the current point, indexed X, Y, Z, W, P, R with angles in
// degrees, as position registers expose it.
func (c EvalContext) Position(component int) (float64, bool) {
	p := c.CurrentPoint.Point
	ea := c.CurrentPoint.EulerAngles()
	switch component {
	case 0:
		return p.X, true
	case 1:
		return p.Y, true
	case 2:
		return p.Z, true
	case 3:
		return ea.W, true
	case 4:
		return ea.P, true
	case 5:
		return ea.R, true
	default:
		return 0, false
	}
}

// Joint returns joint j in degrees.
func (c EvalContext) Joint(j int) (float64, bool) {
	if j < 0 || j >= len(c.Joints) {
		return 0, false
	}
	return utils.RadToDeg(c.Joints[j]), true
}
