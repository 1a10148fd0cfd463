// Package referenceframe models the arm: joints, the kinematic chain and its forward kinematics, and
// the tool and user frames layered on top of the native frame, including the teaching methods that
// calibrate them.
package referenceframe

import (
	"github.com/golang/geo/r3"

	spatial "go.viam.com/armsim/spatialmath"
	"go.viam.com/armsim/utils"
)

// NumTeachPoints is the number of teach point slots on a frame.
const NumTeachPoints = 6

// MaxFrameOffset bounds each component of a directly entered frame offset, in millimeters.
const MaxFrameOffset = 10000.

// Teach point slots. Tool frames use approach points 1 through 3 for the TCP and the last three for
// orientation. User frames use the last three for axes and OrientOrigin or Origin as the origin.
const (
	TeachApproach1 = iota
	TeachApproach2
	TeachApproach3
	TeachOrientOrigin
	TeachXDirection
	TeachYDirection
)

// TeachOrigin is the explicit origin slot used by four point user frame teaching.
const TeachOrigin = TeachApproach1

// Frame is a named offset from a parent frame with teach point storage.
type Frame struct {
	Name        string             `json:"name"`
	Offset      r3.Vector          `json:"offset"`
	Orientation spatial.Quaternion `json:"orientation"`

	teachPoints [NumTeachPoints]*Point
}

func newFrame(name string) Frame {
	return Frame{Name: name, Orientation: spatial.NewZeroOrientation()}
}

// Pose returns the frame offset as a pose in its parent frame.
func (f *Frame) Pose() spatial.Pose {
	return spatial.NewPose(f.Offset, f.Orientation)
}

// SetTeachPoint records a copy of p in slot idx.
func (f *Frame) SetTeachPoint(idx int, p *Point) error {
	if idx < 0 || idx >= NumTeachPoints {
		return NewTeachPointError(idx)
	}
	f.teachPoints[idx] = p.Copy()
	return nil
}

// TeachPoint returns the point recorded in slot idx, or nil.
func (f *Frame) TeachPoint(idx int) *Point {
	if idx < 0 || idx >= NumTeachPoints {
		return nil
	}
	return f.teachPoints[idx]
}

// ClearTeachPoints forgets every recorded point.
func (f *Frame) ClearTeachPoints() {
	f.teachPoints = [NumTeachPoints]*Point{}
}

func (f *Frame) requirePoints(idxs ...int) ([]*Point, error) {
	pts := make([]*Point, 0, len(idxs))
	for _, idx := range idxs {
		p := f.TeachPoint(idx)
		if p == nil {
			return nil, NewTeachPointError(idx)
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// SetDirect applies a raw offset and world Euler angles in degrees. Each position component is
// clamped to ±MaxFrameOffset and each angle wrapped into (-180, 180]; nothing else is validated.
func (f *Frame) SetDirect(offset r3.Vector, ea spatial.EulerAngles) {
	f.Offset = r3.Vector{
		X: utils.Clamp(offset.X, -MaxFrameOffset, MaxFrameOffset),
		Y: utils.Clamp(offset.Y, -MaxFrameOffset, MaxFrameOffset),
		Z: utils.Clamp(offset.Z, -MaxFrameOffset, MaxFrameOffset),
	}
	wrapped := spatial.EulerAngles{W: utils.ModAngDeg(ea.W), P: utils.ModAngDeg(ea.P), R: utils.ModAngDeg(ea.R)}
	f.Orientation = wrapped.Quaternion()
}

// ToolFrame is the offset of the tool center point from the mounting flange. Its teach points
// record flange poses.
type ToolFrame struct {
	Frame
}

// NewToolFrame returns a tool frame coincident with the flange.
func NewToolFrame(name string) *ToolFrame {
	return &ToolFrame{Frame: newFrame(name)}
}

// UserFrame is a work coordinate system expressed in the native frame. Its teach points record tool
// center point poses.
type UserFrame struct {
	Frame
}

// NewUserFrame returns a user frame coincident with the native frame.
func NewUserFrame(name string) *UserFrame {
	return &UserFrame{Frame: newFrame(name)}
}

// ToNative converts a pose expressed in the user frame to the native frame.
func (u *UserFrame) ToNative(p spatial.Pose) spatial.Pose {
	return spatial.Compose(u.Pose(), p)
}

// FromNative converts a native pose to the user frame.
func (u *UserFrame) FromNative(p spatial.Pose) spatial.Pose {
	return spatial.Compose(u.Pose().Invert(), p)
}
