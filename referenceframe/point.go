package referenceframe

import (
	"fmt"

	spatial "go.viam.com/armsim/spatialmath"
)

// Point is a taught or computed robot position: a pose and, optionally, the joint angles that
// reach it.
type Point struct {
	spatial.Pose
	Joints []float64 `json:"joints,omitempty"`
}

// NewPoint returns a Point without joint angles.
func NewPoint(pose spatial.Pose) *Point {
	return &Point{Pose: pose}
}

// NewPointWithJoints returns a Point carrying a copy of joints.
func NewPointWithJoints(pose spatial.Pose, joints []float64) *Point {
	return &Point{Pose: pose, Joints: append([]float64(nil), joints...)}
}

// HasJoints reports whether the point carries joint angles.
func (p *Point) HasJoints() bool {
	return len(p.Joints) > 0
}

// Copy returns a deep copy of the point.
func (p *Point) Copy() *Point {
	if p.HasJoints() {
		return NewPointWithJoints(p.Pose, p.Joints)
	}
	return NewPoint(p.Pose)
}

func (p *Point) String() string {
	if !p.HasJoints() {
		return p.Pose.String()
	}
	return fmt.Sprintf("%v joints:%.4f", p.Pose, p.Joints)
}
