package referenceframe

import (
	"fmt"
	"math"

	"go.viam.com/armsim/utils"
)

// Limit represents the circular range of motion of a revolute joint. Both ends are angles in
// [0, 2π). Min > Max denotes a range that wraps through zero. A limit of [0, 2π) is unbounded.
type Limit struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// NewUnboundedLimit returns a limit allowing any rotation.
func NewUnboundedLimit() Limit {
	return Limit{Min: 0, Max: utils.TwoPi}
}

// NewLimitFromDegrees builds a limit from a conventional [min, max] range in degrees such as
// [-170, 170]. Ranges spanning a full turn or more are unbounded.
func NewLimitFromDegrees(minDeg, maxDeg float64) (Limit, error) {
	if minDeg > maxDeg {
		return Limit{}, fmt.Errorf("joint limit min %.3f greater than max %.3f", minDeg, maxDeg)
	}
	if maxDeg-minDeg >= 360 {
		return NewUnboundedLimit(), nil
	}
	return Limit{
		Min: utils.ModAngRad(utils.DegToRad(minDeg)),
		Max: utils.ModAngRad(utils.DegToRad(maxDeg)),
	}, nil
}

// Unbounded reports whether the joint may rotate freely.
func (l Limit) Unbounded() bool {
	return l.Max-l.Min >= utils.TwoPi-1e-9
}

// Contains reports whether angle, after normalization to [0, 2π), lies within the limit.
func (l Limit) Contains(angle float64) bool {
	if l.Unbounded() {
		return true
	}
	a := utils.ModAngRad(angle)
	if l.Min <= l.Max {
		return a >= l.Min && a <= l.Max
	}
	return a >= l.Min || a <= l.Max
}

// Clamp normalizes angle and, when it lies outside the limit, returns the nearer boundary.
func (l Limit) Clamp(angle float64) float64 {
	a := utils.ModAngRad(angle)
	if l.Contains(a) {
		return a
	}
	if math.Abs(utils.MinAngleDiff(a, l.Min)) <= math.Abs(utils.MinAngleDiff(a, l.Max)) {
		return l.Min
	}
	return l.Max
}

// BlocksArc reports whether a boundary lies strictly inside the arc starting at from and sweeping
// delta radians. Arcs that only touch a boundary at either end are not blocked.
func (l Limit) BlocksArc(from, delta float64) bool {
	if l.Unbounded() || delta == 0 {
		return false
	}
	span := math.Abs(delta)
	for _, b := range [2]float64{l.Min, l.Max} {
		var s float64
		if delta > 0 {
			s = utils.ModAngRad(b - from)
		} else {
			s = utils.ModAngRad(from - b)
		}
		if s > 0 && s < span {
			return true
		}
	}
	return false
}

func (l Limit) String() string {
	if l.Unbounded() {
		return "[unbounded]"
	}
	return fmt.Sprintf("[%.3f, %.3f]", utils.RadToDeg(l.Min), utils.RadToDeg(l.Max))
}
