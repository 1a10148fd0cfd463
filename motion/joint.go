package motion

import (
	"math"

	"go.viam.com/armsim/referenceframe"
	"go.viam.com/armsim/utils"
)

// JointInterpolation rotates every joint toward its target so that all joints finish together.
// Each joint takes the shorter way around unless a limit lies strictly inside it, in which case
// it goes the long way.
type JointInterpolation struct {
	chain      *referenceframe.Chain
	tickPeriod float64

	target    []float64
	remaining []float64
	rates     []float64
	active    []bool
	numActive int
	total     float64

	// speed is the fixed speed ratio; dynamic motions read the chain's live ratio instead.
	speed   float64
	dynamic bool
}

// NewJointInterpolation starts a joint motion whose speed follows the chain's live speed ratio.
func NewJointInterpolation(chain *referenceframe.Chain, target []float64, cfg Config) (*JointInterpolation, error) {
	return newJointInterpolation(chain, target, cfg, 0, true)
}

// NewJointInterpolationWithSpeed starts a joint motion at a fixed speed ratio in (0, 1].
func NewJointInterpolationWithSpeed(
	chain *referenceframe.Chain,
	target []float64,
	cfg Config,
	speed float64,
) (*JointInterpolation, error) {
	if speed <= 0 || speed > 1 {
		return nil, errInvalidSpeed(speed)
	}
	return newJointInterpolation(chain, target, cfg, speed, false)
}

func newJointInterpolation(
	chain *referenceframe.Chain,
	target []float64,
	cfg Config,
	speed float64,
	dynamic bool,
) (*JointInterpolation, error) {
	dof := chain.DoF()
	if len(target) != dof {
		return nil, referenceframe.NewIncorrectDoFError(len(target), dof)
	}
	ji := &JointInterpolation{
		chain:      chain,
		tickPeriod: cfg.TickPeriod(),
		target:     make([]float64, dof),
		remaining:  make([]float64, dof),
		rates:      make([]float64, dof),
		active:     make([]bool, dof),
		speed:      speed,
		dynamic:    dynamic,
	}

	for i := 0; i < dof; i++ {
		j := chain.Joint(i)
		ji.target[i] = utils.ModAngRad(target[i])
		d := utils.MinAngleDiff(j.Rotation(), ji.target[i])
		if j.Limit().BlocksArc(j.Rotation(), d) {
			if d > 0 {
				d -= utils.TwoPi
			} else {
				d += utils.TwoPi
			}
		}
		ji.remaining[i] = d
		ji.total = math.Max(ji.total, math.Abs(d))
	}

	// Scale every joint's rate by its share of the longest move so all finish together. The chain
	// joints mirror the rates for inspection; stepping reads this motion's own copy.
	for i := 0; i < dof; i++ {
		if ji.total > 0 {
			ji.rates[i] = math.Abs(ji.remaining[i]) / ji.total * cfg.JointSpeed
		}
		chain.Joint(i).SetSpeedModifier(ji.rates[i])
		ji.active[i] = true
	}
	ji.numActive = dof
	return ji, nil
}

// Step advances every active joint by one tick and returns the number still moving.
func (ji *JointInterpolation) Step() int {
	if ji.numActive == 0 {
		return 0
	}
	ratio := ji.speed
	if ji.dynamic {
		ratio = ji.chain.SpeedRatio()
	}
	for i, active := range ji.active {
		if !active {
			continue
		}
		j := ji.chain.Joint(i)
		delta := ji.rates[i] * ratio * ji.tickPeriod
		rem := ji.remaining[i]
		if math.Abs(rem) <= delta {
			j.SetRotation(ji.target[i])
			ji.finish(i)
			continue
		}
		step := math.Copysign(delta, rem)
		j.SetRotation(j.Rotation() + step)
		ji.remaining[i] = rem - step
	}
	return ji.numActive
}

func (ji *JointInterpolation) finish(i int) {
	ji.remaining[i] = 0
	ji.active[i] = false
	ji.chain.Joint(i).SetSpeedModifier(0)
	ji.numActive--
}

// Halt stops every joint where it is. It is safe to call more than once.
func (ji *JointInterpolation) Halt() {
	for i, active := range ji.active {
		if active {
			ji.finish(i)
		}
	}
}

// HasMotion reports whether any joint is still moving.
func (ji *JointInterpolation) HasMotion() bool {
	return ji.numActive > 0
}

// HasFault is always false; joint motion cannot fail once started.
func (ji *JointInterpolation) HasFault() bool {
	return false
}

// Fault always returns nil.
func (ji *JointInterpolation) Fault() error {
	return nil
}

// RemainingDistance returns the signed rotation, in radians, joint j still has to travel.
func (ji *JointInterpolation) RemainingDistance(j int) float64 {
	return ji.remaining[j]
}

// Remaining returns the largest rotation, in radians, any joint still has to travel.
func (ji *JointInterpolation) Remaining() float64 {
	if ji.numActive == 0 {
		return 0
	}
	rem := 0.
	for _, r := range ji.remaining {
		rem = math.Max(rem, math.Abs(r))
	}
	return rem
}

// Total returns the rotation of the joint with the furthest to travel when the motion started.
func (ji *JointInterpolation) Total() float64 {
	return ji.total
}
