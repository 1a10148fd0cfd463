// Package motion drives the arm: joint and linear interpolation, the tick executor that steps
// the active motion, and a real-time driver that calls it.
package motion

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/armsim/motionplan/ik"
)

// default values for motion.
const (
	defaultTickRate    = 60.
	defaultJointSpeed  = math.Pi / 2
	defaultLinearSpeed = 500.
)

// Config holds the rates that turn ticks into motion.
type Config struct {
	// Ticks per second.
	TickRate float64 `json:"tick_rate"`

	// Rotation, in radians per second, of the joint with the furthest to travel at full speed.
	JointSpeed float64 `json:"joint_speed_rad_per_sec"`

	// Tool speed, in millimeters per second, of linear moves at full speed.
	LinearSpeed float64 `json:"linear_speed_mm_per_sec"`

	// Millimeters per radian used to blend orientation into linear path length.
	OrientationWeight float64 `json:"orientation_weight"`
}

// DefaultConfig returns the default rates.
func DefaultConfig() Config {
	return Config{
		TickRate:          defaultTickRate,
		JointSpeed:        defaultJointSpeed,
		LinearSpeed:       defaultLinearSpeed,
		OrientationWeight: ik.DefaultOrientationWeight,
	}
}

// Validate returns every problem with the config.
func (cfg Config) Validate() error {
	var err error
	if cfg.TickRate <= 0 {
		err = multierr.Append(err, errors.Errorf("tick_rate must be positive, got %v", cfg.TickRate))
	}
	if cfg.JointSpeed <= 0 {
		err = multierr.Append(err, errors.Errorf("joint_speed_rad_per_sec must be positive, got %v", cfg.JointSpeed))
	}
	if cfg.LinearSpeed <= 0 {
		err = multierr.Append(err, errors.Errorf("linear_speed_mm_per_sec must be positive, got %v", cfg.LinearSpeed))
	}
	if cfg.OrientationWeight <= 0 {
		err = multierr.Append(err, errors.Errorf("orientation_weight must be positive, got %v", cfg.OrientationWeight))
	}
	return err
}

// TickPeriod returns the seconds between ticks.
func (cfg Config) TickPeriod() float64 {
	return 1 / cfg.TickRate
}

// TickDuration returns the time between ticks.
func (cfg Config) TickDuration() time.Duration {
	return time.Duration(float64(time.Second) / cfg.TickRate)
}
