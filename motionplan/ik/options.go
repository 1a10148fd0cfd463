package ik

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// default values for inverse kinematics.
const (
	defaultMaxIterations        = 100
	defaultRestarts             = 6
	defaultPositionTolerance    = 1e-4
	defaultOrientationTolerance = 1e-5
	defaultDamping              = 0.5
	defaultMaxStep              = 0.25
	defaultRestartPerturbation  = 0.05

	minDamping = 1e-4
	maxDamping = 1e8
)

// Options control the damped least squares solver.
type Options struct {
	// Iterations allowed per attempt.
	MaxIterations int `json:"max_iterations"`

	// Extra attempts from perturbed seeds after the first attempt fails.
	Restarts int `json:"restarts"`

	// Convergence thresholds, in millimeters and radians.
	PositionTolerance    float64 `json:"position_tolerance_mm"`
	OrientationTolerance float64 `json:"orientation_tolerance_rad"`

	// Millimeters per radian of orientation error.
	OrientationWeight float64 `json:"orientation_weight"`

	// Initial damping factor. It adapts as the solver makes or fails to make progress.
	Damping float64 `json:"damping"`

	// Largest change, in radians, to any joint in one iteration.
	MaxStep float64 `json:"max_step_rad"`

	// Size of the seed perturbation used by restarts, in radians.
	RestartPerturbation float64 `json:"restart_perturbation_rad"`
}

// DefaultOptions returns the solver defaults.
func DefaultOptions() Options {
	return Options{
		MaxIterations:        defaultMaxIterations,
		Restarts:             defaultRestarts,
		PositionTolerance:    defaultPositionTolerance,
		OrientationTolerance: defaultOrientationTolerance,
		OrientationWeight:    DefaultOrientationWeight,
		Damping:              defaultDamping,
		MaxStep:              defaultMaxStep,
		RestartPerturbation:  defaultRestartPerturbation,
	}
}

// Validate returns every problem with the options.
func (o Options) Validate() error {
	var err error
	if o.MaxIterations <= 0 {
		err = multierr.Append(err, errors.Errorf("max_iterations must be positive, got %d", o.MaxIterations))
	}
	if o.Restarts < 0 {
		err = multierr.Append(err, errors.Errorf("restarts must not be negative, got %d", o.Restarts))
	}
	if o.PositionTolerance <= 0 {
		err = multierr.Append(err, errors.New("position_tolerance_mm must be positive"))
	}
	if o.OrientationTolerance <= 0 {
		err = multierr.Append(err, errors.New("orientation_tolerance_rad must be positive"))
	}
	if o.OrientationWeight <= 0 {
		err = multierr.Append(err, errors.New("orientation_weight must be positive"))
	}
	if o.Damping <= 0 {
		err = multierr.Append(err, errors.New("damping must be positive"))
	}
	if o.MaxStep <= 0 {
		err = multierr.Append(err, errors.New("max_step_rad must be positive"))
	}
	if o.RestartPerturbation < 0 {
		err = multierr.Append(err, errors.New("restart_perturbation_rad must not be negative"))
	}
	return err
}
