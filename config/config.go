// Package config defines the top level armsim configuration and how to read it.
package config

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/armsim/logging"
	"go.viam.com/armsim/motion"
	"go.viam.com/armsim/motionplan/ik"
	"go.viam.com/armsim/referenceframe"
	"go.viam.com/armsim/robot"
	"go.viam.com/armsim/utils"
)

// Config describes an arm simulation.
type Config struct {
	// Path of a model JSON file. Empty selects the built-in model.
	ModelPath string `json:"model_path,omitempty"`

	Motion motion.Config `json:"motion"`
	IK     ik.Options    `json:"ik"`

	// Joint angles, in degrees, the arm starts at. Empty starts every joint at the in-range value
	// closest to zero.
	InitialJoints []float64 `json:"initial_joints_deg,omitempty"`

	LogLevel  logging.Level                 `json:"log_level"`
	LogConfig []logging.LoggerPatternConfig `json:"log,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Motion:   motion.DefaultConfig(),
		IK:       ik.DefaultOptions(),
		LogLevel: logging.INFO,
	}
}

// Validate returns every problem with the config combined.
func (cfg *Config) Validate() error {
	var err error
	if motionErr := cfg.Motion.Validate(); motionErr != nil {
		err = multierr.Append(err, errors.Wrap(motionErr, "motion"))
	}
	if ikErr := cfg.IK.Validate(); ikErr != nil {
		err = multierr.Append(err, errors.Wrap(ikErr, "ik"))
	}
	if n := len(cfg.InitialJoints); n != 0 && n != referenceframe.ChainDoF {
		err = multierr.Append(err, errors.Wrap(referenceframe.NewIncorrectDoFError(n, referenceframe.ChainDoF), "initial_joints_deg"))
	}
	for i, lpc := range cfg.LogConfig {
		if lpcErr := lpc.Validate(); lpcErr != nil {
			err = multierr.Append(err, errors.Wrap(lpcErr, fmt.Sprintf("log[%d]", i)))
		}
	}
	return err
}

// InitialAngles returns the configured initial joints in radians, or nil if none are set.
func (cfg *Config) InitialAngles() []float64 {
	if len(cfg.InitialJoints) == 0 {
		return nil
	}
	return lo.Map(cfg.InitialJoints, func(deg float64, _ int) float64 { return utils.DegToRad(deg) })
}

// Chain loads the configured model and moves it to the initial joints.
func (cfg *Config) Chain() (*referenceframe.Chain, error) {
	var chain *referenceframe.Chain
	if cfg.ModelPath == "" {
		chain = referenceframe.DefaultChain()
	} else {
		var err error
		chain, err = referenceframe.ParseModelJSONFile(cfg.ModelPath, "")
		if err != nil {
			return nil, err
		}
	}
	if angles := cfg.InitialAngles(); angles != nil {
		if err := chain.InRange(angles); err != nil {
			return nil, errors.Wrap(err, "initial_joints_deg")
		}
		if err := chain.SetJointAngles(angles); err != nil {
			return nil, errors.Wrap(err, "initial_joints_deg")
		}
	}
	return chain, nil
}

// Build validates the config and assembles the robot it describes.
func (cfg *Config) Build(logger logging.Logger) (*robot.Robot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	chain, err := cfg.Chain()
	if err != nil {
		return nil, err
	}
	solver, err := ik.NewSolver(logger.Sublogger("ik"), cfg.IK)
	if err != nil {
		return nil, err
	}
	return robot.New(logger, chain, solver, cfg.Motion)
}
