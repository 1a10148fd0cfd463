package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"go.viam.com/armsim/config"
	"go.viam.com/armsim/logging"
	"go.viam.com/armsim/robot"
	spatial "go.viam.com/armsim/spatialmath"
	"go.viam.com/armsim/utils"
)

const rootLoggerName = "armsim"

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// newRobot builds the robot described by the --config file, or the default robot. Logs go to the
// app's ErrWriter so command output stays clean.
func newRobot(c *cli.Context) (*robot.Robot, logging.Logger, error) {
	cfg := config.Default()
	if path := c.String(configFlag); path != "" {
		var err error
		if cfg, err = config.Read(path); err != nil {
			return nil, nil, err
		}
	}

	logger := logging.NewWriterLogger(rootLoggerName, c.App.ErrWriter)
	logger.SetLevel(cfg.LogLevel)
	if c.Bool(debugFlag) {
		logger.SetLevel(logging.DEBUG)
	}
	logging.RegisterLogger(rootLoggerName, logger)
	if err := logging.UpdateLoggerConfig(cfg.LogConfig); err != nil {
		return nil, nil, err
	}

	r, err := cfg.Build(logger)
	if err != nil {
		return nil, nil, err
	}
	if err := applyUserFrame(c, r); err != nil {
		return nil, nil, err
	}
	return r, logger, nil
}

// applyUserFrame activates user frame 0 set from --user, if given.
func applyUserFrame(c *cli.Context, r *robot.Robot) error {
	if !c.IsSet(userFlag) {
		return nil
	}
	vals := c.Float64Slice(userFlag)
	if len(vals) != 6 {
		return errors.Errorf("--%s needs x,y,z,w,p,r, got %d values", userFlag, len(vals))
	}
	const userIdx = 0
	offset := r3.Vector{X: vals[0], Y: vals[1], Z: vals[2]}
	if err := r.SetUserFrameDirect(userIdx, offset, spatial.EulerAngles{W: vals[3], P: vals[4], R: vals[5]}); err != nil {
		return err
	}
	return r.SetActiveUser(userIdx)
}

// floatArgs parses exactly n positional float arguments.
func floatArgs(c *cli.Context, n int) ([]float64, error) {
	if c.NArg() != n {
		return nil, errors.Errorf("expected %d arguments, got %d", n, c.NArg())
	}
	vals := make([]float64, n)
	for i, arg := range c.Args().Slice() {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i+1)
		}
		vals[i] = v
	}
	return vals, nil
}

// poseFromValues builds a pose from x, y, z in millimeters and w, p, r in degrees.
func poseFromValues(vals []float64) spatial.Pose {
	return spatial.NewPoseFromEuler(
		r3.Vector{X: vals[0], Y: vals[1], Z: vals[2]},
		&spatial.EulerAngles{W: vals[3], P: vals[4], R: vals[5]},
	)
}

func degreesToRadians(degrees []float64) []float64 {
	return lo.Map(degrees, func(d float64, _ int) float64 { return utils.DegToRad(d) })
}

// radiansToDegrees maps joint angles to signed degrees in (-180, 180], so they read the way they
// are typed on the command line.
func radiansToDegrees(radians []float64) []float64 {
	return lo.Map(radians, func(r float64, _ int) float64 {
		d := utils.ModAngDeg(utils.RadToDeg(r))
		if math.Abs(d) < 5e-4 {
			return 0
		}
		return d
	})
}

func formatPose(p spatial.Pose) string {
	ea := p.EulerAngles()
	return fmt.Sprintf("x=%.3f y=%.3f z=%.3f w=%.3f p=%.3f r=%.3f", p.Point.X, p.Point.Y, p.Point.Z, ea.W, ea.P, ea.R)
}

func formatJoints(radians []float64) string {
	return fmt.Sprintf("%.3f", radiansToDegrees(radians))
}
