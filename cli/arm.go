package cli

import (
	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/armsim/logging"
	"go.viam.com/armsim/motion"
	"go.viam.com/armsim/referenceframe"
	"go.viam.com/armsim/robot"
	spatial "go.viam.com/armsim/spatialmath"
	"go.viam.com/armsim/utils"
)

const defaultMaxTicks = 100000

// teachHome keeps the wrist away from its singularity while teaching.
var teachHome = []float64{0, 0, 0, 0, utils.DegToRad(90), 0}

// ForwardKinematicsAction prints the pose of the given joint angles.
func ForwardKinematicsAction(c *cli.Context) error {
	degrees, err := floatArgs(c, referenceframe.ChainDoF)
	if err != nil {
		return err
	}
	r, _, err := newRobot(c)
	if err != nil {
		return err
	}
	chain := r.Chain()
	angles := degreesToRadians(degrees)
	if err := chain.InRange(angles); err != nil {
		return err
	}
	pose, err := chain.Transform(angles)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", formatPose(chain.FromNative(pose)))
	return nil
}

// InverseKinematicsAction prints joint angles, in degrees, reaching the given pose.
func InverseKinematicsAction(c *cli.Context) error {
	vals, err := floatArgs(c, 6)
	if err != nil {
		return err
	}
	r, _, err := newRobot(c)
	if err != nil {
		return err
	}
	chain := r.Chain()
	seed := chain.Angles()
	if c.IsSet(seedFlag) {
		seed = degreesToRadians(c.Float64Slice(seedFlag))
		if err := chain.InRange(seed); err != nil {
			return errors.Wrap(err, "invalid seed")
		}
	}
	target := chain.ToNative(poseFromValues(vals))
	solution, err := r.Executor().Solver().Solve(chain, seed, target)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", formatJoints(solution))
	return nil
}

// MoveJointAction simulates a joint move to the given angles in degrees.
func MoveJointAction(c *cli.Context) error {
	degrees, err := floatArgs(c, referenceframe.ChainDoF)
	if err != nil {
		return err
	}
	r, logger, err := newRobot(c)
	if err != nil {
		return err
	}
	if _, err := r.Executor().MoveJoint(degreesToRadians(degrees), motion.MoveOptions{Speed: c.Float64(speedFlag)}); err != nil {
		return err
	}
	return finishMove(c, r, logger)
}

// MoveLinearAction simulates a linear move to the given pose.
func MoveLinearAction(c *cli.Context) error {
	vals, err := floatArgs(c, 6)
	if err != nil {
		return err
	}
	r, logger, err := newRobot(c)
	if err != nil {
		return err
	}
	dest := referenceframe.NewPoint(poseFromValues(vals))
	if _, err := r.Executor().MoveLinear(dest, motion.MoveOptions{Speed: c.Float64(speedFlag)}); err != nil {
		return err
	}
	return finishMove(c, r, logger)
}

func finishMove(c *cli.Context, r *robot.Robot, logger logging.Logger) error {
	ticks, err := waitForMotion(c, r.Executor(), logger)
	if err != nil {
		return err
	}
	exec := r.Executor()
	printf(c.App.Writer, "completed in %d ticks (%.3fs)", ticks, float64(ticks)*exec.Config().TickPeriod())
	printf(c.App.Writer, "pose:   %s", formatPose(exec.CurrentPoint().Pose))
	printf(c.App.Writer, "joints: %s", formatJoints(r.Chain().Angles()))
	return nil
}

// waitForMotion steps exec until its motion ends, either directly or on a real-time driver when
// --realtime is set. A fault is returned as an error.
func waitForMotion(c *cli.Context, exec *motion.Executor, logger logging.Logger) (uint64, error) {
	maxTicks := uint64(c.Int(maxTicksFlag))
	if maxTicks == 0 {
		maxTicks = defaultMaxTicks
	}

	var ticks uint64
	if c.Bool(realtimeFlag) {
		var err error
		if ticks, err = waitRealtime(c, exec, logger, maxTicks); err != nil {
			return ticks, err
		}
	} else {
		for ; exec.HasMotion() && ticks < maxTicks; ticks++ {
			exec.Step()
		}
	}

	if exec.HasFault() {
		return ticks, exec.Fault()
	}
	if exec.HasMotion() {
		exec.Halt()
		return ticks, errors.Errorf("motion did not finish within %d ticks", maxTicks)
	}
	return ticks, nil
}

func waitRealtime(c *cli.Context, exec *motion.Executor, logger logging.Logger, maxTicks uint64) (uint64, error) {
	clk := clock.New()
	driver := motion.NewDriver(logger.Sublogger("driver"), exec, clk)
	defer driver.Close()

	poll := clk.Ticker(exec.Config().TickDuration())
	defer poll.Stop()
	for {
		var moving bool
		driver.Do(func(e *motion.Executor) { moving = e.HasMotion() })
		if !moving || driver.Ticks() >= maxTicks {
			return driver.Ticks(), nil
		}
		select {
		case <-c.Context.Done():
			driver.Do(func(e *motion.Executor) { e.Halt() })
			return driver.Ticks(), c.Context.Err()
		case <-poll.C:
		}
	}
}

// TeachToolAction teaches a tool frame with a simulated tool and prints the result.
func TeachToolAction(c *cli.Context) error {
	toolVals := c.Float64Slice(toolFlag)
	if len(toolVals) != 3 {
		return errors.Errorf("--%s needs x,y,z, got %d values", toolFlag, len(toolVals))
	}
	var method robot.TeachMethod
	switch m := c.String(methodFlag); m {
	case "three":
		method = robot.ThreePoint
	case "six":
		method = robot.SixPoint
	default:
		return errors.Errorf("unknown teach method %q", m)
	}
	frame := c.Int(frameFlag)

	r, logger, err := newRobot(c)
	if err != nil {
		return err
	}
	exec := r.Executor()
	move := func(start func() error) error {
		if err := start(); err != nil {
			return err
		}
		_, err := waitForMotion(c, exec, logger)
		return err
	}

	// mount the simulated tool in the last frame so the moves put its tip on the fixed point
	tool := r3.Vector{X: toolVals[0], Y: toolVals[1], Z: toolVals[2]}
	simulated := robot.NumFrames - 1
	if err := r.SetToolFrameDirect(simulated, tool, spatial.EulerAngles{}); err != nil {
		return err
	}
	if err := r.SetActiveTool(simulated); err != nil {
		return err
	}
	if err := move(func() error {
		_, err := exec.MoveJoint(teachHome, motion.MoveOptions{})
		return err
	}); err != nil {
		return err
	}

	base := exec.CurrentPoint().Pose
	for i, wrist := range []spatial.EulerAngles{{}, {W: 25, P: 10}, {P: -20, R: 30}} {
		orient := spatial.Mul(wrist.Quaternion(), base.Orientation)
		dest := referenceframe.NewPoint(spatial.NewPose(base.Point, orient))
		if err := move(func() error {
			_, err := exec.MoveJointToPose(dest, motion.MoveOptions{})
			return err
		}); err != nil {
			return errors.Wrapf(err, "approach %d", i+1)
		}
		if err := r.RecordTeachPoint(robot.ToolFrameKind, frame, referenceframe.TeachApproach1+i); err != nil {
			return err
		}
	}

	if method == robot.SixPoint {
		const reach = 50.
		for _, step := range []struct {
			slot  int
			delta r3.Vector
		}{
			{referenceframe.TeachOrientOrigin, r3.Vector{}},
			{referenceframe.TeachXDirection, r3.Vector{X: reach}},
			{referenceframe.TeachYDirection, r3.Vector{Y: reach}},
		} {
			dest := referenceframe.NewPoint(spatial.NewPose(base.Point.Add(step.delta), base.Orientation))
			if err := move(func() error {
				_, err := exec.MoveLinear(dest, motion.MoveOptions{})
				return err
			}); err != nil {
				return err
			}
			if err := r.RecordTeachPoint(robot.ToolFrameKind, frame, step.slot); err != nil {
				return err
			}
		}
	}

	if err := r.TeachToolFrame(frame, method); err != nil {
		return err
	}
	tf, err := r.ToolFrame(frame)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "tool frame %d (%s): %s", frame, method, formatPose(tf.Pose()))
	printf(c.App.Writer, "offset error: %.4f mm", tf.Offset.Sub(tool).Norm())
	return nil
}
