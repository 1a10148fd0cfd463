// Package cli contains the armsim command line: forward and inverse kinematics queries, simulated
// joint and linear moves, and tool frame teaching.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	configFlag   = "config"
	debugFlag    = "debug"
	speedFlag    = "speed"
	seedFlag     = "seed"
	userFlag     = "user"
	realtimeFlag = "realtime"
	maxTicksFlag = "max-ticks"
	toolFlag     = "tool"
	frameFlag    = "frame"
	methodFlag   = "method"
)

func newApp() *cli.App {
	return &cli.App{
		Name:            "armsim",
		Usage:           "simulate a six axis robot arm",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      configFlag,
				Aliases:   []string{"c"},
				Usage:     "load configuration from `FILE`",
				TakesFile: true,
			},
			&cli.BoolFlag{
				Name:    debugFlag,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "fk",
				Usage:     "print the tool center point for a set of joint angles",
				ArgsUsage: "<j1> <j2> <j3> <j4> <j5> <j6>",
				Description: `Joint angles are in degrees. The pose is printed in the world frame, or in the
user frame set with --user.`,
				Flags: []cli.Flag{
					&cli.Float64SliceFlag{
						Name:  userFlag,
						Usage: "user frame as x,y,z,w,p,r (millimeters, degrees)",
					},
				},
				Action: ForwardKinematicsAction,
			},
			{
				Name:      "ik",
				Usage:     "print joint angles that reach a pose",
				ArgsUsage: "<x> <y> <z> <w> <p> <r>",
				Flags: []cli.Flag{
					&cli.Float64SliceFlag{
						Name:  seedFlag,
						Usage: "seed joint angles in degrees, defaults to the initial joints",
					},
					&cli.Float64SliceFlag{
						Name:  userFlag,
						Usage: "user frame as x,y,z,w,p,r (millimeters, degrees)",
					},
				},
				Action: InverseKinematicsAction,
			},
			{
				Name:      "move-joint",
				Usage:     "simulate a joint move and print where the arm ends up",
				ArgsUsage: "<j1> <j2> <j3> <j4> <j5> <j6>",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  speedFlag,
						Usage: "percent of full joint speed",
						Value: 100,
					},
					&cli.BoolFlag{
						Name:  realtimeFlag,
						Usage: "step at the configured tick rate instead of as fast as possible",
					},
					&cli.IntFlag{
						Name:  maxTicksFlag,
						Usage: "give up after this many ticks",
						Value: 100000,
					},
				},
				Action: MoveJointAction,
			},
			{
				Name:      "move-linear",
				Usage:     "simulate a linear move and print where the arm ends up",
				ArgsUsage: "<x> <y> <z> <w> <p> <r>",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  speedFlag,
						Usage: "tool speed in millimeters per second, defaults to the configured linear speed",
					},
					&cli.Float64SliceFlag{
						Name:  userFlag,
						Usage: "user frame as x,y,z,w,p,r (millimeters, degrees)",
					},
					&cli.BoolFlag{
						Name:  realtimeFlag,
						Usage: "step at the configured tick rate instead of as fast as possible",
					},
					&cli.IntFlag{
						Name:  maxTicksFlag,
						Usage: "give up after this many ticks",
						Value: 100000,
					},
				},
				Action: MoveLinearAction,
			},
			{
				Name:  "teach-tool",
				Usage: "teach a tool frame by touching a fixed point with a simulated tool",
				Description: `Mounts a tool with the offset given by --tool, touches its tip to one point from three
wrist orientations and teaches the tool frame from the recorded flange poses. The six point
method also records the orientation points and aligns the tool axes with the world axes.`,
				Flags: []cli.Flag{
					&cli.Float64SliceFlag{
						Name:  toolFlag,
						Usage: "simulated tool offset from the flange as x,y,z in millimeters",
						Value: cli.NewFloat64Slice(0, 0, 100),
					},
					&cli.IntFlag{
						Name:  frameFlag,
						Usage: "tool frame number to teach",
					},
					&cli.StringFlag{
						Name:  methodFlag,
						Usage: "teach method, three or six",
						Value: "three",
					},
				},
				Action: TeachToolAction,
			},
		},
	}
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app := newApp()
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
