package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"go.viam.com/test"
)

const homeConfig = `{"initial_joints_deg": [0, 0, 0, 0, 90, 0], "log_level": "warn"}`

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	err := NewApp(out, errOut).Run(append([]string{"armsim"}, args...))
	return out.String(), err
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "armsim.json")
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

// parsePose reads the values printed by formatPose.
func parsePose(t *testing.T, line string) []float64 {
	t.Helper()
	vals := make([]float64, 6)
	_, err := fmt.Sscanf(strings.TrimSpace(line), "x=%f y=%f z=%f w=%f p=%f r=%f",
		&vals[0], &vals[1], &vals[2], &vals[3], &vals[4], &vals[5])
	test.That(t, err, test.ShouldBeNil)
	return vals
}

func TestForwardKinematicsCommand(t *testing.T) {
	out, err := runApp(t, "fk", "0", "0", "0", "0", "90", "0")
	test.That(t, err, test.ShouldBeNil)
	pose := parsePose(t, out)
	test.That(t, pose[0], test.ShouldAlmostEqual, 470, 1e-3)
	test.That(t, pose[1], test.ShouldAlmostEqual, 0, 1e-3)
	test.That(t, pose[2], test.ShouldAlmostEqual, 725, 1e-3)

	out, err = runApp(t, "fk", "--user", "400,0,700,0,0,0", "0", "0", "0", "0", "90", "0")
	test.That(t, err, test.ShouldBeNil)
	pose = parsePose(t, out)
	test.That(t, pose[0], test.ShouldAlmostEqual, 70, 1e-3)
	test.That(t, pose[2], test.ShouldAlmostEqual, 25, 1e-3)

	_, err = runApp(t, "fk", "0", "0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "expected 6 arguments")

	_, err = runApp(t, "fk", "0", "0", "0", "0", "150", "0")
	test.That(t, err, test.ShouldNotBeNil)

	_, err = runApp(t, "fk", "0", "0", "x", "0", "90", "0")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestInverseKinematicsCommand(t *testing.T) {
	cfgPath := writeConfig(t, homeConfig)
	// negative values need -- so they are not read as flags
	fkOut, err := runApp(t, "fk", "--", "20", "10", "-5", "30", "60", "-40")
	test.That(t, err, test.ShouldBeNil)
	pose := parsePose(t, fkOut)

	args := []string{"--config", cfgPath, "ik", "--seed", "20,10,-5,30,60,-40", "--"}
	for _, v := range pose {
		args = append(args, fmt.Sprintf("%.6f", v))
	}
	out, err := runApp(t, args...)
	test.That(t, err, test.ShouldBeNil)
	fields := strings.Fields(strings.Trim(strings.TrimSpace(out), "[]"))
	test.That(t, len(fields), test.ShouldEqual, 6)
	for i, want := range []float64{20, 10, -5, 30, 60, -40} {
		got, err := strconv.ParseFloat(fields[i], 64)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, got, test.ShouldAlmostEqual, want, 1e-2)
	}

	_, err = runApp(t, "--config", cfgPath, "ik", "10000", "0", "0", "0", "0", "0")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestMoveJointCommand(t *testing.T) {
	cfgPath := writeConfig(t, homeConfig)
	out, err := runApp(t, "--config", cfgPath, "move-joint", "--speed", "50", "10", "0", "0", "0", "90", "0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "completed in")
	test.That(t, out, test.ShouldContainSubstring, "joints: [10.000 0.000 0.000 0.000 90.000 0.000]")

	out, err = runApp(t, "--config", cfgPath, "move-joint", "--max-ticks", "2", "90", "0", "0", "0", "90", "0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "did not finish")
	test.That(t, out, test.ShouldBeEmpty)
}

func TestMoveLinearCommand(t *testing.T) {
	cfgPath := writeConfig(t, homeConfig)
	out, err := runApp(t, "--config", cfgPath, "move-linear", "470", "0", "675", "0", "90", "0")
	test.That(t, err, test.ShouldBeNil)
	lines := strings.Split(out, "\n")
	test.That(t, lines[0], test.ShouldStartWith, "completed in")
	pose := parsePose(t, strings.TrimPrefix(lines[1], "pose:"))
	test.That(t, pose[0], test.ShouldAlmostEqual, 470, 1e-3)
	test.That(t, pose[2], test.ShouldAlmostEqual, 675, 1e-3)

	_, err = runApp(t, "--config", cfgPath, "move-linear", "20000", "0", "675", "0", "90", "0")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestTeachToolCommand(t *testing.T) {
	out, err := runApp(t, "teach-tool", "--tool", "5,-8,90", "--frame", "2")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "tool frame 2 (three point)")
	var offsetErr float64
	idx := strings.Index(out, "offset error:")
	test.That(t, idx, test.ShouldBeGreaterThanOrEqualTo, 0)
	_, err = fmt.Sscanf(out[idx:], "offset error: %f mm", &offsetErr)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, offsetErr, test.ShouldBeLessThan, 1e-2)

	_, err = runApp(t, "teach-tool", "--method", "four")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = runApp(t, "teach-tool", "--tool", "1,2")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBadConfig(t *testing.T) {
	_, err := runApp(t, "--config", writeConfig(t, `{"motion": {"tick_rate": -1}}`), "fk", "0", "0", "0", "0", "0", "0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "tick_rate")
}
