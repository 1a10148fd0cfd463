package logging

import (
	"io"
	"testing"

	"go.viam.com/test"
)

func resetRegistry(t *testing.T) {
	t.Helper()
	prev := globalRegistry
	globalRegistry = newLoggerRegistry()
	t.Cleanup(func() { globalRegistry = prev })
}

func TestLoggerRegistration(t *testing.T) {
	resetRegistry(t)

	root := NewWriterLogger("armsim", io.Discard)
	RegisterLogger("armsim", root)

	logger, ok := LoggerNamed("armsim")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, logger, test.ShouldEqual, root)

	_, ok = LoggerNamed("motion")
	test.That(t, ok, test.ShouldBeFalse)

	sub := root.Sublogger("motion")
	logger, ok = LoggerNamed("armsim.motion")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, logger, test.ShouldEqual, sub)

	unregistered := NewWriterLogger("other", io.Discard)
	unregistered.Sublogger("child")
	_, ok = LoggerNamed("other.child")
	test.That(t, ok, test.ShouldBeFalse)

	test.That(t, GetRegisteredLoggerNames(), test.ShouldResemble, []string{"armsim", "armsim.motion"})
}

func TestUpdateLogLevel(t *testing.T) {
	resetRegistry(t)

	RegisterLogger("armsim", NewLogger("armsim"))
	test.That(t, UpdateLoggerLevel("armsim", DEBUG), test.ShouldBeNil)
	logger, _ := LoggerNamed("armsim")
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)

	test.That(t, UpdateLoggerLevel("missing", DEBUG), test.ShouldNotBeNil)
}

func TestLoggerPatternConfig(t *testing.T) {
	resetRegistry(t)

	root := NewLogger("armsim")
	RegisterLogger("armsim", root)
	motion := root.Sublogger("motion")
	robot := root.Sublogger("robot")

	err := UpdateLoggerConfig([]LoggerPatternConfig{
		{Pattern: "armsim.*", Level: "warn"},
		{Pattern: "armsim.motion", Level: "debug"},
		{Pattern: "bad..pattern", Level: "debug"},
		{Pattern: "armsim", Level: "loud"},
	})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "bad..pattern")
	test.That(t, err.Error(), test.ShouldContainSubstring, "loud")

	test.That(t, root.GetLevel(), test.ShouldEqual, INFO)
	test.That(t, motion.GetLevel(), test.ShouldEqual, DEBUG)
	test.That(t, robot.GetLevel(), test.ShouldEqual, WARN)

	// Loggers created after the update pick up the patterns too.
	ik := root.Sublogger("ik")
	test.That(t, ik.GetLevel(), test.ShouldEqual, WARN)
}

func TestLoggerPatternValidate(t *testing.T) {
	test.That(t, LoggerPatternConfig{Pattern: "armsim.motion", Level: "info"}.Validate(), test.ShouldBeNil)
	test.That(t, LoggerPatternConfig{Pattern: "*", Level: "ERROR"}.Validate(), test.ShouldBeNil)
	test.That(t, LoggerPatternConfig{Pattern: "", Level: "info"}.Validate(), test.ShouldNotBeNil)
	test.That(t, LoggerPatternConfig{Pattern: "armsim", Level: ""}.Validate(), test.ShouldNotBeNil)
}
