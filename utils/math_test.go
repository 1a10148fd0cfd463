package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestAngleConversions(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldAlmostEqual, 90.)
	test.That(t, RadToDeg(DegToRad(37.5)), test.ShouldAlmostEqual, 37.5)
}

func TestModAngRad(t *testing.T) {
	test.That(t, ModAngRad(0), test.ShouldEqual, 0.)
	test.That(t, ModAngRad(TwoPi), test.ShouldAlmostEqual, 0.)
	test.That(t, ModAngRad(-math.Pi/2), test.ShouldAlmostEqual, 3*math.Pi/2)
	test.That(t, ModAngRad(5*math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, ModAngRad(-1e-18), test.ShouldBeLessThan, TwoPi)
}

func TestModAngDeg(t *testing.T) {
	test.That(t, ModAngDeg(190), test.ShouldAlmostEqual, -170.)
	test.That(t, ModAngDeg(-180), test.ShouldAlmostEqual, 180.)
	test.That(t, ModAngDeg(180), test.ShouldAlmostEqual, 180.)
	test.That(t, ModAngDeg(725), test.ShouldAlmostEqual, 5.)
}

func TestMinAngleDiff(t *testing.T) {
	test.That(t, MinAngleDiff(0, math.Pi/2), test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, MinAngleDiff(0.1, TwoPi-0.1), test.ShouldAlmostEqual, -0.2)
	test.That(t, MinAngleDiff(TwoPi-0.1, 0.1), test.ShouldAlmostEqual, 0.2)
	test.That(t, MinAngleDiff(1, 1), test.ShouldEqual, 0.)
}

func TestClamp(t *testing.T) {
	test.That(t, Clamp(5, 0, 1), test.ShouldEqual, 1.)
	test.That(t, Clamp(-5, 0, 1), test.ShouldEqual, 0.)
	test.That(t, Clamp(0.5, 0, 1), test.ShouldEqual, 0.5)
	test.That(t, Float64AlmostEqual(1, 1+1e-9, 1e-6), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.1, 1e-6), test.ShouldBeFalse)
}
