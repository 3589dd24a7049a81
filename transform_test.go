package threelove

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- composeTransform ---

func TestComposeTransformIdentity(t *testing.T) {
	got := composeTransform(0, 0, 1, 1, 0)
	assertMatrix(t, "identity", got, identityTransform)
}

func TestComposeTransformTranslation(t *testing.T) {
	got := composeTransform(10, 20, 1, 1, 0)
	assertMatrix(t, "translation", got, [6]float64{1, 0, 0, 1, 10, 20})
}

func TestComposeTransformScale(t *testing.T) {
	got := composeTransform(0, 0, 2, 3, 0)
	assertMatrix(t, "scale", got, [6]float64{2, 0, 0, 3, 0, 0})
}

func TestComposeTransformRotation90(t *testing.T) {
	got := composeTransform(0, 0, 1, 1, math.Pi/2)
	// cos(90)=0, sin(90)=1 → a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", got, [6]float64{0, 1, -1, 0, 0, 0})
}

func TestComposeTransformCombined(t *testing.T) {
	got := composeTransform(50, 60, 2, 2, math.Pi/2)
	// Scale(2) then Rotate(90): a=0, b=2, c=-2, d=0; translate last.
	assertMatrix(t, "combined", got, [6]float64{0, 2, -2, 0, 50, 60})
}

// --- multiplyAffine ---

func TestMultiplyIdentity(t *testing.T) {
	m := [6]float64{2, 0, 0, 3, 10, 20}
	assertMatrix(t, "id*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*id", multiplyAffine(m, identityTransform), m)
}

func TestMultiplyTranslations(t *testing.T) {
	a := [6]float64{1, 0, 0, 1, 10, 0}
	b := [6]float64{1, 0, 0, 1, 0, 5}
	assertMatrix(t, "t*t", multiplyAffine(a, b), [6]float64{1, 0, 0, 1, 10, 5})
}

// --- invertAffine ---

func TestInvertRoundtrip(t *testing.T) {
	m := composeTransform(50, 60, 2, 3, 0.7)
	inv := invertAffine(m)
	assertMatrix(t, "m*inv", multiplyAffine(m, inv), identityTransform)
}

func TestInvertSingular(t *testing.T) {
	m := [6]float64{0, 0, 0, 0, 5, 5}
	assertMatrix(t, "singular", invertAffine(m), identityTransform)
}

// --- transformPoint ---

func TestTransformPoint(t *testing.T) {
	m := composeTransform(10, 20, 2, 2, 0)
	x, y := transformPoint(m, 3, 4)
	assertNear(t, "x", x, 16)
	assertNear(t, "y", y, 28)
}

func TestTransformPointRotation(t *testing.T) {
	m := composeTransform(0, 0, 1, 1, math.Pi/2)
	x, y := transformPoint(m, 1, 0)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 1)
}
