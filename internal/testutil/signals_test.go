package testutil

import "testing"

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(7, 0.5, 64)
	b := DeterministicNoise(7, 0.5, 64)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d: same seed produced %v and %v", i, a[i], b[i])
		}
		if a[i] < -0.5 || a[i] >= 0.5 {
			t.Fatalf("index %d: %v outside amplitude", i, a[i])
		}
	}
}

func TestRamp(t *testing.T) {
	r := Ramp(25)
	if len(r) != 25 || r[0] != 1 || r[24] != 25 {
		t.Fatalf("Ramp(25) = %v", r)
	}
}

func TestImpulse(t *testing.T) {
	p := Impulse(3, 4, 1, 2)
	for i, v := range p {
		want := 0.0
		if i == 1*4+2 {
			want = 1
		}
		if v != want {
			t.Fatalf("index %d = %v, want %v", i, v, want)
		}
	}

	if p := Impulse(2, 2, 5, 5); p[0] != 0 || p[3] != 0 {
		t.Fatal("out-of-range impulse should be all zeros")
	}
}

func TestRepeat(t *testing.T) {
	out := Repeat([]float64{1, 2}, 3)
	want := []float64{1, 2, 1, 2, 1, 2}
	RequireSliceNearlyEqual(t, out, want, 0)
}

func TestDC(t *testing.T) {
	for _, v := range DC(0.25, 5) {
		if v != 0.25 {
			t.Fatalf("DC value %v", v)
		}
	}
}
