package palette

import "testing"

func TestPerceptual(t *testing.T) {
	black, white := RGB(0, 0, 0), RGB(255, 255, 255)
	red, nearRed := RGB(200, 30, 30), RGB(202, 30, 30)

	if d := black.Perceptual(black); d != 0 {
		t.Errorf("distance to self = %v", d)
	}
	if far, near := black.Perceptual(white), red.Perceptual(nearRed); far <= near {
		t.Errorf("expected black/white (%v) farther apart than two reds (%v)", far, near)
	}
}

func TestColorfulRoundTrip(t *testing.T) {
	for _, c := range []Color{RGB(0, 0, 0), RGB(255, 255, 255), {R: 12, G: 200, B: 99, A: 0.4}} {
		if got := FromColorful(c.Colorful(), c.A); got != c {
			t.Errorf("round trip of %+v gave %+v", c, got)
		}
	}
}

func TestLerp(t *testing.T) {
	a, b := RGB(10, 20, 30), RGB(200, 100, 50)

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %+v, want %+v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %+v, want %+v", got, b)
	}
	if got := a.Lerp(b, 5); got != b {
		t.Errorf("Lerp clamps t, got %+v", got)
	}
}
