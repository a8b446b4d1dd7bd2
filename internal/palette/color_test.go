package palette

import (
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#000000", Color{0, 0, 0, 1}},
		{"#ff8000", Color{255, 128, 0, 1}},
		{"#FF8000", Color{255, 128, 0, 1}},
		{"rgb(1, 2, 3)", Color{1, 2, 3, 1}},
		{"rgb(1,2,3)", Color{1, 2, 3, 1}},
		{"rgba(10, 20, 30, 0.5)", Color{10, 20, 30, 0.5}},
		{"rgba(255, 255, 255, 0)", Color{255, 255, 255, 0}},
		{"  rgba(4, 5, 6, 1)  ", Color{4, 5, 6, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"red",
		"#fff",
		"#gggggg",
		"#ff80001",
		"rgb(1, 2)",
		"rgb(1, 2, 3",
		"rgba(1, 2, 3, 4, 5)",
		"rgb(a, b, c)",
		"rgb(256, 0, 0)",
		"rgb(-1, 0, 0)",
		"rgba(1, 2, 3, 1.5)",
		"rgb(NaN, 0, 0)",
		"rgba(1, 2, 3, NaN)",
		"hsl(120, 50%, 50%)",
	}

	for _, in := range inputs {
		if _, err := ParseColor(in); !errors.Is(err, ErrInvalidColorFormat) {
			t.Errorf("ParseColor(%q): expected ErrInvalidColorFormat, got %v", in, err)
		}
	}
}

func TestColorString_RoundTrip(t *testing.T) {
	g, _ := NewGenerator(0.7, 0.8, 42)

	c := g.Next(nil)
	for i := 0; i < 200; i++ {
		parsed, err := ParseColor(c.String())
		if err != nil {
			t.Fatalf("ParseColor(%q) failed: %v", c.String(), err)
		}
		if parsed != c {
			t.Fatalf("round trip of %q gave %+v, want %+v", c.String(), parsed, c)
		}
		c = g.Next(&c)
	}
}

func TestColorFormatting(t *testing.T) {
	c := Color{R: 12, G: 200, B: 255, A: 0.25}

	if got := c.String(); got != "rgba(12, 200, 255, 0.25)" {
		t.Errorf("String() = %q", got)
	}
	if got := c.Hex(); got != "#0cc8ff" {
		t.Errorf("Hex() = %q", got)
	}
}

func TestBlend(t *testing.T) {
	bg := RGB(0, 0, 0)

	tests := []struct {
		name string
		fg   Color
		want Color
	}{
		{"opaque", Color{200, 100, 50, 1}, RGB(200, 100, 50)},
		{"transparent", Color{200, 100, 50, 0}, RGB(0, 0, 0)},
		{"half", Color{200, 100, 50, 0.5}, RGB(100, 50, 25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fg.Blend(bg); got != tt.want {
				t.Errorf("Blend = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	a, b := RGB(0, 0, 0), RGB(3, 4, 0)
	if d := a.Distance(b); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
	if d := a.Distance(a); d != 0 {
		t.Errorf("Distance to self = %v", d)
	}
}
