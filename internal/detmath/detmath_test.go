package detmath

import (
	"math"
	"testing"
)

func TestSinMatchesReference(t *testing.T) {
	for x := -50.0; x <= 50.0; x += 0.173 {
		got := Sin(x)
		want := math.Sin(x)
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("Sin(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestCosMatchesReference(t *testing.T) {
	for x := -50.0; x <= 50.0; x += 0.219 {
		got := Cos(x)
		want := math.Cos(x)
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("Cos(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestSinSpecialValues(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"zero", 0, 0},
		{"half pi", HalfPi, 1},
		{"minus half pi", -HalfPi, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sin(tt.x); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Sin(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
	if !math.IsNaN(Sin(math.Inf(1))) {
		t.Error("Sin(+Inf) should be NaN")
	}
}

func TestFade(t *testing.T) {
	tests := []struct {
		t, want float64
	}{
		{0, 0},
		{1, 1},
		{0.5, 0.5},
	}
	for _, tt := range tests {
		if got := Fade(tt.t); math.Abs(got-tt.want) > 1e-15 {
			t.Errorf("Fade(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		x, want float64
	}{
		{0.5, 1},
		{1.49, 1},
		{-0.5, -1},
		{-1.2, -1},
		{2.5, 3},
	}
	for _, tt := range tests {
		if got := Round(tt.x); got != tt.want {
			t.Errorf("Round(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestMap(t *testing.T) {
	if got := Map(5, 0, 10, 100, 200); got != 150 {
		t.Errorf("Map = %v, want 150", got)
	}
	if got := Map(5, 3, 3, 1, 2); got != 1 {
		t.Errorf("Map on empty range = %v, want 1", got)
	}
}
