package plotting

import (
	"math"
	"testing"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

func TestColormapAt(t *testing.T) {
	cmap := &Colormap{
		Name: "two-stop",
		Stops: []drawing.Color{
			{R: 0, G: 0, B: 0, A: 255},
			{R: 255, G: 255, B: 255, A: 255},
		},
	}

	tests := []struct {
		name string
		v    float64
		want drawing.Color
	}{
		{"at minimum", 0, drawing.Color{R: 0, G: 0, B: 0, A: 255}},
		{"at maximum", 100, drawing.Color{R: 255, G: 255, B: 255, A: 255}},
		{"midpoint", 50, drawing.Color{R: 127, G: 127, B: 127, A: 255}},
		{"below minimum clamps", -50, drawing.Color{R: 0, G: 0, B: 0, A: 255}},
		{"above maximum clamps", 200, drawing.Color{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cmap.At(tt.v, 0, 100)
			if got != tt.want {
				t.Errorf("At(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestColormapAtNaN(t *testing.T) {
	got := DefaultColormap.At(math.NaN(), 0, 1)
	if got != drawing.ColorTransparent {
		t.Errorf("Expected transparent for NaN, got %v", got)
	}
}

func TestColormapDegenerateScale(t *testing.T) {
	got := DefaultColormap.At(5, 3, 3)
	if got != DefaultColormap.Stops[0] {
		t.Errorf("Expected first stop for degenerate scale, got %v", got)
	}
}

func TestBuiltinColormapEndpoints(t *testing.T) {
	if got := DefaultColormap.At(0, 0, 1); got != drawing.ColorFromHex("440154") {
		t.Errorf("Expected dark purple at scale minimum, got %v", got)
	}
	if got := DefaultColormap.At(1, 0, 1); got != drawing.ColorFromHex("fde725") {
		t.Errorf("Expected yellow at scale maximum, got %v", got)
	}
	if got := JetColormap.At(0, 0, 1); got != drawing.ColorFromHex("00007f") {
		t.Errorf("Expected dark blue at jet minimum, got %v", got)
	}
}
