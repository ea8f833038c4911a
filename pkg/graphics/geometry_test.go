package graphics

import "testing"

func TestRectFromLTWH(t *testing.T) {
	r := RectFromLTWH(320, 0, 320, 480)
	if r.Right != 640 || r.Bottom != 480 {
		t.Fatalf("RectFromLTWH = %+v", r)
	}
	if r.Width() != 320 || r.Height() != 480 {
		t.Errorf("size = %+v, want 320x480", r.Size())
	}
	if r.Origin() != (Offset{X: 320}) {
		t.Errorf("origin = %+v", r.Origin())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		value, min, max float64
		want            float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{3, 0, -2, 0},
	}
	for _, tt := range tests {
		if got := Clamp(tt.value, tt.min, tt.max); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.value, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		value, step float64
		want        float64
	}{
		{170.06, 0.1, 170.0},
		{12.39, 0.1, 12.3},
		{12.3, 0.1, 12.3},
		{7.5, 0, 7.5},
	}
	for _, tt := range tests {
		if got := Truncate(tt.value, tt.step); !FloatEqual(got, tt.want) {
			t.Errorf("Truncate(%v, %v) = %v, want %v", tt.value, tt.step, got, tt.want)
		}
	}
}
