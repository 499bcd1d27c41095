package utils

import (
	"math"
	"testing"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{
			name:  "round to 2 decimals",
			input: 5808476.908798513,
			want:  5808476.91,
		},
		{
			name:  "already 2 decimals",
			input: 19566.15,
			want:  19566.15,
		},
		{
			name:  "integer",
			input: 3000000.0,
			want:  3000000.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round2(tt.input)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Round2() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  bool
	}{
		{name: "finite number", input: 123.45, want: true},
		{name: "infinity", input: math.Inf(1), want: false},
		{name: "negative infinity", input: math.Inf(-1), want: false},
		{name: "NaN", input: math.NaN(), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinite(tt.input); got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClampZero(t *testing.T) {
	if got := ClampZero(-0.5); got != 0 {
		t.Errorf("ClampZero(-0.5) = %v, want 0", got)
	}
	if got := ClampZero(42); got != 42 {
		t.Errorf("ClampZero(42) = %v, want 42", got)
	}
}
