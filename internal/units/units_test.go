package units

import (
	"math"
	"testing"
)

func TestConvertLength(t *testing.T) {
	tests := []struct {
		name     string
		meters   float64
		units    string
		expected float64
	}{
		{"1 m to feet", 1.0, Feet, 3.28084},
		{"1 m to centimeters", 1.0, Centimeters, 100.0},
		{"1 m to meters", 1.0, Meters, 1.0},
		{"unknown units default to meters", 1.0, "cubits", 1.0},
		{"0 m to feet", 0.0, Feet, 0.0},
		{"ceiling height 2.44 m to feet", 2.44, Feet, 8.00525}, // ~8 ft
		{"room width 3.66 m to feet", 3.66, Feet, 12.00787},    // ~12 ft
		{"door width 0.91 m to centimeters", 0.91, Centimeters, 91.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertLength(tt.meters, tt.units)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("ConvertLength(%f, %s) = %f, want %f", tt.meters, tt.units, result, tt.expected)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected bool
	}{
		{"valid meters", Meters, true},
		{"valid feet", Feet, true},
		{"valid centimeters", Centimeters, true},
		{"invalid unit", "invalid", false},
		{"empty string", "", false},
		{"case sensitive", "Meters", false},
		{"case sensitive", "FEET", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValid(tt.unit)
			if result != tt.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tt.unit, result, tt.expected)
			}
		})
	}
}

func TestGetValidUnitsString(t *testing.T) {
	if got := GetValidUnitsString(); got != "meters, feet, centimeters" {
		t.Errorf("GetValidUnitsString() = %q", got)
	}
}
