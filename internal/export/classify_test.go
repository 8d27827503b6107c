package export

import (
	"testing"

	"github.com/hippogriff-ai/roomscan/internal/scan"
)

func TestClassifyOpening(t *testing.T) {
	tests := []struct {
		name     string
		category scan.SurfaceCategory
		expected string
	}{
		{"door", scan.SurfaceDoor, "door"},
		{"window", scan.SurfaceWindow, "window"},
		{"opening", scan.SurfaceOpening, "opening"},
		{"unrecognised falls back to opening", scan.SurfaceCategory("skylight"), "opening"},
		{"empty falls back to opening", scan.SurfaceCategory(""), "opening"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyOpening(tt.category); got != tt.expected {
				t.Errorf("ClassifyOpening(%q) = %q, want %q", tt.category, got, tt.expected)
			}
		})
	}
}

func TestClassifyObject_AllKnownCategories(t *testing.T) {
	known := map[scan.ObjectCategory]string{
		scan.ObjectStorage:      "storage",
		scan.ObjectRefrigerator: "refrigerator",
		scan.ObjectStove:        "stove",
		scan.ObjectBed:          "bed",
		scan.ObjectSink:         "sink",
		scan.ObjectWasherDryer:  "washer_dryer",
		scan.ObjectToilet:       "toilet",
		scan.ObjectBathtub:      "bathtub",
		scan.ObjectOven:         "oven",
		scan.ObjectDishwasher:   "dishwasher",
		scan.ObjectTable:        "table",
		scan.ObjectSofa:         "sofa",
		scan.ObjectChair:        "chair",
		scan.ObjectFireplace:    "fireplace",
		scan.ObjectTelevision:   "television",
		scan.ObjectStairs:       "stairs",
	}

	for category, want := range known {
		if got := ClassifyObject(category); got != want {
			t.Errorf("ClassifyObject(%q) = %q, want %q", category, got, want)
		}
	}
}

func TestClassifyObject_UnrecognisedFallsBack(t *testing.T) {
	for _, category := range []scan.ObjectCategory{"hovercraft", ""} {
		if got := ClassifyObject(category); got != FallbackObjectType {
			t.Errorf("ClassifyObject(%q) = %q, want %q", category, got, FallbackObjectType)
		}
	}
}
