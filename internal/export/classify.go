// Package export assembles normalized, unit-correct measurement records from
// flattened scan geometry. The whole package is a pure function of one
// capture snapshot; it owns no state and has no error conditions.
package export

import "github.com/hippogriff-ai/roomscan/internal/scan"

// Fallback labels for categories the backend schema does not recognise.
// Classification never drops an entry: every surface and object yields
// exactly one output record.
const (
	FallbackOpeningType = "opening"
	FallbackObjectType  = "unknown"
)

// ClassifyOpening maps an opening surface category to its backend type
// string. Unrecognised categories fall back to "opening".
func ClassifyOpening(c scan.SurfaceCategory) string {
	switch c {
	case scan.SurfaceDoor:
		return "door"
	case scan.SurfaceWindow:
		return "window"
	case scan.SurfaceOpening:
		return "opening"
	default:
		return FallbackOpeningType
	}
}

// ClassifyObject maps a furniture object category to its backend type
// string. Unrecognised categories fall back to "unknown".
func ClassifyObject(c scan.ObjectCategory) string {
	switch c {
	case scan.ObjectStorage:
		return "storage"
	case scan.ObjectRefrigerator:
		return "refrigerator"
	case scan.ObjectStove:
		return "stove"
	case scan.ObjectBed:
		return "bed"
	case scan.ObjectSink:
		return "sink"
	case scan.ObjectWasherDryer:
		return "washer_dryer"
	case scan.ObjectToilet:
		return "toilet"
	case scan.ObjectBathtub:
		return "bathtub"
	case scan.ObjectOven:
		return "oven"
	case scan.ObjectDishwasher:
		return "dishwasher"
	case scan.ObjectTable:
		return "table"
	case scan.ObjectSofa:
		return "sofa"
	case scan.ObjectChair:
		return "chair"
	case scan.ObjectFireplace:
		return "fireplace"
	case scan.ObjectTelevision:
		return "television"
	case scan.ObjectStairs:
		return "stairs"
	default:
		return FallbackObjectType
	}
}
