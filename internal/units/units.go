// Package units provides shared constants and validation for length units
package units

// Unit constants
const (
	Meters      = "meters"
	Feet        = "feet"
	Centimeters = "centimeters"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{Meters, Feet, Centimeters}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "meters, feet, centimeters"
}

// ConvertLength converts a length from meters to the target units.
// Export records always store meters; conversion is display-only.
func ConvertLength(meters float64, targetUnits string) float64 {
	switch targetUnits {
	case Meters:
		return meters
	case Feet:
		return meters * 3.280839895013123
	case Centimeters:
		return meters * 100
	default:
		return meters
	}
}
