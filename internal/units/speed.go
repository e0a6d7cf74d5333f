// Package units provides speed-unit constants and conversion for
// human-readable output. The library itself works exclusively in m/s.
package units

// Unit constants
const (
	MPS = "mps"
	MPH = "mph"
	KPH = "kph"
)

// ValidUnits contains all accepted unit values.
var ValidUnits = []string{MPS, MPH, KPH}

// IsValid checks if the given unit is one of the accepted values.
func IsValid(unit string) bool {
	for _, u := range ValidUnits {
		if unit == u {
			return true
		}
	}
	return false
}

// ConvertSpeed converts a speed from meters per second to the target unit.
// Unknown units pass the value through unchanged.
func ConvertSpeed(speedMPS float64, targetUnit string) float64 {
	switch targetUnit {
	case MPH:
		return speedMPS * 2.2369362920544
	case KPH:
		return speedMPS * 3.6
	default:
		return speedMPS
	}
}
