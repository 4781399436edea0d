// Package dosage maps glucose readings to a suggested insulin dose.
//
// The table is a placeholder heuristic, not a medical algorithm. Clients
// depend on the exact breakpoints, so they must not be tuned here.
package dosage

const (
	Unit = "units"
	Note = "This is a simplified suggestion. Always consult with healthcare professionals."
)

// Advise returns the suggested insulin dose in units for a glucose reading
// in mg/dL. Any input is accepted.
func Advise(glucose float64) float64 {
	switch {
	case glucose < 70:
		return 0.0
	case glucose < 120:
		return 2.0
	case glucose < 180:
		return 4.0
	case glucose < 250:
		return 6.0
	default:
		return 8.0
	}
}
