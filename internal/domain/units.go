package domain

import "fmt"

// Unit conversion constants. H0 carries km/s/Mpc; ages are reported in
// gigayears. Keeping the factors named (rather than inlined) is what guards
// against silent unit mismatches, the main correctness risk in this
// calculation.
const (
	// KmPerMpc is the IAU definition of the megaparsec expressed in km.
	KmPerMpc = 3.0856775814913673e19

	// SecondsPerGyr uses the Julian year (365.25 days).
	SecondsPerGyr = 3.15576e16

	// HubbleTimeFactorGyr converts a Hubble constant in km/s/Mpc into a
	// Hubble time in Gyr: t = HubbleTimeFactorGyr / H0. SecondsPerGyr
	// already carries the giga prefix, so no further scaling applies.
	HubbleTimeFactorGyr = KmPerMpc / SecondsPerGyr
)

// AgeEstimate is the Hubble-time age of the universe derived from a fitted
// Hubble constant, in gigayears.
type AgeEstimate struct {
	Gyr       float64 `json:"gyr"`
	StderrGyr float64 `json:"stderr_gyr"`
}

// AgeFromH0 converts a Hubble constant (km/s/Mpc) and its standard error into
// an age estimate. Uncertainty follows first-order propagation: since
// age = k/H0, the relative error in the age equals the relative error in H0.
// A non-positive H0 has no physical age and is rejected.
func AgeFromH0(h0, h0Stderr float64) (AgeEstimate, error) {
	if h0 <= 0 {
		return AgeEstimate{}, fmt.Errorf("H0 must be positive, got %g: %w", h0, ErrInvalidInput)
	}
	if h0Stderr < 0 {
		return AgeEstimate{}, fmt.Errorf("negative H0 stderr %g: %w", h0Stderr, ErrInvalidInput)
	}

	age := HubbleTimeFactorGyr / h0
	return AgeEstimate{
		Gyr:       age,
		StderrGyr: age * (h0Stderr / h0),
	}, nil
}
