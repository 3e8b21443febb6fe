package domain

import "fmt"

// Catalog is an observation set: three parallel columns, one row per galaxy.
// Distances are in Mpc, velocities and their uncertainties in km/s.
// A Catalog is read-only after construction; derived sets are new values.
type Catalog struct {
	Source string // provenance, e.g. the file it was loaded from

	DistancesMpc     []float64
	VelocitiesKms    []float64
	UncertaintiesKms []float64
}

// NewCatalog validates the three columns and returns a Catalog.
// All columns must have the same length and every uncertainty must be
// non-negative.
func NewCatalog(source string, distances, velocities, uncertainties []float64) (Catalog, error) {
	if len(velocities) != len(distances) || len(uncertainties) != len(distances) {
		return Catalog{}, fmt.Errorf(
			"distance has %d rows, velocity %d, uncertainty %d: %w",
			len(distances), len(velocities), len(uncertainties), ErrLengthMismatch,
		)
	}
	for i, u := range uncertainties {
		if u < 0 {
			return Catalog{}, fmt.Errorf("row %d: negative uncertainty %g: %w", i, u, ErrInvalidInput)
		}
	}

	return Catalog{
		Source:           source,
		DistancesMpc:     distances,
		VelocitiesKms:    velocities,
		UncertaintiesKms: uncertainties,
	}, nil
}

// Len reports the number of observations.
func (c Catalog) Len() int { return len(c.DistancesMpc) }

// SelectBelow returns the observations with distance strictly below
// maxDistanceMpc. The bound is exclusive: a row at exactly the threshold is
// dropped. The receiver is not modified; the result holds fresh slices.
func (c Catalog) SelectBelow(maxDistanceMpc float64) Catalog {
	out := Catalog{Source: c.Source}
	for i, d := range c.DistancesMpc {
		if d < maxDistanceMpc {
			out.DistancesMpc = append(out.DistancesMpc, d)
			out.VelocitiesKms = append(out.VelocitiesKms, c.VelocitiesKms[i])
			out.UncertaintiesKms = append(out.UncertaintiesKms, c.UncertaintiesKms[i])
		}
	}
	return out
}

// MinDistance returns the smallest distance in the catalog, or 0 for an
// empty catalog.
func (c Catalog) MinDistance() float64 {
	if c.Len() == 0 {
		return 0
	}
	min := c.DistancesMpc[0]
	for _, d := range c.DistancesMpc[1:] {
		if d < min {
			min = d
		}
	}
	return min
}

// MaxDistance returns the largest distance in the catalog, or 0 for an
// empty catalog.
func (c Catalog) MaxDistance() float64 {
	if c.Len() == 0 {
		return 0
	}
	max := c.DistancesMpc[0]
	for _, d := range c.DistancesMpc[1:] {
		if d > max {
			max = d
		}
	}
	return max
}

// HubbleVelocity is the regression model: the recession velocity predicted by
// Hubble's Law for a galaxy at distanceMpc given a Hubble constant h0 in
// km/s/Mpc. Pure and total; any real inputs are valid.
func HubbleVelocity(distanceMpc, h0 float64) float64 {
	return h0 * distanceMpc
}
