package domain

import "time"

// FitResult is the outcome of a least-squares fit of Hubble's Law, produced
// once per fit invocation and never mutated afterward.
type FitResult struct {
	H0       float64 `json:"h0_km_s_mpc"`
	H0Stderr float64 `json:"h0_stderr_km_s_mpc"`

	PointsUsed int     `json:"points_used"`
	ChiSquare  float64 `json:"chi_square"`
	Iterations int     `json:"iterations"`
}

// AnalysisResult is the persisted artifact of a single pipeline run.
type AnalysisResult struct {
	ID string `json:"id"`

	CatalogPath    string  `json:"catalog_path"`
	TotalPoints    int     `json:"total_points"`
	MaxDistanceMpc float64 `json:"max_distance_mpc"`

	Fit FitResult   `json:"fit"`
	Age AgeEstimate `json:"age"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
