package ports

import "github.com/pcastellanos/hubblefit/internal/domain"

// ResultStore persists analysis results for reproducibility.
type ResultStore interface {
	SaveResult(res domain.AnalysisResult) (id string, err error)
}
