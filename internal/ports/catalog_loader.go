package ports

import "github.com/pcastellanos/hubblefit/internal/domain"

// CatalogLoader loads an observation catalog from a source (e.g., filesystem).
type CatalogLoader interface {
	LoadCatalog(path string) (domain.Catalog, error)
}
