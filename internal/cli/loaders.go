package cli

import (
	"github.com/pcastellanos/hubblefit/internal/domain"
	"github.com/pcastellanos/hubblefit/internal/infra/catalog"
	"github.com/pcastellanos/hubblefit/internal/ports"
)

type loaderPort = ports.CatalogLoader

func catalogTable() loaderPort {
	return catalog.NewTableLoader()
}

func catalogJSON(cfg domain.Config) loaderPort {
	return catalog.NewJSONLoader(cfg.Catalog.JSONColumns)
}
