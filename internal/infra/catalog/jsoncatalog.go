package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/pcastellanos/hubblefit/internal/domain"
	"github.com/pcastellanos/hubblefit/internal/ports"
)

// JSONLoader reads a JSON survey export and pulls the three columns out with
// JSONPath expressions, e.g. "$.galaxies[*].distance_mpc". Each expression
// must select a list of numbers, and all three must select the same number
// of rows.
type JSONLoader struct {
	cols domain.JSONColumns
}

func NewJSONLoader(cols domain.JSONColumns) *JSONLoader {
	return &JSONLoader{cols: cols}
}

var _ ports.CatalogLoader = (*JSONLoader)(nil)

func (l *JSONLoader) LoadCatalog(path string) (domain.Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Catalog{}, &domain.OpError{
			Op:   "catalog.load_json",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return domain.Catalog{}, &domain.OpError{
			Op:   "catalog.load_json",
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  err,
		}
	}

	distances, err := l.column(doc, "distance", l.cols.Distance, path)
	if err != nil {
		return domain.Catalog{}, err
	}
	velocities, err := l.column(doc, "velocity", l.cols.Velocity, path)
	if err != nil {
		return domain.Catalog{}, err
	}
	uncertainties, err := l.column(doc, "uncertainty", l.cols.Uncertainty, path)
	if err != nil {
		return domain.Catalog{}, err
	}

	cat, err := domain.NewCatalog(path, distances, velocities, uncertainties)
	if err != nil {
		return domain.Catalog{}, &domain.OpError{
			Op:   "catalog.load_json",
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  err,
		}
	}
	return cat, nil
}

func (l *JSONLoader) column(doc any, name, expr, path string) ([]float64, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, &domain.OpError{
			Op:   "catalog.load_json",
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  fmt.Errorf("missing jsonpath expression for %s column", name),
		}
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "catalog.load_json",
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  fmt.Errorf("%s column (%s): %w", name, expr, err),
		}
	}

	list, ok := val.([]any)
	if !ok {
		return nil, &domain.OpError{
			Op:   "catalog.load_json",
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  fmt.Errorf("%s column (%s): expected a list, got %T", name, expr, val),
		}
	}

	out := make([]float64, 0, len(list))
	for i, item := range list {
		f, err := toFloat(item)
		if err != nil {
			return nil, &domain.OpError{
				Op:   "catalog.load_json",
				Kind: domain.KindInvalidInput,
				Path: path,
				Err:  fmt.Errorf("%s column row %d: %w", name, i, err),
			}
		}
		out = append(out, f)
	}
	return out, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Float64()
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("%v (%T) is not numeric", v, v)
	}
}
