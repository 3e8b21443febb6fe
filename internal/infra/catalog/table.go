// Package catalog provides filesystem loaders for galaxy catalogs: a
// whitespace-delimited table format and a JSON format with configurable
// JSONPath column selectors.
package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pcastellanos/hubblefit/internal/domain"
	"github.com/pcastellanos/hubblefit/internal/ports"
)

// TableLoader reads whitespace-delimited text tables with at least three
// numeric columns per row: distance (Mpc), velocity (km/s), velocity
// uncertainty (km/s). Blank lines and lines starting with '#' are skipped,
// and a single non-numeric header line is tolerated.
type TableLoader struct{}

func NewTableLoader() *TableLoader { return &TableLoader{} }

var _ ports.CatalogLoader = (*TableLoader)(nil)

func (l *TableLoader) LoadCatalog(path string) (domain.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Catalog{}, &domain.OpError{
			Op:   "catalog.load_table",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	var distances, velocities, uncertainties []float64

	sc := bufio.NewScanner(f)
	lineNo := 0
	headerSkipped := false
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)

		row, perr := parseRow(fields)
		if perr != nil {
			// The first line may be a column header of any width, as long as
			// it is not all numbers.
			if !headerSkipped && len(distances) == 0 && !allNumeric(fields) {
				headerSkipped = true
				continue
			}
			return domain.Catalog{}, invalidRow(path, lineNo, perr)
		}

		distances = append(distances, row[0])
		velocities = append(velocities, row[1])
		uncertainties = append(uncertainties, row[2])
	}
	if err := sc.Err(); err != nil {
		return domain.Catalog{}, &domain.OpError{
			Op:   "catalog.load_table",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	cat, err := domain.NewCatalog(path, distances, velocities, uncertainties)
	if err != nil {
		return domain.Catalog{}, &domain.OpError{
			Op:   "catalog.load_table",
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  err,
		}
	}
	return cat, nil
}

func parseRow(fields []string) ([3]float64, error) {
	var out [3]float64
	if len(fields) < 3 {
		return out, fmt.Errorf("expected at least 3 columns, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return out, fmt.Errorf("column %d: %q is not numeric", i+1, fields[i])
		}
		out[i] = v
	}
	return out, nil
}

func allNumeric(fields []string) bool {
	for _, f := range fields {
		if _, err := strconv.ParseFloat(f, 64); err != nil {
			return false
		}
	}
	return true
}

func invalidRow(path string, line int, err error) error {
	return &domain.OpError{
		Op:   "catalog.load_table",
		Kind: domain.KindInvalidInput,
		Path: path,
		Err:  fmt.Errorf("line %d: %w", line, err),
	}
}
