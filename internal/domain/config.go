package domain

// CatalogFormat selects the catalog file format.
type CatalogFormat string

const (
	FormatTable CatalogFormat = "table"
	FormatJSON  CatalogFormat = "json"
)

// Config is the analysis configuration loaded from an analysis.yaml file.
type Config struct {
	Catalog   CatalogConfig
	Selection SelectionConfig
	Fit       FitConfig
	Output    OutputConfig
}

type CatalogConfig struct {
	Path   string
	Format CatalogFormat

	// JSONPath expressions for the three columns, used when Format is json.
	JSONColumns JSONColumns
}

type JSONColumns struct {
	Distance    string
	Velocity    string
	Uncertainty string
}

type SelectionConfig struct {
	// MaxDistanceMpc is the exclusive upper bound on distance; rows at or
	// beyond it are excluded from the fit.
	MaxDistanceMpc float64
}

type FitConfig struct {
	InitialH0     float64
	MaxIterations int
	Tolerance     float64
}

type OutputConfig struct {
	ResultsDir string
	Save       bool
}

// DefaultConfig provides sane defaults for fields an analysis.yaml omits.
// The 100 Mpc bound keeps the sample at z ~ 0.02, well inside the regime
// where the linear law holds.
func DefaultConfig() Config {
	return Config{
		Catalog: CatalogConfig{
			Format: FormatTable,
		},
		Selection: SelectionConfig{
			MaxDistanceMpc: 100,
		},
		Fit: FitConfig{
			InitialH0:     50,
			MaxIterations: 50,
			Tolerance:     1e-10,
		},
		Output: OutputConfig{
			ResultsDir: "results",
			Save:       true,
		},
	}
}
