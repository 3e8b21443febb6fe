package config

type YAMLAnalysis struct {
	Catalog   YAMLCatalog   `yaml:"catalog"`
	Selection YAMLSelection `yaml:"selection"`
	Fit       YAMLFit       `yaml:"fit"`
	Output    YAMLOutput    `yaml:"output"`
}

type YAMLCatalog struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`

	JSON YAMLJSONColumns `yaml:"json"`
}

type YAMLJSONColumns struct {
	Distance    string `yaml:"distance"`
	Velocity    string `yaml:"velocity"`
	Uncertainty string `yaml:"uncertainty"`
}

type YAMLSelection struct {
	MaxDistanceMpc *float64 `yaml:"max_distance_mpc"`
}

type YAMLFit struct {
	InitialH0     *float64 `yaml:"initial_h0"`
	MaxIterations *int     `yaml:"max_iterations"`
	Tolerance     *float64 `yaml:"tolerance"`
}

type YAMLOutput struct {
	ResultsDir string `yaml:"results_dir"`
	Save       *bool  `yaml:"save"`
}
