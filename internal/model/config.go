package model

// Config is the complete runtime configuration.
// Hierarchy (highest to lowest): CLI flags, STRENPY_* env vars,
// ~/.strenpy/config.yaml, the defaults below.
type Config struct {
	Geometry    GeometryConfig    `yaml:"geometry" json:"geometry"`
	Analysis    AnalysisConfig    `yaml:"analysis" json:"analysis"`
	Output      OutputConfig      `yaml:"output" json:"output"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
}

// GeometryConfig holds the default specimen geometry. Per-specimen values
// from flags or a batch manifest override these.
type GeometryConfig struct {
	GaugeLengthMM float64 `yaml:"gauge_length_mm" json:"gauge_length_mm"`
	DiameterMM    float64 `yaml:"diameter_mm" json:"diameter_mm"`
	AreaMM2       float64 `yaml:"area_mm2" json:"area_mm2"`
}

// AnalysisConfig holds the tunable thresholds of the property calculations.
type AnalysisConfig struct {
	// ElasticLimitStrain bounds the prefix used for the Young's modulus fit.
	// It directly determines offset-yield accuracy; 0.002 (0.2% strain) is
	// the documented default for the KupferDigital copper-alloy dataset.
	ElasticLimitStrain float64 `yaml:"elastic_limit_strain" json:"elastic_limit_strain"`

	// OffsetStrain is the offset of the yield construction line (0.2%).
	OffsetStrain float64 `yaml:"offset_strain" json:"offset_strain"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Dir     string `yaml:"dir" json:"dir"`
	Figures bool   `yaml:"figures" json:"figures"`
	Verbose bool   `yaml:"verbose" json:"verbose"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Geometry: GeometryConfig{
			GaugeLengthMM: 25.0,
		},
		Analysis: AnalysisConfig{
			ElasticLimitStrain: 0.002,
			OffsetStrain:       0.002,
		},
		Output: OutputConfig{
			Dir:     "output",
			Figures: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
	}
}
