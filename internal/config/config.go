package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the full application configuration, populated from defaults,
// an optional YAML file, and COVID_REPORT_* environment variables.
type Config struct {
	Inputs   InputsConfig   `mapstructure:"inputs"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Output   OutputConfig   `mapstructure:"output"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// InputsConfig names the two source CSV files.
type InputsConfig struct {
	HospitalizationCSV string `mapstructure:"hospitalization_csv"`
	WastewaterCSV      string `mapstructure:"wastewater_csv"`
}

// AnalysisConfig exposes the analytical assumptions as tunable parameters
// rather than hard-coded constants. Both knobs silently narrow the analysis
// window, so they are configurable with documented defaults.
type AnalysisConfig struct {
	// RateFloor drops hospitalization rates below this value as reporting
	// noise before averaging. The conventional choice is 1.0.
	RateFloor float64 `mapstructure:"rate_floor"`

	// MinJoinedPoints is the smallest joined series the correlation step
	// will accept before failing with an insufficient-data error.
	MinJoinedPoints int `mapstructure:"min_joined_points"`
}

// OutputConfig controls where the rendered report and optional JSON series go.
type OutputConfig struct {
	// ReportPath receives the rendered text report; empty means stdout.
	ReportPath string `mapstructure:"report_path"`

	// JoinedJSONPath, when set, receives the joined series as JSON for
	// downstream charting tools.
	JoinedJSONPath string `mapstructure:"joined_json_path"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration. An empty path skips the file and uses defaults
// plus environment overrides only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("COVID_REPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("inputs.hospitalization_csv", "data/hospitalization_rates.csv")
	v.SetDefault("inputs.wastewater_csv", "data/wastewater_levels.csv")
	v.SetDefault("analysis.rate_floor", 1.0)
	v.SetDefault("analysis.min_joined_points", 10)
	v.SetDefault("output.report_path", "")
	v.SetDefault("output.joined_json_path", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func (c *Config) validate() error {
	if c.Inputs.HospitalizationCSV == "" {
		return fmt.Errorf("inputs.hospitalization_csv is required")
	}
	if c.Inputs.WastewaterCSV == "" {
		return fmt.Errorf("inputs.wastewater_csv is required")
	}
	if c.Analysis.RateFloor < 0 {
		return fmt.Errorf("analysis.rate_floor must be >= 0, got %g", c.Analysis.RateFloor)
	}
	if c.Analysis.MinJoinedPoints < 3 {
		return fmt.Errorf("analysis.min_joined_points must be >= 3, got %d", c.Analysis.MinJoinedPoints)
	}
	return nil
}
