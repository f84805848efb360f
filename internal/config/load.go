package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config carries the resolved invocation parameters for a benchmark run.
type Config struct {
	// Iterations is the fixed number of measured frames per workload in
	// headless mode.
	Iterations int
	// HeadfulIterations is the (much smaller) frame budget used when a
	// window-equivalent presentation pass is requested. Headful runs exist
	// to validate workload behavior, not to produce comparable statistics.
	HeadfulIterations int
	// OutputDir is the root for everything the harness writes.
	OutputDir string
	// RegressionThresholdPct is the mean frame-time delta, in percent,
	// above which a comparison is flagged as a probable regression.
	RegressionThresholdPct float64
	// LogFile, if set, receives a copy of all log records.
	LogFile string
	Verbose bool
}

// Load initializes viper from file and environment and resolves the Config.
func Load(cfgFile string) Config {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".gamebench")
	}

	viper.SetEnvPrefix("GAMEBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("iterations", 1000)
	viper.SetDefault("headful_iterations", 240)
	viper.SetDefault("output_dir", ".gamebench")
	viper.SetDefault("regression_threshold_pct", 8.0)
	viper.SetDefault("log_file", "")
	viper.SetDefault("verbose", false)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	return Config{
		Iterations:             viper.GetInt("iterations"),
		HeadfulIterations:      viper.GetInt("headful_iterations"),
		OutputDir:              viper.GetString("output_dir"),
		RegressionThresholdPct: viper.GetFloat64("regression_threshold_pct"),
		LogFile:                viper.GetString("log_file"),
		Verbose:                viper.GetBool("verbose"),
	}
}

// BaselineDir is where the previous run of each workload is persisted.
func (c Config) BaselineDir() string {
	return filepath.Join(c.OutputDir, "baseline")
}

// ReportPath is the fixed artifact location, overwritten each successful run.
func (c Config) ReportPath() string {
	return filepath.Join(c.OutputDir, "report.svg")
}
