// Package config assembles the pipeline and logger configurations from the
// CLI flag / environment values collected by viper.
package config

import (
	"github.com/spf13/viper"

	"github.com/krishnapatil2/pcm/internal/segregation"
	"github.com/krishnapatil2/pcm/pkg/logger"
)

// BuildPipelineConfig creates a segregation pipeline configuration from the
// current viper state. Flags, environment variables (PCM_*) and the optional
// config file all land here through viper.
func BuildPipelineConfig() *segregation.Config {
	return &segregation.Config{
		Date:        viper.GetString("date"),
		CPPAN:       viper.GetString("cp-pan"),
		CashWithNCL: viper.GetString("cash-with-ncl"),

		FOMasterFile:      viper.GetString("fo-master"),
		CDMasterFile:      viper.GetString("cd-master"),
		CollateralFNOFile: viper.GetString("collateral-fno"),
		CollateralCDSFile: viper.GetString("collateral-cds"),
		MarginFNOFile:     viper.GetString("margin-fno"),
		MarginCDSFile:     viper.GetString("margin-cds"),
		ValuationFNOFile:  viper.GetString("valuation-fno"),
		ValuationCDSFile:  viper.GetString("valuation-cds"),
		PledgeFile:        viper.GetString("pledge"),
		ExtraRecordsFile:  viper.GetString("extra-records"),
		SantomFile:        viper.GetString("santom"),
		MasterRecordsFile: viper.GetString("master-records"),

		OutputDir: viper.GetString("output-dir"),
		ArchiveDB: viper.GetString("archive-db"),
	}
}

// LoggerConfig creates the logger configuration for the requested verbosity
// and log destination.
func LoggerConfig(verbose bool, logFile string) *logger.Config {
	var loggerConfig *logger.Config
	if logFile != "" {
		loggerConfig = logger.FileConfig(logFile)
	} else {
		loggerConfig = logger.DefaultConfig()
	}

	if verbose {
		loggerConfig.Level = logger.DebugLevel
	}

	return loggerConfig
}
