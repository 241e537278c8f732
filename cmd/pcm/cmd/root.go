package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/krishnapatil2/pcm/cmd/pcm/config"
	"github.com/krishnapatil2/pcm/pkg/logger"
)

var (
	cfgFile string
	verbose bool
	logFile string
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pcm",
	Short: "Clearing member back-office report tool",
	Long: `pcm generates the daily client collateral segregation report from the
exchange-supplied master, collateral, margin and valuation files.

Examples:
  pcm segregation --date 15/03/2024 --cp-pan AACCO4820B \
    --fo-master F_CPMaster.csv --cd-master X_CPMaster.csv \
    --collateral-fno cc_fno.csv --collateral-cds cc_cds.csv \
    --margin-fno margin_fno.xls --margin-cds margin_cds.xls \
    --valuation-fno val_fno.csv --valuation-cds val_cds.csv
  pcm version`,
	Version: getVersionString(),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	// Bind flags to viper
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
}

// initConfig reads in config file and ENV variables.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)

		// If a config file is specified, read it in.
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
			os.Exit(1)
		}

		if viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	}

	// Read environment variables that match
	viper.SetEnvPrefix("PCM")
	viper.AutomaticEnv()

	applyLogging()
}

// applyLogging rebuilds the global logger from the verbose / log-file settings
func applyLogging() {
	loggerConfig := config.LoggerConfig(viper.GetBool("verbose"), viper.GetString("log-file"))

	log, err := logger.NewLogger(loggerConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logging: %s\n", err)
		return
	}
	logger.SetGlobalLogger(log)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = getVersionString()
}

func getVersionString() string {
	if version == "dev" {
		return fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
	}
	return version
}
