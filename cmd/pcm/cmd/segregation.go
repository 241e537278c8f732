package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/krishnapatil2/pcm/cmd/pcm/config"
	"github.com/krishnapatil2/pcm/internal/segregation"
)

// Flags for the segregation command
var (
	reportDate  string
	cpPAN       string
	cashWithNCL string

	foMasterFile      string
	cdMasterFile      string
	collateralFNOFile string
	collateralCDSFile string
	marginFNOFile     string
	marginCDSFile     string
	valuationFNOFile  string
	valuationCDSFile  string
	pledgeFile        string
	extraRecordsFile  string
	santomFile        string
	masterRecordsFile string

	outputDir string
	archiveDB string
)

// segregationCmd represents the segregation command
var segregationCmd = &cobra.Command{
	Use:   "segregation",
	Short: "Generate the daily client collateral segregation report",
	Long: `Segregation merges the exchange master, cash collateral, daily margin and
collateral valuation files for the FO and CD segments into the regulatory
segregation report CSV.

This command requires:
- The FO and CD CP master files
- Cash collateral, daily margin and collateral valuation reports per segment
- The run date (DD/MM/YYYY) and the clearing member PAN

Examples:
  # Basic run
  pcm segregation --date 15/03/2024 --cp-pan AACCO4820B \
    --fo-master F_CPMaster.csv --cd-master X_CPMaster.csv \
    --collateral-fno cc_fno.csv --collateral-cds cc_cds.csv \
    --margin-fno margin_fno.xls --margin-cds margin_cds.xls \
    --valuation-fno val_fno.csv --valuation-cds val_cds.csv

  # With the G-Sec pledge workbook and SANTOM adjustments
  pcm segregation ... --pledge sec_pledge.xlsx \
    --santom santom.csv --cash-with-ncl 1250000.50

  # Keep an archive bundle of every run
  pcm segregation ... --archive-db pcm_archive.db`,

	PreRunE: validateSegregationFlags,
	RunE:    runSegregation,
}

func init() {
	rootCmd.AddCommand(segregationCmd)

	// Required flags
	segregationCmd.Flags().StringVarP(&reportDate, "date", "d", "", "report date in DD/MM/YYYY (required)")
	segregationCmd.Flags().StringVar(&cpPAN, "cp-pan", "", "clearing member PAN, used in the output file name (required)")
	segregationCmd.Flags().StringVar(&foMasterFile, "fo-master", "", "path to the FO segment CP master file (required)")
	segregationCmd.Flags().StringVar(&cdMasterFile, "cd-master", "", "path to the CD segment CP master file (required)")
	segregationCmd.Flags().StringVar(&collateralFNOFile, "collateral-fno", "", "path to the FNO cash collateral report (required)")
	segregationCmd.Flags().StringVar(&collateralCDSFile, "collateral-cds", "", "path to the CDS cash collateral report (required)")
	segregationCmd.Flags().StringVar(&marginFNOFile, "margin-fno", "", "path to the NSEFNO daily margin report (required)")
	segregationCmd.Flags().StringVar(&marginCDSFile, "margin-cds", "", "path to the NSECR daily margin report (required)")
	segregationCmd.Flags().StringVar(&valuationFNOFile, "valuation-fno", "", "path to the FNO collateral valuation report (required)")
	segregationCmd.Flags().StringVar(&valuationCDSFile, "valuation-cds", "", "path to the CDS collateral valuation report (required)")

	// Optional input flags
	segregationCmd.Flags().StringVar(&pledgeFile, "pledge", "", "path to the G-Sec pledge valuation workbook")
	segregationCmd.Flags().StringVar(&extraRecordsFile, "extra-records", "", "path to the manual extra records file")
	segregationCmd.Flags().StringVar(&santomFile, "santom", "", "path to the SANTOM adjustment file")
	segregationCmd.Flags().StringVar(&masterRecordsFile, "master-records", "", "path to the AV/AT override JSON (default master_records.json)")
	segregationCmd.Flags().StringVar(&cashWithNCL, "cash-with-ncl", "0", "cash placed with NCL for the proprietary SANTOM rows")

	// Output flags
	segregationCmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "directory for the report and error log")
	segregationCmd.Flags().StringVar(&archiveDB, "archive-db", "", "SQLite database for run archival (disabled when empty)")

	// Mark required flags
	segregationCmd.MarkFlagRequired("date")
	segregationCmd.MarkFlagRequired("cp-pan")
	segregationCmd.MarkFlagRequired("fo-master")
	segregationCmd.MarkFlagRequired("cd-master")
	segregationCmd.MarkFlagRequired("collateral-fno")
	segregationCmd.MarkFlagRequired("collateral-cds")
	segregationCmd.MarkFlagRequired("margin-fno")
	segregationCmd.MarkFlagRequired("margin-cds")
	segregationCmd.MarkFlagRequired("valuation-fno")
	segregationCmd.MarkFlagRequired("valuation-cds")

	// Bind flags to viper
	viper.BindPFlag("date", segregationCmd.Flags().Lookup("date"))
	viper.BindPFlag("cp-pan", segregationCmd.Flags().Lookup("cp-pan"))
	viper.BindPFlag("cash-with-ncl", segregationCmd.Flags().Lookup("cash-with-ncl"))
	viper.BindPFlag("fo-master", segregationCmd.Flags().Lookup("fo-master"))
	viper.BindPFlag("cd-master", segregationCmd.Flags().Lookup("cd-master"))
	viper.BindPFlag("collateral-fno", segregationCmd.Flags().Lookup("collateral-fno"))
	viper.BindPFlag("collateral-cds", segregationCmd.Flags().Lookup("collateral-cds"))
	viper.BindPFlag("margin-fno", segregationCmd.Flags().Lookup("margin-fno"))
	viper.BindPFlag("margin-cds", segregationCmd.Flags().Lookup("margin-cds"))
	viper.BindPFlag("valuation-fno", segregationCmd.Flags().Lookup("valuation-fno"))
	viper.BindPFlag("valuation-cds", segregationCmd.Flags().Lookup("valuation-cds"))
	viper.BindPFlag("pledge", segregationCmd.Flags().Lookup("pledge"))
	viper.BindPFlag("extra-records", segregationCmd.Flags().Lookup("extra-records"))
	viper.BindPFlag("santom", segregationCmd.Flags().Lookup("santom"))
	viper.BindPFlag("master-records", segregationCmd.Flags().Lookup("master-records"))
	viper.BindPFlag("output-dir", segregationCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("archive-db", segregationCmd.Flags().Lookup("archive-db"))
}

func validateSegregationFlags(cmd *cobra.Command, args []string) error {
	// Every required input must exist before the pipeline touches anything
	required := []struct {
		key, description string
	}{
		{"fo-master", "FO CP master file"},
		{"cd-master", "CD CP master file"},
		{"collateral-fno", "FNO cash collateral report"},
		{"collateral-cds", "CDS cash collateral report"},
		{"margin-fno", "NSEFNO daily margin report"},
		{"margin-cds", "NSECR daily margin report"},
		{"valuation-fno", "FNO collateral valuation report"},
		{"valuation-cds", "CDS collateral valuation report"},
	}
	for _, r := range required {
		if err := validateFileExists(viper.GetString(r.key), r.description); err != nil {
			return err
		}
	}

	// Optional inputs are only checked when supplied
	optional := []struct {
		key, description string
	}{
		{"pledge", "G-Sec pledge workbook"},
		{"extra-records", "extra records file"},
		{"santom", "SANTOM file"},
		{"master-records", "master records JSON"},
	}
	for _, o := range optional {
		if path := viper.GetString(o.key); path != "" {
			if err := validateFileExists(path, o.description); err != nil {
				return err
			}
		}
	}

	// Let the pipeline validate the date format and the remaining settings
	return config.BuildPipelineConfig().Validate()
}

func validateFileExists(filePath, description string) error {
	if filePath == "" {
		return fmt.Errorf("%s path cannot be empty", description)
	}

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist: %s", description, filePath)
	}
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", description, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file: %s", description, filePath)
	}

	// Check if file is readable
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("%s is not readable: %w", description, err)
	}
	file.Close()

	return nil
}

func runSegregation(cmd *cobra.Command, args []string) error {
	pipelineConfig := config.BuildPipelineConfig()

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Starting segregation report run...\n")
		fmt.Fprintf(os.Stderr, "Report date: %s\n", pipelineConfig.Date)
		fmt.Fprintf(os.Stderr, "Clearing member PAN: %s\n", pipelineConfig.CPPAN)
		fmt.Fprintf(os.Stderr, "Output directory: %s\n", pipelineConfig.OutputDir)
		if pipelineConfig.ArchiveDB != "" {
			fmt.Fprintf(os.Stderr, "Archive database: %s\n", pipelineConfig.ArchiveDB)
		}
	}

	pipeline, err := segregation.NewPipeline(pipelineConfig)
	if err != nil {
		return err
	}

	result, err := pipeline.Run()
	if err != nil {
		return err
	}

	fmt.Printf("Report written: %s (%d rows)\n", result.OutputFile, result.Rows)
	if result.BundleFile != "" {
		fmt.Printf("Archive bundle: %s\n", filepath.Base(result.BundleFile))
	}

	return nil
}
