package segregation

import (
	"path/filepath"
	"strings"

	"github.com/krishnapatil2/pcm/internal/archive"
	"github.com/krishnapatil2/pcm/internal/lookups"
	"github.com/krishnapatil2/pcm/internal/overrides"
	"github.com/krishnapatil2/pcm/internal/tabular"
	"github.com/krishnapatil2/pcm/pkg/errors"
	"github.com/krishnapatil2/pcm/pkg/logger"
)

// Human labels for the exchange files, used in every error message so the
// operator can tell which attachment is wrong.
const (
	LabelFOMaster      = "F_CPMaster_data"
	LabelCDMaster      = "X_CPMaster_data"
	LabelCollateralFNO = "CashCollateral_FNO"
	LabelCollateralCDS = "CashCollateral_CDS"
	LabelMarginFNO     = "Daily Margin Report NSEFNO"
	LabelMarginCDS     = "Daily Margin Report NSECR"
	LabelValuationFNO  = "Collateral Valuation Report FNO"
	LabelValuationCDS  = "Collateral Valuation Report CDS"
	LabelPledge        = "SEC_PLEDGE"
	LabelExtraRecords  = "Extra_Records_File"
	LabelSantom        = "SANTOM_FILE"
)

// Config holds one report run's inputs. The pledge, extra-record, SANTOM
// and master override files are optional; everything else is required.
type Config struct {
	Date        string // operator-entered, DD/MM/YYYY
	CPPAN       string // clearing member PAN
	CashWithNCL string // raw scalar for the SANTOM "P" branch

	FOMasterFile      string
	CDMasterFile      string
	CollateralFNOFile string
	CollateralCDSFile string
	MarginFNOFile     string
	MarginCDSFile     string
	ValuationFNOFile  string
	ValuationCDSFile  string
	PledgeFile        string
	ExtraRecordsFile  string
	SantomFile        string
	MasterRecordsFile string

	OutputDir string
	ArchiveDB string // empty disables archival
}

// Validate checks that the configuration can drive a run
func (c *Config) Validate() error {
	required := []struct {
		value, name string
	}{
		{c.Date, "date"},
		{c.CPPAN, "cp-pan"},
		{c.FOMasterFile, "fo-master"},
		{c.CDMasterFile, "cd-master"},
		{c.CollateralFNOFile, "collateral-fno"},
		{c.CollateralCDSFile, "collateral-cds"},
		{c.MarginFNOFile, "margin-fno"},
		{c.MarginCDSFile, "margin-cds"},
		{c.ValuationFNOFile, "valuation-fno"},
		{c.ValuationCDSFile, "valuation-cds"},
		{c.OutputDir, "output-dir"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errors.ConfigurationError(errors.CodeMissingConfig, r.name, nil, nil)
		}
	}

	if _, err := ParseRunDate(c.Date); err != nil {
		return errors.ConfigurationError(errors.CodeInvalidConfig, "date", c.Date, err).
			WithSuggestion("use DD/MM/YYYY, e.g. 15/03/2024")
	}
	return nil
}

// Result summarizes a completed run
type Result struct {
	OutputFile string
	Rows       int
	BundleFile string
}

// Pipeline runs the full segregation report generation: lookups, row
// generation, ordering, override passes, output and archival.
type Pipeline struct {
	config   *Config
	log      logger.Logger
	reporter *logger.ErrorReporter
}

// NewPipeline validates the configuration and creates a runnable pipeline
func NewPipeline(config *Config) (*Pipeline, error) {
	if config == nil {
		return nil, errors.ConfigurationError(errors.CodeMissingConfig, "config", nil, nil)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Pipeline{
		config:   config,
		log:      logger.WithComponent("pipeline"),
		reporter: logger.NewErrorReporter(config.OutputDir),
	}, nil
}

// Run executes the pipeline. Failures are appended to error_log.txt in the
// output directory before being returned.
func (p *Pipeline) Run() (*Result, error) {
	runDate, err := ParseRunDate(p.config.Date)
	if err != nil {
		return nil, err
	}
	dateCell := FormatReportDate(runDate)

	p.log.WithFields(logger.Fields{
		"date":   dateCell,
		"cp_pan": p.config.CPPAN,
	}).Info("Starting segregation report run")

	var inputs *GeneratorInputs
	if err := logger.TimedStage("load inputs", p.log, func() error {
		var err error
		inputs, err = p.buildLookups()
		return err
	}); err != nil {
		return nil, err
	}

	store, err := overrides.Load(p.masterRecordsPath())
	if err != nil {
		return nil, p.fail("master_records", err)
	}

	stage := logger.NewStageLogger("generate", p.log)
	rows := NewGenerator(dateCell, p.config.CPPAN, store).Generate(*inputs)

	var extras []*Row
	if p.config.ExtraRecordsFile != "" {
		extras, err = p.loadRows(p.config.ExtraRecordsFile, LabelExtraRecords)
		if err != nil {
			return nil, err
		}
		// Extra records always carry the run's reporting date, whatever
		// their source file says.
		for _, row := range extras {
			row.SetText(ColA, dateCell)
		}
	}

	final := Finalize(rows, extras)
	ApplyAT(final, store)

	if p.config.SantomFile != "" {
		santomRows, err := p.loadRows(p.config.SantomFile, LabelSantom)
		if err != nil {
			return nil, err
		}
		final = MergeSantom(final, santomRows, ParseScalar(p.config.CashWithNCL))
	}
	stage.Counts("Report rows assembled", logger.Fields{
		"generated": len(rows),
		"extras":    len(extras),
		"total":     len(final),
	})
	stage.Success("Generation complete")

	outputFile := filepath.Join(p.config.OutputDir, OutputFileName(p.config.CPPAN, runDate))
	if err := logger.TimedStage("write report", p.log, func() error {
		return WriteReport(outputFile, final)
	}); err != nil {
		return nil, p.fail("output", err)
	}

	result := &Result{OutputFile: outputFile, Rows: len(final)}

	if p.config.ArchiveDB != "" {
		bundle, err := p.archiveRun(outputFile)
		if err != nil {
			// The report itself is on disk; surface the archival failure
			// so the operator can re-run for the audit trail.
			return result, p.fail("archive", err)
		}
		result.BundleFile = bundle
	}

	p.log.WithFields(logger.Fields{
		"output": filepath.Base(outputFile),
		"rows":   result.Rows,
	}).Info("Segregation report run complete")
	return result, nil
}

func (p *Pipeline) masterRecordsPath() string {
	if p.config.MasterRecordsFile != "" {
		return p.config.MasterRecordsFile
	}
	return "master_records.json"
}

// fail records the error against its file label before returning it
func (p *Pipeline) fail(label string, err error) error {
	p.reporter.Report(label, err)
	return err
}

func (p *Pipeline) buildLookups() (*GeneratorInputs, error) {
	foMaster, err := lookups.BuildMaster(p.config.FOMasterFile, LabelFOMaster)
	if err != nil {
		return nil, p.fail(LabelFOMaster, err)
	}
	cdMaster, err := lookups.BuildMaster(p.config.CDMasterFile, LabelCDMaster)
	if err != nil {
		return nil, p.fail(LabelCDMaster, err)
	}

	foCollateral, err := lookups.BuildCollateral(p.config.CollateralFNOFile, LabelCollateralFNO)
	if err != nil {
		return nil, p.fail(LabelCollateralFNO, err)
	}
	cdCollateral, err := lookups.BuildCollateral(p.config.CollateralCDSFile, LabelCollateralCDS)
	if err != nil {
		return nil, p.fail(LabelCollateralCDS, err)
	}

	foMargin, err := lookups.BuildMargin(p.config.MarginFNOFile, LabelMarginFNO)
	if err != nil {
		return nil, p.fail(LabelMarginFNO, err)
	}
	cdMargin, err := lookups.BuildMargin(p.config.MarginCDSFile, LabelMarginCDS)
	if err != nil {
		return nil, p.fail(LabelMarginCDS, err)
	}

	foValuation, err := lookups.BuildValuation(p.config.ValuationFNOFile, LabelValuationFNO)
	if err != nil {
		return nil, p.fail(LabelValuationFNO, err)
	}
	cdValuation, err := lookups.BuildValuation(p.config.ValuationCDSFile, LabelValuationCDS)
	if err != nil {
		return nil, p.fail(LabelValuationCDS, err)
	}

	inputs := &GeneratorInputs{
		FO: SegmentInputs{
			Master:     foMaster,
			Collateral: foCollateral,
			Margin:     foMargin,
			Valuation:  foValuation,
		},
		CD: SegmentInputs{
			Master:     cdMaster,
			Collateral: cdCollateral,
			Margin:     cdMargin,
			Valuation:  cdValuation,
		},
	}

	if p.config.PledgeFile != "" {
		pledgeLookup, err := lookups.BuildPledge(p.config.PledgeFile, LabelPledge)
		if err != nil {
			return nil, p.fail(LabelPledge, err)
		}
		inputs.Pledge = pledgeLookup
	}

	return inputs, nil
}

// loadRows reads a registry-layout file (extra records, SANTOM) into rows
func (p *Pipeline) loadRows(path, label string) ([]*Row, error) {
	table, err := tabular.Read(path, tabular.Options{Label: label})
	if err != nil {
		return nil, p.fail(label, err)
	}

	rows := make([]*Row, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		rows = append(rows, FromRecord(table.Record(i)))
	}
	return rows, nil
}

func (p *Pipeline) archiveRun(outputFile string) (string, error) {
	store := archive.NewStore(p.config.ArchiveDB)

	files := []archive.NamedFile{
		{Path: p.config.FOMasterFile, Arcname: "F_CPMaster_data" + filepath.Ext(p.config.FOMasterFile)},
		{Path: p.config.CDMasterFile, Arcname: "X_CPMaster_data" + filepath.Ext(p.config.CDMasterFile)},
		{Path: p.config.CollateralFNOFile, Arcname: "CashCollateral_FNO" + filepath.Ext(p.config.CollateralFNOFile)},
		{Path: p.config.CollateralCDSFile, Arcname: "CashCollateral_CDS" + filepath.Ext(p.config.CollateralCDSFile)},
		{Path: p.config.MarginFNOFile, Arcname: "Daily_Margin_Report_NSEFNO" + filepath.Ext(p.config.MarginFNOFile)},
		{Path: p.config.MarginCDSFile, Arcname: "Daily_Margin_Report_NSECR" + filepath.Ext(p.config.MarginCDSFile)},
		{Path: p.config.ValuationFNOFile, Arcname: "Collateral_Valuation_Report_FNO" + filepath.Ext(p.config.ValuationFNOFile)},
		{Path: p.config.ValuationCDSFile, Arcname: "Collateral_Valuation_Report_CDS" + filepath.Ext(p.config.ValuationCDSFile)},
	}
	for _, optional := range []struct{ path, name string }{
		{p.config.PledgeFile, "SEC_PLEDGE"},
		{p.config.ExtraRecordsFile, "Extra_Records"},
		{p.config.SantomFile, "SANTOM"},
	} {
		if optional.path != "" {
			files = append(files, archive.NamedFile{
				Path:    optional.path,
				Arcname: optional.name + filepath.Ext(optional.path),
			})
		}
	}
	files = append(files, archive.NamedFile{Path: outputFile})

	return store.SaveBundle(archive.ReportTypeSegregation, files, p.config.OutputDir)
}
