package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/carbon"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/engine"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/export"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/logging"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/report"
)

// reportGenerateParams holds the flags of "report generate".
type reportGenerateParams struct {
	activitiesPath string
	factorsPath    string
	defaultsPath   string
	from           string
	to             string
	format         string
	outDir         string
	owner          string
	institution    string
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate and export emission reports",
	}
	cmd.AddCommand(newReportGenerateCmd(opts))
	return cmd
}

func newReportGenerateCmd(opts *rootOptions) *cobra.Command {
	var params reportGenerateParams

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Aggregate activity records and export a report artifact",
		Long: `Generate an emission report from an activity-record file.

Records are recomputed against the resolved emission factors, aggregated
over the reporting period and exported in the chosen format.`,
		Example: reportGenerateExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeReportGenerate(cmd, opts, params)
		},
	}

	cmd.Flags().StringVar(&params.activitiesPath, "activities", "", "Path to activity-record JSON file (required)")
	cmd.Flags().StringVar(&params.factorsPath, "factors", "", "Path to emission-factor YAML file")
	cmd.Flags().StringVar(&params.defaultsPath, "defaults", "", "Path to default-factor table YAML file")
	cmd.Flags().StringVar(&params.from, "from", "", "Period start date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&params.to, "to", "", "Period end date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&params.format, "format", "", "Export format: json, csv, excel, or pdf")
	cmd.Flags().StringVar(&params.outDir, "out", "", "Artifact output directory")
	cmd.Flags().StringVar(&params.owner, "owner", "", "Restrict to one owner (UUID)")
	cmd.Flags().StringVar(&params.institution, "institution", "", "Restrict to one institution (UUID)")
	_ = cmd.MarkFlagRequired("activities")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

const reportGenerateExample = `  # JSON report for January 2024
  carbonnet report generate --activities activities.json --from 2024-01-01 --to 2024-01-31

  # PDF report with institution-scoped factors
  carbonnet report generate --activities activities.json --factors factors.yaml \
    --institution 6f1f9a0e-3bb0-4aa5-9c40-93203e9f4f35 --format pdf

  # Custom default-factor table
  carbonnet report generate --activities activities.json --defaults defaults.yaml --format csv`

func executeReportGenerate(cmd *cobra.Command, opts *rootOptions, params reportGenerateParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	period, err := parsePeriod(params.from, params.to)
	if err != nil {
		return err
	}

	format := params.format
	if format == "" {
		format = opts.cfg.Export.DefaultFormat
	}
	outDir := params.outDir
	if outDir == "" {
		outDir = opts.cfg.Export.OutputDir
	}
	defaultsPath := params.defaultsPath
	if defaultsPath == "" {
		defaultsPath = opts.cfg.FactorTablePath
	}

	ownerID, err := parseOptionalUUID("owner", params.owner)
	if err != nil {
		return err
	}
	institutionID, err := parseOptionalUUID("institution", params.institution)
	if err != nil {
		return err
	}

	records, err := loadActivities(params.activitiesPath)
	if err != nil {
		return err
	}

	resolver, err := buildResolver(params.factorsPath, defaultsPath)
	if err != nil {
		return err
	}

	// Recompute emissions so file-supplied totals are never authoritative.
	calc := carbon.NewCalculator(resolver)
	refs := make([]*carbon.ActivityRecord, len(records))
	for i := range records {
		refs[i] = &records[i]
	}
	batch, err := calc.ComputeBatch(ctx, refs)
	if err != nil {
		return err
	}
	if len(batch.Skipped) > 0 {
		log.Warn().
			Ctx(ctx).
			Str("component", "cli").
			Int("skipped", len(batch.Skipped)).
			Msg("some activity records were skipped as malformed")
	}

	tracker := report.NewMemoryTracker()
	svc := report.NewService(
		sliceActivityStore{records: records},
		report.DirBlobStore{Dir: outDir},
		tracker,
		export.NewExporter(opts.cfg.Brand),
	)

	result, err := svc.Generate(ctx, report.Request{
		OwnerID:       ownerID,
		InstitutionID: institutionID,
		Period:        period,
		Format:        export.Format(format),
	})
	if err != nil {
		return err
	}

	cmd.Printf("report %s: %s\n", result.ID, result.Status)
	cmd.Printf("  artifact: %s/%s (%d bytes)\n", outDir, result.Artifact.FileName, result.Artifact.FileSize)
	cmd.Printf("  total emissions: %.3f kg CO2e over %d activities\n",
		result.Report.TotalEmissions, result.Report.Statistics.TotalActivities)
	return nil
}

func parsePeriod(from, to string) (engine.Period, error) {
	start, err := parseDateFlag("from", from)
	if err != nil {
		return engine.Period{}, err
	}
	end, err := parseDateFlag("to", to)
	if err != nil {
		return engine.Period{}, err
	}
	period := engine.Period{Start: start, End: end}
	return period, period.Validate()
}

func parseOptionalUUID(name, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s UUID %q: %w", name, value, err)
	}
	return &id, nil
}
