package cli

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/carbon"
)

// factorsResolveParams holds the flags of "factors resolve".
type factorsResolveParams struct {
	factorsPath  string
	defaultsPath string
	category     string
	subcategory  string
	institution  string
	date         string
}

func newFactorsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factors",
		Short: "Inspect emission-factor resolution",
	}
	cmd.AddCommand(newFactorsResolveCmd(opts))
	return cmd
}

// newFactorsResolveCmd builds the debugging command that answers "which
// factor would this activity get": it runs the same three-tier
// resolution the calculator uses and prints the outcome with its tier.
func newFactorsResolveCmd(opts *rootOptions) *cobra.Command {
	var params factorsResolveParams

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the effective emission factor for a query",
		Example: `  carbonnet factors resolve --category transportation --subcategory car_petrol --date 2024-06-01
  carbonnet factors resolve --category electricity --subcategory grid --factors factors.yaml \
    --institution 6f1f9a0e-3bb0-4aa5-9c40-93203e9f4f35`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeFactorsResolve(cmd, opts, params)
		},
	}

	cmd.Flags().StringVar(&params.factorsPath, "factors", "", "Path to emission-factor YAML file")
	cmd.Flags().StringVar(&params.defaultsPath, "defaults", "", "Path to default-factor table YAML file")
	cmd.Flags().StringVar(&params.category, "category", "", "Activity category (required)")
	cmd.Flags().StringVar(&params.subcategory, "subcategory", "", "Subcategory key, e.g. car_petrol")
	cmd.Flags().StringVar(&params.institution, "institution", "", "Institution scope (UUID)")
	cmd.Flags().StringVar(&params.date, "date", "", "As-of date, YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func executeFactorsResolve(cmd *cobra.Command, opts *rootOptions, params factorsResolveParams) error {
	ctx := cmd.Context()

	asOf := time.Now().UTC()
	if params.date != "" {
		parsed, err := parseDateFlag("date", params.date)
		if err != nil {
			return err
		}
		asOf = parsed
	}

	institutionID, err := parseOptionalUUID("institution", params.institution)
	if err != nil {
		return err
	}

	defaultsPath := params.defaultsPath
	if defaultsPath == "" {
		defaultsPath = opts.cfg.FactorTablePath
	}
	resolver, err := buildResolver(params.factorsPath, defaultsPath)
	if err != nil {
		return err
	}

	res, err := resolver.Resolve(ctx, carbon.Category(params.category), params.subcategory, institutionID, asOf)
	if err != nil {
		return err
	}

	out := struct {
		Category    string  `json:"category"`
		Subcategory string  `json:"subcategory,omitempty"`
		Value       float64 `json:"factorValue"`
		Unit        string  `json:"unit,omitempty"`
		SourceID    string  `json:"sourceId,omitempty"`
		Version     string  `json:"version,omitempty"`
		Tier        string  `json:"tier"`
	}{
		Category:    params.category,
		Subcategory: params.subcategory,
		Value:       res.Value,
		Unit:        res.Unit,
		SourceID:    res.SourceID,
		Version:     res.Version,
		Tier:        string(res.Tier),
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(encoded))
	return nil
}
