package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Agrid-Dev/solarthermal/internal/report"
	"github.com/Agrid-Dev/solarthermal/internal/sizing"
)

type calcOptions struct {
	apartments string
	bedrooms   string
	roofArea   string
	gasCost    string
	lang       string
	format     string
}

type calcOutput struct {
	Input  sizing.Input  `json:"input" yaml:"input"`
	Result sizing.Result `json:"result" yaml:"result"`
	Report report.Report `json:"report" yaml:"report"`
}

func calcCmd() *cobra.Command {
	var o calcOptions

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Size one building and print the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd.OutOrStdout(), o)
		},
	}

	// Inputs are taken as text so malformed numbers are reported, not coerced.
	cmd.Flags().StringVar(&o.apartments, "apartments", "", "number of apartments (1-500)")
	cmd.Flags().StringVar(&o.bedrooms, "bedrooms", "", "average bedrooms per apartment (0.5-10)")
	cmd.Flags().StringVar(&o.roofArea, "roof-area", "", "usable south-facing roof area in sq ft (32-20000)")
	cmd.Flags().StringVar(&o.gasCost, "gas-cost", "", "gas cost per therm in $ (0.1-10)")
	cmd.Flags().StringVar(&o.lang, "lang", "en-US", "locale used to format numbers")
	cmd.Flags().StringVarP(&o.format, "format", "o", "text", "output format: text, json or yaml")
	for _, name := range []string{"apartments", "bedrooms", "roof-area", "gas-cost"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func runCalc(w io.Writer, o calcOptions) error {
	in, err := sizing.ParseInput(map[string]string{
		sizing.FieldApartmentCount.String():          o.apartments,
		sizing.FieldAvgBedroomsPerApartment.String(): o.bedrooms,
		sizing.FieldUsableRoofAreaSqFt.String():      o.roofArea,
		sizing.FieldGasCostPerTherm.String():         o.gasCost,
	})
	if err != nil {
		return err
	}
	if err := sizing.DefaultBounds().Validate(in); err != nil {
		return err
	}

	res := sizing.Compute(in)
	rep := report.Render(res, report.ParseLocale(o.lang))

	switch o.format {
	case "text":
		return report.WriteText(w, rep)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(calcOutput{Input: in, Result: res, Report: rep})
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(calcOutput{Input: in, Result: res, Report: rep}); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", o.format)
	}
}
