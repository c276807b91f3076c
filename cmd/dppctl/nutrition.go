package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/dpp/internal/nutrition"
)

type nutritionOutput struct {
	Glycerine     float64 `json:"glycerine" yaml:"glycerine"`
	EnergyKcal    float64 `json:"energy_kcal" yaml:"energy_kcal"`
	EnergyKj      float64 `json:"energy_kj" yaml:"energy_kj"`
	Carbohydrates float64 `json:"carbohydrates" yaml:"carbohydrates"`
	Sugar         float64 `json:"sugar" yaml:"sugar"`
}

func newNutritionCmd() *cobra.Command {
	var (
		in        nutrition.Inputs
		glycerine float64
		output    string
	)

	cmd := &cobra.Command{
		Use:   "nutrition",
		Short: "Calculate the nutrition declaration of a wine",
		Long: `Derives glycerine, energy, carbohydrates and sugar per 100ml from the
alcohol content, residual sugar and total acidity of a wine.

Example:
  dppctl nutrition --alcohol 13 --sugar 5 --acidity 6
  dppctl nutrition --alcohol 13 --glycerine 8.5 --manual-glycerine -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("glycerine") {
				in.Glycerine = &glycerine
			}
			if err := nutrition.Validate(in); err != nil {
				return err
			}

			res := nutrition.CalculateWineNutrition(in)
			return writeNutrition(cmd.OutOrStdout(), output, nutritionOutput{
				Glycerine:     res.Glycerine,
				EnergyKcal:    res.EnergyKcal,
				EnergyKj:      res.EnergyKj,
				Carbohydrates: res.Carbohydrates,
				Sugar:         res.Sugar,
			})
		},
	}

	cmd.Flags().Float64Var(&in.AlcoholPercent, "alcohol", 0, "alcohol content in % vol")
	cmd.Flags().Float64Var(&in.ResidualSugar, "sugar", 0, "residual sugar in g/L")
	cmd.Flags().Float64Var(&in.TotalAcidity, "acidity", 0, "total acidity in g/L as tartaric acid")
	cmd.Flags().Float64Var(&glycerine, "glycerine", 0, "measured glycerine in g/L")
	cmd.Flags().BoolVar(&in.UseManualGlycerine, "manual-glycerine", false, "use --glycerine instead of the estimate")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")

	return cmd
}

func writeNutrition(w io.Writer, format string, out nutritionOutput) error {
	switch format {
	case "text", "":
		_, err := fmt.Fprintf(w,
			"Glycerine:      %.1f g/L\nEnergy:         %.0f kJ / %.0f kcal\nCarbohydrates:  %.1f g\n  of which sugar %.1f g\n",
			out.Glycerine, out.EnergyKj, out.EnergyKcal, out.Carbohydrates, out.Sugar)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
