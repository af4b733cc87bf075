package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fieldquote/internal/engine"
	"fieldquote/internal/money"
)

var (
	pvAnnualKWh  float64
	pvAnnualCost float64
	pvKW         float64
	pvDiscount   float64
	pvHeatPump   bool
)

var pvCmd = &cobra.Command{
	Use:   "pv",
	Short: "Size and price a PV installation",
	Long: `Suggest system sizes from annual consumption and print the economics of
each proposal: price, incentives, energy value and payback.

Examples:
  fieldquote pv --annual-kwh 14000
  fieldquote pv --annual-cost 3000
  fieldquote pv --kw 16 --discount 5 --heat-pump`,
	RunE: runPV,
}

func init() {
	pvCmd.Flags().Float64Var(&pvAnnualKWh, "annual-kwh", 0, "annual household consumption in kWh")
	pvCmd.Flags().Float64Var(&pvAnnualCost, "annual-cost", 0, "annual electricity bill in CHF (used when consumption is unknown)")
	pvCmd.Flags().Float64Var(&pvKW, "kw", 0, "fixed system size in kWp (skips size suggestion)")
	pvCmd.Flags().Float64Var(&pvDiscount, "discount", 0, "discount percentage")
	pvCmd.Flags().BoolVar(&pvHeatPump, "heat-pump", false, "household has a heat pump")
}

func runPV(cmd *cobra.Command, args []string) error {
	if pvAnnualKWh <= 0 && pvAnnualCost <= 0 && pvKW <= 0 {
		return fmt.Errorf("one of --annual-kwh, --annual-cost or --kw is required")
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	annualKWh := pvAnnualKWh
	if annualKWh <= 0 {
		annualKWh = engine.AnnualKWhFromCost(pvAnnualCost, cat.EnergyPrices.BuyCHFPerKWh)
	}

	sizes := []float64{pvKW}
	if pvKW <= 0 {
		sizes = engine.SuggestSizes(annualKWh, cat.PVSizesKW)
		if len(sizes) == 0 {
			return fmt.Errorf("the catalog has no configured system sizes")
		}
	}

	out := cmd.OutOrStdout()
	for i, kw := range sizes {
		if i > 0 {
			fmt.Fprintln(out)
		}
		eco := engine.Economics(engine.EconomicsInput{
			KW:                kw,
			UnitPriceCHFPerKW: engine.SystemUnitPrice(kw, &cat),
			DiscountPct:       pvDiscount,
			VATPercent:        cat.VATPercent,
			Incentives:        cat.Incentives,
			HeatPump:          pvHeatPump,
			EnergyPrices:      cat.EnergyPrices,
			SelfConsumption:   cat.SelfConsumption,
			Environment:       cat.Environment,
		})

		fmt.Fprintf(out, "System %g kWp @ %s/kWp\n", eco.KW, money.FormatCHF(eco.UnitPriceCHFPerKW))
		fmt.Fprintf(out, "  Subtotal                %12s\n", money.FormatCHF(eco.Subtotal))
		if eco.Discount > 0 {
			fmt.Fprintf(out, "  Discount                %12s\n", "-"+money.FormatCHF(eco.Discount))
		}
		fmt.Fprintf(out, "  VAT (%g%%)              %12s\n", cat.VATPercent, money.FormatCHF(eco.VAT))
		fmt.Fprintf(out, "  Incentives              %12s\n", "-"+money.FormatCHF(eco.IncentivesTotal))
		fmt.Fprintf(out, "  Net investment          %12s\n", money.FormatCHF(eco.TotalNet))
		fmt.Fprintf(out, "  Production              %10.0f kWh/yr (%.0f%% self-consumed)\n", eco.ProducedKWh, eco.SelfConsumptionPct)
		fmt.Fprintf(out, "  Annual benefit          %12s\n", money.FormatCHF(eco.AnnualBenefit))
		fmt.Fprintf(out, "  CO2 saved               %10.0f kg/yr (~%.0f trees)\n", eco.CO2SavedKg, eco.EquivalentTrees)
		if eco.PaybackYears != nil {
			fmt.Fprintf(out, "  Payback                 %10.1f years\n", *eco.PaybackYears)
		}
	}
	return nil
}
