package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fieldquote/internal/engine"
	"fieldquote/internal/money"
)

// quoteFile is the on-disk request format: the interview answers for a
// service job, plus dispatch and discount.
type quoteFile struct {
	Items       []engine.Request    `json:"items"`
	Travel      *engine.TravelInput `json:"travel"`
	DiscountPct float64             `json:"discountPct"`
}

var quoteCmd = &cobra.Command{
	Use:   "quote <request.json>",
	Short: "Price a service request file",
	Long: `Price the work items in a request file against the tariff catalog and
print the full offer breakdown.

The file carries the interview answers per item, for example:

  {
    "items": [
      {"category": "lighting",
       "answers": {"kind": "wall", "environment": "outdoor", "style": "modern"},
       "qty": 2}
    ],
    "travel": {"mode": "metered", "roundTripMinutes": 50},
    "discountPct": 5
  }`,
	Args: cobra.ExactArgs(1),
	RunE: runQuote,
}

func runQuote(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read request file: %w", err)
	}
	var req quoteFile
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parse request file: %w", err)
	}

	items := make([]engine.LineItem, 0, len(req.Items))
	for i, itemReq := range req.Items {
		item, ok := engine.PriceLineItem(&cat, itemReq)
		if !ok {
			return fmt.Errorf("item %d (%s) is incomplete or its category is unknown", i, itemReq.Category)
		}
		items = append(items, item)
	}

	travel := engine.TravelInput{Mode: engine.BillingMetered}
	if req.Travel != nil {
		travel = *req.Travel
		if travel.Mode == "" {
			travel.Mode = engine.BillingMetered
		}
	}
	travelQuote := engine.PriceTravel(travel, &cat)

	totals := engine.Aggregate(engine.AggregateInput{
		Items:       items,
		Travel:      travelQuote,
		DiscountPct: req.DiscountPct,
		VATPercent:  cat.VATPercent,
	})

	out := cmd.OutOrStdout()
	for _, item := range items {
		fmt.Fprintf(out, "%-50s %4g x %10s  %12s\n",
			item.Description, item.Qty, money.FormatCHF(item.NetPerUnit), money.FormatCHF(item.Subtotal))
	}
	if travelQuote.TravelCHF > 0 {
		fmt.Fprintf(out, "%-68s %12s\n", "Travel", money.FormatCHF(travelQuote.TravelCHF))
	}
	if travelQuote.CalloutCHF > 0 {
		fmt.Fprintf(out, "%-68s %12s\n", "Call-out fee", money.FormatCHF(travelQuote.CalloutCHF))
	}
	fmt.Fprintf(out, "%-68s %12s\n", "Subtotal", money.FormatCHF(totals.Subtotal))
	if totals.Discount > 0 {
		fmt.Fprintf(out, "%-68s %12s\n", fmt.Sprintf("Discount (%g%%)", totals.DiscountPct), "-"+money.FormatCHF(totals.Discount))
	}
	fmt.Fprintf(out, "%-68s %12s\n", fmt.Sprintf("VAT (%g%%)", totals.VATPercent), money.FormatCHF(totals.VAT))
	fmt.Fprintf(out, "%-68s %12s\n", "Total", money.FormatCHF(money.RoundCash(totals.Total)))
	return nil
}
