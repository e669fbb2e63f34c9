package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/trogers1052/portfolio-analytics/internal/report"
)

var addCmd = &cobra.Command{
	Use:   "add SYMBOL QUANTITY",
	Short: "Add shares of a stock at its current price",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	quantity, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("quantity must be a whole number, got %q", args[1])
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	holding, err := a.engine.AddHolding(ctx, args[0], quantity)
	if err != nil {
		return err
	}

	if p := a.publisher(); p != nil {
		if err := p.PublishHoldingAdded(ctx, holding); err != nil {
			a.log.Warn().Err(err).Str("symbol", holding.Symbol).Msg("Failed to publish holding added event")
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Added %d shares of %s at %s per share.\n",
		holding.Quantity, holding.Symbol, report.FormatUSD(holding.PriceAtAdd))
	if !a.persistent() {
		fmt.Fprintln(out, "Note: DB_ENABLED is off, so this holding is not kept after exit.")
	}
	return nil
}
