package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trogers1052/portfolio-analytics/internal/portfolio"
)

var removeCmd = &cobra.Command{
	Use:     "remove SYMBOL",
	Aliases: []string{"rm"},
	Short:   "Remove every holding of a stock",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	symbol := portfolio.NormalizeSymbol(args[0])
	removed, err := a.engine.RemoveHolding(ctx, symbol)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if removed == 0 {
		fmt.Fprintf(out, "No holdings of %s in the portfolio.\n", symbol)
		return nil
	}

	if p := a.publisher(); p != nil {
		if err := p.PublishHoldingRemoved(ctx, symbol, removed); err != nil {
			a.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to publish holding removed event")
		}
	}

	fmt.Fprintf(out, "Removed all shares of %s from the portfolio.\n", symbol)
	return nil
}
