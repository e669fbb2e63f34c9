package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/trogers1052/portfolio-analytics/internal/models"
	"github.com/trogers1052/portfolio-analytics/internal/portfolio"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill SYMBOL...",
	Short: "Store daily closes from EODHD in the price history table",
	Long: `Fetch daily closes for each symbol from EODHD and upsert them into
price_data_daily. Only closes are available from the history endpoint, so
open, high and low are stored equal to the close. Requires DB_ENABLED=true
and EODHD_API_KEY.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBackfill,
}

var backfillLookback time.Duration

func init() {
	rootCmd.AddCommand(backfillCmd)
	backfillCmd.Flags().DurationVar(&backfillLookback, "lookback", 0, "history window (default TREND_LOOKBACK)")
}

func runBackfill(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.db == nil || a.eodhd == nil {
		return errors.New("backfill requires DB_ENABLED=true and EODHD_API_KEY")
	}

	lookback := backfillLookback
	if lookback <= 0 {
		lookback = a.cfg.Analysis.TrendLookback
	}

	for _, arg := range args {
		symbol := portfolio.NormalizeSymbol(arg)
		points, err := a.eodhd.History(ctx, symbol, lookback)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Could not fetch data for %s.\n", symbol)
			a.log.Warn().Err(err).Str("symbol", symbol).Msg("Backfill fetch failed")
			continue
		}

		if err := a.db.CreatePriceDataBatch(ctx, closeBars(symbol, points)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %d daily closes for %s.\n", len(points), symbol)
	}
	return nil
}

func closeBars(symbol string, points []models.PricePoint) []*models.PriceDataDaily {
	bars := make([]*models.PriceDataDaily, 0, len(points))
	for _, p := range points {
		bars = append(bars, &models.PriceDataDaily{
			Symbol: symbol,
			Date:   p.Date,
			Open:   p.Close,
			High:   p.Close,
			Low:    p.Close,
			Close:  p.Close,
		})
	}
	return bars
}
