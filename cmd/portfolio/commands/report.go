package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trogers1052/portfolio-analytics/internal/chart"
	"github.com/trogers1052/portfolio-analytics/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print valuation, allocation, trends, risk and a recommendation",
	Long: `Print a full portfolio report.

Holdings passed with --add are added for this run before the report is
built, which makes the command useful without a database:

  portfolio report --add AAPL=10 --add GOOGL=5 --charts ./charts`,
	RunE: runReport,
}

var (
	reportAdds   []string
	reportRaw    bool
	reportWidth  int
	reportCharts string
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringArrayVar(&reportAdds, "add", nil, "add SYMBOL=QUANTITY before reporting (repeatable)")
	reportCmd.Flags().BoolVar(&reportRaw, "raw", false, "print plain Markdown instead of styled terminal output")
	reportCmd.Flags().IntVar(&reportWidth, "width", 100, "word wrap width for styled output")
	reportCmd.Flags().StringVar(&reportCharts, "charts", "", "directory to write allocation and trend PNG charts to")
}

func runReport(cmd *cobra.Command, args []string) error {
	seeds, err := parseSeeds(reportAdds)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, s := range seeds {
		if _, err := a.engine.AddHolding(ctx, s.symbol, s.quantity); err != nil {
			return fmt.Errorf("add %s: %w", s.symbol, err)
		}
	}

	snap, err := report.Collect(ctx, a.engine)
	if err != nil {
		return err
	}

	out := report.Markdown(snap)
	if !reportRaw {
		if out, err = report.Render(out, reportWidth); err != nil {
			return err
		}
	}
	fmt.Fprint(cmd.OutOrStdout(), out)

	if reportCharts != "" {
		return writeCharts(cmd, reportCharts, snap)
	}
	return nil
}

type seed struct {
	symbol   string
	quantity int64
}

// parseSeeds parses SYMBOL=QUANTITY pairs
func parseSeeds(values []string) ([]seed, error) {
	seeds := make([]seed, 0, len(values))
	for _, v := range values {
		symbol, qty, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --add %q, expected SYMBOL=QUANTITY", v)
		}
		quantity, err := strconv.ParseInt(strings.TrimSpace(qty), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in --add %q", v)
		}
		seeds = append(seeds, seed{symbol: symbol, quantity: quantity})
	}
	return seeds, nil
}

func writeCharts(cmd *cobra.Command, dir string, snap *report.Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}

	write := func(name string, png []byte) error {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	}

	png, err := skipSparse(chart.RenderAllocationChart(snap.Summary))
	if err != nil {
		return fmt.Errorf("render allocation chart: %w", err)
	}
	if png != nil {
		if err := write("allocation.png", png); err != nil {
			return err
		}
	}

	for _, series := range snap.Trends {
		png, err := skipSparse(chart.RenderTrendChart(series.Symbol, series.Points()))
		if err != nil {
			return fmt.Errorf("render %s trend chart: %w", series.Symbol, err)
		}
		if png == nil {
			continue
		}
		if err := write(strings.ToLower(series.Symbol)+"-trend.png", png); err != nil {
			return err
		}
	}
	return nil
}

// skipSparse drops charts without enough data to draw; any other render
// failure is passed through
func skipSparse(png []byte, err error) ([]byte, error) {
	if errors.Is(err, chart.ErrNotEnoughData) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return png, nil
}
