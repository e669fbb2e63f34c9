package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trogers1052/portfolio-analytics/internal/chart"
	"github.com/trogers1052/portfolio-analytics/internal/models"
	"github.com/trogers1052/portfolio-analytics/internal/portfolio"
	"github.com/trogers1052/portfolio-analytics/internal/report"
)

func TestParseSeeds(t *testing.T) {
	seeds, err := parseSeeds([]string{"AAPL=10", "googl= 5"})
	require.NoError(t, err)
	assert.Equal(t, []seed{{"AAPL", 10}, {"googl", 5}}, seeds)

	_, err = parseSeeds([]string{"AAPL"})
	assert.Error(t, err)

	_, err = parseSeeds([]string{"AAPL=ten"})
	assert.Error(t, err)
}

func TestCloseBars(t *testing.T) {
	day := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	bars := closeBars("AAPL", []models.PricePoint{{Date: day, Close: decimal.NewFromInt(190)}})

	require.Len(t, bars, 1)
	assert.Equal(t, "AAPL", bars[0].Symbol)
	assert.Equal(t, day, bars[0].Date)
	assert.True(t, bars[0].High.Equal(bars[0].Close))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "add", "remove", "report", "ingest", "backfill", "migrate"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestAddRejectsNonNumericQuantity(t *testing.T) {
	err := runAdd(addCmd, []string{"AAPL", "ten"})
	assert.ErrorContains(t, err, "whole number")
}

func TestSkipSparse(t *testing.T) {
	png, err := skipSparse(nil, chart.ErrNotEnoughData)
	assert.NoError(t, err)
	assert.Nil(t, png)

	renderErr := errors.New("font failure")
	_, err = skipSparse(nil, renderErr)
	assert.ErrorIs(t, err, renderErr)

	png, err = skipSparse([]byte{1, 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, png)
}

func TestWriteCharts(t *testing.T) {
	holdings := []*models.Holding{
		{Symbol: "AAPL", Quantity: 10, PriceAtAdd: decimal.NewFromInt(150)},
		{Symbol: "GOOGL", Quantity: 5, PriceAtAdd: decimal.NewFromInt(100)},
	}
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	snap := &report.Snapshot{
		Holdings: holdings,
		Summary:  portfolio.Summarize(holdings),
		Trends: []portfolio.Series{
			portfolio.NewSeries("AAPL", []models.PricePoint{
				{Date: day, Close: decimal.NewFromInt(150)},
				{Date: day.AddDate(0, 0, 1), Close: decimal.NewFromInt(152)},
			}),
			{Symbol: "GOOGL"},
		},
	}

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	dir := t.TempDir()

	require.NoError(t, writeCharts(cmd, dir, snap))

	assert.FileExists(t, filepath.Join(dir, "allocation.png"))
	assert.FileExists(t, filepath.Join(dir, "aapl-trend.png"))
	_, err := os.Stat(filepath.Join(dir, "googl-trend.png"))
	assert.True(t, os.IsNotExist(err), "an empty trend is skipped")
	assert.Contains(t, out.String(), "allocation.png")
}
