// Package report renders a portfolio snapshot as Markdown for the terminal.
package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"

	"github.com/trogers1052/portfolio-analytics/internal/models"
	"github.com/trogers1052/portfolio-analytics/internal/portfolio"
)

// Snapshot is everything the report shows, gathered in one pass
type Snapshot struct {
	Holdings    []*models.Holding
	Summary     models.ValuationSummary
	Lookback    time.Duration
	Trends      []portfolio.Series
	Risk        []models.RiskEntry
	Advisory    models.Advisory
	HasAdvisory bool
}

// Collect gathers a snapshot from the engine. Trends are fetched for each
// distinct symbol; unavailable trends come back empty.
func Collect(ctx context.Context, engine *portfolio.Engine) (*Snapshot, error) {
	summary, err := engine.GetValuationSummary(ctx)
	if err != nil {
		return nil, err
	}
	holdings, err := engine.ListHoldings(ctx)
	if err != nil {
		return nil, err
	}

	s := &Snapshot{
		Holdings: holdings,
		Summary:  summary,
		Lookback: engine.Lookback(),
	}
	if len(holdings) == 0 {
		return s, nil
	}

	for _, symbol := range summary.Symbols {
		s.Trends = append(s.Trends, engine.GetTrend(ctx, symbol))
	}
	if s.Risk, err = engine.GetRiskReport(ctx); err != nil {
		return nil, err
	}
	if s.Advisory, s.HasAdvisory, err = engine.GetRecommendation(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Markdown renders the snapshot
func Markdown(s *Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Report")
	doc.H2("Current Portfolio")
	if len(s.Holdings) == 0 {
		doc.PlainText("Your portfolio is empty. Please add some stocks.")
		return doc.String()
	}

	holdings := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Quantity", "Price", "Total Value", "Added"},
	}
	for _, h := range s.Holdings {
		holdings.Rows = append(holdings.Rows, []string{
			escapeCell(h.Symbol),
			fmt.Sprintf("%d", h.Quantity),
			FormatUSD(h.PriceAtAdd),
			FormatUSD(h.TotalValue()),
			h.AddedAt.Format("2006-01-02 15:04"),
		})
	}
	doc.Table(holdings)

	doc.PlainTextf("%s %s  ", md.Bold("Total Investment:"), FormatUSD(s.Summary.TotalValue))
	doc.PlainTextf("%s %d", md.Bold("Total Stocks Held:"), s.Summary.TotalQuantity)

	doc.H2("Portfolio Distribution")
	distribution := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Symbol", "Value", "Share"},
	}
	for _, symbol := range s.Summary.Symbols {
		amount := s.Summary.Allocation[symbol]
		distribution.Rows = append(distribution.Rows, []string{
			escapeCell(symbol),
			FormatUSD(amount),
			percentOf(amount, s.Summary.TotalValue),
		})
	}
	doc.Table(distribution)

	doc.H2f("Price Trends (last %s)", formatLookback(s.Lookback))
	trends := make([]string, 0, len(s.Trends))
	for _, series := range s.Trends {
		trends = append(trends, TrendLine(series))
	}
	doc.BulletList(trends...)

	if s.HasAdvisory {
		doc.H2("Recommendation")
		doc.Blockquote(s.Advisory.Message)
	}

	doc.H2("Risk Assessment")
	if len(s.Risk) == 0 {
		doc.PlainText("Not enough price history to assess risk.")
		return doc.String()
	}
	risks := make([]string, 0, len(s.Risk))
	for _, entry := range s.Risk {
		risks = append(risks, RiskLine(entry))
	}
	doc.BulletList(risks...)

	return doc.String()
}

// Render formats Markdown for a terminal of the given width
func Render(markdown string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return out, nil
}

// TrendLine summarizes a series, e.g. "AAPL: 21 closes, $190.00 -> $192.50 (+1.32%)"
func TrendLine(s portfolio.Series) string {
	if s.Empty() {
		return fmt.Sprintf("Could not fetch data for %s.", s.Symbol)
	}

	points := s.Points()
	first, last := points[0], points[len(points)-1]
	if !first.Close.IsPositive() {
		return fmt.Sprintf("%s: %d closes, latest %s", s.Symbol, len(points), FormatUSD(last.Close))
	}
	change := last.Close.Sub(first.Close).Div(first.Close).Mul(decimal.NewFromInt(100))
	sign := ""
	if !change.IsNegative() {
		sign = "+"
	}
	return fmt.Sprintf("%s: %d closes from %s to %s, %s -> %s (%s%s%%)",
		s.Symbol, len(points),
		first.Date.Format("Jan 02"), last.Date.Format("Jan 02"),
		FormatUSD(first.Close), FormatUSD(last.Close),
		sign, change.StringFixed(2))
}

// RiskLine formats one risk entry, e.g. "AAPL: Volatility - 0.03, Risk Level - Low"
func RiskLine(e models.RiskEntry) string {
	return fmt.Sprintf("%s: Volatility - %.2f, Risk Level - %s", e.Symbol, e.Volatility, e.RiskLevel)
}

// FormatUSD formats an amount as US dollars, e.g. $1,500.00
func FormatUSD(amount decimal.Decimal) string {
	cents := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

func percentOf(part, total decimal.Decimal) string {
	if total.IsZero() {
		return "0.0%"
	}
	return part.Div(total).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

// formatLookback prints whole-day lookbacks in days
func formatLookback(d time.Duration) string {
	if d%(24*time.Hour) == 0 {
		return fmt.Sprintf("%d days", d/(24*time.Hour))
	}
	return d.String()
}

// escapeCell keeps a pipe inside a value from splitting the table column
func escapeCell(v string) string {
	return strings.ReplaceAll(v, "|", `\|`)
}
