// Package quotes provides market data sources for the portfolio engine
package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/trogers1052/portfolio-analytics/internal/models"
)

const (
	DefaultBaseURL   = "https://eodhd.com/api"
	DefaultExchange  = "US"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// ErrNoData is returned when a provider responds without usable prices
var ErrNoData = errors.New("no price data")

// APIError represents a non-200 response from EODHD
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("EODHD API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// EODHDClient fetches latest and daily prices from eodhd.com
type EODHDClient struct {
	baseURL    string
	apiKey     string
	exchange   string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger
	now        func() time.Time
}

// ClientOption configures the client
type ClientOption func(*EODHDClient)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *EODHDClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithExchange sets the exchange suffix appended to bare tickers
func WithExchange(exchange string) ClientOption {
	return func(c *EODHDClient) {
		c.exchange = exchange
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *EODHDClient) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *EODHDClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *EODHDClient) {
		c.log = log
	}
}

// WithClock sets the clock used to compute history windows
func WithClock(now func() time.Time) ClientOption {
	return func(c *EODHDClient) {
		c.now = now
	}
}

// NewEODHDClient creates a new EODHD client
func NewEODHDClient(apiKey string, opts ...ClientOption) *EODHDClient {
	c := &EODHDClient{
		baseURL:  DefaultBaseURL,
		apiKey:   apiKey,
		exchange: DefaultExchange,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		log:     zerolog.Nop(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ticker maps a portfolio symbol to an EODHD ticker, e.g. AAPL -> AAPL.US
func (c *EODHDClient) ticker(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if c.exchange == "" || strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + "." + c.exchange
}

// get performs a rate-limited GET request
func (c *EODHDClient) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.log.Debug().Str("url", c.baseURL+path).Msg("EODHD API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// realTimeResponse is the payload of /real-time/{ticker}
type realTimeResponse struct {
	Code      string      `json:"code"`
	Timestamp int64       `json:"timestamp"`
	Close     flexDecimal `json:"close"`
}

// eodBarResponse is one element of /eod/{ticker}
type eodBarResponse struct {
	Date          string      `json:"date"`
	Close         flexDecimal `json:"close"`
	AdjustedClose flexDecimal `json:"adjusted_close"`
}

// LatestClose returns the most recent close for symbol
func (c *EODHDClient) LatestClose(ctx context.Context, symbol string) (decimal.Decimal, error) {
	ticker := c.ticker(symbol)

	var resp realTimeResponse
	if err := c.get(ctx, "/real-time/"+url.PathEscape(ticker), nil, &resp); err != nil {
		return decimal.Zero, err
	}

	price := decimal.Decimal(resp.Close)
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w for %s", ErrNoData, ticker)
	}
	return price, nil
}

// History returns daily closes for symbol over the trailing lookback window,
// oldest first. Split and dividend adjusted closes are preferred.
func (c *EODHDClient) History(ctx context.Context, symbol string, lookback time.Duration) ([]models.PricePoint, error) {
	ticker := c.ticker(symbol)
	to := c.now().UTC()
	from := to.Add(-lookback)

	params := url.Values{}
	params.Set("period", "d")
	params.Set("order", "a")
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))

	var bars []eodBarResponse
	if err := c.get(ctx, "/eod/"+url.PathEscape(ticker), params, &bars); err != nil {
		return nil, err
	}

	points := make([]models.PricePoint, 0, len(bars))
	for _, bar := range bars {
		date, err := time.Parse("2006-01-02", bar.Date)
		if err != nil {
			c.log.Debug().Str("ticker", ticker).Str("date", bar.Date).Msg("Skipping bar with invalid date")
			continue
		}
		closePrice := decimal.Decimal(bar.AdjustedClose)
		if !closePrice.IsPositive() {
			closePrice = decimal.Decimal(bar.Close)
		}
		if !closePrice.IsPositive() {
			continue
		}
		points = append(points, models.PricePoint{Date: date, Close: closePrice})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoData, ticker)
	}
	return points, nil
}

// flexDecimal handles JSON values that may be a number, a numeric string or "NA".
type flexDecimal decimal.Decimal

func (f *flexDecimal) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" || strings.EqualFold(s, "NA") || strings.EqualFold(s, "N/A") {
		*f = flexDecimal(decimal.Zero)
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("cannot unmarshal %s into decimal: %w", string(data), err)
	}
	*f = flexDecimal(d)
	return nil
}
