package yahoo

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

	"github.com/epeers/folio/internal/ticker"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// The chart API returns JSON and needs no key. It is unofficial, so requests
// mimic a browser.
const defaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// ProviderName identifies quotes sourced from Yahoo Finance
const ProviderName = "yahoo"

// ErrNoPrice is returned when the chart has no usable market price
var ErrNoPrice = errors.New("yahoo returned no price")

// Client is a Yahoo Finance chart API client
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Yahoo Finance client
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL creates a client against a custom endpoint (for testing)
func NewClientWithBaseURL(baseURL string) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta chartMeta `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartMeta struct {
	Currency           string              `json:"currency"`
	Symbol             string              `json:"symbol"`
	RegularMarketPrice decimal.NullDecimal `json:"regularMarketPrice"`
	ChartPreviousClose decimal.NullDecimal `json:"chartPreviousClose"`
}

// Name implements the quote provider interface
func (c *Client) Name() string {
	return ProviderName
}

// GetPrice returns the latest market price. Bare home-market codes are tried
// as KOSPI listings first, then KOSDAQ.
func (c *Client) GetPrice(ctx context.Context, t string, homeMarket bool) (decimal.Decimal, error) {
	symbol := ticker.YahooSymbol(t, homeMarket)
	price, err := c.GetMarketPrice(ctx, symbol)
	if err == nil || !homeMarket || strings.Contains(ticker.Normalize(t), ".") {
		return price, err
	}

	alt := ticker.HomeCode(t) + ticker.KosdaqSuffix
	log.Debugf("yahoo: %s not found, retrying as %s", symbol, alt)
	if altPrice, altErr := c.GetMarketPrice(ctx, alt); altErr == nil {
		return altPrice, nil
	}
	return decimal.Zero, err
}

// GetFXRate returns units of to per one unit of from, via the <FROM><TO>=X pair
func (c *Client) GetFXRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	return c.GetMarketPrice(ctx, PairSymbol(from, to))
}

// PairSymbol is Yahoo's spelling of a currency pair, e.g. USDKRW=X
func PairSymbol(from, to string) string {
	return strings.ToUpper(from) + strings.ToUpper(to) + "=X"
}

// GetMarketPrice fetches the chart meta for a Yahoo symbol and returns its
// regular market price, falling back to the previous close
func (c *Client) GetMarketPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	meta, err := c.getChartMeta(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}

	switch {
	case meta.RegularMarketPrice.Valid && meta.RegularMarketPrice.Decimal.IsPositive():
		return meta.RegularMarketPrice.Decimal, nil
	case meta.ChartPreviousClose.Valid && meta.ChartPreviousClose.Decimal.IsPositive():
		log.Debugf("yahoo: %s has no market price, using previous close", symbol)
		return meta.ChartPreviousClose.Decimal, nil
	}
	return decimal.Zero, fmt.Errorf("%w for %s", ErrNoPrice, symbol)
}

func (c *Client) getChartMeta(ctx context.Context, symbol string) (*chartMeta, error) {
	params := url.Values{}
	params.Add("interval", "1d")
	params.Add("range", "1d")
	reqURL := c.baseURL + url.PathEscape(symbol) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w for %s: symbol not found", ErrNoPrice, symbol)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Yahoo Finance API returned status %d", resp.StatusCode)
	}

	var result chartResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if result.Chart.Error != nil {
		return nil, fmt.Errorf("Yahoo Finance API error: %s", result.Chart.Error.Description)
	}
	if len(result.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoPrice, symbol)
	}
	return &result.Chart.Result[0].Meta, nil
}
