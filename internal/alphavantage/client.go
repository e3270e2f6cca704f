package alphavantage

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

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Alphavantage is a Stock and FX API. It is a subscription service, but
// provides free API access with a low daily call limit.
// https://www.alphavantage.co/documentation/
const defaultBaseURL = "https://www.alphavantage.co/query"

// ProviderName identifies quotes sourced from AlphaVantage
const ProviderName = "alphavantage"

var (
	// ErrHomeMarket is returned for Korean exchange tickers, which
	// AlphaVantage does not cover reliably
	ErrHomeMarket = errors.New("alphavantage does not quote home-market tickers")
	// ErrNoData is returned when the API answers without a usable value
	ErrNoData = errors.New("alphavantage returned no data")
)

// Client is an HTTP client for the AlphaVantage API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new AlphaVantage client
func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL)
}

// NewClientWithBaseURL creates a new AlphaVantage client with a custom base URL (for testing)
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Name implements the quote provider interface
func (c *Client) Name() string {
	return ProviderName
}

// GetPrice returns the latest trade price for a foreign ticker
func (c *Client) GetPrice(ctx context.Context, ticker string, homeMarket bool) (decimal.Decimal, error) {
	if homeMarket {
		return decimal.Zero, ErrHomeMarket
	}
	q, err := c.GetQuote(ctx, ticker)
	if err != nil {
		return decimal.Zero, err
	}
	return q.Price, nil
}

// GetQuote fetches a real-time quote for a symbol
func (c *Client) GetQuote(ctx context.Context, symbol string) (*GlobalQuoteResult, error) {
	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", strings.ToUpper(symbol))
	params.Set("apikey", c.apiKey)

	var quoteResp GlobalQuoteResponse
	if err := c.getJSON(ctx, params, &quoteResp); err != nil {
		return nil, err
	}
	if quoteResp.GlobalQuote.Price == "" {
		if msg := quoteResp.message(); msg != "" {
			return nil, fmt.Errorf("%w for %s: %s", ErrNoData, symbol, msg)
		}
		return nil, fmt.Errorf("%w for %s", ErrNoData, symbol)
	}

	price, err := decimal.NewFromString(quoteResp.GlobalQuote.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price: %w", err)
	}

	return &GlobalQuoteResult{
		Symbol: symbol,
		Price:  price,
	}, nil
}

// GetFXRate implements the FX provider interface
func (c *Client) GetFXRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	return c.GetExchangeRate(ctx, from, to)
}

// GetExchangeRate fetches the realtime rate for one unit of from, expressed in to
func (c *Client) GetExchangeRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	params := url.Values{}
	params.Set("function", "CURRENCY_EXCHANGE_RATE")
	params.Set("from_currency", strings.ToUpper(from))
	params.Set("to_currency", strings.ToUpper(to))
	params.Set("apikey", c.apiKey)

	var fxResp ExchangeRateResponse
	if err := c.getJSON(ctx, params, &fxResp); err != nil {
		return decimal.Zero, err
	}
	if fxResp.Rate.Rate == "" {
		if msg := fxResp.message(); msg != "" {
			return decimal.Zero, fmt.Errorf("%w for %s/%s: %s", ErrNoData, from, to, msg)
		}
		return decimal.Zero, fmt.Errorf("%w for %s/%s", ErrNoData, from, to)
	}

	rate, err := decimal.NewFromString(fxResp.Rate.Rate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse exchange rate: %w", err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w for %s/%s: non-positive rate %s", ErrNoData, from, to, rate)
	}
	return rate, nil
}

// GlobalQuoteResult is a parsed GLOBAL_QUOTE
type GlobalQuoteResult struct {
	Symbol string
	Price  decimal.Decimal
}

func (c *Client) getJSON(ctx context.Context, params url.Values, out any) error {
	resp, err := c.doRequest(ctx, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, params url.Values) (*http.Response, error) {
	log.Debugf("alphavantage %s request", params.Get("function"))
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	return resp, nil
}
