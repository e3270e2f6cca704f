// Package naver scrapes Naver Finance item pages. It covers home-market
// listings only and serves as the lower-priority price fallback and as a
// source of listing name and industry metadata.
package naver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/epeers/folio/internal/models"
	"github.com/epeers/folio/internal/ticker"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

const defaultBaseURL = "https://finance.naver.com/item/main.naver"

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// ProviderName identifies quotes sourced from Naver Finance
const ProviderName = "naver"

var (
	// ErrForeignTicker is returned for tickers outside the home market
	ErrForeignTicker = errors.New("naver only covers home-market tickers")
	// ErrNotFound is returned when the page has no item data
	ErrNotFound = errors.New("naver item not found")
)

// Client scrapes Naver Finance item pages
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Naver Finance client
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL creates a client against a custom endpoint (for testing)
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ItemPage is what is read off one item page
type ItemPage struct {
	Code     string
	Name     string
	Industry string
	Price    decimal.Decimal
}

// Name implements the quote provider interface
func (c *Client) Name() string {
	return ProviderName
}

// GetPrice returns the current price shown on the item page
func (c *Client) GetPrice(ctx context.Context, t string, homeMarket bool) (decimal.Decimal, error) {
	if !homeMarket {
		return decimal.Zero, ErrForeignTicker
	}
	page, err := c.GetItem(ctx, t)
	if err != nil {
		return decimal.Zero, err
	}
	if !page.Price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: no price for %s", ErrNotFound, page.Code)
	}
	return page.Price, nil
}

// GetListing returns name and industry metadata for a home-market ticker
func (c *Client) GetListing(ctx context.Context, t string) (*models.Listing, error) {
	if !ticker.IsHomeMarket(t) {
		return nil, ErrForeignTicker
	}
	page, err := c.GetItem(ctx, t)
	if err != nil {
		return nil, err
	}
	return &models.Listing{
		Symbol:   ticker.Normalize(t),
		Name:     page.Name,
		Sector:   page.Industry,
		Country:  models.CountryDomestic,
		Currency: "KRW",
	}, nil
}

// GetItem fetches and parses the item page for a home-market code
func (c *Client) GetItem(ctx context.Context, t string) (*ItemPage, error) {
	code := ticker.HomeCode(t)
	params := url.Values{}
	params.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("naver returned status %d", resp.StatusCode)
	}

	page, err := ParseItemPage(decodeBody(resp.Body, resp.Header.Get("Content-Type")))
	if err != nil {
		return nil, fmt.Errorf("failed to parse item page for %s: %w", code, err)
	}
	page.Code = code
	log.Debugf("naver: %s %q price=%s industry=%q", code, page.Name, page.Price, page.Industry)
	return page, nil
}

// decodeBody converts the EUC-KR item page to UTF-8 unless the server says
// it is already UTF-8
func decodeBody(body io.Reader, contentType string) io.Reader {
	if strings.Contains(strings.ToLower(contentType), "utf-8") {
		return body
	}
	return transform.NewReader(body, korean.EUCKR.NewDecoder())
}

// ParseItemPage extracts name, industry and current price from an item page.
// The price lives in p.no_today as hidden text (span.blind), the name is the
// h2 inside div.wrap_company, and the industry is the link to the upjong group.
func ParseItemPage(r io.Reader) (*ItemPage, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	page := &ItemPage{}
	if n := findNode(doc, func(n *html.Node) bool { return isElement(n, "div") && hasClass(n, "wrap_company") }); n != nil {
		if h2 := findNode(n, func(n *html.Node) bool { return isElement(n, "h2") }); h2 != nil {
			page.Name = strings.TrimSpace(textContent(h2))
		}
	}
	if n := findNode(doc, func(n *html.Node) bool { return isElement(n, "p") && hasClass(n, "no_today") }); n != nil {
		if blind := findNode(n, func(n *html.Node) bool { return isElement(n, "span") && hasClass(n, "blind") }); blind != nil {
			raw := strings.ReplaceAll(strings.TrimSpace(textContent(blind)), ",", "")
			if p, err := decimal.NewFromString(raw); err == nil {
				page.Price = p
			}
		}
	}
	if n := findNode(doc, func(n *html.Node) bool {
		return isElement(n, "a") && strings.Contains(attr(n, "href"), "type=upjong")
	}); n != nil {
		page.Industry = strings.TrimSpace(textContent(n))
	}

	if page.Name == "" && page.Price.IsZero() {
		return nil, ErrNotFound
	}
	return page, nil
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// findNode returns the first node in document order matching match
func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findNode(child, match); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(textContent(child))
	}
	return sb.String()
}
