package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptofolio/cryptofolio-backend/internal/domain"
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// Client fetches crypto prices from the CoinGecko public API.
// Implements domain.PriceSource. Symbols are CoinGecko coin IDs
// ("bitcoin", "ethereum", ...), prices are in USD.
type Client struct {
	httpClient *http.Client
	baseURL    string
	vsCurrency string
}

// NewClient creates a new CoinGecko client
// An empty baseURL selects the public API endpoint
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:    baseURL,
		vsCurrency: "usd",
	}
}

// GetPrices fetches current USD prices for the given coin IDs.
// Coins unknown to CoinGecko are absent from the result; transport and
// API failures are reported as domain.ErrPriceUnavailable.
func (c *Client) GetPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	if len(symbols) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s",
		c.baseURL, url.QueryEscape(strings.Join(symbols, ",")), c.vsCurrency)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	// Response shape: {"bitcoin":{"usd":50123.45},...}
	var payload map[string]map[string]decimal.Decimal
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode price response: %v", domain.ErrPriceUnavailable, err)
	}

	prices := make(map[string]decimal.Decimal, len(payload))
	for symbol, quote := range payload {
		if price, ok := quote[c.vsCurrency]; ok {
			prices[symbol] = price
		}
	}

	return prices, nil
}

// GetHistory fetches the symbol's USD price series over the last `days`
// days from the market_chart endpoint, oldest first
func (c *Client) GetHistory(ctx context.Context, symbol string, days int) ([]decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=%s&days=%d",
		c.baseURL, url.PathEscape(symbol), c.vsCurrency, days)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	// Response shape: {"prices":[[timestamp_ms, price], ...]}
	var payload struct {
		Prices [][]decimal.Decimal `json:"prices"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode history response: %v", domain.ErrPriceUnavailable, err)
	}

	history := make([]decimal.Decimal, 0, len(payload.Prices))
	for _, point := range payload.Prices {
		if len(point) == 2 {
			history = append(history, point[1])
		}
	}

	return history, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPriceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrPriceUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", domain.ErrPriceUnavailable, err)
	}

	return body, nil
}
