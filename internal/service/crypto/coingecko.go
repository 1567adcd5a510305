package crypto

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"FinBridge/internal/domain/models"
	"FinBridge/pkg/config"
	xhttp "FinBridge/pkg/http"
)

type geckoMarket struct {
	ID                       string    `json:"id"`
	Symbol                   string    `json:"symbol"`
	Name                     string    `json:"name"`
	CurrentPrice             float64   `json:"current_price"`
	MarketCap                *float64  `json:"market_cap"`
	TotalVolume              float64   `json:"total_volume"`
	High24h                  float64   `json:"high_24h"`
	Low24h                   float64   `json:"low_24h"`
	PriceChange24h           float64   `json:"price_change_24h"`
	PriceChangePercentage24h float64   `json:"price_change_percentage_24h"`
	LastUpdated              time.Time `json:"last_updated"`
}

// CoinGecko reads the /coins/markets endpoint in USD.
type CoinGecko struct {
	baseURL string
	apiKey  string
	ids     map[string]string // symbol -> coin id
	usdAED  float64
	client  *xhttp.Client
}

// NewCoinGecko creates the CoinGecko price source.
func NewCoinGecko(cfg config.PriceSourceConfig, usdAED float64, timeout time.Duration) *CoinGecko {
	ids := make(map[string]string, len(cfg.IDs))
	for sym, id := range cfg.IDs {
		ids[strings.ToUpper(sym)] = id
	}
	return &CoinGecko{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		ids:     ids,
		usdAED:  usdAED,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout), xhttp.WithUserAgent("finbridge/1.0")),
	}
}

func (g *CoinGecko) Name() string { return "coingecko" }

func (g *CoinGecko) FetchPrices(ctx context.Context) ([]models.RawPrice, error) {
	ids := make([]string, 0, len(g.ids))
	for _, id := range g.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return g.markets(ctx, ids)
}

func (g *CoinGecko) Quote(ctx context.Context, symbol string) (*models.RawPrice, error) {
	id, ok := g.ids[strings.ToUpper(symbol)]
	if !ok {
		return nil, fmt.Errorf("coingecko: unsupported symbol %s", symbol)
	}
	prices, err := g.markets(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(prices) == 0 || prices[0].Price <= 0 {
		return nil, fmt.Errorf("coingecko quote %s: no price", symbol)
	}
	return &prices[0], nil
}

func (g *CoinGecko) markets(ctx context.Context, ids []string) ([]models.RawPrice, error) {
	headers := map[string]string{}
	if g.apiKey != "" {
		headers["x-cg-demo-api-key"] = g.apiKey
	}
	var rows []geckoMarket
	err := g.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     g.baseURL + "/api/v3/coins/markets",
		Headers: headers,
		QueryParams: map[string][]string{
			"vs_currency": {"usd"},
			"ids":         {strings.Join(ids, ",")},
		},
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("coingecko markets: %w", err)
	}

	out := make([]models.RawPrice, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.RawPrice{
			Symbol:           strings.ToUpper(r.Symbol),
			Name:             r.Name,
			Price:            r.CurrentPrice,
			PriceAED:         r.CurrentPrice * g.usdAED,
			Change24h:        r.PriceChange24h,
			ChangePercent24h: r.PriceChangePercentage24h,
			High24h:          r.High24h,
			Low24h:           r.Low24h,
			Volume24h:        r.TotalVolume,
			MarketCap:        r.MarketCap,
			LastUpdated:      r.LastUpdated,
		})
	}
	return out, nil
}
