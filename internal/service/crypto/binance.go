package crypto

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"FinBridge/internal/domain/models"
	"FinBridge/pkg/config"
	xhttp "FinBridge/pkg/http"
	"FinBridge/pkg/util"
)

var coinNames = map[string]string{
	"BTC":  "Bitcoin",
	"ETH":  "Ethereum",
	"USDT": "Tether",
	"SOL":  "Solana",
	"XRP":  "XRP",
	"BNB":  "BNB",
}

const binanceQuote = "USDT"

// binanceTicker is one entry of /api/v3/ticker/24hr. Binance quotes numbers as strings.
type binanceTicker struct {
	Symbol             string `json:"symbol"`
	PriceChange        string `json:"priceChange"`
	PriceChangePercent string `json:"priceChangePercent"`
	LastPrice          string `json:"lastPrice"`
	HighPrice          string `json:"highPrice"`
	LowPrice           string `json:"lowPrice"`
	QuoteVolume        string `json:"quoteVolume"`
	CloseTime          int64  `json:"closeTime"`
}

// Binance reads spot tickers against USDT and converts to AED with the dirham peg.
type Binance struct {
	baseURL string
	symbols []string
	usdAED  float64
	client  *xhttp.Client
}

// NewBinance creates the Binance price source.
func NewBinance(cfg config.PriceSourceConfig, usdAED float64, timeout time.Duration) *Binance {
	syms := make([]string, 0, len(cfg.Symbols))
	for _, s := range cfg.Symbols {
		syms = append(syms, strings.ToUpper(s))
	}
	return &Binance{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		symbols: syms,
		usdAED:  usdAED,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout), xhttp.WithUserAgent("finbridge/1.0")),
	}
}

func (b *Binance) Name() string { return "binance" }

func (b *Binance) FetchPrices(ctx context.Context) ([]models.RawPrice, error) {
	pairs := make([]string, 0, len(b.symbols))
	for _, s := range b.symbols {
		pairs = append(pairs, s+binanceQuote)
	}
	enc, err := json.Marshal(pairs)
	if err != nil {
		return nil, err
	}

	var tickers []binanceTicker
	err = b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         b.baseURL + "/api/v3/ticker/24hr",
		QueryParams: map[string][]string{"symbols": {string(enc)}},
	}, &tickers)
	if err != nil {
		return nil, fmt.Errorf("binance tickers: %w", err)
	}

	out := make([]models.RawPrice, 0, len(tickers))
	for _, t := range tickers {
		raw, err := b.toRaw(t)
		if err != nil {
			// Skipped symbols are filled by the fallback source.
			continue
		}
		out = append(out, raw)
	}
	if len(out) == 0 && len(tickers) > 0 {
		return nil, fmt.Errorf("binance tickers: no valid prices in %d tickers", len(tickers))
	}
	return out, nil
}

func (b *Binance) Quote(ctx context.Context, symbol string) (*models.RawPrice, error) {
	var t binanceTicker
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         b.baseURL + "/api/v3/ticker/24hr",
		QueryParams: map[string][]string{"symbol": {strings.ToUpper(symbol) + binanceQuote}},
	}, &t)
	if err != nil {
		return nil, fmt.Errorf("binance quote %s: %w", symbol, err)
	}
	raw, err := b.toRaw(t)
	if err != nil {
		return nil, fmt.Errorf("binance quote %s: %w", symbol, err)
	}
	return &raw, nil
}

func (b *Binance) toRaw(t binanceTicker) (models.RawPrice, error) {
	sym := strings.TrimSuffix(t.Symbol, binanceQuote)
	price, err := strconv.ParseFloat(strings.TrimSpace(t.LastPrice), 64)
	if err != nil || price <= 0 {
		return models.RawPrice{}, fmt.Errorf("bad lastPrice %q for %s", t.LastPrice, t.Symbol)
	}
	return models.RawPrice{
		Symbol:           sym,
		Name:             util.FirstNonEmpty(coinNames[sym], sym),
		Price:            price,
		PriceAED:         price * b.usdAED,
		Change24h:        util.ParseFloatDefault(t.PriceChange, 0),
		ChangePercent24h: util.ParseFloatDefault(t.PriceChangePercent, 0),
		High24h:          util.ParseFloatDefault(t.HighPrice, 0),
		Low24h:           util.ParseFloatDefault(t.LowPrice, 0),
		Volume24h:        util.ParseFloatDefault(t.QuoteVolume, 0),
		LastUpdated:      time.UnixMilli(t.CloseTime).UTC(),
	}, nil
}
