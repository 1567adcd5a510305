package crypto

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"FinBridge/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const peg = 3.6725

func TestBinanceFetchPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/ticker/24hr", r.URL.Path)
		assert.Equal(t, `["BTCUSDT","ETHUSDT"]`, r.URL.Query().Get("symbols"))
		_, _ = w.Write([]byte(`[
			{"symbol":"BTCUSDT","priceChange":"-120.5","priceChangePercent":"-0.28","lastPrice":"43000.00","highPrice":"43500","lowPrice":"42000","quoteVolume":"1500000000","closeTime":1705312800000},
			{"symbol":"ETHUSDT","priceChange":"12","priceChangePercent":"0.5","lastPrice":"2500","highPrice":"2550","lowPrice":"2400","quoteVolume":"800000000","closeTime":1705312800000}
		]`))
	}))
	defer srv.Close()

	b := NewBinance(config.PriceSourceConfig{BaseURL: srv.URL, Symbols: []string{"btc", "ETH"}}, peg, time.Second)
	prices, err := b.FetchPrices(context.Background())
	require.NoError(t, err)
	require.Len(t, prices, 2)

	btc := prices[0]
	assert.Equal(t, "BTC", btc.Symbol)
	assert.Equal(t, "Bitcoin", btc.Name)
	assert.InDelta(t, 43000*peg, btc.PriceAED, 1e-6)
	assert.InDelta(t, -0.28, btc.ChangePercent24h, 1e-9)
	assert.InDelta(t, 1.5e9, btc.Volume24h, 1)
	assert.Nil(t, btc.MarketCap)
	assert.Equal(t, time.UnixMilli(1705312800000).UTC(), btc.LastUpdated)
}

func TestBinanceSkipsUnparseablePrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbol") == "BTCUSDT" {
			_, _ = w.Write([]byte(`{"symbol":"BTCUSDT","lastPrice":"n/a","closeTime":1705312800000}`))
			return
		}
		_, _ = w.Write([]byte(`[
			{"symbol":"BTCUSDT","lastPrice":"n/a","quoteVolume":"1500000000","closeTime":1705312800000},
			{"symbol":"ETHUSDT","lastPrice":"2500","quoteVolume":"800000000","closeTime":1705312800000},
			{"symbol":"SOLUSDT","lastPrice":"0","quoteVolume":"1","closeTime":1705312800000}
		]`))
	}))
	defer srv.Close()

	b := NewBinance(config.PriceSourceConfig{BaseURL: srv.URL, Symbols: []string{"BTC", "ETH", "SOL"}}, peg, time.Second)
	prices, err := b.FetchPrices(context.Background())
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, "ETH", prices[0].Symbol)

	_, err = b.Quote(context.Background(), "BTC")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad lastPrice")
}

func TestBinanceAllPricesMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"symbol":"BTCUSDT","lastPrice":"","closeTime":1705312800000}]`))
	}))
	defer srv.Close()

	b := NewBinance(config.PriceSourceConfig{BaseURL: srv.URL, Symbols: []string{"BTC"}}, peg, time.Second)
	_, err := b.FetchPrices(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid prices")
}

func TestBinanceQuoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
	}))
	defer srv.Close()

	b := NewBinance(config.PriceSourceConfig{BaseURL: srv.URL}, peg, time.Second)
	_, err := b.Quote(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid symbol")
}

func TestCoinGeckoQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "tether", r.URL.Query().Get("ids"))
		assert.Equal(t, "cg-key", r.Header.Get("x-cg-demo-api-key"))
		_, _ = w.Write([]byte(`[{"id":"tether","symbol":"usdt","name":"Tether","current_price":1.0,"market_cap":95000000000,"total_volume":40000000000,"high_24h":1.001,"low_24h":0.999,"price_change_24h":0.0001,"price_change_percentage_24h":0.01,"last_updated":"2024-01-15T10:00:00.000Z"}]`))
	}))
	defer srv.Close()

	g := NewCoinGecko(config.PriceSourceConfig{
		BaseURL: srv.URL,
		APIKey:  "cg-key",
		IDs:     map[string]string{"usdt": "tether"},
	}, peg, time.Second)

	p, err := g.Quote(context.Background(), "USDT")
	require.NoError(t, err)
	assert.Equal(t, "USDT", p.Symbol)
	assert.InDelta(t, peg, p.PriceAED, 1e-9)
	require.NotNil(t, p.MarketCap)
	assert.InDelta(t, 9.5e10, *p.MarketCap, 1)
}

func TestCoinGeckoUnknownSymbol(t *testing.T) {
	g := NewCoinGecko(config.PriceSourceConfig{BaseURL: "http://127.0.0.1:1"}, peg, time.Second)
	_, err := g.Quote(context.Background(), "DOGE")
	assert.Error(t, err)
}
