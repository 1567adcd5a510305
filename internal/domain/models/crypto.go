package models

import "time"

// Price source availability.
const (
	SourceOnline  = "online"
	SourceOffline = "offline"
	SourceError   = "error"
)

// RawPrice is what a price source returns before unification.
type RawPrice struct {
	Symbol           string
	Name             string
	Price            float64 // USD
	PriceAED         float64
	Change24h        float64
	ChangePercent24h float64
	High24h          float64
	Low24h           float64
	Volume24h        float64 // quote volume, USD
	MarketCap        *float64
	LastUpdated      time.Time
}

// UnifiedCryptoPrice appears at most once per Symbol in any result set.
type UnifiedCryptoPrice struct {
	Symbol           string    `json:"symbol"`
	Name             string    `json:"name"`
	Price            float64   `json:"price"`
	PriceAED         float64   `json:"priceAED"`
	Change24h        float64   `json:"change24h"`
	ChangePercent24h float64   `json:"changePercent24h"`
	High24h          float64   `json:"high24h"`
	Low24h           float64   `json:"low24h"`
	Volume24h        float64   `json:"volume24h"`
	MarketCap        *float64  `json:"marketCap,omitempty"`
	Source           string    `json:"source"`
	LastUpdated      time.Time `json:"lastUpdated"`
}

type PriceSourceStatus struct {
	Name    string `json:"name"`
	Status  string `json:"status"`            // online | offline | error
	Latency *int64 `json:"latency,omitempty"` // milliseconds
	Error   string `json:"error,omitempty"`
}

// Conversion is the result of pricing an amount of crypto in AED.
type Conversion struct {
	AEDAmount float64 `json:"aedAmount"`
	Rate      float64 `json:"rate"`
	Symbol    string  `json:"symbol"`
	Source    string  `json:"source"`
}

// CryptoPrices is the merged price list plus the health of each source.
type CryptoPrices struct {
	Prices  []UnifiedCryptoPrice `json:"prices"`
	Sources []PriceSourceStatus  `json:"sources"`
}
