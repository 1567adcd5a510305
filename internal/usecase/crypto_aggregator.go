package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"FinBridge/internal/domain/models"
	"FinBridge/internal/domain/repository"
	"FinBridge/pkg/logger"
)

// CryptoAggregator merges a primary and a fallback price source.
type CryptoAggregator struct {
	primary  repository.PriceSource
	fallback repository.PriceSource
	s        settings
}

func NewCryptoAggregator(primary, fallback repository.PriceSource, opts ...Option) *CryptoAggregator {
	return &CryptoAggregator{primary: primary, fallback: fallback, s: newSettings(opts)}
}

type fetchResult struct {
	prices []models.RawPrice
	status models.PriceSourceStatus
}

// GetUnifiedCryptoPrices returns one entry per symbol, primary first and the
// fallback only filling gaps, ordered by 24h volume descending.
func (a *CryptoAggregator) GetUnifiedCryptoPrices(ctx context.Context) models.CryptoPrices {
	results := a.fetchBoth(ctx, models.SourceError)

	merged := make([]models.UnifiedCryptoPrice, 0)
	seen := map[string]struct{}{}
	for i, src := range a.sources() {
		for _, p := range results[i].prices {
			sym := strings.ToUpper(p.Symbol)
			if _, dup := seen[sym]; dup || sym == "" {
				continue
			}
			seen[sym] = struct{}{}
			merged = append(merged, unify(p, sym, src.Name()))
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Volume24h > merged[j].Volume24h
	})

	return models.CryptoPrices{
		Prices:  merged,
		Sources: []models.PriceSourceStatus{results[0].status, results[1].status},
	}
}

// ConvertToAED prices amount of symbol in dirhams. It returns nil when
// neither source can quote the symbol.
func (a *CryptoAggregator) ConvertToAED(ctx context.Context, symbol string, amount float64) *models.Conversion {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	for _, src := range a.sources() {
		q, err := callWithTimeout(ctx, a.s.timeout, func(cctx context.Context) (*models.RawPrice, error) {
			return src.Quote(cctx, sym)
		})
		if err != nil || q == nil || q.PriceAED <= 0 {
			if err != nil {
				a.s.log.Debug("quote failed", logger.String("source", src.Name()), logger.String("symbol", sym), logger.Error(err))
			}
			continue
		}
		return &models.Conversion{
			AEDAmount: amount * q.PriceAED,
			Rate:      q.PriceAED,
			Symbol:    sym,
			Source:    src.Name(),
		}
	}
	return nil
}

// GetPriceSourcesStatus probes both sources; a failing probe reports offline.
func (a *CryptoAggregator) GetPriceSourcesStatus(ctx context.Context) []models.PriceSourceStatus {
	results := a.fetchBoth(ctx, models.SourceOffline)
	return []models.PriceSourceStatus{results[0].status, results[1].status}
}

func (a *CryptoAggregator) sources() [2]repository.PriceSource {
	return [2]repository.PriceSource{a.primary, a.fallback}
}

// fetchBoth queries both sources concurrently; failures are labelled failStatus.
func (a *CryptoAggregator) fetchBoth(ctx context.Context, failStatus string) [2]fetchResult {
	var (
		out [2]fetchResult
		wg  sync.WaitGroup
	)
	for i, src := range a.sources() {
		wg.Add(1)
		go func(i int, src repository.PriceSource) {
			defer wg.Done()
			start := time.Now()
			prices, err := callWithTimeout(ctx, a.s.timeout, src.FetchPrices)
			elapsed := time.Since(start)
			latency := elapsed.Milliseconds()

			st := models.PriceSourceStatus{Name: src.Name(), Status: models.SourceOnline, Latency: &latency}
			if err != nil {
				st.Status = failStatus
				st.Error = err.Error()
				prices = nil
				a.s.log.Warn("price source failed", logger.String("source", src.Name()), logger.Error(err))
			}
			a.s.metrics.RecordPriceSource(src.Name(), err == nil, elapsed.Seconds())
			out[i] = fetchResult{prices: prices, status: st}
		}(i, src)
	}
	wg.Wait()
	return out
}

func unify(p models.RawPrice, sym, source string) models.UnifiedCryptoPrice {
	return models.UnifiedCryptoPrice{
		Symbol:           sym,
		Name:             p.Name,
		Price:            p.Price,
		PriceAED:         p.PriceAED,
		Change24h:        p.Change24h,
		ChangePercent24h: p.ChangePercent24h,
		High24h:          p.High24h,
		Low24h:           p.Low24h,
		Volume24h:        p.Volume24h,
		MarketCap:        p.MarketCap,
		Source:           source,
		LastUpdated:      p.LastUpdated,
	}
}
