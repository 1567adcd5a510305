package usecase

import (
	"context"
	"fmt"
	"math"

	"FinBridge/internal/domain/models"
	"FinBridge/internal/domain/repository"
)

// StatusReporter describes adapter configuration for dashboards.
type StatusReporter struct {
	providers []repository.BankProvider
	crypto    *CryptoAggregator
	s         settings
}

func NewStatusReporter(providers []repository.BankProvider, crypto *CryptoAggregator, opts ...Option) *StatusReporter {
	return &StatusReporter{providers: providers, crypto: crypto, s: newSettings(opts)}
}

// GetProvidersStatus is static and makes no network calls.
func (r *StatusReporter) GetProvidersStatus() []models.ProviderStatus {
	checked := r.s.now().UTC()
	out := make([]models.ProviderStatus, 0, len(r.providers))
	for _, p := range r.providers {
		out = append(out, models.ProviderStatus{
			Name:        p.ID(),
			DisplayName: p.DisplayName(),
			Configured:  p.Configured(),
			Environment: p.ConfigStatus().Environment,
			Features:    p.Features(),
			LastChecked: checked,
		})
	}
	return out
}

// BuildSystemStatus combines provider configuration with a live probe of the price sources.
func (r *StatusReporter) BuildSystemStatus(ctx context.Context) models.SystemStatus {
	providers := r.GetProvidersStatus()
	configured := 0
	for _, p := range providers {
		if p.Configured {
			configured++
		}
	}

	sources := []models.PriceSourceStatus{}
	if r.crypto != nil {
		sources = r.crypto.GetPriceSourcesStatus(ctx)
	}
	online := 0
	for _, s := range sources {
		if s.Status == models.SourceOnline {
			online++
		}
	}

	return models.SystemStatus{
		Health:          healthOf(configured, len(providers)),
		Banking:         models.BankingStatus{Providers: providers, Configured: configured, Total: len(providers)},
		Crypto:          models.CryptoStatus{Sources: sources, Online: online, Total: len(sources)},
		Recommendations: recommendations(providers, sources),
	}
}

func healthOf(configured, total int) models.Health {
	score := 0
	if total > 0 {
		score = int(math.Round(float64(configured) / float64(total) * 100))
	}
	switch {
	case score >= 100:
		return models.Health{Score: score, Status: models.HealthExcellent, Message: "All banking providers connected"}
	case score >= 50:
		return models.Health{Score: score, Status: models.HealthGood, Message: "Most banking providers connected"}
	case score > 0:
		return models.Health{Score: score, Status: models.HealthLimited, Message: "Some banking providers connected"}
	default:
		return models.Health{Score: 0, Status: models.HealthDemo, Message: "Running in demo mode with sample data"}
	}
}

func recommendations(providers []models.ProviderStatus, sources []models.PriceSourceStatus) []string {
	out := []string{}
	for _, p := range providers {
		if !p.Configured {
			out = append(out, fmt.Sprintf("Configure %s API credentials to enable live data", p.DisplayName))
		}
	}
	for _, s := range sources {
		if s.Status == models.SourceOnline {
			continue
		}
		msg := fmt.Sprintf("Price source %s is %s", s.Name, s.Status)
		if s.Error != "" {
			msg += ": " + s.Error
		}
		out = append(out, msg)
	}
	return out
}
