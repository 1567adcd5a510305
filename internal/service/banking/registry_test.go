package banking

import (
	"context"
	"testing"
	"time"

	"FinBridge/internal/domain/models"
	"FinBridge/internal/domain/repository"
	"FinBridge/pkg/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

func demoConfig() *config.Config {
	cfg := &config.Config{}
	for _, b := range []*config.BankConfig{&cfg.Banking.Rakbank, &cfg.Banking.Mashreq, &cfg.Banking.Wio, &cfg.Banking.EmiratesNBD} {
		b.Environment = models.EnvSandbox
		b.RateLimitRPS = 5
	}
	return cfg
}

func TestRegistryOrderAndDemoMode(t *testing.T) {
	reg := NewRegistry(demoConfig(), WithClock(func() time.Time { return fixedNow }))
	require.Len(t, reg, 4)

	ids := make([]models.ProviderID, 0, len(reg))
	for _, p := range reg {
		ids = append(ids, p.ID())
		assert.False(t, p.Configured())
		assert.Equal(t, models.EnvSandbox, p.ConfigStatus().Environment)
	}
	assert.Equal(t, models.BankProviders, ids)
}

func TestBeneficiaryCapability(t *testing.T) {
	reg := NewRegistry(demoConfig())
	supports := map[models.ProviderID]bool{}
	for _, p := range reg {
		_, ok := p.(repository.BeneficiaryLister)
		supports[p.ID()] = ok
	}
	assert.True(t, supports[models.ProviderRakbank])
	assert.True(t, supports[models.ProviderMashreq])
	assert.False(t, supports[models.ProviderWio])
	assert.True(t, supports[models.ProviderEmiratesNBD])
}

func TestDemoBalances(t *testing.T) {
	want := map[models.ProviderID]int64{
		models.ProviderRakbank:     175000,
		models.ProviderMashreq:     325000,
		models.ProviderWio:         125000,
		models.ProviderEmiratesNBD: 165000,
	}
	reg := NewRegistry(demoConfig(), WithClock(func() time.Time { return fixedNow }))
	for _, p := range reg {
		accts, err := p.Accounts(context.Background())
		require.NoError(t, err)
		require.NotEmpty(t, accts)

		sum := decimal.Zero
		for _, a := range accts {
			assert.Equal(t, p.ID(), a.Provider)
			assert.Equal(t, fixedNow, a.LastSync)
			sum = sum.Add(a.Balance)
		}
		assert.True(t, sum.Equal(decimal.NewFromInt(want[p.ID()])), "%s: got %s", p.ID(), sum)
	}
}

func TestConfiguredBankIsLive(t *testing.T) {
	cfg := demoConfig()
	cfg.Banking.Wio.APIKey = "key"
	cfg.Banking.Wio.ClientID = "client"
	cfg.Banking.Wio.BaseURL = "https://wio.example"

	reg := NewRegistry(cfg)
	_, live := reg[2].(*wioLive)
	assert.True(t, live)
	assert.True(t, reg[2].Configured())
	assert.True(t, reg[2].ConfigStatus().HasAPIKey)

	_, demo := reg[0].(demoPayeeProvider)
	assert.True(t, demo)
}

func TestFeaturesAreCopies(t *testing.T) {
	p := NewRegistry(demoConfig())[1]
	f := p.Features()
	assert.Contains(t, f, FeatureAANI)
	f[0] = "mutated"
	assert.Equal(t, FeatureAccounts, p.Features()[0])
}
