package usecase

import (
	"context"
	"errors"
	"testing"

	"FinBridge/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProvidersStatus(t *testing.T) {
	rep := NewStatusReporter(demoRegistry(), nil, WithClock(fixedClock))
	st := rep.GetProvidersStatus()

	require.Len(t, st, 4)
	for i, id := range models.BankProviders {
		assert.Equal(t, id, st[i].Name)
		assert.False(t, st[i].Configured)
		assert.Equal(t, models.EnvSandbox, st[i].Environment)
		assert.NotEmpty(t, st[i].Features)
		assert.Equal(t, testNow, st[i].LastChecked)
	}
	assert.Equal(t, "Emirates NBD", st[3].DisplayName)
}

func TestHealthScore(t *testing.T) {
	cases := []struct {
		configured, total int
		score             int
		status            string
	}{
		{4, 4, 100, models.HealthExcellent},
		{3, 4, 75, models.HealthGood},
		{2, 4, 50, models.HealthGood},
		{1, 4, 25, models.HealthLimited},
		{0, 4, 0, models.HealthDemo},
		{1, 3, 33, models.HealthLimited},
		{0, 0, 0, models.HealthDemo},
	}
	for _, tc := range cases {
		h := healthOf(tc.configured, tc.total)
		assert.Equal(t, tc.score, h.Score, "%d/%d", tc.configured, tc.total)
		assert.Equal(t, tc.status, h.Status, "%d/%d", tc.configured, tc.total)
		assert.NotEmpty(t, h.Message)
	}
}

func TestBuildSystemStatus(t *testing.T) {
	crypto := NewCryptoAggregator(
		&fakeSource{name: "binance"},
		&fakeSource{name: "coingecko", err: errors.New("timeout")},
	)
	rep := NewStatusReporter(configuredSet(models.ProviderWio, models.ProviderMashreq), crypto)
	st := rep.BuildSystemStatus(context.Background())

	assert.Equal(t, 50, st.Health.Score)
	assert.Equal(t, models.HealthGood, st.Health.Status)
	assert.Equal(t, 2, st.Banking.Configured)
	assert.Equal(t, 4, st.Banking.Total)
	assert.Equal(t, 1, st.Crypto.Online)
	assert.Equal(t, 2, st.Crypto.Total)

	require.Len(t, st.Recommendations, 3)
	assert.Contains(t, st.Recommendations[0], "rakbank")
	assert.Contains(t, st.Recommendations[1], "emirates_nbd")
	assert.Equal(t, "Price source coingecko is offline: timeout", st.Recommendations[2])
}
