package banking

import (
	"context"
	"testing"
	"time"

	"FinBridge/internal/domain/models"
	"FinBridge/pkg/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() options {
	return options{
		now:   func() time.Time { return fixedNow },
		newID: func() string { return "demo-id" },
	}
}

func TestDemoTransactionsFilter(t *testing.T) {
	p := newDemo(models.ProviderRakbank, config.BankConfig{}, testOptions())
	ctx := context.Background()

	all, err := p.Transactions(ctx, "RAK-CA-001", models.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	for _, tx := range all {
		assert.Equal(t, "RAK-CA-001", tx.AccountID)
	}

	from := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	recent, _ := p.Transactions(ctx, "RAK-CA-001", models.TransactionFilter{From: &from})
	require.Len(t, recent, 1)
	assert.Equal(t, "RAK-TX-1001", recent[0].ID)

	limited, _ := p.Transactions(ctx, "RAK-CA-001", models.TransactionFilter{Limit: 1})
	assert.Len(t, limited, 1)

	none, _ := p.Transactions(ctx, "missing", models.TransactionFilter{})
	assert.Empty(t, none)
}

func TestDemoTransferUsesNativeIDField(t *testing.T) {
	req := models.TransferRequest{Amount: decimal.NewFromInt(10), Currency: "AED", Reference: "ref-9"}
	ctx := context.Background()

	cases := []struct {
		id    models.ProviderID
		check func(*models.TransferReceipt) string
	}{
		{models.ProviderRakbank, func(r *models.TransferReceipt) string { return r.TransactionID }},
		{models.ProviderMashreq, func(r *models.TransferReceipt) string { return r.PaymentID }},
		{models.ProviderWio, func(r *models.TransferReceipt) string { return r.TransferID }},
		{models.ProviderEmiratesNBD, func(r *models.TransferReceipt) string { return r.TransactionID }},
	}
	for _, tc := range cases {
		t.Run(string(tc.id), func(t *testing.T) {
			r, err := newDemo(tc.id, config.BankConfig{}, testOptions()).Transfer(ctx, req)
			require.NoError(t, err)
			assert.Equal(t, "demo-id", tc.check(r))
			assert.Equal(t, "PENDING", r.Status)
			assert.Equal(t, "ref-9", r.Reference)
		})
	}
}

func TestDemoAccountsDoNotShareFixture(t *testing.T) {
	p := newDemo(models.ProviderWio, config.BankConfig{}, testOptions())
	a, _ := p.Accounts(context.Background())
	a[0].Balance = decimal.Zero

	b, _ := p.Accounts(context.Background())
	assert.True(t, b[0].Balance.Equal(decimal.NewFromInt(125000)))
}
