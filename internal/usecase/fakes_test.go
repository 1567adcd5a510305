package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"FinBridge/internal/domain/models"
	"FinBridge/internal/domain/repository"
	"FinBridge/internal/service/banking"
	"FinBridge/pkg/config"

	"github.com/shopspring/decimal"
)

var testNow = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type fakeBank struct {
	id          models.ProviderID
	configured  bool
	accounts    []models.Account
	txs         map[string][]models.Transaction
	err         error
	block       bool
	delay       time.Duration
	receipt     *models.TransferReceipt
	transferErr error

	mu        sync.Mutex
	transfers []models.TransferRequest
}

func (f *fakeBank) ID() models.ProviderID { return f.id }
func (f *fakeBank) DisplayName() string   { return string(f.id) }
func (f *fakeBank) Configured() bool      { return f.configured }
func (f *fakeBank) Features() []string    { return []string{"accounts"} }

func (f *fakeBank) ConfigStatus() models.ConfigStatus {
	return models.ConfigStatus{Configured: f.configured, Environment: models.EnvSandbox}
}

func (f *fakeBank) wait(ctx context.Context) error {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.err
}

func (f *fakeBank) Accounts(ctx context.Context) ([]models.Account, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.accounts, nil
}

func (f *fakeBank) Transactions(ctx context.Context, accountID string, _ models.TransactionFilter) ([]models.Transaction, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.txs[accountID], nil
}

func (f *fakeBank) Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferReceipt, error) {
	f.mu.Lock()
	f.transfers = append(f.transfers, req)
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.transferErr != nil {
		return nil, f.transferErr
	}
	return f.receipt, nil
}

type fakePayeeBank struct {
	*fakeBank
	bens []models.Beneficiary
}

func (f fakePayeeBank) Beneficiaries(ctx context.Context) ([]models.Beneficiary, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.bens, nil
}

func acct(p models.ProviderID, id, ccy string, bal int64) models.Account {
	return models.Account{ID: id, Provider: p, Currency: ccy, Balance: decimal.NewFromInt(bal)}
}

func demoRegistry() []repository.BankProvider {
	cfg := &config.Config{}
	for _, b := range []*config.BankConfig{&cfg.Banking.Rakbank, &cfg.Banking.Mashreq, &cfg.Banking.Wio, &cfg.Banking.EmiratesNBD} {
		b.Environment = models.EnvSandbox
		b.RateLimitRPS = 5
	}
	return banking.NewRegistry(cfg, banking.WithClock(fixedClock), banking.WithIDGenerator(func() string { return "demo-tx-1" }))
}

// configuredSet returns four fake banks where only ids in on are configured.
func configuredSet(on ...models.ProviderID) []repository.BankProvider {
	out := make([]repository.BankProvider, 0, 4)
	for _, id := range models.BankProviders {
		f := &fakeBank{id: id}
		for _, o := range on {
			if o == id {
				f.configured = true
			}
		}
		out = append(out, f)
	}
	return out
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.TransferEvent
	err    error
}

func (p *recordingPublisher) PublishTransfer(_ context.Context, evt *models.TransferEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, *evt)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type brokenLocker struct{}

func (brokenLocker) TryLock(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("redis: connection refused")
}
func (brokenLocker) Unlock(context.Context, string) error { return nil }
func (brokenLocker) Close() error                         { return nil }

type fakeSource struct {
	name   string
	prices []models.RawPrice
	err    error
	quotes map[string]float64 // symbol -> AED price
}

func (s *fakeSource) Name() string { return s.name }

func (s *fakeSource) FetchPrices(context.Context) ([]models.RawPrice, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.prices, nil
}

func (s *fakeSource) Quote(_ context.Context, symbol string) (*models.RawPrice, error) {
	if s.err != nil {
		return nil, s.err
	}
	aed, ok := s.quotes[symbol]
	if !ok {
		return nil, errors.New("unsupported symbol")
	}
	return &models.RawPrice{Symbol: symbol, PriceAED: aed}, nil
}
