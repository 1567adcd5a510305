package repository

import (
	"context"
	"time"

	"FinBridge/internal/domain/models"
)

// BankProvider is the fixed adapter contract every banking institution implements.
// A provider is built once at startup as either a live or a demo instance.
type BankProvider interface {
	ID() models.ProviderID
	DisplayName() string
	Configured() bool
	ConfigStatus() models.ConfigStatus
	Features() []string
	Accounts(ctx context.Context) ([]models.Account, error)
	Transactions(ctx context.Context, accountID string, filter models.TransactionFilter) ([]models.Transaction, error)
	Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferReceipt, error)
}

// BeneficiaryLister is the optional beneficiary capability; not every bank has it.
type BeneficiaryLister interface {
	Beneficiaries(ctx context.Context) ([]models.Beneficiary, error)
}

// PriceSource is a crypto price feed.
type PriceSource interface {
	Name() string
	FetchPrices(ctx context.Context) ([]models.RawPrice, error)
	Quote(ctx context.Context, symbol string) (*models.RawPrice, error)
}

type EventPublisher interface {
	PublishTransfer(ctx context.Context, evt *models.TransferEvent) error
	Close() error
}

// Locker guards short critical sections across instances.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
	Close() error
}

type Metrics interface {
	RecordProviderCall(provider, operation, result string, seconds float64)
	RecordPriceSource(source string, online bool, seconds float64)
	RecordTransfer(provider, result string)
	RecordError(kind string)
}
