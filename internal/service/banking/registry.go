package banking

import (
	"net/http"
	"time"

	"FinBridge/internal/domain/models"
	"FinBridge/internal/domain/repository"
	"FinBridge/pkg/config"

	"github.com/google/uuid"
)

// Option configures adapter construction.
type Option func(*options)

type options struct {
	timeout   time.Duration
	transport http.RoundTripper
	now       func() time.Time
	newID     func() string
}

// WithTimeout sets the HTTP client timeout of live adapters.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithTransport overrides the round tripper of live adapters.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithClock sets the time source used for lastSync.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator sets the id source for demo transfers.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

// NewRegistry builds one adapter per bank in registry order. A bank with
// credentials gets a live adapter, otherwise its demo adapter.
func NewRegistry(cfg *config.Config, opts ...Option) []repository.BankProvider {
	o := options{
		timeout: 10 * time.Second,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}

	banks := map[models.ProviderID]config.BankConfig{
		models.ProviderRakbank:     cfg.Banking.Rakbank,
		models.ProviderMashreq:     cfg.Banking.Mashreq,
		models.ProviderWio:         cfg.Banking.Wio,
		models.ProviderEmiratesNBD: cfg.Banking.EmiratesNBD,
	}

	out := make([]repository.BankProvider, 0, len(models.BankProviders))
	for _, id := range models.BankProviders {
		out = append(out, newProvider(id, banks[id], o))
	}
	return out
}

func newProvider(id models.ProviderID, bc config.BankConfig, o options) repository.BankProvider {
	if bc.Configured() {
		switch id {
		case models.ProviderRakbank:
			return newRakbankLive(bc, o)
		case models.ProviderMashreq:
			return newMashreqLive(bc, o)
		case models.ProviderWio:
			return newWioLive(bc, o)
		case models.ProviderEmiratesNBD:
			return newEmiratesNBDLive(bc, o)
		}
	}
	d := newDemo(id, bc, o)
	if id == models.ProviderWio {
		return d
	}
	return demoPayeeProvider{d}
}
