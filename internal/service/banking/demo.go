package banking

import (
	"context"
	"time"

	"FinBridge/internal/domain/models"
	"FinBridge/pkg/config"
)

// demoProvider serves the fixed fixture of one bank.
type demoProvider struct {
	base
	data  fixture
	now   func() time.Time
	newID func() string
}

// demoPayeeProvider is a demo bank that also lists beneficiaries.
type demoPayeeProvider struct {
	*demoProvider
}

func newDemo(id models.ProviderID, cfg config.BankConfig, o options) *demoProvider {
	return &demoProvider{
		base:  newBase(id, cfg),
		data:  fixtures(id),
		now:   o.now,
		newID: o.newID,
	}
}

func (p *demoProvider) Accounts(context.Context) ([]models.Account, error) {
	synced := p.now()
	out := make([]models.Account, len(p.data.accounts))
	for i, a := range p.data.accounts {
		a.LastSync = synced
		out[i] = a
	}
	return out, nil
}

func (p *demoProvider) Transactions(_ context.Context, accountID string, f models.TransactionFilter) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0, len(p.data.transactions))
	for _, t := range p.data.transactions {
		if t.AccountID != accountID {
			continue
		}
		if f.From != nil && t.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && t.Date.After(*f.To) {
			continue
		}
		out = append(out, t)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

// Transfer always accepts; the receipt uses this bank's own id field.
func (p *demoProvider) Transfer(_ context.Context, req models.TransferRequest) (*models.TransferReceipt, error) {
	id := p.newID()
	r := &models.TransferReceipt{Status: "PENDING", Reference: req.Reference}
	switch p.ID() {
	case models.ProviderMashreq:
		r.PaymentID = id
	case models.ProviderWio:
		r.TransferID = id
	default:
		r.TransactionID = id
	}
	return r, nil
}

func (p demoPayeeProvider) Beneficiaries(context.Context) ([]models.Beneficiary, error) {
	out := make([]models.Beneficiary, len(p.data.beneficiaries))
	copy(out, p.data.beneficiaries)
	return out, nil
}
