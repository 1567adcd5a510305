package banking

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"FinBridge/internal/domain/models"
	"FinBridge/pkg/config"

	"github.com/shopspring/decimal"
)

// Emirates NBD follows the UAE open banking (OBIE style) envelope.

type enbdAmount struct {
	Amount   decimal.Decimal `json:"Amount"`
	Currency string          `json:"Currency"`
}

type enbdAccount struct {
	AccountID      string     `json:"AccountId"`
	AccountNumber  string     `json:"AccountNumber"`
	IBAN           string     `json:"IBAN"`
	AccountSubType string     `json:"AccountSubType"`
	Currency       string     `json:"Currency"`
	Balance        enbdAmount `json:"Balance"`
	Available      enbdAmount `json:"AvailableBalance"`
	Status         string     `json:"Status"`
}

type enbdTransaction struct {
	TransactionID          string     `json:"TransactionId"`
	CreditDebitIndicator   string     `json:"CreditDebitIndicator"`
	Amount                 enbdAmount `json:"Amount"`
	TransactionInformation string     `json:"TransactionInformation"`
	MerchantDetails        struct {
		MerchantName     string `json:"MerchantName"`
		MerchantCategory string `json:"MerchantCategoryCode"`
	} `json:"MerchantDetails"`
	BookingDateTime      time.Time `json:"BookingDateTime"`
	TransactionReference string    `json:"TransactionReference"`
	Status               string    `json:"Status"`
}

type enbdBeneficiary struct {
	BeneficiaryID   string `json:"BeneficiaryId"`
	TrustedStatus   *bool  `json:"Trusted"`
	Currency        string `json:"Currency"`
	CreditorAgent   string `json:"CreditorAgentName"`
	CreditorAccount struct {
		SchemeName     string `json:"SchemeName"`
		Identification string `json:"Identification"`
		Name           string `json:"Name"`
		Country        string `json:"Country"`
	} `json:"CreditorAccount"`
}

type enbdPaymentRequest struct {
	Data struct {
		Initiation struct {
			DebtorAccountID     string     `json:"DebtorAccountId"`
			BeneficiaryID       string     `json:"BeneficiaryId"`
			InstructedAmount    enbdAmount `json:"InstructedAmount"`
			RemittanceReference string     `json:"RemittanceReference,omitempty"`
			PaymentPurposeCode  string     `json:"PaymentPurposeCode,omitempty"`
			LocalInstrument     string     `json:"LocalInstrument"`
		} `json:"Initiation"`
	} `json:"Data"`
}

type enbdPaymentResponse struct {
	Data struct {
		TransactionID string `json:"TransactionId"`
		Status        string `json:"Status"`
		Reference     string `json:"RemittanceReference"`
	} `json:"Data"`
}

// enbdLive talks to the Emirates NBD open banking API.
type enbdLive struct {
	base
	client *liveClient
	now    func() time.Time
}

func newEmiratesNBDLive(cfg config.BankConfig, o options) *enbdLive {
	headers := map[string]string{
		"Authorization":    "Bearer " + cfg.APIKey,
		"x-fapi-client-id": cfg.ClientID,
	}
	return &enbdLive{
		base:   newBase(models.ProviderEmiratesNBD, cfg),
		client: newLiveClient(cfg, headers, o.timeout, o.transport),
		now:    o.now,
	}
}

func (p *enbdLive) Accounts(ctx context.Context) ([]models.Account, error) {
	var resp struct {
		Data struct {
			Account []enbdAccount `json:"Account"`
		} `json:"Data"`
	}
	if err := p.client.get(ctx, "/open-banking/v1/accounts", nil, &resp); err != nil {
		return nil, fmt.Errorf("emirates_nbd accounts: %w", err)
	}
	synced := p.now()
	out := make([]models.Account, 0, len(resp.Data.Account))
	for _, a := range resp.Data.Account {
		out = append(out, models.Account{
			ID:               a.AccountID,
			Provider:         models.ProviderEmiratesNBD,
			AccountNumber:    a.AccountNumber,
			IBAN:             a.IBAN,
			AccountType:      a.AccountSubType,
			Currency:         a.Currency,
			Balance:          a.Balance.Amount,
			AvailableBalance: a.Available.Amount,
			Status:           a.Status,
			LastSync:         synced,
		})
	}
	return out, nil
}

func (p *enbdLive) Transactions(ctx context.Context, accountID string, f models.TransactionFilter) ([]models.Transaction, error) {
	var resp struct {
		Data struct {
			Transaction []enbdTransaction `json:"Transaction"`
		} `json:"Data"`
	}
	q := rangeQuery("fromBookingDateTime", "toBookingDateTime", "", time.RFC3339, f.From, f.To, 0)
	path := "/open-banking/v1/accounts/" + url.PathEscape(accountID) + "/transactions"
	if err := p.client.get(ctx, path, q, &resp); err != nil {
		return nil, fmt.Errorf("emirates_nbd transactions: %w", err)
	}
	out := make([]models.Transaction, 0, len(resp.Data.Transaction))
	for _, t := range resp.Data.Transaction {
		out = append(out, models.Transaction{
			ID:           t.TransactionID,
			Provider:     models.ProviderEmiratesNBD,
			AccountID:    accountID,
			Type:         strings.ToUpper(t.CreditDebitIndicator),
			Amount:       t.Amount.Amount,
			Currency:     t.Amount.Currency,
			Description:  t.TransactionInformation,
			MerchantName: t.MerchantDetails.MerchantName,
			Category:     t.MerchantDetails.MerchantCategory,
			Date:         t.BookingDateTime,
			Reference:    t.TransactionReference,
			Status:       t.Status,
		})
	}
	// No server-side page size on this API.
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (p *enbdLive) Beneficiaries(ctx context.Context) ([]models.Beneficiary, error) {
	var resp struct {
		Data struct {
			Beneficiary []enbdBeneficiary `json:"Beneficiary"`
		} `json:"Data"`
	}
	if err := p.client.get(ctx, "/open-banking/v1/beneficiaries", nil, &resp); err != nil {
		return nil, fmt.Errorf("emirates_nbd beneficiaries: %w", err)
	}
	out := make([]models.Beneficiary, 0, len(resp.Data.Beneficiary))
	for _, b := range resp.Data.Beneficiary {
		ben := models.Beneficiary{
			ID:            b.BeneficiaryID,
			Provider:      models.ProviderEmiratesNBD,
			Name:          b.CreditorAccount.Name,
			BankName:      b.CreditorAgent,
			AccountNumber: b.CreditorAccount.Identification,
			Country:       b.CreditorAccount.Country,
			Currency:      b.Currency,
			IsVerified:    b.TrustedStatus,
		}
		if b.CreditorAccount.SchemeName == "IBAN" {
			ben.IBAN = b.CreditorAccount.Identification
		}
		out = append(out, ben)
	}
	return out, nil
}

func (p *enbdLive) Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferReceipt, error) {
	var body enbdPaymentRequest
	in := &body.Data.Initiation
	in.DebtorAccountID = req.FromAccountID
	in.BeneficiaryID = req.ToBeneficiaryID
	in.InstructedAmount = enbdAmount{Amount: req.Amount, Currency: req.Currency}
	in.RemittanceReference = req.Reference
	in.PaymentPurposeCode = req.Purpose
	in.LocalInstrument = "AANI"

	var resp enbdPaymentResponse
	if err := p.client.post(ctx, "/open-banking/v1/domestic-payments", body, &resp); err != nil {
		return nil, fmt.Errorf("emirates_nbd transfer: %w", err)
	}
	return &models.TransferReceipt{
		TransactionID: resp.Data.TransactionID,
		Status:        resp.Data.Status,
		Reference:     resp.Data.Reference,
	}, nil
}
