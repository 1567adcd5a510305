package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProviderID identifies a banking institution adapter.
type ProviderID string

const (
	ProviderRakbank     ProviderID = "rakbank"
	ProviderMashreq     ProviderID = "mashreq"
	ProviderWio         ProviderID = "wio"
	ProviderEmiratesNBD ProviderID = "emirates_nbd"
)

// BankProviders lists every banking adapter in registry order.
var BankProviders = []ProviderID{ProviderRakbank, ProviderMashreq, ProviderWio, ProviderEmiratesNBD}

// Environment of a provider API.
const (
	EnvSandbox    = "sandbox"
	EnvProduction = "production"
)

// Transaction direction.
const (
	TxCredit = "CREDIT"
	TxDebit  = "DEBIT"
)

// Account is the provider-agnostic account shape. ID is unique only within Provider.
type Account struct {
	ID               string          `json:"id"`
	Provider         ProviderID      `json:"provider"`
	AccountNumber    string          `json:"accountNumber"`
	IBAN             string          `json:"iban,omitempty"`
	AccountType      string          `json:"accountType"`
	Currency         string          `json:"currency"`
	Balance          decimal.Decimal `json:"balance"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
	Status           string          `json:"status"`
	LastSync         time.Time       `json:"lastSync"`
}

type Transaction struct {
	ID           string          `json:"id"`
	Provider     ProviderID      `json:"provider"`
	AccountID    string          `json:"accountId"`
	Type         string          `json:"type"` // CREDIT | DEBIT
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Description  string          `json:"description"`
	MerchantName string          `json:"merchantName,omitempty"`
	Category     string          `json:"category,omitempty"`
	Date         time.Time       `json:"date"`
	Reference    string          `json:"reference"`
	Status       string          `json:"status"`
}

// TransactionFilter narrows a provider transaction query.
type TransactionFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

type Beneficiary struct {
	ID            string     `json:"id"`
	Provider      ProviderID `json:"provider"`
	Name          string     `json:"name"`
	BankName      string     `json:"bankName,omitempty"`
	AccountNumber string     `json:"accountNumber"`
	IBAN          string     `json:"iban,omitempty"`
	Country       string     `json:"country,omitempty"`
	Currency      string     `json:"currency"`
	IsVerified    *bool      `json:"isVerified,omitempty"`
}

type TransferRequest struct {
	Provider        ProviderID      `json:"provider"`
	FromAccountID   string          `json:"fromAccountId"`
	ToBeneficiaryID string          `json:"toBeneficiaryId"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Purpose         string          `json:"purpose"`
	Reference       string          `json:"reference"`
}

type TransferResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId,omitempty"`
	Status        string `json:"status,omitempty"`
	Reference     string `json:"reference,omitempty"`
	Error         string `json:"error,omitempty"`
}

// TransferReceipt carries the provider-specific success payload. Each bank
// fills exactly one of the identifier fields.
type TransferReceipt struct {
	TransactionID string
	PaymentID     string
	TransferID    string
	Status        string
	Reference     string
}

// ConfigStatus reports how an adapter was configured at startup.
type ConfigStatus struct {
	Configured  bool   `json:"configured"`
	Environment string `json:"environment"`
	HasAPIKey   bool   `json:"hasApiKey"`
	HasClientID bool   `json:"hasClientId"`
	BaseURL     string `json:"baseUrl,omitempty"`
}

// ProviderStatus is the static capability descriptor of one banking adapter.
type ProviderStatus struct {
	Name        ProviderID `json:"name"`
	DisplayName string     `json:"displayName"`
	Configured  bool       `json:"configured"`
	Environment string     `json:"environment"`
	Features    []string   `json:"features"`
	LastChecked time.Time  `json:"lastChecked"`
}

// ProviderError is a collected adapter failure; it never aborts an aggregation.
type ProviderError struct {
	Provider ProviderID `json:"provider"`
	Error    string     `json:"error"`
}

type TotalBalance struct {
	Total      decimal.Decimal                `json:"total"`
	ByCurrency map[string]decimal.Decimal     `json:"byCurrency"`
	ByProvider map[ProviderID]decimal.Decimal `json:"byProvider"`
	Errors     []ProviderError                `json:"errors,omitempty"`
}

type RouteAlternative struct {
	Provider      ProviderID `json:"provider"`
	EstimatedTime string     `json:"estimatedTime,omitempty"`
	Fees          string     `json:"fees,omitempty"`
}

type PaymentRoute struct {
	RecommendedProvider ProviderID         `json:"recommendedProvider"`
	Reason              string             `json:"reason"`
	Alternatives        []RouteAlternative `json:"alternatives"`
	Amount              decimal.Decimal    `json:"amount"`
	Currency            string             `json:"currency"`
}

// TransferEvent is published for every routed transfer, successful or not.
type TransferEvent struct {
	Provider        ProviderID      `json:"provider"`
	FromAccountID   string          `json:"fromAccountId"`
	ToBeneficiaryID string          `json:"toBeneficiaryId"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Reference       string          `json:"reference,omitempty"`
	Success         bool            `json:"success"`
	TransactionID   string          `json:"transactionId,omitempty"`
	Status          string          `json:"status,omitempty"`
	Error           string          `json:"error,omitempty"`
	OccurredAt      time.Time       `json:"occurredAt"`
}

// AccountsResult pairs merged accounts with the providers that failed.
type AccountsResult struct {
	Accounts []Account       `json:"accounts"`
	Errors   []ProviderError `json:"errors"`
}

type TransactionsResult struct {
	Transactions []Transaction   `json:"transactions"`
	Errors       []ProviderError `json:"errors"`
}

type BeneficiariesResult struct {
	Beneficiaries []Beneficiary   `json:"beneficiaries"`
	Errors        []ProviderError `json:"errors"`
}
