package models

import "encoding/json"

// Requests for HTTP endpoints. Defined in domain for consistency and reuse.

type TransactionsRequest struct {
	Limit int `query:"limit" json:"limit" default:"20" validate:"gte=1,lte=200"`
}

type TransferHTTPRequest struct {
	Provider        string      `json:"provider" validate:"required"`
	FromAccountID   string      `json:"fromAccountId" validate:"required"`
	ToBeneficiaryID string      `json:"toBeneficiaryId" validate:"required"`
	Amount          json.Number `json:"amount" validate:"required,numeric"`
	Currency        string      `json:"currency" default:"AED" validate:"len=3,alpha"`
	Purpose         string      `json:"purpose" validate:"max=140"`
	Reference       string      `json:"reference" validate:"max=64"`
}

type RouteRequest struct {
	Amount   string `query:"amount" json:"amount" validate:"required,numeric"`
	Currency string `query:"currency" json:"currency" default:"AED" validate:"len=3,alpha"`
}

type ConvertRequest struct {
	Symbol string  `query:"symbol" json:"symbol" validate:"required,alphanum,max=10"`
	Amount float64 `query:"amount" json:"amount" validate:"gt=0"`
}
