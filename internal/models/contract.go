package models

import "time"

// ContractStatusActive is the only status counted toward value and expiry figures.
const ContractStatusActive = "active"

// Contract is an agreement tracked by the contracts module.
type Contract struct {
	ID             string    `json:"id"`
	ContractName   string    `json:"contract_name"`
	ContractType   string    `json:"contract_type"`
	Counterparty   string    `json:"counterparty"`
	ExpirationDate time.Time `json:"expiration_date"`
	Status         string    `json:"status"`
	ContractValue  *float64  `json:"contract_value"`
	AutoRenew      bool      `json:"auto_renew"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Value returns the contract value, treating a missing value as zero.
func (c Contract) Value() float64 {
	if c.ContractValue == nil {
		return 0
	}
	return *c.ContractValue
}

// ClausePosition is the department's stance on a playbook clause.
type ClausePosition string

const (
	PositionAccept    ClausePosition = "accept"
	PositionReject    ClausePosition = "reject"
	PositionNegotiate ClausePosition = "negotiate"
)

// Valid reports whether p is one of the known positions.
func (p ClausePosition) Valid() bool {
	switch p {
	case PositionAccept, PositionReject, PositionNegotiate:
		return true
	}
	return false
}

// PlaybookClause is one entry of the contract playbook.
type PlaybookClause struct {
	ID              string         `json:"id"`
	ClauseCategory  string         `json:"clause_category"`
	ClauseName      string         `json:"clause_name"`
	Position        ClausePosition `json:"position"`
	Guidance        string         `json:"guidance"`
	ExampleLanguage *string        `json:"example_language"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
