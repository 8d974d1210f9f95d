package models

import (
	"time"

	"github.com/google/uuid"
)

// BankDetails is where an owner's net rent is transferred
type BankDetails struct {
	BankName      string `json:"bank_name"`
	Holder        string `json:"holder"`
	AccountNumber string `json:"account_number"`
	Alias         string `json:"alias,omitempty"`
}

// Owner represents a property owner
type Owner struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	TaxID       *string      `json:"tax_id,omitempty"`
	Contact     *string      `json:"contact,omitempty"`
	BankDetails *BankDetails `json:"bank_details,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
