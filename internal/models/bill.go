package models

import "time"

// BillStatusPending marks an invoice that is still outstanding.
const BillStatusPending = "pending"

// LegalBill is an invoice issued by outside counsel.
type LegalBill struct {
	ID            string    `json:"id"`
	LawFirmName   string    `json:"law_firm_name"`
	InvoiceNumber string    `json:"invoice_number"`
	Amount        float64   `json:"amount"`
	DueDate       time.Time `json:"due_date"`
	Status        string    `json:"status"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
