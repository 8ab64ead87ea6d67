// Package domain contains persistence models for invoices.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Kind separates issued (income) invoices from expense invoices.
type Kind string

const (
	KindIssued  Kind = "issued"
	KindExpense Kind = "expense"
)

func (k Kind) Valid() bool {
	return k == KindIssued || k == KindExpense
}

// Invoice is a single issued or expense invoice. TotalDOP is the total in
// home currency, always TotalAmount * ExchangeRate at save time. The triple
// (CompanyID, CounterpartRNC, Number) is unique.
type Invoice struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id" firestore:"id"`
	CompanyID       snowflake.ID `gorm:"not null;index;uniqueIndex:ux_invoice_identity" json:"company_id" firestore:"company_id"`
	Kind            Kind         `gorm:"type:text;not null;index" json:"kind" firestore:"kind"`
	Date            time.Time    `gorm:"not null;index" json:"date" firestore:"date"`
	Number          string       `gorm:"type:text;not null;uniqueIndex:ux_invoice_identity" json:"number" firestore:"number"`
	CounterpartRNC  string       `gorm:"type:text;not null;uniqueIndex:ux_invoice_identity;column:counterpart_rnc" json:"counterpart_rnc" firestore:"counterpart_rnc"`
	CounterpartName string       `gorm:"type:text;not null" json:"counterpart_name" firestore:"counterpart_name"`
	Currency        string       `gorm:"type:text;not null;default:'DOP'" json:"currency" firestore:"currency"`
	ExchangeRate    float64      `gorm:"not null;default:1" json:"exchange_rate" firestore:"exchange_rate"`
	TaxAmount       float64      `gorm:"not null;default:0" json:"tax_amount" firestore:"tax_amount"`
	TotalAmount     float64      `gorm:"not null;default:0" json:"total_amount" firestore:"total_amount"`
	TotalDOP        float64      `gorm:"not null;default:0;column:total_dop" json:"total_dop" firestore:"total_dop"`
	AttachmentPath  string       `gorm:"type:text" json:"attachment_path,omitempty" firestore:"attachment_path"`
	AttachmentKey   string       `gorm:"type:text" json:"attachment_key,omitempty" firestore:"attachment_key"`
	CreatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at" firestore:"created_at"`
	UpdatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at" firestore:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// Normalize fills the defensive defaults the UI contract promises: legacy
// rows may carry a zero exchange rate or an empty currency.
func (inv *Invoice) Normalize() {
	if inv.ExchangeRate == 0 {
		inv.ExchangeRate = 1.0
	}
	if inv.Currency == "" {
		inv.Currency = "DOP"
	}
	if inv.TotalDOP == 0 && inv.TotalAmount != 0 {
		inv.TotalDOP = inv.TotalAmount * inv.ExchangeRate
	}
}
