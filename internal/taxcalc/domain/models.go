// Package domain contains persistence models for saved tax-retention
// calculations.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// TaxCalculation is a saved retention computation over a date range. The
// retention rate and payable percent are entered per calculation; 30% is
// only the customary ITBIS retention, not a fixed rule.
type TaxCalculation struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id" firestore:"id"`
	CompanyID      snowflake.ID `gorm:"not null;index" json:"company_id" firestore:"company_id"`
	Name           string       `gorm:"type:text;not null" json:"name" firestore:"name"`
	PeriodStart    time.Time    `gorm:"not null" json:"period_start" firestore:"period_start"`
	PeriodEnd      time.Time    `gorm:"not null" json:"period_end" firestore:"period_end"`
	RetentionRate  float64      `gorm:"not null;default:0.30" json:"retention_rate" firestore:"retention_rate"`
	PayablePercent float64      `gorm:"not null;default:0" json:"payable_percent" firestore:"payable_percent"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at" firestore:"created_at"`
}

// TableName sets the database table name.
func (TaxCalculation) TableName() string { return "tax_calculations" }

// TaxCalculationDetail records one invoice included in a saved calculation.
// Details are replaced wholesale on every save, never diffed.
type TaxCalculationDetail struct {
	ID               string       `gorm:"type:text;primaryKey" json:"id" firestore:"id"`
	CalculationID    snowflake.ID `gorm:"not null;index" json:"calculation_id" firestore:"calculation_id"`
	InvoiceID        snowflake.ID `gorm:"not null;index" json:"invoice_id" firestore:"invoice_id"`
	Selected         bool         `gorm:"not null;default:true" json:"selected" firestore:"selected"`
	RetentionApplied bool         `gorm:"not null;default:false" json:"retention_applied" firestore:"retention_applied"`
}

// TableName sets the database table name.
func (TaxCalculationDetail) TableName() string { return "tax_calculation_details" }
