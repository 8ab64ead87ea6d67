// Package domain contains the reference catalog used by the invoice form.
package domain

import (
	"context"
	"time"
)

// Currency is one entry of the invoice form's currency selector. DOP is the
// home currency; everything else needs an exchange rate on the invoice.
type Currency struct {
	Code      string    `json:"code" gorm:"type:char(3);primaryKey;column:code"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	Symbol    string    `json:"symbol,omitempty" gorm:"type:text"`
	IsActive  bool      `json:"is_active,omitempty" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Currency) TableName() string { return "currencies" }

type Repository interface {
	ListCurrencies(ctx context.Context) ([]Currency, error)
}
