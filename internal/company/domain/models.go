// Package domain contains persistence models for companies.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Company is a business whose books are kept here. AdvanceITBIS carries the
// ITBIS paid in advance that offsets future monthly declarations.
type Company struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id" firestore:"id"`
	Name         string            `gorm:"type:text;not null" json:"name" firestore:"name"`
	RNC          string            `gorm:"type:text;not null;uniqueIndex:ux_company_rnc" json:"rnc" firestore:"rnc"`
	Address      string            `gorm:"type:text" json:"address" firestore:"address"`
	AdvanceITBIS float64           `gorm:"not null;default:0" json:"advance_itbis" firestore:"advance_itbis"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty" firestore:"-"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at" firestore:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at" firestore:"updated_at"`
}

// TableName sets the database table name.
func (Company) TableName() string { return "companies" }
