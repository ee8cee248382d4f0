// Package domain contains the creditor bank account model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// BankAccount is the creditor account a collection run draws into.
type BankAccount struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id,string"`
	HolderName string       `gorm:"type:text;not null" json:"holder_name"`
	IBAN       string       `gorm:"type:text;not null" json:"iban"`
	// CreditorID is the regulator-issued SEPA Creditor Identifier.
	// Export is impossible without it.
	CreditorID string `gorm:"type:text" json:"creditor_id"`
	IsActive   bool   `gorm:"not null;default:true" json:"is_active"`
	IsDefault  bool   `gorm:"not null;default:false" json:"is_default"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (BankAccount) TableName() string { return "bank_accounts" }
