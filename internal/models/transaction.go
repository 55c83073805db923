package models

import (
	"time"

	"gorm.io/gorm"
)

// TransactionStatus is the computed review status of a transaction.
type TransactionStatus string

const (
	StatusOK             TransactionStatus = "ok"
	StatusNeedsAttention TransactionStatus = "needs_attention"
	StatusError          TransactionStatus = "error"
	StatusReview         TransactionStatus = "review"
)

// Transaction represents one imported card/bank transaction. The QB account
// and status columns are computed from the merchant rules and are never
// written by the spreadsheet side; the entity, notes and merchant columns
// are owned by the bookkeeping team and never written by the sync jobs.
type Transaction struct {
	Base
	Date               time.Time         `gorm:"not null;index" json:"date"`
	RawMerchant        *string           `json:"raw_merchant,omitempty"`
	Merchant           *string           `json:"merchant,omitempty"`
	MerchantNormalized string            `gorm:"index" json:"merchant_normalized"`
	Description        *string           `json:"description,omitempty"`
	AmountCents        int64             `gorm:"not null" json:"amount_cents"`
	Entity             Entity            `gorm:"not null;default:NEEDS REVIEW" json:"entity"`
	QBAccount          *string           `json:"qb_account,omitempty"`
	Status             TransactionStatus `gorm:"not null;default:needs_attention" json:"status"`
	SourceAccount      *string           `json:"source_account,omitempty"`
	CardNumber         *string           `json:"card_number,omitempty"`
	Notes              *string           `json:"notes,omitempty"`
	SheetsRowID        *int64            `gorm:"index" json:"sheets_row_id,omitempty"`
	SheetsSyncedAt     *time.Time        `gorm:"index" json:"sheets_synced_at,omitempty"`
}

// BeforeSave recomputes the normalized merchant key. The normalized form is
// a pure function of the merchant name and is never settable on its own.
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	if t.Merchant != nil {
		t.MerchantNormalized = NormalizeMerchant(*t.Merchant)
	} else {
		t.MerchantNormalized = ""
	}
	return nil
}

// Dirty reports whether the transaction's computed columns still need to be
// written back to the spreadsheet.
func (t *Transaction) Dirty() bool {
	return t.SheetsSyncedAt == nil
}
