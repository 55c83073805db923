package models

import (
	"time"

	"gorm.io/gorm"
)

// MerchantRule maps a merchant to its per-entity QuickBooks accounts and
// carries denormalized transaction counters for the Merchant Rules sheet.
// The counters and sync timestamp are maintained by the service layer only.
type MerchantRule struct {
	Base
	Merchant           string     `gorm:"uniqueIndex;not null" json:"merchant"`
	MerchantNormalized string     `gorm:"uniqueIndex;not null" json:"merchant_normalized"`
	EntityDefault      Entity     `gorm:"not null;default:NEEDS REVIEW" json:"entity_default"`
	OriginQBAccount    *string    `json:"origin_qb_account,omitempty"`
	OpenHaulQBAccount  *string    `json:"openhaul_qb_account,omitempty"`
	PersonalQBAccount  *string    `json:"personal_qb_account,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
	TxnCount           int64      `gorm:"not null;default:0" json:"txn_count"`
	TxnTotalCents      int64      `gorm:"not null;default:0" json:"txn_total_cents"`
	SheetsRowID        *int64     `gorm:"index" json:"sheets_row_id,omitempty"`
	SheetsSyncedAt     *time.Time `gorm:"index" json:"sheets_synced_at,omitempty"`
}

// BeforeSave recomputes the normalized merchant key from the display name.
func (r *MerchantRule) BeforeSave(tx *gorm.DB) error {
	r.MerchantNormalized = NormalizeMerchant(r.Merchant)
	return nil
}

// AccountFor returns the QB account mapping for the given entity. The second
// return value is false when the entity is not one of the three mapped
// entities (SPLIT and NEEDS REVIEW have no mapping by definition).
func (r *MerchantRule) AccountFor(entity Entity) (*string, bool) {
	switch entity {
	case EntityOrigin:
		return r.OriginQBAccount, true
	case EntityOpenHaul:
		return r.OpenHaulQBAccount, true
	case EntityPersonal:
		return r.PersonalQBAccount, true
	default:
		return nil, false
	}
}

// Dirty reports whether the rule's counters still need to be written back to
// the spreadsheet.
func (r *MerchantRule) Dirty() bool {
	return r.SheetsSyncedAt == nil
}
