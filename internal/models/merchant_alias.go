package models

import "gorm.io/gorm"

// MerchantAlias maps a raw merchant string as it appears on statements to a
// standardized merchant name, collapsing near-duplicate spellings before the
// rule lookup runs.
type MerchantAlias struct {
	Base
	RawMerchant   string  `gorm:"not null" json:"raw_merchant"`
	RawNormalized string  `gorm:"uniqueIndex;not null" json:"raw_normalized"`
	StdMerchant   string  `gorm:"not null" json:"std_merchant"`
	Source        *string `json:"source,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// BeforeSave recomputes the normalized raw merchant key used for alias lookup.
func (a *MerchantAlias) BeforeSave(tx *gorm.DB) error {
	a.RawNormalized = NormalizeMerchant(a.RawMerchant)
	return nil
}
