// Package rules implements the merchant rule engine: a pure mapping from
// (merchant rule, entity) to a QuickBooks account and a review status. It
// performs no I/O so it can be exercised standalone in tests; callers load
// the rule row and pass it in.
package rules

import (
	"strings"

	"ledgersync/internal/models"
)

// Sentinel account values. A transaction resolved to one of these needs
// human attention before it can be exported to QuickBooks.
const (
	AccountUnknownMerchant = "UNKNOWN MERCHANT"
	AccountEntityNotSet    = "ENTITY NOT SET"
	AccountRequiresSplit   = "REQUIRES SPLIT"
	AccountUnknownEntity   = "UNKNOWN ENTITY"
	AccountNotMapped       = "NOT MAPPED"
	AccountNoMerchant      = "NO MERCHANT"
	AccountNotApplicable   = "N/A"
)

var sentinelAccounts = map[string]bool{
	AccountUnknownMerchant: true,
	AccountEntityNotSet:    true,
	AccountRequiresSplit:   true,
	AccountUnknownEntity:   true,
	AccountNotMapped:       true,
	AccountNoMerchant:      true,
	AccountNotApplicable:   true,
}

// IsSentinel reports whether account is one of the sentinel values.
func IsSentinel(account string) bool {
	return sentinelAccounts[account]
}

// Resolve maps a merchant rule and an entity to the derived QB account and
// status. rule may be nil, meaning no rule matched the merchant.
func Resolve(rule *models.MerchantRule, entity models.Entity) (*string, models.TransactionStatus) {
	if rule == nil {
		return sentinel(AccountUnknownMerchant)
	}

	switch entity {
	case models.EntityNeedsReview:
		return sentinel(AccountEntityNotSet)
	case models.EntitySplit:
		return sentinel(AccountRequiresSplit)
	}

	mapping, known := rule.AccountFor(entity)
	if !known {
		return sentinel(AccountUnknownEntity)
	}
	if mapping == nil || strings.TrimSpace(*mapping) == "" {
		return sentinel(AccountNotMapped)
	}

	account := *mapping
	return &account, StatusFor(&account)
}

// StatusFor returns the status implied by an account value: ok if and only
// if the account is present and not a sentinel.
func StatusFor(account *string) models.TransactionStatus {
	if account == nil || IsSentinel(*account) {
		return models.StatusNeedsAttention
	}
	return models.StatusOK
}

func sentinel(account string) (*string, models.TransactionStatus) {
	v := account
	return &v, models.StatusNeedsAttention
}
