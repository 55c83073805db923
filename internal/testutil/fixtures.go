package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"ledgersync/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// StrPtr returns a pointer to s. Convenient for nullable text columns.
func StrPtr(s string) *string {
	return &s
}

// Int64Ptr returns a pointer to n.
func Int64Ptr(n int64) *int64 {
	return &n
}

// CreateTestRule creates a merchant rule with a unique merchant name and an
// Origin account mapping.
func CreateTestRule(t *testing.T, db *gorm.DB) *models.MerchantRule {
	t.Helper()
	merchant := fmt.Sprintf("Test Merchant %d", nextID())
	return CreateTestRuleForMerchant(t, db, merchant)
}

// CreateTestRuleForMerchant creates a rule for the given merchant with an
// Origin entity default and a mapped Origin account.
func CreateTestRuleForMerchant(t *testing.T, db *gorm.DB, merchant string) *models.MerchantRule {
	t.Helper()

	origin := "Office Supplies"
	rule := &models.MerchantRule{
		Merchant:        merchant,
		EntityDefault:   models.EntityOrigin,
		OriginQBAccount: &origin,
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("failed to create test rule: %v", err)
	}
	return rule
}

// CreateTestRuleWithAccounts creates a rule with explicit per-entity account
// mappings. Nil leaves a mapping unset.
func CreateTestRuleWithAccounts(t *testing.T, db *gorm.DB, merchant string, origin, openHaul, personal *string) *models.MerchantRule {
	t.Helper()

	rule := &models.MerchantRule{
		Merchant:          merchant,
		EntityDefault:     models.EntityOrigin,
		OriginQBAccount:   origin,
		OpenHaulQBAccount: openHaul,
		PersonalQBAccount: personal,
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("failed to create test rule: %v", err)
	}
	return rule
}

// CreateTestTransaction creates a transaction directly in the database,
// bypassing the service layer. Derived fields keep their zero values, so use
// the transaction service when the test needs them computed.
func CreateTestTransaction(t *testing.T, db *gorm.DB, merchant *string, entity models.Entity, amountCents int64) *models.Transaction {
	t.Helper()

	txn := &models.Transaction{
		Date:        time.Now().Truncate(24 * time.Hour),
		Merchant:    merchant,
		AmountCents: amountCents,
		Entity:      entity,
		Status:      models.StatusNeedsAttention,
	}
	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return txn
}

// CreateTestAlias creates a raw-to-standard merchant alias.
func CreateTestAlias(t *testing.T, db *gorm.DB, rawMerchant, stdMerchant string) *models.MerchantAlias {
	t.Helper()

	alias := &models.MerchantAlias{
		RawMerchant: rawMerchant,
		StdMerchant: stdMerchant,
	}
	if err := db.Create(alias).Error; err != nil {
		t.Fatalf("failed to create test alias: %v", err)
	}
	return alias
}
