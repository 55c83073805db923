package services

import (
	"testing"
	"time"

	"ledgersync/internal/models"
	"ledgersync/internal/pagination"
	"ledgersync/internal/rules"
	"ledgersync/internal/testutil"
)

func paginationFirstPage() pagination.PageRequest {
	return pagination.PageRequest{Page: 1, PageSize: 50}
}

func TestCreateTransaction(t *testing.T) {
	t.Run("derives_account_from_rule", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txnSvc := NewTransactionService(db, NewAliasService(db))
		testutil.CreateTestRuleForMerchant(t, db, "Costco")

		txn, err := txnSvc.CreateTransaction(TransactionInput{
			Date:        time.Now(),
			Merchant:    testutil.StrPtr("Costco"),
			AmountCents: -4599,
			Entity:      models.EntityOrigin,
		})
		testutil.AssertNoError(t, err)

		if txn.QBAccount == nil || *txn.QBAccount != "Office Supplies" {
			t.Errorf("expected derived account, got %v", txn.QBAccount)
		}
		if txn.Status != models.StatusOK {
			t.Errorf("expected status ok, got %q", txn.Status)
		}
		if !txn.Dirty() {
			t.Error("new transaction should start dirty")
		}
	})

	t.Run("unknown_merchant", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txnSvc := NewTransactionService(db, NewAliasService(db))

		txn, err := txnSvc.CreateTransaction(TransactionInput{
			Date:     time.Now(),
			Merchant: testutil.StrPtr("Nowhere Cafe"),
			Entity:   models.EntityOrigin,
		})
		testutil.AssertNoError(t, err)

		if txn.QBAccount == nil || *txn.QBAccount != rules.AccountUnknownMerchant {
			t.Errorf("expected UNKNOWN MERCHANT, got %v", txn.QBAccount)
		}
		if txn.Status != models.StatusNeedsAttention {
			t.Errorf("expected needs_attention, got %q", txn.Status)
		}
	})

	t.Run("blank_merchant", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txnSvc := NewTransactionService(db, NewAliasService(db))

		txn, err := txnSvc.CreateTransaction(TransactionInput{
			Date:   time.Now(),
			Entity: models.EntityOrigin,
		})
		testutil.AssertNoError(t, err)

		if txn.QBAccount == nil || *txn.QBAccount != rules.AccountNoMerchant {
			t.Errorf("expected NO MERCHANT, got %v", txn.QBAccount)
		}
	})

	t.Run("standardizes_raw_merchant_via_alias", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txnSvc := NewTransactionService(db, NewAliasService(db))
		testutil.CreateTestAlias(t, db, "COSTCO WHSE #0482", "Costco")
		testutil.CreateTestRuleForMerchant(t, db, "Costco")

		txn, err := txnSvc.CreateTransaction(TransactionInput{
			Date:        time.Now(),
			RawMerchant: testutil.StrPtr("COSTCO WHSE #0482"),
			Entity:      models.EntityOrigin,
		})
		testutil.AssertNoError(t, err)

		if txn.Merchant == nil || *txn.Merchant != "Costco" {
			t.Errorf("expected standardized merchant Costco, got %v", txn.Merchant)
		}
		if txn.Status != models.StatusOK {
			t.Errorf("expected status ok after standardization, got %q", txn.Status)
		}
	})

	t.Run("bumps_rule_counters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txnSvc := NewTransactionService(db, NewAliasService(db))
		rule := testutil.CreateTestRuleForMerchant(t, db, "Costco")

		// Start the rule out clean to observe the dirty flip.
		now := time.Now()
		if err := db.Model(rule).Update("sheets_synced_at", now).Error; err != nil {
			t.Fatalf("failed to mark rule clean: %v", err)
		}

		_, err := txnSvc.CreateTransaction(TransactionInput{
			Date:        time.Now(),
			Merchant:    testutil.StrPtr("Costco"),
			AmountCents: -4599,
			Entity:      models.EntityOrigin,
		})
		testutil.AssertNoError(t, err)

		var updated models.MerchantRule
		testutil.AssertNoError(t, db.First(&updated, "id = ?", rule.ID).Error)
		if updated.TxnCount != 1 {
			t.Errorf("expected count 1, got %d", updated.TxnCount)
		}
		if updated.TxnTotalCents != 4599 {
			t.Errorf("expected total 4599 (absolute), got %d", updated.TxnTotalCents)
		}
		if !updated.Dirty() {
			t.Error("rule should be dirty after counters moved")
		}
	})

	t.Run("no_rule_no_counter_side_effect", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txnSvc := NewTransactionService(db, NewAliasService(db))

		_, err := txnSvc.CreateTransaction(TransactionInput{
			Date:     time.Now(),
			Merchant: testutil.StrPtr("Nowhere Cafe"),
			Entity:   models.EntityOrigin,
		})
		testutil.AssertNoError(t, err)

		var count int64
		testutil.AssertNoError(t, db.Model(&models.MerchantRule{}).Count(&count).Error)
		if count != 0 {
			t.Error("creating a transaction must never create a rule")
		}
	})

	t.Run("invalid_entity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txnSvc := NewTransactionService(db, NewAliasService(db))

		_, err := txnSvc.CreateTransaction(TransactionInput{
			Date:   time.Now(),
			Entity: models.Entity("Subsidiary"),
		})
		testutil.AssertAppError(t, err, "INVALID_ENTITY")
	})

	t.Run("missing_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txnSvc := NewTransactionService(db, NewAliasService(db))

		_, err := txnSvc.CreateTransaction(TransactionInput{})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("entity_change_recomputes_and_marks_dirty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txnSvc := NewTransactionService(db, NewAliasService(db))
		testutil.CreateTestRuleForMerchant(t, db, "Costco")

		now := time.Now()
		txn, err := txnSvc.CreateTransaction(TransactionInput{
			Date:           time.Now(),
			Merchant:       testutil.StrPtr("Costco"),
			Entity:         models.EntityNeedsReview,
			SheetsSyncedAt: &now,
		})
		testutil.AssertNoError(t, err)
		if txn.QBAccount == nil || *txn.QBAccount != rules.AccountEntityNotSet {
			t.Fatalf("expected ENTITY NOT SET before the entity is chosen, got %v", txn.QBAccount)
		}

		entity := models.EntityOrigin
		updated, err := txnSvc.UpdateTransaction(txn.ID, TransactionPatch{Entity: &entity})
		testutil.AssertNoError(t, err)

		if updated.QBAccount == nil || *updated.QBAccount != "Office Supplies" {
			t.Errorf("expected mapped account, got %v", updated.QBAccount)
		}
		if updated.Status != models.StatusOK {
			t.Errorf("expected status ok, got %q", updated.Status)
		}
		if !updated.Dirty() {
			t.Error("derived change must re-mark the row dirty")
		}
	})

	t.Run("unchanged_derived_stays_clean", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txnSvc := NewTransactionService(db, NewAliasService(db))
		testutil.CreateTestRuleForMerchant(t, db, "Costco")

		now := time.Now()
		txn, err := txnSvc.CreateTransaction(TransactionInput{
			Date:           time.Now(),
			Merchant:       testutil.StrPtr("Costco"),
			Entity:         models.EntityOrigin,
			SheetsSyncedAt: &now,
		})
		testutil.AssertNoError(t, err)

		updated, err := txnSvc.UpdateTransaction(txn.ID, TransactionPatch{
			Notes: testutil.StrPtr("checked by hand"),
		})
		testutil.AssertNoError(t, err)

		if updated.Dirty() {
			t.Error("a notes-only edit must not re-mark the row dirty")
		}
		if updated.Notes == nil || *updated.Notes != "checked by hand" {
			t.Errorf("expected notes to be applied, got %v", updated.Notes)
		}
	})

	t.Run("amount_only_edit_leaves_counters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txnSvc := NewTransactionService(db, NewAliasService(db))
		rule := testutil.CreateTestRuleForMerchant(t, db, "Costco")

		txn, err := txnSvc.CreateTransaction(TransactionInput{
			Date:        time.Now(),
			Merchant:    testutil.StrPtr("Costco"),
			AmountCents: -1000,
			Entity:      models.EntityOrigin,
		})
		testutil.AssertNoError(t, err)

		amount := int64(-9999)
		_, err = txnSvc.UpdateTransaction(txn.ID, TransactionPatch{AmountCents: &amount})
		testutil.AssertNoError(t, err)

		var updated models.MerchantRule
		testutil.AssertNoError(t, db.First(&updated, "id = ?", rule.ID).Error)
		if updated.TxnCount != 1 || updated.TxnTotalCents != 1000 {
			t.Errorf("amount-only edits must not adjust counters, got count=%d total=%d",
				updated.TxnCount, updated.TxnTotalCents)
		}
	})

	t.Run("merchant_change_moves_counters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txnSvc := NewTransactionService(db, NewAliasService(db))
		oldRule := testutil.CreateTestRuleForMerchant(t, db, "Costco")
		newRule := testutil.CreateTestRuleForMerchant(t, db, "Shell")

		txn, err := txnSvc.CreateTransaction(TransactionInput{
			Date:        time.Now(),
			Merchant:    testutil.StrPtr("Costco"),
			AmountCents: -2500,
			Entity:      models.EntityOrigin,
		})
		testutil.AssertNoError(t, err)

		_, err = txnSvc.UpdateTransaction(txn.ID, TransactionPatch{
			Merchant: testutil.StrPtr("Shell"),
		})
		testutil.AssertNoError(t, err)

		var oldUpdated, newUpdated models.MerchantRule
		testutil.AssertNoError(t, db.First(&oldUpdated, "id = ?", oldRule.ID).Error)
		testutil.AssertNoError(t, db.First(&newUpdated, "id = ?", newRule.ID).Error)

		if oldUpdated.TxnCount != 0 || oldUpdated.TxnTotalCents != 0 {
			t.Errorf("old rule should be back to zero, got count=%d total=%d",
				oldUpdated.TxnCount, oldUpdated.TxnTotalCents)
		}
		if newUpdated.TxnCount != 1 || newUpdated.TxnTotalCents != 2500 {
			t.Errorf("new rule should carry the transaction, got count=%d total=%d",
				newUpdated.TxnCount, newUpdated.TxnTotalCents)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txnSvc := NewTransactionService(db, NewAliasService(db))

		_, err := txnSvc.UpdateTransaction("0198c5b2-0000-7000-8000-000000000000", TransactionPatch{})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("rolls_counters_back", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txnSvc := NewTransactionService(db, NewAliasService(db))
		rule := testutil.CreateTestRuleForMerchant(t, db, "Costco")

		txn, err := txnSvc.CreateTransaction(TransactionInput{
			Date:        time.Now(),
			Merchant:    testutil.StrPtr("Costco"),
			AmountCents: -4599,
			Entity:      models.EntityOrigin,
		})
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, txnSvc.DeleteTransaction(txn.ID))

		var updated models.MerchantRule
		testutil.AssertNoError(t, db.First(&updated, "id = ?", rule.ID).Error)
		if updated.TxnCount != 0 || updated.TxnTotalCents != 0 {
			t.Errorf("expected counters back at zero, got count=%d total=%d",
				updated.TxnCount, updated.TxnTotalCents)
		}

		_, err = txnSvc.GetTransactionByID(txn.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("counters_floor_at_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txnSvc := NewTransactionService(db, NewAliasService(db))
		rule := testutil.CreateTestRuleForMerchant(t, db, "Costco")

		// Created directly, so the rule never saw the matching increment.
		txn := testutil.CreateTestTransaction(t, db, testutil.StrPtr("Costco"), models.EntityOrigin, -9900)
		testutil.AssertNoError(t, txnSvc.DeleteTransaction(txn.ID))

		var updated models.MerchantRule
		testutil.AssertNoError(t, db.First(&updated, "id = ?", rule.ID).Error)
		if updated.TxnCount != 0 || updated.TxnTotalCents != 0 {
			t.Errorf("counters must floor at zero, got count=%d total=%d",
				updated.TxnCount, updated.TxnTotalCents)
		}
	})
}

func TestRecomputeForRuleDepthGuard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	txnSvc := NewTransactionService(db, NewAliasService(db))
	rule := testutil.CreateTestRuleForMerchant(t, db, "Costco")
	testutil.CreateTestTransaction(t, db, testutil.StrPtr("Costco"), models.EntityOrigin, -1000)

	changed, err := txnSvc.RecomputeForRule(db, rule, maxCascadeDepth+1)
	testutil.AssertNoError(t, err)
	if changed != 0 {
		t.Errorf("recompute beyond the depth cap must be a no-op, changed %d rows", changed)
	}
}

func TestListTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	txnSvc := NewTransactionService(db, NewAliasService(db))
	testutil.CreateTestRuleForMerchant(t, db, "Costco")

	now := time.Now()
	for i, entity := range []models.Entity{models.EntityOrigin, models.EntityPersonal, models.EntityOrigin} {
		input := TransactionInput{
			Date:        time.Now(),
			Merchant:    testutil.StrPtr("Costco"),
			AmountCents: int64(-1000 * (i + 1)),
			Entity:      entity,
		}
		if i == 0 {
			input.SheetsSyncedAt = &now
		}
		_, err := txnSvc.CreateTransaction(input)
		testutil.AssertNoError(t, err)
	}

	t.Run("by_entity", func(t *testing.T) {
		entity := models.EntityOrigin
		result, err := txnSvc.ListTransactions(paginationFirstPage(), TransactionFilter{Entity: &entity})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 Origin transactions, got %d", result.TotalItems)
		}
	})

	t.Run("dirty_only", func(t *testing.T) {
		dirty := true
		result, err := txnSvc.ListTransactions(paginationFirstPage(), TransactionFilter{Dirty: &dirty})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 dirty transactions, got %d", result.TotalItems)
		}
	})

	t.Run("by_merchant", func(t *testing.T) {
		merchant := "costco"
		result, err := txnSvc.ListTransactions(paginationFirstPage(), TransactionFilter{Merchant: &merchant})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 3 {
			t.Errorf("expected 3 Costco transactions, got %d", result.TotalItems)
		}
	})
}
