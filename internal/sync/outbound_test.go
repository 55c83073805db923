package sync

import (
	"context"
	"testing"
	"time"

	"ledgersync/internal/models"
	"ledgersync/internal/services"
	"ledgersync/internal/testutil"
)

func TestOutboundTransactions(t *testing.T) {
	t.Run("flushes_dirty_linked_rows", func(t *testing.T) {
		env := setup(t)
		row := int64(5)
		txn, err := env.txns.CreateTransaction(transactionInputWithRow(&row))
		testutil.AssertNoError(t, err)
		if !txn.Dirty() {
			t.Fatal("transaction should start dirty")
		}

		result, err := env.outbound.Run(context.Background())
		testutil.AssertNoError(t, err)
		if result.Transactions != 1 {
			t.Fatalf("expected 1 flushed transaction, got %d", result.Transactions)
		}

		got, err := env.txns.GetTransactionByID(txn.ID)
		testutil.AssertNoError(t, err)
		if got.Dirty() {
			t.Error("flushed row should be marked clean")
		}
	})

	t.Run("skips_unlinked_rows", func(t *testing.T) {
		env := setup(t)
		txn, err := env.txns.CreateTransaction(transactionInputWithRow(nil))
		testutil.AssertNoError(t, err)

		result, err := env.outbound.Run(context.Background())
		testutil.AssertNoError(t, err)
		if result.Transactions != 0 {
			t.Errorf("unlinked rows have no cell to write, got %d flushed", result.Transactions)
		}

		got, err := env.txns.GetTransactionByID(txn.ID)
		testutil.AssertNoError(t, err)
		if !got.Dirty() {
			t.Error("skipped row must stay dirty")
		}
	})

	t.Run("failure_leaves_rows_dirty", func(t *testing.T) {
		env := setup(t)
		row := int64(5)
		txn, err := env.txns.CreateTransaction(transactionInputWithRow(&row))
		testutil.AssertNoError(t, err)

		env.client.failBatch = true
		_, err = env.outbound.Run(context.Background())
		testutil.AssertAppError(t, err, "SHEET_WRITE_FAILED")

		got, err := env.txns.GetTransactionByID(txn.ID)
		testutil.AssertNoError(t, err)
		if !got.Dirty() {
			t.Error("a failed batch must not mark anything clean")
		}

		// The next pass picks the row up again.
		env.client.failBatch = false
		result, err := env.outbound.Run(context.Background())
		testutil.AssertNoError(t, err)
		if result.Transactions != 1 {
			t.Errorf("expected retry to flush the row, got %d", result.Transactions)
		}
	})

	t.Run("batch_cap", func(t *testing.T) {
		env := setup(t)
		env.outbound.batchSize = 2
		for i := int64(0); i < 3; i++ {
			row := 5 + i
			_, err := env.txns.CreateTransaction(transactionInputWithRow(&row))
			testutil.AssertNoError(t, err)
		}

		result, err := env.outbound.Run(context.Background())
		testutil.AssertNoError(t, err)
		if result.Transactions != 2 {
			t.Fatalf("expected the cap to hold at 2, got %d", result.Transactions)
		}

		result, err = env.outbound.Run(context.Background())
		testutil.AssertNoError(t, err)
		if result.Transactions != 1 {
			t.Errorf("expected the remainder on the next pass, got %d", result.Transactions)
		}
	})
}

func TestOutboundRules(t *testing.T) {
	env := setup(t)
	rule := testutil.CreateTestRuleForMerchant(t, env.db, "Costco")
	row := int64(3)
	testutil.AssertNoError(t, env.db.Model(rule).Updates(map[string]interface{}{
		"sheets_row_id":   row,
		"txn_count":       7,
		"txn_total_cents": 123456,
	}).Error)

	result, err := env.outbound.Run(context.Background())
	testutil.AssertNoError(t, err)
	if result.Rules != 1 {
		t.Fatalf("expected 1 flushed rule, got %d", result.Rules)
	}

	if len(env.client.batches) != 1 {
		t.Fatalf("expected one batch, got %d", len(env.client.batches))
	}
	batch := env.client.batches[0]
	if len(batch) != 2 {
		t.Fatalf("expected count and total cells, got %d", len(batch))
	}
	if batch[0].Column != "F" || batch[0].Value != "7" {
		t.Errorf("unexpected count cell: %+v", batch[0])
	}
	if batch[1].Column != "G" || batch[1].Value != "$1234.56" {
		t.Errorf("unexpected total cell: %+v", batch[1])
	}

	got, err := env.rules.GetRuleByID(rule.ID)
	testutil.AssertNoError(t, err)
	if got.Dirty() {
		t.Error("flushed rule should be marked clean")
	}
}

func TestDisplayStatus(t *testing.T) {
	tests := []struct {
		status models.TransactionStatus
		want   string
	}{
		{models.StatusOK, "✅"},
		{models.StatusError, "❌"},
		{models.StatusNeedsAttention, "⚠️"},
		{models.StatusReview, "⚠️"},
	}
	for _, tt := range tests {
		if got := displayStatus(tt.status); got != tt.want {
			t.Errorf("displayStatus(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func transactionInputWithRow(row *int64) services.TransactionInput {
	return services.TransactionInput{
		Date:        time.Now(),
		Merchant:    testutil.StrPtr("Costco"),
		AmountCents: -4599,
		Entity:      models.EntityOrigin,
		SheetsRowID: row,
	}
}
