package sync

import (
	"context"
	"strconv"
	gosync "sync"
	"time"

	"gorm.io/gorm"

	apperrors "ledgersync/internal/errors"
	"ledgersync/internal/logger"
	"ledgersync/internal/models"
	"ledgersync/internal/sheets"
)

// DefaultBatchSize caps how many dirty rows of each record type a single
// run writes back.
const DefaultBatchSize = 100

// Result reports how many rows a run wrote back per record type.
type Result struct {
	Transactions int `json:"transactions"`
	Rules        int `json:"rules"`
}

// Outbound finds dirty records and writes their computed columns back to
// the spreadsheet in one batched call per record type. Rows are marked
// clean only after their batch succeeds, and only the rows that were
// actually in the batch, so a row dirtied mid-run is picked up again on the
// next tick. Runs are strictly serialized; an invocation that overlaps a
// running one is rejected.
type Outbound struct {
	db        *gorm.DB
	client    sheets.Client
	layout    Layout
	batchSize int

	mu gosync.Mutex
}

// NewOutbound creates an outbound batcher. batchSize <= 0 selects the
// default cap.
func NewOutbound(db *gorm.DB, client sheets.Client, layout Layout, batchSize int) *Outbound {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Outbound{db: db, client: client, layout: layout, batchSize: batchSize}
}

// Run executes one sync pass. Re-running with no intervening writes is a
// no-op: a clean row set produces no batch and no spreadsheet call.
func (b *Outbound) Run(ctx context.Context) (*Result, error) {
	if !b.mu.TryLock() {
		return nil, apperrors.ErrSyncInProgress
	}
	defer b.mu.Unlock()

	result := &Result{}

	synced, err := b.flushTransactions(ctx)
	if err != nil {
		return result, err
	}
	result.Transactions = synced

	synced, err = b.flushRules(ctx)
	if err != nil {
		return result, err
	}
	result.Rules = synced

	if result.Transactions > 0 || result.Rules > 0 {
		logger.Get().Infow("outbound sync completed",
			"transactions", result.Transactions,
			"rules", result.Rules,
		)
	}
	return result, nil
}

// flushTransactions writes the Status and QB Account columns of dirty,
// sheet-linked transactions. Rows never linked to a sheet row are skipped;
// there is nothing to write to yet.
func (b *Outbound) flushTransactions(ctx context.Context) (int, error) {
	var dirty []models.Transaction
	if err := b.db.
		Where("sheets_synced_at IS NULL AND sheets_row_id IS NOT NULL").
		Limit(b.batchSize).
		Find(&dirty).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(dirty) == 0 {
		return 0, nil
	}

	updates := make([]sheets.CellUpdate, 0, len(dirty)*2)
	ids := make([]string, 0, len(dirty))
	for i := range dirty {
		t := &dirty[i]
		account := ""
		if t.QBAccount != nil {
			account = *t.QBAccount
		}
		updates = append(updates,
			sheets.CellUpdate{
				Sheet:  b.layout.TransactionsSheet,
				Row:    *t.SheetsRowID,
				Column: b.layout.TransactionStatusColumn,
				Value:  displayStatus(t.Status),
			},
			sheets.CellUpdate{
				Sheet:  b.layout.TransactionsSheet,
				Row:    *t.SheetsRowID,
				Column: b.layout.TransactionAccountColumn,
				Value:  account,
			},
		)
		ids = append(ids, t.ID)
	}

	if err := b.client.BatchUpdate(ctx, updates); err != nil {
		return 0, apperrors.Wrap(apperrors.ErrSheetWrite, err)
	}

	if err := b.markClean(&models.Transaction{}, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// flushRules writes the counter columns of dirty, sheet-linked rules.
func (b *Outbound) flushRules(ctx context.Context) (int, error) {
	var dirty []models.MerchantRule
	if err := b.db.
		Where("sheets_synced_at IS NULL AND sheets_row_id IS NOT NULL").
		Limit(b.batchSize).
		Find(&dirty).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(dirty) == 0 {
		return 0, nil
	}

	updates := make([]sheets.CellUpdate, 0, len(dirty)*2)
	ids := make([]string, 0, len(dirty))
	for i := range dirty {
		r := &dirty[i]
		updates = append(updates,
			sheets.CellUpdate{
				Sheet:  b.layout.RulesSheet,
				Row:    *r.SheetsRowID,
				Column: b.layout.RuleCountColumn,
				Value:  strconv.FormatInt(r.TxnCount, 10),
			},
			sheets.CellUpdate{
				Sheet:  b.layout.RulesSheet,
				Row:    *r.SheetsRowID,
				Column: b.layout.RuleTotalColumn,
				Value:  sheets.FormatCents(r.TxnTotalCents),
			},
		)
		ids = append(ids, r.ID)
	}

	if err := b.client.BatchUpdate(ctx, updates); err != nil {
		return 0, apperrors.Wrap(apperrors.ErrSheetWrite, err)
	}

	if err := b.markClean(&models.MerchantRule{}, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// markClean stamps the sync timestamp on exactly the given rows.
func (b *Outbound) markClean(model interface{}, ids []string) error {
	now := time.Now()
	if err := b.db.Model(model).
		Where("id IN ?", ids).
		Update("sheets_synced_at", now).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// displayStatus renders a computed status the way the team reads it in the
// Status column.
func displayStatus(status models.TransactionStatus) string {
	switch status {
	case models.StatusOK:
		return "✅"
	case models.StatusError:
		return "❌"
	default:
		return "⚠️"
	}
}
