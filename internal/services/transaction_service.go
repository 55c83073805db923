package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "ledgersync/internal/errors"
	"ledgersync/internal/logger"
	"ledgersync/internal/models"
	"ledgersync/internal/pagination"
	"ledgersync/internal/rules"
)

// maxCascadeDepth caps how far a rule change may cascade. A rule update
// recomputing its transactions runs at depth 1; anything deeper means the
// recompute itself tried to trigger another cascade and is skipped.
const maxCascadeDepth = 1

// transactionService handles transaction-related business logic. Every write
// path runs the rule lookup (the mutation interceptor) and maintains the
// owning rule's denormalized counters inside the same database transaction.
type transactionService struct {
	db      *gorm.DB
	aliases AliasServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, aliases AliasServicer) TransactionServicer {
	return &transactionService{db: db, aliases: aliases}
}

// CreateTransaction creates a transaction, derives its QB account and
// status, and bumps the owning rule's counters.
func (s *transactionService) CreateTransaction(input TransactionInput) (*models.Transaction, error) {
	if input.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if input.Entity == "" {
		input.Entity = models.EntityNeedsReview
	}
	if !input.Entity.IsValid() {
		return nil, apperrors.ErrInvalidEntity
	}

	transaction := &models.Transaction{
		Date:           input.Date,
		RawMerchant:    input.RawMerchant,
		Merchant:       input.Merchant,
		Description:    input.Description,
		AmountCents:    input.AmountCents,
		Entity:         input.Entity,
		SourceAccount:  input.SourceAccount,
		CardNumber:     input.CardNumber,
		Notes:          input.Notes,
		SheetsRowID:    input.SheetsRowID,
		SheetsSyncedAt: input.SheetsSyncedAt,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if transaction.Merchant == nil && transaction.RawMerchant != nil {
			std, err := s.aliases.Standardize(tx, *transaction.RawMerchant)
			if err != nil {
				return err
			}
			if std != "" {
				transaction.Merchant = &std
			}
		}

		if _, err := s.applyDerived(tx, transaction); err != nil {
			return err
		}

		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return s.adjustRuleAggregates(tx, transaction.MerchantNormalized, 1, absCents(transaction.AmountCents))
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// GetTransactionByID retrieves a transaction by ID.
func (s *transactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ?", id).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// GetTransactionBySheetsRow retrieves the transaction linked to the given
// spreadsheet row.
func (s *transactionService) GetTransactionBySheetsRow(row int64) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.Where("sheets_row_id = ?", row).First(&transaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// ListTransactions retrieves a paginated, filtered list of transactions.
func (s *transactionService) ListTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{})
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.Entity != nil {
		q = q.Where("entity = ?", *f.Entity)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Merchant != nil {
		q = q.Where("LOWER(merchant) LIKE ?", "%"+models.NormalizeMerchant(*f.Merchant)+"%")
	}
	if f.Dirty != nil {
		if *f.Dirty {
			q = q.Where("sheets_synced_at IS NULL")
		} else {
			q = q.Where("sheets_synced_at IS NOT NULL")
		}
	}
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	return q
}

// UpdateTransaction applies a patch to team-owned fields, recomputes the
// derived fields, and adjusts rule counters when the merchant identity
// changed. Amount-only edits do not adjust the running total; the counters
// only track membership changes.
func (s *transactionService) UpdateTransaction(id string, patch TransactionPatch) (*models.Transaction, error) {
	if patch.Entity != nil && !patch.Entity.IsValid() {
		return nil, apperrors.ErrInvalidEntity
	}

	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		oldNormalized := transaction.MerchantNormalized
		oldAmount := transaction.AmountCents

		if patch.Date != nil {
			transaction.Date = *patch.Date
		}
		if patch.AmountCents != nil {
			transaction.AmountCents = *patch.AmountCents
		}
		if patch.Entity != nil {
			transaction.Entity = *patch.Entity
		}
		if patch.SheetsRowID != nil {
			transaction.SheetsRowID = patch.SheetsRowID
		}
		applyText(&transaction.RawMerchant, patch.RawMerchant)
		applyText(&transaction.Description, patch.Description)
		applyText(&transaction.SourceAccount, patch.SourceAccount)
		applyText(&transaction.CardNumber, patch.CardNumber)
		applyText(&transaction.Notes, patch.Notes)

		if patch.Merchant != nil {
			applyText(&transaction.Merchant, patch.Merchant)
		} else if patch.RawMerchant != nil {
			// The raw merchant changed without an explicit standardized
			// name; rerun the alias lookup.
			if transaction.RawMerchant == nil {
				transaction.Merchant = nil
			} else {
				std, stdErr := s.aliases.Standardize(tx, *transaction.RawMerchant)
				if stdErr != nil {
					return stdErr
				}
				transaction.Merchant = &std
			}
		}

		changed, derErr := s.applyDerived(tx, transaction)
		if derErr != nil {
			return derErr
		}
		if changed {
			transaction.SheetsSyncedAt = nil
		}

		if err := tx.Save(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if transaction.MerchantNormalized != oldNormalized {
			// Merchant identity changed: a removal from the old rule's
			// aggregate followed by an addition to the new rule's.
			if err := s.adjustRuleAggregates(tx, oldNormalized, -1, -absCents(oldAmount)); err != nil {
				return err
			}
			if err := s.adjustRuleAggregates(tx, transaction.MerchantNormalized, 1, absCents(transaction.AmountCents)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// DeleteTransaction deletes a transaction and rolls its contribution out of
// the owning rule's counters.
func (s *transactionService) DeleteTransaction(id string) error {
	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.adjustRuleAggregates(tx, transaction.MerchantNormalized, -1, -absCents(transaction.AmountCents))
	})
}

// RecomputeForRule re-derives the QB account and status of every transaction
// associated with the rule's merchant. Rows whose derived values actually
// change are re-marked dirty; the rest are left untouched. The fan-out is a
// bounded number of bulk UPDATE statements, one per resulting
// account/status pair, and those statements write derived columns only, so
// they can never feed back into the aggregate path.
func (s *transactionService) RecomputeForRule(tx *gorm.DB, rule *models.MerchantRule, depth int) (int64, error) {
	if depth > maxCascadeDepth {
		logger.Get().Warnw("cascade depth exceeded, skipping recompute",
			"merchant", rule.Merchant,
			"depth", depth,
		)
		return 0, nil
	}

	var transactions []models.Transaction
	if err := tx.Where("merchant_normalized = ?", rule.MerchantNormalized).
		Find(&transactions).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	type derived struct {
		account string
		status  models.TransactionStatus
	}
	groups := make(map[derived][]string)
	for i := range transactions {
		t := &transactions[i]
		account, status := rules.Resolve(rule, t.Entity)
		if strPtrEqual(t.QBAccount, account) && t.Status == status {
			continue
		}
		key := derived{status: status}
		if account != nil {
			key.account = *account
		}
		groups[key] = append(groups[key], t.ID)
	}

	var changed int64
	for key, ids := range groups {
		res := tx.Model(&models.Transaction{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"qb_account":       key.account,
				"status":           key.status,
				"sheets_synced_at": nil,
			})
		if res.Error != nil {
			return changed, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		changed += res.RowsAffected
	}
	return changed, nil
}

// applyDerived is the mutation interceptor: it stamps the computed QB
// account and status on the transaction and reports whether either value
// genuinely changed (null-safe comparison against the previous values).
func (s *transactionService) applyDerived(tx *gorm.DB, t *models.Transaction) (bool, error) {
	oldAccount := t.QBAccount
	oldStatus := t.Status

	var account *string
	var status models.TransactionStatus

	if t.Merchant == nil || strings.TrimSpace(*t.Merchant) == "" {
		missing := rules.AccountNoMerchant
		account, status = &missing, models.StatusNeedsAttention
	} else {
		rule, err := s.findRule(tx, models.NormalizeMerchant(*t.Merchant))
		if err != nil {
			return false, err
		}
		account, status = rules.Resolve(rule, t.Entity)
	}

	t.QBAccount = account
	t.Status = status
	return !strPtrEqual(oldAccount, account) || oldStatus != status, nil
}

// findRule looks up a merchant rule by normalized name; a miss is not an
// error, it resolves to a nil rule.
func (s *transactionService) findRule(tx *gorm.DB, normalized string) (*models.MerchantRule, error) {
	if normalized == "" {
		return nil, nil
	}
	var rule models.MerchantRule
	err := tx.Where("merchant_normalized = ?", normalized).First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rule, nil
}

// adjustRuleAggregates applies a counter delta to the rule owning the given
// normalized merchant. Counters are floored at zero, the rule is re-marked
// dirty only when a counter actually moved, and a missing rule is a no-op.
// Transactions never create rules as a side effect.
func (s *transactionService) adjustRuleAggregates(tx *gorm.DB, normalized string, countDelta, totalDeltaCents int64) error {
	rule, err := s.findRule(tx, normalized)
	if err != nil || rule == nil {
		return err
	}

	newCount := floorZero(rule.TxnCount + countDelta)
	newTotal := floorZero(rule.TxnTotalCents + totalDeltaCents)
	if newCount == rule.TxnCount && newTotal == rule.TxnTotalCents {
		return nil
	}

	if err := tx.Model(&models.MerchantRule{}).
		Where("id = ?", rule.ID).
		Updates(map[string]interface{}{
			"txn_count":        newCount,
			"txn_total_cents":  newTotal,
			"sheets_synced_at": nil,
		}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
