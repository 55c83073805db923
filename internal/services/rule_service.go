package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "ledgersync/internal/errors"
	"ledgersync/internal/logger"
	"ledgersync/internal/models"
	"ledgersync/internal/pagination"
)

// ruleService handles merchant-rule business logic. Updates to the
// per-entity account mappings cascade to the affected transactions via the
// recomputer, inside the same database transaction.
type ruleService struct {
	db         *gorm.DB
	recomputer TransactionRecomputer
}

// NewRuleService creates a new RuleServicer.
func NewRuleService(db *gorm.DB, recomputer TransactionRecomputer) RuleServicer {
	return &ruleService{db: db, recomputer: recomputer}
}

// CreateRule creates a new merchant rule. New rules start dirty unless the
// importer supplied a sync timestamp, and then cascade onto any transactions
// that were already waiting for this merchant.
func (s *ruleService) CreateRule(input RuleInput) (*models.MerchantRule, error) {
	if input.Merchant == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "merchant is required")
	}
	if input.EntityDefault == "" {
		input.EntityDefault = models.EntityNeedsReview
	}
	if !input.EntityDefault.IsValid() {
		return nil, apperrors.ErrInvalidEntity
	}

	normalized := models.NormalizeMerchant(input.Merchant)
	var existing models.MerchantRule
	err := s.db.Where("merchant_normalized = ?", normalized).First(&existing).Error
	if err == nil {
		return nil, apperrors.ErrDuplicateMerchant
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	rule := &models.MerchantRule{
		Merchant:          input.Merchant,
		EntityDefault:     input.EntityDefault,
		OriginQBAccount:   input.OriginQBAccount,
		OpenHaulQBAccount: input.OpenHaulQBAccount,
		PersonalQBAccount: input.PersonalQBAccount,
		Notes:             input.Notes,
		TxnCount:          input.TxnCount,
		TxnTotalCents:     input.TxnTotalCents,
		SheetsRowID:       input.SheetsRowID,
		SheetsSyncedAt:    input.SheetsSyncedAt,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rule).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		// Transactions for this merchant may exist already (resolved to
		// UNKNOWN MERCHANT); bring them in line with the new rule.
		changed, err := s.recomputer.RecomputeForRule(tx, rule, 1)
		if err != nil {
			return err
		}
		if changed > 0 {
			logger.Get().Infow("new rule recomputed existing transactions",
				"merchant", rule.Merchant,
				"changed", changed,
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// GetRuleByID retrieves a merchant rule by ID.
func (s *ruleService) GetRuleByID(id string) (*models.MerchantRule, error) {
	var rule models.MerchantRule
	if err := s.db.Where("id = ?", id).First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRuleNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rule, nil
}

// GetRuleByMerchant retrieves a merchant rule by display name, matching on
// the normalized form.
func (s *ruleService) GetRuleByMerchant(merchant string) (*models.MerchantRule, error) {
	var rule models.MerchantRule
	err := s.db.Where("merchant_normalized = ?", models.NormalizeMerchant(merchant)).First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrRuleNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rule, nil
}

// GetRuleBySheetsRow retrieves the rule linked to the given spreadsheet row.
func (s *ruleService) GetRuleBySheetsRow(row int64) (*models.MerchantRule, error) {
	var rule models.MerchantRule
	err := s.db.Where("sheets_row_id = ?", row).First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrRuleNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rule, nil
}

// ListRules retrieves a paginated, filtered list of merchant rules.
func (s *ruleService) ListRules(page pagination.PageRequest, filter RuleFilter) (*pagination.PageResponse[models.MerchantRule], error) {
	page.Defaults()

	base := s.db.Model(&models.MerchantRule{})
	if filter.Merchant != nil {
		base = base.Where("merchant_normalized LIKE ?", "%"+models.NormalizeMerchant(*filter.Merchant)+"%")
	}
	if filter.Dirty != nil {
		if *filter.Dirty {
			base = base.Where("sheets_synced_at IS NULL")
		} else {
			base = base.Where("sheets_synced_at IS NOT NULL")
		}
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rules []models.MerchantRule
	if err := base.Scopes(pagination.Paginate(page)).
		Order("merchant_normalized ASC").
		Find(&rules).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(rules, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateRule applies a patch to team-owned rule fields. When any of the
// per-entity account mappings change, every transaction for this merchant is
// recomputed within the same database transaction.
func (s *ruleService) UpdateRule(id string, patch RulePatch) (*models.MerchantRule, error) {
	if patch.EntityDefault != nil && !patch.EntityDefault.IsValid() {
		return nil, apperrors.ErrInvalidEntity
	}

	rule, err := s.GetRuleByID(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		oldOrigin := rule.OriginQBAccount
		oldOpenHaul := rule.OpenHaulQBAccount
		oldPersonal := rule.PersonalQBAccount

		if patch.EntityDefault != nil {
			rule.EntityDefault = *patch.EntityDefault
		}
		if patch.SheetsRowID != nil {
			rule.SheetsRowID = patch.SheetsRowID
		}
		applyText(&rule.OriginQBAccount, patch.OriginQBAccount)
		applyText(&rule.OpenHaulQBAccount, patch.OpenHaulQBAccount)
		applyText(&rule.PersonalQBAccount, patch.PersonalQBAccount)
		applyText(&rule.Notes, patch.Notes)

		if err := tx.Save(rule).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		mappingChanged := !strPtrEqual(oldOrigin, rule.OriginQBAccount) ||
			!strPtrEqual(oldOpenHaul, rule.OpenHaulQBAccount) ||
			!strPtrEqual(oldPersonal, rule.PersonalQBAccount)
		if !mappingChanged {
			return nil
		}

		changed, err := s.recomputer.RecomputeForRule(tx, rule, 1)
		if err != nil {
			return err
		}
		logger.Get().Infow("rule mapping change cascaded",
			"merchant", rule.Merchant,
			"changed", changed,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rule, nil
}
