package services

import (
	"time"

	"gorm.io/gorm"

	"ledgersync/internal/models"
	"ledgersync/internal/pagination"
)

// TransactionInput holds the fields accepted when creating a transaction.
// QB account and status are computed and deliberately absent. SheetsSyncedAt
// is only supplied by the bulk importer for rows that already exist in the
// worksheet and therefore start out clean.
type TransactionInput struct {
	Date           time.Time
	RawMerchant    *string
	Merchant       *string
	Description    *string
	AmountCents    int64
	Entity         models.Entity
	SourceAccount  *string
	CardNumber     *string
	Notes          *string
	SheetsRowID    *int64
	SheetsSyncedAt *time.Time
}

// TransactionPatch holds optional updates to team-owned transaction fields.
// A nil pointer means "leave unchanged"; an empty string clears a nullable
// text column.
type TransactionPatch struct {
	Date          *time.Time
	RawMerchant   *string
	Merchant      *string
	Description   *string
	AmountCents   *int64
	Entity        *models.Entity
	SourceAccount *string
	CardNumber    *string
	Notes         *string
	SheetsRowID   *int64
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Entity   *models.Entity
	Status   *models.TransactionStatus
	Merchant *string
	Dirty    *bool
	FromDate *time.Time
	ToDate   *time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(input TransactionInput) (*models.Transaction, error)
	GetTransactionByID(id string) (*models.Transaction, error)
	GetTransactionBySheetsRow(row int64) (*models.Transaction, error)
	ListTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	UpdateTransaction(id string, patch TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(id string) error
	RecomputeForRule(tx *gorm.DB, rule *models.MerchantRule, depth int) (int64, error)
}

// TransactionRecomputer is the narrow surface the rule service needs to fan
// a rule change out to the affected transactions.
type TransactionRecomputer interface {
	RecomputeForRule(tx *gorm.DB, rule *models.MerchantRule, depth int) (int64, error)
}

// RuleInput holds the fields accepted when creating a merchant rule.
// The counters are only supplied by the bulk importer, which seeds them from
// the worksheet's running totals.
type RuleInput struct {
	Merchant          string
	EntityDefault     models.Entity
	OriginQBAccount   *string
	OpenHaulQBAccount *string
	PersonalQBAccount *string
	Notes             *string
	TxnCount          int64
	TxnTotalCents     int64
	SheetsRowID       *int64
	SheetsSyncedAt    *time.Time
}

// RulePatch holds optional updates to team-owned rule fields. The merchant
// display name is the rule's identity and is not patchable; counters are
// maintained exclusively by the aggregate path.
type RulePatch struct {
	EntityDefault     *models.Entity
	OriginQBAccount   *string
	OpenHaulQBAccount *string
	PersonalQBAccount *string
	Notes             *string
	SheetsRowID       *int64
}

// RuleFilter holds optional filter parameters for listing merchant rules.
type RuleFilter struct {
	Merchant *string
	Dirty    *bool
}

// RuleServicer defines the contract for merchant-rule business logic.
type RuleServicer interface {
	CreateRule(input RuleInput) (*models.MerchantRule, error)
	GetRuleByID(id string) (*models.MerchantRule, error)
	GetRuleByMerchant(merchant string) (*models.MerchantRule, error)
	GetRuleBySheetsRow(row int64) (*models.MerchantRule, error)
	ListRules(page pagination.PageRequest, filter RuleFilter) (*pagination.PageResponse[models.MerchantRule], error)
	UpdateRule(id string, patch RulePatch) (*models.MerchantRule, error)
}

// AliasServicer defines the contract for merchant-alias business logic.
type AliasServicer interface {
	CreateAlias(rawMerchant, stdMerchant string, source, notes *string) (*models.MerchantAlias, error)
	ListAliases(page pagination.PageRequest) (*pagination.PageResponse[models.MerchantAlias], error)
	Standardize(tx *gorm.DB, rawMerchant string) (string, error)
}
