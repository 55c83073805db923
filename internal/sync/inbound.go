package sync

import (
	"context"
	"errors"
	"time"

	apperrors "ledgersync/internal/errors"
	"ledgersync/internal/logger"
	"ledgersync/internal/models"
	"ledgersync/internal/services"
	"ledgersync/internal/sheets"
)

// CellEdit is a single-cell edit event forwarded from the spreadsheet.
type CellEdit struct {
	Sheet  string `json:"sheet" binding:"required"`
	Row    int64  `json:"row" binding:"required,min=2"`
	Column string `json:"column" binding:"required"`
	Value  string `json:"value"`
}

// transactionColumns maps All Transactions header names to patchable
// transaction fields. Computed columns (Status, QB Account) are absent on
// purpose: an edit to them can never reach the database.
var transactionColumns = map[string]string{
	"Date":         "date",
	"Raw Merchant": "raw_merchant",
	"Std Merchant": "merchant",
	"Amount":       "amount",
	"Entity":       "entity",
	"Account Used": "source_account",
	"Card #":       "card_number",
	"Notes":        "notes",
}

// ruleColumns maps Merchant Rules header names to patchable rule fields.
// The counter columns are absent for the same reason, and Merchant is
// handled separately because it is the rule's identity.
var ruleColumns = map[string]string{
	"Current Entity":       "entity_default",
	"Origin QBO Account":   "origin_qb_account",
	"OpenHaul QBO Account": "openhaul_qb_account",
	"Personal QBO Account": "personal_qb_account",
	"Notes":                "notes",
}

const ruleMerchantColumn = "Merchant"

// Inbound translates cell-edit events into targeted updates against the
// record a sheet row is linked to, creating and linking the record when the
// row is new.
type Inbound struct {
	transactions services.TransactionServicer
	rules        services.RuleServicer
	client       sheets.Client
	layout       Layout
}

// NewInbound creates an inbound adapter.
func NewInbound(transactions services.TransactionServicer, rules services.RuleServicer, client sheets.Client, layout Layout) *Inbound {
	return &Inbound{transactions: transactions, rules: rules, client: client, layout: layout}
}

// Apply routes one edit event. Unmapped sheets and columns are silently
// ignored (logged), so the spreadsheet can carry columns the database does
// not know about.
func (a *Inbound) Apply(ctx context.Context, edit CellEdit) error {
	switch edit.Sheet {
	case a.layout.TransactionsSheet:
		return a.applyTransactionEdit(ctx, edit)
	case a.layout.RulesSheet:
		return a.applyRuleEdit(ctx, edit)
	default:
		logger.Get().Infow("ignoring edit on unmapped sheet", "sheet", edit.Sheet)
		return nil
	}
}

func (a *Inbound) applyTransactionEdit(ctx context.Context, edit CellEdit) error {
	field, mapped := transactionColumns[edit.Column]
	if !mapped {
		logger.Get().Infow("ignoring edit on unmapped column",
			"sheet", edit.Sheet, "column", edit.Column)
		return nil
	}

	existing, err := a.transactions.GetTransactionBySheetsRow(edit.Row)
	if err != nil {
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			return err
		}
		return a.createTransactionFromEdit(ctx, edit, field)
	}

	patch, err := transactionPatchFor(field, edit.Value)
	if err != nil {
		return err
	}
	_, err = a.transactions.UpdateTransaction(existing.ID, patch)
	return err
}

// createTransactionFromEdit creates a record for a brand-new sheet row and
// writes the generated ID back into the row's ID cell so a human can trace
// it. A write-back failure is logged but does not undo the creation; the
// row stays linked through its row reference.
func (a *Inbound) createTransactionFromEdit(ctx context.Context, edit CellEdit, field string) error {
	input := services.TransactionInput{
		Date:        time.Now(),
		Entity:      models.EntityNeedsReview,
		SheetsRowID: &edit.Row,
	}
	if err := seedTransactionInput(&input, field, edit.Value); err != nil {
		return err
	}

	created, err := a.transactions.CreateTransaction(input)
	if err != nil {
		return err
	}

	cell := sheets.CellUpdate{
		Sheet:  a.layout.TransactionsSheet,
		Row:    edit.Row,
		Column: a.layout.TransactionIDColumn,
		Value:  created.ID,
	}
	if err := a.client.UpdateCell(ctx, cell); err != nil {
		logger.Get().Errorw("failed to write transaction ID back to sheet",
			"row", edit.Row, "error", err)
	}
	return nil
}

func (a *Inbound) applyRuleEdit(ctx context.Context, edit CellEdit) error {
	if edit.Column == ruleMerchantColumn {
		return a.applyRuleMerchantEdit(ctx, edit)
	}

	field, mapped := ruleColumns[edit.Column]
	if !mapped {
		logger.Get().Infow("ignoring edit on unmapped column",
			"sheet", edit.Sheet, "column", edit.Column)
		return nil
	}

	existing, err := a.rules.GetRuleBySheetsRow(edit.Row)
	if err != nil {
		if !errors.Is(err, apperrors.ErrRuleNotFound) {
			return err
		}
		// A new rule row needs its Merchant cell filled in before any
		// other column can land; there is no identity to attach to yet.
		logger.Get().Warnw("ignoring edit on rule row with no merchant",
			"row", edit.Row, "column", edit.Column)
		return nil
	}

	patch, err := rulePatchFor(field, edit.Value)
	if err != nil {
		return err
	}
	_, err = a.rules.UpdateRule(existing.ID, patch)
	return err
}

// applyRuleMerchantEdit creates a rule when the Merchant cell of an
// unlinked row is filled in. Renaming the merchant of an existing rule is
// not supported; the merchant is the rule's identity.
func (a *Inbound) applyRuleMerchantEdit(ctx context.Context, edit CellEdit) error {
	if _, err := a.rules.GetRuleBySheetsRow(edit.Row); err == nil {
		logger.Get().Warnw("ignoring merchant rename on existing rule", "row", edit.Row)
		return nil
	} else if !errors.Is(err, apperrors.ErrRuleNotFound) {
		return err
	}

	created, err := a.rules.CreateRule(services.RuleInput{
		Merchant:    edit.Value,
		SheetsRowID: &edit.Row,
	})
	if err != nil {
		return err
	}

	cell := sheets.CellUpdate{
		Sheet:  a.layout.RulesSheet,
		Row:    edit.Row,
		Column: a.layout.RuleIDColumn,
		Value:  created.ID,
	}
	if err := a.client.UpdateCell(ctx, cell); err != nil {
		logger.Get().Errorw("failed to write rule ID back to sheet",
			"row", edit.Row, "error", err)
	}
	return nil
}

// transactionPatchFor builds a single-field patch from a cell value.
func transactionPatchFor(field, value string) (services.TransactionPatch, error) {
	var patch services.TransactionPatch
	switch field {
	case "date":
		date, err := sheets.ParseDate(value)
		if err != nil {
			return patch, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		patch.Date = &date
	case "amount":
		cents := sheets.ParseAmountCents(value)
		patch.AmountCents = &cents
	case "entity":
		entity, ok := models.ParseEntity(value)
		if !ok {
			return patch, apperrors.ErrInvalidEntity
		}
		patch.Entity = &entity
	case "raw_merchant":
		patch.RawMerchant = &value
	case "merchant":
		patch.Merchant = &value
	case "source_account":
		patch.SourceAccount = &value
	case "card_number":
		patch.CardNumber = &value
	case "notes":
		patch.Notes = &value
	}
	return patch, nil
}

// seedTransactionInput applies the triggering cell value to a fresh
// transaction input.
func seedTransactionInput(input *services.TransactionInput, field, value string) error {
	patch, err := transactionPatchFor(field, value)
	if err != nil {
		return err
	}
	if patch.Date != nil {
		input.Date = *patch.Date
	}
	if patch.AmountCents != nil {
		input.AmountCents = *patch.AmountCents
	}
	if patch.Entity != nil {
		input.Entity = *patch.Entity
	}
	input.RawMerchant = patch.RawMerchant
	input.Merchant = patch.Merchant
	input.SourceAccount = patch.SourceAccount
	input.CardNumber = patch.CardNumber
	input.Notes = patch.Notes
	return nil
}

// rulePatchFor builds a single-field patch from a cell value.
func rulePatchFor(field, value string) (services.RulePatch, error) {
	var patch services.RulePatch
	switch field {
	case "entity_default":
		entity, ok := models.ParseEntity(value)
		if !ok {
			return patch, apperrors.ErrInvalidEntity
		}
		patch.EntityDefault = &entity
	case "origin_qb_account":
		patch.OriginQBAccount = &value
	case "openhaul_qb_account":
		patch.OpenHaulQBAccount = &value
	case "personal_qb_account":
		patch.PersonalQBAccount = &value
	case "notes":
		patch.Notes = &value
	}
	return patch, nil
}
