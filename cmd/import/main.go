// Command import seeds the database from the live workbook: it reads the
// Merchant Alias, All Transactions and Merchant Rules worksheets and creates
// the corresponding records, stamping each with its sheet row reference and a
// sync timestamp so imported rows start out clean.
//
// Aliases load first so transactions standardize on the way in. Rules load
// last, after every transaction exists, so the counters seeded from the
// sheet's running totals are not double-counted by the aggregate path.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"ledgersync/internal/config"
	"ledgersync/internal/database"
	"ledgersync/internal/logger"
	"ledgersync/internal/models"
	"ledgersync/internal/services"
	"ledgersync/internal/sheets"
	syncpkg "ledgersync/internal/sync"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Import error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	ctx := context.Background()
	client, err := sheets.NewGoogleClient(ctx, appConfig.SpreadsheetID, appConfig.ServiceAccountJSON)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}

	db := dbManager.DB()
	aliasService := services.NewAliasService(db)
	transactionService := services.NewTransactionService(db, aliasService)
	ruleService := services.NewRuleService(db, transactionService)

	layout := syncpkg.DefaultLayout()

	aliases, err := importAliases(ctx, client, layout.AliasSheet, aliasService)
	if err != nil {
		return err
	}
	log.Infof("Imported %d merchant aliases", aliases)

	transactions, err := importTransactions(ctx, client, layout.TransactionsSheet, transactionService)
	if err != nil {
		return err
	}
	log.Infof("Imported %d transactions", transactions)

	rules, err := importRules(ctx, client, layout.RulesSheet, ruleService)
	if err != nil {
		return err
	}
	log.Infof("Imported %d merchant rules", rules)

	return nil
}

func importAliases(ctx context.Context, client sheets.Client, sheet string, svc services.AliasServicer) (int, error) {
	rows, err := client.ReadRows(ctx, sheet)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, row := range rows {
		raw := row.Values["Raw Merchant"]
		std := row.Values["Std Merchant"]
		if raw == "" || std == "" {
			continue
		}

		if _, err := svc.CreateAlias(raw, std, optional(row.Values["Source"]), optional(row.Values["Notes"])); err != nil {
			logger.Get().Warnw("skipping alias row", "row", row.Number, "error", err)
			continue
		}
		imported++
	}
	return imported, nil
}

func importTransactions(ctx context.Context, client sheets.Client, sheet string, svc services.TransactionServicer) (int, error) {
	rows, err := client.ReadRows(ctx, sheet)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	imported := 0
	for _, row := range rows {
		date, err := sheets.ParseDate(row.Values["Date"])
		if err != nil {
			logger.Get().Warnw("skipping transaction row with bad date",
				"row", row.Number, "date", row.Values["Date"])
			continue
		}

		rowID := row.Number
		input := services.TransactionInput{
			Date:           date,
			RawMerchant:    optional(row.Values["Raw Merchant"]),
			Merchant:       optional(row.Values["Std Merchant"]),
			AmountCents:    sheets.ParseAmountCents(row.Values["Amount"]),
			SourceAccount:  optional(row.Values["Account Used"]),
			CardNumber:     optional(row.Values["Card #"]),
			Notes:          optional(row.Values["Notes"]),
			SheetsRowID:    &rowID,
			SheetsSyncedAt: &now,
		}
		if entity, ok := models.ParseEntity(row.Values["Entity"]); ok {
			input.Entity = entity
		}

		if _, err := svc.CreateTransaction(input); err != nil {
			logger.Get().Warnw("skipping transaction row", "row", row.Number, "error", err)
			continue
		}
		imported++
	}
	return imported, nil
}

func importRules(ctx context.Context, client sheets.Client, sheet string, svc services.RuleServicer) (int, error) {
	rows, err := client.ReadRows(ctx, sheet)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	imported := 0
	for _, row := range rows {
		merchant := row.Values["Merchant"]
		if merchant == "" {
			continue
		}

		rowID := row.Number
		input := services.RuleInput{
			Merchant:          merchant,
			OriginQBAccount:   optional(row.Values["Origin QBO Account"]),
			OpenHaulQBAccount: optional(row.Values["OpenHaul QBO Account"]),
			PersonalQBAccount: optional(row.Values["Personal QBO Account"]),
			Notes:             optional(row.Values["Notes"]),
			TxnCount:          sheets.ParseTxnCount(row.Values["Txn Count"]),
			TxnTotalCents:     sheets.ParseAmountCents(row.Values["Txn Total"]),
			SheetsRowID:       &rowID,
			SheetsSyncedAt:    &now,
		}
		if entity, ok := models.ParseEntity(row.Values["Current Entity"]); ok {
			input.EntityDefault = entity
		}

		if _, err := svc.CreateRule(input); err != nil {
			logger.Get().Warnw("skipping rule row", "row", row.Number, "error", err)
			continue
		}
		imported++
	}
	return imported, nil
}

// optional turns an empty cell into a nil pointer.
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
