// Package sync reconciles the database with the team spreadsheet: the
// inbound adapter applies single-cell edits to the record each sheet row is
// linked to, and the outbound batcher writes dirty computed columns back.
package sync

// Layout names the worksheets and the columns the sync layer touches. Only
// computed columns and the ID columns appear here; team-owned columns are
// reached through the inbound column maps and are never written by sync.
type Layout struct {
	TransactionsSheet string
	RulesSheet        string
	AliasSheet        string

	// Computed columns written by the outbound batcher.
	TransactionStatusColumn  string
	TransactionAccountColumn string
	RuleCountColumn          string
	RuleTotalColumn          string

	// ID columns written once when a brand-new sheet row is linked.
	TransactionIDColumn string
	RuleIDColumn        string
}

// DefaultLayout matches the workbook the bookkeeping team uses.
func DefaultLayout() Layout {
	return Layout{
		TransactionsSheet:        "All Transactions",
		RulesSheet:               "Merchant Rules",
		AliasSheet:               "Merchant Alias",
		TransactionStatusColumn:  "A",
		TransactionAccountColumn: "F",
		RuleCountColumn:          "F",
		RuleTotalColumn:          "G",
		TransactionIDColumn:      "N",
		RuleIDColumn:             "H",
	}
}
