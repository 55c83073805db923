package services

import (
	"testing"

	"ledgersync/internal/testutil"
)

func TestCreateAlias(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		aliasSvc := NewAliasService(db)

		alias, err := aliasSvc.CreateAlias("COSTCO WHSE #0482", "Costco", nil, nil)
		testutil.AssertNoError(t, err)

		if alias.RawNormalized != "costco whse #0482" {
			t.Errorf("expected normalized raw merchant, got %q", alias.RawNormalized)
		}
	})

	t.Run("duplicate_raw_merchant", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		aliasSvc := NewAliasService(db)

		_, err := aliasSvc.CreateAlias("COSTCO WHSE #0482", "Costco", nil, nil)
		testutil.AssertNoError(t, err)

		_, err = aliasSvc.CreateAlias("costco whse #0482", "Costco Wholesale", nil, nil)
		testutil.AssertAppError(t, err, "DUPLICATE_ALIAS")
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		aliasSvc := NewAliasService(db)

		_, err := aliasSvc.CreateAlias("", "Costco", nil, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = aliasSvc.CreateAlias("COSTCO WHSE", "", nil, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestStandardize(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	aliasSvc := NewAliasService(db)
	testutil.CreateTestAlias(t, db, "COSTCO WHSE #0482", "Costco")

	t.Run("hit", func(t *testing.T) {
		got, err := aliasSvc.Standardize(db, "  costco whse #0482 ")
		testutil.AssertNoError(t, err)
		if got != "Costco" {
			t.Errorf("expected Costco, got %q", got)
		}
	})

	t.Run("miss_returns_input", func(t *testing.T) {
		got, err := aliasSvc.Standardize(db, "Shell Oil 123")
		testutil.AssertNoError(t, err)
		if got != "Shell Oil 123" {
			t.Errorf("expected input unchanged, got %q", got)
		}
	})

	t.Run("blank_returns_input", func(t *testing.T) {
		got, err := aliasSvc.Standardize(db, "   ")
		testutil.AssertNoError(t, err)
		if got != "   " {
			t.Errorf("expected input unchanged, got %q", got)
		}
	})
}
