package models

import "testing"

func TestParseEntity(t *testing.T) {
	tests := []struct {
		in   string
		want Entity
		ok   bool
	}{
		{"Origin", EntityOrigin, true},
		{"origin", EntityOrigin, true},
		{"  OPENHAUL  ", EntityOpenHaul, true},
		{"personal", EntityPersonal, true},
		{"split", EntitySplit, true},
		{"needs review", EntityNeedsReview, true},
		{"", "", false},
		{"Subsidiary", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseEntity(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseEntity(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestEntityIsValid(t *testing.T) {
	for _, entity := range Entities {
		if !entity.IsValid() {
			t.Errorf("%q should be valid", entity)
		}
	}
	if Entity("Subsidiary").IsValid() {
		t.Error("unknown entity should be invalid")
	}
	if Entity("").IsValid() {
		t.Error("empty entity should be invalid")
	}
}

func TestNormalizeMerchant(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Costco", "costco"},
		{"  COSTCO  ", "costco"},
		{"", ""},
		{"   ", ""},
		{"Trader Joe's", "trader joe's"},
	}

	for _, tt := range tests {
		if got := NormalizeMerchant(tt.in); got != tt.want {
			t.Errorf("NormalizeMerchant(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
