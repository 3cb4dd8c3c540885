package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_CanOperate(t *testing.T) {
	tests := []struct {
		name        string
		status      AccountStatus
		expectError bool
	}{
		{name: "active account operates", status: AccountStatusActive, expectError: false},
		{name: "frozen account rejected", status: AccountStatusFrozen, expectError: true},
		{name: "closed account rejected", status: AccountStatusClosed, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Status: tt.status}

			err := acc.CanOperate()

			if tt.expectError && !errors.Is(err, ErrAccountNotActive) {
				t.Errorf("expected ErrAccountNotActive, got %v", err)
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAccountType_Valid(t *testing.T) {
	if !AccountTypeChecking.Valid() || !AccountTypeSavings.Valid() {
		t.Error("expected checking and savings to be valid")
	}

	if AccountType("money_market").Valid() {
		t.Error("expected unknown type to be invalid")
	}
}

func TestAccountStatus_Valid(t *testing.T) {
	for _, s := range []AccountStatus{AccountStatusActive, AccountStatusFrozen, AccountStatusClosed} {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}

	if AccountStatus("dormant").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}

func TestBalanceOf(t *testing.T) {
	entries := []*Entry{
		{Type: EntryTypeCredit, Amount: decimal.NewFromInt(500)},
		{Type: EntryTypeDebit, Amount: decimal.NewFromInt(120)},
		{Type: EntryTypeCredit, Amount: decimal.RequireFromString("30.5000")},
	}

	got := BalanceOf(entries)
	want := decimal.RequireFromString("410.5")

	if !got.Equal(want) {
		t.Errorf("expected balance %s, got %s", want, got)
	}
}
