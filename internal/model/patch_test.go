package model

import (
	"testing"
)

func TestUserPatchColumnsEmpty(t *testing.T) {
	cols, vals := UserPatch{}.Columns()
	if len(cols) != 0 || len(vals) != 0 {
		t.Errorf("cols = %v, vals = %v, want empty", cols, vals)
	}
}

func TestUserPatchColumnsOrder(t *testing.T) {
	email := "a@example.com"
	last := "Rossi"
	cols, vals := UserPatch{Email: &email, LastName: &last}.Columns()

	if len(cols) != 2 {
		t.Fatalf("cols = %v, want 2 entries", cols)
	}
	if cols[0] != "email" || cols[1] != "last_name" {
		t.Errorf("cols = %v, want [email last_name]", cols)
	}
	if vals[0] != "a@example.com" || vals[1] != "Rossi" {
		t.Errorf("vals = %v", vals)
	}
}

func TestGoalPatchSkipsNil(t *testing.T) {
	reward := int64(25)
	cols, vals := GoalPatch{CoinsReward: &reward}.Columns()

	if len(cols) != 1 || cols[0] != "coins_reward" {
		t.Fatalf("cols = %v, want [coins_reward]", cols)
	}
	if vals[0] != int64(25) {
		t.Errorf("vals = %v, want [25]", vals)
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Errorf("%q should be valid", c)
		}
	}
	if Category("weekly").Valid() {
		t.Error("weekly should not be valid")
	}
	if Category("").Valid() {
		t.Error("empty category should not be valid")
	}
}

func TestDonationTypeValid(t *testing.T) {
	if !DonationTree.Valid() || !DonationProject.Valid() {
		t.Error("known types should be valid")
	}
	if DonationType("charity").Valid() {
		t.Error("charity should not be valid")
	}
}
