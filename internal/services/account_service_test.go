package services

import (
	"testing"
	"time"

	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
	"patrimonio/internal/testutil"
)

func TestCreateAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAccountService(db)
	user := testutil.CreateTestProfile(t, db)

	t.Run("success", func(t *testing.T) {
		account, err := svc.CreateAccount(user.ID, " Nubank ", models.AccountTypeChecking, 1500.75)
		testutil.AssertNoError(t, err)
		if account.ID == "" || account.Name != "Nubank" || account.Balance != 1500.75 {
			t.Errorf("unexpected account: %+v", account)
		}
	})

	t.Run("type_defaults_to_checking", func(t *testing.T) {
		account, err := svc.CreateAccount(user.ID, "Carteira", "", 0)
		testutil.AssertNoError(t, err)
		if account.Type != models.AccountTypeChecking {
			t.Errorf("expected checking, got %s", account.Type)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		_, err := svc.CreateAccount(user.ID, "  ", models.AccountTypeCash, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAccountService(db)
	user := testutil.CreateTestProfile(t, db)
	other := testutil.CreateTestProfile(t, db)
	mine := testutil.CreateTestAccount(t, db, user.ID, 10)
	theirs := testutil.CreateTestAccount(t, db, other.ID, 20)

	t.Run("lists_only_own_accounts", func(t *testing.T) {
		page, err := svc.GetUserAccounts(user.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 || page.Data[0].ID != mine.ID {
			t.Errorf("expected only own account, got %+v", page.Data)
		}
	})

	t.Run("foreign_account_not_found", func(t *testing.T) {
		_, err := svc.GetAccountByID(user.ID, theirs.ID)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestUpdateAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAccountService(db)
	user := testutil.CreateTestProfile(t, db)
	account := testutil.CreateTestAccount(t, db, user.ID, 100)

	savings := models.AccountTypeSavings
	balance := 250.5
	updated, err := svc.UpdateAccount(user.ID, account.ID, AccountUpdateFields{
		Name:    testutil.String("Poupança"),
		Type:    &savings,
		Balance: &balance,
	})
	testutil.AssertNoError(t, err)
	if updated.Name != "Poupança" || updated.Type != savings || updated.Balance != 250.5 {
		t.Errorf("unexpected account: %+v", updated)
	}

	_, err = svc.UpdateAccount(user.ID, account.ID, AccountUpdateFields{Name: testutil.String("")})
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestDeleteAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAccountService(db)
	user := testutil.CreateTestProfile(t, db)

	t.Run("unused_account", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, user.ID, 0)
		testutil.AssertNoError(t, svc.DeleteAccount(user.ID, account.ID))
		_, err := svc.GetAccountByID(user.ID, account.ID)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})

	t.Run("account_with_transactions", func(t *testing.T) {
		account := testutil.CreateTestAccount(t, db, user.ID, 0)
		testutil.CreateTestTransaction(t, db, user.ID, account.ID, models.TransactionTypeExpense, "Lazer", 10, time.Now())
		err := svc.DeleteAccount(user.ID, account.ID)
		testutil.AssertAppError(t, err, "ACCOUNT_IN_USE")
	})
}
