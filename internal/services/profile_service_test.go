package services

import (
	"testing"

	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
	"patrimonio/internal/testutil"
)

func TestCreateProfile(t *testing.T) {
	t.Run("first_profile_is_admin", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db)

		first, err := svc.CreateProfile("Ana@Example.com", "secret123", "Ana")
		testutil.AssertNoError(t, err)
		second, err := svc.CreateProfile("bruno@example.com", "secret123", "Bruno")
		testutil.AssertNoError(t, err)

		if first.Role != models.RoleAdmin {
			t.Errorf("expected first profile to be admin, got %s", first.Role)
		}
		if second.Role != models.RoleEditor {
			t.Errorf("expected second profile to be editor, got %s", second.Role)
		}
		if first.Email != "ana@example.com" {
			t.Errorf("expected lower-cased email, got %s", first.Email)
		}
		if first.Password == "secret123" {
			t.Error("password should be hashed")
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db)

		_, err := svc.CreateProfile("dup@example.com", "secret123", "One")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateProfile("DUP@example.com", "secret123", "Two")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("missing_credentials", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db)

		_, err := svc.CreateProfile("", "secret123", "Nobody")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("name_defaults_to_email_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db)

		profile, err := svc.CreateProfile("carla@example.com", "secret123", " ")
		testutil.AssertNoError(t, err)
		if profile.Name != "carla" {
			t.Errorf("expected name carla, got %q", profile.Name)
		}
	})
}

func TestAttemptLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db)
	existing := testutil.CreateTestProfile(t, db)

	t.Run("valid_credentials", func(t *testing.T) {
		profile, err := svc.AttemptLogin(existing.Email, testutil.TestPassword)
		testutil.AssertNoError(t, err)
		if profile.ID != existing.ID {
			t.Errorf("expected profile %s, got %s", existing.ID, profile.ID)
		}
		if profile.LastLoginAt == nil {
			t.Error("expected last login to be stamped")
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := svc.AttemptLogin(existing.Email, "wrong")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_email", func(t *testing.T) {
		_, err := svc.AttemptLogin("ghost@test.com", testutil.TestPassword)
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestRefreshTokenHash(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db)
	profile := testutil.CreateTestProfile(t, db)

	testutil.AssertNoError(t, svc.StoreRefreshTokenHash(profile.ID, "abc123"))
	hash, err := svc.GetRefreshTokenHash(profile.ID)
	testutil.AssertNoError(t, err)
	if hash != "abc123" {
		t.Errorf("expected abc123, got %s", hash)
	}

	err = svc.StoreRefreshTokenHash("00000000-0000-0000-0000-000000000000", "x")
	testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
}

func TestUpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db)
	profile := testutil.CreateTestProfile(t, db)

	t.Run("sets_name_and_avatar", func(t *testing.T) {
		updated, err := svc.UpdateProfile(profile.ID, ProfileUpdateFields{
			Name:      testutil.String("Novo Nome"),
			AvatarURL: testutil.String("https://example.com/a.png"),
		})
		testutil.AssertNoError(t, err)
		if updated.Name != "Novo Nome" || updated.AvatarURL == nil || *updated.AvatarURL != "https://example.com/a.png" {
			t.Errorf("unexpected profile: %+v", updated)
		}
	})

	t.Run("empty_avatar_clears_it", func(t *testing.T) {
		updated, err := svc.UpdateProfile(profile.ID, ProfileUpdateFields{AvatarURL: testutil.String("")})
		testutil.AssertNoError(t, err)
		if updated.AvatarURL != nil {
			t.Errorf("expected avatar cleared, got %v", *updated.AvatarURL)
		}
	})

	t.Run("empty_name_rejected", func(t *testing.T) {
		_, err := svc.UpdateProfile(profile.ID, ProfileUpdateFields{Name: testutil.String("  ")})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateRoleAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db)
	a := testutil.CreateTestProfile(t, db)
	testutil.CreateTestProfile(t, db)

	updated, err := svc.UpdateRole(a.ID, models.RoleViewer)
	testutil.AssertNoError(t, err)
	if updated.Role != models.RoleViewer {
		t.Errorf("expected viewer, got %s", updated.Role)
	}

	page, err := svc.ListProfiles(pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if page.TotalItems != 2 || len(page.Data) != 2 {
		t.Errorf("expected 2 profiles, got %d", page.TotalItems)
	}
}
