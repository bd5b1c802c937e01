package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/models"
)

type stubProfiles struct {
	profile *models.Profile
	err     error
}

func (s stubProfiles) GetProfileByID(string) (*models.Profile, error) {
	return s.profile, s.err
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var result struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to parse body %q: %v", body, err)
	}
	return result.Error.Code
}

func TestReadOnlyGuard(t *testing.T) {
	viewer, _ := GenerateAccessToken(testProfile(models.RoleViewer))
	editor, _ := GenerateAccessToken(testProfile(models.RoleEditor))
	r := protectedRouter(ReadOnlyGuard())

	t.Run("viewer can read", func(t *testing.T) {
		rec := serve(r, http.MethodGet, "/resource", "Bearer "+viewer)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("viewer cannot write", func(t *testing.T) {
		rec := serve(r, http.MethodPost, "/resource", "Bearer "+viewer)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		if code := errorCode(t, rec.Body.Bytes()); code != "READ_ONLY_PROFILE" {
			t.Errorf("expected READ_ONLY_PROFILE, got %s", code)
		}
	})

	t.Run("editor can write", func(t *testing.T) {
		rec := serve(r, http.MethodPost, "/resource", "Bearer "+editor)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	admin, _ := GenerateAccessToken(testProfile(models.RoleAdmin))
	editor, _ := GenerateAccessToken(testProfile(models.RoleEditor))
	r := protectedRouter(RequireRole(models.RoleAdmin))

	if rec := serve(r, http.MethodGet, "/resource", "Bearer "+admin); rec.Code != http.StatusOK {
		t.Errorf("admin: expected 200, got %d", rec.Code)
	}
	rec := serve(r, http.MethodGet, "/resource", "Bearer "+editor)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("editor: expected 403, got %d", rec.Code)
	}
	if code := errorCode(t, rec.Body.Bytes()); code != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN, got %s", code)
	}
}

func TestCurrentRole(t *testing.T) {
	editor, _ := GenerateAccessToken(testProfile(models.RoleEditor))
	admin, _ := GenerateAccessToken(testProfile(models.RoleAdmin))

	t.Run("stored role overrides the token", func(t *testing.T) {
		r := protectedRouter(CurrentRole(stubProfiles{profile: testProfile(models.RoleViewer)}), ReadOnlyGuard())
		rec := serve(r, http.MethodPost, "/resource", "Bearer "+editor)
		if rec.Code != http.StatusForbidden || errorCode(t, rec.Body.Bytes()) != "READ_ONLY_PROFILE" {
			t.Fatalf("expected READ_ONLY_PROFILE, got %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("demoted admin loses admin routes", func(t *testing.T) {
		r := protectedRouter(CurrentRole(stubProfiles{profile: testProfile(models.RoleEditor)}), RequireRole(models.RoleAdmin))
		if rec := serve(r, http.MethodGet, "/resource", "Bearer "+admin); rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("promotion applies too", func(t *testing.T) {
		r := protectedRouter(CurrentRole(stubProfiles{profile: testProfile(models.RoleAdmin)}), RequireRole(models.RoleAdmin))
		if rec := serve(r, http.MethodGet, "/resource", "Bearer "+editor); rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("deleted profile is unauthorized", func(t *testing.T) {
		r := protectedRouter(CurrentRole(stubProfiles{err: apperrors.ErrProfileNotFound}))
		rec := serve(r, http.MethodGet, "/resource", "Bearer "+editor)
		if rec.Code != http.StatusUnauthorized || errorCode(t, rec.Body.Bytes()) != "UNAUTHORIZED" {
			t.Fatalf("expected UNAUTHORIZED, got %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("lookup failure is an internal error", func(t *testing.T) {
		r := protectedRouter(CurrentRole(stubProfiles{err: apperrors.Wrap(apperrors.ErrInternalServer, errors.New("db down"))}))
		if rec := serve(r, http.MethodGet, "/resource", "Bearer "+editor); rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}
