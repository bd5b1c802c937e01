package services

import (
	"testing"

	"patrimonio/internal/models"
	"patrimonio/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)
	user := testutil.CreateTestProfile(t, db)

	svc.Log(user.ID, "DELETE_ASSET", "asset", "a1", "127.0.0.1", map[string]interface{}{"name": "TV"})
	svc.Log(user.ID, "LOGOUT", "profile", user.ID, "127.0.0.1", nil)

	var entries []models.AuditLog
	testutil.AssertNoError(t, db.Where("user_id = ?", user.ID).Order("action ASC").Find(&entries).Error)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Changes != `{"name":"TV"}` {
		t.Errorf("unexpected changes: %s", entries[0].Changes)
	}
	if entries[1].Changes != "" {
		t.Errorf("expected no changes, got %s", entries[1].Changes)
	}
}
