package service

import (
	"testing"
	"time"

	"microblog/database/model"
	"microblog/util/common"
)

func containsMessage(messages []string, want string) bool {
	for _, msg := range messages {
		if msg == want {
			return true
		}
	}
	return false
}

func TestRegisterMissingFieldsCollected(t *testing.T) {
	db := setupDB(t)
	registration := NewRegistrationService(db)

	_, err := registration.Register("", "", "", true, "")
	if err == nil {
		t.Fatal("expected a validation error")
	}
	verr, ok := common.AsValidationError(err)
	if !ok {
		t.Fatalf("expected a validation error, got %v", err)
	}
	want := []string{MsgMissingUsername, MsgMissingPassword, MsgMissingEmail}
	if len(verr.Messages) != len(want) {
		t.Fatalf("messages = %v, want all of %v", verr.Messages, want)
	}
	for _, msg := range want {
		if !containsMessage(verr.Messages, msg) {
			t.Errorf("messages %v missing %q", verr.Messages, msg)
		}
	}
}

func TestRegisterTakenUsername(t *testing.T) {
	db := setupDB(t)
	registration := NewRegistrationService(db)
	mustRegister(t, db, "alice", "pw", "alice@example.com")

	_, err := registration.Register("alice", "pw", "other@example.com", true, "")
	verr, ok := common.AsValidationError(err)
	if !ok {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if !containsMessage(verr.Messages, MsgUsernameTaken) {
		t.Errorf("messages %v missing %q", verr.Messages, MsgUsernameTaken)
	}

	var tempCount int64
	db.Model(&model.TempUser{}).Count(&tempCount)
	if tempCount != 0 {
		t.Errorf("no pending row should have been added, got %d", tempCount)
	}
	var userCount int64
	db.Model(&model.User{}).Count(&userCount)
	if userCount != 1 {
		t.Errorf("no user row should have been added, got %d", userCount)
	}
}

func TestRegisterCollectsAllUniquenessViolations(t *testing.T) {
	db := setupDB(t)
	registration := NewRegistrationService(db)

	// A pending registration also blocks the username and email.
	if _, err := registration.Register("bob", "pw", "bob@example.com", true, ""); err != nil {
		t.Fatalf("register pending: %v", err)
	}

	_, err := registration.Register("bob", "pw", "bob@example.com", true, "")
	verr, ok := common.AsValidationError(err)
	if !ok {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if !containsMessage(verr.Messages, MsgUsernameTaken) {
		t.Errorf("messages %v missing %q", verr.Messages, MsgUsernameTaken)
	}
	if !containsMessage(verr.Messages, MsgEmailInUse) {
		t.Errorf("messages %v missing %q", verr.Messages, MsgEmailInUse)
	}
}

func TestForcedKeyCollisionRetried(t *testing.T) {
	db := setupDB(t)
	registration := NewRegistrationService(db)
	forced := "FORCEDKEYFORCEDKEYFORCEDKEYFORCE"

	first, err := registration.Register("carol", "pw", "carol@example.com", true, forced)
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	if first.Pending.Regkey != forced {
		t.Errorf("first regkey = %q, want the forced key", first.Pending.Regkey)
	}

	second, err := registration.Register("dave", "pw", "dave@example.com", true, forced)
	if err != nil {
		t.Fatalf("second register with colliding key: %v", err)
	}
	if second.Pending.Regkey == forced {
		t.Error("collision was not retried with a fresh key")
	}
	if len(second.Pending.Regkey) != model.RegkeyLength {
		t.Errorf("regenerated key length = %d, want %d", len(second.Pending.Regkey), model.RegkeyLength)
	}

	var count int64
	db.Model(&model.TempUser{}).Count(&count)
	if count != 2 {
		t.Errorf("expected both pending rows persisted, got %d", count)
	}
}

func TestConfirmPromotesPendingAccount(t *testing.T) {
	db := setupDB(t)
	registration := NewRegistrationService(db)
	users := NewUserService(db)

	account, err := registration.Register("erin", "pw", "erin@example.com", true, "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(account.Pending.Regkey) != model.RegkeyLength {
		t.Fatalf("regkey length = %d, want %d", len(account.Pending.Regkey), model.RegkeyLength)
	}

	// Unconfirmed accounts cannot log in yet.
	if _, err := users.Authenticate("erin", "pw"); err != common.ErrUnconfirmedUser {
		t.Errorf("authenticate before confirm: %v, want %v", err, common.ErrUnconfirmedUser)
	}

	user, err := registration.Confirm(account.Pending.Regkey)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if user == nil || user.Username != "erin" {
		t.Fatalf("confirm returned %+v", user)
	}

	var tempCount int64
	db.Model(&model.TempUser{}).Count(&tempCount)
	if tempCount != 0 {
		t.Errorf("pending row should be gone, got %d", tempCount)
	}

	// The promoted password digest still verifies.
	if _, err := users.Authenticate("erin", "pw"); err != nil {
		t.Errorf("authenticate after confirm: %v", err)
	}

	// A spent key is a no-op.
	again, err := registration.Confirm(account.Pending.Regkey)
	if err != nil {
		t.Fatalf("second confirm: %v", err)
	}
	if again != nil {
		t.Errorf("second confirm returned %+v, want nil", again)
	}
}

func TestConfirmUnknownKeyIsNoop(t *testing.T) {
	db := setupDB(t)
	registration := NewRegistrationService(db)

	user, err := registration.Confirm("nosuchkey")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if user != nil {
		t.Errorf("confirm returned %+v, want nil", user)
	}
}

func TestPurgePending(t *testing.T) {
	db := setupDB(t)
	registration := NewRegistrationService(db)

	if _, err := registration.Register("frank", "pw", "frank@example.com", true, ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := registration.Register("grace", "pw", "grace@example.com", true, ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Age one registration past the retention window.
	stale := time.Now().UTC().Add(-48 * time.Hour)
	if err := db.Model(&model.TempUser{}).Where("username = ?", "frank").Update("created_at", stale).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	dropped, err := registration.PurgePending(24 * time.Hour)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}

	var remaining int64
	db.Model(&model.TempUser{}).Count(&remaining)
	if remaining != 1 {
		t.Errorf("remaining pending rows = %d, want 1", remaining)
	}
}
