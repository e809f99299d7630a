package service

import (
	"os"
	"path/filepath"
	"testing"

	"microblog/database"
	"microblog/logger"

	"github.com/op/go-logging"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.InitLogger(logging.ERROR, "")
	os.Exit(m.Run())
}

// setupDB creates a fresh database for one test, mirroring the production
// schema including the enabled foreign key enforcement.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// mustRegister creates a confirmed user and returns it.
func mustRegister(t *testing.T, db *gorm.DB, username, password, email string) int {
	t.Helper()
	account, err := NewRegistrationService(db).Register(username, password, email, false, "")
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return account.User.Id
}
