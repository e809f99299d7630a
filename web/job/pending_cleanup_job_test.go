package job

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"microblog/database"
	"microblog/database/model"
	"microblog/logger"
	"microblog/web/service"

	"github.com/op/go-logging"
)

func TestMain(m *testing.M) {
	logger.InitLogger(logging.ERROR, "")
	os.Exit(m.Run())
}

func TestPendingCleanupJob(t *testing.T) {
	db, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	registration := service.NewRegistrationService(db)

	if _, err := registration.Register("stale", "pw", "stale@example.com", true, ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := registration.Register("fresh", "pw", "fresh@example.com", true, ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	backdated := time.Now().UTC().Add(-80 * time.Hour)
	if err := db.Model(&model.TempUser{}).Where("username = ?", "stale").Update("created_at", backdated).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	NewPendingCleanupJob(registration, 72*time.Hour).Run()

	var remaining []model.TempUser
	if err := db.Find(&remaining).Error; err != nil {
		t.Fatalf("query pending: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Username != "fresh" {
		t.Errorf("remaining = %+v, want only the fresh registration", remaining)
	}
}
