// Package database initializes the SQLite storage and classifies the errors
// it returns. The *gorm.DB handle is returned to the caller and passed down
// explicitly; there is no package-level database state.
package database

import (
	"errors"
	"io/fs"
	"os"
	"path"

	"microblog/config"
	"microblog/database/model"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens (or creates) the SQLite database at dbPath, applies the
// pragmas the application relies on and migrates the schema.
func InitDB(dbPath string) (*gorm.DB, error) {
	dir := path.Dir(dbPath)
	if err := os.MkdirAll(dir, fs.ModePerm); err != nil {
		return nil, err
	}

	var gormLogger logger.Interface
	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	}

	// _foreign_keys lives in the DSN so the pragma holds on every pooled
	// connection, not just the one that ran an Exec.
	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return nil, err
	}

	if err := initModels(db); err != nil {
		return nil, err
	}
	return db, nil
}

func initModels(db *gorm.DB) error {
	models := []any{
		&model.User{},
		&model.TempUser{},
		&model.Post{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return err
		}
	}
	return nil
}

// IsNotFound reports whether err is gorm's record-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsConstraintViolation reports whether err is a storage constraint
// rejection: uniqueness, NOT NULL or foreign key.
func IsConstraintViolation(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.Code == sqlite3.ErrConstraint
	}
	return false
}

// IsUniqueViolation reports whether err is specifically a uniqueness
// constraint rejection. The registration token retry loop depends on this.
func IsUniqueViolation(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
