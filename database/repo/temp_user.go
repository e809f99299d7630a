package repo

import (
	"errors"
	"time"

	"microblog/database/model"
	"microblog/util/common"

	"gorm.io/gorm"
)

// TempUserRepo persists and reads pending registrations.
type TempUserRepo struct {
	db *gorm.DB
}

func NewTempUserRepo(db *gorm.DB) *TempUserRepo {
	return &TempUserRepo{db: db}
}

// Create inserts the pending registration. Constraint violations (including
// a regkey collision) propagate untranslated so the caller can retry with a
// fresh token.
func (r *TempUserRepo) Create(tempUser *model.TempUser) error {
	return r.db.Create(tempUser).Error
}

// FindByRegkey returns the pending registration holding the token, or a
// NotFoundError.
func (r *TempUserRepo) FindByRegkey(regkey string) (*model.TempUser, error) {
	tempUser := &model.TempUser{}
	err := r.db.Where("regkey = ?", regkey).First(tempUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &common.NotFoundError{Entity: "temp user", Key: regkey}
		}
		return nil, err
	}
	return tempUser, nil
}

// FindByUsername returns the pending registration with the given username,
// or a NotFoundError.
func (r *TempUserRepo) FindByUsername(username string) (*model.TempUser, error) {
	tempUser := &model.TempUser{}
	err := r.db.Where("username = ?", username).First(tempUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &common.NotFoundError{Entity: "temp user", Key: username}
		}
		return nil, err
	}
	return tempUser, nil
}

// UsernameExists reports whether a pending registration holds the username.
func (r *TempUserRepo) UsernameExists(username string) (bool, error) {
	return r.exists("username = ?", username)
}

// EmailExists reports whether a pending registration holds the email.
func (r *TempUserRepo) EmailExists(email string) (bool, error) {
	return r.exists("email = ?", email)
}

// Delete removes the pending registration with the given id.
func (r *TempUserRepo) Delete(id int) error {
	return r.db.Delete(&model.TempUser{}, id).Error
}

// DeleteOlderThan removes pending registrations created before cutoff and
// returns how many were dropped.
func (r *TempUserRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&model.TempUser{})
	return result.RowsAffected, result.Error
}

func (r *TempUserRepo) exists(query string, arg any) (bool, error) {
	var count int64
	err := r.db.Model(&model.TempUser{}).Where(query, arg).Count(&count).Error
	return count > 0, err
}
