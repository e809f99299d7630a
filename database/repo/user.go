package repo

import (
	"errors"

	"microblog/database/model"
	"microblog/util/common"

	"gorm.io/gorm"
)

// UserRepo persists and reads confirmed accounts.
type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts the user and fills in its assigned id and timestamp.
func (r *UserRepo) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// Find returns the user with the given id, or a NotFoundError.
func (r *UserRepo) Find(id int) (*model.User, error) {
	return r.first("id = ?", id)
}

// FindByUsername returns the user with the given username, or a
// NotFoundError.
func (r *UserRepo) FindByUsername(username string) (*model.User, error) {
	return r.first("username = ?", username)
}

// FindByEmail returns the user with the given email, or a NotFoundError.
func (r *UserRepo) FindByEmail(email string) (*model.User, error) {
	return r.first("email = ?", email)
}

// UsernameExists reports whether a confirmed account holds the username.
func (r *UserRepo) UsernameExists(username string) (bool, error) {
	return r.exists("username = ?", username)
}

// EmailExists reports whether a confirmed account holds the email.
func (r *UserRepo) EmailExists(email string) (bool, error) {
	return r.exists("email = ?", email)
}

func (r *UserRepo) first(query string, arg any) (*model.User, error) {
	user := &model.User{}
	err := r.db.Where(query, arg).First(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &common.NotFoundError{Entity: "user", Key: arg}
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) exists(query string, arg any) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where(query, arg).Count(&count).Error
	return count > 0, err
}
