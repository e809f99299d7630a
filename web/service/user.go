package service

import (
	"microblog/database/model"
	"microblog/database/repo"
	"microblog/logger"
	"microblog/util/common"
	"microblog/util/crypto"

	"gorm.io/gorm"
)

// UserService checks credentials. The caller owns the session that records
// the outcome.
type UserService struct {
	users     *repo.UserRepo
	tempUsers *repo.TempUserRepo
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		users:     repo.NewUserRepo(db),
		tempUsers: repo.NewTempUserRepo(db),
	}
}

// Authenticate verifies the credentials and returns the user on success.
// A username only present among pending registrations is reported as
// unconfirmed, distinct from an unknown one.
func (s *UserService) Authenticate(username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if !common.IsNotFoundError(err) {
			return nil, err
		}
		_, terr := s.tempUsers.FindByUsername(username)
		if terr == nil {
			logger.Warningf("login attempt for unconfirmed account %s", username)
			return nil, common.ErrUnconfirmedUser
		}
		if !common.IsNotFoundError(terr) {
			return nil, terr
		}
		return nil, common.ErrUnknownUser
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		logger.Warningf("wrong password for %s", username)
		return nil, common.ErrWrongPassword
	}
	return user, nil
}

// GetUser returns the user with the given id, or a NotFoundError.
func (s *UserService) GetUser(id int) (*model.User, error) {
	return s.users.Find(id)
}
