package service

import (
	"strings"
	"time"

	"microblog/database"
	"microblog/database/model"
	"microblog/database/repo"
	"microblog/logger"
	"microblog/util/common"
	"microblog/util/crypto"
	"microblog/util/random"

	"gorm.io/gorm"
)

// Registration validation messages. The uniqueness ones are user-facing
// verbatim.
const (
	MsgMissingUsername = "You must provide a username."
	MsgMissingPassword = "You must provide a password."
	MsgMissingEmail    = "You must provide an email address."
	MsgUsernameTaken   = "This username is taken."
	MsgEmailInUse      = "This email is already in use."
)

// Account is the outcome of a registration: exactly one of the two fields is
// set, depending on whether confirmation was required.
type Account struct {
	User    *model.User
	Pending *model.TempUser
}

// RegistrationService validates registrations, issues confirmation tokens
// and promotes pending accounts once their token is presented.
type RegistrationService struct {
	db        *gorm.DB
	users     *repo.UserRepo
	tempUsers *repo.TempUserRepo
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{
		db:        db,
		users:     repo.NewUserRepo(db),
		tempUsers: repo.NewTempUserRepo(db),
	}
}

// Register creates an account. All missing-field messages are collected
// before failing, then all uniqueness violations, so the caller always sees
// the complete list. With requireConfirmation a pending registration is
// stored under a fresh random token; the confirmation message itself is the
// caller's job. forcedKey seeds the token for tests, but a collision still
// regenerates it.
func (s *RegistrationService) Register(username, password, email string, requireConfirmation bool, forcedKey string) (*Account, error) {
	var messages []string
	if username == "" {
		messages = append(messages, MsgMissingUsername)
	}
	if password == "" {
		messages = append(messages, MsgMissingPassword)
	}
	if email == "" {
		messages = append(messages, MsgMissingEmail)
	}
	if len(messages) > 0 {
		return nil, common.NewValidationError(messages)
	}

	// Username and email must be free across both confirmed and pending
	// accounts. Violations are collected, not short-circuited.
	taken, err := s.usernameTaken(username)
	if err != nil {
		return nil, err
	}
	if taken {
		messages = append(messages, MsgUsernameTaken)
	}
	inUse, err := s.emailTaken(email)
	if err != nil {
		return nil, err
	}
	if inUse {
		messages = append(messages, MsgEmailInUse)
	}
	if len(messages) > 0 {
		return nil, common.NewValidationError(messages)
	}

	hashed := password
	if !crypto.IsHashed(password) {
		hashed, err = crypto.HashPassword(password)
		if err != nil {
			return nil, err
		}
	}

	if !requireConfirmation {
		user := &model.User{
			Username:  username,
			Password:  hashed,
			Email:     email,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.users.Create(user); err != nil {
			return nil, err
		}
		logger.Infof("user %s registered without confirmation", username)
		return &Account{User: user}, nil
	}

	key := forcedKey
	if key == "" {
		key = random.Seq(model.RegkeyLength)
	}
	for {
		tempUser := &model.TempUser{
			Username:  username,
			Password:  hashed,
			Email:     email,
			Regkey:    key,
			CreatedAt: time.Now().UTC(),
		}
		err := s.tempUsers.Create(tempUser)
		if err == nil {
			logger.Infof("pending registration stored for %s", username)
			return &Account{Pending: tempUser}, nil
		}
		// A token collision is expected to be rare but legal: regenerate
		// and try again. Any other constraint violation is not retryable.
		if database.IsUniqueViolation(err) && strings.Contains(err.Error(), "regkey") {
			logger.Warningf("regkey collision for %s, regenerating", username)
			key = random.Seq(model.RegkeyLength)
			continue
		}
		return nil, err
	}
}

// Confirm promotes the pending registration holding the token into a
// confirmed user. An unknown token is a no-op, not an error: the result is
// (nil, nil).
func (s *RegistrationService) Confirm(regkey string) (*model.User, error) {
	tempUser, err := s.tempUsers.FindByRegkey(regkey)
	if err != nil {
		if common.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}

	user := &model.User{
		Username:  tempUser.Username,
		Password:  tempUser.Password, // already a bcrypt digest
		Email:     tempUser.Email,
		CreatedAt: time.Now().UTC(),
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repo.NewTempUserRepo(tx).Delete(tempUser.Id); err != nil {
			return err
		}
		return repo.NewUserRepo(tx).Create(user)
	})
	if err != nil {
		return nil, err
	}
	logger.Infof("user %s confirmed", user.Username)
	return user, nil
}

// PurgePending deletes pending registrations older than ttl and returns how
// many were dropped.
func (s *RegistrationService) PurgePending(ttl time.Duration) (int64, error) {
	return s.tempUsers.DeleteOlderThan(time.Now().UTC().Add(-ttl))
}

func (s *RegistrationService) usernameTaken(username string) (bool, error) {
	if taken, err := s.users.UsernameExists(username); err != nil || taken {
		return taken, err
	}
	return s.tempUsers.UsernameExists(username)
}

func (s *RegistrationService) emailTaken(email string) (bool, error) {
	if inUse, err := s.users.EmailExists(email); err != nil || inUse {
		return inUse, err
	}
	return s.tempUsers.EmailExists(email)
}
