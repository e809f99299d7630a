// Package model defines the persisted entities of the microblog.
package model

import (
	"time"
)

// RegkeyLength is the fixed length of a registration confirmation token.
const RegkeyLength = 32

// User is a confirmed account. Username and email are unique; the password
// column only ever holds a bcrypt digest.
type User struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username" gorm:"unique;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Email     string    `json:"email" gorm:"unique;not null"`
	CreatedAt time.Time `json:"createdAt"`
	Posts     []Post    `json:"-" gorm:"foreignKey:AuthorId;references:Id"`
}

// TempUser is a pending registration waiting for its confirmation link to be
// visited. It mirrors User plus the registration key, and shares no foreign
// key with it: confirmation copies the row into users and deletes it here.
type TempUser struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username" gorm:"unique;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Email     string    `json:"email" gorm:"unique;not null"`
	Regkey    string    `json:"-" gorm:"unique;not null;size:32"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post is a published article. Title and body are enforced NOT NULL by the
// storage layer; the author reference must exist at insert time.
type Post struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" gorm:"unique;not null"`
	Body      string    `json:"body" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	AuthorId  int       `json:"authorId" gorm:"not null"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorId;references:Id"`
}
