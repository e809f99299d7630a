// Package session stores the logged-in marker in the cookie session: a
// flag, the username and the user id. Logout clears all three.
package session

import (
	"microblog/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	loggedIn = "logged_in"
	username = "username"
	userId   = "user_id"
)

// SetLoginUser records the user as logged in.
func SetLoginUser(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(loggedIn, true)
	s.Set(username, user.Username)
	s.Set(userId, user.Id)
	return s.Save()
}

// IsLogin reports whether the session carries the logged-in flag.
func IsLogin(c *gin.Context) bool {
	s := sessions.Default(c)
	flag, ok := s.Get(loggedIn).(bool)
	return ok && flag
}

// GetUsername returns the logged-in username, or "".
func GetUsername(c *gin.Context) string {
	s := sessions.Default(c)
	if name, ok := s.Get(username).(string); ok {
		return name
	}
	return ""
}

// GetUserId returns the logged-in user id, or 0.
func GetUserId(c *gin.Context) int {
	s := sessions.Default(c)
	if id, ok := s.Get(userId).(int); ok {
		return id
	}
	return 0
}

// ClearLogin removes every login field. Safe to call on a session that was
// never logged in.
func ClearLogin(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(loggedIn)
	s.Delete(username)
	s.Delete(userId)
	return s.Save()
}

// Flash queues a message to show on the next rendered page.
func Flash(c *gin.Context, message string) {
	s := sessions.Default(c)
	s.AddFlash(message)
	_ = s.Save()
}

// Flashes drains and returns the queued messages.
func Flashes(c *gin.Context) []string {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			messages = append(messages, msg)
		}
	}
	_ = s.Save()
	return messages
}
