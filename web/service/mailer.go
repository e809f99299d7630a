package service

import (
	"fmt"

	"microblog/logger"
)

// Mailer delivers the confirmation link for a pending registration. Actual
// email transport lives outside this application; the default implementation
// only logs the link.
type Mailer interface {
	SendConfirmation(email, username, regkey string) error
}

// LogMailer writes the confirmation link to the application log.
type LogMailer struct {
	BaseURL string
}

func (m *LogMailer) SendConfirmation(email, username, regkey string) error {
	link := fmt.Sprintf("%s/confirm/%s", m.BaseURL, regkey)
	logger.Infof("confirmation for %s <%s>: %s", username, email, link)
	return nil
}
