// Package job holds the scheduled background jobs of the microblog.
package job

import (
	"time"

	"microblog/logger"
	"microblog/web/service"
)

// PendingCleanupJob drops pending registrations whose confirmation link was
// never visited within the retention window.
type PendingCleanupJob struct {
	registrationService *service.RegistrationService
	ttl                 time.Duration
}

// NewPendingCleanupJob creates a cleanup job with the given retention.
func NewPendingCleanupJob(registrationService *service.RegistrationService, ttl time.Duration) *PendingCleanupJob {
	return &PendingCleanupJob{registrationService: registrationService, ttl: ttl}
}

// Run purges the expired pending registrations.
func (j *PendingCleanupJob) Run() {
	dropped, err := j.registrationService.PurgePending(j.ttl)
	if err != nil {
		logger.Warning("pending registration cleanup failed:", err)
		return
	}
	if dropped > 0 {
		logger.Infof("dropped %d expired pending registrations", dropped)
	}
}
