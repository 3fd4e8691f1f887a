package services

import (
	"time"

	svc "langmaster/internal/learning/ports/services"
)

// ServiceFactory builds the password and session services from configuration.
type ServiceFactory struct {
	passwordService svc.PasswordService
	sessionService  svc.SessionService
}

// NewServiceFactory creates the service implementations.
func NewServiceFactory(sessionSecret string, tokenTTL time.Duration, bcryptCost int) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		sessionService:  NewSession(sessionSecret, tokenTTL),
	}
}

// PasswordService returns the password hashing service.
func (f *ServiceFactory) PasswordService() svc.PasswordService {
	return f.passwordService
}

// SessionService returns the session token service.
func (f *ServiceFactory) SessionService() svc.SessionService {
	return f.sessionService
}
