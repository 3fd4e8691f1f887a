package config

import "time"

// SessionConfig holds the session token and password hashing settings.
type SessionConfig struct {
	SecretKey       string `yaml:"secret_key" env:"LM_SESSION_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes" env:"LM_SESSION_TOKEN_TTL_MINUTES" env-default:"60"`
	BCryptCost      int    `yaml:"bcrypt_cost" env:"LM_SESSION_BCRYPT_COST" env-default:"10"`
}

// GetTokenTTL returns the token lifetime as a time.Duration.
func (s *SessionConfig) GetTokenTTL() time.Duration {
	return time.Duration(s.TokenTTLMinutes) * time.Minute
}
