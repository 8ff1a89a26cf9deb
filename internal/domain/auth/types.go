package auth

import "time"

// Config drives API token behavior. An empty Secret disables authentication.
type Config struct {
	Secret   string
	TokenTTL time.Duration
	Issuer   string
}

// Enabled reports whether tokens can be issued and checked.
func (c Config) Enabled() bool { return c.Secret != "" }

// TokenRequest describes a token to mint.
type TokenRequest struct {
	Subject string        `json:"subject"`
	TTL     time.Duration `json:"-"`
}

// TokenResponse returns the signed token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Claims are extracted from the JWT token.
type Claims struct {
	Subject   string
	TokenType string
	ExpiresAt time.Time
}
