package core

// TokenClaims is the identity carried by a session token
type TokenClaims struct {
	UserPublicID string
	Role         string
}

// TokenMaker abstracts session token creation and verification
type TokenMaker interface {
	// CreateToken issues a signed session token for the given identity
	CreateToken(userPublicID, role string) (string, error)
	// VerifyToken validates a token and extracts its claims
	VerifyToken(token string) (*TokenClaims, error)
}
