package auth

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"musichub/internal/models"
	"musichub/internal/shared"
)

const (
	sessionSubject = "Music Hub Session"

	// SessionTTL is how long an issued token remains valid.
	SessionTTL = 24 * time.Hour
)

// Claims is the decoded payload of a session token identifying the acting
// account. The fields reflect the account at issuance time.
type Claims struct {
	AccountID    string
	DisplayName  string
	EmailAddress string
}

// Issuer signs and verifies session tokens with a process-wide HS256 key.
type Issuer struct {
	jwtAuth *jwtauth.JWTAuth
}

// NewIssuer creates an [Issuer] signing with the given secret.
func NewIssuer(secret string) *Issuer {
	return &Issuer{jwtAuth: jwtauth.New("HS256", []byte(secret), nil)}
}

// JWTAuth exposes the underlying [jwtauth.JWTAuth] for router middleware.
func (i *Issuer) JWTAuth() *jwtauth.JWTAuth {
	return i.jwtAuth
}

// Issue produces a signed token embedding the account's id, display name, and
// email, expiring [SessionTTL] from now.
func (i *Issuer) Issue(account *models.Account) (string, time.Time, error) {
	expiration := time.Now().Add(SessionTTL)

	_, signed, err := i.jwtAuth.Encode(map[string]interface{}{
		jwt.SubjectKey:    sessionSubject,
		jwt.IssuedAtKey:   time.Now().Unix(),
		jwt.ExpirationKey: expiration,
		"userId":          account.ID,
		"displayName":     account.DisplayName,
		"emailAddress":    account.EmailAddress,
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiration, nil
}

// Verify checks the token's signature and expiry and returns its claims. Any
// failure (malformed, expired, bad signature, wrong subject) is reported as
// [shared.ErrNotAuthenticated].
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwtauth.VerifyToken(i.jwtAuth, tokenString)
	if err != nil {
		return nil, shared.ErrNotAuthenticated
	}

	return i.ClaimsFromToken(token)
}

// ClaimsFromToken extracts session claims from an already verified token.
func (i *Issuer) ClaimsFromToken(token jwt.Token) (*Claims, error) {
	if token == nil {
		return nil, shared.ErrNotAuthenticated
	}

	if subject, _ := token.Subject(); subject != sessionSubject {
		return nil, shared.ErrNotAuthenticated
	}

	var claims Claims
	if err := token.Get("userId", &claims.AccountID); err != nil || claims.AccountID == "" {
		return nil, shared.ErrNotAuthenticated
	}
	// Display name and email are informational; absence is tolerated.
	token.Get("displayName", &claims.DisplayName)
	token.Get("emailAddress", &claims.EmailAddress)

	return &claims, nil
}
