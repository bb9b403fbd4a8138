package jwt

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	SessionCookieName = "hrms_session"

	TokenTypeSession = "session"
	TokenTypeCSRF    = "csrf"
)

var ErrCSRFMismatch = errors.New("csrf token does not belong to this session")

type Service interface {
	GenerateSessionToken(sessionID string) (token string, expiresAt int64, err error)
	ValidateSessionToken(tokenString string) (sessionID string, err error)
	GenerateCSRFToken(sessionID string) (token string, err error)
	ValidateCSRFToken(tokenString string, sessionID string) error
	SessionCookie(token string, expiresAt int64) *http.Cookie
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey       string
	sessionLifetime time.Duration
	csrfLifetime    time.Duration
	secureCookies   bool
	tokenAuth       *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService signs session cookies and form tokens with HS256. CSRF tokens
// live as long as the session so a form left open does not go stale first.
func NewJWTService(secretKey string, sessionLifetime time.Duration, secureCookies bool) Service {
	return &JWTService{
		secretKey:       secretKey,
		sessionLifetime: sessionLifetime,
		csrfLifetime:    sessionLifetime,
		secureCookies:   secureCookies,
		tokenAuth:       jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateSessionToken(sessionID string) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.sessionLifetime).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sid":  sessionID,
		"type": TokenTypeSession,
		"exp":  expiresAt,
	})
	return tokenString, expiresAt, err
}

// ValidateSessionToken verifies signature and expiry and returns the session ID
func (j *JWTService) ValidateSessionToken(tokenString string) (sessionID string, err error) {
	return j.validate(tokenString, TokenTypeSession)
}

// GenerateCSRFToken issues the token embedded in every form of a session
func (j *JWTService) GenerateCSRFToken(sessionID string) (token string, err error) {
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sid":  sessionID,
		"type": TokenTypeCSRF,
		"exp":  time.Now().Add(j.csrfLifetime).Unix(),
	})
	return tokenString, err
}

func (j *JWTService) ValidateCSRFToken(tokenString string, sessionID string) error {
	sid, err := j.validate(tokenString, TokenTypeCSRF)
	if err != nil {
		return err
	}
	if sid != sessionID {
		return ErrCSRFMismatch
	}
	return nil
}

func (j *JWTService) SessionCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j *JWTService) validate(tokenString string, wantType string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	// Check token type
	tokenType, ok := token.Get("type")
	if !ok || tokenType != wantType {
		return "", jwt.ErrInvalidJWT()
	}

	sidVal, ok := token.Get("sid")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	sid, ok := sidVal.(string)
	if !ok || sid == "" {
		return "", jwt.ErrInvalidJWT()
	}

	return sid, nil
}
