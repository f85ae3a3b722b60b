package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/config"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

type identityClaims struct {
	jwt.RegisteredClaims
	Email       string `json:"email"`
	DisplayName string `json:"name"`
}

// Verifier validates identity-provider tokens. The service never mints
// tokens; it only checks the provider's HS256 signature and extracts the
// opaque user handle.
type Verifier struct {
	cfg config.AuthConfig
}

func NewVerifier(cfg config.AuthConfig) *Verifier {
	return &Verifier{cfg: cfg}
}

func (v *Verifier) Verify(tokenString string) (*domain.User, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&identityClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(v.cfg.JWTSecret), nil
		},
		jwt.WithIssuer(v.cfg.Issuer),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*identityClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	return &domain.User{
		ID:          userID,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
	}, nil
}
