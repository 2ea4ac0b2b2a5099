package application

import (
	"time"

	"campusvote/contexts/identity-access/auth-gate/domain/entities"
	domainerrors "campusvote/contexts/identity-access/auth-gate/domain/errors"

	"github.com/golang-jwt/jwt/v4"
)

// DefaultTokenTTL applies when the service is built without an explicit
// token lifetime.
const DefaultTokenTTL = 24 * time.Hour

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func signToken(secret []byte, identity entities.Identity, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := tokenClaims{
		Role: identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseToken(secret []byte, token string) (entities.Identity, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domainerrors.ErrUnauthorized
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return entities.Identity{}, domainerrors.ErrUnauthorized
	}
	if claims.Role != entities.RoleAdmin && claims.Role != entities.RoleVoter {
		return entities.Identity{}, domainerrors.ErrUnauthorized
	}
	if claims.Subject == "" {
		return entities.Identity{}, domainerrors.ErrUnauthorized
	}
	return entities.Identity{ID: claims.Subject, Role: claims.Role}, nil
}
