package identity

import (
	"campus-route-finder/internal/domain"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by locally issued tokens. The subject is the student id.
type Claims struct {
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	jwt.RegisteredClaims
}

// JWTIdentity issues and verifies HS256 tokens so the tool and the API can run
// without the university's OpenID service.
type JWTIdentity struct {
	secret []byte
	now    func() time.Time
}

func NewJWTIdentity(secret string) (*JWTIdentity, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &JWTIdentity{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs a token for u that expires after ttl.
func (j *JWTIdentity) Issue(u domain.User, ttl time.Duration) (string, error) {
	now := j.now()
	claims := Claims{
		GivenName:  u.FirstName,
		FamilyName: u.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("issue token for %d: %w", u.ID, err)
	}
	return signed, nil
}

// UserFromToken verifies the signature and expiry and returns the token's user.
func (j *JWTIdentity) UserFromToken(_ context.Context, token string) (*domain.User, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("user from token: %w", err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("user from token: subject %q: %w", claims.Subject, err)
	}

	return &domain.User{
		ID:        id,
		FirstName: claims.GivenName,
		LastName:  claims.FamilyName,
		Token:     token,
	}, nil
}
