// Package token mints and verifies the stateless bearer credential. A token
// is valid iff its signature checks out and it has not expired, there is no
// refresh or server side revocation.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/inkwell-blog/inkwell/model"
	"github.com/pkg/errors"
)

// TokenValidity is the login session window.
const TokenValidity = 7 * 24 * time.Hour

// UserClaims embeds the identity fields the client needs without further
// lookups.
type UserClaims struct {
	jwt.RegisteredClaims
	UserId      string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

// Mint signs a HS256 token for the given user, expiring TokenValidity from
// now.
func Mint(user *model.User, secret []byte, now time.Time) (string, error) {
	claims := UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
		},
		UserId:      user.Id,
		Name:        user.Name,
		Email:       user.Email,
		Description: user.Description,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "fail to sign user token")
	}
	return signed, nil
}

// Verify parses and validates a signed token, returning the embedded claims.
// Any failure (malformed, wrong signature, wrong algorithm, expired) is an
// error.
func Verify(signed string, secret []byte) (*UserClaims, error) {
	var claims UserClaims
	parsed, err := jwt.ParseWithClaims(signed, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, errors.Wrap(err, "invalid token")
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return &claims, nil
}
