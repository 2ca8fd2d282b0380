// Package auth holds the credential primitives of the server: bcrypt
// password hashing, HS256 access tokens and the identity carried through
// request contexts.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity embedded in an access token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string      `json:"id"`
	UserName string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
}

// IsAdmin reports whether the token holder has the admin role.
func (c *Claims) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// ClaimsForUser builds the token identity of u.
func ClaimsForUser(u *models.User) Claims {
	return Claims{
		UserID:   u.ID,
		UserName: u.UserName,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// GenerateToken signs claims with secretKey, valid for validityDuration from now.
func GenerateToken(claims Claims, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString and returns its claims. Expired tokens
// yield common.ErrTokenExpired; every other failure wraps common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secretKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
