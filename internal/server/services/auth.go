// Package services contains server-side business logic. AuthService handles
// registration and login; BookService applies ownership rules to books.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/dbx"
	"github.com/dmitrijs2005/bookshelf/internal/server/auth"
	"github.com/dmitrijs2005/bookshelf/internal/server/config"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/repomanager"
)

// RegisterInput is an already validated registration request.
type RegisterInput struct {
	UserName string
	Email    string
	Password string
	Role     models.Role
}

type AuthService struct {
	db                          dbx.DBTX
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
// db may be nil for managers that do not need a connection.
func NewAuthService(db dbx.DBTX, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a user. A taken email yields common.ErrAlreadyExists,
// whether it is caught by the lookup or by the store's unique constraint.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	email := normalizeEmail(in.Email)

	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		UserName:     strings.TrimSpace(in.UserName),
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
	}
	if user.UserName == "" {
		user.UserName = models.DefaultUserName
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login checks the credentials and returns a signed access token.
// An unknown email yields common.ErrorNotFound and a wrong password
// common.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", err
		}
		return "", fmt.Errorf("error looking up user: %w", err)
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return "", common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(auth.ClaimsForUser(user), s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return token, nil
}

// VerifyToken parses an access token issued by Login.
func (s *AuthService) VerifyToken(token string) (*auth.Claims, error) {
	return auth.ParseToken(token, s.jwtSecret)
}

// normalizeEmail folds case so lookups and the unique index agree.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
