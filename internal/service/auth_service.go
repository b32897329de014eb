package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"events-web-app/internal/apperror"
	"events-web-app/internal/models"
	"events-web-app/internal/repository"
	"events-web-app/internal/validator"
	"events-web-app/pkg/utils"
)

const passwordRules = "required,min=6,max=100"

// PasswordHasher hashes and verifies user passwords
type PasswordHasher interface {
	Generate(password string) (string, error)
	Verify(password, hashedPassword string) bool
}

// TokenProvider issues and reads access tokens
type TokenProvider interface {
	IssueTokens(user *models.User) (string, string, error)
	GenerateAccessToken(user *models.User) (string, error)
	ValidateExpired(tokenString string) (*utils.Claims, error)
}

type UserService struct {
	uow      repository.UnitOfWork
	hasher   PasswordHasher
	tokens   TokenProvider
	validate *validator.Validator
	log      *zap.Logger
	now      func() time.Time
}

func NewUserService(
	uow repository.UnitOfWork,
	hasher PasswordHasher,
	tokens TokenProvider,
	validate *validator.Validator,
	log *zap.Logger,
) *UserService {
	return &UserService{
		uow:      uow,
		hasher:   hasher,
		tokens:   tokens,
		validate: validate,
		log:      log.Named("user_service"),
		now:      time.Now,
	}
}

// AuthResult is the token pair handed to a user after login or registration
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *models.User
}

// Register creates a new user account with the User role and signs it in
func (s *UserService) Register(ctx context.Context, email, password, username string) (*AuthResult, error) {
	var result *AuthResult
	err := s.uow.Do(ctx, func(store *repository.Store) error {
		// Check if email already exists
		_, err := store.Users.GetByEmail(ctx, email)
		if err == nil {
			return apperror.ErrUserAlreadyExists
		}
		if !apperror.IsNotFound(err) {
			return err
		}

		user := &models.User{
			Email:    email,
			Username: username,
			Role:     models.RoleUser,
		}

		// Password and entity rules are reported together
		passwordErr := s.validate.Var("password", password, passwordRules)
		if passwordErr == nil {
			user.PasswordHash, err = s.hasher.Generate(password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
		} else {
			// keeps the required rule on the hash from adding a second message
			user.PasswordHash = "-"
		}
		if err := apperror.Merge(passwordErr, s.validate.Struct(user)); err != nil {
			return err
		}

		user.ID = uuid.New()
		accessToken, refreshToken, err := s.tokens.IssueTokens(user)
		if err != nil {
			return err
		}

		if err := store.Users.Add(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		// Log registration action
		if err := store.Audit.CreateAuditLog(ctx, &user.ID, "user_registration", fmt.Sprintf("User %s registered", email)); err != nil {
			return err
		}

		result = &AuthResult{AccessToken: accessToken, RefreshToken: refreshToken, User: user}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("User registered", zap.String("user_id", result.User.ID.String()))
	return result, nil
}

// Login authenticates a user and rotates their refresh token
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result *AuthResult
	err := s.uow.Do(ctx, func(store *repository.Store) error {
		// Find user by email
		user, err := store.Users.GetByEmail(ctx, email)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.ErrInvalidCredentials
			}
			return err
		}

		// Compare password
		if !s.hasher.Verify(password, user.PasswordHash) {
			return apperror.ErrInvalidCredentials
		}

		accessToken, refreshToken, err := s.tokens.IssueTokens(user)
		if err != nil {
			return err
		}

		if err := store.Users.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to store refresh token: %w", err)
		}

		// Log login action
		if err := store.Audit.CreateAuditLog(ctx, &user.ID, "user_login", fmt.Sprintf("User %s logged in", email)); err != nil {
			return err
		}

		result = &AuthResult{AccessToken: accessToken, RefreshToken: refreshToken, User: user}
		return nil
	})
	if err != nil {
		if apperror.IsUnauthorized(err) {
			s.log.Warn("Failed login attempt", zap.String("email", email))
		}
		return nil, err
	}

	return result, nil
}

// GetRoleByToken reads the role claim of an access token, expired or not.
// It returns nil when the token carries no role.
func (s *UserService) GetRoleByToken(accessToken string) (*string, error) {
	claims, err := s.tokens.ValidateExpired(accessToken)
	if err != nil {
		return nil, err
	}
	if len(claims.Roles) == 0 {
		return nil, nil
	}
	role := claims.Roles.String()
	return &role, nil
}

// RefreshToken issues a new access token when the refresh token presented
// with an (expired) access token matches the one stored for its user
func (s *UserService) RefreshToken(ctx context.Context, accessToken, refreshToken string) (string, error) {
	if err := apperror.Merge(
		s.validate.Var("accessToken", accessToken, "required"),
		s.validate.Var("refreshToken", refreshToken, "required"),
	); err != nil {
		return "", err
	}

	claims, err := s.tokens.ValidateExpired(accessToken)
	if err != nil {
		return "", err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return "", apperror.ErrInvalidUser
	}

	var newAccessToken string
	err = s.uow.Do(ctx, func(store *repository.Store) error {
		user, err := store.Users.GetByID(ctx, userID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.ErrInvalidToken
			}
			return err
		}

		if !utils.RefreshTokenMatches(user.RefreshToken, refreshToken) {
			return apperror.ErrInvalidToken
		}
		if user.RefreshTokenExpiresAt == nil || !user.RefreshTokenExpiresAt.After(s.now()) {
			return apperror.ErrInvalidToken
		}

		newAccessToken, err = s.tokens.GenerateAccessToken(user)
		return err
	})
	if err != nil {
		if apperror.IsUnauthorized(err) {
			s.log.Warn("Rejected token refresh", zap.String("user_id", userID.String()))
		}
		return "", err
	}

	return newAccessToken, nil
}
