package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jaydipchangani/project-management-backend/internal/access"
	"github.com/jaydipchangani/project-management-backend/internal/constants"
	"github.com/jaydipchangani/project-management-backend/internal/models"
	"github.com/jaydipchangani/project-management-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	ErrPasswordTooShort   = fmt.Errorf("%w: password must be at least %d characters", ErrValidation, constants.MinPasswordLength)
	ErrEmailRequired      = fmt.Errorf("%w: email is required", ErrValidation)
	ErrNameRequired       = fmt.Errorf("%w: name is required", ErrValidation)
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewAuthService creates a new AuthService that signs tokens with jwtSecret.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// RegisterInput represents the information needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Role models.Role `json:"role"`
}

// Register creates a team member account. Elevated roles are only granted by an admin.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if err := emailFree(ctx, s.userRepo, email, 0); err != nil {
		return nil, err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleTeamMember,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns the user with a signed access token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// IssueToken signs an HS256 token for user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		Role: user.Role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Authenticate validates a bearer token and resolves the current principal.
// The user is reloaded so that role changes and deletions take effect immediately.
func (s *AuthService) Authenticate(ctx context.Context, token string) (access.Principal, error) {
	if len(s.jwtSecret) == 0 {
		return access.Principal{}, ErrInvalidToken
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	claims := &tokenClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return access.Principal{}, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return access.Principal{}, ErrInvalidToken
	}

	principal, err := s.PrincipalForUser(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return access.Principal{}, ErrInvalidToken
	}
	return principal, err
}

// PrincipalForUser resolves the principal for a session's user id.
func (s *AuthService) PrincipalForUser(ctx context.Context, userID uint64) (access.Principal, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return access.Principal{}, err
	}
	return access.Principal{ID: user.ID, Role: user.Role}, nil
}

// GetUser returns a user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// EnsureAdmin makes sure an admin account with email exists. An existing
// account keeps its password and is promoted if needed.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password, name string) (*models.User, bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, false, ErrEmailRequired
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == models.RoleAdmin {
			return existing, false, nil
		}
		existing.Role = models.RoleAdmin
		if err := s.userRepo.Update(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("failed to promote admin: %w", err)
		}
		return existing, false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, fmt.Errorf("failed to find user: %w", err)
	}

	if len(password) < constants.MinPasswordLength {
		return nil, false, ErrPasswordTooShort
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, false, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = "Administrator"
	}

	admin := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, false, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, true, nil
}

// emailFree fails with ErrEmailTaken if a user other than exceptID owns email.
func emailFree(ctx context.Context, repo repository.UserRepository, email string, exceptID uint64) error {
	user, err := repo.FindByEmail(ctx, email)
	if err == nil {
		if user.ID == exceptID {
			return nil
		}
		return ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
