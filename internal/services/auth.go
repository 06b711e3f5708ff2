package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"

	"github.com/authdemo/apiserver/internal/auth"
	"github.com/authdemo/apiserver/internal/store"
	"github.com/authdemo/apiserver/types"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// RegisterInput carries the sign up form.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,utf16min=6"`
}

// AuthenticateInput carries the sign in form.
type AuthenticateInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by a successful registration or authentication.
type AuthResult struct {
	User  types.PublicUser `json:"user"`
	Token string           `json:"token"`
}

// AuthService implements registration, authentication and token checks on
// top of a UserRepository.
type AuthService struct {
	repo     UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	validate *validator.Validate
}

func NewAuthService(repo UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		validate: newValidator(),
	}
}

// newValidator adds utf16min, which measures strings in UTF-16 code units
// the way browsers count form input.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("utf16min", utf16Min); err != nil {
		panic(err)
	}
	return v
}

func utf16Min(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(utf16.Encode([]rune(fl.Field().String()))) >= limit
}

// Register creates a user and issues a token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	if err := s.checkInput(in); err != nil {
		return AuthResult{}, err
	}

	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return AuthResult{}, fmt.Errorf("check email: %w", err)
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	// The repository re-checks the email under its own lock, which closes
	// the window between the lookup above and this insert.
	user, err := s.repo.Insert(ctx, types.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hashed,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, fmt.Errorf("insert user: %w", err)
	}

	return s.issue(user)
}

// Authenticate verifies credentials and issues a fresh token.
func (s *AuthService) Authenticate(ctx context.Context, in AuthenticateInput) (AuthResult, error) {
	if err := s.validate.Struct(in); err != nil {
		return AuthResult{}, ErrInvalidInput
	}

	user, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.hasher.CompareDummy(in.Password)
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("load user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, in.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	return s.issue(user)
}

// Profile returns the user bound to userID.
func (s *AuthService) Profile(ctx context.Context, userID int) (types.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// VerifyToken returns the user id embedded in a valid token. Errors wrap
// auth.ErrInvalidToken or auth.ErrExpiredToken.
func (s *AuthService) VerifyToken(token string) (int, error) {
	return s.tokens.Verify(token)
}

// UserCount reports how many users are registered.
func (s *AuthService) UserCount(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *AuthService) issue(user types.User) (AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user.Public(), Token: token}, nil
}

// checkInput reports missing fields before a short password.
func (s *AuthService) checkInput(in RegisterInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ErrInvalidInput
	}
	for _, fieldErr := range fieldErrs {
		if fieldErr.Tag() == "required" {
			return ErrInvalidInput
		}
	}
	return ErrWeakPassword
}
