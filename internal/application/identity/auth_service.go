package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jelectro/storefront/internal/domain/identity"
	"github.com/jelectro/storefront/internal/domain/shared"
	"github.com/jelectro/storefront/internal/infrastructure/auth"
)

// SessionIssuer issues signed session tokens for authenticated users
type SessionIssuer interface {
	Generate(userID uuid.UUID, username, role string) (*auth.Session, error)
}

// AuthService handles registration, login and account lookup
type AuthService struct {
	userRepo identity.UserRepository
	sessions SessionIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, sessions SessionIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// Register creates a new user account and logs it in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	user, err := identity.NewUser(req.Username, req.Password, identity.RoleUser)
	if err != nil {
		return nil, err
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.ErrUsernameTaken
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.issueSession(user)
}

// Login verifies the credentials and issues a session token. Unknown
// usernames and wrong passwords produce the same error so the response
// never reveals which accounts exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrAuthenticationFailed
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		return nil, shared.ErrAuthenticationFailed
	}

	return s.issueSession(user)
}

// GetByID retrieves the account for an authenticated user
func (s *AuthService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

func (s *AuthService) issueSession(user *identity.User) (*AuthResponse, error) {
	session, err := s.sessions.Generate(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:      ToUserResponse(user),
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}
