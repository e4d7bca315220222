package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jelectro/storefront/internal/domain/identity"
	"github.com/jelectro/storefront/internal/domain/shared"
	"github.com/jelectro/storefront/internal/infrastructure/auth"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockSessionIssuer is a mock implementation of SessionIssuer
type MockSessionIssuer struct {
	mock.Mock
}

func (m *MockSessionIssuer) Generate(userID uuid.UUID, username, role string) (*auth.Session, error) {
	args := m.Called(userID, username, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func testSession() *auth.Session {
	return &auth.Session{Token: "signed-token", ExpiresAt: time.Now().Add(time.Hour)}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("registers new user and issues session", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		sessions := new(MockSessionIssuer)
		svc := NewAuthService(userRepo, sessions)

		userRepo.On("ExistsByUsername", mock.Anything, "budi").Return(false, nil)
		userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)
		sessions.On("Generate", mock.AnythingOfType("uuid.UUID"), "budi", "user").Return(testSession(), nil)

		resp, err := svc.Register(context.Background(), RegisterRequest{
			Username: "Budi",
			Password: "secret123",
		})

		require.NoError(t, err)
		assert.Equal(t, "budi", resp.User.Username)
		assert.Equal(t, "user", resp.User.Role)
		assert.Equal(t, "signed-token", resp.Token)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects taken username", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, new(MockSessionIssuer))

		userRepo.On("ExistsByUsername", mock.Anything, "budi").Return(true, nil)

		_, err := svc.Register(context.Background(), RegisterRequest{
			Username: "budi",
			Password: "secret123",
		})

		assert.Equal(t, shared.ErrUsernameTaken, err)
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid username before touching the repository", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, new(MockSessionIssuer))

		_, err := svc.Register(context.Background(), RegisterRequest{
			Username: "budi santoso",
			Password: "secret123",
		})

		require.Error(t, err)
		userRepo.AssertNotCalled(t, "ExistsByUsername", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("logs in with correct credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		sessions := new(MockSessionIssuer)
		svc := NewAuthService(userRepo, sessions)

		user, err := identity.NewUser("budi", "secret123", identity.RoleUser)
		require.NoError(t, err)

		userRepo.On("FindByUsername", mock.Anything, "budi").Return(user, nil)
		sessions.On("Generate", user.ID, "budi", "user").Return(testSession(), nil)

		resp, err := svc.Login(context.Background(), LoginRequest{
			Username: "budi",
			Password: "secret123",
		})

		require.NoError(t, err)
		assert.Equal(t, "signed-token", resp.Token)
	})

	t.Run("same error for wrong password and unknown user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, new(MockSessionIssuer))

		user, err := identity.NewUser("budi", "secret123", identity.RoleUser)
		require.NoError(t, err)

		userRepo.On("FindByUsername", mock.Anything, "budi").Return(user, nil)
		userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)

		_, errWrongPassword := svc.Login(context.Background(), LoginRequest{Username: "budi", Password: "wrong"})
		_, errUnknownUser := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "secret123"})

		assert.Equal(t, shared.ErrAuthenticationFailed, errWrongPassword)
		assert.Equal(t, shared.ErrAuthenticationFailed, errUnknownUser)
	})
}

func TestAuthService_GetByID(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, new(MockSessionIssuer))

	user, err := identity.NewUser("budi", "secret123", identity.RoleAdmin)
	require.NoError(t, err)

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	resp, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)
}
