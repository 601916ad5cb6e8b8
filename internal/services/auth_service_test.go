package services_test

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"resumebuilder/internal/models"
	"resumebuilder/internal/repositories"
	"resumebuilder/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByVerificationToken(token string) (*models.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByPasswordResetToken(token string) (*models.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// MockMailer is a mock implementation of services.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerificationEmail(to, name, token string) {
	m.Called(to, name, token)
}

func (m *MockMailer) SendPasswordResetEmail(to, name, token string) {
	m.Called(to, name, token)
}

func (m *MockMailer) SendWelcomeEmail(to, name string) {
	m.Called(to, name)
}

func notFoundErr() error {
	return fmt.Errorf("user: %w", repositories.ErrNotFound)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func newAuthService(repo *MockUserRepository, mailer *MockMailer) *services.AuthService {
	tokens := services.NewTokenService("test_jwt_secret", time.Hour)
	return services.NewAuthService(repo, tokens, mailer)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	authService := newAuthService(mockRepo, mockMailer)

	var created *models.User
	mockRepo.On("ExistsByEmail", "alice@example.com").Return(false, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.User)
	}).Return(nil).Once()
	mockMailer.On("SendVerificationEmail", "alice@example.com", "Alice", mock.AnythingOfType("string")).Return().Once()

	info, err := authService.Register(&models.User{
		FirstName: "Alice",
		Email:     "alice@example.com",
		Password:  "password123",
	})
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", info.Email)
	assert.False(t, info.IsEmailVerified)

	// The created account starts unverified with a live verification token
	// pair and never stores the plaintext password.
	assert.NotNil(t, created)
	assert.Equal(t, models.AccountUnverified, created.AccountState())
	assert.NotEqual(t, "password123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))
	assert.NotNil(t, created.VerificationToken)
	assert.NotNil(t, created.VerificationTokenExpiry)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), *created.VerificationTokenExpiry, time.Minute)
	assert.Zero(t, created.FailedLoginAttempts)
	assert.False(t, created.IsLocked)

	mockRepo.AssertExpectations(t)
	mockMailer.AssertExpectations(t)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	authService := newAuthService(mockRepo, mockMailer)

	mockRepo.On("ExistsByEmail", "alice@example.com").Return(true, nil).Once()

	_, err := authService.Register(&models.User{
		FirstName: "Alice",
		Email:     "alice@example.com",
		Password:  "password123",
	})
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertNotCalled(t, "Create")
	mockMailer.AssertNotCalled(t, "SendVerificationEmail")
}

func verifiedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)
	return &models.User{
		ID:              "user-123",
		FirstName:       "Alice",
		Email:           "alice@example.com",
		Password:        string(hashed),
		IsEmailVerified: true,
		IsActive:        true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	authService := newAuthService(mockRepo, mockMailer)

	user := verifiedUser(t, "password123")
	user.FailedLoginAttempts = 2
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	mockRepo.On("Save", user).Return(nil).Once()

	token, info, err := authService.Login("alice@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice@example.com", info.Email)
	assert.Zero(t, user.FailedLoginAttempts)

	// The decoded token subject is the user's email.
	tokens := services.NewTokenService("test_jwt_secret", time.Hour)
	subject, err := tokens.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, new(MockMailer))

	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, notFoundErr()).Once()

	_, _, err := authService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_Login_LockoutAfterFiveFailures(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, new(MockMailer))

	user := verifiedUser(t, "password123")
	mockRepo.On("GetByEmail", user.Email).Return(user, nil)
	mockRepo.On("Save", user).Return(nil)

	for i := 1; i <= 5; i++ {
		_, _, err := authService.Login("alice@example.com", "wrongpassword")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		assert.Equal(t, i, user.FailedLoginAttempts)
	}
	assert.True(t, user.IsLocked)
	assert.Equal(t, models.AccountLocked, user.AccountState())

	// A sixth attempt fails with the lock even though the password is now
	// correct.
	_, _, err := authService.Login("alice@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrAccountLocked)
}

func TestAuthService_Login_Disabled(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, new(MockMailer))

	user := verifiedUser(t, "password123")
	user.IsActive = false
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()

	_, _, err := authService.Login("alice@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrAccountDisabled)
}

func TestAuthService_Login_EmailNotVerified(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, new(MockMailer))

	user := verifiedUser(t, "password123")
	user.IsEmailVerified = false
	mockRepo.On("GetByEmail", user.Email).Return(user, nil)
	mockRepo.On("Save", user).Return(nil)

	// Correct password, unverified account.
	_, _, err := authService.Login("alice@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrEmailNotVerified)

	// Wrong password wins over verification status: password validity is
	// checked first, and the attempt still counts.
	_, _, err = authService.Login("alice@example.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.Equal(t, 1, user.FailedLoginAttempts)
}

func TestAuthService_VerifyEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	authService := newAuthService(mockRepo, mockMailer)

	token := "verify-token"
	expiry := time.Now().Add(time.Hour)
	user := &models.User{
		ID:                      "user-123",
		FirstName:               "Alice",
		Email:                   "alice@example.com",
		VerificationToken:       &token,
		VerificationTokenExpiry: &expiry,
		IsActive:                true,
	}
	mockRepo.On("GetByVerificationToken", token).Return(user, nil).Once()
	mockRepo.On("Save", user).Return(nil).Once()
	mockMailer.On("SendWelcomeEmail", "alice@example.com", "Alice").Return().Once()

	err := authService.VerifyEmail(token)
	assert.NoError(t, err)
	assert.True(t, user.IsEmailVerified)
	assert.Equal(t, models.AccountActive, user.AccountState())

	// The token and its expiry are cleared together.
	assert.Nil(t, user.VerificationToken)
	assert.Nil(t, user.VerificationTokenExpiry)
	mockRepo.AssertExpectations(t)
	mockMailer.AssertExpectations(t)
}

func TestAuthService_VerifyEmail_InvalidToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, new(MockMailer))

	mockRepo.On("GetByVerificationToken", "unknown").Return(nil, notFoundErr()).Once()

	err := authService.VerifyEmail("unknown")
	assert.ErrorIs(t, err, services.ErrTokenInvalid)
}

func TestAuthService_VerifyEmail_ExpiredToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	authService := newAuthService(mockRepo, mockMailer)

	token := "verify-token"
	expiry := time.Now().Add(-time.Minute)
	user := &models.User{
		Email:                   "alice@example.com",
		VerificationToken:       &token,
		VerificationTokenExpiry: &expiry,
	}
	mockRepo.On("GetByVerificationToken", token).Return(user, nil).Once()

	err := authService.VerifyEmail(token)
	assert.ErrorIs(t, err, services.ErrTokenExpired)
	assert.False(t, user.IsEmailVerified)
	mockMailer.AssertNotCalled(t, "SendWelcomeEmail")
}

func TestAuthService_ForgotPassword_KnownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	authService := newAuthService(mockRepo, mockMailer)

	user := verifiedUser(t, "password123")
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	mockRepo.On("Save", user).Return(nil).Once()
	mockMailer.On("SendPasswordResetEmail", user.Email, "Alice", mock.AnythingOfType("string")).Return().Once()

	err := authService.ForgotPassword("alice@example.com")
	assert.NoError(t, err)
	assert.NotNil(t, user.PasswordResetToken)
	assert.NotNil(t, user.PasswordResetTokenExpiry)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *user.PasswordResetTokenExpiry, time.Minute)
	mockRepo.AssertExpectations(t)
	mockMailer.AssertExpectations(t)
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	authService := newAuthService(mockRepo, mockMailer)

	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, notFoundErr()).Once()

	// Generic success with zero side effects: no token mutation, no dispatch.
	err := authService.ForgotPassword("nobody@example.com")
	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "Save")
	mockMailer.AssertNotCalled(t, "SendPasswordResetEmail")
}

func TestAuthService_ResetPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, new(MockMailer))

	token := "reset-token"
	expiry := time.Now().Add(time.Hour)
	user := verifiedUser(t, "oldpassword")
	user.PasswordResetToken = &token
	user.PasswordResetTokenExpiry = &expiry
	user.IsLocked = true
	user.FailedLoginAttempts = 5

	mockRepo.On("GetByPasswordResetToken", token).Return(user, nil).Once()
	mockRepo.On("Save", user).Return(nil).Once()

	err := authService.ResetPassword(token, "newpassword")
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newpassword")))
	assert.Nil(t, user.PasswordResetToken)
	assert.Nil(t, user.PasswordResetTokenExpiry)

	// A successful reset always unlocks and clears the attempt counter.
	assert.False(t, user.IsLocked)
	assert.Zero(t, user.FailedLoginAttempts)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ResetPassword_TokenErrors(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo, new(MockMailer))

	mockRepo.On("GetByPasswordResetToken", "unknown").Return(nil, notFoundErr()).Once()
	err := authService.ResetPassword("unknown", "newpassword")
	assert.ErrorIs(t, err, services.ErrTokenInvalid)

	token := "stale-token"
	expiry := time.Now().Add(-time.Minute)
	user := verifiedUser(t, "oldpassword")
	user.PasswordResetToken = &token
	user.PasswordResetTokenExpiry = &expiry
	mockRepo.On("GetByPasswordResetToken", token).Return(user, nil).Once()

	err = authService.ResetPassword(token, "newpassword")
	assert.ErrorIs(t, err, services.ErrTokenExpired)
}

func TestAuthService_ResendVerification(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	authService := newAuthService(mockRepo, mockMailer)

	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, notFoundErr()).Once()
	err := authService.ResendVerification("nobody@example.com")
	assert.ErrorIs(t, err, services.ErrNotFound)

	verified := verifiedUser(t, "password123")
	mockRepo.On("GetByEmail", verified.Email).Return(verified, nil).Once()
	err = authService.ResendVerification(verified.Email)
	assert.ErrorIs(t, err, services.ErrAlreadyVerified)

	oldToken := "old-token"
	oldExpiry := time.Now().Add(-time.Minute)
	user := &models.User{
		FirstName:               "Bob",
		Email:                   "bob@example.com",
		VerificationToken:       &oldToken,
		VerificationTokenExpiry: &oldExpiry,
	}
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	mockRepo.On("Save", user).Return(nil).Once()
	mockMailer.On("SendVerificationEmail", user.Email, "Bob", mock.AnythingOfType("string")).Return().Once()

	err = authService.ResendVerification(user.Email)
	assert.NoError(t, err)
	assert.NotEqual(t, "old-token", *user.VerificationToken)
	assert.True(t, user.VerificationTokenExpiry.After(time.Now()))
	mockRepo.AssertExpectations(t)
	mockMailer.AssertExpectations(t)
}
