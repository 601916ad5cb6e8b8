package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"resumebuilder/internal/models"
	"resumebuilder/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxFailedLoginAttempts = 5
	verificationTokenTTL   = 24 * time.Hour
	passwordResetTokenTTL  = 1 * time.Hour
)

// ForgotPasswordMessage is returned regardless of whether the email exists,
// preventing account enumeration.
const ForgotPasswordMessage = "If your email exists in our system, you will receive a password reset link."

// Mailer dispatches notification emails. Delivery is best-effort and
// asynchronous: implementations never return errors to the caller.
type Mailer interface {
	SendVerificationEmail(to, name, token string)
	SendPasswordResetEmail(to, name, token string)
	SendWelcomeEmail(to, name string)
}

// AuthService governs the account security state machine: registration,
// login attempts and lockout, email verification, and the password-reset
// token lifecycle.
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *TokenService
	mailer   Mailer
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, tokens *TokenService, mailer Mailer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
	}
}

// Register creates a new account in the Unverified state, hashes the
// password, mints a verification token, and dispatches the verification
// email. No bearer token is issued until the email is verified.
func (s *AuthService) Register(user *models.User) (models.UserInfo, error) {
	exists, err := s.userRepo.ExistsByEmail(user.Email)
	if err != nil {
		return models.UserInfo{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return models.UserInfo{}, fmt.Errorf("%w: %s", ErrEmailTaken, user.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.UserInfo{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	token := uuid.New().String()
	expiry := time.Now().Add(verificationTokenTTL)
	user.VerificationToken = &token
	user.VerificationTokenExpiry = &expiry
	user.IsEmailVerified = false
	user.IsActive = true
	user.IsLocked = false
	user.FailedLoginAttempts = 0
	if user.SubscriptionPlan == "" {
		user.SubscriptionPlan = "basic"
	}

	if err := s.userRepo.Create(user); err != nil {
		return models.UserInfo{}, fmt.Errorf("failed to register user: %w", err)
	}

	s.mailer.SendVerificationEmail(user.Email, user.FirstName, token)

	return user.ToUserInfo(), nil
}

// Login authenticates a user and issues a bearer token. The check ordering
// is load-bearing: lock state, then active flag, then password (a mismatch
// increments the failed-attempt counter and may lock the account), then
// verification status. A simultaneously wrong-password and unverified
// account therefore observes ErrInvalidCredentials.
func (s *AuthService) Login(email, password string) (string, models.UserInfo, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", models.UserInfo{}, ErrInvalidCredentials
	}

	if user.IsLocked {
		return "", models.UserInfo{}, ErrAccountLocked
	}
	if !user.IsActive {
		return "", models.UserInfo{}, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.handleFailedLogin(user)
		return "", models.UserInfo{}, ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		return "", models.UserInfo{}, ErrEmailNotVerified
	}

	if user.FailedLoginAttempts > 0 {
		user.FailedLoginAttempts = 0
		if err := s.userRepo.Save(user); err != nil {
			return "", models.UserInfo{}, fmt.Errorf("failed to reset login attempts: %w", err)
		}
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", models.UserInfo{}, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user.ToUserInfo(), nil
}

// handleFailedLogin increments the attempt counter and locks the account at
// the threshold, within the same operation. Concurrent logins may race on
// the counter; the store is the serialization point and eventual lockout is
// accepted.
func (s *AuthService) handleFailedLogin(user *models.User) {
	user.FailedLoginAttempts++
	if user.FailedLoginAttempts >= maxFailedLoginAttempts {
		user.IsLocked = true
		log.Printf("Account locked for %s after %d failed login attempts", user.Email, user.FailedLoginAttempts)
	}
	if err := s.userRepo.Save(user); err != nil {
		log.Printf("Failed to record failed login for %s: %v", user.Email, err)
	}
}

// VerifyEmail looks up the account by verification token and transitions it
// to Active, clearing the token pair. The welcome email is a side effect:
// its failure never rolls back the transition.
func (s *AuthService) VerifyEmail(token string) error {
	user, err := s.userRepo.GetByVerificationToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTokenInvalid
		}
		return fmt.Errorf("failed to look up verification token: %w", err)
	}

	if !user.IsVerificationTokenValid(time.Now()) {
		return ErrTokenExpired
	}

	user.IsEmailVerified = true
	user.VerificationToken = nil
	user.VerificationTokenExpiry = nil
	if err := s.userRepo.Save(user); err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}

	s.mailer.SendWelcomeEmail(user.Email, user.FirstName)
	return nil
}

// ForgotPassword mints a reset token and dispatches the reset email when the
// account exists. It reports success either way; an unknown email causes no
// token mutation and no dispatch.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	token := uuid.New().String()
	expiry := time.Now().Add(passwordResetTokenTTL)
	user.PasswordResetToken = &token
	user.PasswordResetTokenExpiry = &expiry
	if err := s.userRepo.Save(user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	s.mailer.SendPasswordResetEmail(user.Email, user.FirstName, token)
	return nil
}

// ResetPassword replaces the password hash and clears the reset-token pair.
// It always clears the lock and the failed-attempt counter: a successful
// password reset is the implicit unlock path.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	user, err := s.userRepo.GetByPasswordResetToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTokenInvalid
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	if !user.IsPasswordResetTokenValid(time.Now()) {
		return ErrTokenExpired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hashedPassword)
	user.PasswordResetToken = nil
	user.PasswordResetTokenExpiry = nil
	user.IsLocked = false
	user.FailedLoginAttempts = 0

	if err := s.userRepo.Save(user); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}

// ResendVerification reissues a verification token, overwriting any prior
// one, and redispatches the verification email.
func (s *AuthService) ResendVerification(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if user.IsEmailVerified {
		return ErrAlreadyVerified
	}

	token := uuid.New().String()
	expiry := time.Now().Add(verificationTokenTTL)
	user.VerificationToken = &token
	user.VerificationTokenExpiry = &expiry
	if err := s.userRepo.Save(user); err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	s.mailer.SendVerificationEmail(user.Email, user.FirstName, token)
	return nil
}
