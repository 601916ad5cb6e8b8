package models

import (
	"time"

	"gorm.io/gorm"
)

// AccountState is the tagged security state derived from a user's flags.
type AccountState string

const (
	AccountUnverified AccountState = "unverified"
	AccountActive     AccountState = "active"
	AccountLocked     AccountState = "locked"
)

// User represents a registered account and its security state.
// A token field and its expiry are always set or cleared together.
type User struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FirstName string `json:"first_name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	LastName  string `json:"last_name" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Email     string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Phone     string `json:"phone" gorm:"type:varchar(30)" validate:"omitempty,max=30"`

	ProfileImageURL  string `json:"profile_image_url" gorm:"type:varchar(512)"`
	SubscriptionPlan string `json:"subscription_plan" gorm:"type:varchar(30);default:basic"`

	IsPremium         bool       `json:"is_premium"`
	PremiumExpiryDate *time.Time `json:"premium_expiry_date"`

	IsEmailVerified         bool       `json:"is_email_verified"`
	VerificationToken       *string    `json:"-" gorm:"type:varchar(64);index"`
	VerificationTokenExpiry *time.Time `json:"-"`

	PasswordResetToken       *string    `json:"-" gorm:"type:varchar(64);index"`
	PasswordResetTokenExpiry *time.Time `json:"-"`

	IsActive            bool `json:"is_active" gorm:"default:true"`
	IsLocked            bool `json:"is_locked"`
	FailedLoginAttempts int  `json:"-"`

	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// AccountState derives the tagged state from the persisted flags.
// A lock takes precedence over pending verification.
func (u *User) AccountState() AccountState {
	if u.IsLocked {
		return AccountLocked
	}
	if !u.IsEmailVerified {
		return AccountUnverified
	}
	return AccountActive
}

// IsVerificationTokenValid reports whether a verification token is present
// and strictly before its expiry. Equality counts as expired.
func (u *User) IsVerificationTokenValid(now time.Time) bool {
	return u.VerificationToken != nil && u.VerificationTokenExpiry != nil && now.Before(*u.VerificationTokenExpiry)
}

// IsPasswordResetTokenValid reports whether a reset token is present and
// strictly before its expiry.
func (u *User) IsPasswordResetTokenValid(now time.Time) bool {
	return u.PasswordResetToken != nil && u.PasswordResetTokenExpiry != nil && now.Before(*u.PasswordResetTokenExpiry)
}

// IsPremiumActive reports whether the premium subscription is currently in effect.
func (u *User) IsPremiumActive(now time.Time) bool {
	if !u.IsPremium {
		return false
	}
	return u.PremiumExpiryDate == nil || now.Before(*u.PremiumExpiryDate)
}

// UserInfo is the public-safe projection returned by auth responses.
// It never carries the password hash or any security token.
type UserInfo struct {
	ID              string `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profile_image_url"`
	IsPremium       bool   `json:"is_premium"`
	IsEmailVerified bool   `json:"is_email_verified"`
}

// ToUserInfo builds the public-safe projection of the user.
func (u *User) ToUserInfo() UserInfo {
	return UserInfo{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		ProfileImageURL: u.ProfileImageURL,
		IsPremium:       u.IsPremium,
		IsEmailVerified: u.IsEmailVerified,
	}
}

// UserStats is the account summary for the stats endpoint.
type UserStats struct {
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	IsPremium       bool      `json:"is_premium"`
	IsPremiumActive bool      `json:"is_premium_active"`
	MemberSince     time.Time `json:"member_since"`
	ResumeCount     int64     `json:"resume_count"`
}
