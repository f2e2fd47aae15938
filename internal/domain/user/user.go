package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at sign-up and reset.
const MinPasswordLength = 6

// ErrValidation is wrapped by every input validation error in this package.
var ErrValidation = errors.New("validation failed")

// Validation errors
var (
	ErrEmptyFullName         = fmt.Errorf("%w: full name is required", ErrValidation)
	ErrInvalidPhone          = fmt.Errorf("%w: please enter a valid MTN Rwanda phone number", ErrValidation)
	ErrPasswordTooShort      = fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	ErrPasswordMismatch      = fmt.Errorf("%w: passwords do not match", ErrValidation)
	ErrInvalidTheme          = fmt.Errorf("%w: theme must be dark or light", ErrValidation)
	ErrInvalidOnboardingStep = fmt.Errorf("%w: onboarding step out of range", ErrValidation)
	ErrInvalidMonthlyLimit   = fmt.Errorf("%w: monthly limit cannot be negative", ErrValidation)
)

// ErrInvalidCredentials is returned when a password does not match.
var ErrInvalidCredentials = errors.New("incorrect password")

// bcryptCost is lowered by tests.
var bcryptCost = bcrypt.DefaultCost

// User is a registered MoMo Press account holder, identified by phone number.
type User struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"` // normalized, +250XXXXXXXXX
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser validates a sign-up form and returns the user with a hashed password.
func NewUser(fullName, phone, password, confirm string) (*User, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, ErrEmptyFullName
	}
	if !ValidatePhone(phone) {
		return nil, ErrInvalidPhone
	}
	hash, err := hashNewPassword(password, confirm)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		FullName:     fullName,
		Phone:        NormalizePhone(phone),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CheckPassword returns ErrInvalidCredentials unless password matches.
func (u *User) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// SetPassword replaces the password after the same checks as sign-up.
func (u *User) SetPassword(password, confirm string) error {
	hash, err := hashNewPassword(password, confirm)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func hashNewPassword(password, confirm string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	if password != confirm {
		return "", ErrPasswordMismatch
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
