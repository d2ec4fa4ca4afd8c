package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/fieldcms/fieldcms/internal/db/models"
)

// MinPasswordLength is enforced when a password is set.
const MinPasswordLength = 8

const whereID = "id = ?"

// Accounts authenticates and manages users stored in the database.
type Accounts struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAccounts returns the account service of db.
func NewAccounts(db *gorm.DB) *Accounts {
	return &Accounts{
		db:  db,
		now: time.Now,
	}
}

// Authenticate checks username and password. Unknown users and wrong
// passwords are told apart so callers can log them; show both as one message.
func (a *Accounts) Authenticate(username, password string) (*models.User, error) {
	user, err := a.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}

	if !user.Active {
		return nil, ErrUserAccountDisabled
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	user.UpdatedAt = a.now()
	if err = a.db.Model(user).Update("updated_at", user.UpdatedAt).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// CreateUser creates an active user.
func (a *Accounts) CreateUser(username, email, password, firstName, lastName string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameEmpty
	}

	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	var existing models.User

	err := a.db.Where("username = ? OR (email = ? AND email <> '')", username, email).First(&existing).Error
	if err == nil {
		return nil, ErrUserNameOrEmailExists
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	user := &models.User{
		Active:    true,
		Username:  username,
		Email:     email,
		Password:  models.HashPassword(password),
		FirstName: firstName,
		LastName:  lastName,
	}

	if err = a.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// ChangePassword sets a new password after checking the old one.
func (a *Accounts) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	var user models.User
	if err := a.db.Where(whereID, userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("failed to load user: %w", err)
	}

	if !user.VerifyPassword(oldPassword) {
		return ErrInvalidOldPassword
	}

	return a.setPassword(user.ID, newPassword)
}

// ResetPassword sets a new password without checking the old one.
func (a *Accounts) ResetPassword(username, newPassword string) error {
	user, err := a.GetUserByUsername(username)
	if err != nil {
		return err
	}

	return a.setPassword(user.ID, newPassword)
}

func (a *Accounts) setPassword(userID uint64, password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	return a.db.Model(&models.User{}).
		Where(whereID, userID).
		Update("password", models.HashPassword(password)).Error
}

// SetActive enables or disables login for a user.
func (a *Accounts) SetActive(username string, active bool) error {
	result := a.db.Model(&models.User{}).Where("username = ?", username).Update("active", active)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// GetUserByUsername retrieves a user by username.
func (a *Accounts) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := a.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return &user, nil
}

// ListUsers returns all users ordered by username.
func (a *Accounts) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := a.db.Order("username ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
