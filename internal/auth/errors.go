package auth

import "errors"

var (
	// ErrInvalidOldPassword is returned when the old password does not match the current one.
	ErrInvalidOldPassword = errors.New("invalid old password")

	// ErrUserNameOrEmailExists is returned when a user with the same username or email exists.
	ErrUserNameOrEmailExists = errors.New("user with username or email already exists")

	// ErrUserAccountDisabled is returned when a disabled account tries to log in.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrInvalidPassword is returned when the password is incorrect.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUserNotFound is returned when no user has the given username or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameEmpty is returned when creating a user without a username.
	ErrUsernameEmpty = errors.New("username cannot be empty")

	// ErrPasswordTooShort is returned for passwords shorter than MinPasswordLength.
	ErrPasswordTooShort = errors.New("password is too short")
)
