package commands

import (
	"errors"
	"fmt"

	"sibcargo/internal/pkg/errs"
	"sibcargo/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand represents the telegram profile seen on /start.
// Handling it creates the user on first contact or refreshes a stale profile.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	telegramID int64
	username   string
	firstName  string
	lastName   string

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand creates a command from a telegram profile.
// Only the telegram id is mandatory; the profile fields may all be empty.
func NewRegisterUserCommand(telegramID int64, username, firstName, lastName string) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setTelegramID(telegramID); err != nil {
		return RegisterUserCommand{}, err
	}

	cmd.username = username
	cmd.firstName = firstName
	cmd.lastName = lastName
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRegisterUserCommandIsNotConstructed if validation fails.
func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

// TelegramID returns the telegram user id.
func (c RegisterUserCommand) TelegramID() int64 {
	return c.telegramID
}

// Username returns the telegram username, possibly empty.
func (c RegisterUserCommand) Username() string {
	return c.username
}

// FirstName returns the telegram first name, possibly empty.
func (c RegisterUserCommand) FirstName() string {
	return c.firstName
}

// LastName returns the telegram last name, possibly empty.
func (c RegisterUserCommand) LastName() string {
	return c.lastName
}

func (c *RegisterUserCommand) setTelegramID(telegramID int64) error {
	if telegramID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("telegramID",
			fmt.Errorf("%d is not a valid telegram user id", telegramID))
	}

	c.telegramID = telegramID
	return nil
}
