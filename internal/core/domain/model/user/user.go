package user

import (
	"errors"
	"fmt"

	"sibcargo/internal/pkg/errs"
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through the NewUser or RestoreUser factory methods.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

// User represents a customer registered through the chat. The telegram id is
// the natural identity; the profile fields mirror whatever telegram reported
// at the last contact and may all be empty.
type User struct {
	telegramID int64
	username   string
	firstName  string
	lastName   string
	phone      string
	isManager  bool

	isConstructed bool
}

// NewUser creates a user from the telegram profile seen at first contact.
func NewUser(telegramID int64, username, firstName, lastName string) (*User, error) {
	u := &User{isConstructed: true}

	if err := u.setTelegramID(telegramID); err != nil {
		return nil, err
	}
	u.username = username
	u.firstName = firstName
	u.lastName = lastName
	return u, nil
}

// RestoreUser reconstructs a user from persistence.
// Used exclusively by repository implementations.
func RestoreUser(telegramID int64, username, firstName, lastName, phone string, isManager bool) (*User, error) {
	u, err := NewUser(telegramID, username, firstName, lastName)
	if err != nil {
		return nil, err
	}
	u.phone = phone
	u.isManager = isManager
	return u, nil
}

// Validate ensures the User instance was properly constructed.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// IsEqual compares two users by telegram id.
func (u *User) IsEqual(other *User) bool {
	return other != nil && u.telegramID == other.telegramID
}

// TelegramID returns the user's telegram id.
func (u *User) TelegramID() int64 {
	return u.telegramID
}

// Username returns the telegram username, possibly empty.
func (u *User) Username() string {
	return u.username
}

// FirstName returns the telegram first name, possibly empty.
func (u *User) FirstName() string {
	return u.firstName
}

// LastName returns the telegram last name, possibly empty.
func (u *User) LastName() string {
	return u.lastName
}

// Phone returns the contact phone, possibly empty.
func (u *User) Phone() string {
	return u.phone
}

// IsManager reports whether the user may use manager tooling.
func (u *User) IsManager() bool {
	return u.isManager
}

// DisplayName returns the most specific non-empty name for greetings.
func (u *User) DisplayName() string {
	switch {
	case u.firstName != "":
		return u.firstName
	case u.username != "":
		return u.username
	default:
		return fmt.Sprintf("id%d", u.telegramID)
	}
}

// RefreshProfile updates the profile fields from a fresh telegram sighting and
// reports whether anything actually changed. Empty incoming values do not
// erase known ones.
func (u *User) RefreshProfile(username, firstName, lastName string) bool {
	changed := false
	if username != "" && username != u.username {
		u.username = username
		changed = true
	}
	if firstName != "" && firstName != u.firstName {
		u.firstName = firstName
		changed = true
	}
	if lastName != "" && lastName != u.lastName {
		u.lastName = lastName
		changed = true
	}
	return changed
}

// SetPhone records the contact phone shared by the user.
func (u *User) SetPhone(phone string) {
	u.phone = phone
}

// PromoteToManager grants access to manager tooling.
func (u *User) PromoteToManager() {
	u.isManager = true
}

func (u *User) setTelegramID(telegramID int64) error {
	if telegramID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("telegramID",
			fmt.Errorf("%d is not a valid telegram user id", telegramID))
	}
	u.telegramID = telegramID
	return nil
}
