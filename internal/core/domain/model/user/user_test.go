package user_test

import (
	"testing"

	"sibcargo/internal/core/domain/model/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("should create user with full profile", func(t *testing.T) {
		u, err := user.NewUser(123456789, "ivan", "Иван", "Петров")

		require.NoError(t, err)
		require.NoError(t, u.Validate())
		assert.Equal(t, int64(123456789), u.TelegramID())
		assert.Equal(t, "ivan", u.Username())
		assert.Equal(t, "Иван", u.FirstName())
		assert.Equal(t, "Петров", u.LastName())
		assert.Empty(t, u.Phone())
		assert.False(t, u.IsManager())
	})

	t.Run("should create user with empty profile fields", func(t *testing.T) {
		u, err := user.NewUser(1, "", "", "")

		require.NoError(t, err)
		require.NoError(t, u.Validate())
	})

	t.Run("should fail with non-positive telegram id", func(t *testing.T) {
		u, err := user.NewUser(0, "ivan", "Иван", "")

		require.Error(t, err)
		assert.Nil(t, u)
		assert.Contains(t, err.Error(), "telegramID")
	})
}

func TestRestoreUser(t *testing.T) {
	t.Run("should restore user with phone and manager flag", func(t *testing.T) {
		u, err := user.RestoreUser(42, "boss", "Олег", "", "+79130000000", true)

		require.NoError(t, err)
		assert.Equal(t, "+79130000000", u.Phone())
		assert.True(t, u.IsManager())
	})

	t.Run("should fail with invalid telegram id", func(t *testing.T) {
		u, err := user.RestoreUser(-1, "", "", "", "", false)

		require.Error(t, err)
		assert.Nil(t, u)
	})
}

func TestUser_Validate(t *testing.T) {
	t.Run("should fail for nil user", func(t *testing.T) {
		var u *user.User

		assert.Equal(t, user.ErrUserIsNotConstructed, u.Validate())
	})

	t.Run("should fail for zero-value user", func(t *testing.T) {
		var u user.User

		assert.Equal(t, user.ErrUserIsNotConstructed, u.Validate())
	})
}

func TestUser_RefreshProfile(t *testing.T) {
	t.Run("should report changes and update fields", func(t *testing.T) {
		u, _ := user.NewUser(42, "ivan", "Иван", "Петров")

		changed := u.RefreshProfile("ivan2026", "Иван", "Петров")

		assert.True(t, changed)
		assert.Equal(t, "ivan2026", u.Username())
	})

	t.Run("should report no change for identical profile", func(t *testing.T) {
		u, _ := user.NewUser(42, "ivan", "Иван", "Петров")

		assert.False(t, u.RefreshProfile("ivan", "Иван", "Петров"))
	})

	t.Run("empty incoming values do not erase known ones", func(t *testing.T) {
		u, _ := user.NewUser(42, "ivan", "Иван", "Петров")

		changed := u.RefreshProfile("", "", "")

		assert.False(t, changed)
		assert.Equal(t, "ivan", u.Username())
		assert.Equal(t, "Иван", u.FirstName())
	})
}

func TestUser_DisplayName(t *testing.T) {
	t.Run("prefers first name", func(t *testing.T) {
		u, _ := user.NewUser(42, "ivan", "Иван", "")

		assert.Equal(t, "Иван", u.DisplayName())
	})

	t.Run("falls back to username", func(t *testing.T) {
		u, _ := user.NewUser(42, "ivan", "", "")

		assert.Equal(t, "ivan", u.DisplayName())
	})

	t.Run("falls back to telegram id", func(t *testing.T) {
		u, _ := user.NewUser(42, "", "", "")

		assert.Equal(t, "id42", u.DisplayName())
	})
}

func TestUser_IsEqual(t *testing.T) {
	a, _ := user.NewUser(42, "a", "", "")
	b, _ := user.NewUser(42, "b", "", "")
	c, _ := user.NewUser(43, "a", "", "")

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.False(t, a.IsEqual(nil))
}
