// Package userrepo provides data transfer objects and mapping functions for user persistence.
// Users are keyed by their telegram id, so the table needs no surrogate key.
package userrepo

import (
	"time"

	"sibcargo/internal/core/domain/model/user"
)

// UserDTO represents the database structure for persisting users.
type UserDTO struct {
	TelegramID int64 `gorm:"type:bigint;primaryKey"`
	Username   string
	FirstName  string
	LastName   string
	Phone      string
	IsManager  bool

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for user entities.
// Overrides GORM's default naming convention to use "users".
func (UserDTO) TableName() string {
	return "users"
}

// fromDomain converts a user entity to its database representation.
func fromDomain(aggregate *user.User) UserDTO {
	return UserDTO{
		TelegramID: aggregate.TelegramID(),
		Username:   aggregate.Username(),
		FirstName:  aggregate.FirstName(),
		LastName:   aggregate.LastName(),
		Phone:      aggregate.Phone(),
		IsManager:  aggregate.IsManager(),
	}
}

// toDomain converts a database DTO to a user entity using RestoreUser.
func toDomain(dto UserDTO) (*user.User, error) {
	return user.RestoreUser(
		dto.TelegramID,
		dto.Username,
		dto.FirstName,
		dto.LastName,
		dto.Phone,
		dto.IsManager,
	)
}
