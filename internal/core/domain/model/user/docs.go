// Package user provides the User entity for customers registered through the
// chat. Identity is the telegram user id; the profile mirrors what telegram
// reported at the last contact and is refreshed on every /start.
package user
