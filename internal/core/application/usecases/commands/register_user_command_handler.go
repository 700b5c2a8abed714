package commands

import (
	"context"
	"errors"

	"sibcargo/internal/core/domain/model/user"
	"sibcargo/internal/pkg/errs"
)

// RegisterUserCommandHandler implements the get-or-create semantics of /start.
// An unknown telegram id becomes a new user; a known one gets its profile
// refreshed when telegram reports changed fields.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewRegisterUserCommandHandler creates a handler for user registration.
// Requires a UserUoWFactory for transactional persistence.
func NewRegisterUserCommandHandler(uowFactory UserUoWFactory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command and returns the current user.
// Registration is idempotent: repeated /start with an unchanged profile
// performs no write at all.
func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	existing, err := userRepo.Get(ctx, cmd.TelegramID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	if existing == nil || errors.Is(err, errs.ErrObjectNotFound) {
		created, err := user.NewUser(cmd.TelegramID(), cmd.Username(), cmd.FirstName(), cmd.LastName())
		if err != nil {
			return nil, err
		}
		if err = userRepo.Add(ctx, created); err != nil {
			return nil, err
		}
		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		return created, nil
	}

	if !existing.RefreshProfile(cmd.Username(), cmd.FirstName(), cmd.LastName()) {
		return existing, nil
	}

	if err = userRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return existing, nil
}
