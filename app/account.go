package app

import (
	"context"

	"github.com/CrestNiraj12/echoterm/domain"
)

// AccountService provides information about the authenticated user.
type AccountService interface {
	// Me returns the user that owns the current credential.
	Me(ctx context.Context) (domain.User, error)
}
