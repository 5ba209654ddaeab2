package echo

import (
	"context"
	"fmt"

	"github.com/CrestNiraj12/echoterm/domain"
)

// accountService implements app.AccountService using the Echo API.
type accountService struct {
	client *Client
}

// NewAccountService creates an AccountService backed by the Echo API.
func NewAccountService(client *Client) *accountService {
	return &accountService{client: client}
}

// Me requires a credential; without one it returns domain.ErrAuthRequired
// and sends nothing.
func (s *accountService) Me(ctx context.Context) (domain.User, error) {
	if !s.client.HasCredential() {
		return domain.User{}, domain.ErrAuthRequired
	}
	data, err := s.client.Get(ctx, "/me/")
	if err != nil {
		return domain.User{}, fmt.Errorf("fetching account: %w", err)
	}
	return decodeUser(data)
}
