package gateway

import (
	"context"
	"fmt"

	errs "github.com/jrsteele09/taskflow/internal/errors"
	"github.com/jrsteele09/taskflow/session"
)

const pathLogin = "/Account/login"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

var _ session.Authenticator = (*Client)(nil)

// Authenticate posts the credentials without a bearer token. Whatever goes
// wrong, the caller only learns that authentication failed.
func (c *Client) Authenticate(ctx context.Context, creds session.Credentials) (string, error) {
	var resp loginResponse
	err := c.Bind(nil).Post(ctx, pathLogin, loginRequest{Username: creds.Username, Password: creds.Password}, &resp)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errs.ErrAuthenticationFailed, err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: no token in login response", errs.ErrAuthenticationFailed)
	}
	return resp.Token, nil
}
