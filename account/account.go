// Package account reads the signed-in user's profile from the backend.
package account

import (
	"context"
	"net/url"
	"strings"
)

const pathMe = "/Account/me"

type Getter interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// DisplayName falls back to the username when no full name is on record
func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return u.Username
}

type Service struct {
	api Getter
}

func NewService(api Getter) *Service {
	return &Service{api: api}
}

// Me is the current-user check. Some backend builds wrap the user in a
// "user" object, others return it bare.
func (s *Service) Me(ctx context.Context) (User, error) {
	var resp struct {
		Nested *User `json:"user"`
		User
	}
	if err := s.api.Get(ctx, pathMe, nil, &resp); err != nil {
		return User{}, err
	}
	if resp.Nested != nil {
		return *resp.Nested, nil
	}
	return resp.User, nil
}
