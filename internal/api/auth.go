package api

import (
	"context"

	"github.com/lttslabs/etlctl/internal/session"
)

// AuthService wraps the backend's login endpoints. It implements
// [session.Authenticator] so the session can delegate credential exchange
// without depending on this package.
type AuthService struct {
	client *Client
}

// NewAuthService creates an AuthService on the given client.
func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

var _ session.Authenticator = (*AuthService)(nil)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginWithCodeRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Code     string `json:"code"`
}

type loginData struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a token. When creds.Code is set the
// verification-code endpoint is used instead of plain login.
func (s *AuthService) Login(ctx context.Context, creds session.Credentials) (*session.LoginResult, error) {
	var data loginData
	var env *Envelope
	var err error

	if creds.Code != "" {
		env, err = s.client.Post(ctx, "/loginWithCode", loginWithCodeRequest{
			Username: creds.Username,
			Password: creds.Password,
			Code:     creds.Code,
		}, &data)
	} else {
		env, err = s.client.Post(ctx, "/login", loginRequest{
			Username: creds.Username,
			Password: creds.Password,
		}, &data)
	}
	if err != nil {
		return nil, err
	}

	return &session.LoginResult{Token: data.Token, Message: env.Message}, nil
}
