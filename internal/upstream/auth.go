package upstream

import (
	"context"
	"net/http"
	"time"

	"github.com/tallerpro/booking-api/internal/model"
)

// AuthClient proxies credential checks to the backend auth context. No
// credentials are stored on this side.
type AuthClient struct {
	c *client
}

func NewAuthClient(baseURL string, timeout time.Duration) *AuthClient {
	return &AuthClient{c: newClient("auth", baseURL, timeout)}
}

type authResponse struct {
	Token   string         `json:"token"`
	User    *model.Usuario `json:"user"`
	Message string         `json:"message"`
}

func (ac *AuthClient) Login(ctx context.Context, req *model.LoginRequest) (*model.Usuario, error) {
	var resp authResponse
	if err := ac.c.do(ctx, "login", http.MethodPost, "/login", req, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, &Error{Service: "auth", StatusCode: http.StatusOK, Message: "login response carried no user"}
	}
	return resp.User, nil
}

func (ac *AuthClient) Register(ctx context.Context, req *model.RegisterRequest) (*model.Usuario, error) {
	var resp authResponse
	if err := ac.c.do(ctx, "register", http.MethodPost, "/register", req, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, &Error{Service: "auth", StatusCode: http.StatusOK, Message: "register response carried no user"}
	}
	return resp.User, nil
}
