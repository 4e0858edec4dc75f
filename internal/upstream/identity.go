package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tallerpro/booking-api/internal/model"
)

// IdentityClient resolves a national ID to a legal name through the
// external lookup API.
type IdentityClient struct {
	c     *client
	token string
}

func NewIdentityClient(baseURL, token string, timeout time.Duration) *IdentityClient {
	return &IdentityClient{
		c:     newClient("identity", baseURL, timeout),
		token: token,
	}
}

type identityResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Nombres         string `json:"nombres"`
		ApellidoPaterno string `json:"apellido_paterno"`
		ApellidoMaterno string `json:"apellido_materno"`
	} `json:"data"`
}

func (ic *IdentityClient) Lookup(ctx context.Context, numero string) (*model.Persona, error) {
	path := fmt.Sprintf("/%s?api_token=%s", url.PathEscape(numero), url.QueryEscape(ic.token))

	var resp identityResponse
	if err := ic.c.do(ctx, "lookup", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "document not found"
		}
		return nil, &Error{Service: "identity", StatusCode: http.StatusOK, Message: msg}
	}

	return &model.Persona{
		Nombres:         resp.Data.Nombres,
		ApellidoPaterno: resp.Data.ApellidoPaterno,
		ApellidoMaterno: resp.Data.ApellidoMaterno,
	}, nil
}
