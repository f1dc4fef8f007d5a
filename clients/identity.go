package clients

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"registration/entity"
)

// IdentityClient talks to the identity provider's one-time-code endpoints.
type IdentityClient struct {
	client   *Client
	clientID string
}

func NewIdentityClient(c *Client, clientID string) IdentityClient {
	return IdentityClient{
		client:   c,
		clientID: clientID,
	}
}

type passwordlessStartRequest struct {
	ClientID   string `json:"client_id"`
	Connection string `json:"connection"`
	Send       string `json:"send"`
	Email      string `json:"email"`
}

func (c IdentityClient) RequestCode(ctx context.Context, email string) (entity.CodeRequestResponse, error) {
	req := passwordlessStartRequest{
		ClientID:   c.clientID,
		Connection: "email",
		Send:       "code",
		Email:      email,
	}

	var res struct {
		OTPLength int `json:"otp_length"`
	}
	if err := c.client.Post(ctx, "/oauth2/auth/passwordless/start", nil, req, &res); err != nil {
		return entity.CodeRequestResponse{}, fmt.Errorf("requesting login code: %w", err)
	}

	return entity.CodeRequestResponse{Response: fmt.Sprint(res.OTPLength)}, nil
}

// RedeemCode exchanges a one-time code for tokens. A rejected code comes
// back as an error-shaped LoginResult rather than a Go error.
func (c IdentityClient) RedeemCode(ctx context.Context, code, email string) (entity.LoginResult, error) {
	params := url.Values{
		"grant_type": {"passwordless"},
		"client_id":  {c.clientID},
		"connection": {"email"},
		"otp":        {code},
		"email":      {email},
	}

	var res entity.LoginResult
	err := c.client.Post(ctx, "/oauth2/token", params, nil, &res)

	var se *StatusError
	if errors.As(err, &se) && se.StatusCode < 500 {
		var rejected entity.LoginResult
		if decodeErr := decodeJSON(se.Body, &rejected); decodeErr == nil && rejected.Failed() {
			return rejected, nil
		}
		return entity.LoginResult{Error: "invalid_grant", ErrorDescription: se.Message}, nil
	}
	if err != nil {
		return entity.LoginResult{}, fmt.Errorf("redeeming login code: %w", err)
	}

	return res, nil
}
