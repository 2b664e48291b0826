package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/wrenhollow/reel/internal/models"
	"github.com/wrenhollow/reel/internal/shared"
	"golang.org/x/oauth2"
)

// TokenPair is the credential pair issued by the auth endpoints.
type TokenPair struct {
	Access  string
	Refresh string
}

// Account is the authenticated user's own record from /auth/me.
type Account struct {
	UserID    string           `json:"user_id"`
	Email     string           `json:"email"`
	Username  string           `json:"username"`
	IsActive  bool             `json:"is_active"`
	CreatedAt models.Timestamp `json:"created_at"`
	LastLogin models.Timestamp `json:"last_login"`
}

// oauthConfig builds the password-grant config for the platform's login
// endpoint, which accepts form-encoded username+password+grant_type=password
// and returns {access_token, refresh_token, token_type}.
func (c *Client) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.baseURL + "/auth/login",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// Login exchanges an email and password for a token pair.
//
// Server rejection details (wrong password, inactive account) are preserved
// verbatim for display.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := c.oauthConfig().PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			var body apiError
			if jsonErr := decodeJSON(retrieveErr.Body, &body); jsonErr == nil && body.Detail != "" {
				return nil, fmt.Errorf("%w: %s", shared.ErrAuthFailed, body.Detail)
			}
			return nil, fmt.Errorf("%w: status %d", shared.ErrAuthFailed, retrieveErr.Response.StatusCode)
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if token.AccessToken == "" || token.RefreshToken == "" {
		return nil, fmt.Errorf("%w: incomplete token response", shared.ErrAuthFailed)
	}

	return &TokenPair{Access: token.AccessToken, Refresh: token.RefreshToken}, nil
}

// Register creates a new account. The caller must follow up with Login to
// obtain a token pair.
func (c *Client) Register(ctx context.Context, email, username, password string) error {
	payload := struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}{email, username, password}

	if err := c.doRequest(ctx, http.MethodPost, "/auth/register", nil, payload, nil); err != nil {
		if errors.Is(err, shared.ErrServerRejected) {
			return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
		}
		return err
	}
	return nil
}

// Validate checks an access token against the identity endpoint and returns
// the account it belongs to.
func (c *Client) Validate(ctx context.Context, accessToken string) (*Account, error) {
	var account Account
	if err := c.doRequest(ctx, http.MethodGet, "/auth/me", StaticBearer(accessToken), nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Me returns the account for the managed session credential.
func (c *Client) Me(ctx context.Context) (*Account, error) {
	var account Account
	if err := c.doRequest(ctx, http.MethodGet, "/auth/me", c.bearer, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Refresh exchanges a refresh token for a new token pair. The refresh token
// itself is presented as the bearer credential.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, shared.ErrNoRefreshToken
	}

	var token struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
	}

	if err := c.doRequest(ctx, http.MethodGet, "/auth/refresh", StaticBearer(refreshToken), nil, &token); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	if token.AccessToken == "" || token.RefreshToken == "" {
		return nil, fmt.Errorf("%w: incomplete token response", shared.ErrRefreshFailed)
	}

	return &TokenPair{Access: token.AccessToken, Refresh: token.RefreshToken}, nil
}
