package client

import (
	"context"
	"net/http"

	"patrimonio/internal/models"
)

// Credentials are the sign-up and sign-in fields.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// AuthResult is returned by sign-up, sign-in and refresh.
type AuthResult struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Profile      *models.Profile `json:"profile"`
}

// ProfileUpdate holds the profile fields a user may change.
type ProfileUpdate struct {
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// SignUp creates a profile and signs it in.
func (c *Client) SignUp(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SignIn exchanges an email and password for tokens.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	creds := Credentials{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Refresh rotates the token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	var result AuthResult
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SignOut revokes the refresh token of the authenticated profile.
func (c *Client) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// Profile fetches the authenticated profile.
func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	var result struct {
		Profile models.Profile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodGet, "/profile", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result.Profile, nil
}

// UpdateProfile changes the authenticated profile's name or avatar.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.Profile, error) {
	var result struct {
		Profile models.Profile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodPut, "/profile", nil, update, &result); err != nil {
		return nil, err
	}
	return &result.Profile, nil
}
