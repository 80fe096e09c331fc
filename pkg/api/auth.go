package api

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kerbaras/storyline/pkg/data"
)

// swapped in tests
var timeNow = time.Now

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	RePassword string `json:"re_password"`
}

// Login trades credentials for an access/refresh token pair.
func (c *Client) Login(ctx context.Context, creds Credentials) (*TokenPair, error) {
	var pair TokenPair
	if err := c.postJSON(ctx, "/auth/jwt/create/", creds, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// VerifyToken reports whether the backend still accepts the access token.
// Invalid tokens come back either as a 401 or as a token_not_valid code in
// the body; both demote the session rather than erroring.
func (c *Client) VerifyToken(ctx context.Context, token string) (bool, error) {
	var result struct {
		Code string `json:"code"`
	}
	err := c.postJSON(ctx, "/auth/jwt/verify/", map[string]string{"token": token}, &result)
	if err != nil {
		if _, ok := AsAPIError(err); ok {
			return false, nil
		}
		return false, err
	}
	return result.Code != "token_not_valid", nil
}

// TokenExpired inspects the token's exp claim locally, without verifying the
// signature. An unparseable token counts as expired.
func TokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Before(timeNow())
}

// CurrentUser loads the profile behind the access token.
func (c *Client) CurrentUser(ctx context.Context) (*data.User, error) {
	var user data.User
	if err := c.get(ctx, "/auth/users/me/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates an account. The account still needs activation before it
// can log in.
func (c *Client) Register(ctx context.Context, reg Registration) (*data.User, error) {
	var user data.User
	if err := c.postJSON(ctx, "/auth/users/", reg, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Activate confirms an account with the uid/token pair from the activation
// email.
func (c *Client) Activate(ctx context.Context, uid, token string) error {
	payload := map[string]string{"uid": uid, "token": token}
	return c.postJSON(ctx, "/auth/users/activation/", payload, nil)
}

// ResetPassword requests a password-reset email.
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	return c.postJSON(ctx, "/auth/users/reset_password/", map[string]string{"email": email}, nil)
}

// ConfirmResetPassword sets the new password using the emailed uid/token.
func (c *Client) ConfirmResetPassword(ctx context.Context, uid, token, newPassword, reNewPassword string) error {
	payload := map[string]string{
		"uid":             uid,
		"token":           token,
		"new_password":    newPassword,
		"re_new_password": reNewPassword,
	}
	return c.postJSON(ctx, "/auth/users/reset_password_confirm/", payload, nil)
}
