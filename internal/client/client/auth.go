package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/codepad/internal/client/models"
)

// authResponse covers both response shapes: sign-in returns the profile as
// "UserProfile", sign-up as "user".
type authResponse struct {
	UserProfile *models.User `json:"UserProfile"`
	User        *models.User `json:"user"`
	Token       string       `json:"token"`
	AccessToken string       `json:"access_token"`
}

func (r authResponse) result() *models.AuthResult {
	res := &models.AuthResult{User: r.UserProfile, Token: r.Token}
	if res.User == nil {
		res.User = r.User
	}
	if res.Token == "" {
		res.Token = r.AccessToken
	}
	return res
}

// SignIn posts the OAuth2 password-grant form.
func (c *HTTPClient) SignIn(ctx context.Context, username, password string) (*models.AuthResult, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", username)
	form.Set("password", password)
	form.Set("client_id", "")
	form.Set("client_secret", "")

	r := request{
		op:          "sign in",
		method:      http.MethodPost,
		base:        c.baseURL,
		path:        "/user/sign_in",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}

	var resp authResponse
	if err := c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return resp.result(), nil
}

// SignUp sends the profile fields as query parameters and the optional avatar
// as a multipart body.
func (c *HTTPClient) SignUp(ctx context.Context, f models.SignUpForm) (*models.AuthResult, error) {
	q := url.Values{}
	q.Set("name", f.Name)
	q.Set("surname", f.Surname)
	q.Set("email", f.Email)
	q.Set("phone", f.Phone)
	q.Set("age", f.Age)
	q.Set("username", f.Username)
	q.Set("hash_password", f.Password)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if f.Avatar != nil {
		part, err := mw.CreateFormFile("avatar", f.Avatar.Filename)
		if err != nil {
			return nil, fmt.Errorf("sign up: %w", err)
		}
		if _, err := part.Write(f.Avatar.Data); err != nil {
			return nil, fmt.Errorf("sign up: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	r := request{
		op:          "sign up",
		method:      http.MethodPost,
		base:        c.baseURL,
		path:        "/user/sign_up",
		query:       q,
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}

	var resp authResponse
	if err := c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return resp.result(), nil
}
