package auth

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/nurpe/aifa-contracts/internal/model"
)

// Session is the token pair returned by a successful sign-in.
type Session struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresAt    time.Time   `json:"expires_at"`
	User         *model.User `json:"user"`
}

// Client talks to the hosted auth REST API (GoTrue compatible).
type Client struct {
	httpClient *resty.Client
	log        zerolog.Logger
}

func NewClient(baseURL, anonKey string, timeout time.Duration, log zerolog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("apikey", anonKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{httpClient: httpClient, log: log}
}

type wireUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	AppMetadata  map[string]any `json:"app_metadata"`
	UserMetadata map[string]any `json:"user_metadata"`
}

type wireSession struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	ExpiresAt    int64     `json:"expires_at"`
	User         *wireUser `json:"user"`
}

type wireSignUp struct {
	wireUser
	User *wireUser `json:"user"`
}

type wireError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func (e wireError) detail() string {
	for _, candidate := range []string{e.Msg, e.ErrorDescription, e.Message, e.ErrorCode, e.Error} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return ""
}

func (c *Client) SignUp(ctx context.Context, email, password, name string) (*model.User, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data": map[string]any{
			"full_name": name,
		},
	}

	var result wireSignUp
	var failure wireError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&failure).
		Post("/auth/v1/signup")
	if err := c.check(resp, err, failure, "signup"); err != nil {
		return nil, err
	}

	user := result.User
	if user == nil {
		user = &result.wireUser
	}
	return toUser(*user), nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var result wireSession
	var failure wireError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "password").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&result).
		SetError(&failure).
		Post("/auth/v1/token")
	if err := c.check(resp, err, failure, "sign-in"); err != nil {
		return nil, err
	}
	if result.AccessToken == "" || result.User == nil {
		return nil, Classify("empty session in sign-in response")
	}

	expiresAt := time.Unix(result.ExpiresAt, 0).UTC()
	if result.ExpiresAt == 0 {
		expiresAt = time.Now().UTC().Add(time.Duration(result.ExpiresIn) * time.Second)
	}

	return &Session{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresAt:    expiresAt,
		User:         toUser(*result.User),
	}, nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	var failure wireError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetError(&failure).
		Post("/auth/v1/logout")
	return c.check(resp, err, failure, "sign-out")
}

func (c *Client) GetUser(ctx context.Context, accessToken string) (*model.User, error) {
	var result wireUser
	var failure wireError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&result).
		SetError(&failure).
		Get("/auth/v1/user")
	if err := c.check(resp, err, failure, "get-user"); err != nil {
		return nil, err
	}
	if result.ID == "" {
		return nil, Classify("session_not_found")
	}
	return toUser(result), nil
}

func (c *Client) check(resp *resty.Response, err error, failure wireError, op string) error {
	if err != nil {
		c.log.Error().Err(err).Str("op", op).Msg("auth provider call failed")
		return unavailable(err)
	}
	if resp.IsError() {
		detail := failure.detail()
		if detail == "" {
			detail = resp.Status()
		}
		classified := Classify(detail)
		c.log.Warn().
			Str("op", op).
			Int("status_code", resp.StatusCode()).
			Str("kind", string(classified.Kind)).
			Str("detail", detail).
			Msg("auth provider rejected request")
		return classified
	}
	return nil
}

func toUser(w wireUser) *model.User {
	name := metadataString(w.UserMetadata, "full_name")
	if name == "" {
		name = metadataString(w.UserMetadata, "name")
	}
	if name == "" {
		name = emailLocalPart(w.Email)
	}

	return &model.User{
		ID:     w.ID,
		Name:   name,
		Email:  w.Email,
		Role:   model.ParseUserRole(metadataString(w.AppMetadata, "role")),
		Avatar: metadataString(w.UserMetadata, "avatar_url"),
	}
}

func emailLocalPart(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
