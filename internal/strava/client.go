package strava

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
	"golang.org/x/oauth2"

	"rundash/internal/providers"
	"rundash/internal/structures"
)

type ClientInterface interface {
	Authenticate(ctx context.Context) (*oauth2.Token, error)
	ListActivities(ctx context.Context, page int) ([]SummaryActivity, bool, error)
}

type Client struct {
	conf   structures.StravaConfig
	http   *resty.Client
	api    *resty.Client
	logger providers.Logger
}

func NewClient(conf *structures.Config, logger providers.Logger) *Client {
	return &Client{
		conf:   conf.Strava,
		http:   resty.New().SetTimeout(conf.Strava.Timeout),
		logger: logger,
	}
}

// Authenticate exchanges the refresh token once. Later calls carry the access
// token as a bearer header.
func (c *Client) Authenticate(ctx context.Context) (*oauth2.Token, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     c.conf.ClientID,
			"client_secret": c.conf.ClientSecret,
			"refresh_token": c.conf.RefreshToken,
			"grant_type":    "refresh_token",
			"scope":         c.conf.Scope,
			"f":             "json",
		}).
		Post(c.conf.AuthURL)
	if err != nil {
		return nil, &AuthError{Err: err}
	}

	var body tokenResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil && resp.IsSuccess() {
		return nil, &AuthError{StatusCode: resp.StatusCode(), Err: fmt.Errorf("decode token response: %w", err)}
	}
	if resp.IsError() || body.AccessToken == "" {
		msg := body.Message
		if msg == "" {
			msg = "no access token in response"
		}
		return nil, &AuthError{StatusCode: resp.StatusCode(), Message: msg}
	}

	token := &oauth2.Token{
		AccessToken:  body.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: body.RefreshToken,
	}
	if body.ExpiresAt > 0 {
		token.Expiry = time.Unix(body.ExpiresAt, 0)
	}

	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	c.api = resty.NewWithClient(httpClient).SetTimeout(c.conf.Timeout)
	c.logger.Infof(providers.TypeFetch, "Authenticated against %s", c.conf.AuthURL)
	return token, nil
}

// ListActivities fetches one page. more is false once the API answers with an
// empty page or anything that is not a JSON array.
func (c *Client) ListActivities(ctx context.Context, page int) ([]SummaryActivity, bool, error) {
	if c.api == nil {
		return nil, false, ErrNotAuthenticated
	}
	resp, err := c.api.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"per_page": strconv.Itoa(c.conf.PerPage),
			"page":     strconv.Itoa(page),
		}).
		Get(c.conf.ActivitiesURL)
	if err != nil {
		return nil, false, fmt.Errorf("list activities page %d: %w", page, err)
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 || body[0] != '[' {
		if resp.StatusCode() != http.StatusOK {
			c.logger.Warnf(providers.TypeFetch, "Page %d answered %d, stopping: %s", page, resp.StatusCode(), truncate(body, 200))
		}
		return nil, false, nil
	}

	var items []SummaryActivity
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, false, fmt.Errorf("decode activities page %d: %w", page, err)
	}
	return items, len(items) > 0, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
