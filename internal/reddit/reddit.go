// Package reddit submits one text post per article to a configured
// subreddit. Every failure mode is reported in the returned PostResult;
// posting never raises and never aborts the enclosing run.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coolfinds/internal/config"
	"coolfinds/internal/core"
)

const (
	defaultTokenURL  = "https://www.reddit.com/api/v1/access_token"
	defaultSubmitURL = "https://oauth.reddit.com/api/submit"
)

// Client posts articles to Reddit via the OAuth password grant.
type Client struct {
	cfg        config.Reddit
	websiteURL string
	tokenURL   string
	submitURL  string
	httpClient *http.Client
}

// NewClient creates a Reddit client. websiteURL is the reader-facing site
// the post links back to.
func NewClient(cfg config.Reddit, websiteURL string) *Client {
	return &Client{
		cfg:        cfg,
		websiteURL: websiteURL,
		tokenURL:   defaultTokenURL,
		submitURL:  defaultSubmitURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) userAgent() string {
	return "CoolFindsBot/1.0 by " + c.cfg.Username
}

// Post exchanges the configured credentials for a bearer token and submits
// the article's social draft as a self post. Missing credentials are a
// reported skip, not an error; network and protocol failures come back as
// non-success results.
func (c *Client) Post(ctx context.Context, article core.Article) core.PostResult {
	if !c.cfg.HasRedditCredentials() {
		return core.PostResult{Success: false, Error: "missing Reddit credentials in config"}
	}

	token, err := c.fetchToken(ctx)
	if err != nil {
		return core.PostResult{Success: false, Error: err.Error()}
	}

	data, err := c.submit(ctx, token, article)
	if err != nil {
		return core.PostResult{Success: false, Error: err.Error()}
	}
	return core.PostResult{Success: true, Data: data}
}

// fetchToken performs the basic-auth password grant.
func (c *Client) fetchToken(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type": {"password"},
		"username":   {c.cfg.Username},
		"password":   {c.cfg.Password},
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}

	var tokenData struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tokenData); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenData.AccessToken == "" {
		return "", fmt.Errorf("failed to get access token")
	}
	return tokenData.AccessToken, nil
}

// submit posts the article's draft plus canonical URL to the target
// subreddit.
func (c *Client) submit(ctx context.Context, token string, article core.Article) (any, error) {
	articleURL := fmt.Sprintf("%s/article.html?id=%s", c.websiteURL, article.Slug)
	fullBody := fmt.Sprintf("%s\n\nRead more at: %s", article.RedditPost, articleURL)

	subreddit := c.cfg.Subreddit
	if subreddit == "" {
		subreddit = "test"
	}

	form := url.Values{
		"sr":    {subreddit},
		"kind":  {"self"},
		"title": {article.Title},
		"text":  {fullBody},
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.submitURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create submit request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read submit response: %w", err)
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode submit response: %w", err)
	}
	return result, nil
}
