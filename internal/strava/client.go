package strava

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/oauth2"
)

const BaseURL = "https://www.strava.com/api/v3"

// TokenURL is Strava's OAuth token endpoint, used to exchange the
// configured refresh token for short-lived access tokens.
const TokenURL = "https://www.strava.com/oauth/token"

var (
	// ErrUnauthorized means Strava rejected the access token (HTTP 401).
	ErrUnauthorized = errors.New("strava: unauthorized")
	// ErrRateLimited means Strava refused the request for quota reasons (HTTP 429).
	ErrRateLimited = errors.New("strava: rate limited")
	// ErrUploadPending means an upload was still processing when the
	// poll budget ran out.
	ErrUploadPending = errors.New("strava: upload still processing")
)

// Config holds the credentials needed to call the Strava API on behalf
// of a single athlete. User-facing OAuth (consent, callbacks) is the
// host runtime's job; this client only refreshes an existing grant.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	Timeout      time.Duration
}

// Client is a Strava API client.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *RateLimiter
}

// New creates a client that authenticates with the configured refresh token.
func New(cfg Config) *Client {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: TokenURL},
	}
	token := &oauth2.Token{RefreshToken: cfg.RefreshToken}

	httpClient := oauth2.NewClient(context.Background(), oauthCfg.TokenSource(context.Background(), token))
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}

	return NewWithHTTPClient(httpClient, BaseURL)
}

// NewWithHTTPClient creates a client around an existing http.Client and
// base URL. Tests point this at an httptest server.
func NewWithHTTPClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		rateLimiter: NewRateLimiter(),
	}
}

// GetActivities fetches one page of the athlete's activities.
// A zero 'after' means no lower time bound.
func (c *Client) GetActivities(ctx context.Context, after time.Time, page, perPage int) ([]Activity, error) {
	params := url.Values{}
	if !after.IsZero() {
		params.Set("after", strconv.FormatInt(after.Unix(), 10))
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	var activities []Activity
	if err := c.getJSON(ctx, "/athlete/activities", params, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetAllActivities fetches every activity after the given time,
// paginating until Strava returns a short page.
func (c *Client) GetAllActivities(ctx context.Context, after time.Time) ([]Activity, error) {
	var all []Activity
	page := 1
	perPage := 100 // max allowed by Strava

	for {
		activities, err := c.GetActivities(ctx, after, page, perPage)
		if err != nil {
			return all, fmt.Errorf("fetching page %d: %w", page, err)
		}
		all = append(all, activities...)
		if len(activities) < perPage {
			return all, nil
		}
		page++
	}
}

// GetActivity fetches one activity with detail fields (splits, map).
func (c *Client) GetActivity(ctx context.Context, id int64) (*Activity, error) {
	var activity Activity
	path := fmt.Sprintf("/activities/%d", id)
	if err := c.getJSON(ctx, path, nil, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// UploadRoute uploads a GPX document as a new activity file.
// The returned upload is usually still processing; poll with WaitForUpload.
func (c *Client) UploadRoute(ctx context.Context, name, gpx string) (*Upload, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", "route.gpx")
	if err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	if _, err := io.WriteString(part, gpx); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	for field, value := range map[string]string{
		"name":          name,
		"data_type":     "gpx",
		"activity_type": "run",
	} {
		if err := w.WriteField(field, value); err != nil {
			return nil, fmt.Errorf("building upload form: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/uploads", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var upload Upload
	if err := json.NewDecoder(resp.Body).Decode(&upload); err != nil {
		return nil, fmt.Errorf("decoding upload response: %w", err)
	}
	return &upload, nil
}

// GetUpload fetches the processing status of an upload.
func (c *Client) GetUpload(ctx context.Context, id int64) (*Upload, error) {
	var upload Upload
	path := fmt.Sprintf("/uploads/%d", id)
	if err := c.getJSON(ctx, path, nil, &upload); err != nil {
		return nil, err
	}
	return &upload, nil
}

// WaitForUpload polls an upload until it is ready, failed, or attempts
// run out. The delay between polls is fixed; Strava's processing time
// does not reward backoff.
func (c *Client) WaitForUpload(ctx context.Context, id int64, attempts int, delay time.Duration) (*Upload, error) {
	var last *Upload
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return last, ctx.Err()
			}
		}

		upload, err := c.GetUpload(ctx, id)
		if err != nil {
			return last, err
		}
		last = upload

		if upload.Error != "" {
			return upload, fmt.Errorf("upload %d failed: %s", id, upload.Error)
		}
		if upload.Ready() {
			return upload, nil
		}
	}
	return last, fmt.Errorf("upload %d after %d attempts: %w", id, attempts, ErrUploadPending)
}

// RateLimitStatus returns the remaining request budget.
func (c *Client) RateLimitStatus() (shortRemaining, dailyRemaining int) {
	return c.rateLimiter.Status()
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// do sends the request, updates rate limit state from response headers,
// and maps error statuses. Callers own resp.Body on success.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	c.rateLimiter.UpdateFromHeaders(resp.Header)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		resp.Body.Close()
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	return resp, nil
}
