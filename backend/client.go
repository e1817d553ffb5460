package backend

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Ebzefr/WebSecura/logger"
	"github.com/Ebzefr/WebSecura/models"

	"github.com/andybalholm/brotli"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 16 << 20

// Client talks to the WebSecura backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client rooted at baseURL (scheme://host[:port], no
// trailing /api).
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL is the backend root this client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: encoding request body: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%s: building request: %w", op, err)
	}
	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br, gzip")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.HTTPError("%s %s [%s] transport error after %s: %v", method, path, requestID, time.Since(start), err)
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := readBody(resp)
	if err != nil {
		logger.HTTPError("%s %s [%s] reading body failed: %v", method, path, requestID, err)
		return nil, &TransportError{Op: op, Err: err}
	}
	logger.HTTPInfo("%s %s [%s] -> %d (%d bytes, %s)", method, path, requestID, resp.StatusCode, len(respBody), time.Since(start))

	trimmed := bytes.TrimSpace(respBody)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.HTTPDebug("%s %s [%s] error body: %.512s", method, path, requestID, respBody)
		if len(trimmed) > 0 && !gjson.ValidBytes(trimmed) {
			// A page from a proxy or a wrong base URL, not the API.
			return nil, &ShapeError{Op: op, StatusCode: resp.StatusCode, ContentType: resp.Header.Get("Content-Type")}
		}
		return nil, &ServerError{Op: op, StatusCode: resp.StatusCode, Message: serverMessage(trimmed)}
	}

	if len(trimmed) == 0 {
		return []byte("{}"), nil
	}
	if !gjson.ValidBytes(trimmed) {
		return nil, &ShapeError{Op: op, ContentType: resp.Header.Get("Content-Type")}
	}
	return trimmed, nil
}

// readBody reads the (possibly compressed) response body. Setting
// Accept-Encoding ourselves turns off net/http's transparent gzip, so both
// encodings are handled here.
func readBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "br":
		r = brotli.NewReader(resp.Body)
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	return io.ReadAll(io.LimitReader(r, maxBodyBytes))
}

// serverMessage pulls the human readable reason out of an error body.
func serverMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, key := range []string{"error", "message", "detail"} {
		if v := gjson.GetBytes(body, key); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

func decode(op string, body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &ShapeError{Op: op, ContentType: "application/json", Err: err}
	}
	return nil
}

// locate returns the first of keys present in body, or the root itself.
func locate(body []byte, keys ...string) gjson.Result {
	for _, k := range keys {
		if v := gjson.GetBytes(body, k); v.Exists() {
			return v
		}
	}
	return gjson.ParseBytes(body)
}

func userQuery(param string, id int64) url.Values {
	q := url.Values{}
	q.Set(param, fmt.Sprint(id))
	return q
}

// Scan submits target for scanning. userID is attached when non-nil.
func (c *Client) Scan(ctx context.Context, target string, userID *int64) (*models.ScanReport, error) {
	const op = "scan"
	body, err := c.do(ctx, op, http.MethodPost, "/api/scan", nil, models.ScanRequest{URL: target, UserID: userID})
	if err != nil {
		return nil, err
	}
	if status := gjson.GetBytes(body, "status").String(); status != "success" {
		msg := serverMessage(body)
		if msg == "" {
			msg = "Scan failed"
		}
		return nil, &ServerError{Op: op, StatusCode: http.StatusOK, Message: msg}
	}
	if !gjson.GetBytes(body, "results").IsArray() {
		return nil, &ShapeError{Op: op, ContentType: "application/json", Err: errors.New("success response without a results array")}
	}
	var sr models.ScanResponse
	if err := decode(op, body, &sr); err != nil {
		return nil, err
	}
	return sr.Report(), nil
}

func (c *Client) authCall(ctx context.Context, op, path string, payload interface{}) (*models.AuthResponse, error) {
	body, err := c.do(ctx, op, http.MethodPost, path, nil, payload)
	if err != nil {
		return nil, err
	}
	var ar models.AuthResponse
	if err := decode(op, body, &ar); err != nil {
		return nil, err
	}
	if !ar.User.Valid() {
		return nil, &ShapeError{Op: op, ContentType: "application/json", Err: errors.New("response carries no user")}
	}
	return &ar, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return c.authCall(ctx, "login", "/api/login", models.LoginRequest{Email: email, Password: password})
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	return c.authCall(ctx, "register", "/api/register", models.RegisterRequest{Username: username, Email: email, Password: password})
}

// Logout is best effort; callers clear local state whatever it returns.
func (c *Client) Logout(ctx context.Context, userID int64) error {
	_, err := c.do(ctx, "logout", http.MethodPost, "/api/logout", nil, map[string]int64{"user_id": userID})
	return err
}

func (c *Client) Profile(ctx context.Context, userID int64) (*models.Session, error) {
	const op = "profile"
	body, err := c.do(ctx, op, http.MethodGet, "/api/profile", userQuery("user_id", userID), nil)
	if err != nil {
		return nil, err
	}
	var s models.Session
	if err := decode(op, []byte(locate(body, "user", "profile").Raw), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req models.ProfileUpdateRequest) (*models.AuthResponse, error) {
	const op = "profile update"
	body, err := c.do(ctx, op, http.MethodPut, "/api/profile", nil, req)
	if err != nil {
		return nil, err
	}
	var ar models.AuthResponse
	if err := decode(op, body, &ar); err != nil {
		return nil, err
	}
	return &ar, nil
}

// History lists the user's past scans. perPage <= 0 lets the server decide.
func (c *Client) History(ctx context.Context, userID int64, perPage int) ([]models.HistoryEntry, error) {
	const op = "history"
	q := userQuery("user_id", userID)
	if perPage > 0 {
		q.Set("per_page", fmt.Sprint(perPage))
	}
	body, err := c.do(ctx, op, http.MethodGet, "/api/history", q, nil)
	if err != nil {
		return nil, err
	}
	list := locate(body, "history", "scans", "data")
	if !list.IsArray() {
		return nil, &ShapeError{Op: op, ContentType: "application/json", Err: errors.New("no history array in response")}
	}
	entries := []models.HistoryEntry{}
	if err := decode(op, []byte(list.Raw), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// HistoryDetail fetches one full scan record.
func (c *Client) HistoryDetail(ctx context.Context, id, userID int64) (*models.ScanReport, error) {
	const op = "history detail"
	body, err := c.do(ctx, op, http.MethodGet, fmt.Sprintf("/api/history/%d", id), userQuery("user_id", userID), nil)
	if err != nil {
		return nil, err
	}
	rec := locate(body, "scan", "report")
	results := rec.Get("results")
	var raw string
	switch {
	case results.IsArray():
		raw = results.Raw
	case results.Type == gjson.String && gjson.Valid(results.String()):
		// Some deployments store the results column as JSON text.
		raw = results.String()
	default:
		return nil, &ShapeError{Op: op, ContentType: "application/json", Err: errors.New("record has no results")}
	}
	report := &models.ScanReport{URL: rec.Get("url").String(), ScanTime: rec.Get("scan_time").String()}
	if err := decode(op, []byte(raw), &report.Results); err != nil {
		return nil, err
	}
	if report.Results == nil {
		report.Results = []models.CheckResult{}
	}
	return report, nil
}

func (c *Client) DeleteHistory(ctx context.Context, id, userID int64) error {
	_, err := c.do(ctx, "history delete", http.MethodDelete, fmt.Sprintf("/api/history/%d", id), userQuery("user_id", userID), nil)
	return err
}

// Contact submits the contact form and returns the server acknowledgement.
func (c *Client) Contact(ctx context.Context, req models.ContactRequest) (string, error) {
	body, err := c.do(ctx, "contact", http.MethodPost, "/api/contact", nil, req)
	if err != nil {
		return "", err
	}
	if msg := gjson.GetBytes(body, "message").String(); msg != "" {
		return msg, nil
	}
	return "Message sent", nil
}

func (c *Client) Health(ctx context.Context) (*models.HealthStatus, error) {
	const op = "health"
	body, err := c.do(ctx, op, http.MethodGet, "/api/health", nil, nil)
	if err != nil {
		return nil, err
	}
	var h models.HealthStatus
	if err := decode(op, body, &h); err != nil {
		return nil, err
	}
	return &h, nil
}
