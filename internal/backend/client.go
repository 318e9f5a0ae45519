package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultTimeout = 20 * time.Second
	maxBodyBytes   = 1 << 20
	refreshPath    = "/auth/refresh"
)

// Client talks JSON to the AniLink REST backend on behalf of the caller whose
// Tokens ride on the request context. A 401 triggers one refresh, shared by all
// concurrent callers holding the same refresh token, and a single retry.
type Client struct {
	HTTP    *http.Client
	BaseURL string

	refreshes singleflight.Group
}

// New returns a client for baseURL.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	baseURL = strings.TrimSpace(baseURL)
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// DoJSON sends in (if non-nil) as JSON and decodes a 2xx body into out (if non-nil).
func (c *Client) DoJSON(ctx context.Context, method, path string, in, out any) error {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: marshal json: %w", err)
		}
		payload = b
	}
	contentType := ""
	if in != nil {
		contentType = "application/json"
	}
	return c.do(ctx, method, path, contentType, payload, out)
}

// FormField is one multipart text field.
type FormField struct {
	Name  string
	Value string
}

// FormFile is one multipart file part.
type FormFile struct {
	Field       string
	Filename    string
	ContentType string
	Content     []byte
}

// DoMultipart sends fields and files as multipart/form-data.
func (c *Client) DoMultipart(ctx context.Context, method, path string, fields []FormField, files []FormFile, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return fmt.Errorf("backend: write field %s: %w", f.Name, err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Filename))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return fmt.Errorf("backend: create part %s: %w", f.Filename, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return fmt.Errorf("backend: write part %s: %w", f.Filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("backend: close multipart: %w", err)
	}
	return c.do(ctx, method, path, w.FormDataContentType(), buf.Bytes(), out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, payload []byte, out any) error {
	if c == nil || c.HTTP == nil {
		return ErrNilClient
	}
	tokens := TokensFrom(ctx)

	raw, err := c.send(ctx, method, path, contentType, payload, tokens)
	if IsUnauthorized(err) && tokens != nil && tokens.Refresh() != "" {
		if rerr := c.refresh(ctx, tokens); rerr != nil {
			log.Printf("backend_refresh_failed method=%s path=%s error=%q", method, path, rerr.Error())
		} else {
			raw, err = c.send(ctx, method, path, contentType, payload, tokens)
		}
	}
	if err != nil {
		return err
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("backend: unmarshal json: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path, contentType string, payload []byte, tokens *Tokens) ([]byte, error) {
	fullURL, err := c.resolveURL(path)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("backend: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tokens != nil {
		if access := tokens.Access(); access != "" {
			req.Header.Set("Authorization", "Bearer "+access)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return raw, nil
}

// TokenPair is the body of a successful refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshTokens exchanges the refresh token in tokens for a new pair and
// rotates tokens in place. Concurrent refreshes of the same token share one
// upstream call.
func (c *Client) RefreshTokens(ctx context.Context, tokens *Tokens) error {
	if c == nil || c.HTTP == nil {
		return ErrNilClient
	}
	if tokens == nil || tokens.Refresh() == "" {
		return ErrRefreshRejected
	}
	return c.refresh(ctx, tokens)
}

func (c *Client) refresh(ctx context.Context, tokens *Tokens) error {
	current := tokens.Refresh()
	// The flight outlives any single caller; the HTTP client timeout bounds it.
	flightCtx := context.WithoutCancel(ctx)

	v, err, _ := c.refreshes.Do(current, func() (any, error) {
		payload, _ := json.Marshal(map[string]string{"refreshToken": current})
		raw, err := c.send(flightCtx, http.MethodPost, refreshPath, "application/json", payload, nil)
		if err != nil {
			return nil, err
		}
		var pair TokenPair
		if err := json.Unmarshal(raw, &pair); err != nil {
			return nil, fmt.Errorf("backend: decode refresh: %w", err)
		}
		if pair.AccessToken == "" {
			return nil, ErrRefreshRejected
		}
		return pair, nil
	})
	if err != nil {
		return err
	}

	pair := v.(TokenPair)
	tokens.rotate(pair.AccessToken, pair.RefreshToken)
	return nil
}

func (c *Client) resolveURL(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", ErrEmptyURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path, nil
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path, nil
}

// withQuery appends non-empty params to path.
func withQuery(path string, params url.Values) string {
	clean := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			if strings.TrimSpace(v) != "" {
				clean.Add(k, v)
			}
		}
	}
	if len(clean) == 0 {
		return path
	}
	return path + "?" + clean.Encode()
}

func pathID(prefix, id string, suffix ...string) string {
	p := prefix + "/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}
