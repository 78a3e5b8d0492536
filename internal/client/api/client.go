package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var m Message
		if err := json.NewDecoder(resp.Body).Decode(&m); err == nil && m.Message != "" {
			apiErr.Message = m.Message
			apiErr.Fields = m.Errors
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func pageQuery(page, size int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	return q
}

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	var res AuthResult
	in := map[string]string{"username": username, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, in, &res); err != nil {
		return nil, err
	}
	c.SetToken(res.Token)
	return &res, nil
}

// Login authenticates by email or username and keeps the returned token.
func (c *Client) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	var res AuthResult
	in := map[string]string{"identifier": identifier, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, in, &res); err != nil {
		return nil, err
	}
	c.SetToken(res.Token)
	return &res, nil
}

// Logout asks the server to revoke the token and forgets it either way.
func (c *Client) Logout(ctx context.Context) error {
	defer c.SetToken("")
	return c.do(ctx, http.MethodPost, "/api/user/logout", nil, nil, nil)
}

func (c *Client) Status(ctx context.Context) (string, error) {
	var m Message
	if err := c.do(ctx, http.MethodGet, "/api/auth/status", nil, nil, &m); err != nil {
		return "", err
	}
	return m.Message, nil
}

func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/api/user/me", nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Feed(ctx context.Context, page, size int) (*Page[Article], error) {
	var p Page[Article]
	if err := c.do(ctx, http.MethodGet, "/api/articles/feed", pageQuery(page, size), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Article(ctx context.Context, id int64) (*Article, error) {
	var a Article
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/articles/%d", id), nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) Publish(ctx context.Context, subjectID int64, title, content string) (*Article, error) {
	var a Article
	in := map[string]any{"title": title, "content": content, "subjectId": subjectID}
	if err := c.do(ctx, http.MethodPost, "/api/articles", nil, in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) Subjects(ctx context.Context, page, size int) (*Page[Subject], error) {
	var p Page[Subject]
	if err := c.do(ctx, http.MethodGet, "/api/subjects", pageQuery(page, size), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Subscribe(ctx context.Context, subjectID int64) (*Subject, error) {
	var s Subject
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/subjects/%d/subscribe", subjectID), nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Unsubscribe(ctx context.Context, subjectID int64) (*Subject, error) {
	var s Subject
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/subjects/%d/subscribe", subjectID), nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Comments(ctx context.Context, articleID int64, page, size int) (*Page[Comment], error) {
	var p Page[Comment]
	path := fmt.Sprintf("/api/articles/%d/comments", articleID)
	if err := c.do(ctx, http.MethodGet, path, pageQuery(page, size), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Comment(ctx context.Context, articleID int64, content string) (*Comment, error) {
	var cm Comment
	path := fmt.Sprintf("/api/articles/%d/comments", articleID)
	if err := c.do(ctx, http.MethodPost, path, nil, map[string]string{"content": content}, &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/comments/%d", id), nil, nil, nil)
}
