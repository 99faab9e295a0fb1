// Package client provides a Go client for the rento-service HTTP API.
// It covers the session lifecycle (sign-up, role-gated login, logout)
// and the record operations: leads, lead message threads, and
// manager-to-tenant notices.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrRoleMismatch is returned by Login when the credentials are valid
// but the account's role differs from the role the caller selected.
// No session is established in that case.
var ErrRoleMismatch = errors.New("account role does not match the selected role")

// ErrNoSession is returned by authenticated calls made before Login or
// after Logout.
var ErrNoSession = errors.New("no active session")

// APIError carries a failed response's HTTP status, message and
// machine-readable error code.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("rento: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("rento: %d: %s", e.StatusCode, e.Message)
}

// Session holds the authenticated user's identity and token after a
// successful sign-up or login.
type Session struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name"`
	SessionID uuid.UUID `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Lead is a tenant's structured housing request.
type Lead struct {
	ID           uuid.UUID  `json:"id"`
	TenantID     *uuid.UUID `json:"tenant_id"`
	TenantName   string     `json:"tenant_name"`
	TenantEmail  string     `json:"tenant_email"`
	TenantPhone  *string    `json:"tenant_phone"`
	PropertyType string     `json:"property_type"`
	PriceRange   string     `json:"price_range"`
	Size         string     `json:"size"`
	Rooms        string     `json:"rooms"`
	Location     string     `json:"location"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// LeadMessage is one turn in a lead's append-only conversation thread.
type LeadMessage struct {
	ID        uuid.UUID  `json:"id"`
	LeadID    uuid.UUID  `json:"lead_id"`
	SenderID  *uuid.UUID `json:"sender_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
}

// ManagerTenantMessage is a manager-authored message. TenantID nil
// means broadcast.
type ManagerTenantMessage struct {
	ID        uuid.UUID  `json:"id"`
	SenderID  uuid.UUID  `json:"sender_id"`
	TenantID  *uuid.UUID `json:"tenant_id"`
	Title     *string    `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
}

// Notice is the display shape tenants see on the notices page.
type Notice struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Date    string    `json:"date"`
}

// SignUpInput carries the fields collected at registration. Role is
// required and fixed for the account's lifetime.
type SignUpInput struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	FullName      string `json:"full_name,omitempty"`
	Phone         string `json:"phone,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	Occupation    string `json:"occupation,omitempty"`
	Company       string `json:"company,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
}

// CreateLeadInput carries a new housing request.
type CreateLeadInput struct {
	TenantName   string  `json:"tenant_name"`
	TenantEmail  string  `json:"tenant_email"`
	TenantPhone  *string `json:"tenant_phone,omitempty"`
	PropertyType string  `json:"property_type"`
	PriceRange   string  `json:"price_range,omitempty"`
	Size         string  `json:"size,omitempty"`
	Rooms        string  `json:"rooms,omitempty"`
	Location     string  `json:"location"`
}

// Client is a rento-service API client. It holds at most one session
// at a time; Login replaces any previous session and Logout clears it.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	session *Session
}

// NewClient creates a new client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Session returns the current session, or nil when logged out.
func (c *Client) Session() *Session {
	return c.session
}

// envelope is the service's standard response wrapper.
type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
}

// doRequest performs an HTTP request and decodes the response
// envelope. out may be nil when the caller only cares about success.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, authed bool, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		if c.session == nil {
			return ErrNoSession
		}
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       env.ErrorCode,
			Message:    env.Message,
		}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return err
		}
	}
	return nil
}

// SignUp registers a new account and starts a session for it.
func (c *Client) SignUp(ctx context.Context, input SignUpInput) (*Session, error) {
	var session Session
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/signup", input, false, &session); err != nil {
		return nil, err
	}
	c.session = &session
	return &session, nil
}

// Login authenticates as the given role. When the credentials are
// valid but the account holds a different role, Login returns
// ErrRoleMismatch and the client stays logged out.
func (c *Client) Login(ctx context.Context, email, password, expectedRole string) (*Session, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
		"role":     expectedRole,
	}

	var session Session
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", body, false, &session); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Code == "ROLE_MISMATCH" {
			return nil, ErrRoleMismatch
		}
		return nil, err
	}
	c.session = &session
	return &session, nil
}

// Logout revokes the current session. The local session is cleared
// even if the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	if c.session == nil {
		return nil
	}
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/logout", nil, true, nil)
	c.session = nil
	return err
}

// CreateLead records a housing request.
func (c *Client) CreateLead(ctx context.Context, input CreateLeadInput) (*Lead, error) {
	var lead Lead
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/leads", input, c.session != nil, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// FetchLeads returns all leads, newest first. Requires a broker or
// manager session.
func (c *Client) FetchLeads(ctx context.Context) ([]Lead, error) {
	var leads []Lead
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/leads", nil, true, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// PostLeadMessage appends a message to a lead's thread. It requires a
// session. Empty or whitespace-only content is rejected locally, before
// any request is made.
func (c *Client) PostLeadMessage(ctx context.Context, leadID uuid.UUID, content string) (*LeadMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &APIError{
			StatusCode: http.StatusBadRequest,
			Message:    "message content must not be empty",
		}
	}

	body := map[string]string{"content": content}
	var message LeadMessage
	path := fmt.Sprintf("/api/v1/leads/%s/messages", leadID)
	if err := c.doRequest(ctx, http.MethodPost, path, body, true, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// FetchLeadMessages returns a lead's messages in ascending time order.
func (c *Client) FetchLeadMessages(ctx context.Context, leadID uuid.UUID) ([]LeadMessage, error) {
	var messages []LeadMessage
	path := fmt.Sprintf("/api/v1/leads/%s/messages", leadID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, c.session != nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// PostManagerTenantMessage publishes a notice. tenantID nil means
// broadcast to all tenants. Requires a manager session.
func (c *Client) PostManagerTenantMessage(ctx context.Context, tenantID *uuid.UUID, title, content string) (*ManagerTenantMessage, error) {
	body := map[string]interface{}{
		"tenant_id": tenantID,
		"title":     title,
		"content":   content,
	}

	var message ManagerTenantMessage
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/messages", body, true, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// FetchRecentManagerTenantMessages returns the most recent messages
// across all tenants, newest first. Requires a manager session.
func (c *Client) FetchRecentManagerTenantMessages(ctx context.Context, limit int) ([]ManagerTenantMessage, error) {
	path := "/api/v1/messages/recent"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}

	var messages []ManagerTenantMessage
	if err := c.doRequest(ctx, http.MethodGet, path, nil, true, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// FetchVisibleNotices returns the notices visible to the logged-in
// tenant: broadcasts plus messages addressed to them, newest first.
func (c *Client) FetchVisibleNotices(ctx context.Context) ([]Notice, error) {
	var notices []Notice
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/messages/notices", nil, true, &notices); err != nil {
		return nil, err
	}
	return notices, nil
}
