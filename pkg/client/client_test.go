package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, status int, code string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]interface{}{
		"success": status < 400,
		"message": http.StatusText(status),
	}
	if code != "" {
		resp["error_code"] = code
	}
	if data != nil {
		resp["data"] = data
	}
	json.NewEncoder(w).Encode(resp)
}

func sessionPayload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":    uuid.NewString(),
		"email":      "amira@example.com",
		"role":       "tenant",
		"full_name":  "Amira Khan",
		"session_id": uuid.NewString(),
		"token":      "test-token",
		"expires_at": "2026-09-01T00:00:00Z",
	}
}

func TestLoginStoresSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tenant", body["role"])

		writeEnvelope(w, http.StatusOK, "", sessionPayload())
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	session, err := c.Login(context.Background(), "amira@example.com", "hunter2", "tenant")
	require.NoError(t, err)
	assert.Equal(t, "test-token", session.Token)
	assert.Equal(t, "tenant", session.Role)
	assert.Same(t, session, c.Session())
}

func TestLoginRoleMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusForbidden, "ROLE_MISMATCH", nil)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "amira@example.com", "hunter2", "broker")
	assert.ErrorIs(t, err, ErrRoleMismatch)
	assert.Nil(t, c.Session())
}

func TestLoginInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, "", nil)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "amira@example.com", "wrong", "tenant")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Nil(t, c.Session())
}

func TestAuthenticatedCallSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			writeEnvelope(w, http.StatusOK, "", sessionPayload())
		case "/api/v1/leads":
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			writeEnvelope(w, http.StatusOK, "", []map[string]interface{}{
				{"id": uuid.NewString(), "tenant_name": "amira", "status": "new"},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "amira@example.com", "hunter2", "tenant")
	require.NoError(t, err)

	leads, err := c.FetchLeads(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "amira", leads[0].TenantName)
}

func TestFetchLeadsWithoutSession(t *testing.T) {
	c := NewClient("http://example.invalid")
	_, err := c.FetchLeads(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestPostLeadMessageEmptyContentSkipsNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.PostLeadMessage(context.Background(), uuid.New(), "   \n ")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.False(t, called, "no request should be made for empty content")
}

func TestPostLeadMessage(t *testing.T) {
	leadID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/login" {
			writeEnvelope(w, http.StatusOK, "", sessionPayload())
			return
		}
		require.Equal(t, "/api/v1/leads/"+leadID.String()+"/messages", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusCreated, "", map[string]interface{}{
			"id":      uuid.NewString(),
			"lead_id": leadID.String(),
			"content": "is it still available?",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "amira@example.com", "hunter2", "tenant")
	require.NoError(t, err)

	msg, err := c.PostLeadMessage(context.Background(), leadID, "is it still available?")
	require.NoError(t, err)
	assert.Equal(t, leadID, msg.LeadID)
	assert.Equal(t, "is it still available?", msg.Content)
}

func TestPostLeadMessageWithoutSession(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.PostLeadMessage(context.Background(), uuid.New(), "is it still available?")
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Zero(t, hits, "no request should be made without a session")
}

func TestFetchVisibleNotices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			writeEnvelope(w, http.StatusOK, "", sessionPayload())
		case "/api/v1/messages/notices":
			writeEnvelope(w, http.StatusOK, "", []map[string]interface{}{
				{"id": uuid.NewString(), "title": "Announcement", "message": "water shutoff", "date": "2026-08-29"},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "amira@example.com", "hunter2", "tenant")
	require.NoError(t, err)

	notices, err := c.FetchVisibleNotices(context.Background())
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, "Announcement", notices[0].Title)
	assert.Equal(t, "2026-08-29", notices[0].Date)
}

func TestLogoutClearsSessionEvenOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/login" {
			writeEnvelope(w, http.StatusOK, "", sessionPayload())
			return
		}
		writeEnvelope(w, http.StatusInternalServerError, "", nil)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "amira@example.com", "hunter2", "tenant")
	require.NoError(t, err)

	err = c.Logout(context.Background())
	assert.Error(t, err)
	assert.Nil(t, c.Session())

	// Logging out while logged out is a no-op
	assert.NoError(t, c.Logout(context.Background()))
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.CreateLead(ctx, CreateLeadInput{
		TenantName:   "amira",
		TenantEmail:  "amira@example.com",
		PropertyType: "apartment",
		Location:     "Berlin",
	})
	assert.ErrorIs(t, err, context.Canceled)
}
