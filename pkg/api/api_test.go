package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/jaal-labs/jaal/pkg/config"
	"github.com/jaal-labs/jaal/pkg/engage"
	"github.com/jaal-labs/jaal/pkg/session"
)

const testAPIKey = "test-key"

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()

	cfg := config.NewDefaultConfig()
	cfg.APIKey = testAPIKey
	cfg.RateLimitPerMinute = 1000
	cfg.ResponseDelayMin = 0
	cfg.ResponseDelayMax = 0
	if mutate != nil {
		mutate(cfg)
	}

	mgr := session.NewManager(session.NewMemoryStore(time.Hour), 16, zap.NewNop())
	pipeline := engage.NewPipeline(engage.Config{
		Sessions: mgr,
		MaxTurns: cfg.MaxEngagementTurns,
		Log:      zap.NewNop(),
	}).WithRand(rand.New(rand.NewSource(7)))

	srv := New(cfg, pipeline, mgr, zap.NewNop())
	t.Cleanup(func() {
		require.NoError(t, srv.Shutdown())
		mgr.Stop()
	})
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := srv.App().Test(req)
	require.NoError(t, err)

	var decoded map[string]any
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &decoded), "body: %s", data)
	}
	return resp, decoded
}

func authed() map[string]string {
	return map[string]string{"X-API-Key": testAPIKey}
}

func TestHealthIsOpen(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := doJSON(t, srv, http.MethodGet, "/api/v1/health", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestAPIKeyGate(t *testing.T) {
	srv := newTestServer(t, nil)
	payload := map[string]string{"session_id": "auth-1", "message": "hello"}

	resp, body := doJSON(t, srv, http.MethodPost, "/api/v1/message", payload, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "error", body["status"])

	resp, _ = doJSON(t, srv, http.MethodPost, "/api/v1/message", payload,
		map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMessageValidation(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{"bad session id", map[string]string{"session_id": "no spaces allowed", "message": "hi"}},
		{"empty session id", map[string]string{"session_id": "", "message": "hi"}},
		{"empty message", map[string]string{"session_id": "ok-1", "message": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, srv, http.MethodPost, "/api/v1/message", tt.payload, authed())
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "error", body["status"])
		})
	}
}

func TestMessageBenignFlow(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := doJSON(t, srv, http.MethodPost, "/api/v1/message",
		map[string]string{"session_id": "benign-1", "message": "Hello, how are you doing today?"},
		authed())

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Thank you for your message.", body["reply"])
	assert.Equal(t, "benign-1", body["session_id"])
	assert.Equal(t, false, body["scam_detected"])
	assert.Equal(t, true, body["engagement_active"])
}

func TestMessageScamFlow(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := doJSON(t, srv, http.MethodPost, "/api/v1/message",
		map[string]string{
			"session_id": "scam-1",
			"message":    "Your account will be blocked immediately! Verify KYC at http://fake-bank.xyz or share OTP to 9876543210.",
		}, authed())

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["scam_detected"])
	assert.Equal(t, true, body["engagement_active"])
	assert.NotEmpty(t, body["reply"])
	assert.NotEqual(t, "Thank you for your message.", body["reply"])

	resp, body = doJSON(t, srv, http.MethodGet, "/api/v1/session/scam-1", nil, authed())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["turn_count"])

	intel, ok := body["extracted_intelligence"].(map[string]any)
	require.True(t, ok, "extracted_intelligence missing: %v", body)
	assert.Contains(t, intel["phone_numbers"], "+919876543210")
	assert.Contains(t, intel["phishing_links"], "http://fake-bank.xyz")
}

func TestHoneypotSeedsHistory(t *testing.T) {
	srv := newTestServer(t, nil)

	payload := map[string]any{
		"sessionId": "guvi-1",
		"message": map[string]any{
			"sender":    "scammer",
			"text":      "Hello, how are you doing today?",
			"timestamp": time.Now().UnixMilli(),
		},
		"conversationHistory": []map[string]any{
			{"sender": "scammer", "text": "Are you there?", "timestamp": time.Now().Add(-time.Minute).UnixMilli()},
			{"sender": "bot", "text": "Haan ji, boliye."},
		},
		"metadata": map[string]any{"channel": "sms"},
	}

	resp, body := doJSON(t, srv, http.MethodPost, "/api/v1/honeypot", payload, authed())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", body["status"])
	assert.NotEmpty(t, body["reply"])

	resp, body = doJSON(t, srv, http.MethodGet, "/api/v1/session/guvi-1", nil, authed())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["turn_count"], "seeded ingress plus live ingress")
}

func TestSessionLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, _ := doJSON(t, srv, http.MethodGet, "/api/v1/session/ghost", nil, authed())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodDelete, "/api/v1/session/ghost", nil, authed())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, _ = doJSON(t, srv, http.MethodPost, "/api/v1/message",
		map[string]string{"session_id": "life-1", "message": "Hello, how are you doing today?"},
		authed())

	resp, body := doJSON(t, srv, http.MethodDelete, "/api/v1/session/life-1", nil, authed())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "life-1", body["session_id"])
	assert.Equal(t, false, body["callback_sent"])
	assert.Equal(t, float64(1), body["total_messages"])

	resp, _ = doJSON(t, srv, http.MethodGet, "/api/v1/session/life-1", nil, authed())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSummaryIncludesNotes(t *testing.T) {
	srv := newTestServer(t, nil)

	_, _ = doJSON(t, srv, http.MethodPost, "/api/v1/message",
		map[string]string{
			"session_id": "sum-1",
			"message":    "Your account blocked hai! Share OTP and pay immediately to fraud@ybl",
		}, authed())

	resp, body := doJSON(t, srv, http.MethodGet, "/api/v1/summary/sum-1", nil, authed())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["scam_detected"])
	assert.NotEmpty(t, body["agent_notes"])
	assert.NotEmpty(t, body["persona_type"])
	assert.Equal(t, float64(2), body["total_messages"])
}

func TestRateLimitCeiling(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.RateLimitPerMinute = 2
	})

	for i := 0; i < 2; i++ {
		resp, _ := doJSON(t, srv, http.MethodPost, "/api/v1/message",
			map[string]string{"session_id": "rate-1", "message": fmt.Sprintf("hello %d", i)},
			authed())
		require.Equal(t, http.StatusOK, resp.StatusCode, "request %d", i)
	}

	resp, body := doJSON(t, srv, http.MethodPost, "/api/v1/message",
		map[string]string{"session_id": "rate-1", "message": "hello again"},
		authed())
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "Too many requests", body["detail"])
}

func TestOutboundHeaderScrub(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, _ := doJSON(t, srv, http.MethodGet, "/api/v1/health", nil, nil)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.NotEmpty(t, resp.Header.Get("X-Process-Time"))
	assert.Empty(t, resp.Header.Get("Server"))
	assert.Empty(t, resp.Header.Get("X-Powered-By"))
}

func TestServerShutdownLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
		goleak.IgnoreAnyFunction("github.com/valyala/fasthttp.updateServerDate.func1"),
	)

	cfg := config.NewDefaultConfig()
	cfg.APIKey = testAPIKey
	mgr := session.NewManager(session.NewMemoryStore(time.Hour), 4, zap.NewNop())
	pipeline := engage.NewPipeline(engage.Config{Sessions: mgr, Log: zap.NewNop()})

	srv := New(cfg, pipeline, mgr, zap.NewNop())
	require.NoError(t, srv.Shutdown())
	mgr.Stop()
}
