package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jaal-labs/jaal/pkg/session"
)

const (
	connectTimeout = 10 * time.Second
	readTimeout    = 20 * time.Second
	totalTimeout   = 30 * time.Second
)

// sharedTransport pools connections for every dispatcher in the
// process. Intake endpoints sit behind the same host, so keep-alive
// reuse matters more than per-dispatcher isolation.
var sharedTransport = &http.Transport{
	DialContext: (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	MaxIdleConns:          50,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	ResponseHeaderTimeout: readTimeout,
}

// retryDelays are slept between attempts, never before the first.
// Three entries means three attempts; the last delay is never reached.
var retryDelays = []time.Duration{500 * time.Millisecond, time.Second, 2 * time.Second}

// Dispatcher posts dossiers to the intake URL with bounded retries.
// Safe for concurrent use.
type Dispatcher struct {
	url    string
	client *http.Client
	log    *zap.Logger
	delays []time.Duration
}

// NewDispatcher builds a dispatcher for the given intake URL. An empty
// URL produces a dispatcher whose Send always reports false without
// performing I/O.
func NewDispatcher(url string, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		url:    url,
		client: &http.Client{Timeout: totalTimeout, Transport: sharedTransport},
		log:    log,
		delays: retryDelays,
	}
}

// Send builds the dossier for sess and posts it, retrying on transport
// errors and 5xx responses. It returns true iff the final response
// status is 200, 201, or 202. Callers that must survive a client
// disconnect pass a detached context.
func (d *Dispatcher) Send(ctx context.Context, sess *session.Session) bool {
	if d.url == "" {
		d.log.Warn("callback url not configured, dropping dossier",
			zap.String("session_id", sess.SessionID))
		return false
	}

	body, err := json.Marshal(BuildDossier(sess))
	if err != nil {
		d.log.Error("callback payload marshal failed",
			zap.String("session_id", sess.SessionID), zap.Error(err))
		return false
	}

	status, err := d.post(ctx, sess.SessionID, body)
	if err != nil {
		d.log.Error("callback request failed",
			zap.String("session_id", sess.SessionID), zap.Error(err))
		return false
	}

	switch status {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		d.log.Info("callback delivered",
			zap.String("session_id", sess.SessionID), zap.Int("status", status))
		return true
	default:
		d.log.Error("callback rejected",
			zap.String("session_id", sess.SessionID), zap.Int("status", status))
		return false
	}
}

// post runs the attempt loop. A non-5xx status is final; 5xx and
// transport errors burn an attempt and sleep the next delay. The
// returned status is the final attempt's, or 0 with the last transport
// error when no attempt produced a response.
func (d *Dispatcher) post(ctx context.Context, sessionID string, body []byte) (int, error) {
	var lastErr error
	lastStatus := 0

	for i := range d.delays {
		status, err := d.attempt(ctx, sessionID, body)
		if err == nil {
			if status < 500 {
				return status, nil
			}
			lastStatus = status
			lastErr = nil
		} else {
			lastErr = err
		}

		if i < len(d.delays)-1 {
			select {
			case <-time.After(d.delays[i]):
			case <-ctx.Done():
				return 0, ctx.Err()
			}
		}
	}

	if lastErr != nil {
		return 0, lastErr
	}
	return lastStatus, nil
}

func (d *Dispatcher) attempt(ctx context.Context, sessionID string, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Session-Id", sessionID)

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// Drain so the pooled connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	return resp.StatusCode, nil
}
