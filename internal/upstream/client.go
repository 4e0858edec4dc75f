package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/tallerpro/booking-api/pkg/metrics"
)

// Error is a failed upstream call. StatusCode 0 means the transport
// failed (or the circuit is open) before any HTTP status was produced.
type Error struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s unreachable: %s", e.Service, e.Message)
	}
	return fmt.Sprintf("%s status=%d: %s", e.Service, e.StatusCode, e.Message)
}

func (e *Error) IsNotFound() bool { return e.StatusCode == http.StatusNotFound }
func (e *Error) IsConflict() bool { return e.StatusCode == http.StatusConflict }

func (e *Error) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServerError covers 5xx and transport failures alike: both surface to
// the operator as "service unavailable, retry later".
func (e *Error) IsServerError() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

// client is the shared outbound REST client. One instance per external
// collaborator so each gets its own circuit breaker and timeout.
type client struct {
	service string
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

func newClient(service, baseURL string, timeout time.Duration) *client {
	if timeout == 0 {
		timeout = 25 * time.Second
	}
	return &client{
		service: service,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    service,
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// do issues one JSON request. Only 5xx and transport failures trip the
// breaker; a 404 on search is a normal answer, not an outage.
func (c *client) do(ctx context.Context, operation, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Service: c.service, Message: fmt.Sprintf("encode request: %v", err)}
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &Error{Service: c.service, Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	raw, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, &Error{Service: c.service, Message: err.Error()}
		}
		if resp.StatusCode >= 500 {
			msg := readErrorMessage(resp.Body)
			resp.Body.Close()
			return nil, &Error{Service: c.service, StatusCode: resp.StatusCode, Message: msg}
		}
		return resp, nil
	})
	metrics.UpstreamLatency.WithLabelValues(c.service, operation).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(c.service, operation, statusLabel(err)).Inc()
		if upErr, ok := err.(*Error); ok {
			return upErr
		}
		// Breaker open or half-open rejection.
		return &Error{Service: c.service, Message: err.Error()}
	}

	resp := raw.(*http.Response)
	defer resp.Body.Close()
	metrics.UpstreamRequests.WithLabelValues(c.service, operation, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			Service:    c.service,
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
		}
	}

	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Service: c.service, Message: fmt.Sprintf("read response: %v", err)}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Service: c.service, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

// readErrorMessage extracts the service's own message so it can be shown
// to the operator verbatim. The backend uses mensaje, message or error
// depending on the endpoint; plain-text bodies pass through as is.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 8<<10))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return "no error detail"
	}

	var parsed struct {
		Mensaje string `json:"mensaje"`
		Message string `json:"message"`
		ErrMsg  string `json:"error"`
	}
	if err := json.Unmarshal(data, &parsed); err == nil {
		switch {
		case parsed.Mensaje != "":
			return parsed.Mensaje
		case parsed.Message != "":
			return parsed.Message
		case parsed.ErrMsg != "":
			return parsed.ErrMsg
		}
	}
	return string(bytes.TrimSpace(data))
}

func statusLabel(err error) string {
	if upErr, ok := err.(*Error); ok && upErr.StatusCode != 0 {
		return strconv.Itoa(upErr.StatusCode)
	}
	return "transport"
}
