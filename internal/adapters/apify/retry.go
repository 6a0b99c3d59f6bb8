package apify

import (
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/rivalradar/rivalradar/internal/errors"
)

// do sends the request with bearer authentication, retrying connect-level
// failures with a doubling delay. HTTP error statuses are not retried here;
// they surface to the caller, which maps them onto the error taxonomy.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)

	delay := c.retryBaseDelay
	var lastErr error
	for attempt := 1; attempt <= c.retryAttempts; attempt++ {
		attemptReq := req
		if attempt > 1 {
			attemptReq = req.Clone(req.Context())
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, fmt.Errorf("rewind request body: %w", err)
				}
				attemptReq.Body = body
			}
		}

		resp, err := c.http.Do(attemptReq)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt == c.retryAttempts {
			break
		}
		c.logger.WarnContext(req.Context(), "request failed, retrying",
			"path", req.URL.Path, "attempt", attempt, "delay", delay, "error", err)

		t := time.NewTimer(delay)
		select {
		case <-req.Context().Done():
			t.Stop()
			return nil, req.Context().Err()
		case <-t.C:
		}
		delay *= 2
	}

	return nil, apperrors.Transport(lastErr,
		fmt.Sprintf("request to %s failed after %d attempts", req.URL.Path, c.retryAttempts))
}
