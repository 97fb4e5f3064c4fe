package rest

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/nanokube/kubeclient/pkg/util/flog"
	"golang.org/x/xerrors"
)

// IsRetryableErrorFunc allows the client to provide its own function
// that determines whether the specified err from the server is retryable.
//
// request: the original request sent to the server
// err: the server sent this error to us
//
// The function returns true if the error is retryable and the request
// can be retried, otherwise it returns false.
type IsRetryableErrorFunc func(request *http.Request, err error) bool

// neverRetryError is an IsRetryableErrorFunc for operations where a retry
// is never appropriate.
var neverRetryError = IsRetryableErrorFunc(func(_ *http.Request, _ error) bool {
	return false
})

// WithRetry allows the client to retry a request up to a certain number of times.
// It is safe for concurrent use.
type WithRetry interface {
	// IsNextRetry advances the retry counter appropriately and returns true
	// if the request should be retried, otherwise it returns false, if:
	//  - we have already reached the maximum retry threshold.
	//  - the error does not fall into the retryable category.
	//  - the server has not sent us a 429, or 5xx status code and the
	//    'Retry-After' response header is not set, or is not valid.
	IsNextRetry(ctx context.Context, restReq *Request, httpReq *http.Request, resp *http.Response, err error, f IsRetryableErrorFunc) bool

	// Before should be invoked prior to each attempt, including the first in
	// the series. It waits out any retry interval the previous attempt
	// asked for and applies the URL backoff in effect.
	Before(ctx context.Context, r *Request) error

	// After should be invoked immediately after an attempt is made.
	After(ctx context.Context, r *Request, resp *http.Response, err error)

	// WrapPreviousError wraps the error from any previous attempt into
	// the final error specified in 'finalErr', so the user has more
	// context why the request failed.
	WrapPreviousError(finalErr error) error
}

// retryAfter holds state pertaining to the next retry.
type retryAfter struct {
	// Wait is the duration to wait before retrying the request
	Wait time.Duration
	// Attempt is the retry attempt number, 1 being the first retry
	Attempt int
	// Reason describes why we are retrying
	Reason string
}

type withRetry struct {
	maxRetries int
	attempts   int

	// retryAfter is the retry state for the coming attempt, set by the
	// preceding IsNextRetry that returned true.
	retryAfter *retryAfter

	// previousErr is the error from the most recent failed attempt.
	previousErr error
}

func (r *withRetry) trackPreviousError(err error) {
	// keep the last error only, the retry loop reports it if a later
	// attempt fails differently.
	if err != nil {
		r.previousErr = err
	}
}

func (r *withRetry) IsNextRetry(ctx context.Context, restReq *Request, httpReq *http.Request, resp *http.Response, err error, f IsRetryableErrorFunc) bool {
	defer r.trackPreviousError(err)

	if httpReq == nil || (resp == nil && err == nil) {
		// bad input, we do nothing.
		return false
	}

	if r.attempts >= r.maxRetries {
		return false
	}

	if err != nil {
		if f != nil && f(httpReq, err) {
			r.attempts++
			r.retryAfter = &retryAfter{
				Wait:    time.Second,
				Attempt: r.attempts,
				Reason:  "retriable transport error",
			}
			return true
		}
		return false
	}

	if !isRetryableHTTPStatus(resp.StatusCode) {
		return false
	}
	seconds, ok := retryAfterSeconds(resp)
	if !ok {
		if resp.StatusCode != http.StatusTooManyRequests {
			return false
		}
		seconds = 1
	}

	r.attempts++
	r.retryAfter = &retryAfter{
		Wait:    time.Duration(seconds) * time.Second,
		Attempt: r.attempts,
		Reason:  "server asked client to retry after " + strconv.Itoa(seconds) + "s",
	}
	return true
}

func (r *withRetry) Before(ctx context.Context, request *Request) error {
	// If the request context is already canceled there
	// is no need to retry.
	if ctx.Err() != nil {
		r.trackPreviousError(ctx.Err())
		return ctx.Err()
	}

	url := request.URL()

	if r.retryAfter == nil {
		// we do a backoff sleep before the first attempt, if the URL is
		// in cooldown from earlier failures.
		request.backoff.Sleep(request.backoff.CalculateBackoff(url))
		return nil
	}

	// we are here when we need to retry a request.
	if request.body != nil {
		if seeker, ok := request.body.(io.Seeker); ok {
			if _, err := seeker.Seek(0, io.SeekStart); err != nil {
				err = xerrors.Errorf("failed to reset the request body while retrying a request: %w", err)
				r.trackPreviousError(err)
				return err
			}
		} else {
			err := xerrors.Errorf("request body is not resettable, cannot retry")
			r.trackPreviousError(err)
			return err
		}
	}

	// if we are here, we have made at least one attempt.
	if err := request.tryThrottleWithInfo(ctx, r.retryAfter.Reason); err != nil {
		r.trackPreviousError(err)
		return err
	}

	flog.Debugf("Got a Retry-After %s response for attempt %d to %v", r.retryAfter.Wait, r.retryAfter.Attempt, url.String())
	if r.retryAfter.Wait > 0 {
		if !sleepWithContext(ctx, r.retryAfter.Wait) {
			r.trackPreviousError(ctx.Err())
			return ctx.Err()
		}
	}
	request.backoff.Sleep(request.backoff.CalculateBackoff(url))
	return nil
}

func (r *withRetry) After(ctx context.Context, request *Request, resp *http.Response, err error) {
	if resp != nil {
		request.backoff.UpdateBackoff(request.URL(), err, resp.StatusCode)
	} else {
		request.backoff.UpdateBackoff(request.URL(), err, 0)
	}
}

func (r *withRetry) WrapPreviousError(currentErr error) error {
	if currentErr == nil || r.previousErr == nil {
		return currentErr
	}

	// if both errors are identical there is no point in wrapping.
	if currentErr.Error() == r.previousErr.Error() {
		return currentErr
	}

	return xerrors.Errorf("%w - error from a previous attempt: %v", currentErr, r.previousErr)
}

// isRetryableHTTPStatus marks the status codes worth retrying when the server
// includes retry guidance.
func isRetryableHTTPStatus(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusServiceUnavailable ||
		code == http.StatusGatewayTimeout
}

// retryAfterSeconds returns the value of the Retry-After header and true, or 0 and false if
// the header was missing or not a valid number.
func retryAfterSeconds(resp *http.Response) (int, bool) {
	if h := resp.Header.Get("Retry-After"); len(h) > 0 {
		if i, err := strconv.Atoi(h); err == nil {
			return i, true
		}
	}
	return 0, false
}

// readAndCloseResponseBody drains and closes the response body so the
// underlying TCP connection can be reused.
func readAndCloseResponseBody(resp *http.Response) {
	if resp == nil {
		return
	}

	// Ensure the response body is fully read and closed
	// before we reconnect, so that we reuse the same TCP
	// connection.
	const maxBodySlurpSize = 2 << 10
	defer func() { _ = resp.Body.Close() }()

	if resp.ContentLength <= maxBodySlurpSize {
		_, _ = io.Copy(io.Discard, &io.LimitedReader{R: resp.Body, N: maxBodySlurpSize})
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
