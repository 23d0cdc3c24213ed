// Package webcheck probes institution websites and classifies their liveness.
// It is the only component in the system that enforces a request timeout.
package webcheck

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout bounds every probe request.
const DefaultTimeout = 8 * time.Second

// Probe outcome statuses persisted on the institution record.
const (
	StatusValid    = "valid"
	StatusRedirect = "redirect"
	StatusInvalid  = "invalid"
	StatusMissing  = "missing"
)

// Result is one probe outcome.
type Result struct {
	Status   string
	Code     int
	Location string
	Err      string
}

// NormalizeURL prefixes a scheme when the stored website is schemeless.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	return s
}

// Checker probes URLs without following redirects.
type Checker struct {
	http *resty.Client
}

// NewChecker creates a Checker with the given per-request timeout.
func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		}))

	return &Checker{http: client}
}

// Check probes the URL: HEAD first, retried as GET when the server rejects
// HEAD (405/403). 2xx is valid, 3xx with a Location header is redirect,
// anything else (including transport errors and timeouts) is invalid.
func (c *Checker) Check(ctx context.Context, url string) Result {
	if url == "" {
		return Result{Status: StatusMissing}
	}

	resp, err := c.http.R().SetContext(ctx).Head(url)
	if err == nil && (resp.StatusCode() == http.StatusMethodNotAllowed || resp.StatusCode() == http.StatusForbidden) {
		resp, err = c.http.R().SetContext(ctx).Get(url)
	}
	if err != nil {
		return Result{Status: StatusInvalid, Err: err.Error()}
	}

	code := resp.StatusCode()
	location := resp.Header().Get("Location")

	switch {
	case code >= 200 && code < 300:
		return Result{Status: StatusValid, Code: code}
	case code >= 300 && code < 400 && location != "":
		return Result{Status: StatusRedirect, Code: code, Location: location}
	default:
		return Result{Status: StatusInvalid, Code: code}
	}
}
