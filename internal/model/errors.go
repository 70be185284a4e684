package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/maxbolgarin/errm"
)

// Errors returned by LLM API adapters
var (
	ErrBadRegion     = errors.New("region is not supported")
	ErrLimitExceeded = errors.New("rate limit exceeded")
	ErrUnauthorized  = errors.New("authentication failed")
	ErrBadRequest    = errors.New("bad request")
	ErrOverloaded    = errors.New("service unavailable")
	ErrServerError   = errors.New("server error")
)

// IsPermanentAPIError returns true if repeating the request won't help
func IsPermanentAPIError(err error) bool {
	return errors.Is(err, ErrBadRegion) || errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrBadRequest)
}

// statusPattern finds HTTP status code in texts like "Error 429, Message: ...",
// "status 401 Unauthorized", "status code: 503" or "HTTP/1.1 500"
var statusPattern = regexp.MustCompile(`(?i)(?:error|status(?: code)?|http/\d(?:\.\d)?)[\s:=]*([1-5]\d\d)\b`)

// ClassifyAPIError maps transport error of the named API to one of the sentinel errors
// by the status code and vendor error types found in its text
func ClassifyAPIError(api string, err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	code := statusCode(msg)

	var sentinel error
	switch {
	case strings.Contains(msg, "location is not supported"):
		sentinel = ErrBadRegion
	case code == 429 || containsAny(msg, "rate_limit", "RESOURCE_EXHAUSTED"):
		sentinel = ErrLimitExceeded
	case code == 401 || code == 403 || containsAny(msg, "authentication_error", "invalid_api_key", "permission_error"):
		sentinel = ErrUnauthorized
	case code == 400 || strings.Contains(msg, "invalid_request_error"):
		return fmt.Errorf("%s API: %w: %s", api, ErrBadRequest, msg)
	case code == 503 || code == 529 || strings.Contains(msg, "overloaded"):
		sentinel = ErrOverloaded
	case code >= 500 || containsAny(msg, "api_error", "server_error"):
		sentinel = ErrServerError
	default:
		return errm.Wrap(err, api+" API error")
	}

	return fmt.Errorf("%s API: %w", api, sentinel)
}

func statusCode(msg string) int {
	m := statusPattern.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	code, _ := strconv.Atoi(m[1])
	return code
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
