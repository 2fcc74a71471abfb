package llm

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	openai "github.com/sashabaranov/go-openai"
)

// Kind labels an upstream generation failure with its cause so callers can
// react per class while the original error stays available for unwrapping.
type Kind int

const (
	KindUnexpected Kind = iota
	KindAuthentication
	KindRateLimit
	KindConnection
	KindBadRequest
	KindAPI
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication error"
	case KindRateLimit:
		return "rate limit exceeded"
	case KindConnection:
		return "connection error"
	case KindBadRequest:
		return "bad request"
	case KindAPI:
		return "API error"
	}
	return "unexpected error"
}

// ClassifiedError tags a generation failure with its Kind.
type ClassifiedError struct {
	Kind Kind
	Err  error
}

func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ClassifiedError) Unwrap() error { return e.Err }

// Classify maps an error returned by the chat completion call onto the error
// taxonomy. Already-classified errors pass through unchanged; nil stays nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return err
	}

	kind := KindUnexpected
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	var urlErr *url.Error
	switch {
	case errors.As(err, &apiErr):
		kind = kindFromStatus(apiErr.HTTPStatusCode)
	case errors.As(err, &reqErr):
		kind = kindFromStatus(reqErr.HTTPStatusCode)
	case errors.As(err, &urlErr):
		kind = KindConnection
	}
	return &ClassifiedError{Kind: kind, Err: err}
}

func kindFromStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuthentication
	case http.StatusTooManyRequests:
		return KindRateLimit
	case http.StatusBadRequest:
		return KindBadRequest
	case 0:
		// No HTTP status means the request never reached the server.
		return KindConnection
	}
	return KindAPI
}
