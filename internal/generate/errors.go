package generate

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"

	"github.com/mithrel/viralscript/internal/llm"
)

// Kind classifies a generation failure.
type Kind int

const (
	KindRemote Kind = iota
	KindCredential
	KindQuota
	KindMalformed
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindCredential:
		return "credential"
	case KindQuota:
		return "quota"
	case KindMalformed:
		return "malformed"
	case KindTransport:
		return "transport"
	default:
		return "remote"
	}
}

// Error is the only error type GenerateScripts and GenerateBundle return.
// Message is user-facing; provider messages are carried verbatim.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String() + " error"
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a generation error of kind k.
func IsKind(err error, k Kind) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == k
}

// ErrNoCredential is wrapped when neither a local nor an environment key exists.
var ErrNoCredential = errors.New("no API key configured")

func credentialError(err error) *Error {
	return &Error{Kind: KindCredential, Message: err.Error(), Err: err}
}

func malformed(err error) *Error {
	return &Error{Kind: KindMalformed, Message: "could not read the generated response: " + err.Error(), Err: err}
}

// classify maps a provider failure onto a Kind.
func classify(err error) *Error {
	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}
	if errors.Is(err, llm.ErrEmptyResponse) || errors.Is(err, llm.ErrMalformedResponse) {
		return malformed(err)
	}
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		return &Error{Kind: apiKind(apiErr), Message: apiErr.Message, Err: err}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTransport, Message: err.Error(), Err: err}
	}
	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return &Error{Kind: KindTransport, Message: err.Error(), Err: err}
	}
	return &Error{Kind: KindRemote, Message: err.Error(), Err: err}
}

func apiKind(e *llm.APIError) Kind {
	switch e.Reason {
	case "API_KEY_INVALID", "invalid_api_key":
		return KindCredential
	}
	switch e.Status {
	case "NOT_FOUND", "UNAUTHENTICATED", "PERMISSION_DENIED":
		return KindCredential
	case "RESOURCE_EXHAUSTED":
		return KindQuota
	}
	switch e.HTTPStatus {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindCredential
	case http.StatusTooManyRequests:
		return KindQuota
	}
	return KindRemote
}
