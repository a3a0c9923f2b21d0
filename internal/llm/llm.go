// Package llm defines the provider-neutral request/response types used by the
// generation client and implemented by the gemini and openaicompat providers.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/mithrel/viralscript/pkg/api"
)

// Type is a schema node type. Values follow the Gemini OpenAPI subset.
type Type string

const (
	TypeString  Type = "STRING"
	TypeInteger Type = "INTEGER"
	TypeNumber  Type = "NUMBER"
	TypeBoolean Type = "BOOLEAN"
	TypeArray   Type = "ARRAY"
	TypeObject  Type = "OBJECT"
)

// Schema constrains the JSON shape of a response.
type Schema struct {
	Type        Type               `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	// PropertyOrdering keeps generated objects in declaration order.
	PropertyOrdering []string `json:"propertyOrdering,omitempty"`
}

// Request is a single structured-output completion.
type Request struct {
	Model     string
	Prompt    string
	Schema    *Schema
	WebSearch bool
}

// Response carries the raw JSON text plus any grounding citations, which come
// from a side channel distinct from the JSON body.
type Response struct {
	Text    string
	Sources []api.Source
	Model   string
}

// Provider performs one request/response exchange. Implementations are built
// per call with the credential current at that moment.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (*Response, error)
}

// Factory builds a provider for an API key.
type Factory func(apiKey string) (Provider, error)

// ErrEmptyResponse is returned when the provider answered without content.
var ErrEmptyResponse = errors.New("provider returned no content")

// ErrMalformedResponse is wrapped when the provider's content cannot be decoded.
var ErrMalformedResponse = errors.New("provider returned malformed content")

// APIError is a non-2xx answer from a provider. Status is the provider's
// symbolic status (e.g. NOT_FOUND); Reason is a machine-readable detail
// such as API_KEY_INVALID when the provider sends one.
type APIError struct {
	Provider   string
	HTTPStatus int
	Status     string
	Reason     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%s API error (%d %s): %s", e.Provider, e.HTTPStatus, e.Status, e.Message)
	}
	return fmt.Sprintf("%s API error (%d): %s", e.Provider, e.HTTPStatus, e.Message)
}
