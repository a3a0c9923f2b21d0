// Package openaicompat serves generation requests through any endpoint that
// speaks the OpenAI chat completions API.
package openaicompat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/mithrel/viralscript/internal/llm"
)

const DefaultModel = "gpt-4o-mini"

// wrapKey holds a top-level array; json_schema response formats must be objects.
const wrapKey = "items"

type Provider struct {
	client *openai.Client
	model  string
}

type Option func(*openai.ClientConfig, *Provider)

func WithBaseURL(u string) Option {
	return func(c *openai.ClientConfig, _ *Provider) {
		if u != "" {
			c.BaseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithModel(m string) Option {
	return func(_ *openai.ClientConfig, p *Provider) {
		if m != "" {
			p.model = m
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *openai.ClientConfig, _ *Provider) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

func New(apiKey string, opts ...Option) (*Provider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai: api key not provided")
	}
	cfg := openai.DefaultConfig(apiKey)
	p := &Provider{model: DefaultModel}
	for _, o := range opts {
		o(&cfg, p)
	}
	p.client = openai.NewClientWithConfig(cfg)
	return p, nil
}

func NewFactory(opts ...Option) llm.Factory {
	return func(apiKey string) (llm.Provider, error) {
		return New(apiKey, opts...)
	}
}

func (p *Provider) Name() string { return "openai" }

// Generate runs one chat completion. Web search is not available on this
// API and req.WebSearch is ignored, so responses never carry sources.
func (p *Provider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}
	creq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	wrapped := false
	if req.Schema != nil {
		def := toDefinition(req.Schema)
		if req.Schema.Type == llm.TypeArray {
			def = jsonschema.Definition{
				Type:                 jsonschema.Object,
				Properties:           map[string]jsonschema.Definition{wrapKey: def},
				Required:             []string{wrapKey},
				AdditionalProperties: false,
			}
			wrapped = true
		}
		creq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "response",
				Schema: &def,
				Strict: true,
			},
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, creq)
	if err != nil {
		return nil, mapError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, llm.ErrEmptyResponse
	}
	text := resp.Choices[0].Message.Content
	if wrapped {
		var env map[string]json.RawMessage
		if err := json.Unmarshal([]byte(text), &env); err != nil {
			return nil, fmt.Errorf("openai: decode wrapped array: %w: %w", llm.ErrMalformedResponse, err)
		}
		inner, ok := env[wrapKey]
		if !ok {
			return nil, fmt.Errorf("openai: response missing %q: %w", wrapKey, llm.ErrMalformedResponse)
		}
		text = string(inner)
	}
	out := &llm.Response{Text: text, Model: model}
	if resp.Model != "" {
		out.Model = resp.Model
	}
	return out, nil
}

func toDefinition(s *llm.Schema) jsonschema.Definition {
	d := jsonschema.Definition{Description: s.Description}
	switch s.Type {
	case llm.TypeString:
		d.Type = jsonschema.String
	case llm.TypeInteger:
		d.Type = jsonschema.Integer
	case llm.TypeNumber:
		d.Type = jsonschema.Number
	case llm.TypeBoolean:
		d.Type = jsonschema.Boolean
	case llm.TypeArray:
		d.Type = jsonschema.Array
		if s.Items != nil {
			item := toDefinition(s.Items)
			d.Items = &item
		}
	case llm.TypeObject:
		d.Type = jsonschema.Object
		d.Properties = make(map[string]jsonschema.Definition, len(s.Properties))
		for name, prop := range s.Properties {
			d.Properties[name] = toDefinition(prop)
		}
		// strict mode wants every property listed and nothing extra
		d.Required = make([]string, 0, len(s.Properties))
		if len(s.PropertyOrdering) == len(s.Properties) {
			d.Required = append(d.Required, s.PropertyOrdering...)
		} else {
			d.Required = append(d.Required, s.Required...)
		}
		d.AdditionalProperties = false
	}
	return d
}

func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		out := &llm.APIError{Provider: "openai", HTTPStatus: apiErr.HTTPStatusCode, Message: apiErr.Message}
		if code, ok := apiErr.Code.(string); ok {
			out.Reason = code
		}
		out.Status = apiErr.Type
		return out
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		msg := http.StatusText(reqErr.HTTPStatusCode)
		if reqErr.Err != nil {
			msg = reqErr.Err.Error()
		}
		return &llm.APIError{Provider: "openai", HTTPStatus: reqErr.HTTPStatusCode, Message: msg}
	}
	return err
}
